package strains

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/microbemap"
	"github.com/carbocation/pfx"
)

// Parser turns abundance tables into Strains.
type Parser struct {
	Layout Layout

	// Abundances is the number of abundance columns every row must carry. If
	// zero, it is taken from the first data row.
	Abundances int
}

// NewParser returns a parser for one of the named Layouts.
func NewParser(layout string, abundances int) (*Parser, error) {
	l, exists := Layouts[layout]
	if !exists {
		return nil, fmt.Errorf("Layout %s is not found. Valid layout names include: %s", layout, LayoutNames())
	}

	return NewWithLayout(l, abundances), nil
}

func NewWithLayout(layout Layout, abundances int) *Parser {
	return &Parser{
		Layout:     layout,
		Abundances: abundances,
	}
}

// ParseFile parses the table at path, which may be local or on Google Storage.
func (p *Parser) ParseFile(path string, client *storage.Client) ([]*Strain, error) {
	f, err := microbemap.MaybeOpenFromGoogleStorage(path, client)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	out, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return out, nil
}

// Parse reads every row after the header. Compressed input is unpacked
// first. The header is the first non-blank line, taken as is and never
// validated, even when it begins with the layout's comment character. Rows
// come back in file order.
func (p *Parser) Parse(r io.Reader) ([]*Strain, error) {
	plain, err := microbemap.MaybeDecompress(r)
	if err != nil {
		return nil, pfx.Err(err)
	}

	fileBytes, err := io.ReadAll(plain)
	if err != nil {
		return nil, pfx.Err(err)
	}

	delim := p.Layout.Delimiter
	if delim == 0 {
		delim = microbemap.DetermineDelimiter(bytes.NewReader(fileBytes))
	}

	body, headerLines := skipHeader(fileBytes)
	if headerLines == 0 {
		return nil, nil
	}

	rdr := csv.NewReader(bytes.NewReader(body))
	rdr.Comma = delim
	rdr.Comment = p.Layout.Comment
	rdr.LazyQuotes = true

	// Column counts are checked here so they surface as MalformedRowError
	rdr.FieldsPerRecord = -1

	expected := 0
	if p.Abundances > 0 {
		expected = p.Layout.ColFirstAbundance() + p.Abundances
	}

	out := make([]*Strain, 0)
	for {
		row, err := rdr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, pfx.Err(err)
		}
		line, _ := rdr.FieldPos(0)
		line += headerLines

		if expected == 0 {
			// Infer the width from the first data row, which must carry at
			// least one abundance.
			if len(row) <= p.Layout.ColFirstAbundance() {
				return nil, &MalformedRowError{Line: line, Columns: len(row), Expected: p.Layout.ColFirstAbundance() + 1}
			}
			expected = len(row)
		}

		if len(row) != expected {
			return nil, &MalformedRowError{Line: line, Columns: len(row), Expected: expected}
		}

		s, err := p.ParseRow(row, line)
		if err != nil {
			return nil, err
		}

		out = append(out, s)
	}

	return out, nil
}

// skipHeader drops everything up to and including the first non-blank line.
// It returns the rest along with the number of lines dropped, which is zero
// when the input holds no header at all. The header is cut on the raw bytes
// so that a csv.Reader comment setting cannot swallow it.
func skipHeader(fileBytes []byte) ([]byte, int) {
	rest := fileBytes
	lines := 0
	for len(rest) > 0 {
		line := rest
		if i := bytes.IndexByte(rest, '\n'); i >= 0 {
			line, rest = rest[:i], rest[i+1:]
		} else {
			rest = nil
		}
		lines++

		if len(bytes.TrimSpace(line)) > 0 {
			return rest, lines
		}
	}

	return nil, 0
}

// ParseRow converts one data row whose width has already been checked. line
// is only used for error reporting.
func (p *Parser) ParseRow(row []string, line int) (*Strain, error) {
	if len(row) < p.Layout.ColFirstAbundance() {
		return nil, &MalformedRowError{Line: line, Columns: len(row), Expected: p.Layout.ColFirstAbundance()}
	}

	s := &Strain{
		id:         strings.TrimSpace(row[p.Layout.ColID()]),
		abundances: make([]float64, 0, len(row)-p.Layout.ColFirstAbundance()),
	}

	for col, r := range p.Layout.Ranks {
		s.names[r], s.known[r] = ParseName(row[col], r.Prefix())
	}

	for col := p.Layout.ColFirstAbundance(); col < len(row); col++ {
		field := strings.TrimSpace(row[col])

		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, &NumericParseError{Line: line, Column: col + 1, Value: field, Err: err}
		}

		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &NumericParseError{Line: line, Column: col + 1, Value: field, Err: ErrInvalidAbundance}
		}

		s.abundances = append(s.abundances, v)
	}

	return s, nil
}
