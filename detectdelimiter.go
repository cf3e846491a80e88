package microbemap

import (
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader, assuming a CSV-like file. Tabs win over commas when
// both look plausible, since taxonomy names may legitimately contain commas.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	for _, v := range delimiters {
		if v == "\t" {
			return '\t'
		}
	}

	if len(delimiters) > 0 {
		return rune(delimiters[0][0])
	}

	return ','
}
