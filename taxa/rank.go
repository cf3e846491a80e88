// Package taxa defines the fixed, ordered set of taxonomic ranks that strains
// are grouped by, plus the raw-id pseudo-rank.
package taxa

import (
	"fmt"
	"strings"
)

// Rank is one level of the taxonomic hierarchy. The zero value is Phylum.
type Rank int

const (
	Phylum Rank = iota
	Class
	Order
	Family
	Genus
	Species

	// RawID is not a taxonomic level. It indexes each strain under its own
	// identifier so that a single strain can be looked up directly.
	RawID
)

// NumRanks is the number of real taxonomic ranks (RawID excluded).
const NumRanks = int(RawID)

// Ordered lists the real ranks from the top of the hierarchy down.
var Ordered = []Rank{Phylum, Class, Order, Family, Genus, Species}

var rankInfo = [...]struct {
	name   string
	prefix string
}{
	Phylum:  {"Phylum", "p__"},
	Class:   {"Class", "c__"},
	Order:   {"Order", "o__"},
	Family:  {"Family", "f__"},
	Genus:   {"Genus", "g__"},
	Species: {"Species", "s__"},
	RawID:   {"ID", ""},
}

// Valid reports whether r is one of the known ranks, including RawID.
func (r Rank) Valid() bool {
	return r >= Phylum && r <= RawID
}

// Taxonomic reports whether r is a real taxonomic rank, i.e. not RawID.
func (r Rank) Taxonomic() bool {
	return r >= Phylum && r < RawID
}

func (r Rank) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Rank(%d)", int(r))
	}

	return rankInfo[r].name
}

// Prefix is the short marker that raw name fields of this rank carry in
// abundance tables, e.g. "g__" for Genus. RawID has no prefix.
func (r Rank) Prefix() string {
	if !r.Valid() {
		return ""
	}

	return rankInfo[r].prefix
}

// ParseRank maps a rank name to its Rank, ignoring case. "id", "raw" and
// "sample" all select RawID.
func ParseRank(name string) (Rank, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	switch name {
	case "id", "raw", "rawid", "raw_id", "sample":
		return RawID, nil
	}

	for _, r := range Ordered {
		if strings.ToLower(r.String()) == name {
			return r, nil
		}
	}

	return Phylum, fmt.Errorf("Rank %q is not recognized. Valid ranks include: %s", name, Names())
}

// Names lists every selectable rank name, RawID last, separated by commas.
func Names() string {
	b := strings.Builder{}
	for i, r := range append(append([]Rank{}, Ordered...), RawID) {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(r.String())
	}

	return b.String()
}
