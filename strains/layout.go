package strains

import (
	"sort"
	"strings"

	"github.com/carbocation/microbemap/taxa"
)

// Layout describes the columns of an abundance table: one name column per
// rank in Ranks (top-down), then the strain ID, then every abundance value.
type Layout struct {
	// Delimiter separates fields. Zero means detect it from the file.
	Delimiter rune
	Comment   rune
	Ranks     []taxa.Rank
}

// ColID is the index of the strain ID column.
func (l Layout) ColID() int {
	return len(l.Ranks)
}

// ColFirstAbundance is the index of the first abundance column.
func (l Layout) ColFirstAbundance() int {
	return l.ColID() + 1
}

var Layouts = map[string]Layout{
	// Phylum through species, comma delimited
	"MAPPING": {
		Delimiter: ',',
		Ranks:     taxa.Ordered,
	},
	// Phylum through genus only; species is unknown for every strain
	"MAPPING_GENUS": {
		Delimiter: ',',
		Ranks:     taxa.Ordered[:taxa.Genus+1],
	},
	// MAPPING with tabs. Lines starting with # after the header are skipped.
	// This is not the ID-first export with a separate taxonomy file.
	"MAPPING_TSV": {
		Delimiter: '\t',
		Comment:   '#',
		Ranks:     taxa.Ordered,
	},
	// Phylum through species, delimiter sniffed from the file
	"MAPPING_DETECT": {
		Ranks: taxa.Ordered,
	},
}

// LayoutNames lists the known layouts, sorted and separated by commas.
func LayoutNames() string {
	names := make([]string, 0, len(Layouts))
	for m := range Layouts {
		names = append(names, m)
	}
	sort.Strings(names)

	return strings.Join(names, ", ")
}

// ParseName resolves one raw taxonomy field. The literal "na" means the name
// is unknown. Otherwise prefix is stripped when present.
func ParseName(raw, prefix string) (string, bool) {
	if raw == "na" {
		return "", false
	}

	return strings.TrimPrefix(raw, prefix), true
}
