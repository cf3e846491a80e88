// Package strains reads strain abundance tables into immutable Strain
// records.
package strains

import (
	"github.com/carbocation/microbemap/taxa"
)

// Strain is one measured organism: its identifier, its name at each
// taxonomic rank (possibly unknown), and one abundance value per mask
// region. A Strain is never modified after construction, so indexes and
// aggregations share pointers to it freely.
type Strain struct {
	id         string
	names      [taxa.NumRanks]string
	known      [taxa.NumRanks]bool
	abundances []float64
}

// New builds a Strain. Ranks absent from names are unknown. The abundance
// slice is copied.
func New(id string, names map[taxa.Rank]string, abundances []float64) *Strain {
	s := &Strain{
		id:         id,
		abundances: append([]float64(nil), abundances...),
	}

	for r, name := range names {
		if !r.Taxonomic() {
			continue
		}
		s.names[r] = name
		s.known[r] = true
	}

	return s
}

// ID returns the strain's unique identifier.
func (s *Strain) ID() string {
	return s.id
}

// Name returns the strain's resolved name at rank r, and false when that name
// is unknown. For taxa.RawID the strain's own ID is returned.
func (s *Strain) Name(r taxa.Rank) (string, bool) {
	if r == taxa.RawID {
		return s.id, true
	}

	if !r.Taxonomic() || !s.known[r] {
		return "", false
	}

	return s.names[r], true
}

// Abundances returns the strain's abundance vector in mask order. The slice
// is shared; callers must not modify it.
func (s *Strain) Abundances() []float64 {
	return s.abundances
}

// Len is the length of the abundance vector.
func (s *Strain) Len() int {
	return len(s.abundances)
}

// withAbundances returns a copy of s that carries a different abundance
// vector (taking ownership of it).
func (s *Strain) withAbundances(abundances []float64) *Strain {
	out := *s
	out.abundances = abundances
	return &out
}
