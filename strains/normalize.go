package strains

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Normalize divides every abundance by the total of its column across all
// strains, so that each mask region sums to 1. Regions with a zero total stay
// zero. The input strains are left untouched; new Strains are returned in the
// same order.
func Normalize(strains []*Strain) ([]*Strain, error) {
	if len(strains) == 0 {
		return nil, nil
	}

	width := strains[0].Len()
	totals := make([]float64, width)
	for _, s := range strains {
		if s.Len() != width {
			return nil, fmt.Errorf("strain %s has %d abundances, expected %d", s.ID(), s.Len(), width)
		}
		floats.Add(totals, s.Abundances())
	}

	// Abundances are non-negative, so a zero total means every entry in that
	// column is zero and dividing by 1 keeps it that way.
	for i, v := range totals {
		if v == 0 {
			totals[i] = 1
		}
	}

	out := make([]*Strain, 0, len(strains))
	for _, s := range strains {
		normalized := make([]float64, width)
		floats.DivTo(normalized, s.Abundances(), totals)
		out = append(out, s.withAbundances(normalized))
	}

	return out, nil
}
