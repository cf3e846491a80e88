// Package abundance reduces groups of strains to a single abundance value per
// mask region.
package abundance

import (
	"fmt"
	"strings"

	"github.com/carbocation/microbemap/strains"
	"gonum.org/v1/gonum/floats"
)

// Mode selects how the abundance vectors of a group are combined.
type Mode int

const (
	// Mean divides the elementwise sum by the number of strains, giving the
	// signal of a typical member of the group.
	Mean Mode = iota

	// Sum adds the vectors elementwise, giving the group's total.
	Sum
)

func (m Mode) String() string {
	switch m {
	case Mean:
		return "mean"
	case Sum:
		return "sum"
	}

	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps "mean" or "sum" (any case) to a Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mean", "average", "avg":
		return Mean, nil
	case "sum", "total":
		return Sum, nil
	}

	return Mean, fmt.Errorf("Aggregation mode %q is not recognized. Valid modes are mean and sum", name)
}

// LengthError reports a strain whose abundance vector does not have one entry
// per mask region.
type LengthError struct {
	ID       string
	Length   int
	Expected int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("strain %s has %d abundances, expected %d (one per mask)", e.ID, e.Length, e.Expected)
}

// Aggregate combines the abundance vectors of group into one vector of length
// n. An empty group yields n zeros in either mode.
func Aggregate(group []*strains.Strain, mode Mode, n int) ([]float64, error) {
	if mode != Mean && mode != Sum {
		return nil, fmt.Errorf("Aggregation mode %v is not supported", mode)
	}

	out := make([]float64, n)
	for _, s := range group {
		if s.Len() != n {
			return nil, &LengthError{ID: s.ID(), Length: s.Len(), Expected: n}
		}
		floats.Add(out, s.Abundances())
	}

	if mode == Mean && len(group) > 0 {
		floats.Scale(1/float64(len(group)), out)
	}

	return out, nil
}
