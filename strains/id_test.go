package strains

import (
	"testing"
)

func TestLessID(t *testing.T) {
	for _, v := range []struct {
		A, B string
		Less bool
	}{
		{"ASV2", "ASV10", true},
		{"ASV10", "ASV2", false},
		{"2", "10", true},
		{"ASV002", "ASV10", true},
		{"ASV02", "ASV2", true},
		{"ASV2", "ASV2", false},
		{"ASV9", "OTU1", true},
		{"abc", "abd", true},
		{"x99999999999999999999999", "x100000000000000000000000", true},
	} {
		if got := LessID(v.A, v.B); got != v.Less {
			t.Errorf("LessID(%q, %q) = %v, expected %v", v.A, v.B, got, v.Less)
		}
	}
}

func TestSortByID(t *testing.T) {
	strains := []*Strain{
		New("ASV10", nil, nil),
		New("ASV1", nil, nil),
		New("ASV2", nil, nil),
	}
	SortByID(strains)

	for i, expected := range []string{"ASV1", "ASV2", "ASV10"} {
		if strains[i].ID() != expected {
			t.Errorf("position %d: got %s, expected %s", i, strains[i].ID(), expected)
		}
	}
}
