package taxindex

import (
	"testing"

	"github.com/carbocation/microbemap/strains"
	"github.com/carbocation/microbemap/taxa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(p, c, o, f, g, s string) map[taxa.Rank]string {
	out := make(map[taxa.Rank]string)
	for r, v := range []string{p, c, o, f, g, s} {
		if v != "" {
			out[taxa.Rank(r)] = v
		}
	}
	return out
}

func fixture() []*strains.Strain {
	return []*strains.Strain{
		strains.New("ASV1", names("Proteobacteria", "Gamma", "Pseudomonadales", "Pseudomonadaceae", "Pseudomonas", "fluorescens"), []float64{0.5, 0}),
		strains.New("ASV2", names("Actinobacteria", "Actino", "", "", "", ""), []float64{0, 1}),
		strains.New("ASV3", names("Proteobacteria", "Gamma", "Pseudomonadales", "Pseudomonadaceae", "Pseudomonas", ""), []float64{0.25, 0}),
		strains.New("ASV10", names("Proteobacteria", "Alpha", "", "Rhizobiaceae", "", ""), []float64{0, 0.5}),
	}
}

func ids(in []*strains.Strain) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, s.ID())
	}
	return out
}

func TestLookupKeepsFileOrder(t *testing.T) {
	idx := Build(fixture())

	assert.Equal(t, []string{"ASV1", "ASV3", "ASV10"}, ids(idx.Lookup(taxa.Phylum, "Proteobacteria")))
	assert.Equal(t, []string{"ASV1", "ASV3"}, ids(idx.Lookup(taxa.Genus, "Pseudomonas")))
	assert.Equal(t, []string{"ASV1"}, ids(idx.Lookup(taxa.Species, "fluorescens")))
	assert.Equal(t, []string{"ASV10"}, ids(idx.Lookup(taxa.Family, "Rhizobiaceae")))
}

// A strain lands in bucket (rank, name) exactly when its name at rank is name.
func TestLookupExactness(t *testing.T) {
	all := fixture()
	idx := Build(all)

	for _, r := range taxa.Ordered {
		total := 0
		for _, name := range idx.Names(r) {
			got := idx.Lookup(r, name)
			total += len(got)

			expected := make([]*strains.Strain, 0)
			for _, s := range all {
				if n, ok := s.Name(r); ok && n == name {
					expected = append(expected, s)
				}
			}
			assert.Equal(t, expected, got, "%v=%s", r, name)
		}

		known := 0
		for _, s := range all {
			if _, ok := s.Name(r); ok {
				known++
			}
		}
		assert.Equal(t, known, total, "strains with unknown %v must not be indexed", r)
	}
}

func TestLookupMisses(t *testing.T) {
	idx := Build(fixture())

	assert.Empty(t, idx.Lookup(taxa.Genus, "pseudomonas"))
	assert.Empty(t, idx.Lookup(taxa.Genus, "Pseudo"))
	assert.Empty(t, idx.Lookup(taxa.Genus, ""))
	assert.Empty(t, idx.Lookup(taxa.Rank(99), "Pseudomonas"))
	assert.False(t, idx.Has(taxa.Order, "Nope"))
	assert.True(t, idx.Has(taxa.Order, "Pseudomonadales"))
	assert.Nil(t, idx.Names(taxa.Rank(-1)))
	assert.Equal(t, 0, idx.Len(taxa.Rank(-1)))
}

func TestRawID(t *testing.T) {
	all := fixture()
	idx := Build(all)

	got := idx.Lookup(taxa.RawID, "ASV3")
	require.Len(t, got, 1)
	assert.Same(t, all[2], got[0])

	assert.Equal(t, []string{"ASV1", "ASV2", "ASV3", "ASV10"}, idx.Names(taxa.RawID))
	assert.Equal(t, 4, idx.Len(taxa.RawID))
}

func TestDuplicateIDLastWins(t *testing.T) {
	first := strains.New("dup", names("A", "", "", "", "", ""), []float64{1})
	second := strains.New("dup", names("B", "", "", "", "", ""), []float64{2})

	idx := Build([]*strains.Strain{first, second})

	got := idx.Lookup(taxa.RawID, "dup")
	require.Len(t, got, 1)
	assert.Same(t, second, got[0])

	// Both still live under their own phyla
	assert.Len(t, idx.Lookup(taxa.Phylum, "A"), 1)
	assert.Len(t, idx.Lookup(taxa.Phylum, "B"), 1)
}

func TestNamesSorted(t *testing.T) {
	idx := Build(fixture())
	assert.Equal(t, []string{"Actinobacteria", "Proteobacteria"}, idx.Names(taxa.Phylum))
	assert.Equal(t, []string{"Actino", "Alpha", "Gamma"}, idx.Names(taxa.Class))
	assert.Empty(t, Build(nil).Names(taxa.Genus))
}

func TestBuildEmpty(t *testing.T) {
	idx := Build(nil)
	assert.Empty(t, idx.Lookup(taxa.Phylum, "Anything"))
	assert.Empty(t, idx.Lookup(taxa.RawID, "ASV1"))
}
