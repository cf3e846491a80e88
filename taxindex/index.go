// Package taxindex groups strains by taxonomic rank and name so that a query
// such as (Genus, "Pseudomonas") resolves to the strains that contribute to
// it.
package taxindex

import (
	"sort"

	"github.com/carbocation/microbemap/strains"
	"github.com/carbocation/microbemap/taxa"
)

// Index maps (rank, name) to the strains carrying that name at that rank, in
// the order the strains were given to Build. Every strain is also reachable
// through taxa.RawID under its own ID. An Index is read-only once built and
// safe for concurrent lookups.
type Index struct {
	buckets [taxa.NumRanks + 1]map[string][]*strains.Strain
}

// Build indexes the strains. Strains with an unknown name at a rank are left
// out of that rank entirely. If two strains share an ID, the later one owns
// the raw-id bucket.
func Build(all []*strains.Strain) *Index {
	idx := &Index{}
	for i := range idx.buckets {
		idx.buckets[i] = make(map[string][]*strains.Strain)
	}

	for _, s := range all {
		for _, r := range taxa.Ordered {
			name, ok := s.Name(r)
			if !ok {
				continue
			}

			idx.buckets[r][name] = append(idx.buckets[r][name], s)
		}

		idx.buckets[taxa.RawID][s.ID()] = []*strains.Strain{s}
	}

	return idx
}

// Lookup returns the strains named name at rank, matched exactly and
// case-sensitively. An unknown rank or name yields an empty result, not an
// error. The returned slice is shared with the index and must not be
// modified.
func (idx *Index) Lookup(rank taxa.Rank, name string) []*strains.Strain {
	if !rank.Valid() {
		return nil
	}

	return idx.buckets[rank][name]
}

// Has reports whether Lookup(rank, name) would return anything.
func (idx *Index) Has(rank taxa.Rank, name string) bool {
	return len(idx.Lookup(rank, name)) > 0
}

// Names lists every name indexed at rank, sorted. Raw IDs are sorted by their
// numeric suffix.
func (idx *Index) Names(rank taxa.Rank) []string {
	if !rank.Valid() {
		return nil
	}

	out := make([]string, 0, len(idx.buckets[rank]))
	for name := range idx.buckets[rank] {
		out = append(out, name)
	}

	if rank == taxa.RawID {
		sort.Slice(out, func(i, j int) bool { return strains.LessID(out[i], out[j]) })
	} else {
		sort.Strings(out)
	}

	return out
}

// Len is the number of distinct names at rank.
func (idx *Index) Len(rank taxa.Rank) int {
	if !rank.Valid() {
		return 0
	}

	return len(idx.buckets[rank])
}
