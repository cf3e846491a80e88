package taxindex

import (
	"github.com/carbocation/microbemap/strains"
	"github.com/carbocation/microbemap/taxa"
)

// Breadcrumb names the taxonomic path of a lookup result, from Phylum down,
// using the first strain of result as its representative.
//
// For a real rank the path runs down to and including rank; intermediate
// ranks whose name is unknown are skipped. For taxa.RawID the path runs down
// as far as the names stay known, stopping before the first unknown rank.
func Breadcrumb(rank taxa.Rank, result []*strains.Strain) []string {
	if len(result) == 0 || !rank.Valid() {
		return nil
	}
	rep := result[0]

	out := make([]string, 0, taxa.NumRanks)
	for _, r := range taxa.Ordered {
		name, ok := rep.Name(r)

		if rank == taxa.RawID {
			if !ok {
				break
			}
			out = append(out, name)
			continue
		}

		if r > rank {
			break
		}
		if ok {
			out = append(out, name)
		}
	}

	return out
}
