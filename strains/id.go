package strains

import (
	"sort"
	"strings"
)

// LessID orders strain IDs so that IDs sharing a prefix sort by their numeric
// suffix: "ASV2" < "ASV10". Anything else falls back to byte order.
func LessID(a, b string) bool {
	aPrefix, aNum := splitNumericSuffix(a)
	bPrefix, bNum := splitNumericSuffix(b)

	if aPrefix != bPrefix || aNum == "" || bNum == "" {
		return a < b
	}

	// Compare the digit runs as numbers without overflowing
	aTrim, bTrim := strings.TrimLeft(aNum, "0"), strings.TrimLeft(bNum, "0")
	if len(aTrim) != len(bTrim) {
		return len(aTrim) < len(bTrim)
	}
	if aTrim != bTrim {
		return aTrim < bTrim
	}

	return a < b
}

func splitNumericSuffix(id string) (prefix, digits string) {
	i := len(id)
	for i > 0 && id[i-1] >= '0' && id[i-1] <= '9' {
		i--
	}

	return id[:i], id[i:]
}

// SortByID sorts strains in place by LessID.
func SortByID(strains []*Strain) {
	sort.SliceStable(strains, func(i, j int) bool {
		return LessID(strains[i].ID(), strains[j].ID())
	})
}
