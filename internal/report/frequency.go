package report

import (
	"sort"
	"strings"
)

// topByFrequency ranks exact strings by how often they appear across lists.
// Ties keep the order of first appearance. Blank entries are skipped.
func topByFrequency(lists [][]string, n int) []string {
	counts := make(map[string]int)
	var order []string
	for _, list := range lists {
		for _, item := range list {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			if counts[item] == 0 {
				order = append(order, item)
			}
			counts[item]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}
	if order == nil {
		return []string{}
	}
	return order
}
