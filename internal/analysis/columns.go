package analysis

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/textlens/internal/model"
)

// DefaultColumnTop is the number of words reported for a column by default.
const DefaultColumnTop = 10

const minColumnWordRunes = 3

// ColumnFrequency counts words across the cells of a text column. Cells are
// lowercased and split on whitespace; words shorter than three runes are
// ignored. The result is ordered by descending count, ties in first-appearance
// order, and truncated to limit (DefaultColumnTop when limit <= 0).
func ColumnFrequency(cells []string, limit int) []model.WordCount {
	if limit <= 0 {
		limit = DefaultColumnTop
	}
	counts := map[string]int{}
	var order []string
	for _, cell := range cells {
		for _, word := range strings.Fields(strings.ToLower(cell)) {
			if utf8.RuneCountInString(word) < minColumnWordRunes {
				continue
			}
			if _, seen := counts[word]; !seen {
				order = append(order, word)
			}
			counts[word]++
		}
	}
	out := make([]model.WordCount, 0, len(order))
	for _, word := range order {
		out = append(out, model.WordCount{Word: word, Count: counts[word]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
