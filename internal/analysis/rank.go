package analysis

import (
	"sort"

	"github.com/lox/crimereport/internal/models"
)

// TopCategories ranks the n most frequent non-empty values of the field
// selected by key. Ties are broken by first-occurrence order in the input,
// which makes the ranking deterministic for a given table.
func TopCategories(t *Table, key func(models.IncidentRecord) string, n int) CategoryCountView {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, r := range t.Records {
		c := key(r)
		if c == "" {
			continue
		}
		if _, seen := counts[c]; !seen {
			firstSeen[c] = i
		}
		counts[c]++
	}

	cats := make([]string, 0, len(counts))
	for c := range counts {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		if counts[cats[i]] != counts[cats[j]] {
			return counts[cats[i]] > counts[cats[j]]
		}
		return firstSeen[cats[i]] < firstSeen[cats[j]]
	})

	if n > 0 && len(cats) > n {
		cats = cats[:n]
	}

	view := make(CategoryCountView, len(cats))
	for i, c := range cats {
		view[i] = CategoryCount{Category: c, Count: counts[c]}
	}
	return view
}

// RateByCategory computes the mean of a boolean field per category,
// restricted to exactly the categories of the given ranking and in that
// order. Categories with zero qualifying rows are omitted.
func RateByCategory(t *Table, ranking CategoryCountView, key func(models.IncidentRecord) string, value func(models.IncidentRecord) bool) RateByCategoryView {
	inScope := make(map[string]bool, len(ranking))
	for _, c := range ranking {
		inScope[c.Category] = true
	}

	totals := make(map[string]int, len(ranking))
	hits := make(map[string]int, len(ranking))
	for _, r := range t.Records {
		c := key(r)
		if !inScope[c] {
			continue
		}
		totals[c]++
		if value(r) {
			hits[c]++
		}
	}

	view := make(RateByCategoryView, 0, len(ranking))
	for _, c := range ranking {
		n := totals[c.Category]
		if n == 0 {
			continue
		}
		view = append(view, CategoryRate{
			Category: c.Category,
			Rate:     float64(hits[c.Category]) / float64(n),
		})
	}
	return view
}
