package extract

import (
	"sort"

	"github.com/danielsohn/chronica/internal/model"
)

// ProportionalQuotas distributes target selections across books proportional
// to their candidate counts, using largest-remainder correction (Hamilton
// apportionment). Every book with candidates gets at least 1; no book ever
// exceeds its pool. The books slice fixes iteration order so ties break
// deterministically.
func ProportionalQuotas(books []string, counts map[string]int, target int) map[string]int {
	total := 0
	for _, book := range books {
		total += counts[book]
	}

	quotas := make(map[string]int, len(books))
	if total == 0 {
		for _, book := range books {
			quotas[book] = 0
		}
		return quotas
	}

	fractions := make(map[string]float64, len(books))
	current := 0
	for _, book := range books {
		cnt := counts[book]
		raw := float64(target) * float64(cnt) / float64(total)
		q := int(raw)
		if q < 1 {
			q = 1
		}
		if q > cnt {
			q = cnt
		}
		quotas[book] = q
		fractions[book] = raw - float64(int(raw))
		current += q
	}

	if current < target {
		var expandable []string
		for _, book := range books {
			if quotas[book] < counts[book] {
				expandable = append(expandable, book)
			}
		}
		sort.SliceStable(expandable, func(i, j int) bool {
			return fractions[expandable[i]] > fractions[expandable[j]]
		})
		for idx := 0; current < target && len(expandable) > 0; idx++ {
			book := expandable[idx%len(expandable)]
			if quotas[book] < counts[book] {
				quotas[book]++
				current++
			}
			if idx > len(expandable)*(target+2) {
				break
			}
		}
	}

	if current > target {
		var reducible []string
		for _, book := range books {
			if quotas[book] > 1 {
				reducible = append(reducible, book)
			}
		}
		sort.SliceStable(reducible, func(i, j int) bool {
			return fractions[reducible[i]] < fractions[reducible[j]]
		})
		for idx := 0; current > target && len(reducible) > 0; idx++ {
			book := reducible[idx%len(reducible)]
			if quotas[book] > 1 {
				quotas[book]--
				current--
			}
			if idx > len(reducible)*(target+2) {
				break
			}
		}
	}

	return quotas
}

// PickEvenly selects quota candidates from a book's sorted pool by midpoint
// stride sampling: the pool index range is split into quota equal-width
// windows and the midpoint of each is taken, so picks span the whole book
// instead of clustering at its start. Rounding collisions are deduplicated
// and backfilled from the pool in original order.
func PickEvenly(items []model.CandidateEvent, quota int) []model.CandidateEvent {
	if quota >= len(items) {
		return append([]model.CandidateEvent(nil), items...)
	}
	if quota <= 0 {
		return nil
	}
	if quota == 1 {
		return []model.CandidateEvent{items[len(items)/2]}
	}

	n := len(items)
	selected := make([]model.CandidateEvent, 0, quota)
	for i := 0; i < quota; i++ {
		start := i * n / quota
		end := (i + 1) * n / quota
		idx := (start + max(start, end-1)) / 2
		selected = append(selected, items[idx])
	}

	seen := make(map[string]bool, quota)
	unique := make([]model.CandidateEvent, 0, quota)
	for _, item := range selected {
		if key := item.Key(); !seen[key] {
			seen[key] = true
			unique = append(unique, item)
		}
	}

	for len(unique) < quota {
		grew := false
		for _, item := range items {
			if key := item.Key(); !seen[key] {
				seen[key] = true
				unique = append(unique, item)
				grew = true
				if len(unique) == quota {
					break
				}
			}
		}
		if !grew {
			break
		}
	}

	sort.SliceStable(unique, func(i, j int) bool {
		a, b := unique[i], unique[j]
		if a.CanonicalOrder != b.CanonicalOrder {
			return a.CanonicalOrder < b.CanonicalOrder
		}
		if a.StartChapter != b.StartChapter {
			return a.StartChapter < b.StartChapter
		}
		return a.StartVerse < b.StartVerse
	})

	return unique
}

// SelectEvents applies per-book quotas over all candidates and returns the
// final selection in global canonical order, which fixes sequence_index.
func SelectEvents(candidates []model.CandidateEvent, canonical map[string]int, target int) []model.CandidateEvent {
	grouped := make(map[string][]model.CandidateEvent)
	var books []string
	for _, cand := range candidates {
		if _, ok := grouped[cand.BookName]; !ok {
			books = append(books, cand.BookName)
		}
		grouped[cand.BookName] = append(grouped[cand.BookName], cand)
	}
	sort.SliceStable(books, func(i, j int) bool {
		return canonical[books[i]] < canonical[books[j]]
	})

	counts := make(map[string]int, len(books))
	for _, book := range books {
		counts[book] = len(grouped[book])
	}
	quotas := ProportionalQuotas(books, counts, target)

	var selected []model.CandidateEvent
	for _, book := range books {
		selected = append(selected, PickEvenly(grouped[book], quotas[book])...)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		a, b := selected[i], selected[j]
		if a.CanonicalOrder != b.CanonicalOrder {
			return a.CanonicalOrder < b.CanonicalOrder
		}
		if a.StartChapter != b.StartChapter {
			return a.StartChapter < b.StartChapter
		}
		return a.StartVerse < b.StartVerse
	})

	return selected
}
