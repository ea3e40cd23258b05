// Package rank filters, deduplicates, and orders normalized deals under a
// target price-per-TB band.
package rank

import (
	"cmp"
	"slices"

	domain "github.com/pip3-kill-me/ebay-scraper/pkg/types"
)

// Rank filters deals to the inclusive [minPerTB, maxPerTB] band,
// deduplicates by (title, capacity, price) — the same listing resurfaces
// across paginated result fetches — and returns at most wanted deals
// ordered by ascending price-per-TB, ties broken by ascending price.
// Rank is a pure function of its inputs and idempotent on its own output.
func Rank(deals []domain.Deal, minPerTB, maxPerTB float64, wanted int) []domain.Deal {
	if wanted <= 0 {
		return nil
	}

	seen := make(map[domain.Key]struct{}, len(deals))
	kept := make([]domain.Deal, 0, len(deals))
	for _, d := range deals {
		if d.PricePerTB < minPerTB || d.PricePerTB > maxPerTB {
			continue
		}
		key := d.DealKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, d)
	}

	slices.SortStableFunc(kept, func(a, b domain.Deal) int {
		if c := cmp.Compare(a.PricePerTB, b.PricePerTB); c != 0 {
			return c
		}
		return cmp.Compare(a.Price, b.Price)
	})

	if len(kept) > wanted {
		kept = kept[:wanted]
	}
	return kept
}

// MatchCount reports how many distinct deals fall inside the band — the
// collection loop's early-termination counter.
func MatchCount(deals []domain.Deal, minPerTB, maxPerTB float64) int {
	seen := make(map[domain.Key]struct{}, len(deals))
	for _, d := range deals {
		if d.PricePerTB < minPerTB || d.PricePerTB > maxPerTB {
			continue
		}
		seen[d.DealKey()] = struct{}{}
	}
	return len(seen)
}
