// Package pricing resolves which duration tiers apply to a booked total of
// hours and aggregates the per-person price and piece allowance.
package pricing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/craftday/workshop-booking-service/internal/domain"
)

// User-facing labels for the degenerate pricing states
const (
	LabelSelectSlots = "Select slots to see pricing"
	LabelNoTier      = "No tier selected"
)

// Result is the resolved pricing for one selection
type Result struct {
	// AppliedTierCounts maps tier ID to how many times it is applied.
	// The same tier may apply more than once, e.g. two 2-hour tiers for
	// a 4-hour booking.
	AppliedTierCounts map[int64]int
	PricePerPerson    float64
	PiecesPerPerson   int
	Label             string
}

// Applied returns true if at least one tier was applied
func (r *Result) Applied() bool {
	return len(r.AppliedTierCounts) > 0
}

// Resolve finds the combination of active tiers whose hours sum exactly to
// totalHours, searching largest-tier-first with backtracking: the first
// successful descending-order combination wins. Admin-configured catalogs
// rely on this exact tie-break for predictable customer pricing, so the
// search is deliberately not a minimum-count or minimum-price optimization.
//
// When no exact combination exists, the highest tier not exceeding
// totalHours is applied alone; when every tier exceeds totalHours, no tier
// applies at all.
//
// totalHours is the number of selected slots: one selected slot counts as
// one tier hour regardless of the slot's actual duration in minutes.
func Resolve(tiers []domain.PricingTier, totalHours int) Result {
	if totalHours <= 0 {
		return Result{AppliedTierCounts: map[int64]int{}, Label: LabelSelectSlots}
	}

	active := activeTiers(tiers)
	if len(active) == 0 {
		return Result{AppliedTierCounts: map[int64]int{}, Label: LabelSelectSlots}
	}

	applied := findExactCombination(active, totalHours)
	if len(applied) == 0 {
		fallback := highestFittingTier(active, totalHours)
		if fallback == nil {
			return Result{AppliedTierCounts: map[int64]int{}, Label: LabelNoTier}
		}
		applied = []domain.PricingTier{*fallback}
	}

	result := Result{AppliedTierCounts: make(map[int64]int, len(applied))}
	for _, tier := range applied {
		result.PricePerPerson += tier.PricePerPerson
		result.PiecesPerPerson += tier.PiecesPerPerson
		result.AppliedTierCounts[tier.ID]++
	}
	result.Label = buildLabel(applied)

	return result
}

// activeTiers filters to usable tiers: active with positive hours.
func activeTiers(tiers []domain.PricingTier) []domain.PricingTier {
	active := make([]domain.PricingTier, 0, len(tiers))
	for _, t := range tiers {
		if t.IsActive && t.Hours > 0 {
			active = append(active, t)
		}
	}
	return active
}

// findExactCombination searches for tiers summing exactly to totalHours.
// Tiers are tried in (hours desc, sort_order asc) order and may repeat;
// failed remainders are memoized so the search stays linear in totalHours
// times the tier count. The memo is local to one invocation: tier sets
// differ between calls, so no cross-call cache is safe.
func findExactCombination(tiers []domain.PricingTier, totalHours int) []domain.PricingTier {
	desc := make([]domain.PricingTier, len(tiers))
	copy(desc, tiers)
	sort.SliceStable(desc, func(i, j int) bool {
		if desc[i].Hours != desc[j].Hours {
			return desc[i].Hours > desc[j].Hours
		}
		return desc[i].SortOrder < desc[j].SortOrder
	})

	failed := make(map[int]bool)

	var solve func(remaining int) ([]domain.PricingTier, bool)
	solve = func(remaining int) ([]domain.PricingTier, bool) {
		if remaining == 0 {
			return nil, true
		}
		if failed[remaining] {
			return nil, false
		}

		for _, tier := range desc {
			if tier.Hours > remaining {
				continue
			}
			if rest, ok := solve(remaining - tier.Hours); ok {
				return append([]domain.PricingTier{tier}, rest...), true
			}
		}

		failed[remaining] = true
		return nil, false
	}

	combination, ok := solve(totalHours)
	if !ok {
		return nil
	}
	return combination
}

// highestFittingTier picks the single-tier approximation for the fallback
// path: scanning ascending by hours, the last tier that still fits wins.
// Tiers sharing the same hours keep their first occurrence as canonical.
func highestFittingTier(tiers []domain.PricingTier, totalHours int) *domain.PricingTier {
	asc := make([]domain.PricingTier, len(tiers))
	copy(asc, tiers)
	sort.SliceStable(asc, func(i, j int) bool {
		return asc[i].Hours < asc[j].Hours
	})

	var best *domain.PricingTier
	for i := range asc {
		if asc[i].Hours > totalHours {
			continue
		}
		if best == nil || asc[i].Hours > best.Hours {
			best = &asc[i]
		}
	}
	return best
}

// buildLabel renders the applied tiers grouped descending by
// (hours desc, sort_order asc): "4h + 2h x 2".
func buildLabel(applied []domain.PricingTier) string {
	sorted := make([]domain.PricingTier, len(applied))
	copy(sorted, applied)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Hours != sorted[j].Hours {
			return sorted[i].Hours > sorted[j].Hours
		}
		return sorted[i].SortOrder < sorted[j].SortOrder
	})

	counts := make(map[int64]int, len(sorted))
	for _, tier := range sorted {
		counts[tier.ID]++
	}

	parts := make([]string, 0, len(counts))
	rendered := make(map[int64]bool, len(counts))
	for _, tier := range sorted {
		if rendered[tier.ID] {
			continue
		}
		rendered[tier.ID] = true

		if counts[tier.ID] > 1 {
			parts = append(parts, fmt.Sprintf("%dh x %d", tier.Hours, counts[tier.ID]))
		} else {
			parts = append(parts, fmt.Sprintf("%dh", tier.Hours))
		}
	}

	return strings.Join(parts, " + ")
}
