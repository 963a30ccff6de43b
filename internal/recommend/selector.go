package recommend

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"github.com/mirafzalswe/foodsave/pkg/enums"
)

const (
	// HighValueThreshold is the minimum discount for the high-value bucket.
	HighValueThreshold = 20.0
	// HotThreshold is the discount at which an offer earns the hot badge.
	HotThreshold = 50.0
	// HotBadgeLabel is the fixed label attached to hot offers.
	HotBadgeLabel = "Hot deal"

	highValueBucketSize = 10
	diversityBucketSize = 10

	// DefaultMaxCount caps the combined selection.
	DefaultMaxCount = 12
)

// Offer is the slice of an offer the selector needs. The caller maps its
// persistence models in and resolves the selected ids back out.
type Offer struct {
	ID              uuid.UUID
	ItemID          uuid.UUID
	DiscountPercent float64
}

// Badge is the promotional label derived from an offer's discount.
type Badge struct {
	Type  enums.BadgeType
	Label string
}

// BadgeFor derives the badge for a discount percentage. Discounts at or above
// HotThreshold get the fixed hot label, everything else gets the percentage
// rendered with its integer part.
func BadgeFor(discountPercent float64) Badge {
	if discountPercent >= HotThreshold {
		return Badge{Type: enums.BadgeTypeHot, Label: HotBadgeLabel}
	}
	return Badge{
		Type:  enums.BadgeTypeDiscount,
		Label: fmt.Sprintf("-%d%%", int(discountPercent)),
	}
}

// Select composes a recommendation list from the currently available offers.
// It stacks a high-value bucket (top discounts at or above HighValueThreshold)
// on top of a randomly sampled diversity bucket, drops offers for excluded
// items before bucketing, de-duplicates by item keeping first-seen order, and
// truncates to maxCount. The random source is supplied by the caller so tests
// can pin the sample.
func Select(rng *rand.Rand, available []Offer, excludedItemIDs []uuid.UUID, maxCount int) []Offer {
	if maxCount <= 0 {
		maxCount = DefaultMaxCount
	}

	excluded := make(map[uuid.UUID]struct{}, len(excludedItemIDs))
	for _, id := range excludedItemIDs {
		excluded[id] = struct{}{}
	}

	pool := make([]Offer, 0, len(available))
	for _, o := range available {
		if _, skip := excluded[o.ItemID]; skip {
			continue
		}
		pool = append(pool, o)
	}
	if len(pool) == 0 {
		return nil
	}

	highValue := make([]Offer, 0, len(pool))
	for _, o := range pool {
		if o.DiscountPercent >= HighValueThreshold {
			highValue = append(highValue, o)
		}
	}
	sort.SliceStable(highValue, func(i, j int) bool {
		return highValue[i].DiscountPercent > highValue[j].DiscountPercent
	})
	if len(highValue) > highValueBucketSize {
		highValue = highValue[:highValueBucketSize]
	}

	diversity := sample(rng, pool, diversityBucketSize)

	seen := make(map[uuid.UUID]struct{}, maxCount)
	out := make([]Offer, 0, maxCount)
	for _, o := range append(highValue, diversity...) {
		if _, dup := seen[o.ItemID]; dup {
			continue
		}
		seen[o.ItemID] = struct{}{}
		out = append(out, o)
		if len(out) == maxCount {
			break
		}
	}
	return out
}

// sample draws up to n offers from pool without replacement.
func sample(rng *rand.Rand, pool []Offer, n int) []Offer {
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]Offer, 0, n)
	for _, idx := range rng.Perm(len(pool))[:n] {
		out = append(out, pool[idx])
	}
	return out
}
