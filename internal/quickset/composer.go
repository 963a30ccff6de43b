package quickset

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

const (
	categoryBucketSize = 3
	popularBucketSize  = 4
)

// Offer is the slice of an offer the composer needs.
type Offer struct {
	ID              uuid.UUID
	ItemID          uuid.UUID
	CategoryName    string
	DiscountPercent float64
}

// NamedSet is a curated bundle shown on the quick-sets screen.
type NamedSet struct {
	ID          string
	Name        string
	Description string
	Offers      []Offer
}

// bucket selects offers for one named set. Category matching is by keyword
// substring, the taxonomy is free-form text.
type bucket struct {
	id          string
	name        string
	description string
	keywords    []string
	size        int
}

var buckets = []bucket{
	{
		id:          "dairy",
		name:        "Dairy basket",
		description: "Best discounts on milk, cheese and other dairy",
		keywords:    []string{"dairy", "milk", "cheese", "yogurt"},
		size:        categoryBucketSize,
	},
	{
		id:          "bakery",
		name:        "Bakery basket",
		description: "Fresh bread and pastry at a discount",
		keywords:    []string{"bakery", "bread", "pastry", "bake"},
		size:        categoryBucketSize,
	},
	{
		id:          "popular",
		name:        "Popular now",
		description: "Top discounts across all categories",
		keywords:    nil,
		size:        popularBucketSize,
	},
}

// Compose builds the fixed sequence of named sets from the currently
// available offers. Buckets with no matching offers are omitted, an empty
// input yields no sets.
func Compose(available []Offer) []NamedSet {
	out := make([]NamedSet, 0, len(buckets))
	for _, b := range buckets {
		matched := make([]Offer, 0, len(available))
		for _, o := range available {
			if b.keywords == nil || matchesAny(o.CategoryName, b.keywords) {
				matched = append(matched, o)
			}
		}
		if len(matched) == 0 {
			continue
		}
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].DiscountPercent > matched[j].DiscountPercent
		})
		if len(matched) > b.size {
			matched = matched[:b.size]
		}
		out = append(out, NamedSet{
			ID:          b.id,
			Name:        b.name,
			Description: b.description,
			Offers:      matched,
		})
	}
	return out
}

func matchesAny(categoryName string, keywords []string) bool {
	lowered := strings.ToLower(categoryName)
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
