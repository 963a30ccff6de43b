package recommend

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/mirafzalswe/foodsave/pkg/enums"
)

func newRNG() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func makeOffers(discounts ...float64) []Offer {
	out := make([]Offer, 0, len(discounts))
	for _, d := range discounts {
		out = append(out, Offer{ID: uuid.New(), ItemID: uuid.New(), DiscountPercent: d})
	}
	return out
}

func TestSelect_EmptyInput(t *testing.T) {
	if got := Select(newRNG(), nil, nil, DefaultMaxCount); len(got) != 0 {
		t.Fatalf("expected empty selection, got %d offers", len(got))
	}
}

func TestSelect_HighValueBucketLeadsSortedByDiscount(t *testing.T) {
	offers := makeOffers(25, 60, 40, 10, 5)

	got := Select(newRNG(), offers, nil, DefaultMaxCount)
	if len(got) < 3 {
		t.Fatalf("expected at least the three high-value offers, got %d", len(got))
	}
	want := []float64{60, 40, 25}
	for i, pct := range want {
		if got[i].DiscountPercent != pct {
			t.Fatalf("position %d: got discount %.0f, want %.0f", i, got[i].DiscountPercent, pct)
		}
	}
}

func TestSelect_CapsAtMaxCount(t *testing.T) {
	offers := make([]Offer, 0, 30)
	for i := 0; i < 30; i++ {
		offers = append(offers, Offer{ID: uuid.New(), ItemID: uuid.New(), DiscountPercent: float64(20 + i)})
	}

	got := Select(newRNG(), offers, nil, DefaultMaxCount)
	if len(got) != DefaultMaxCount {
		t.Fatalf("got %d offers, want %d", len(got), DefaultMaxCount)
	}
}

func TestSelect_ExcludedItemsNeverReturned(t *testing.T) {
	offers := makeOffers(70, 30, 25, 15)
	excluded := []uuid.UUID{offers[0].ItemID, offers[3].ItemID}

	got := Select(newRNG(), offers, excluded, DefaultMaxCount)
	for _, o := range got {
		for _, ex := range excluded {
			if o.ItemID == ex {
				t.Fatalf("excluded item %s appeared in selection", ex)
			}
		}
	}
	if len(got) != 2 {
		t.Fatalf("got %d offers, want 2", len(got))
	}
}

func TestSelect_DeduplicatesByItem(t *testing.T) {
	item := uuid.New()
	offers := []Offer{
		{ID: uuid.New(), ItemID: item, DiscountPercent: 55},
		{ID: uuid.New(), ItemID: item, DiscountPercent: 30},
		{ID: uuid.New(), ItemID: uuid.New(), DiscountPercent: 25},
	}

	got := Select(newRNG(), offers, nil, DefaultMaxCount)
	seen := map[uuid.UUID]int{}
	for _, o := range got {
		seen[o.ItemID]++
	}
	if seen[item] != 1 {
		t.Fatalf("item appeared %d times, want 1", seen[item])
	}
	if got[0].DiscountPercent != 55 {
		t.Fatalf("first-seen offer for the item should win, got discount %.0f", got[0].DiscountPercent)
	}
}

func TestSelect_LowDiscountOffersStillReachableViaDiversity(t *testing.T) {
	// With no offer above the high-value threshold the whole result comes
	// from the random bucket.
	offers := makeOffers(5, 10, 15)

	got := Select(newRNG(), offers, nil, DefaultMaxCount)
	if len(got) != 3 {
		t.Fatalf("got %d offers, want 3", len(got))
	}
	ids := map[uuid.UUID]bool{}
	for _, o := range offers {
		ids[o.ID] = true
	}
	for _, o := range got {
		if !ids[o.ID] {
			t.Fatalf("selection returned unknown offer %s", o.ID)
		}
	}
}

func TestSelect_MembersAlwaysFromInput(t *testing.T) {
	offers := makeOffers(80, 60, 45, 30, 22, 18, 12, 9, 3)
	ids := map[uuid.UUID]bool{}
	for _, o := range offers {
		ids[o.ID] = true
	}

	for seed := int64(0); seed < 10; seed++ {
		rng := rand.New(rand.NewSource(seed))
		for _, o := range Select(rng, offers, nil, DefaultMaxCount) {
			if !ids[o.ID] {
				t.Fatalf("seed %d: unknown offer %s", seed, o.ID)
			}
		}
	}
}

func TestBadgeFor(t *testing.T) {
	tests := []struct {
		pct       float64
		wantType  enums.BadgeType
		wantLabel string
	}{
		{50, enums.BadgeTypeHot, HotBadgeLabel},
		{75, enums.BadgeTypeHot, HotBadgeLabel},
		{49.9, enums.BadgeTypeDiscount, "-49%"},
		{25, enums.BadgeTypeDiscount, "-25%"},
		{0, enums.BadgeTypeDiscount, "-0%"},
	}
	for _, tc := range tests {
		badge := BadgeFor(tc.pct)
		if badge.Type != tc.wantType {
			t.Fatalf("pct %.1f: got type %s, want %s", tc.pct, badge.Type, tc.wantType)
		}
		if badge.Label != tc.wantLabel {
			t.Fatalf("pct %.1f: got label %q, want %q", tc.pct, badge.Label, tc.wantLabel)
		}
	}
}
