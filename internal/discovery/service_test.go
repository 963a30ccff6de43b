package discovery

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mirafzalswe/foodsave/internal/geo"
	"github.com/mirafzalswe/foodsave/internal/quickset"
	"github.com/mirafzalswe/foodsave/pkg/config"
	"github.com/mirafzalswe/foodsave/pkg/db/models"
	"github.com/mirafzalswe/foodsave/pkg/enums"
	pkgerrors "github.com/mirafzalswe/foodsave/pkg/errors"
)

type fakeOfferSource struct {
	offers []models.Offer
	err    error
}

func (f *fakeOfferSource) ListAvailableOffers(context.Context, time.Time) ([]models.Offer, error) {
	return f.offers, f.err
}

type fakeBranchSource struct {
	branches []models.Branch
}

func (f *fakeBranchSource) ListActiveBranches(context.Context) ([]models.Branch, error) {
	return f.branches, nil
}

type fakeSetStore struct {
	saved map[string][]quickset.CustomSet
}

func newFakeSetStore() *fakeSetStore {
	return &fakeSetStore{saved: map[string][]quickset.CustomSet{}}
}

func (f *fakeSetStore) Save(_ context.Context, sessionID, name string, offerIDs []uuid.UUID) (quickset.CustomSet, error) {
	set := quickset.CustomSet{ID: uuid.New(), Name: name, OfferIDs: offerIDs, CreatedAt: time.Now()}
	f.saved[sessionID] = append(f.saved[sessionID], set)
	return set, nil
}

func (f *fakeSetStore) List(_ context.Context, sessionID string) ([]quickset.CustomSet, error) {
	return f.saved[sessionID], nil
}

func availableOffer(category string, discount float64) models.Offer {
	itemID := uuid.New()
	return models.Offer{
		ID:              uuid.New(),
		ItemID:          itemID,
		OriginalPrice:   decimal.NewFromInt(10000),
		DiscountPercent: discount,
		StartDate:       time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		IsActive:        true,
		Status:          enums.OfferStatusAvailable,
		Item: &models.Item{
			ID:       itemID,
			Title:    category + " item",
			Unit:     enums.ItemUnitPieces,
			Vendor:   &models.Vendor{Name: "GreenMart"},
			Category: &models.Category{Name: category},
		},
	}
}

func newTestService(t *testing.T, offers *fakeOfferSource, branches *fakeBranchSource) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Offers:     offers,
		Branches:   branches,
		CustomSets: newFakeSetStore(),
		Rand:       rand.New(rand.NewSource(7)),
		Map:        config.MapConfig{MaxResults: 20},
		Recommend:  config.RecommendConfig{MaxCount: 12},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestRecommendations_BadgesAndExclusion(t *testing.T) {
	hot := availableOffer("Dairy", 60)
	plain := availableOffer("Bakery", 25)
	excluded := availableOffer("Fruits", 80)

	svc := newTestService(t, &fakeOfferSource{offers: []models.Offer{hot, plain, excluded}}, &fakeBranchSource{})

	recs, err := svc.Recommendations(context.Background(), []uuid.UUID{excluded.ItemID})
	if err != nil {
		t.Fatalf("recommendations: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	for _, rec := range recs {
		if rec.ItemID == excluded.ItemID {
			t.Fatalf("excluded item leaked into recommendations")
		}
		switch rec.ID {
		case hot.ID:
			if rec.BadgeType != enums.BadgeTypeHot.String() {
				t.Fatalf("expected hot badge, got %s", rec.BadgeType)
			}
		case plain.ID:
			if rec.BadgeText != "-25%" {
				t.Fatalf("expected -25%% badge, got %q", rec.BadgeText)
			}
		}
	}
}

func TestQuickSets_ComposedFromSnapshot(t *testing.T) {
	offers := []models.Offer{
		availableOffer("Dairy", 40),
		availableOffer("Milk drinks", 30),
		availableOffer("Bakery", 20),
		availableOffer("Vegetables", 55),
	}
	svc := newTestService(t, &fakeOfferSource{offers: offers}, &fakeBranchSource{})

	sets, err := svc.QuickSets(context.Background())
	if err != nil {
		t.Fatalf("quick sets: %v", err)
	}
	if len(sets) != 3 {
		t.Fatalf("expected dairy, bakery and popular sets, got %d", len(sets))
	}
	if sets[0].ID != "dairy" || len(sets[0].Items) != 2 {
		t.Fatalf("unexpected dairy set: %+v", sets[0])
	}
	if sets[2].ID != "popular" || len(sets[2].Items) != 4 {
		t.Fatalf("unexpected popular set: %+v", sets[2])
	}
	if sets[2].Items[0].DiscountPercent != 55 {
		t.Fatalf("popular should lead with best discount, got %.0f", sets[2].Items[0].DiscountPercent)
	}
}

func TestSaveCustomSet_RejectsUnavailableOffer(t *testing.T) {
	offer := availableOffer("Dairy", 30)
	svc := newTestService(t, &fakeOfferSource{offers: []models.Offer{offer}}, &fakeBranchSource{})

	_, err := svc.SaveCustomSet(context.Background(), "sess-1", "Mine", []uuid.UUID{uuid.New()})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	saved, err := svc.SaveCustomSet(context.Background(), "sess-1", "Mine", []uuid.UUID{offer.ID})
	if err != nil {
		t.Fatalf("save custom set: %v", err)
	}
	if saved.Name != "Mine" || len(saved.OfferIDs) != 1 {
		t.Fatalf("unexpected saved set: %+v", saved)
	}

	sets, err := svc.ListCustomSets(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("list custom sets: %v", err)
	}
	if len(sets) != 1 {
		t.Fatalf("expected 1 saved set, got %d", len(sets))
	}
}

func TestNearby_RanksBranches(t *testing.T) {
	lat := func(v float64) *float64 { return &v }

	near := models.Branch{
		ID: uuid.New(), VendorID: uuid.New(), Name: "Central", Address: "Center 1",
		Latitude: lat(41.312), Longitude: lat(69.28),
		Vendor: &models.Vendor{Name: "GreenMart"},
	}
	far := models.Branch{
		ID: uuid.New(), VendorID: uuid.New(), Name: "Airport", Address: "Far 9",
		Latitude: lat(41.26), Longitude: lat(69.17),
		Vendor: &models.Vendor{Name: "Bakehouse"},
	}
	unmapped := models.Branch{
		ID: uuid.New(), VendorID: uuid.New(), Name: "New", Address: "Unknown",
	}

	svc := newTestService(t, &fakeOfferSource{}, &fakeBranchSource{branches: []models.Branch{far, near, unmapped}})

	ranked, err := svc.Nearby(context.Background(), &geo.Point{Lat: 41.3111, Lng: 69.2797})
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("expected 2 mapped branches, got %d", len(ranked))
	}
	if ranked[0].BranchID != near.ID || ranked[0].VendorName != "GreenMart" {
		t.Fatalf("unexpected first result: %+v", ranked[0])
	}
	if ranked[0].DistanceKM >= ranked[1].DistanceKM {
		t.Fatalf("results not ascending: %+v", ranked)
	}
}

func TestNearby_NilUserLocation(t *testing.T) {
	lat := 41.3
	branch := models.Branch{ID: uuid.New(), Latitude: &lat, Longitude: &lat}
	svc := newTestService(t, &fakeOfferSource{}, &fakeBranchSource{branches: []models.Branch{branch}})

	ranked, err := svc.Nearby(context.Background(), nil)
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if len(ranked) != 0 {
		t.Fatalf("expected empty result without a location, got %d", len(ranked))
	}
}
