package offers

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mirafzalswe/foodsave/pkg/db/models"
	"github.com/mirafzalswe/foodsave/pkg/enums"
	pkgerrors "github.com/mirafzalswe/foodsave/pkg/errors"
)

type fakeRepo struct {
	offers map[uuid.UUID]models.Offer

	statusUpdates int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{offers: map[uuid.UUID]models.Offer{}}
}

func (f *fakeRepo) Create(_ context.Context, offer *models.Offer) error {
	stored := *offer
	stored.Item = &models.Item{ID: offer.ItemID, Title: "Stored item", Unit: enums.ItemUnitPieces}
	f.offers[offer.ID] = stored
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (models.Offer, error) {
	offer, ok := f.offers[id]
	if !ok {
		return models.Offer{}, gorm.ErrRecordNotFound
	}
	return offer, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enums.OfferStatus) error {
	offer := f.offers[id]
	offer.Status = status
	f.offers[id] = offer
	f.statusUpdates++
	return nil
}

func expectCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != code {
		t.Fatalf("expected %s, got %v", code, err)
	}
}

func fixedNow(svc Service, t time.Time) {
	svc.(*service).now = func() time.Time { return t }
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateOffer_Validation(t *testing.T) {
	svc, err := NewService(newFakeRepo())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()
	start := day(2026, time.March, 1)

	_, err = svc.CreateOffer(ctx, CreateOfferInput{OriginalPrice: decimal.NewFromInt(100), DiscountPercent: 10, StartDate: start})
	expectCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateOffer(ctx, CreateOfferInput{ItemID: uuid.New(), OriginalPrice: decimal.NewFromInt(100), DiscountPercent: 120, StartDate: start})
	expectCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateOffer(ctx, CreateOfferInput{ItemID: uuid.New(), OriginalPrice: decimal.NewFromInt(-1), DiscountPercent: 10, StartDate: start})
	expectCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateOffer(ctx, CreateOfferInput{ItemID: uuid.New(), OriginalPrice: decimal.NewFromInt(100), DiscountPercent: 10, Quantity: -1, StartDate: start})
	expectCode(t, err, pkgerrors.CodeValidation)

	early := day(2026, time.February, 1)
	_, err = svc.CreateOffer(ctx, CreateOfferInput{ItemID: uuid.New(), OriginalPrice: decimal.NewFromInt(100), DiscountPercent: 10, StartDate: start, EndDate: &early})
	expectCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateOffer_DerivesPriceAndStatus(t *testing.T) {
	repo := newFakeRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	fixedNow(svc, day(2026, time.March, 10))

	dto, err := svc.CreateOffer(context.Background(), CreateOfferInput{
		ItemID:          uuid.New(),
		OriginalPrice:   decimal.NewFromInt(15000),
		DiscountPercent: 25,
		Quantity:        5,
		StartDate:       day(2026, time.March, 1),
	})
	if err != nil {
		t.Fatalf("create offer: %v", err)
	}
	if dto.CurrentPrice.String() != "11250" {
		t.Fatalf("expected derived price 11250, got %s", dto.CurrentPrice)
	}
	if dto.Status != enums.OfferStatusAvailable.String() {
		t.Fatalf("started offer should be available, got %s", dto.Status)
	}

	future, err := svc.CreateOffer(context.Background(), CreateOfferInput{
		ItemID:          uuid.New(),
		OriginalPrice:   decimal.NewFromInt(8000),
		DiscountPercent: 30,
		StartDate:       day(2026, time.April, 1),
	})
	if err != nil {
		t.Fatalf("create future offer: %v", err)
	}
	if future.Status != enums.OfferStatusPending.String() {
		t.Fatalf("future offer should be pending, got %s", future.Status)
	}
}

func TestChangeStatus_TransitionRules(t *testing.T) {
	repo := newFakeRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	fixedNow(svc, day(2026, time.March, 10))
	ctx := context.Background()

	dto, err := svc.CreateOffer(ctx, CreateOfferInput{
		ItemID:          uuid.New(),
		OriginalPrice:   decimal.NewFromInt(100),
		DiscountPercent: 10,
		StartDate:       day(2026, time.March, 1),
	})
	if err != nil {
		t.Fatalf("create offer: %v", err)
	}

	reserved, err := svc.ChangeStatus(ctx, dto.ID, enums.OfferStatusReserved)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if reserved.Status != enums.OfferStatusReserved.String() {
		t.Fatalf("expected reserved, got %s", reserved.Status)
	}

	_, err = svc.ChangeStatus(ctx, dto.ID, enums.OfferStatusAvailable)
	expectCode(t, err, pkgerrors.CodeStateConflict)

	sold, err := svc.ChangeStatus(ctx, dto.ID, enums.OfferStatusSoldOut)
	if err != nil {
		t.Fatalf("sell out: %v", err)
	}
	if sold.Status != enums.OfferStatusSoldOut.String() {
		t.Fatalf("expected sold out, got %s", sold.Status)
	}

	// terminal status requests are no-ops
	updates := repo.statusUpdates
	again, err := svc.ChangeStatus(ctx, dto.ID, enums.OfferStatusExpired)
	if err != nil {
		t.Fatalf("terminal no-op: %v", err)
	}
	if again.Status != enums.OfferStatusSoldOut.String() {
		t.Fatalf("terminal status should not change, got %s", again.Status)
	}
	if repo.statusUpdates != updates {
		t.Fatalf("terminal no-op must not write")
	}
}

func TestChangeStatus_NotFound(t *testing.T) {
	svc, _ := NewService(newFakeRepo())
	_, err := svc.ChangeStatus(context.Background(), uuid.New(), enums.OfferStatusReserved)
	expectCode(t, err, pkgerrors.CodeNotFound)
}
