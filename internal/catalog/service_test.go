package catalog

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
	"github.com/mirafzalswe/foodsave/pkg/pagination"
)

type fakeRepo struct {
	categories []models.Category
	items      []models.Item
	itemByID   map[uuid.UUID]models.Item
	err        error

	gotFilter ItemFilter
	gotPage   pagination.Params
}

func (f *fakeRepo) ListCategories(context.Context) ([]models.Category, error) {
	return f.categories, f.err
}

func (f *fakeRepo) ListItems(_ context.Context, filter ItemFilter, page pagination.Params) ([]models.Item, int64, error) {
	f.gotFilter = filter
	f.gotPage = page
	return f.items, int64(len(f.items)), f.err
}

func (f *fakeRepo) FindItemByID(_ context.Context, id uuid.UUID) (models.Item, error) {
	if f.err != nil {
		return models.Item{}, f.err
	}
	item, ok := f.itemByID[id]
	if !ok {
		return models.Item{}, gorm.ErrRecordNotFound
	}
	return item, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestListItems_NormalizesPagination(t *testing.T) {
	repo := &fakeRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	page, err := svc.ListItems(context.Background(), ItemFilter{}, pagination.Params{Page: 0, PageSize: 0})
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if page.Page != 1 || page.PageSize != pagination.DefaultPageSize {
		t.Fatalf("expected normalized page, got page=%d size=%d", page.Page, page.PageSize)
	}
	if repo.gotPage.PageSize != pagination.DefaultPageSize {
		t.Fatalf("repo should receive normalized params, got %+v", repo.gotPage)
	}
}

func TestGetItem_NotFound(t *testing.T) {
	svc, err := NewService(&fakeRepo{itemByID: map[uuid.UUID]models.Item{}})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.GetItem(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetItem_RequiresID(t *testing.T) {
	svc, _ := NewService(&fakeRepo{})

	_, err := svc.GetItem(context.Background(), uuid.Nil)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetItem_FiltersOffersToPurchasable(t *testing.T) {
	itemID := uuid.New()
	yesterday := date(2026, time.March, 1)
	lastWeek := date(2026, time.February, 22)

	item := models.Item{
		ID:     itemID,
		Title:  "Farm milk 1L",
		Unit:   enums.ItemUnitLiter,
		Vendor: &models.Vendor{Name: "GreenMart"},
		Offers: []models.Offer{
			{
				ID:              uuid.New(),
				ItemID:          itemID,
				OriginalPrice:   decimal.NewFromInt(15000),
				DiscountPercent: 25,
				StartDate:       yesterday,
				IsActive:        true,
				Status:          enums.OfferStatusAvailable,
			},
			{
				// lapsed window
				ID:              uuid.New(),
				ItemID:          itemID,
				OriginalPrice:   decimal.NewFromInt(9000),
				DiscountPercent: 50,
				StartDate:       lastWeek,
				EndDate:         &yesterday,
				IsActive:        true,
				Status:          enums.OfferStatusAvailable,
			},
			{
				ID:              uuid.New(),
				ItemID:          itemID,
				OriginalPrice:   decimal.NewFromInt(8000),
				DiscountPercent: 30,
				StartDate:       lastWeek,
				IsActive:        true,
				Status:          enums.OfferStatusSoldOut,
			},
		},
	}

	repo := &fakeRepo{itemByID: map[uuid.UUID]models.Item{itemID: item}}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	svc.(*service).now = func() time.Time { return date(2026, time.March, 15) }

	detail, err := svc.GetItem(context.Background(), itemID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if len(detail.Offers) != 1 {
		t.Fatalf("expected 1 purchasable offer, got %d", len(detail.Offers))
	}

	offer := detail.Offers[0]
	if offer.CurrentPrice.String() != "11250" {
		t.Fatalf("expected derived price 11250, got %s", offer.CurrentPrice)
	}
	if offer.VendorName != "GreenMart" {
		t.Fatalf("vendor name not mapped, got %q", offer.VendorName)
	}
	if offer.BadgeType != enums.BadgeTypeDiscount.String() || offer.BadgeText != "-25%" {
		t.Fatalf("unexpected badge %s %q", offer.BadgeType, offer.BadgeText)
	}
}
