package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mirafzalswe/foodsave/internal/availability"
	"github.com/mirafzalswe/foodsave/pkg/db/models"
	pkgerrors "github.com/mirafzalswe/foodsave/pkg/errors"
	"github.com/mirafzalswe/foodsave/pkg/pagination"
)

// Service exposes the read side of the catalog.
type Service interface {
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	ListItems(ctx context.Context, filter ItemFilter, page pagination.Params) (*ItemPageDTO, error)
	GetItem(ctx context.Context, id uuid.UUID) (*ItemDetailDTO, error)
}

// ItemPageDTO wraps an item page with its pagination echo.
type ItemPageDTO struct {
	Items    []ItemDTO `json:"items"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

type repository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListItems(ctx context.Context, filter ItemFilter, page pagination.Params) ([]models.Item, int64, error)
	FindItemByID(ctx context.Context, id uuid.UUID) (models.Item, error)
}

type service struct {
	repo repository
	now  func() time.Time
}

// NewService wires catalog dependencies.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	out := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, NewCategoryDTO(c))
	}
	return out, nil
}

func (s *service) ListItems(ctx context.Context, filter ItemFilter, page pagination.Params) (*ItemPageDTO, error) {
	normalized := page.Normalize()
	items, total, err := s.repo.ListItems(ctx, filter, normalized)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list items")
	}

	dtos := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, NewItemDTO(item))
	}
	return &ItemPageDTO{
		Items:    dtos,
		Total:    total,
		Page:     normalized.Page,
		PageSize: normalized.PageSize,
	}, nil
}

// GetItem returns the item detail. Only offers purchasable today are listed
// on the detail page.
func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*ItemDetailDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}

	item, err := s.repo.FindItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}

	today := s.now()
	live := make([]models.Offer, 0, len(item.Offers))
	for _, offer := range item.Offers {
		if !availability.IsOfferActive(offer, today) {
			continue
		}
		// relations for DTO mapping come from the parent item
		offer.Item = &item
		live = append(live, offer)
	}

	return &ItemDetailDTO{
		ItemDTO: NewItemDTO(item),
		Offers:  NewOfferDTOs(live),
	}, nil
}
