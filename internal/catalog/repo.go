package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mirafzalswe/foodsave/internal/availability"
	"github.com/mirafzalswe/foodsave/pkg/db/models"
	"github.com/mirafzalswe/foodsave/pkg/enums"
	"github.com/mirafzalswe/foodsave/pkg/pagination"
)

// ItemFilter narrows catalog listings.
type ItemFilter struct {
	CategoryID *uuid.UUID
	Search     string
}

// Repository encapsulates catalog persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListCategories returns the active categories ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&categories).
		Error
	return categories, err
}

// ListItems returns a page of active items with their relations, newest
// first, plus the unpaginated total for the filter.
func (r *Repository) ListItems(ctx context.Context, filter ItemFilter, page pagination.Params) ([]models.Item, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Joins("JOIN vendors v ON v.id = items.vendor_id").
		Where("items.is_active = ? AND v.is_active = ?", true, true)

	if filter.CategoryID != nil {
		query = query.Where("items.category_id = ?", *filter.CategoryID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"items.title ILIKE ? OR items.description ILIKE ? OR v.name ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Item
	err := query.
		Preload("Category").
		Preload("Vendor").
		Preload("Branch").
		Order("items.created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&items).
		Error
	return items, total, err
}

// FindItemByID loads a single active item with its relations and offers.
func (r *Repository) FindItemByID(ctx context.Context, id uuid.UUID) (models.Item, error) {
	var item models.Item
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Vendor").
		Preload("Branch").
		Preload("Offers").
		Where("id = ? AND is_active = ?", id, true).
		First(&item).
		Error
	return item, err
}

// ListAvailableOffers returns the snapshot of purchasable offers as of the
// given day, with the relations the selectors need preloaded. The window
// bounds are compared at date granularity.
func (r *Repository) ListAvailableOffers(ctx context.Context, asOf time.Time) ([]models.Offer, error) {
	day := availability.DateOnly(asOf)

	var offers []models.Offer
	err := r.db.WithContext(ctx).
		Joins("JOIN items i ON i.id = offers.item_id").
		Joins("JOIN vendors v ON v.id = i.vendor_id").
		Where("offers.is_active = ? AND i.is_active = ? AND v.is_active = ?", true, true, true).
		Where("offers.status = ?", enums.OfferStatusAvailable).
		Where("offers.start_date <= ?", day).
		Where("offers.end_date IS NULL OR offers.end_date >= ?", day).
		Preload("Item").
		Preload("Item.Vendor").
		Preload("Item.Category").
		Preload("Item.Branch").
		Order("offers.discount_percent DESC").
		Find(&offers).
		Error
	return offers, err
}
