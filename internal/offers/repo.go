package offers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mirafzalswe/foodsave/internal/availability"
	"github.com/mirafzalswe/foodsave/pkg/db/models"
	"github.com/mirafzalswe/foodsave/pkg/enums"
)

// Repository encapsulates offer persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an offer repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts an offer.
func (r *Repository) Create(ctx context.Context, offer *models.Offer) error {
	return r.db.WithContext(ctx).Create(offer).Error
}

// FindByID loads an offer with the relations the DTO mapping needs.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (models.Offer, error) {
	var offer models.Offer
	err := r.db.WithContext(ctx).
		Preload("Item").
		Preload("Item.Vendor").
		Preload("Item.Category").
		Where("id = ?", id).
		First(&offer).
		Error
	return offer, err
}

// UpdateStatus persists a status change.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OfferStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Offer{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}

// ListLapsed returns offers whose end date is strictly before the given day
// and which have not been marked expired yet.
func (r *Repository) ListLapsed(ctx context.Context, asOf time.Time) ([]models.Offer, error) {
	day := availability.DateOnly(asOf)

	var offers []models.Offer
	err := r.db.WithContext(ctx).
		Where("end_date IS NOT NULL AND end_date < ?", day).
		Where("status <> ?", enums.OfferStatusExpired).
		Find(&offers).
		Error
	return offers, err
}

// MarkExpired flips the given offers to expired in one statement and returns
// how many rows changed.
func (r *Repository) MarkExpired(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.Offer{}).
		Where("id IN ?", ids).
		Where("status <> ?", enums.OfferStatusExpired).
		Update("status", enums.OfferStatusExpired)
	return result.RowsAffected, result.Error
}

// ListEndingOn returns still-available offers whose window closes on the
// given day, with the item preloaded for notification copy.
func (r *Repository) ListEndingOn(ctx context.Context, day time.Time) ([]models.Offer, error) {
	var offers []models.Offer
	err := r.db.WithContext(ctx).
		Where("end_date = ?", availability.DateOnly(day)).
		Where("status = ?", enums.OfferStatusAvailable).
		Where("is_active = ?", true).
		Preload("Item").
		Preload("Item.Vendor").
		Find(&offers).
		Error
	return offers, err
}
