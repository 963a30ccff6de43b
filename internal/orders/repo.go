package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mirafzalswe/foodsave/pkg/db/models"
	"github.com/mirafzalswe/foodsave/pkg/enums"
	"github.com/mirafzalswe/foodsave/pkg/pagination"
)

// ErrInsufficientStock is returned when a reservation cannot be covered by
// the offer's remaining quantity at commit time.
var ErrInsufficientStock = errors.New("insufficient offer stock")

// Reservation is a stock decrement to apply atomically with order creation.
// Take is zero for unlimited-quantity offers.
type Reservation struct {
	OfferID uuid.UUID
	Take    int
}

// Repository encapsulates order persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an order repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindOffersByIDs loads offers with their items for checkout validation.
func (r *Repository) FindOffersByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Offer, error) {
	var offers []models.Offer
	err := r.db.WithContext(ctx).
		Preload("Item").
		Where("id IN ?", ids).
		Find(&offers).
		Error
	return offers, err
}

// CreateOrder inserts the order with its lines and applies the stock
// reservations in one transaction. A reservation that cannot be covered
// rolls the whole order back. Offers drained to zero flip to sold out.
func (r *Repository) CreateOrder(ctx context.Context, order *models.Order, reservations []Reservation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for _, res := range reservations {
			if res.Take <= 0 {
				continue
			}
			result := tx.Model(&models.Offer{}).
				Where("id = ? AND quantity >= ?", res.OfferID, res.Take).
				UpdateColumn("quantity", gorm.Expr("quantity - ?", res.Take))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrInsufficientStock
			}
			if err := tx.Model(&models.Offer{}).
				Where("id = ? AND quantity = 0", res.OfferID).
				Update("status", enums.OfferStatusSoldOut).
				Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID loads an order with its lines, scoped to the owning user.
func (r *Repository) FindByID(ctx context.Context, userID, orderID uuid.UUID) (models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).
		Error
	return order, err
}

// ListByUser returns a page of the user's orders, newest first, plus the
// unpaginated total.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]models.Order, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := query.
		Preload("Items").
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&orders).
		Error
	return orders, total, err
}
