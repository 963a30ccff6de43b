package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mirafzalswe/foodsave/pkg/enums"
)

// Offer is a time-boxed discounted listing of an Item. The current price is
// always derived from OriginalPrice and DiscountPercent, never stored.
type Offer struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ItemID          uuid.UUID         `gorm:"column:item_id;type:uuid;not null"`
	OriginalPrice   decimal.Decimal   `gorm:"column:original_price;type:numeric(10,2);not null"`
	DiscountPercent float64           `gorm:"column:discount_percent;not null"`
	Quantity        int               `gorm:"column:quantity;not null;default:0"`
	StartDate       time.Time         `gorm:"column:start_date;type:date;not null"`
	EndDate         *time.Time        `gorm:"column:end_date;type:date"`
	IsActive        bool              `gorm:"column:is_active;not null;default:true"`
	Status          enums.OfferStatus `gorm:"column:status;type:offer_status;not null;default:'available'"`
	Item            *Item             `gorm:"foreignKey:ItemID"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
