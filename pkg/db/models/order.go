package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mirafzalswe/foodsave/pkg/enums"
)

// Order is a customer checkout spanning one or more offers.
type Order struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID           `gorm:"column:user_id;type:uuid;not null"`
	OrderNumber     string              `gorm:"column:order_number;uniqueIndex;not null"`
	TotalAmount     decimal.Decimal     `gorm:"column:total_amount;type:numeric(10,2);not null"`
	DeliveryType    enums.DeliveryType  `gorm:"column:delivery_type;type:delivery_type;not null"`
	DeliveryAddress *string             `gorm:"column:delivery_address"`
	DeliveryFee     decimal.Decimal     `gorm:"column:delivery_fee;type:numeric(10,2);not null;default:0"`
	PaymentMethod   enums.PaymentMethod `gorm:"column:payment_method;type:payment_method;not null"`
	Status          enums.OrderStatus   `gorm:"column:status;type:order_status;not null;default:'pending'"`
	Notes           *string             `gorm:"column:notes"`
	Items           []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem is a single offer line inside an order. Price snapshots the
// offer's current price at checkout time.
type OrderItem struct {
	ID       uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID  uuid.UUID       `gorm:"column:order_id;type:uuid;not null"`
	OfferID  uuid.UUID       `gorm:"column:offer_id;type:uuid;not null"`
	Quantity int             `gorm:"column:quantity;not null"`
	Price    decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
}
