package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mirafzalswe/foodsave/pkg/db/models"
)

// OrderDTO is the order payload returned to clients.
type OrderDTO struct {
	ID              uuid.UUID       `json:"id"`
	OrderNumber     string          `json:"order_number"`
	Status          string          `json:"status"`
	DeliveryType    string          `json:"delivery_type"`
	DeliveryAddress *string         `json:"delivery_address,omitempty"`
	PaymentMethod   string          `json:"payment_method"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	DeliveryFee     decimal.Decimal `json:"delivery_fee"`
	Notes           *string         `json:"notes,omitempty"`
	Items           []OrderItemDTO  `json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
}

// OrderItemDTO is a checkout line payload.
type OrderItemDTO struct {
	OfferID  uuid.UUID       `json:"offer_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// OrderPageDTO wraps an order page with its pagination echo.
type OrderPageDTO struct {
	Orders   []OrderDTO `json:"orders"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

// NewOrderDTO maps an order row with its preloaded items.
func NewOrderDTO(order models.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemDTO{
			OfferID:  item.OfferID,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	return OrderDTO{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		Status:          order.Status.String(),
		DeliveryType:    order.DeliveryType.String(),
		DeliveryAddress: order.DeliveryAddress,
		PaymentMethod:   order.PaymentMethod.String(),
		TotalAmount:     order.TotalAmount,
		DeliveryFee:     order.DeliveryFee,
		Notes:           order.Notes,
		Items:           items,
		CreatedAt:       order.CreatedAt,
	}
}
