package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mirafzalswe/foodsave/internal/availability"
	"github.com/mirafzalswe/foodsave/internal/pricing"
	"github.com/mirafzalswe/foodsave/pkg/config"
	"github.com/mirafzalswe/foodsave/pkg/db/models"
	"github.com/mirafzalswe/foodsave/pkg/enums"
	pkgerrors "github.com/mirafzalswe/foodsave/pkg/errors"
	"github.com/mirafzalswe/foodsave/pkg/logger"
	"github.com/mirafzalswe/foodsave/pkg/pagination"
)

// CheckoutLine is one offer purchase in a checkout request.
type CheckoutLine struct {
	OfferID  uuid.UUID
	Quantity int
}

// CheckoutInput holds the validated checkout payload.
type CheckoutInput struct {
	UserID          uuid.UUID
	DeliveryType    enums.DeliveryType
	DeliveryAddress *string
	PaymentMethod   enums.PaymentMethod
	Notes           *string
	Lines           []CheckoutLine
}

// Service exposes checkout and order history operations.
type Service interface {
	Checkout(ctx context.Context, input CheckoutInput) (*OrderDTO, error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error)
	ListOrders(ctx context.Context, userID uuid.UUID, page pagination.Params) (*OrderPageDTO, error)
}

type repository interface {
	FindOffersByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Offer, error)
	CreateOrder(ctx context.Context, order *models.Order, reservations []Reservation) error
	FindByID(ctx context.Context, userID, orderID uuid.UUID) (models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]models.Order, int64, error)
}

type notifier interface {
	OrderConfirmed(ctx context.Context, userID uuid.UUID, orderNumber string, total decimal.Decimal) error
}

// ServiceParams groups dependencies for the order service.
type ServiceParams struct {
	Repo     repository
	Notifier notifier
	Logger   *logger.Logger
	Config   config.OrdersConfig
}

type service struct {
	repo        repository
	notifier    notifier
	logg        *logger.Logger
	deliveryFee decimal.Decimal
	now         func() time.Time
}

// NewService wires order dependencies and parses the configured delivery fee.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "order repository required")
	}
	if params.Notifier == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifier required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	fee, err := decimal.NewFromString(params.Config.DeliveryFee)
	if err != nil || fee.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid delivery fee %q", params.Config.DeliveryFee))
	}
	return &service{
		repo:        params.Repo,
		notifier:    params.Notifier,
		logg:        params.Logger,
		deliveryFee: fee,
		now:         time.Now,
	}, nil
}

// Checkout prices every line against today's snapshot, reserves stock and
// creates the order atomically, then records the confirmation notification.
func (s *service) Checkout(ctx context.Context, input CheckoutInput) (*OrderDTO, error) {
	if err := validateCheckout(input); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(input.Lines))
	for _, line := range input.Lines {
		ids = append(ids, line.OfferID)
	}
	offers, err := s.repo.FindOffersByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load offers")
	}
	byID := make(map[uuid.UUID]models.Offer, len(offers))
	for _, offer := range offers {
		byID[offer.ID] = offer
	}

	today := s.now()
	total := s.deliveryFeeFor(input.DeliveryType)
	items := make([]models.OrderItem, 0, len(input.Lines))
	reservations := make([]Reservation, 0, len(input.Lines))

	for _, line := range input.Lines {
		offer, ok := byID[line.OfferID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("offer %s not found", line.OfferID))
		}
		if !availability.IsOfferActive(offer, today) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("offer %s is not available", line.OfferID))
		}
		if offer.Quantity > 0 && offer.Quantity < line.Quantity {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("offer %s has only %d left", line.OfferID, offer.Quantity))
		}

		unit, err := pricing.CurrentPrice(offer.OriginalPrice, offer.DiscountPercent)
		if err != nil {
			return nil, err
		}
		unit = pricing.Display(unit)
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(line.Quantity))))

		items = append(items, models.OrderItem{
			ID:       uuid.New(),
			OfferID:  line.OfferID,
			Quantity: line.Quantity,
			Price:    unit,
		})
		take := 0
		if offer.Quantity > 0 {
			take = line.Quantity
		}
		reservations = append(reservations, Reservation{OfferID: line.OfferID, Take: take})
	}

	order := &models.Order{
		ID:              uuid.New(),
		UserID:          input.UserID,
		OrderNumber:     newOrderNumber(),
		TotalAmount:     total,
		DeliveryType:    input.DeliveryType,
		DeliveryAddress: input.DeliveryAddress,
		DeliveryFee:     s.deliveryFeeFor(input.DeliveryType),
		PaymentMethod:   input.PaymentMethod,
		Status:          enums.OrderStatusPending,
		Notes:           input.Notes,
		Items:           items,
	}
	if err := s.repo.CreateOrder(ctx, order, reservations); err != nil {
		if errors.Is(err, ErrInsufficientStock) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "offer stock changed during checkout")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	// confirmation is best effort, losing it must not lose the order
	if err := s.notifier.OrderConfirmed(ctx, input.UserID, order.OrderNumber, order.TotalAmount); err != nil {
		s.logg.Error(ctx, "order confirmation notification failed", err)
	}

	dto := NewOrderDTO(*order)
	return &dto, nil
}

func (s *service) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error) {
	if userID == uuid.Nil || orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id and order id are required")
	}
	order, err := s.repo.FindByID(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	dto := NewOrderDTO(order)
	return &dto, nil
}

func (s *service) ListOrders(ctx context.Context, userID uuid.UUID, page pagination.Params) (*OrderPageDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	normalized := page.Normalize()
	orders, total, err := s.repo.ListByUser(ctx, userID, normalized)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	dtos := make([]OrderDTO, 0, len(orders))
	for _, order := range orders {
		dtos = append(dtos, NewOrderDTO(order))
	}
	return &OrderPageDTO{
		Orders:   dtos,
		Total:    total,
		Page:     normalized.Page,
		PageSize: normalized.PageSize,
	}, nil
}

func (s *service) deliveryFeeFor(deliveryType enums.DeliveryType) decimal.Decimal {
	if deliveryType == enums.DeliveryTypeDelivery {
		return s.deliveryFee
	}
	return decimal.Zero
}

func validateCheckout(input CheckoutInput) error {
	if input.UserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if !input.DeliveryType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown delivery type %q", input.DeliveryType))
	}
	if !input.PaymentMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown payment method %q", input.PaymentMethod))
	}
	if input.DeliveryType == enums.DeliveryTypeDelivery &&
		(input.DeliveryAddress == nil || strings.TrimSpace(*input.DeliveryAddress) == "") {
		return pkgerrors.New(pkgerrors.CodeValidation, "delivery address is required for delivery orders")
	}
	if len(input.Lines) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one offer")
	}
	seen := make(map[uuid.UUID]struct{}, len(input.Lines))
	for _, line := range input.Lines {
		if line.OfferID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "offer id is required")
		}
		if line.Quantity < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, "line quantity must be at least 1")
		}
		if _, dup := seen[line.OfferID]; dup {
			return pkgerrors.New(pkgerrors.CodeValidation, "duplicate offer in order")
		}
		seen[line.OfferID] = struct{}{}
	}
	return nil
}

// newOrderNumber derives a short human-readable order number from a fresh
// uuid, e.g. ORD-9F86D081.
func newOrderNumber() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "ORD-" + strings.ToUpper(raw[:8])
}
