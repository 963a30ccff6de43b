package offers

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mirafzalswe/foodsave/internal/availability"
	"github.com/mirafzalswe/foodsave/internal/catalog"
	"github.com/mirafzalswe/foodsave/internal/pricing"
	"github.com/mirafzalswe/foodsave/pkg/db/models"
	"github.com/mirafzalswe/foodsave/pkg/enums"
	pkgerrors "github.com/mirafzalswe/foodsave/pkg/errors"
)

// CreateOfferInput holds the validated payload to publish an offer.
type CreateOfferInput struct {
	ItemID          uuid.UUID
	OriginalPrice   decimal.Decimal
	DiscountPercent float64
	Quantity        int
	StartDate       time.Time
	EndDate         *time.Time
}

// Service exposes offer lifecycle operations.
type Service interface {
	CreateOffer(ctx context.Context, input CreateOfferInput) (*catalog.OfferDTO, error)
	GetOffer(ctx context.Context, id uuid.UUID) (*catalog.OfferDTO, error)
	ChangeStatus(ctx context.Context, id uuid.UUID, target enums.OfferStatus) (*catalog.OfferDTO, error)
}

type repository interface {
	Create(ctx context.Context, offer *models.Offer) error
	FindByID(ctx context.Context, id uuid.UUID) (models.Offer, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OfferStatus) error
}

type service struct {
	repo repository
	now  func() time.Time
}

// NewService wires offer dependencies.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "offer repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// CreateOffer validates the pricing inputs and window, then publishes the
// offer. Offers whose window has not opened yet start pending.
func (s *service) CreateOffer(ctx context.Context, input CreateOfferInput) (*catalog.OfferDTO, error) {
	if input.ItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	if _, err := pricing.CurrentPrice(input.OriginalPrice, input.DiscountPercent); err != nil {
		return nil, err
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}
	if input.StartDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "start date is required")
	}
	start := availability.DateOnly(input.StartDate)
	var end *time.Time
	if input.EndDate != nil {
		e := availability.DateOnly(*input.EndDate)
		if e.Before(start) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "end date precedes start date")
		}
		end = &e
	}

	status := enums.OfferStatusAvailable
	if start.After(availability.DateOnly(s.now())) {
		status = enums.OfferStatusPending
	}

	offer := &models.Offer{
		ID:              uuid.New(),
		ItemID:          input.ItemID,
		OriginalPrice:   input.OriginalPrice,
		DiscountPercent: input.DiscountPercent,
		Quantity:        input.Quantity,
		StartDate:       start,
		EndDate:         end,
		IsActive:        true,
		Status:          status,
	}
	if err := s.repo.Create(ctx, offer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create offer")
	}
	return s.GetOffer(ctx, offer.ID)
}

func (s *service) GetOffer(ctx context.Context, id uuid.UUID) (*catalog.OfferDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "offer id is required")
	}
	offer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "offer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load offer")
	}
	dto, err := catalog.NewOfferDTO(offer)
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// ChangeStatus applies a lifecycle transition. Moves that the state machine
// rejects surface as state conflicts, no-op moves return the offer untouched.
func (s *service) ChangeStatus(ctx context.Context, id uuid.UUID, target enums.OfferStatus) (*catalog.OfferDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "offer id is required")
	}
	offer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "offer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load offer")
	}

	next, changed, err := availability.Transition(offer.Status, target)
	if err != nil {
		return nil, err
	}
	if changed {
		if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update offer status")
		}
		offer.Status = next
	}

	dto, err := catalog.NewOfferDTO(offer)
	if err != nil {
		return nil, err
	}
	return &dto, nil
}
