package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mirafzalswe/foodsave/api/responses"
	"github.com/mirafzalswe/foodsave/api/validators"
	"github.com/mirafzalswe/foodsave/internal/offers"
	"github.com/mirafzalswe/foodsave/pkg/enums"
	pkgerrors "github.com/mirafzalswe/foodsave/pkg/errors"
	"github.com/mirafzalswe/foodsave/pkg/logger"
	"github.com/mirafzalswe/foodsave/pkg/types"
)

const offerDateLayout = "2006-01-02"

type createOfferRequest struct {
	ItemID          string  `json:"item_id" validate:"required,uuid"`
	OriginalPrice   string  `json:"original_price" validate:"required"`
	DiscountPercent float64 `json:"discount_percent" validate:"gte=0,lte=100"`
	Quantity        int     `json:"quantity" validate:"gte=0"`
	StartDate       string  `json:"start_date" validate:"required"`
	EndDate         *string `json:"end_date,omitempty"`
}

func (req createOfferRequest) toCreateInput() (offers.CreateOfferInput, error) {
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return offers.CreateOfferInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(req.OriginalPrice))
	if err != nil {
		return offers.CreateOfferInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid original price")
	}

	start, err := time.Parse(offerDateLayout, req.StartDate)
	if err != nil {
		return offers.CreateOfferInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid start date")
	}

	input := offers.CreateOfferInput{
		ItemID:          itemID,
		OriginalPrice:   price,
		DiscountPercent: req.DiscountPercent,
		Quantity:        req.Quantity,
		StartDate:       start,
	}

	if req.EndDate != nil {
		end, err := time.Parse(offerDateLayout, *req.EndDate)
		if err != nil {
			return offers.CreateOfferInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid end date")
		}
		input.EndDate = &end
	}

	return input, nil
}

// CreateOffer publishes a discounted listing for an item.
func CreateOffer(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "offers service unavailable"))
			return
		}

		var payload createOfferRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		offer, err := svc.CreateOffer(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, types.Envelope{"offer": offer})
	}
}

// GetOffer returns the priced offer payload.
func GetOffer(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "offers service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "offerId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid offer id"))
			return
		}

		offer, err := svc.GetOffer(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, types.Envelope{"offer": offer})
	}
}

type changeOfferStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ChangeOfferStatus applies a lifecycle transition to an offer.
func ChangeOfferStatus(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "offers service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "offerId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid offer id"))
			return
		}

		var payload changeOfferStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		target, err := enums.ParseOfferStatus(strings.TrimSpace(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		offer, err := svc.ChangeStatus(r.Context(), id, target)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, types.Envelope{"offer": offer})
	}
}
