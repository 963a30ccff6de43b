package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mirafzalswe/foodsave/api/responses"
	"github.com/mirafzalswe/foodsave/api/validators"
	"github.com/mirafzalswe/foodsave/internal/orders"
	"github.com/mirafzalswe/foodsave/pkg/enums"
	pkgerrors "github.com/mirafzalswe/foodsave/pkg/errors"
	"github.com/mirafzalswe/foodsave/pkg/logger"
	"github.com/mirafzalswe/foodsave/pkg/types"
)

type checkoutLineRequest struct {
	OfferID  string `json:"offer_id" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type checkoutRequest struct {
	DeliveryType    string                `json:"delivery_type" validate:"required"`
	DeliveryAddress *string               `json:"delivery_address,omitempty"`
	PaymentMethod   string                `json:"payment_method" validate:"required"`
	Notes           *string               `json:"notes,omitempty"`
	Items           []checkoutLineRequest `json:"items" validate:"required,min=1,dive"`
}

func (req checkoutRequest) toCheckoutInput(userID uuid.UUID) (orders.CheckoutInput, error) {
	deliveryType, err := enums.ParseDeliveryType(strings.TrimSpace(req.DeliveryType))
	if err != nil {
		return orders.CheckoutInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery type")
	}

	paymentMethod, err := enums.ParsePaymentMethod(strings.TrimSpace(req.PaymentMethod))
	if err != nil {
		return orders.CheckoutInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method")
	}

	lines := make([]orders.CheckoutLine, 0, len(req.Items))
	for _, item := range req.Items {
		offerID, err := uuid.Parse(item.OfferID)
		if err != nil {
			return orders.CheckoutInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid offer id")
		}
		lines = append(lines, orders.CheckoutLine{OfferID: offerID, Quantity: item.Quantity})
	}

	return orders.CheckoutInput{
		UserID:          userID,
		DeliveryType:    deliveryType,
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   paymentMethod,
		Notes:           req.Notes,
		Lines:           lines,
	}, nil
}

// Checkout places an order over one or more offers.
func Checkout(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		userID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCheckoutInput(userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Checkout(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, types.Envelope{"order": order})
	}
}

// ListOrders returns the caller's order history.
func ListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		userID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListOrders(r.Context(), userID, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, types.Envelope{
			"orders":    result.Orders,
			"total":     result.Total,
			"page":      result.Page,
			"page_size": result.PageSize,
		})
	}
}

// GetOrder returns one of the caller's orders with its lines.
func GetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		userID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		order, err := svc.GetOrder(r.Context(), userID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, types.Envelope{"order": order})
	}
}
