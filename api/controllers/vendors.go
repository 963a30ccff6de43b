package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mirafzalswe/foodsave/api/responses"
	"github.com/mirafzalswe/foodsave/api/validators"
	"github.com/mirafzalswe/foodsave/internal/vendors"
	pkgerrors "github.com/mirafzalswe/foodsave/pkg/errors"
	"github.com/mirafzalswe/foodsave/pkg/logger"
	"github.com/mirafzalswe/foodsave/pkg/types"
)

// ListVendors returns the active vendor directory.
func ListVendors(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendors service unavailable"))
			return
		}

		page, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListVendors(r.Context(), page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, types.Envelope{
			"vendors":   result.Vendors,
			"total":     result.Total,
			"page":      result.Page,
			"page_size": result.PageSize,
		})
	}
}

// GetVendor returns a vendor with its active branches.
func GetVendor(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendors service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "vendorId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vendor id"))
			return
		}

		vendor, err := svc.GetVendor(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, types.Envelope{"vendor": vendor})
	}
}

type createBranchRequest struct {
	Name         string          `json:"name" validate:"required"`
	Address      string          `json:"address" validate:"required"`
	Latitude     *float64        `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude    *float64        `json:"longitude" validate:"required,gte=-180,lte=180"`
	Phone        *string         `json:"phone,omitempty"`
	OpeningHours json.RawMessage `json:"opening_hours,omitempty"`
}

// CreateBranch opens a new vendor location.
func CreateBranch(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendors service unavailable"))
			return
		}

		vendorID, err := uuid.Parse(chi.URLParam(r, "vendorId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vendor id"))
			return
		}

		var payload createBranchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		branch, err := svc.CreateBranch(r.Context(), vendors.CreateBranchInput{
			VendorID:     vendorID,
			Name:         strings.TrimSpace(payload.Name),
			Address:      strings.TrimSpace(payload.Address),
			Latitude:     *payload.Latitude,
			Longitude:    *payload.Longitude,
			Phone:        payload.Phone,
			OpeningHours: payload.OpeningHours,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, types.Envelope{"branch": branch})
	}
}
