package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/mirafzalswe/foodsave/api/middleware"
	"github.com/mirafzalswe/foodsave/api/responses"
	"github.com/mirafzalswe/foodsave/api/validators"
	"github.com/mirafzalswe/foodsave/internal/discovery"
	"github.com/mirafzalswe/foodsave/internal/geo"
	pkgerrors "github.com/mirafzalswe/foodsave/pkg/errors"
	"github.com/mirafzalswe/foodsave/pkg/logger"
	"github.com/mirafzalswe/foodsave/pkg/types"
)

// Recommendations returns the mixed high-value and diversity offer feed.
// Item ids listed in the exclude parameter are left out of the selection.
func Recommendations(svc discovery.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discovery service unavailable"))
			return
		}

		excluded, err := parseExcludedItems(r.URL.Query().Get("exclude"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		offers, err := svc.Recommendations(r.Context(), excluded)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, types.Envelope{"recommendations": offers})
	}
}

func parseExcludedItems(raw string) ([]uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid exclude id")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// QuickSets returns the keyword-bucketed starter sets.
func QuickSets(svc discovery.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discovery service unavailable"))
			return
		}

		sets, err := svc.QuickSets(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, types.Envelope{"quick_sets": sets})
	}
}

func sessionIDFromRequest(r *http.Request) (string, error) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "session id header missing")
	}
	return sessionID, nil
}

// ListCustomSets returns the saved custom sets for the caller's session.
func ListCustomSets(svc discovery.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discovery service unavailable"))
			return
		}

		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sets, err := svc.ListCustomSets(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, types.Envelope{"custom_sets": sets})
	}
}

type saveCustomSetRequest struct {
	Name     string   `json:"name" validate:"required"`
	OfferIDs []string `json:"offer_ids" validate:"required,min=1,dive,uuid"`
}

// SaveCustomSet persists a named offer selection under the caller's session.
func SaveCustomSet(svc discovery.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discovery service unavailable"))
			return
		}

		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload saveCustomSetRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		offerIDs := make([]uuid.UUID, 0, len(payload.OfferIDs))
		for _, raw := range payload.OfferIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid offer id"))
				return
			}
			offerIDs = append(offerIDs, id)
		}

		set, err := svc.SaveCustomSet(r.Context(), sessionID, strings.TrimSpace(payload.Name), offerIDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, types.Envelope{"custom_set": set})
	}
}

// MapNearby ranks active branches by distance from the caller's location.
// Without lat/lng the result is empty rather than an error.
func MapNearby(svc discovery.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discovery service unavailable"))
			return
		}

		lat, err := validators.ParseQueryFloat(r, "lat")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lng, err := validators.ParseQueryFloat(r, "lng")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var user *geo.Point
		if lat != nil && lng != nil {
			if *lat < -90 || *lat > 90 || *lng < -180 || *lng > 180 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "coordinates out of range"))
				return
			}
			user = &geo.Point{Lat: *lat, Lng: *lng}
		}

		branches, err := svc.Nearby(r.Context(), user)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, types.Envelope{"branches": branches})
	}
}
