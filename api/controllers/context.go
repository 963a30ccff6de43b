package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mirafzalswe/foodsave/api/middleware"
	"github.com/mirafzalswe/foodsave/api/validators"
	pkgerrors "github.com/mirafzalswe/foodsave/pkg/errors"
	"github.com/mirafzalswe/foodsave/pkg/pagination"
)

// userIDFromRequest resolves the authenticated buyer identity forwarded by
// the gateway.
func userIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "user context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
	}
	return id, nil
}

func pageParams(r *http.Request) (pagination.Params, error) {
	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
	if err != nil {
		return pagination.Params{}, err
	}
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultPageSize, 1, pagination.MaxPageSize)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Page: page, PageSize: limit}, nil
}
