package controllers

import (
	"net/http"

	"github.com/mirafzalswe/foodsave/api/responses"
	"github.com/mirafzalswe/foodsave/pkg/config"
	"github.com/mirafzalswe/foodsave/pkg/db"
	pkgerrors "github.com/mirafzalswe/foodsave/pkg/errors"
	"github.com/mirafzalswe/foodsave/pkg/logger"
	"github.com/mirafzalswe/foodsave/pkg/redis"
	"github.com/mirafzalswe/foodsave/pkg/types"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-FoodSave-Env", cfg.App.Env)
		responses.WriteSuccess(w, types.Envelope{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-FoodSave-Env", cfg.App.Env)

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
				return
			}
		}
		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unreachable"))
				return
			}
		}

		responses.WriteSuccess(w, types.Envelope{"status": "ready"})
	}
}
