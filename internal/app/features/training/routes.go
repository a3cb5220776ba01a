package training

import (
	"net/http"

	"github.com/dalemusser/castwatch/internal/app/system/apicors"
	"github.com/dalemusser/castwatch/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Routes returns a router with the training-run endpoints.
//
// When mounted at /api/training:
//   - POST /api/training/run
//   - GET  /api/training/runs
//   - GET  /api/training/runs/{run_id}
//   - POST /api/training/runs/{run_id}/status
//
// Both the operator dashboard's trigger and the trainer's callback present
// the same bearer API key.
func Routes(h *Handler, apiKey string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(apicors.Middleware())
	r.Use(auth.APIKeyAuth(apiKey, logger))
	r.Post("/run", h.Run)
	r.Get("/runs", h.List)
	r.Get("/runs/{run_id}", h.Get)
	r.Post("/runs/{run_id}/status", h.UpdateStatus)
	return r
}
