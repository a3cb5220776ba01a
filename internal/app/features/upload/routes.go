package upload

import (
	"net/http"

	"github.com/dalemusser/castwatch/internal/app/system/apicors"
	"github.com/dalemusser/castwatch/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Routes returns a router with the data ingest endpoints.
//
// When mounted at /api/data:
//   - POST /api/data/upload
//   - GET  /api/data/uploads
//
// The edge collector authenticates with a bearer API key; there is no
// operator session on this surface.
func Routes(h *Handler, apiKey string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(apicors.Middleware())
	r.Use(auth.APIKeyAuth(apiKey, logger))
	r.Post("/upload", h.Ingest)
	r.Get("/uploads", h.Recent)
	return r
}
