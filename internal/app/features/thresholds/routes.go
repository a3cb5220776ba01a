package thresholds

import (
	"net/http"

	"github.com/dalemusser/castwatch/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns a router with the threshold endpoints.
//
// When mounted at /api/thresholds:
//   - GET /api/thresholds
//   - GET /api/thresholds/{parameter}
//   - PUT /api/thresholds/{parameter}
func Routes(h *Handler, sm *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sm.EnsureSession)
	r.Get("/", h.GetAll)
	r.Get("/{parameter}", h.Get)
	r.Put("/{parameter}", h.Set)
	return r
}
