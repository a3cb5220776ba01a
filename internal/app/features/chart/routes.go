package chart

import (
	"net/http"

	"github.com/dalemusser/castwatch/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns a router with the chart data endpoints.
//
// When mounted at /api/chart:
//   - GET /api/chart/series - annotated series + domain + extrema + thresholds
//
// Requests are session-scoped (EnsureSession) so the thresholds in the
// payload are the caller's own.
func Routes(h *Handler, sm *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sm.EnsureSession)
	r.Get("/series", h.Series)
	return r
}
