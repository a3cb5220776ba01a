package machines

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns a router with the machine registry endpoints.
//
// When mounted at /api/machines:
//   - GET /api/machines
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.List)
	return r
}
