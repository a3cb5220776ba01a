// Package machines lists the registered die-casting machines the dashboard
// offers in its machine selector.
package machines

import (
	"net/http"

	machinestore "github.com/dalemusser/castwatch/internal/app/store/machines"
	"github.com/dalemusser/castwatch/internal/app/system/jsonutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler handles machine registry requests.
type Handler struct {
	store  *machinestore.Store
	logger *zap.Logger
}

// NewHandler creates a new machines handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		store:  machinestore.New(db),
		logger: logger,
	}
}

// List handles GET /api/machines.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list machines", zap.Error(err))
		jsonutil.InternalError(w, "Failed to load machines")
		return
	}
	jsonutil.OK(w, out)
}
