// Package thresholds exposes the per-session specification limits the chart
// overlays as reference lines.
//
// Endpoints (session-scoped, mounted at /api/thresholds):
//   - GET /api/thresholds                - all five parameters' limits
//   - GET /api/thresholds/{parameter}    - one parameter's limits
//   - PUT /api/thresholds/{parameter}    - update one bound
//
// PUT carries the raw text of the operator's input box. Non-numeric text is
// accepted with 200 and ignored: an operator mid-keystroke ("", "-") must
// not see errors, and the previous bound stays in force.
package thresholds

import (
	"net/http"

	thresholdstore "github.com/dalemusser/castwatch/internal/app/store/thresholds"
	"github.com/dalemusser/castwatch/internal/app/system/auth"
	"github.com/dalemusser/castwatch/internal/app/system/jsonutil"
	"github.com/dalemusser/castwatch/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler handles threshold read/update requests.
type Handler struct {
	store  *thresholdstore.Store
	logger *zap.Logger
}

// NewHandler creates a new thresholds handler.
func NewHandler(store *thresholdstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

// GetAll handles GET /api/thresholds.
func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	all := h.store.All(auth.SessionID(r))
	jsonutil.OK(w, all)
}

// Get handles GET /api/thresholds/{parameter}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	param, err := models.ParseParameter(chi.URLParam(r, "parameter"))
	if err != nil {
		jsonutil.BadRequest(w, "Unknown parameter")
		return
	}

	limits, err := h.store.Get(auth.SessionID(r), param)
	if err != nil {
		h.logger.Error("threshold lookup failed for validated parameter",
			zap.String("parameter", string(param)),
			zap.Error(err),
		)
		jsonutil.InternalError(w, "Failed to load thresholds")
		return
	}

	jsonutil.OK(w, limits)
}

// Set handles PUT /api/thresholds/{parameter}.
//
// Request body:
//
//	{"side": "lower" | "upper", "value": "<raw input text>"}
//
// Responds with the resulting pair so the client can reconcile its inputs.
func (h *Handler) Set(w http.ResponseWriter, r *http.Request) {
	param, err := models.ParseParameter(chi.URLParam(r, "parameter"))
	if err != nil {
		jsonutil.BadRequest(w, "Unknown parameter")
		return
	}

	var in struct {
		Side  string `json:"side"`
		Value string `json:"value"`
	}
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload")
		return
	}
	if !thresholdstore.IsValidSide(in.Side) {
		jsonutil.BadRequest(w, "Side must be \"lower\" or \"upper\"")
		return
	}

	sessionID := auth.SessionID(r)
	if err := h.store.Set(sessionID, param, thresholdstore.Side(in.Side), in.Value); err != nil {
		h.logger.Error("threshold update failed for validated parameter",
			zap.String("parameter", string(param)),
			zap.Error(err),
		)
		jsonutil.InternalError(w, "Failed to update thresholds")
		return
	}

	limits, err := h.store.Get(sessionID, param)
	if err != nil {
		jsonutil.InternalError(w, "Failed to load thresholds")
		return
	}

	h.logger.Debug("threshold updated",
		zap.String("parameter", string(param)),
		zap.String("side", in.Side),
		zap.String("raw", in.Value),
	)

	jsonutil.OK(w, limits)
}
