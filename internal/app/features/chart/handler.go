// Package chart serves the annotated time-series payload the dashboard
// renders: line points with violation flags, the padded value-axis domain,
// the min/max marker points, and the reference-line thresholds.
//
// Endpoint (session-scoped, mounted at /api/chart):
//   - GET /api/chart/series?machine=DC-01&parameter=metal_temperature[&from=...&to=...]
package chart

import (
	"net/http"
	"time"

	readingstore "github.com/dalemusser/castwatch/internal/app/store/readings"
	thresholdstore "github.com/dalemusser/castwatch/internal/app/store/thresholds"
	"github.com/dalemusser/castwatch/internal/app/system/auth"
	"github.com/dalemusser/castwatch/internal/app/system/jsonutil"
	"github.com/dalemusser/castwatch/internal/domain/models"
	"github.com/dalemusser/castwatch/internal/domain/series"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// maxSeriesPoints caps one chart query; the dashboard shows a shift's worth
// of readings, not the full history.
const maxSeriesPoints = 5000

// Handler handles chart data requests.
type Handler struct {
	readings   *readingstore.Store
	thresholds *thresholdstore.Store
	logger     *zap.Logger
}

// NewHandler creates a new chart handler.
func NewHandler(db *mongo.Database, thresholds *thresholdstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		readings:   readingstore.New(db),
		thresholds: thresholds,
		logger:     logger,
	}
}

// Series handles GET /api/chart/series.
//
// machine and parameter are required; from/to are optional RFC 3339 bounds.
// The response is recomputed from scratch on every call; a newer request
// simply supersedes an older one at the client, so there is nothing to
// invalidate server-side.
func (h *Handler) Series(w http.ResponseWriter, r *http.Request) {
	machine := query.Get(r, "machine")
	if machine == "" {
		jsonutil.BadRequest(w, "Missing machine")
		return
	}

	param, err := models.ParseParameter(query.Get(r, "parameter"))
	if err != nil {
		jsonutil.BadRequest(w, "Unknown parameter")
		return
	}

	in := readingstore.QueryInput{Machine: machine, Limit: maxSeriesPoints}
	if s := query.Get(r, "from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			jsonutil.BadRequest(w, "Invalid from timestamp")
			return
		}
		in.From = t
	}
	if s := query.Get(r, "to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			jsonutil.BadRequest(w, "Invalid to timestamp")
			return
		}
		in.To = t
	}

	raw, err := h.readings.Query(r.Context(), in)
	if err != nil {
		h.logger.Error("failed to query readings",
			zap.String("machine", machine),
			zap.String("parameter", string(param)),
			zap.Error(err),
		)
		jsonutil.InternalError(w, "Failed to load readings")
		return
	}

	points := series.Project(raw, param)

	limits, err := h.thresholds.Get(auth.SessionID(r), param)
	if err != nil {
		// Parameter already validated above; reaching this is a bug.
		h.logger.Error("threshold lookup failed for validated parameter",
			zap.String("parameter", string(param)),
			zap.Error(err),
		)
		jsonutil.InternalError(w, "Failed to load thresholds")
		return
	}

	resp := SeriesResponse{
		Machine:    machine,
		Parameter:  param,
		Unit:       param.Unit(),
		Points:     points,
		Domain:     series.ComputeDomain(points),
		Extrema:    series.Extrema(points),
		Thresholds: limits,
	}

	h.logger.Debug("chart series served",
		zap.String("machine", machine),
		zap.String("parameter", string(param)),
		zap.Int("points", len(points)),
	)

	jsonutil.OK(w, resp)
}
