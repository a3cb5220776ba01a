// Package training triggers anomaly-model retraining on the external model
// service and tracks each run's lifecycle. This service never computes
// violation flags itself; it only asks the trainer to refresh the model the
// edge collector scores readings with.
//
// Endpoints (API-key protected, mounted at /api/training):
//   - POST /api/training/run             - queue a run and notify the trainer
//   - GET  /api/training/runs            - recent runs
//   - GET  /api/training/runs/{run_id}   - one run
//   - POST /api/training/runs/{run_id}/status - trainer callback
package training

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	trainingstore "github.com/dalemusser/castwatch/internal/app/store/training"
	"github.com/dalemusser/castwatch/internal/app/system/jsonutil"
	"github.com/dalemusser/castwatch/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// trainerTimeout bounds the notify call; the trainer acks fast and does the
// actual work out of band.
const trainerTimeout = 10 * time.Second

// Handler handles training-run requests.
type Handler struct {
	runs       *trainingstore.Store
	trainerURL string
	client     *http.Client
	logger     *zap.Logger
}

// NewHandler creates a new training handler. trainerURL may be empty; runs
// are then recorded but no trainer is notified, which keeps a lab install
// without a model service working.
func NewHandler(db *mongo.Database, trainerURL string, logger *zap.Logger) *Handler {
	return &Handler{
		runs:       trainingstore.New(db),
		trainerURL: trainerURL,
		client:     &http.Client{Timeout: trainerTimeout},
		logger:     logger,
	}
}

// Run handles POST /api/training/run.
//
// The run is recorded as queued before the trainer is contacted, so a dead
// trainer still leaves an auditable failed run rather than nothing.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in struct {
		Machine string `json:"machine"`
	}
	if r.ContentLength > 0 {
		if err := jsonutil.Decode(r, &in); err != nil {
			jsonutil.BadRequest(w, "Invalid JSON payload")
			return
		}
	}

	runID := uuid.New().String()
	run, err := h.runs.Create(ctx, runID, in.Machine)
	if err != nil {
		h.logger.Error("failed to record training run", zap.Error(err))
		jsonutil.InternalError(w, "Failed to record training run")
		return
	}

	if err := h.notifyTrainer(ctx, runID, in.Machine); err != nil {
		h.logger.Error("trainer notification failed",
			zap.String("run_id", runID),
			zap.Error(err),
		)
		if err := h.runs.SetStatus(ctx, runID, models.TrainingFailed, err.Error()); err != nil {
			h.logger.Error("failed to mark run failed", zap.String("run_id", runID), zap.Error(err))
		}
		jsonutil.Error(w, http.StatusBadGateway, "Trainer unreachable")
		return
	}

	h.logger.Info("training run queued",
		zap.String("run_id", runID),
		zap.String("machine", in.Machine),
	)

	jsonutil.Accepted(w, run)
}

// List handles GET /api/training/runs.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.runs.Recent(r.Context(), 20)
	if err != nil {
		h.logger.Error("failed to list training runs", zap.Error(err))
		jsonutil.InternalError(w, "Failed to load training runs")
		return
	}
	jsonutil.OK(w, out)
}

// Get handles GET /api/training/runs/{run_id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "run_id")

	run, err := h.runs.GetByRunID(r.Context(), runID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.NotFound(w, "Unknown training run")
			return
		}
		h.logger.Error("failed to load training run",
			zap.String("run_id", runID),
			zap.Error(err),
		)
		jsonutil.InternalError(w, "Failed to load training run")
		return
	}

	jsonutil.OK(w, run)
}

// UpdateStatus handles POST /api/training/runs/{run_id}/status, the callback
// the trainer posts as a run progresses.
//
// Request body:
//
//	{"status": "running" | "done" | "failed", "error": "<only for failed>"}
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	runID := chi.URLParam(r, "run_id")

	var in struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	}
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload")
		return
	}
	switch in.Status {
	case models.TrainingRunning, models.TrainingDone, models.TrainingFailed:
	default:
		jsonutil.BadRequest(w, "Unknown status")
		return
	}

	if _, err := h.runs.GetByRunID(ctx, runID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.NotFound(w, "Unknown training run")
			return
		}
		h.logger.Error("failed to load training run",
			zap.String("run_id", runID),
			zap.Error(err),
		)
		jsonutil.InternalError(w, "Failed to load training run")
		return
	}

	if err := h.runs.SetStatus(ctx, runID, in.Status, in.Error); err != nil {
		h.logger.Error("failed to update training run",
			zap.String("run_id", runID),
			zap.Error(err),
		)
		jsonutil.InternalError(w, "Failed to update training run")
		return
	}

	h.logger.Info("training run updated",
		zap.String("run_id", runID),
		zap.String("status", in.Status),
	)

	jsonutil.OK(w, map[string]string{"run_id": runID, "status": in.Status})
}

// notifyTrainer posts the run to the model service. A nil return with an
// empty trainerURL means the install runs without a trainer.
func (h *Handler) notifyTrainer(ctx context.Context, runID, machine string) error {
	if h.trainerURL == "" {
		h.logger.Warn("no trainer configured; run recorded without notification",
			zap.String("run_id", runID))
		return nil
	}

	payload, err := json.Marshal(map[string]string{
		"run_id":  runID,
		"machine": machine,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.trainerURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("trainer returned %d", resp.StatusCode)
	}
	return nil
}
