package training

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

// Run/List/Get against a live database are covered with the store tests;
// here we cover trainer notification and the request validation that runs
// before any store call.

func newTestHandler(trainerURL string) *Handler {
	return &Handler{
		trainerURL: trainerURL,
		client:     &http.Client{Timeout: time.Second},
		logger:     zap.NewNop(),
	}
}

func TestNotifyTrainer_PostsRunPayload(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q, want application/json", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("unmarshal payload: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	h := newTestHandler(srv.URL)
	if err := h.notifyTrainer(context.Background(), "run-123", "DC-01"); err != nil {
		t.Fatalf("notifyTrainer: %v", err)
	}
	if got["run_id"] != "run-123" || got["machine"] != "DC-01" {
		t.Errorf("payload = %v, want run_id=run-123 machine=DC-01", got)
	}
}

func TestNotifyTrainer_TrainerErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "busy", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	h := newTestHandler(srv.URL)
	if err := h.notifyTrainer(context.Background(), "run-123", ""); err == nil {
		t.Fatal("expected error for 503 from trainer, got nil")
	}
}

func TestNotifyTrainer_UnreachableTrainer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	h := newTestHandler(srv.URL)
	if err := h.notifyTrainer(context.Background(), "run-123", ""); err == nil {
		t.Fatal("expected error for unreachable trainer, got nil")
	}
}

func TestNotifyTrainer_NoTrainerConfigured(t *testing.T) {
	h := newTestHandler("")
	if err := h.notifyTrainer(context.Background(), "run-123", ""); err != nil {
		t.Fatalf("empty trainer URL should be a no-op, got %v", err)
	}
}

func TestRun_BadJSON(t *testing.T) {
	h := newTestHandler("")
	req := httptest.NewRequest(http.MethodPost, "/run", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Run(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	h := newTestHandler("")
	req := httptest.NewRequest(http.MethodPost, "/runs/run-123/status",
		strings.NewReader(`{"status":"paused"}`))
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
