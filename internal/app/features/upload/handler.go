// Package upload ingests machine data files. The edge collector POSTs a CSV
// per shift; the raw file is archived to blob storage and its rows land in
// the readings collection for the chart to query.
//
// Endpoint (API-key protected, mounted at /api/data):
//   - POST /api/data/upload - multipart form, field "file"
package upload

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	machinestore "github.com/dalemusser/castwatch/internal/app/store/machines"
	readingstore "github.com/dalemusser/castwatch/internal/app/store/readings"
	uploadstore "github.com/dalemusser/castwatch/internal/app/store/uploads"
	"github.com/dalemusser/castwatch/internal/app/system/jsonutil"
	"github.com/dalemusser/castwatch/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const maxUploadSize = 32 << 20 // 32MB

// Handler handles data file ingest requests.
type Handler struct {
	readings    *readingstore.Store
	machines    *machinestore.Store
	uploads     *uploadstore.Store
	fileStorage storage.Store
	logger      *zap.Logger
}

// NewHandler creates a new upload handler.
func NewHandler(db *mongo.Database, fileStorage storage.Store, logger *zap.Logger) *Handler {
	return &Handler{
		readings:    readingstore.New(db),
		machines:    machinestore.New(db),
		uploads:     uploadstore.New(db),
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// Ingest handles POST /api/data/upload.
//
// The file is archived before parsing so a parse bug never loses raw data.
// Rows that fail to parse are skipped and counted; the response reports
// rows_total / rows_stored / rows_skipped so the collector can alert on a
// lossy shift.
func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		jsonutil.BadRequest(w, "File too large (max 32MB)")
		return
	}

	uploadedFile, header, err := r.FormFile("file")
	if err != nil {
		jsonutil.BadRequest(w, "Missing file field")
		return
	}
	defer uploadedFile.Close()

	// Archive the raw file first: uploads/YYYY/MM/<uuid8>.csv
	now := time.Now().UTC()
	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = ".csv"
	}
	storagePath := fmt.Sprintf("uploads/%04d/%02d/%s%s",
		now.Year(), int(now.Month()), uuid.New().String()[:8], ext)

	opts := &storage.PutOptions{ContentType: "text/csv"}
	if err := h.fileStorage.Put(ctx, storagePath, uploadedFile, opts); err != nil {
		h.logger.Error("failed to archive upload",
			zap.String("file", header.Filename),
			zap.Error(err),
		)
		jsonutil.InternalError(w, "Failed to store file")
		return
	}

	if _, err := uploadedFile.Seek(0, 0); err != nil {
		h.logger.Error("failed to rewind upload", zap.Error(err))
		jsonutil.InternalError(w, "Failed to read file")
		return
	}

	res, err := parseCSV(uploadedFile)
	if err != nil {
		// The archive stays; a header fix and re-ingest can recover it.
		h.logger.Warn("rejected upload",
			zap.String("file", header.Filename),
			zap.Error(err),
		)
		jsonutil.BadRequest(w, "Invalid CSV: "+err.Error())
		return
	}

	stored, err := h.readings.InsertMany(ctx, res.Readings)
	if err != nil {
		h.logger.Error("failed to store readings",
			zap.String("file", header.Filename),
			zap.Error(err),
		)
		jsonutil.InternalError(w, "Failed to store readings")
		return
	}

	machine := ""
	if len(res.Readings) > 0 {
		machine = res.Readings[0].Machine
	}
	for _, serial := range machineSerials(res.Readings) {
		if err := h.machines.TouchLastSeen(ctx, serial, now); err != nil {
			h.logger.Warn("failed to touch machine",
				zap.String("machine", serial),
				zap.Error(err),
			)
		}
	}

	record, err := h.uploads.Create(ctx, uploadstore.CreateInput{
		FileName:    header.Filename,
		StoragePath: storagePath,
		Size:        header.Size,
		Machine:     machine,
		RowsTotal:   res.RowsTotal,
		RowsStored:  stored,
		RowsSkipped: res.RowsSkipped,
	})
	if err != nil {
		h.logger.Error("failed to record upload",
			zap.String("file", header.Filename),
			zap.Error(err),
		)
		jsonutil.InternalError(w, "Failed to record upload")
		return
	}

	h.logger.Info("upload ingested",
		zap.String("file", header.Filename),
		zap.String("storage_path", storagePath),
		zap.Int("rows_total", res.RowsTotal),
		zap.Int("rows_stored", stored),
		zap.Int("rows_skipped", res.RowsSkipped),
	)

	jsonutil.Created(w, record)
}

// Recent handles GET /api/data/uploads.
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	out, err := h.uploads.Recent(r.Context(), 20)
	if err != nil {
		h.logger.Error("failed to list uploads", zap.Error(err))
		jsonutil.InternalError(w, "Failed to load uploads")
		return
	}
	jsonutil.OK(w, out)
}

// machineSerials returns the distinct machine serials in a batch, in first
// appearance order.
func machineSerials(readings []models.Reading) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range readings {
		if !seen[r.Machine] {
			seen[r.Machine] = true
			out = append(out, r.Machine)
		}
	}
	return out
}
