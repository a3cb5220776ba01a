// internal/domain/models/upload.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Upload records one ingested data file: where the raw file was stored and
// how many rows made it into the readings collection.
type Upload struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FileName    string             `bson:"file_name" json:"file_name"`
	StoragePath string             `bson:"storage_path" json:"storage_path"`
	Size        int64              `bson:"size" json:"size"`
	Machine     string             `bson:"machine,omitempty" json:"machine,omitempty"`
	RowsTotal   int                `bson:"rows_total" json:"rows_total"`
	RowsStored  int                `bson:"rows_stored" json:"rows_stored"`
	RowsSkipped int                `bson:"rows_skipped" json:"rows_skipped"`
	UploadedAt  time.Time          `bson:"uploaded_at" json:"uploaded_at"`
}
