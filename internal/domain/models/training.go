// internal/domain/models/training.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Training run status values.
const (
	TrainingQueued  = "queued"
	TrainingRunning = "running"
	TrainingDone    = "done"
	TrainingFailed  = "failed"
)

// TrainingRun records one retraining request sent to the model service.
type TrainingRun struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	RunID       string             `bson:"run_id" json:"run_id"` // stable id handed to the trainer
	Machine     string             `bson:"machine,omitempty" json:"machine,omitempty"`
	Status      string             `bson:"status" json:"status"`
	Error       string             `bson:"error,omitempty" json:"error,omitempty"`
	RequestedAt time.Time          `bson:"requested_at" json:"requested_at"`
	StartedAt   *time.Time         `bson:"started_at,omitempty" json:"started_at,omitempty"`
	FinishedAt  *time.Time         `bson:"finished_at,omitempty" json:"finished_at,omitempty"`
}
