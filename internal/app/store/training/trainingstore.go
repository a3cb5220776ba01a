// internal/app/store/training/trainingstore.go
package training

import (
	"context"
	"time"

	"github.com/dalemusser/castwatch/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the MongoDB collection for training runs.
const CollectionName = "training_runs"

// Store provides access to the training_runs collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new training-run store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// Create records a new run in the queued state.
func (s *Store) Create(ctx context.Context, runID, machine string) (*models.TrainingRun, error) {
	run := models.TrainingRun{
		ID:          primitive.NewObjectID(),
		RunID:       runID,
		Machine:     machine,
		Status:      models.TrainingQueued,
		RequestedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, run); err != nil {
		return nil, err
	}
	return &run, nil
}

// GetByRunID fetches a run by its stable id.
// Returns mongo.ErrNoDocuments when no such run exists.
func (s *Store) GetByRunID(ctx context.Context, runID string) (*models.TrainingRun, error) {
	var run models.TrainingRun
	if err := s.c.FindOne(ctx, bson.M{"run_id": runID}).Decode(&run); err != nil {
		return nil, err
	}
	return &run, nil
}

// SetStatus transitions a run and stamps started/finished times as the
// status warrants. The error message is recorded only for failed runs.
func (s *Store) SetStatus(ctx context.Context, runID, status, errMsg string) error {
	now := time.Now().UTC()
	set := bson.M{"status": status}
	switch status {
	case models.TrainingRunning:
		set["started_at"] = now
	case models.TrainingDone:
		set["finished_at"] = now
	case models.TrainingFailed:
		set["finished_at"] = now
		if errMsg != "" {
			set["error"] = errMsg
		}
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"run_id": runID}, bson.M{"$set": set})
	return err
}

// Recent returns the newest runs, capped at limit.
func (s *Store) Recent(ctx context.Context, limit int64) ([]models.TrainingRun, error) {
	if limit <= 0 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "requested_at", Value: -1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.TrainingRun
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExpireStuck marks runs stuck in queued/running past the cutoff as failed
// and returns how many were expired. Used by the background task runner so a
// dead trainer never leaves the dashboard showing a run in flight forever.
func (s *Store) ExpireStuck(ctx context.Context, cutoff time.Time) (int64, error) {
	filter := bson.M{
		"status":       bson.M{"$in": bson.A{models.TrainingQueued, models.TrainingRunning}},
		"requested_at": bson.M{"$lt": cutoff},
	}
	update := bson.M{"$set": bson.M{
		"status":      models.TrainingFailed,
		"error":       "expired: no response from trainer",
		"finished_at": time.Now().UTC(),
	}}
	res, err := s.c.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
