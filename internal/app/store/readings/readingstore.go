// internal/app/store/readings/readingstore.go
package readings

import (
	"context"
	"time"

	"github.com/dalemusser/castwatch/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the MongoDB collection for sensor readings.
const CollectionName = "readings"

// Store provides access to the readings collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new readings store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// QueryInput narrows a reading query. Machine is required; From/To bound
// recorded_at when non-zero; Limit caps the result (0 means no cap).
type QueryInput struct {
	Machine string
	From    time.Time
	To      time.Time
	Limit   int64
}

// Query returns the machine's readings ordered by recorded_at ascending.
// Order is the chart's x-axis order and must never be re-sorted downstream.
func (s *Store) Query(ctx context.Context, in QueryInput) ([]models.Reading, error) {
	filter := bson.M{"machine": in.Machine}
	timeRange := bson.M{}
	if !in.From.IsZero() {
		timeRange["$gte"] = in.From
	}
	if !in.To.IsZero() {
		timeRange["$lte"] = in.To
	}
	if len(timeRange) > 0 {
		filter["recorded_at"] = timeRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "recorded_at", Value: 1}})
	if in.Limit > 0 {
		opts.SetLimit(in.Limit)
	}

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Reading
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// InsertMany stores a batch of readings, typically one parsed upload.
func (s *Store) InsertMany(ctx context.Context, batch []models.Reading) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, len(batch))
	for i := range batch {
		docs[i] = batch[i]
	}
	res, err := s.c.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

// DeleteOlderThan removes readings recorded before the cutoff and returns
// how many were dropped. Used by the retention job.
func (s *Store) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"recorded_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountForMachine returns the number of stored readings for a machine.
func (s *Store) CountForMachine(ctx context.Context, machine string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"machine": machine})
}
