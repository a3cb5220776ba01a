// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureReadings(ctx, db); err != nil {
		problems = append(problems, "readings: "+err.Error())
	}
	if err := ensureMachines(ctx, db); err != nil {
		problems = append(problems, "machines: "+err.Error())
	}
	if err := ensureUploads(ctx, db); err != nil {
		problems = append(problems, "uploads: "+err.Error())
	}
	if err := ensureTrainingRuns(ctx, db); err != nil {
		problems = append(problems, "training_runs: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New("index setup failed: " + strings.Join(problems, "; "))
	}
	return nil
}

// ensureReadings indexes the chart query path (machine + time range, sorted
// ascending) and the retention sweep (recorded_at alone).
func ensureReadings(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection("readings")
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "machine", Value: 1},
				{Key: "recorded_at", Value: 1},
			},
			Options: options.Index().SetName("idx_machine_recorded_at"),
		},
		{
			Keys:    bson.D{{Key: "recorded_at", Value: 1}},
			Options: options.Index().SetName("idx_recorded_at"),
		},
	})
	return err
}

func ensureMachines(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection("machines")
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "serial", Value: 1}},
		Options: options.Index().SetName("idx_serial").SetUnique(true),
	})
	return err
}

func ensureUploads(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection("uploads")
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "uploaded_at", Value: -1}},
		Options: options.Index().SetName("idx_uploaded_at"),
	})
	return err
}

func ensureTrainingRuns(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection("training_runs")
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "run_id", Value: 1}},
			Options: options.Index().SetName("idx_run_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "requested_at", Value: -1}},
			Options: options.Index().SetName("idx_requested_at"),
		},
	})
	return err
}
