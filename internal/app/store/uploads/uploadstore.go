// internal/app/store/uploads/uploadstore.go
package uploads

import (
	"context"
	"time"

	"github.com/dalemusser/castwatch/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the MongoDB collection for upload records.
const CollectionName = "uploads"

// Store provides access to the uploads collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new upload store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// CreateInput holds the fields for recording an ingested data file.
type CreateInput struct {
	FileName    string
	StoragePath string
	Size        int64
	Machine     string
	RowsTotal   int
	RowsStored  int
	RowsSkipped int
}

// Create records an upload and returns the stored document.
func (s *Store) Create(ctx context.Context, in CreateInput) (*models.Upload, error) {
	up := models.Upload{
		ID:          primitive.NewObjectID(),
		FileName:    in.FileName,
		StoragePath: in.StoragePath,
		Size:        in.Size,
		Machine:     in.Machine,
		RowsTotal:   in.RowsTotal,
		RowsStored:  in.RowsStored,
		RowsSkipped: in.RowsSkipped,
		UploadedAt:  time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, up); err != nil {
		return nil, err
	}
	return &up, nil
}

// Recent returns the newest upload records, capped at limit.
func (s *Store) Recent(ctx context.Context, limit int64) ([]models.Upload, error) {
	if limit <= 0 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "uploaded_at", Value: -1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Upload
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
