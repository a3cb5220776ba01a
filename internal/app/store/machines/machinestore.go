// internal/app/store/machines/machinestore.go
package machines

import (
	"context"
	"time"

	"github.com/dalemusser/castwatch/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the MongoDB collection for the machine registry.
const CollectionName = "machines"

// Store provides access to the machines collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new machine store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// List returns all machines ordered by serial.
func (s *Store) List(ctx context.Context) ([]models.Machine, error) {
	opts := options.Find().SetSort(bson.D{{Key: "serial", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Machine
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBySerial looks a machine up by its serial, e.g. "DC-01".
// Returns mongo.ErrNoDocuments when the serial is unknown.
func (s *Store) GetBySerial(ctx context.Context, serial string) (*models.Machine, error) {
	var m models.Machine
	if err := s.c.FindOne(ctx, bson.M{"serial": serial}).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Upsert registers a machine or updates its name/line, keyed by serial.
func (s *Store) Upsert(ctx context.Context, m models.Machine) error {
	filter := bson.M{"serial": m.Serial}
	update := bson.M{
		"$set": bson.M{
			"name":   m.Name,
			"line":   m.Line,
			"active": m.Active,
		},
		"$setOnInsert": bson.M{
			"_id":      primitive.NewObjectID(),
			"serial":   m.Serial,
			"added_at": time.Now().UTC(),
		},
	}
	_, err := s.c.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// TouchLastSeen stamps the machine's last_seen after a successful ingest.
// Unknown serials are registered implicitly so an upload for a new machine
// shows up in the list without a separate registration step.
func (s *Store) TouchLastSeen(ctx context.Context, serial string, at time.Time) error {
	filter := bson.M{"serial": serial}
	update := bson.M{
		"$set": bson.M{"last_seen": at},
		"$setOnInsert": bson.M{
			"_id":      primitive.NewObjectID(),
			"serial":   serial,
			"name":     serial,
			"active":   true,
			"added_at": time.Now().UTC(),
		},
	}
	_, err := s.c.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}
