// internal/domain/models/machine.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Machine is one die-casting machine known to the dashboard.
type Machine struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Serial   string             `bson:"serial" json:"serial"` // e.g. "DC-01"
	Name     string             `bson:"name" json:"name"`
	Line     string             `bson:"line,omitempty" json:"line,omitempty"`
	Active   bool               `bson:"active" json:"active"`
	AddedAt  time.Time          `bson:"added_at" json:"added_at"`
	LastSeen *time.Time         `bson:"last_seen,omitempty" json:"last_seen,omitempty"` // last reading ingested
}
