// internal/domain/models/reading.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reading is one raw multi-parameter sample for a machine.
//
// Values holds the measured value per parameter; a missing key means no
// measurement exists for that parameter at this timestamp. Absent values are
// never coerced to zero; they break line continuity on the chart.
//
// IsViolation is computed upstream (by the anomaly model) for the parameter
// the batch was queried or ingested for. This service passes it through and
// never recomputes it.
type Reading struct {
	ID          primitive.ObjectID    `bson:"_id,omitempty" json:"id,omitempty"`
	Machine     string                `bson:"machine" json:"machine"`
	Label       string                `bson:"label" json:"label"` // formatted time, the chart's x-axis label
	RecordedAt  time.Time             `bson:"recorded_at" json:"recorded_at"`
	Values      map[Parameter]float64 `bson:"values" json:"values"`
	IsViolation bool                  `bson:"is_violation" json:"is_violation"`
}

// Value returns the reading's value for p, or ok=false when absent.
func (r *Reading) Value(p Parameter) (float64, bool) {
	v, ok := r.Values[p]
	return v, ok
}

// AnnotatedPoint is a Reading projected onto a single parameter for rendering.
// Value is nil when the source reading carried no measurement.
type AnnotatedPoint struct {
	Label       string   `json:"label"`
	Value       *float64 `json:"value,omitempty"`
	IsViolation bool     `json:"is_violation"`
}

// Domain is the padded numeric range for the chart's value axis.
type Domain struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// ExtremaPair holds the first-occurring minimum and maximum points of a
// series. Max is nil when it resolves to the same entry as Min (flat series);
// both are nil when the series has no defined values.
type ExtremaPair struct {
	Min *AnnotatedPoint `json:"min,omitempty"`
	Max *AnnotatedPoint `json:"max,omitempty"`
}

// IsEmpty reports whether no extremum was found.
func (e ExtremaPair) IsEmpty() bool {
	return e.Min == nil && e.Max == nil
}
