// internal/app/features/chart/types.go
package chart

import "github.com/dalemusser/castwatch/internal/domain/models"

// SeriesResponse is the full render payload for one chart: the projected
// single-parameter series, the value-axis domain, the labeled extrema, and
// the session's current specification limits for the reference lines.
//
// A batch is atomic: values and violation flags in Points come from the same
// query, so the flag always matches the parameter the values belong to.
type SeriesResponse struct {
	Machine    string                  `json:"machine"`
	Parameter  models.Parameter        `json:"parameter"`
	Unit       string                  `json:"unit,omitempty"`
	Points     []models.AnnotatedPoint `json:"points"`
	Domain     models.Domain           `json:"domain"`
	Extrema    models.ExtremaPair      `json:"extrema"`
	Thresholds models.Thresholds       `json:"thresholds"`
}
