// internal/domain/series/annotator.go

// Package series turns a raw multi-parameter reading sequence into the
// renderable artifacts the chart needs: a single-parameter annotated series,
// a padded value-axis domain, and the labeled min/max points.
//
// All functions are pure and total: they never error, never mutate their
// inputs, and resolve empty or all-absent series via documented fallbacks.
// They recompute from scratch on every call; the caller decides when inputs
// changed and a new pass is needed.
package series

import (
	"math"

	"github.com/dalemusser/castwatch/internal/domain/models"
)

const (
	// Fallback axis range when a series has no defined values, so the chart
	// still renders axes instead of collapsing.
	fallbackLower = 0
	fallbackUpper = 100

	// Padding applied when every defined value is identical (zero range).
	flatPadding = 20

	// Fraction of the value range used as padding otherwise.
	paddingFraction = 0.10
)

// Project strips readings down to the selected parameter, preserving order
// and length. The i-th output always carries the i-th input's label and
// violation flag; Value stays nil when the reading has no measurement for
// the parameter. The returned slice is freely re-iterable; the caller reads
// it once for the line, once for extrema, once for violation markers.
func Project(readings []models.Reading, param models.Parameter) []models.AnnotatedPoint {
	points := make([]models.AnnotatedPoint, len(readings))
	for i := range readings {
		p := models.AnnotatedPoint{
			Label:       readings[i].Label,
			IsViolation: readings[i].IsViolation,
		}
		if v, ok := readings[i].Value(param); ok {
			value := v
			p.Value = &value
		}
		points[i] = p
	}
	return points
}

// ComputeDomain derives the value-axis range covering every defined value in
// the series with padding. Rounding is directional on purpose: lower is
// floored and upper is ceiled so the rendered axis can never clip a data
// point. A series with no defined values gets the fixed [0, 100] fallback.
func ComputeDomain(points []models.AnnotatedPoint) models.Domain {
	minValue, maxValue, found := scan(points)
	if !found {
		return models.Domain{Lower: fallbackLower, Upper: fallbackUpper}
	}

	pad := float64(flatPadding)
	if r := maxValue - minValue; r > 0 {
		pad = r * paddingFraction
	}

	return models.Domain{
		Lower: math.Floor(minValue - pad),
		Upper: math.Ceil(maxValue + pad),
	}
}

// Extrema finds the first point in sequence order holding the series minimum
// and the first holding the maximum, over defined values only. A flat series
// resolves both roles to the same entry, which is returned once (Min set,
// Max nil) rather than duplicated. An all-absent series yields an empty pair.
func Extrema(points []models.AnnotatedPoint) models.ExtremaPair {
	minValue, maxValue, found := scan(points)
	if !found {
		return models.ExtremaPair{}
	}

	minIdx, maxIdx := -1, -1
	for i := range points {
		if points[i].Value == nil {
			continue
		}
		v := *points[i].Value
		if minIdx < 0 && v == minValue {
			minIdx = i
		}
		if maxIdx < 0 && v == maxValue {
			maxIdx = i
		}
		if minIdx >= 0 && maxIdx >= 0 {
			break
		}
	}

	pair := models.ExtremaPair{Min: &points[minIdx]}
	if maxIdx != minIdx {
		pair.Max = &points[maxIdx]
	}
	return pair
}

// scan returns the min and max over defined values, or found=false when the
// series has none.
func scan(points []models.AnnotatedPoint) (minValue, maxValue float64, found bool) {
	for i := range points {
		if points[i].Value == nil {
			continue
		}
		v := *points[i].Value
		if !found {
			minValue, maxValue = v, v
			found = true
			continue
		}
		if v < minValue {
			minValue = v
		}
		if v > maxValue {
			maxValue = v
		}
	}
	return minValue, maxValue, found
}
