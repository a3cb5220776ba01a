// internal/domain/models/parameter.go
package models

import "errors"

// Parameter identifies one of the physical quantities monitored on every
// die-casting machine. The set is closed: the upstream data files, the chart
// API, and the threshold store all key on exactly these five values.
type Parameter string

const (
	ParamMetalTemperature  Parameter = "metal_temperature"
	ParamSolidificationTime Parameter = "solidification_time"
	ParamTiltingAngle      Parameter = "tilting_angle"
	ParamTiltingSpeed      Parameter = "tilting_speed"
	ParamTopDieTemperature Parameter = "top_die_temperature"
)

// AllParameters lists every monitored parameter in display order.
var AllParameters = []Parameter{
	ParamMetalTemperature,
	ParamSolidificationTime,
	ParamTiltingAngle,
	ParamTiltingSpeed,
	ParamTopDieTemperature,
}

// ErrUnknownParameter is returned when an identifier outside the monitored
// set reaches a store or handler. Callers validate with ParseParameter first,
// so seeing this error means a programming mistake, not bad operator input.
var ErrUnknownParameter = errors.New("unknown parameter")

// IsValidParameter reports whether s is one of the monitored parameters.
func IsValidParameter(s string) bool {
	switch Parameter(s) {
	case ParamMetalTemperature, ParamSolidificationTime, ParamTiltingAngle,
		ParamTiltingSpeed, ParamTopDieTemperature:
		return true
	}
	return false
}

// ParseParameter converts an external identifier to a Parameter.
func ParseParameter(s string) (Parameter, error) {
	if !IsValidParameter(s) {
		return "", ErrUnknownParameter
	}
	return Parameter(s), nil
}

// Unit returns the engineering unit for display labels.
func (p Parameter) Unit() string {
	switch p {
	case ParamMetalTemperature, ParamTopDieTemperature:
		return "°C"
	case ParamSolidificationTime:
		return "s"
	case ParamTiltingAngle:
		return "°"
	case ParamTiltingSpeed:
		return "°/s"
	}
	return ""
}
