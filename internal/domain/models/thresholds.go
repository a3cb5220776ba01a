// internal/domain/models/thresholds.go
package models

// Thresholds is the pair of specification limits for one parameter.
// Either side may be nil, meaning no limit (and no reference line) for that
// side. The store accepts Lower > Upper; the chart renders whatever is set.
type Thresholds struct {
	Lower *int `json:"lower,omitempty"`
	Upper *int `json:"upper,omitempty"`
}

// DefaultThresholds returns the engineering defaults for p. These are the
// values the process engineers signed off for the pilot line; operators can
// override them per session but the defaults are fixed constants.
func DefaultThresholds(p Parameter) Thresholds {
	switch p {
	case ParamMetalTemperature:
		return Thresholds{Lower: intPtr(710), Upper: intPtr(730)}
	case ParamSolidificationTime:
		return Thresholds{Lower: intPtr(8), Upper: intPtr(14)}
	case ParamTiltingAngle:
		return Thresholds{Lower: intPtr(28), Upper: intPtr(35)}
	case ParamTiltingSpeed:
		return Thresholds{Lower: intPtr(18), Upper: intPtr(24)}
	case ParamTopDieTemperature:
		return Thresholds{Lower: intPtr(180), Upper: intPtr(220)}
	}
	return Thresholds{}
}

func intPtr(v int) *int {
	return &v
}
