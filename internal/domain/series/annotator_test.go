package series

import (
	"testing"

	"github.com/dalemusser/castwatch/internal/domain/models"
)

func fv(v float64) *float64 { return &v }

func makeReadings(values []*float64, violations []bool) []models.Reading {
	readings := make([]models.Reading, len(values))
	for i := range values {
		r := models.Reading{
			Machine: "DC-01",
			Label:   labelFor(i),
			Values:  map[models.Parameter]float64{},
		}
		if values[i] != nil {
			r.Values[models.ParamMetalTemperature] = *values[i]
		}
		if violations != nil {
			r.IsViolation = violations[i]
		}
		readings[i] = r
	}
	return readings
}

func labelFor(i int) string {
	labels := []string{"08:00", "08:01", "08:02", "08:03", "08:04", "08:05"}
	if i < len(labels) {
		return labels[i]
	}
	return "late"
}

func TestProject_PreservesOrderAndLength(t *testing.T) {
	readings := makeReadings([]*float64{fv(705), nil, fv(725)}, []bool{true, false, false})

	points := Project(readings, models.ParamMetalTemperature)

	if len(points) != len(readings) {
		t.Fatalf("Project() length = %d, want %d", len(points), len(readings))
	}
	for i := range readings {
		if points[i].Label != readings[i].Label {
			t.Errorf("point %d label = %q, want %q", i, points[i].Label, readings[i].Label)
		}
		if points[i].IsViolation != readings[i].IsViolation {
			t.Errorf("point %d is_violation = %v, want %v", i, points[i].IsViolation, readings[i].IsViolation)
		}
	}
}

func TestProject_AbsentValuesStayAbsent(t *testing.T) {
	readings := makeReadings([]*float64{fv(705), nil, fv(725)}, nil)

	points := Project(readings, models.ParamMetalTemperature)

	if points[1].Value != nil {
		t.Errorf("absent value projected as %v, want nil", *points[1].Value)
	}
	if points[0].Value == nil || *points[0].Value != 705 {
		t.Errorf("point 0 value = %v, want 705", points[0].Value)
	}
}

func TestProject_OtherParameterAllAbsent(t *testing.T) {
	readings := makeReadings([]*float64{fv(705), fv(715)}, nil)

	// Readings only carry metal_temperature; projecting another parameter
	// must yield all-nil values, same length and order.
	points := Project(readings, models.ParamTiltingSpeed)

	if len(points) != 2 {
		t.Fatalf("Project() length = %d, want 2", len(points))
	}
	for i, p := range points {
		if p.Value != nil {
			t.Errorf("point %d value = %v, want nil", i, *p.Value)
		}
	}
}

func TestProject_Empty(t *testing.T) {
	points := Project(nil, models.ParamMetalTemperature)
	if len(points) != 0 {
		t.Errorf("Project(nil) length = %d, want 0", len(points))
	}
}

func TestComputeDomain_PaddedRange(t *testing.T) {
	// Values 705..725: range 20, padding 2.
	readings := makeReadings([]*float64{fv(705), fv(715), fv(725)}, nil)
	points := Project(readings, models.ParamMetalTemperature)

	d := ComputeDomain(points)

	if d.Lower != 703 {
		t.Errorf("domain lower = %v, want 703", d.Lower)
	}
	if d.Upper != 727 {
		t.Errorf("domain upper = %v, want 727", d.Upper)
	}
}

func TestComputeDomain_NeverClips(t *testing.T) {
	cases := [][]*float64{
		{fv(1.5), fv(99.7)},
		{fv(-40), fv(-3)},
		{fv(0.001), fv(0.002), fv(0.0015)},
		{fv(710.4)},
	}
	for _, values := range cases {
		points := Project(makeReadings(values, nil), models.ParamMetalTemperature)
		d := ComputeDomain(points)
		for _, p := range points {
			if p.Value == nil {
				continue
			}
			if *p.Value < d.Lower || *p.Value > d.Upper {
				t.Errorf("value %v clipped by domain [%v, %v]", *p.Value, d.Lower, d.Upper)
			}
		}
	}
}

func TestComputeDomain_Fallback(t *testing.T) {
	// No defined values at all.
	for _, points := range [][]models.AnnotatedPoint{
		nil,
		Project(makeReadings([]*float64{nil, nil}, nil), models.ParamMetalTemperature),
	} {
		d := ComputeDomain(points)
		if d.Lower != 0 || d.Upper != 100 {
			t.Errorf("fallback domain = [%v, %v], want [0, 100]", d.Lower, d.Upper)
		}
	}
}

func TestComputeDomain_FlatSeries(t *testing.T) {
	// All values equal, so the constant padding of 20 applies.
	readings := makeReadings([]*float64{fv(50), fv(50), fv(50)}, nil)
	points := Project(readings, models.ParamMetalTemperature)

	d := ComputeDomain(points)

	if d.Lower != 30 || d.Upper != 70 {
		t.Errorf("flat domain = [%v, %v], want [30, 70]", d.Lower, d.Upper)
	}
}

func TestComputeDomain_Deterministic(t *testing.T) {
	points := Project(makeReadings([]*float64{fv(705), nil, fv(725)}, nil), models.ParamMetalTemperature)

	first := ComputeDomain(points)
	for i := 0; i < 5; i++ {
		if got := ComputeDomain(points); got != first {
			t.Fatalf("domain recomputation drifted: %+v vs %+v", got, first)
		}
	}
}

func TestExtrema_FirstOccurrence(t *testing.T) {
	// Min at the first point, max at the last.
	readings := makeReadings([]*float64{fv(705), fv(715), fv(725)}, []bool{true, false, false})
	points := Project(readings, models.ParamMetalTemperature)

	ex := Extrema(points)

	if ex.Min == nil || *ex.Min.Value != 705 || ex.Min.Label != "08:00" {
		t.Errorf("min = %+v, want value 705 at 08:00", ex.Min)
	}
	if ex.Max == nil || *ex.Max.Value != 725 || ex.Max.Label != "08:02" {
		t.Errorf("max = %+v, want value 725 at 08:02", ex.Max)
	}
}

func TestExtrema_TieBreaksToFirst(t *testing.T) {
	readings := makeReadings([]*float64{fv(715), fv(705), fv(725), fv(705), fv(725)}, nil)
	points := Project(readings, models.ParamMetalTemperature)

	ex := Extrema(points)

	if ex.Min.Label != "08:01" {
		t.Errorf("min label = %q, want first occurrence 08:01", ex.Min.Label)
	}
	if ex.Max.Label != "08:02" {
		t.Errorf("max label = %q, want first occurrence 08:02", ex.Max.Label)
	}
}

func TestExtrema_FlatSeriesSinglePoint(t *testing.T) {
	// Min and max resolve to the same entry: one point, not two.
	readings := makeReadings([]*float64{fv(50), fv(50), fv(50)}, nil)
	points := Project(readings, models.ParamMetalTemperature)

	ex := Extrema(points)

	if ex.Min == nil || ex.Min.Label != "08:00" || *ex.Min.Value != 50 {
		t.Fatalf("min = %+v, want value 50 at 08:00", ex.Min)
	}
	if ex.Max != nil {
		t.Errorf("flat series returned duplicated max %+v", ex.Max)
	}
}

func TestExtrema_SkipsAbsentValues(t *testing.T) {
	readings := makeReadings([]*float64{nil, fv(712), nil, fv(708)}, nil)
	points := Project(readings, models.ParamMetalTemperature)

	ex := Extrema(points)

	if ex.Min == nil || *ex.Min.Value != 708 {
		t.Errorf("min = %+v, want 708", ex.Min)
	}
	if ex.Max == nil || *ex.Max.Value != 712 {
		t.Errorf("max = %+v, want 712", ex.Max)
	}
}

func TestExtrema_EmptyPair(t *testing.T) {
	// All values absent.
	points := Project(makeReadings([]*float64{nil, nil}, nil), models.ParamMetalTemperature)

	ex := Extrema(points)

	if !ex.IsEmpty() {
		t.Errorf("extrema of all-absent series = %+v, want empty pair", ex)
	}
}

func TestPipeline_AllAbsentSeries(t *testing.T) {
	readings := makeReadings([]*float64{nil, nil}, nil)

	points := Project(readings, models.ParamMetalTemperature)
	d := ComputeDomain(points)
	ex := Extrema(points)

	if len(points) != 2 {
		t.Errorf("projected length = %d, want 2", len(points))
	}
	if d.Lower != 0 || d.Upper != 100 {
		t.Errorf("domain = [%v, %v], want [0, 100]", d.Lower, d.Upper)
	}
	if !ex.IsEmpty() {
		t.Errorf("extrema = %+v, want empty", ex)
	}
}
