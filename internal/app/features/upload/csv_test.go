package upload

import (
	"strings"
	"testing"

	"github.com/dalemusser/castwatch/internal/domain/models"
)

const csvHeader = "timestamp,machine,metal_temperature,solidification_time,tilting_angle,tilting_speed,top_die_temperature,is_violation\n"

func TestParseCSV_ValidRows(t *testing.T) {
	in := csvHeader +
		"2026-08-24T08:00:00Z,DC-01,705,9.5,30,20,200,true\n" +
		"2026-08-24T08:01:00Z,DC-01,712,10,31,21,205,false\n"

	res, err := parseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parseCSV: %v", err)
	}
	if res.RowsTotal != 2 || res.RowsSkipped != 0 || len(res.Readings) != 2 {
		t.Fatalf("total=%d skipped=%d stored=%d, want 2/0/2",
			res.RowsTotal, res.RowsSkipped, len(res.Readings))
	}

	first := res.Readings[0]
	if first.Machine != "DC-01" {
		t.Errorf("machine = %q, want DC-01", first.Machine)
	}
	if first.Label != "08:00" {
		t.Errorf("label = %q, want 08:00", first.Label)
	}
	if !first.IsViolation {
		t.Error("first row should carry is_violation=true")
	}
	if v, ok := first.Value(models.ParamMetalTemperature); !ok || v != 705 {
		t.Errorf("metal_temperature = %v/%v, want 705", v, ok)
	}
	if v, ok := first.Value(models.ParamSolidificationTime); !ok || v != 9.5 {
		t.Errorf("solidification_time = %v/%v, want 9.5", v, ok)
	}
	if res.Readings[1].IsViolation {
		t.Error("second row should carry is_violation=false")
	}
}

func TestParseCSV_BlankCellIsAbsentNotZero(t *testing.T) {
	in := csvHeader +
		"2026-08-24T08:00:00Z,DC-01,705,,30,20,200,false\n"

	res, err := parseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parseCSV: %v", err)
	}
	if len(res.Readings) != 1 {
		t.Fatalf("stored = %d, want 1", len(res.Readings))
	}

	r := res.Readings[0]
	if _, ok := r.Value(models.ParamSolidificationTime); ok {
		t.Error("blank solidification_time cell must be absent, not a value")
	}
	if v, ok := r.Value(models.ParamMetalTemperature); !ok || v != 705 {
		t.Errorf("metal_temperature = %v/%v, want 705", v, ok)
	}
}

func TestParseCSV_MalformedRowsSkippedAndCounted(t *testing.T) {
	in := csvHeader +
		"2026-08-24T08:00:00Z,DC-01,705,9.5,30,20,200,false\n" +
		"not-a-timestamp,DC-01,705,9.5,30,20,200,false\n" +
		"2026-08-24T08:02:00Z,,705,9.5,30,20,200,false\n" +
		"2026-08-24T08:03:00Z,DC-01,oops,9.5,30,20,200,false\n" +
		"2026-08-24T08:04:00Z,DC-01,705,9.5,30,20,200,maybe\n" +
		"2026-08-24T08:05:00Z,DC-01,705\n" +
		"2026-08-24T08:06:00Z,DC-01,710,9.5,30,20,200,1\n"

	res, err := parseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parseCSV: %v", err)
	}
	if res.RowsTotal != 7 {
		t.Errorf("RowsTotal = %d, want 7", res.RowsTotal)
	}
	if res.RowsSkipped != 5 {
		t.Errorf("RowsSkipped = %d, want 5", res.RowsSkipped)
	}
	if len(res.Readings) != 2 {
		t.Fatalf("stored = %d, want 2", len(res.Readings))
	}
	if !res.Readings[1].IsViolation {
		t.Error("is_violation=1 should parse as true")
	}
}

func TestParseCSV_BadHeaderRejectsFile(t *testing.T) {
	in := "time,machine,metal_temperature,solidification_time,tilting_angle,tilting_speed,top_die_temperature,is_violation\n" +
		"2026-08-24T08:00:00Z,DC-01,705,9.5,30,20,200,false\n"

	if _, err := parseCSV(strings.NewReader(in)); err == nil {
		t.Fatal("expected error for wrong header, got nil")
	}
}

func TestParseCSV_EmptyFile(t *testing.T) {
	if _, err := parseCSV(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty file, got nil")
	}

	res, err := parseCSV(strings.NewReader(csvHeader))
	if err != nil {
		t.Fatalf("parseCSV header-only: %v", err)
	}
	if res.RowsTotal != 0 || len(res.Readings) != 0 {
		t.Errorf("header-only file: total=%d stored=%d, want 0/0", res.RowsTotal, len(res.Readings))
	}
}
