package upload

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/castwatch/internal/domain/models"
)

// csvColumns is the required header of an ingest file, in order.
var csvColumns = []string{
	"timestamp",
	"machine",
	"metal_temperature",
	"solidification_time",
	"tilting_angle",
	"tilting_speed",
	"top_die_temperature",
	"is_violation",
}

// chartLabelFormat renders a reading's timestamp as its x-axis label.
const chartLabelFormat = "15:04"

// parseResult summarizes one parsed ingest file.
type parseResult struct {
	Readings    []models.Reading
	RowsTotal   int
	RowsSkipped int
}

// parseCSV reads an ingest file into readings.
//
// The header must match csvColumns exactly. A blank numeric cell means the
// sensor produced no value for that parameter and yields no Values entry;
// it is never stored as zero. Malformed rows (bad timestamp, wrong column
// count, unparsable non-blank number, empty machine) are skipped and counted
// rather than failing the whole file.
func parseCSV(r io.Reader) (*parseResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	res := &parseResult{}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// csv.Reader reports quoting errors per record; treat them as
			// one more malformed row.
			res.RowsTotal++
			res.RowsSkipped++
			continue
		}

		res.RowsTotal++
		reading, ok := parseRow(record)
		if !ok {
			res.RowsSkipped++
			continue
		}
		res.Readings = append(res.Readings, reading)
	}
	return res, nil
}

func checkHeader(header []string) error {
	if len(header) != len(csvColumns) {
		return fmt.Errorf("header has %d columns, want %d", len(header), len(csvColumns))
	}
	for i, want := range csvColumns {
		if strings.TrimSpace(strings.ToLower(header[i])) != want {
			return fmt.Errorf("header column %d is %q, want %q", i+1, header[i], want)
		}
	}
	return nil
}

func parseRow(record []string) (models.Reading, bool) {
	if len(record) != len(csvColumns) {
		return models.Reading{}, false
	}

	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(record[0]))
	if err != nil {
		return models.Reading{}, false
	}

	machine := strings.TrimSpace(record[1])
	if machine == "" {
		return models.Reading{}, false
	}

	values := make(map[models.Parameter]float64)
	for i, p := range models.AllParameters {
		cell := strings.TrimSpace(record[2+i])
		if cell == "" {
			continue // absent, not zero
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return models.Reading{}, false
		}
		values[p] = v
	}

	violation, err := parseViolation(record[len(record)-1])
	if err != nil {
		return models.Reading{}, false
	}

	return models.Reading{
		Machine:     machine,
		Label:       ts.Format(chartLabelFormat),
		RecordedAt:  ts.UTC(),
		Values:      values,
		IsViolation: violation,
	}, true
}

func parseViolation(cell string) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(cell)) {
	case "true", "1":
		return true, nil
	case "false", "0", "":
		return false, nil
	default:
		return false, fmt.Errorf("bad is_violation value %q", cell)
	}
}
