package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"wattchart/internal/series"
)

// Column headers as they appear in utility consumption exports.
const (
	ColumnTimestamp   = "Interval Start Date/Time"
	ColumnConsumption = "Net Consumption (kWh)"
	ColumnCity        = "City"
	ColumnAddress     = "Service Address"
)

// ErrNoDataRows is returned when the file has a header but no readings.
var ErrNoDataRows = errors.New("ingest: no data rows in file")

// ReadFile parses a consumption CSV into readings, preserving row order. The
// location columns from the first data row become the series metadata.
func ReadFile(path string) ([]series.Reading, series.Meta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, series.Meta{}, fmt.Errorf("ingest: open: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses consumption CSV content from a reader.
func Read(r io.Reader) ([]series.Reading, series.Meta, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, series.Meta{}, ErrNoDataRows
	}
	if err != nil {
		return nil, series.Meta{}, fmt.Errorf("ingest: read header: %w", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, series.Meta{}, err
	}

	var (
		readings []series.Reading
		meta     series.Meta
		row      int
	)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, series.Meta{}, fmt.Errorf("ingest: read row %d: %w", row+1, err)
		}
		row++

		reading, err := series.NewReading(row, record[cols.timestamp], record[cols.consumption])
		if err != nil {
			return nil, series.Meta{}, err
		}
		readings = append(readings, reading)

		if row == 1 {
			meta = series.Meta{
				City:    strings.TrimSpace(record[cols.city]),
				Address: strings.TrimSpace(record[cols.address]),
			}
		}
	}

	if len(readings) == 0 {
		return nil, series.Meta{}, ErrNoDataRows
	}
	return readings, meta, nil
}

type columnIndex struct {
	timestamp   int
	consumption int
	city        int
	address     int
}

func mapColumns(header []string) (columnIndex, error) {
	idx := columnIndex{timestamp: -1, consumption: -1, city: -1, address: -1}
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case ColumnTimestamp:
			idx.timestamp = i
		case ColumnConsumption:
			idx.consumption = i
		case ColumnCity:
			idx.city = i
		case ColumnAddress:
			idx.address = i
		}
	}
	for name, i := range map[string]int{
		ColumnTimestamp:   idx.timestamp,
		ColumnConsumption: idx.consumption,
		ColumnCity:        idx.city,
		ColumnAddress:     idx.address,
	} {
		if i < 0 {
			return columnIndex{}, fmt.Errorf("ingest: missing column %q", name)
		}
	}
	return idx, nil
}
