package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wattchart/internal/series"
)

const hourlySample = `Interval Start Date/Time,Net Consumption (kWh),City,Service Address
2024-01-15 00:00,0.64,Squamish,123 Example Rd
2024-01-15 01:00,0.58,Squamish,123 Example Rd
2024-01-15 02:00,0.71,Squamish,123 Example Rd
`

func TestReadHourlySample(t *testing.T) {
	readings, meta, err := Read(strings.NewReader(hourlySample))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(readings) != 3 {
		t.Fatalf("got %d readings, want 3", len(readings))
	}
	if meta.City != "Squamish" || meta.Address != "123 Example Rd" {
		t.Fatalf("meta = %+v", meta)
	}
	if readings[1].Time.Hour() != 1 {
		t.Fatalf("second reading hour = %d, want 1", readings[1].Time.Hour())
	}
	if !readings[0].HasClock {
		t.Fatal("hourly reading should carry a clock component")
	}
}

func TestReadShuffledColumns(t *testing.T) {
	input := `City,Net Consumption (kWh),Service Address,Interval Start Date/Time
Squamish,12.4,123 Example Rd,2024-01-15
`
	readings, meta, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if readings[0].KWh.Float64() != 12.4 {
		t.Fatalf("kwh = %v, want 12.4", readings[0].KWh.Float64())
	}
	if meta.City != "Squamish" {
		t.Fatalf("meta = %+v", meta)
	}
	if readings[0].HasClock {
		t.Fatal("date-only reading should not carry a clock component")
	}
}

func TestReadMissingColumn(t *testing.T) {
	input := "Interval Start Date/Time,City,Service Address\n2024-01-15,Squamish,123 Example Rd\n"
	if _, _, err := Read(strings.NewReader(input)); err == nil {
		t.Fatal("expected error for missing consumption column")
	} else if !strings.Contains(err.Error(), ColumnConsumption) {
		t.Fatalf("error should name the missing column: %v", err)
	}
}

func TestReadHeaderOnly(t *testing.T) {
	input := "Interval Start Date/Time,Net Consumption (kWh),City,Service Address\n"
	if _, _, err := Read(strings.NewReader(input)); !errors.Is(err, ErrNoDataRows) {
		t.Fatalf("got %v, want ErrNoDataRows", err)
	}
}

func TestReadEmpty(t *testing.T) {
	if _, _, err := Read(strings.NewReader("")); !errors.Is(err, ErrNoDataRows) {
		t.Fatalf("got %v, want ErrNoDataRows", err)
	}
}

func TestReadMalformedRowReportsPosition(t *testing.T) {
	input := hourlySample + "not-a-timestamp,1.0,Squamish,123 Example Rd\n"
	_, _, err := Read(strings.NewReader(input))
	var malformed *series.MalformedReadingError
	if !errors.As(err, &malformed) {
		t.Fatalf("got %v, want MalformedReadingError", err)
	}
	if malformed.Row != 4 {
		t.Fatalf("row = %d, want 4", malformed.Row)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bchydro.com-consumption-2024-01.csv")
	if err := os.WriteFile(path, []byte(hourlySample), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	readings, _, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if len(readings) != 3 {
		t.Fatalf("got %d readings, want 3", len(readings))
	}
}

func TestDiscoverExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.csv")
	if err := os.WriteFile(path, []byte(hourlySample), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got, err := Discover(dir, "bchydro.com-consumption-*.csv", path)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if got != path {
		t.Fatalf("got %q, want %q", got, path)
	}

	if _, err := Discover(dir, "*.csv", filepath.Join(dir, "missing.csv")); err == nil {
		t.Fatal("expected error for missing explicit path")
	}
}

func TestDiscoverGlob(t *testing.T) {
	dir := t.TempDir()
	write := func(name string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(hourlySample), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}

	if _, err := Discover(dir, "bchydro.com-consumption-*.csv", ""); err == nil {
		t.Fatal("expected error for empty input dir")
	}

	write("bchydro.com-consumption-2024-01.csv")
	got, err := Discover(dir, "bchydro.com-consumption-*.csv", "")
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if filepath.Base(got) != "bchydro.com-consumption-2024-01.csv" {
		t.Fatalf("got %q", got)
	}

	write("bchydro.com-consumption-2024-02.csv")
	_, err = Discover(dir, "bchydro.com-consumption-*.csv", "")
	if err == nil {
		t.Fatal("expected error for ambiguous matches")
	}
	if !strings.Contains(err.Error(), "2024-01") || !strings.Contains(err.Error(), "2024-02") {
		t.Fatalf("error should name the candidates: %v", err)
	}
}
