package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"wattchart/internal/analysis"
	"wattchart/internal/series"
	"wattchart/internal/weather"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func dailyChartData() ChartData {
	return ChartData{
		Series: series.Series{
			Granularity: series.GranularityDaily,
			Meta:        series.Meta{City: "Squamish", Address: "123 Example Rd"},
			StartDate:   day(15),
			EndDate:     day(17),
			Records: []series.PeriodRecord{
				{Index: 0, Date: day(15), KWh: 24.5, Samples: 24, Complete: true, DayOfWeek: 1},
				{Index: 1, Date: day(16), KWh: 18.25, Samples: 24, Complete: true, DayOfWeek: 2},
				{Index: 2, Date: day(17), KWh: 31.0, Samples: 20, DayOfWeek: 3},
			},
		},
		Temperatures: []weather.TemperatureRecord{
			{Index: 0, Celsius: -1.5},
			{Index: 2, Celsius: 4.0},
		},
	}
}

func hourlyChartData() ChartData {
	recs := make([]series.PeriodRecord, 24)
	for h := 0; h < 24; h++ {
		recs[h] = series.PeriodRecord{Index: h, KWh: 0.5 + float64(h)*0.05, Samples: 1, Complete: true, DayOfWeek: -1, Overnight: h <= 6}
	}
	return ChartData{
		Series: series.Series{
			Granularity: series.GranularityHourly,
			Meta:        series.Meta{City: "Squamish", Address: "123 Example Rd"},
			StartDate:   day(15),
			EndDate:     day(15),
			Records:     recs,
		},
	}
}

func TestChartDataLabels(t *testing.T) {
	d := dailyChartData()
	if got := d.Title(); got != "Daily Electricity Consumption and Temperature" {
		t.Fatalf("title = %q", got)
	}
	if got := d.Subtitle(); got != "123 Example Rd, Squamish, 2024-01-15 to 2024-01-17" {
		t.Fatalf("subtitle = %q", got)
	}
	if got := d.XLabel(); got != "Day" {
		t.Fatalf("x label = %q", got)
	}
	if got := d.PeriodLabel(d.Series.Records[1]); got != "2024-01-16" {
		t.Fatalf("period label = %q", got)
	}

	h := hourlyChartData()
	if got := h.XLabel(); got != "Hour of Day" {
		t.Fatalf("hourly x label = %q", got)
	}
	if got := h.PeriodLabel(h.Series.Records[7]); got != "7" {
		t.Fatalf("hourly period label = %q", got)
	}
	if got := h.DateRange(); got != "2024-01-15" {
		t.Fatalf("single-day range = %q", got)
	}
}

func TestTemperatureByIndex(t *testing.T) {
	d := dailyChartData()
	if !d.HasTemperatures() {
		t.Fatal("overlay should be present")
	}
	m := d.TemperatureByIndex()
	if len(m) != 2 || m[0] != -1.5 || m[2] != 4.0 {
		t.Fatalf("overlay map = %v", m)
	}

	h := hourlyChartData()
	if h.HasTemperatures() {
		t.Fatal("overlay should be absent")
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, dailyChartData()); err != nil {
		t.Fatalf("write text: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}
	if lines[0] != "Period\tDate\tNet Consumption (kWh)\tTemperature (°C)" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "0\t2024-01-15\t24.50\t-1.5" {
		t.Fatalf("first row = %q", lines[1])
	}
	// Period without overlay coverage leaves the temperature column blank.
	if lines[2] != "1\t2024-01-16\t18.25\t" {
		t.Fatalf("second row = %q", lines[2])
	}
}

func TestWriteTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.txt")
	if err := WriteTextFile(path, dailyChartData()); err != nil {
		t.Fatalf("write: %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(content), "24.50") {
		t.Fatalf("unexpected export content:\n%s", content)
	}
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.xlsx")
	if err := WriteWorkbook(path, dailyChartData()); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("workbook is empty")
	}

	// Without the overlay the workbook still writes, bars only.
	plain := filepath.Join(t.TempDir(), "plain.xlsx")
	if err := WriteWorkbook(plain, hourlyChartData()); err != nil {
		t.Fatalf("write workbook without overlay: %v", err)
	}
}

func TestWritePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.pdf")
	if err := WritePDF(path, dailyChartData()); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.HasPrefix(content, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}

	if err := WritePDF(filepath.Join(t.TempDir(), "empty.pdf"), ChartData{}); err == nil {
		t.Fatal("expected error for empty series")
	}
}

func TestWriteScatterWorkbook(t *testing.T) {
	points := make([]analysis.Point, 100)
	for i := range points {
		temp := float64(i) * 0.3
		points[i] = analysis.Point{TemperatureC: temp, KWh: 30 - 0.5*temp}
	}
	res, err := analysis.Correlate(points)
	if err != nil {
		t.Fatalf("correlate: %v", err)
	}

	path := filepath.Join(t.TempDir(), "correlation.xlsx")
	if err := WriteScatterWorkbook(path, points, res); err != nil {
		t.Fatalf("write scatter workbook: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("bad output: %v", err)
	}
}
