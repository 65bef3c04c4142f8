package render

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"wattchart/internal/analysis"
)

// WriteScatterWorkbook renders the correlation analysis as an XLSX: the raw
// temperature/consumption points with the quadratic fit alongside, plus a
// scatter chart of both.
func WriteScatterWorkbook(path string, points []analysis.Point, res analysis.Result) error {
	f := excelize.NewFile()
	sheet := "Correlation"
	f.SetSheetName("Sheet1", sheet)

	sorted := make([]analysis.Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].TemperatureC < sorted[j].TemperatureC })

	_ = f.SetCellValue(sheet, "A1", "Temperature (°C)")
	_ = f.SetCellValue(sheet, "B1", "Net Consumption (kWh)")
	_ = f.SetCellValue(sheet, "C1", "Quadratic Fit (kWh)")
	for i, p := range sorted {
		row := i + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.TemperatureC)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), p.KWh)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), res.FittedKWh(p.TemperatureC))
	}

	_ = f.SetCellValue(sheet, "E1", "Pearson r")
	_ = f.SetCellValue(sheet, "F1", res.Pearson)
	_ = f.SetCellValue(sheet, "E2", "R-squared")
	_ = f.SetCellValue(sheet, "F2", res.R2)
	_ = f.SetCellValue(sheet, "E3", "Optimal temp (°C)")
	_ = f.SetCellValue(sheet, "F3", res.OptimalTempC)

	lastRow := len(sorted) + 1
	categories := fmt.Sprintf("%s!$A$2:$A$%d", sheet, lastRow)
	chart := &excelize.Chart{
		Type: excelize.Scatter,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("%s!$B$1", sheet),
				Categories: categories,
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", sheet, lastRow),
				Marker:     excelize.ChartMarker{Symbol: "circle", Size: 4},
			},
			{
				Name:       fmt.Sprintf("%s!$C$1", sheet),
				Categories: categories,
				Values:     fmt.Sprintf("%s!$C$2:$C$%d", sheet, lastRow),
			},
		},
		Title: []excelize.RichTextRun{
			{Text: "Temperature vs Daily Electricity Consumption"},
		},
		Legend: excelize.ChartLegend{Position: "top"},
		XAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Temperature (°C)"}}},
		YAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Net Consumption (kWh) per day"}}},
	}

	if err := f.AddChart(sheet, "E6", chart); err != nil {
		return fmt.Errorf("render: add scatter chart: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("render: save correlation workbook: %w", err)
	}
	return nil
}
