package render

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const dataSheet = "Data"

// WriteWorkbook renders an XLSX with the aligned data table and a native
// column chart, line overlay for temperature when present.
func WriteWorkbook(path string, data ChartData) error {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", dataSheet)

	_ = f.SetCellValue(dataSheet, "A1", data.XLabel())
	_ = f.SetCellValue(dataSheet, "B1", "Date")
	_ = f.SetCellValue(dataSheet, "C1", "Net Consumption (kWh)")
	_ = f.SetCellValue(dataSheet, "D1", "Temperature (°C)")

	temps := data.TemperatureByIndex()
	for i, rec := range data.Series.Records {
		row := i + 2
		_ = f.SetCellValue(dataSheet, fmt.Sprintf("A%d", row), data.PeriodLabel(rec))
		if !rec.Date.IsZero() {
			_ = f.SetCellValue(dataSheet, fmt.Sprintf("B%d", row), rec.Date.Format(dateLayout))
		}
		_ = f.SetCellValue(dataSheet, fmt.Sprintf("C%d", row), rec.KWh)
		if c, ok := temps[rec.Index]; ok {
			_ = f.SetCellValue(dataSheet, fmt.Sprintf("D%d", row), c)
		}
	}

	lastRow := len(data.Series.Records) + 1
	categories := fmt.Sprintf("%s!$A$2:$A$%d", dataSheet, lastRow)

	bars := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("%s!$C$1", dataSheet),
				Categories: categories,
				Values:     fmt.Sprintf("%s!$C$2:$C$%d", dataSheet, lastRow),
			},
		},
		Title: []excelize.RichTextRun{
			{Text: data.Title()},
		},
		Legend: excelize.ChartLegend{Position: "top"},
		XAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: data.XLabel()}}},
		YAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Net Consumption (kWh)"}}},
	}

	var combo []*excelize.Chart
	if data.HasTemperatures() {
		combo = append(combo, &excelize.Chart{
			Type: excelize.Line,
			Series: []excelize.ChartSeries{
				{
					Name:       fmt.Sprintf("%s!$D$1", dataSheet),
					Categories: categories,
					Values:     fmt.Sprintf("%s!$D$2:$D$%d", dataSheet, lastRow),
					Marker:     excelize.ChartMarker{Symbol: "circle", Size: 5},
				},
			},
		})
	}

	if err := f.AddChart(dataSheet, "F2", bars, combo...); err != nil {
		return fmt.Errorf("render: add chart: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("render: save workbook: %w", err)
	}
	return nil
}
