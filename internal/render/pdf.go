package render

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Plot geometry in mm on a landscape A4 page.
const (
	plotLeft   = 25.0
	plotRight  = 272.0
	plotTop    = 32.0
	plotBottom = 172.0
	barRatio   = 0.7
)

// WritePDF draws the bar chart with its temperature polyline as a vector PDF.
func WritePDF(path string, data ChartData) error {
	if len(data.Series.Records) == 0 {
		return fmt.Errorf("render: no periods to draw")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, tr(data.Title()), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 6, tr(data.Subtitle()), "", 1, "C", false, 0, "")

	drawAxes(pdf, data, tr)
	drawBars(pdf, data)
	if data.HasTemperatures() {
		drawTemperatureLine(pdf, data, tr)
	} else {
		pdf.SetFont("Arial", "I", 9)
		pdf.SetTextColor(120, 120, 120)
		pdf.Text(plotLeft, plotBottom+16, tr("Temperature overlay unavailable"))
		pdf.SetTextColor(0, 0, 0)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("render: write pdf: %w", err)
	}
	return nil
}

func maxConsumption(data ChartData) float64 {
	max := 0.0
	for _, rec := range data.Series.Records {
		if rec.KWh > max {
			max = rec.KWh
		}
	}
	if max == 0 {
		max = 1
	}
	return max
}

func drawAxes(pdf *gofpdf.Fpdf, data ChartData, tr func(string) string) {
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.3)
	pdf.Line(plotLeft, plotTop, plotLeft, plotBottom)
	pdf.Line(plotLeft, plotBottom, plotRight, plotBottom)

	max := maxConsumption(data)
	pdf.SetFont("Arial", "", 7)
	pdf.SetDrawColor(200, 200, 200)
	for i := 1; i <= 4; i++ {
		frac := float64(i) / 4
		y := plotBottom - frac*(plotBottom-plotTop)
		pdf.Line(plotLeft, y, plotRight, y)
		pdf.Text(plotLeft-12, y+1, fmt.Sprintf("%.1f", frac*max))
	}
	pdf.Text(plotLeft-12, plotBottom+1, "0.0")

	records := data.Series.Records
	slot := (plotRight - plotLeft) / float64(len(records))
	step := 1
	for len(records)/step > 32 {
		step++
	}
	for i, rec := range records {
		if i%step != 0 {
			continue
		}
		label := data.PeriodLabel(rec)
		x := plotLeft + (float64(i)+0.5)*slot
		pdf.Text(x-float64(len(label))*0.6, plotBottom+4, tr(label))
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.Text((plotLeft+plotRight)/2-10, plotBottom+10, tr(data.XLabel()))
	pdf.TransformBegin()
	pdf.TransformRotate(90, 10, (plotTop+plotBottom)/2)
	pdf.Text(10, (plotTop+plotBottom)/2, tr("Net Consumption (kWh)"))
	pdf.TransformEnd()
}

func drawBars(pdf *gofpdf.Fpdf, data ChartData) {
	max := maxConsumption(data)
	records := data.Series.Records
	slot := (plotRight - plotLeft) / float64(len(records))
	barW := slot * barRatio

	pdf.SetFillColor(70, 130, 180)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.1)
	pdf.SetFont("Arial", "", 6)

	labelEvery := 1
	for len(records)/labelEvery > 40 {
		labelEvery++
	}

	for i, rec := range records {
		h := rec.KWh / max * (plotBottom - plotTop)
		x := plotLeft + float64(i)*slot + (slot-barW)/2
		if h > 0 {
			pdf.Rect(x, plotBottom-h, barW, h, "FD")
		}
		if i%labelEvery == 0 {
			label := fmt.Sprintf("%.1f", rec.KWh)
			pdf.Text(x+barW/2-float64(len(label))*0.55, plotBottom-h-1, label)
		}
	}
}

func drawTemperatureLine(pdf *gofpdf.Fpdf, data ChartData, tr func(string) string) {
	temps := data.Temperatures
	minC, maxC := temps[0].Celsius, temps[0].Celsius
	for _, t := range temps {
		if t.Celsius < minC {
			minC = t.Celsius
		}
		if t.Celsius > maxC {
			maxC = t.Celsius
		}
	}
	minC, maxC = minC-1, maxC+1

	slot := (plotRight - plotLeft) / float64(len(data.Series.Records))
	toXY := func(index int, c float64) (float64, float64) {
		x := plotLeft + (float64(index)+0.5)*slot
		y := plotBottom - (c-minC)/(maxC-minC)*(plotBottom-plotTop)
		return x, y
	}

	pdf.SetDrawColor(255, 69, 0)
	pdf.SetLineWidth(0.7)
	for i := 1; i < len(temps); i++ {
		x1, y1 := toXY(temps[i-1].Index, temps[i-1].Celsius)
		x2, y2 := toXY(temps[i].Index, temps[i].Celsius)
		pdf.Line(x1, y1, x2, y2)
	}

	pdf.SetFillColor(255, 69, 0)
	pdf.SetTextColor(200, 50, 0)
	pdf.SetFont("Arial", "", 6)
	for _, t := range temps {
		x, y := toXY(t.Index, t.Celsius)
		pdf.Circle(x, y, 0.8, "F")
		pdf.Text(x-3, y-2, tr(fmt.Sprintf("%.1f°C", t.Celsius)))
	}

	// Right-hand temperature scale.
	pdf.SetFont("Arial", "", 7)
	for i := 0; i <= 4; i++ {
		frac := float64(i) / 4
		y := plotBottom - frac*(plotBottom-plotTop)
		pdf.Text(plotRight+2, y+1, tr(fmt.Sprintf("%.1f", minC+frac*(maxC-minC))))
	}
	pdf.SetFont("Arial", "B", 9)
	pdf.TransformBegin()
	pdf.TransformRotate(-90, plotRight+16, (plotTop+plotBottom)/2)
	pdf.Text(plotRight+16, (plotTop+plotBottom)/2, tr("Temperature (°C)"))
	pdf.TransformEnd()
	pdf.SetTextColor(0, 0, 0)
}
