package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// WriteText writes the aligned data as tab-separated values: one row per
// period, temperature column left blank where the overlay has no coverage.
func WriteText(w io.Writer, data ChartData) error {
	bw := bufio.NewWriter(w)
	temps := data.TemperatureByIndex()

	if _, err := fmt.Fprintln(bw, "Period\tDate\tNet Consumption (kWh)\tTemperature (°C)"); err != nil {
		return err
	}
	for _, rec := range data.Series.Records {
		date := ""
		if !rec.Date.IsZero() {
			date = rec.Date.Format(dateLayout)
		}
		temp := ""
		if c, ok := temps[rec.Index]; ok {
			temp = strconv.FormatFloat(c, 'f', 1, 64)
		}
		if _, err := fmt.Fprintf(bw, "%d\t%s\t%s\t%s\n", rec.Index, date, strconv.FormatFloat(rec.KWh, 'f', 2, 64), temp); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteTextFile writes the TSV export to path.
func WriteTextFile(path string, data ChartData) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create text export: %w", err)
	}
	if err := WriteText(f, data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
