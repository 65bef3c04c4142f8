package render

import (
	"fmt"
	"strconv"

	"wattchart/internal/series"
	"wattchart/internal/weather"
)

const dateLayout = "2006-01-02"

// ChartData is everything a renderer needs for one artifact: the final period
// series, the optional aligned temperature overlay, and nothing else. Renderers
// are pure consumers; nothing feeds back into the pipeline.
type ChartData struct {
	Series       series.Series
	Temperatures []weather.TemperatureRecord
}

// HasTemperatures reports whether the overlay is present.
func (d ChartData) HasTemperatures() bool { return len(d.Temperatures) > 0 }

// TemperatureByIndex returns the overlay keyed by period index.
func (d ChartData) TemperatureByIndex() map[int]float64 {
	m := make(map[int]float64, len(d.Temperatures))
	for _, t := range d.Temperatures {
		m[t.Index] = t.Celsius
	}
	return m
}

// Title is the headline for the artifact.
func (d ChartData) Title() string {
	return fmt.Sprintf("%s Electricity Consumption and Temperature", granularityLabel(d.Series.Granularity))
}

// Subtitle carries the location and the date range.
func (d ChartData) Subtitle() string {
	return fmt.Sprintf("%s, %s - %s", d.Series.Meta.Address, d.Series.Meta.City, d.DateRange())
}

// DateRange formats the calendar span of the source data.
func (d ChartData) DateRange() string {
	start := d.Series.StartDate.Format(dateLayout)
	end := d.Series.EndDate.Format(dateLayout)
	if start == end {
		return start
	}
	return start + " to " + end
}

// XLabel names the period axis.
func (d ChartData) XLabel() string {
	switch d.Series.Granularity {
	case series.GranularityHourly:
		return "Hour of Day"
	case series.GranularityDaily:
		return "Day"
	case series.GranularityWeekly:
		return "Week Starting"
	default:
		return "Period"
	}
}

// PeriodLabel renders one record's category label: the hour number for the
// hourly profile, the calendar date otherwise.
func (d ChartData) PeriodLabel(rec series.PeriodRecord) string {
	if d.Series.Granularity == series.GranularityHourly {
		return strconv.Itoa(rec.Index)
	}
	return rec.Date.Format(dateLayout)
}

func granularityLabel(g series.Granularity) string {
	switch g {
	case series.GranularityHourly:
		return "Hourly"
	case series.GranularityDaily:
		return "Daily"
	case series.GranularityWeekly:
		return "Weekly"
	default:
		return string(g)
	}
}
