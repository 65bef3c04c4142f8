package weather

import (
	"time"

	"wattchart/internal/series"
)

// TemperatureRecord pairs a temperature with a consumption period index. The
// index always refers to an existing record in the paired series; alignment may
// produce fewer indices than the series (missing coverage) but never more.
type TemperatureRecord struct {
	Index   int
	Celsius float64
}

// AlignHourly maps archive hour-of-day temperatures onto an hourly profile by
// identical hour index. Hours beyond the profile's range are dropped.
func AlignHourly(temps map[int]float64, s series.Series) []TemperatureRecord {
	records := make([]TemperatureRecord, 0, len(s.Records))
	for _, rec := range s.Records {
		if c, ok := temps[rec.Index]; ok {
			records = append(records, TemperatureRecord{Index: rec.Index, Celsius: c})
		}
	}
	return records
}

// AlignDaily maps daily mean samples onto a day-offset series using the same
// indexing rule as daily normalization: the series start date is index 0.
func AlignDaily(samples []DailySample, s series.Series) []TemperatureRecord {
	records := make([]TemperatureRecord, 0, len(samples))
	for _, sample := range samples {
		idx := dayOffset(s.StartDate, sample.Date)
		if idx < 0 || idx >= len(s.Records) {
			continue
		}
		records = append(records, TemperatureRecord{Index: idx, Celsius: sample.Celsius})
	}
	return records
}

// AlignWeekly buckets daily mean samples by the same Monday-anchored week-start
// rule the consumption rollups use and averages each bucket, so the temperature
// index set can only be a subset of the consumption week indices.
func AlignWeekly(samples []DailySample, s series.Series) []TemperatureRecord {
	firstWeek := series.WeekStart(s.StartDate)
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, sample := range samples {
		idx := dayOffset(firstWeek, series.WeekStart(sample.Date)) / 7
		if idx < 0 || idx >= len(s.Records) {
			continue
		}
		sums[idx] += sample.Celsius
		counts[idx]++
	}

	records := make([]TemperatureRecord, 0, len(sums))
	for _, rec := range s.Records {
		if n := counts[rec.Index]; n > 0 {
			records = append(records, TemperatureRecord{Index: rec.Index, Celsius: sums[rec.Index] / float64(n)})
		}
	}
	return records
}

func dayOffset(start, d time.Time) int {
	return int(d.Sub(start).Hours() / 24)
}
