package series

import "time"

// overnightLastHour is the last hour-of-day still counted as overnight load.
const overnightLastHour = 6

// NormalizeHourly folds clocked readings into an hour-of-day consumption
// profile: index = hour (0 up to the latest hour present), consumption summed
// per hour across every date in the range. Hours with no samples still appear
// with zero consumption and are flagged incomplete.
func NormalizeHourly(readings []Reading, meta Meta) (Series, error) {
	if len(readings) == 0 {
		return Series{}, ErrEmptyInput
	}

	sums := make(map[int]KWh, hoursPerDay)
	counts := make(map[int]int, hoursPerDay)
	maxHour := 0
	var start, end time.Time
	for _, r := range readings {
		if !r.HasClock {
			return Series{}, ErrMixedGranularity
		}
		hour := r.Time.Hour()
		sums[hour] = sums[hour].Add(r.KWh)
		counts[hour]++
		if hour > maxHour {
			maxHour = hour
		}
		d := r.Date()
		if start.IsZero() || d.Before(start) {
			start = d
		}
		if d.After(end) {
			end = d
		}
	}

	records := make([]PeriodRecord, maxHour+1)
	for hour := 0; hour <= maxHour; hour++ {
		records[hour] = PeriodRecord{
			Index:     hour,
			KWh:       sums[hour].Float64(),
			Samples:   counts[hour],
			Complete:  counts[hour] > 0,
			DayOfWeek: -1,
			Overnight: hour <= overnightLastHour,
		}
	}

	return Series{
		Granularity: GranularityHourly,
		Meta:        meta,
		StartDate:   start,
		EndDate:     end,
		Records:     records,
	}, nil
}

// NormalizeDaily turns date-only readings into a day-offset series: index 0 is
// the earliest date present and every calendar day through the latest date gets
// a record even when no reading covers it. A directly ingested day is a complete
// day by definition; gap days are incomplete.
func NormalizeDaily(readings []Reading, meta Meta) (Series, error) {
	if len(readings) == 0 {
		return Series{}, ErrEmptyInput
	}

	sums := make(map[int]KWh)
	counts := make(map[int]int)
	var start, end time.Time
	for _, r := range readings {
		d := r.Date()
		if start.IsZero() || d.Before(start) {
			start = d
		}
		if d.After(end) {
			end = d
		}
	}
	for _, r := range readings {
		offset := daysBetween(start, r.Date())
		sums[offset] = sums[offset].Add(r.KWh)
		counts[offset]++
	}

	span := daysBetween(start, end) + 1
	records := make([]PeriodRecord, span)
	for offset := 0; offset < span; offset++ {
		date := start.AddDate(0, 0, offset)
		dow := mondayIndex(date)
		records[offset] = PeriodRecord{
			Index:     offset,
			Date:      date,
			KWh:       sums[offset].Float64(),
			Samples:   counts[offset],
			Complete:  counts[offset] > 0,
			DayOfWeek: dow,
			Weekend:   dow >= 5,
		}
	}

	return Series{
		Granularity: GranularityDaily,
		Meta:        meta,
		StartDate:   start,
		EndDate:     end,
		Records:     records,
	}, nil
}
