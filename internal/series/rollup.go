package series

import "time"

// The three rollups below each carry their own completeness rule:
// hourly→daily counts distinct hours on the date, hourly→weekly counts distinct
// dates in the week, daily→weekly counts day entries in the week. They are kept
// as separate functions so each rule's edge cases stay auditable on its own.

// RollupHourlyToDaily groups clocked readings by calendar date. A day is
// complete only when all 24 hours contributed at least one sample. Every date
// between the first and last, inclusive, gets a record.
func RollupHourlyToDaily(readings []Reading, meta Meta) (Series, error) {
	if len(readings) == 0 {
		return Series{}, ErrEmptyInput
	}

	type dayAcc struct {
		sum   KWh
		hours map[int]struct{}
		count int
	}
	days := make(map[time.Time]*dayAcc)
	var start, end time.Time
	for _, r := range readings {
		if !r.HasClock {
			return Series{}, ErrMixedGranularity
		}
		d := r.Date()
		acc := days[d]
		if acc == nil {
			acc = &dayAcc{hours: make(map[int]struct{}, hoursPerDay)}
			days[d] = acc
		}
		acc.sum = acc.sum.Add(r.KWh)
		acc.hours[r.Time.Hour()] = struct{}{}
		acc.count++
		if start.IsZero() || d.Before(start) {
			start = d
		}
		if d.After(end) {
			end = d
		}
	}

	span := daysBetween(start, end) + 1
	records := make([]PeriodRecord, span)
	for offset := 0; offset < span; offset++ {
		date := start.AddDate(0, 0, offset)
		dow := mondayIndex(date)
		rec := PeriodRecord{
			Index:     offset,
			Date:      date,
			DayOfWeek: dow,
			Weekend:   dow >= 5,
		}
		if acc := days[date]; acc != nil {
			rec.KWh = acc.sum.Float64()
			rec.Samples = acc.count
			rec.Complete = len(acc.hours) == hoursPerDay
		}
		records[offset] = rec
	}

	return Series{
		Granularity: GranularityDaily,
		Meta:        meta,
		StartDate:   start,
		EndDate:     end,
		Records:     records,
	}, nil
}

// RollupHourlyToWeekly groups clocked readings by Monday-anchored week start.
// A week is complete only when 7 distinct dates contributed, regardless of how
// many hours each date carried. Week indices are contiguous across the span,
// including weeks with no readings.
func RollupHourlyToWeekly(readings []Reading, meta Meta) (Series, error) {
	if len(readings) == 0 {
		return Series{}, ErrEmptyInput
	}

	type weekAcc struct {
		sum   KWh
		dates map[time.Time]struct{}
		count int
	}
	weeks := make(map[time.Time]*weekAcc)
	var start, end time.Time
	for _, r := range readings {
		if !r.HasClock {
			return Series{}, ErrMixedGranularity
		}
		d := r.Date()
		ws := WeekStart(d)
		acc := weeks[ws]
		if acc == nil {
			acc = &weekAcc{dates: make(map[time.Time]struct{}, daysPerWeek)}
			weeks[ws] = acc
		}
		acc.sum = acc.sum.Add(r.KWh)
		acc.dates[d] = struct{}{}
		acc.count++
		if start.IsZero() || d.Before(start) {
			start = d
		}
		if d.After(end) {
			end = d
		}
	}

	return weeklySeries(meta, start, end, func(ws time.Time, rec *PeriodRecord) {
		if acc := weeks[ws]; acc != nil {
			rec.KWh = acc.sum.Float64()
			rec.Samples = acc.count
			rec.Complete = len(acc.dates) == daysPerWeek
		}
	}), nil
}

// RollupDailyToWeekly groups a daily series by Monday-anchored week start. A
// week is complete only when it holds 7 day entries; zero-filled gap days in
// the daily series do not count as entries.
func RollupDailyToWeekly(daily Series) (Series, error) {
	if daily.Granularity != GranularityDaily {
		return Series{}, ErrMixedGranularity
	}
	if len(daily.Records) == 0 {
		return Series{}, ErrEmptyInput
	}

	type weekAcc struct {
		sum  float64
		days int
	}
	weeks := make(map[time.Time]*weekAcc)
	for _, rec := range daily.Records {
		if rec.Samples == 0 {
			continue
		}
		ws := WeekStart(rec.Date)
		acc := weeks[ws]
		if acc == nil {
			acc = &weekAcc{}
			weeks[ws] = acc
		}
		acc.sum += rec.KWh
		acc.days++
	}

	return weeklySeries(daily.Meta, daily.StartDate, daily.EndDate, func(ws time.Time, rec *PeriodRecord) {
		if acc := weeks[ws]; acc != nil {
			rec.KWh = acc.sum
			rec.Samples = acc.days
			rec.Complete = acc.days == daysPerWeek
		}
	}), nil
}

// weeklySeries lays out contiguous week records across [start, end] and lets
// the caller fill each bucket from its accumulator.
func weeklySeries(meta Meta, start, end time.Time, fill func(ws time.Time, rec *PeriodRecord)) Series {
	firstWeek := WeekStart(start)
	lastWeek := WeekStart(end)
	span := daysBetween(firstWeek, lastWeek)/daysPerWeek + 1

	records := make([]PeriodRecord, span)
	for i := 0; i < span; i++ {
		ws := firstWeek.AddDate(0, 0, i*daysPerWeek)
		rec := PeriodRecord{Index: i, Date: ws, DayOfWeek: -1}
		fill(ws, &rec)
		records[i] = rec
	}

	return Series{
		Granularity: GranularityWeekly,
		Meta:        meta,
		StartDate:   start,
		EndDate:     end,
		Records:     records,
	}
}
