package series

import "time"

const (
	hoursPerDay = 24
	daysPerWeek = 7
)

// PeriodRecord is one bucket of time at the series granularity.
//
// Index values within a series are contiguous from 0 with no gaps; buckets with
// no contributing readings still appear with zero consumption. Complete is true
// only when the bucket holds the full expected count of finer-grained samples,
// so truncated range boundaries are distinguishable from genuine full periods.
type PeriodRecord struct {
	Index     int
	Date      time.Time // zero for the hour-of-day profile
	KWh       float64
	Samples   int
	Complete  bool
	DayOfWeek int // Monday = 0; -1 where not meaningful
	Weekend   bool
	Overnight bool
}

// Series is a uniform-granularity sequence of period records plus the location
// provenance and the calendar span of the source data.
type Series struct {
	Granularity Granularity
	Meta        Meta
	StartDate   time.Time
	EndDate     time.Time
	Records     []PeriodRecord
}

// Total sums consumption over all records.
func (s Series) Total() float64 {
	var total float64
	for _, r := range s.Records {
		total += r.KWh
	}
	return total
}

// CompleteCount returns how many records hold a full period.
func (s Series) CompleteCount() int {
	n := 0
	for _, r := range s.Records {
		if r.Complete {
			n++
		}
	}
	return n
}

// mondayIndex maps time.Weekday (Sunday = 0) onto a Monday = 0 week.
func mondayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeekStart returns the Monday of the date's week: date minus its Monday-based
// day-of-week. Consumption rollups and temperature alignment must bucket weeks
// with this same rule.
func WeekStart(t time.Time) time.Time {
	d := truncateToDay(t)
	return d.AddDate(0, 0, -mondayIndex(d))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts whole days from a to b, both taken at midnight.
func daysBetween(a, b time.Time) int {
	return int(truncateToDay(b).Sub(truncateToDay(a)).Hours() / 24)
}
