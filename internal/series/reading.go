package series

import (
	"fmt"
	"strings"
	"time"
)

// Meta is the location provenance attached once to a whole series. It is carried
// through every aggregation step unchanged and never used in computation.
type Meta struct {
	City    string
	Address string
}

// Reading is one input row: an interval-start timestamp and its net consumption.
type Reading struct {
	Raw      string
	Time     time.Time
	HasClock bool
	KWh      KWh
}

// Timestamp layouts accepted in consumption exports, clocked layouts first.
var clockedLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
}

var dateOnlyLayouts = []string{
	"2006-01-02",
	"2006/01/02",
}

// ParseTimestamp parses an interval-start timestamp. The second result reports
// whether the value carried a time-of-day component.
func ParseTimestamp(s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if hasClockComponent(s) {
		for _, layout := range clockedLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true, nil
			}
		}
		return time.Time{}, false, fmt.Errorf("unrecognized timestamp %q", s)
	}
	for _, layout := range dateOnlyLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, false, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("unrecognized timestamp %q", s)
}

// hasClockComponent reports whether the raw timestamp carries a date/time
// separator. The check is purely structural: a space or "T" between date and
// time marks a clocked value.
func hasClockComponent(s string) bool {
	return strings.Contains(s, " ") || strings.Contains(s, "T")
}

// NewReading builds a reading from raw CSV fields. row is the 1-based data row
// number, used to identify the offending record on failure.
func NewReading(row int, timestamp, consumption string) (Reading, error) {
	t, clocked, err := ParseTimestamp(timestamp)
	if err != nil {
		return Reading{}, &MalformedReadingError{Row: row, Field: "timestamp", Value: timestamp, Reason: err}
	}
	kwh, err := ParseKWh(strings.TrimSpace(consumption))
	if err != nil {
		return Reading{}, &MalformedReadingError{Row: row, Field: "consumption", Value: consumption, Reason: err}
	}
	return Reading{Raw: strings.TrimSpace(timestamp), Time: t, HasClock: clocked, KWh: kwh}, nil
}

// Date returns the reading's calendar date with the clock stripped.
func (r Reading) Date() time.Time {
	return time.Date(r.Time.Year(), r.Time.Month(), r.Time.Day(), 0, 0, 0, 0, time.UTC)
}
