package series

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when there are no readings to classify or process.
	ErrEmptyInput = errors.New("series: no readings in input")
	// ErrMixedGranularity is returned when a rollup receives readings that do not
	// match the granularity it expects.
	ErrMixedGranularity = errors.New("series: readings do not match expected granularity")
	// ErrNegativeConsumption is returned when a reading carries a negative kWh value.
	ErrNegativeConsumption = errors.New("series: negative consumption value")
)

// MalformedReadingError identifies an input row that could not be turned into a
// valid reading. Row is 1-based and counts data rows, not the header.
type MalformedReadingError struct {
	Row    int
	Field  string
	Value  string
	Reason error
}

func (e *MalformedReadingError) Error() string {
	return fmt.Sprintf("series: malformed reading at row %d: %s %q: %v", e.Row, e.Field, e.Value, e.Reason)
}

func (e *MalformedReadingError) Unwrap() error { return e.Reason }
