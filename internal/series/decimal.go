package series

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// KWh is an exact decimal energy quantity. CSV exports carry decimal strings, and
// summing them as binary floats drifts over long ranges; float64 is produced only
// at the presentation boundary.
type KWh struct {
	value apd.Decimal
}

// ParseKWh parses a non-negative decimal consumption value.
func ParseKWh(s string) (KWh, error) {
	var d apd.Decimal
	if _, _, err := d.SetString(s); err != nil {
		return KWh{}, fmt.Errorf("invalid consumption: %w", err)
	}
	if d.Negative {
		return KWh{}, ErrNegativeConsumption
	}
	return KWh{value: d}, nil
}

// MustKWh parses a consumption value and panics on failure. Test helper.
func MustKWh(s string) KWh {
	k, err := ParseKWh(s)
	if err != nil {
		panic(err)
	}
	return k
}

// Add returns the sum of k and other.
func (k KWh) Add(other KWh) KWh {
	var result apd.Decimal
	ctx := apd.BaseContext.WithPrecision(34)
	ctx.Add(&result, &k.value, &other.value)
	return KWh{value: result}
}

// Float64 returns the value for presentation.
func (k KWh) Float64() float64 {
	f, err := k.value.Float64()
	if err != nil {
		return 0
	}
	return f
}

// String returns the decimal representation.
func (k KWh) String() string { return k.value.String() }
