package series

// Granularity is the time resolution of a period series.
type Granularity string

const (
	GranularityHourly Granularity = "hourly"
	GranularityDaily  Granularity = "daily"
	GranularityWeekly Granularity = "weekly"
)

// IsValid checks if the granularity is one of the supported values.
func (g Granularity) IsValid() bool {
	switch g {
	case GranularityHourly, GranularityDaily, GranularityWeekly:
		return true
	default:
		return false
	}
}

// DetectGranularity classifies readings as hourly or daily from the shape of
// their raw timestamps: any value with a time-of-day separator makes the whole
// input hourly. The decision never looks at consumption values.
func DetectGranularity(readings []Reading) (Granularity, error) {
	if len(readings) == 0 {
		return "", ErrEmptyInput
	}
	for _, r := range readings {
		if hasClockComponent(r.Raw) {
			return GranularityHourly, nil
		}
	}
	return GranularityDaily, nil
}
