package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"wattchart/internal/series"
	"wattchart/internal/weather"
)

// Mode selects the requested aggregation for a run.
type Mode string

const (
	ModeNone   Mode = "none"
	ModeDaily  Mode = "daily"
	ModeWeekly Mode = "weekly"
)

// ErrUnsupportedAggregation is returned when the requested aggregation is not
// strictly coarser than the detected source granularity.
var ErrUnsupportedAggregation = errors.New("pipeline: requested aggregation is not coarser than source granularity")

// TemperatureSource fetches raw temperature series for a date span. Implemented
// by the weather archive client.
type TemperatureSource interface {
	HourlyTemperatures(ctx context.Context, date time.Time) (map[int]float64, error)
	DailyMeanTemperatures(ctx context.Context, start, end time.Time) ([]weather.DailySample, error)
}

// Summary reports how many periods a run produced and how many were full.
type Summary struct {
	Periods  int
	Complete int
}

// Result is the outcome of one pipeline run. Temperatures is nil when the
// weather fetch failed; WeatherErr then carries the cause as a warning, never a
// fatal error.
type Result struct {
	Series       series.Series
	Temperatures []weather.TemperatureRecord
	Summary      Summary
	WeatherErr   error
}

// Degraded reports whether the run completed without temperature data.
func (r Result) Degraded() bool { return r.WeatherErr != nil }

// Pipeline normalizes readings, applies the requested rollup, and aligns a
// temperature series onto the resulting period index. One run owns its records;
// nothing is shared across runs.
type Pipeline struct {
	temps  TemperatureSource
	logger *zap.Logger
}

// New constructs a pipeline. A nil temperature source disables the overlay.
func New(temps TemperatureSource, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{temps: temps, logger: logger}
}

// Run executes the full flow for one file's readings: detect granularity,
// normalize, roll up per the requested mode, and align temperatures. Parsing
// and aggregation errors abort the run; a weather failure degrades it.
func (p *Pipeline) Run(ctx context.Context, readings []series.Reading, meta series.Meta, mode Mode) (Result, error) {
	source, err := series.DetectGranularity(readings)
	if err != nil {
		return Result{}, err
	}
	if err := validateMode(source, mode); err != nil {
		return Result{}, err
	}

	s, err := buildSeries(readings, meta, source, mode)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Series:  s,
		Summary: Summary{Periods: len(s.Records), Complete: s.CompleteCount()},
	}

	if p.temps != nil {
		temps, err := p.alignTemperatures(ctx, s)
		if err != nil {
			p.logger.Warn("weather fetch failed, rendering consumption only", zap.Error(err))
			result.WeatherErr = err
		} else {
			result.Temperatures = temps
		}
	}

	return result, nil
}

func validateMode(source series.Granularity, mode Mode) error {
	switch mode {
	case ModeNone:
		return nil
	case ModeDaily:
		if source != series.GranularityHourly {
			return fmt.Errorf("%w: %s data cannot be aggregated to daily", ErrUnsupportedAggregation, source)
		}
		return nil
	case ModeWeekly:
		return nil
	default:
		return fmt.Errorf("pipeline: unknown aggregation mode %q", mode)
	}
}

func buildSeries(readings []series.Reading, meta series.Meta, source series.Granularity, mode Mode) (series.Series, error) {
	switch source {
	case series.GranularityHourly:
		switch mode {
		case ModeNone:
			return series.NormalizeHourly(readings, meta)
		case ModeDaily:
			return series.RollupHourlyToDaily(readings, meta)
		case ModeWeekly:
			return series.RollupHourlyToWeekly(readings, meta)
		}
	case series.GranularityDaily:
		switch mode {
		case ModeNone:
			return series.NormalizeDaily(readings, meta)
		case ModeWeekly:
			daily, err := series.NormalizeDaily(readings, meta)
			if err != nil {
				return series.Series{}, err
			}
			return series.RollupDailyToWeekly(daily)
		}
	}
	return series.Series{}, fmt.Errorf("pipeline: no transform from %s source with mode %s", source, mode)
}

// alignTemperatures fetches weather at the source granularity and reduces it
// onto the series index: hourly weather for an hourly profile, daily means for
// everything else, averaged per week when the series is weekly.
func (p *Pipeline) alignTemperatures(ctx context.Context, s series.Series) ([]weather.TemperatureRecord, error) {
	switch s.Granularity {
	case series.GranularityHourly:
		temps, err := p.temps.HourlyTemperatures(ctx, s.StartDate)
		if err != nil {
			return nil, err
		}
		return weather.AlignHourly(temps, s), nil
	case series.GranularityDaily:
		samples, err := p.temps.DailyMeanTemperatures(ctx, s.StartDate, s.EndDate)
		if err != nil {
			return nil, err
		}
		return weather.AlignDaily(samples, s), nil
	case series.GranularityWeekly:
		samples, err := p.temps.DailyMeanTemperatures(ctx, s.StartDate, s.EndDate)
		if err != nil {
			return nil, err
		}
		return weather.AlignWeekly(samples, s), nil
	default:
		return nil, fmt.Errorf("pipeline: no temperature alignment for %s", s.Granularity)
	}
}
