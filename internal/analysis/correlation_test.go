package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelateRejectsSmallSamples(t *testing.T) {
	points := make([]Point, MinPoints-1)
	for i := range points {
		points[i] = Point{TemperatureC: float64(i % 20), KWh: 10}
	}
	_, err := Correlate(points)
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestCorrelatePerfectLinear(t *testing.T) {
	// kWh = -0.5*T + 30, exactly.
	points := make([]Point, 100)
	for i := range points {
		temp := -5.0 + float64(i)*0.3
		points[i] = Point{TemperatureC: temp, KWh: -0.5*temp + 30}
	}

	res, err := Correlate(points)
	require.NoError(t, err)

	assert.InDelta(t, -1.0, res.Pearson, 1e-9)
	assert.InDelta(t, -0.5, res.Slope, 1e-9)
	assert.InDelta(t, 30.0, res.Intercept, 1e-9)
	assert.InDelta(t, 1.0, res.R2, 1e-9)
	assert.InDelta(t, 0.0, res.PValue, 1e-9)
	assert.Equal(t, 100, res.N)
}

func TestCorrelateQuadraticVertex(t *testing.T) {
	// kWh = 0.1*(T-18)^2 + 12: comfort point at 18°C, 12 kWh floor.
	points := make([]Point, 120)
	for i := range points {
		temp := -2.0 + float64(i)*0.25
		dev := temp - 18.0
		points[i] = Point{TemperatureC: temp, KWh: 0.1*dev*dev + 12}
	}

	res, err := Correlate(points)
	require.NoError(t, err)

	assert.InDelta(t, 18.0, res.OptimalTempC, 1e-6)
	assert.InDelta(t, 12.0, res.MinConsumptionKWh, 1e-6)
	assert.InDelta(t, 0.1, res.QuadA, 1e-6)
	assert.InDelta(t, -2.0, res.TempMin, 1e-9)
	assert.InDelta(t, 27.75, res.TempMax, 1e-9)
}

func TestCorrelateConstantTemperature(t *testing.T) {
	points := make([]Point, MinPoints)
	for i := range points {
		points[i] = Point{TemperatureC: 15, KWh: float64(10 + i%5)}
	}

	res, err := Correlate(points)
	require.NoError(t, err)
	assert.Zero(t, res.Pearson)
	assert.Zero(t, res.Slope)
}

func TestBandStats(t *testing.T) {
	var points []Point
	add := func(temp float64, kwhs ...float64) {
		for _, k := range kwhs {
			points = append(points, Point{TemperatureC: temp, KWh: k})
		}
	}
	add(2, 40, 42, 44)  // <5°C
	add(12, 20, 22)     // 10-15°C
	add(10, 25)         // boundary: 10 belongs to 5-10°C
	add(28, 30, 32, 34) // >25°C

	bands := bandStats(points)
	require.Len(t, bands, 4)

	cold := bands[0]
	assert.Equal(t, "<5°C", cold.Label)
	assert.Equal(t, 3, cold.Count)
	assert.InDelta(t, 42.0, cold.Mean, 1e-9)
	assert.InDelta(t, 2.0, cold.StdDev, 1e-9)

	assert.Equal(t, "5-10°C", bands[1].Label)
	assert.Equal(t, 1, bands[1].Count)
	assert.Zero(t, bands[1].StdDev)

	assert.Equal(t, "10-15°C", bands[2].Label)
	assert.Equal(t, 2, bands[2].Count)

	assert.Equal(t, ">25°C", bands[3].Label)
	assert.Equal(t, 3, bands[3].Count)
}

func TestFittedKWh(t *testing.T) {
	r := Result{QuadA: 0.1, QuadB: -3.6, QuadC: 44.4}
	assert.InDelta(t, 0.1*400-3.6*20+44.4, r.FittedKWh(20), 1e-9)
}

func TestStrength(t *testing.T) {
	cases := []struct {
		r    float64
		want string
	}{
		{0.85, "strong positive"},
		{-0.75, "strong negative"},
		{0.5, "moderate positive"},
		{-0.31, "moderate negative"},
		{0.1, "weak positive"},
		{-0.05, "weak negative"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, strength(c.r), "r=%v", c.r)
	}
}

func TestReportContents(t *testing.T) {
	points := make([]Point, 100)
	for i := range points {
		temp := -5.0 + float64(i)*0.3
		points[i] = Point{TemperatureC: temp, KWh: -0.5*temp + 30}
	}
	res, err := Correlate(points)
	require.NoError(t, err)

	text := Report(res)
	assert.Contains(t, text, "Analyzing 100 data points")
	assert.Contains(t, text, "Pearson Correlation Coefficient: -1.0000")
	assert.Contains(t, text, "CONSUMPTION BY TEMPERATURE RANGE")
	assert.Contains(t, text, "strong negative")
	assert.True(t, strings.Contains(text, "INTERPRETATION"))
}

func TestPValueShrinksWithStrongerCorrelation(t *testing.T) {
	weak := pValue(0.1, 100)
	strong := pValue(0.8, 100)
	assert.Less(t, strong, weak)
	assert.Equal(t, 0.0, pValue(1.0, 100))
	assert.False(t, math.IsNaN(weak))
}
