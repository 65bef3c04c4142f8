package analysis

import (
	"errors"
	"math"
)

// MinPoints is the smallest sample that supports a seasonal correlation read,
// roughly three months of daily data.
const MinPoints = 90

// ErrInsufficientData is returned when fewer than MinPoints aligned points are
// available.
var ErrInsufficientData = errors.New("analysis: insufficient data for correlation, need at least 90 daily points")

// Point is one aligned daily observation.
type Point struct {
	TemperatureC float64
	KWh          float64
}

// Band summarizes consumption within one temperature range.
type Band struct {
	Label  string
	Count  int
	Mean   float64
	StdDev float64
}

// Result holds the correlation analysis outputs: the linear relationship, the
// quadratic (U-shape) fit with its comfort-point vertex, and per-band stats.
type Result struct {
	N         int
	Pearson   float64
	Slope     float64
	Intercept float64
	R2        float64
	PValue    float64

	QuadA, QuadB, QuadC float64
	OptimalTempC        float64
	MinConsumptionKWh   float64

	TempMin, TempMax float64
	Bands            []Band
}

// Correlate runs the full temperature/consumption analysis.
func Correlate(points []Point) (Result, error) {
	n := len(points)
	if n < MinPoints {
		return Result{}, ErrInsufficientData
	}

	res := Result{N: n}
	res.Pearson, res.Slope, res.Intercept = linearFit(points)
	res.R2 = res.Pearson * res.Pearson
	res.PValue = pValue(res.Pearson, n)

	res.QuadA, res.QuadB, res.QuadC = quadraticFit(points)
	if res.QuadA != 0 {
		res.OptimalTempC = -res.QuadB / (2 * res.QuadA)
		res.MinConsumptionKWh = res.QuadA*res.OptimalTempC*res.OptimalTempC + res.QuadB*res.OptimalTempC + res.QuadC
	} else {
		res.OptimalTempC = math.NaN()
		res.MinConsumptionKWh = math.NaN()
	}

	res.TempMin, res.TempMax = tempRange(points)
	res.Bands = bandStats(points)
	return res, nil
}

// FittedKWh evaluates the quadratic fit at a temperature.
func (r Result) FittedKWh(tempC float64) float64 {
	return r.QuadA*tempC*tempC + r.QuadB*tempC + r.QuadC
}

func linearFit(points []Point) (pearson, slope, intercept float64) {
	n := float64(len(points))
	var sx, sy, sxx, syy, sxy float64
	for _, p := range points {
		sx += p.TemperatureC
		sy += p.KWh
		sxx += p.TemperatureC * p.TemperatureC
		syy += p.KWh * p.KWh
		sxy += p.TemperatureC * p.KWh
	}

	covXY := sxy - sx*sy/n
	varX := sxx - sx*sx/n
	varY := syy - sy*sy/n
	if varX == 0 || varY == 0 {
		return 0, 0, sy / n
	}

	pearson = covXY / math.Sqrt(varX*varY)
	slope = covXY / varX
	intercept = (sy - slope*sx) / n
	return pearson, slope, intercept
}

// pValue approximates the two-sided p of the correlation t statistic with a
// normal tail; adequate at the 90+ samples this analysis requires.
func pValue(r float64, n int) float64 {
	if r >= 1 || r <= -1 {
		return 0
	}
	t := r * math.Sqrt(float64(n-2)/(1-r*r))
	return math.Erfc(math.Abs(t) / math.Sqrt2)
}

// quadraticFit solves the degree-2 least-squares normal equations by Cramer's
// rule.
func quadraticFit(points []Point) (a, b, c float64) {
	var s0, s1, s2, s3, s4, t0, t1, t2 float64
	s0 = float64(len(points))
	for _, p := range points {
		x, y := p.TemperatureC, p.KWh
		x2 := x * x
		s1 += x
		s2 += x2
		s3 += x2 * x
		s4 += x2 * x2
		t0 += y
		t1 += x * y
		t2 += x2 * y
	}

	det := det3(s4, s3, s2, s3, s2, s1, s2, s1, s0)
	if math.Abs(det) < 1e-12 {
		return 0, 0, t0 / s0
	}
	a = det3(t2, s3, s2, t1, s2, s1, t0, s1, s0) / det
	b = det3(s4, t2, s2, s3, t1, s1, s2, t0, s0) / det
	c = det3(s4, s3, t2, s3, s2, t1, s2, s1, t0) / det
	return a, b, c
}

func det3(a, b, c, d, e, f, g, h, i float64) float64 {
	return a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
}

func tempRange(points []Point) (min, max float64) {
	min, max = points[0].TemperatureC, points[0].TemperatureC
	for _, p := range points {
		if p.TemperatureC < min {
			min = p.TemperatureC
		}
		if p.TemperatureC > max {
			max = p.TemperatureC
		}
	}
	return min, max
}

// Temperature band edges and labels, matching the reporting ranges users see.
var bandEdges = []struct {
	low, high float64
	label     string
}{
	{-10, 5, "<5°C"},
	{5, 10, "5-10°C"},
	{10, 15, "10-15°C"},
	{15, 20, "15-20°C"},
	{20, 25, "20-25°C"},
	{25, 30, ">25°C"},
}

func bandStats(points []Point) []Band {
	type acc struct {
		values []float64
	}
	accs := make([]acc, len(bandEdges))
	for _, p := range points {
		for i, edge := range bandEdges {
			if p.TemperatureC > edge.low && p.TemperatureC <= edge.high {
				accs[i].values = append(accs[i].values, p.KWh)
				break
			}
		}
	}

	var bands []Band
	for i, a := range accs {
		if len(a.values) == 0 {
			continue
		}
		mean := 0.0
		for _, v := range a.values {
			mean += v
		}
		mean /= float64(len(a.values))

		std := 0.0
		if len(a.values) > 1 {
			for _, v := range a.values {
				std += (v - mean) * (v - mean)
			}
			std = math.Sqrt(std / float64(len(a.values)-1))
		}
		bands = append(bands, Band{
			Label:  bandEdges[i].label,
			Count:  len(a.values),
			Mean:   mean,
			StdDev: std,
		})
	}
	return bands
}
