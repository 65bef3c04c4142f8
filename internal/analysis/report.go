package analysis

import (
	"fmt"
	"strings"
)

// Report renders the analysis as readable text.
func Report(r Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analyzing %d data points\n\n", r.N)
	fmt.Fprintf(&b, "Pearson Correlation Coefficient: %.4f\n", r.Pearson)
	fmt.Fprintf(&b, "R-squared: %.4f\n", r.R2)
	fmt.Fprintf(&b, "P-value: %.6f\n", r.PValue)
	fmt.Fprintf(&b, "Linear equation: Consumption = %.2f * Temperature + %.2f\n", r.Slope, r.Intercept)

	fmt.Fprintf(&b, "\nQuadratic fit: Consumption = %.4f*T^2 + %.4f*T + %.2f\n", r.QuadA, r.QuadB, r.QuadC)
	fmt.Fprintf(&b, "Optimal temperature (minimum consumption): %.1f°C\n", r.OptimalTempC)
	fmt.Fprintf(&b, "Minimum consumption at optimal temp: %.1f kWh\n", r.MinConsumptionKWh)
	fmt.Fprintf(&b, "Data range: %.1f°C to %.1f°C\n", r.TempMin, r.TempMax)

	b.WriteString("\nCONSUMPTION BY TEMPERATURE RANGE\n")
	fmt.Fprintf(&b, "%-10s %8s %10s %10s\n", "Range", "Count", "Mean kWh", "StdDev")
	for _, band := range r.Bands {
		fmt.Fprintf(&b, "%-10s %8d %10.2f %10.2f\n", band.Label, band.Count, band.Mean, band.StdDev)
	}

	b.WriteString("\nINTERPRETATION\n")
	fmt.Fprintf(&b, "The correlation coefficient of %.4f indicates a %s linear relationship.\n", r.Pearson, strength(r.Pearson))
	b.WriteString("The quadratic fit describes a U-shaped relationship:\n")
	fmt.Fprintf(&b, "- Below %.1f°C heating increases consumption\n", r.OptimalTempC)
	fmt.Fprintf(&b, "- Above %.1f°C cooling increases consumption\n", r.OptimalTempC)

	return b.String()
}

func strength(r float64) string {
	var degree string
	abs := r
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 0.7:
		degree = "strong"
	case abs >= 0.3:
		degree = "moderate"
	default:
		degree = "weak"
	}
	if r < 0 {
		return degree + " negative"
	}
	return degree + " positive"
}
