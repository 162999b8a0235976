// Package trend computes percentage change and one-step-ahead projections
// over yearly metric series.
package trend

// Point is one (year, value) observation. Series are expected ordered by
// year ascending; years need not be contiguous.
type Point struct {
	Year  int
	Value float64
}

// PercentChange returns the change from the first to the last value as a
// percentage of the first. Series with fewer than two points, or a zero
// first value, yield 0.
func PercentChange(series []Point) float64 {
	if len(series) < 2 {
		return 0.0
	}
	first := series[0].Value
	last := series[len(series)-1].Value
	if first == 0 {
		return 0.0
	}
	return (last - first) / first * 100
}

// ProjectNext linearly extrapolates one year past the end of the series:
// total change over the full span divided by elapsed years, added to the
// last value. Fewer than two points return the last value (0 when empty).
func ProjectNext(series []Point) float64 {
	if len(series) == 0 {
		return 0.0
	}
	if len(series) < 2 {
		return series[len(series)-1].Value
	}

	first := series[0]
	last := series[len(series)-1]
	span := last.Year - first.Year
	if span == 0 {
		return last.Value
	}

	annualChange := (last.Value - first.Value) / float64(span)
	return last.Value + annualChange
}
