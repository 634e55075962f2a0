package uihelpers

import (
	"math"
	"strconv"
)

// DefaultChartHeight is the fixed chart height in pixels.
const DefaultChartHeight = 384

// ComputeChartDimensions clamps the chart width to a readable minimum and uses
// a fixed height (DefaultChartHeight when fixedH <= 0).
func ComputeChartDimensions(rawW, fixedH int) (int, int) {
	w := rawW
	if w < 640 {
		w = 640
	}
	h := fixedH
	if h <= 0 {
		h = DefaultChartHeight
	}
	if h < 200 {
		h = 200
	}
	return w, h
}

// BuildYearTicks returns integer year ticks between first and last inclusive,
// using a 1,2,5,10... step so that at most maxTicks labels are produced.
// The last year is always included.
func BuildYearTicks(first, last, maxTicks int) []int {
	if last < first {
		first, last = last, first
	}
	if maxTicks < 2 {
		maxTicks = 2
	}
	span := last - first
	step := 1
	for _, s := range []int{1, 2, 5, 10, 20, 25, 50, 100} {
		step = s
		if span/s+1 <= maxTicks {
			break
		}
	}
	var out []int
	for y := first; y <= last; y += step {
		out = append(out, y)
	}
	if out[len(out)-1] != last {
		if last-out[len(out)-1] <= step/2 && len(out) > 1 {
			out[len(out)-1] = last
		} else {
			out = append(out, last)
		}
	}
	return out
}

// round6 rounds to 6 decimal places to stabilize test comparisons / labels prep.
func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }

// BuildNumericTicks generates up to n tick marks spanning [min,max] using a 1,2,2.5,5 pattern.
// Returns slice of raw numeric positions (label formatting left to caller).
func BuildNumericTicks(min, max float64, n int) []float64 {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Ceil(span/step) + 1
		diff := math.Abs(count - float64(n))
		if diff < bestScore {
			bestScore = diff
			bestStep = step
		}
	}
	start := math.Floor(min/bestStep) * bestStep
	end := math.Ceil(max/bestStep) * bestStep
	var out []float64
	for v := start; v <= end+bestStep*0.5; v += bestStep {
		out = append(out, round6(v))
	}
	if len(out) < 2 {
		out = []float64{min, max}
	}
	return out
}

// NiceMax rounds max up to a readable axis bound with ~5% headroom.
func NiceMax(max float64) float64 {
	if math.IsNaN(max) || max <= 0 {
		return 1
	}
	padded := max * 1.05
	mag := math.Pow(10, math.Floor(math.Log10(padded)))
	for _, c := range []float64{1, 1.5, 2, 2.5, 3, 4, 5, 6, 8, 10} {
		if c*mag >= padded {
			return round6(c * mag)
		}
	}
	return round6(10 * mag)
}

// FormatNumericTick provides a compact axis label.
func FormatNumericTick(v float64) string {
	av := math.Abs(v)
	switch {
	case av == 0:
		return "0"
	case av >= 100:
		return strconv.FormatInt(int64(math.Round(v)), 10)
	case av >= 10:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', 1, 64)
	case av >= 1:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', 1, 64)
	default:
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
}
