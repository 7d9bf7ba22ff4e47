package indicator

import "math"

// Rolling primitives over float64 series. Undefined positions are NaN:
// the first window-1 slots of any rolling statistic, and every slot whose
// window covers a NaN input. NaN is internal only; finitePtr converts to
// the nil pointers the report exposes.

// nanSlice returns a length-n slice filled with NaN.
func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// RollingMean computes the simple moving average over the window, aligned
// to the window's last element. NaN inputs poison every covering position.
func RollingMean(xs []float64, window int) []float64 {
	out := nanSlice(len(xs))
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(xs); i++ {
		sum := 0.0
		for j := i - window + 1; j <= i; j++ {
			sum += xs[j]
		}
		out[i] = sum / float64(window)
	}
	return out
}

// RollingStd computes the rolling sample standard deviation (N-1
// denominator) over the window. A window below 2 has no sample variance.
func RollingStd(xs []float64, window int) []float64 {
	out := nanSlice(len(xs))
	if window < 2 {
		return out
	}
	means := RollingMean(xs, window)
	for i := window - 1; i < len(xs); i++ {
		if math.IsNaN(means[i]) {
			continue
		}
		ss := 0.0
		for j := i - window + 1; j <= i; j++ {
			d := xs[j] - means[i]
			ss += d * d
		}
		out[i] = math.Sqrt(ss / float64(window-1))
	}
	return out
}

// RollingMax computes the rolling maximum over the window.
func RollingMax(xs []float64, window int) []float64 {
	out := nanSlice(len(xs))
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(xs); i++ {
		m := xs[i-window+1]
		for j := i - window + 2; j <= i; j++ {
			m = math.Max(m, xs[j]) // NaN wins
		}
		out[i] = m
	}
	return out
}

// RollingMin computes the rolling minimum over the window.
func RollingMin(xs []float64, window int) []float64 {
	out := nanSlice(len(xs))
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(xs); i++ {
		m := xs[i-window+1]
		for j := i - window + 2; j <= i; j++ {
			m = math.Min(m, xs[j])
		}
		out[i] = m
	}
	return out
}

// EMASeries computes the exponential moving average with alpha = 2/(span+1),
// seeded with the first value. Defined from the first element on; an empty
// input yields an empty output.
func EMASeries(xs []float64, span int) []float64 {
	if len(xs) == 0 {
		return nil
	}
	alpha := 2.0 / (float64(span) + 1.0)
	out := make([]float64, len(xs))
	out[0] = xs[0]
	for i := 1; i < len(xs); i++ {
		out[i] = alpha*xs[i] + (1.0-alpha)*out[i-1]
	}
	return out
}

// Diff returns the per-element first difference. The first slot has no
// predecessor and is NaN.
func Diff(xs []float64) []float64 {
	out := nanSlice(len(xs))
	for i := 1; i < len(xs); i++ {
		out[i] = xs[i] - xs[i-1]
	}
	return out
}

// lastValue returns the final element, NaN for an empty series.
func lastValue(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return xs[len(xs)-1]
}

// finitePtr maps a finite value to a pointer and NaN/Inf to nil. This is
// the single crossing point from internal NaN arithmetic to the optional
// fields the report serializes as JSON null.
func finitePtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func strPtr(s string) *string { return &s }
