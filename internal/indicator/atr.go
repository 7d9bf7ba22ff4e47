package indicator

import "math"

// ATR computes the latest Average True Range: the rolling mean over period of
// the per-bar true range max(high-low, |high-prevClose|, |low-prevClose|).
//
// The first bar has no previous close, so its true range is undefined; ATR
// therefore needs period+1 bars before it reports a value.
func ATR(high, low, close []float64, period int) *float64 {
	n := len(close)
	if n == 0 || len(high) != n || len(low) != n {
		return nil
	}
	tr := nanSlice(n)
	for i := 1; i < n; i++ {
		hl := high[i] - low[i]
		hc := math.Abs(high[i] - close[i-1])
		lc := math.Abs(low[i] - close[i-1])
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}
	return finitePtr(lastValue(RollingMean(tr, period)))
}
