package indicator

// RSI signal thresholds.
const (
	rsiOversold   = 30.0
	rsiOverbought = 70.0
)

// RSI computes the latest Relative Strength Index over close prices:
// per-bar deltas split into gain/loss series, simple rolling means of each,
// RS = meanGain/meanLoss, RSI = 100 - 100/(1+RS).
//
// Returns nil when the series has fewer than period+1 bars, or when the
// rolling mean loss is exactly zero (all recent deltas non-negative) — the
// conventional RSI=100 is deliberately not fabricated.
func RSI(close []float64, period int) *float64 {
	if len(close) < period+1 {
		return nil
	}
	delta := Diff(close)
	gains := make([]float64, len(delta))
	losses := make([]float64, len(delta))
	for i, d := range delta {
		gains[i] = d  // NaN at index 0 passes through
		losses[i] = d
		if d > 0 {
			losses[i] = 0
		} else if d <= 0 {
			gains[i] = 0
			losses[i] = -d
		}
	}
	meanGain := lastValue(RollingMean(gains, period))
	meanLoss := lastValue(RollingMean(losses, period))
	if meanLoss == 0 {
		return nil
	}
	rs := meanGain / meanLoss
	return finitePtr(100.0 - 100.0/(1.0+rs))
}

// RSISignal labels an RSI value: oversold below 30, overbought above 70,
// neutral between. A nil value yields a nil signal.
func RSISignal(v *float64) *string {
	if v == nil {
		return nil
	}
	switch {
	case *v < rsiOversold:
		return strPtr("oversold")
	case *v > rsiOverbought:
		return strPtr("overbought")
	default:
		return strPtr("neutral")
	}
}
