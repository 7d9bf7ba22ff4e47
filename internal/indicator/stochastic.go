package indicator

import "math"

// Stochastic holds the latest %K and %D values of the stochastic oscillator.
type Stochastic struct {
	K *float64 `json:"k"`
	D *float64 `json:"d"`
}

// StochasticOscillator computes
// %K = 100 * (close - min(low, kPeriod)) / (max(high, kPeriod) - min(low, kPeriod))
// and %D = rolling mean of %K over dPeriod.
//
// A zero rolling range (flat market) makes %K undefined at that position —
// nil, not a fabricated value. %K needs kPeriod bars; %D needs dPeriod
// additional %K values.
func StochasticOscillator(high, low, close []float64, kPeriod, dPeriod int) Stochastic {
	if len(close) == 0 || len(high) != len(close) || len(low) != len(close) {
		return Stochastic{}
	}
	lowest := RollingMin(low, kPeriod)
	highest := RollingMax(high, kPeriod)

	k := make([]float64, len(close))
	for i := range k {
		rng := highest[i] - lowest[i]
		if math.IsNaN(rng) || rng == 0 {
			k[i] = math.NaN()
			continue
		}
		k[i] = 100.0 * (close[i] - lowest[i]) / rng
	}
	d := RollingMean(k, dPeriod)

	return Stochastic{
		K: finitePtr(lastValue(k)),
		D: finitePtr(lastValue(d)),
	}
}
