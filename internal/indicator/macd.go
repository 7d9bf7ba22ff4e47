package indicator

// MACDResult holds the latest MACD line, signal line, and histogram.
// All three are nil together only when the close series is empty.
type MACDResult struct {
	MACD      *float64 `json:"macd"`
	Signal    *float64 `json:"signal"`
	Histogram *float64 `json:"histogram"`
}

// MACD computes Moving Average Convergence Divergence:
// macd = EMA(close, fast) - EMA(close, slow), signal = EMA(macd, signalSpan),
// histogram = macd - signal. Since EMA is defined from the first bar, the
// result is defined for any non-empty series.
func MACD(close []float64, fast, slow, signalSpan int) MACDResult {
	if len(close) == 0 {
		return MACDResult{}
	}
	fastEMA := EMASeries(close, fast)
	slowEMA := EMASeries(close, slow)
	macdLine := make([]float64, len(close))
	for i := range macdLine {
		macdLine[i] = fastEMA[i] - slowEMA[i]
	}
	signalLine := EMASeries(macdLine, signalSpan)

	m := lastValue(macdLine)
	s := lastValue(signalLine)
	return MACDResult{
		MACD:      finitePtr(m),
		Signal:    finitePtr(s),
		Histogram: finitePtr(m - s),
	}
}
