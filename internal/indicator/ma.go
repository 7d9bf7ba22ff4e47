package indicator

// SMASet holds the latest simple moving averages at the standard windows.
type SMASet struct {
	SMA20  *float64 `json:"sma_20"`
	SMA50  *float64 `json:"sma_50"`
	SMA100 *float64 `json:"sma_100"`
	SMA200 *float64 `json:"sma_200"`
}

// EMASet holds the latest exponential moving averages at the standard spans.
type EMASet struct {
	EMA12 *float64 `json:"ema_12"`
	EMA26 *float64 `json:"ema_26"`
	EMA50 *float64 `json:"ema_50"`
}

// MovingAverages groups the SMA/EMA sets with the price-vs-SMA trend fields
// (percent distance of the current price from each average).
type MovingAverages struct {
	SMA          SMASet   `json:"sma"`
	EMA          EMASet   `json:"ema"`
	PriceVsSMA20 *float64 `json:"price_vs_sma20"`
	PriceVsSMA50 *float64 `json:"price_vs_sma50"`
	PriceVsSMA200 *float64 `json:"price_vs_sma200"`
}

// SMALast returns the latest simple moving average over the window, nil when
// the series is shorter than the window.
func SMALast(close []float64, window int) *float64 {
	if len(close) < window {
		return nil
	}
	return finitePtr(lastValue(RollingMean(close, window)))
}

// EMALast returns the latest exponential moving average at the span. The EMA
// recurrence is defined from the first bar, but the reported field is nil
// when the series is shorter than the span: a value smoothed over fewer bars
// than its nominal span is not worth reporting.
func EMALast(close []float64, span int) *float64 {
	if len(close) < span {
		return nil
	}
	return finitePtr(lastValue(EMASeries(close, span)))
}

// ComputeMovingAverages fills the full moving-average group for the series.
// currentPrice is the latest close; the trend fields are computed only for
// windows whose SMA is available.
func ComputeMovingAverages(close []float64, currentPrice float64) MovingAverages {
	ma := MovingAverages{
		SMA: SMASet{
			SMA20:  SMALast(close, 20),
			SMA50:  SMALast(close, 50),
			SMA100: SMALast(close, 100),
			SMA200: SMALast(close, 200),
		},
		EMA: EMASet{
			EMA12: EMALast(close, 12),
			EMA26: EMALast(close, 26),
			EMA50: EMALast(close, 50),
		},
	}
	ma.PriceVsSMA20 = priceVs(currentPrice, ma.SMA.SMA20)
	ma.PriceVsSMA50 = priceVs(currentPrice, ma.SMA.SMA50)
	ma.PriceVsSMA200 = priceVs(currentPrice, ma.SMA.SMA200)
	return ma
}

// priceVs expresses how far the current price sits above or below an average,
// in percent. nil average (or a zero average) yields nil.
func priceVs(price float64, sma *float64) *float64 {
	if sma == nil || *sma == 0 {
		return nil
	}
	return finitePtr((price - *sma) / *sma * 100.0)
}
