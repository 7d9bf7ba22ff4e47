package indicator

// Bollinger holds the latest Bollinger Band values and the position of the
// current price relative to them. Upper, middle and lower are nil together
// when the series is shorter than the period; the position label is present
// only when all three bands are.
type Bollinger struct {
	Upper    *float64 `json:"upper"`
	Middle   *float64 `json:"middle"`
	Lower    *float64 `json:"lower"`
	Position *string  `json:"position"`
}

// BollingerBands computes the 20-period/2-sigma style volatility envelope:
// middle = SMA(close, period), upper/lower = middle ± width * rolling sample
// std-dev. A flat window yields a zero-width band, not an error.
func BollingerBands(close []float64, period int, width float64, currentPrice float64) Bollinger {
	mid := lastValue(RollingMean(close, period))
	sd := lastValue(RollingStd(close, period))

	b := Bollinger{
		Upper:  finitePtr(mid + width*sd),
		Middle: finitePtr(mid),
		Lower:  finitePtr(mid - width*sd),
	}
	if b.Upper == nil || b.Middle == nil || b.Lower == nil {
		return b
	}
	switch {
	case currentPrice > *b.Upper:
		b.Position = strPtr("above_upper")
	case currentPrice < *b.Lower:
		b.Position = strPtr("below_lower")
	default:
		b.Position = strPtr("within_bands")
	}
	return b
}
