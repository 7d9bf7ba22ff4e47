package indicator

import "encoding/json"

// Groups is the fixed-shape set of all seven indicator groups.
// Numeric fields are nil (JSON null, never a sentinel) when the rolling
// window exceeds the series length or a denominator is zero; the two causes
// are deliberately indistinguishable to the caller.
type Groups struct {
	RSI            RSIGroup       `json:"rsi"`
	MACD           MACDResult     `json:"macd"`
	MovingAverages MovingAverages `json:"moving_averages"`
	BollingerBands Bollinger      `json:"bollinger_bands"`
	Stochastic     Stochastic     `json:"stochastic"`
	ATR            *float64       `json:"atr"`
	Volume         VolumeContext  `json:"volume"`
}

// RSIGroup pairs the RSI value with its qualitative signal.
type RSIGroup struct {
	Value  *float64 `json:"value"`
	Signal *string  `json:"signal"`
}

// Report is the engine's sole output: all indicator groups for one ticker
// and period, plus current-price context. The error form ({error, ticker,
// period}) is the same shape family, discriminated by the error field —
// it means "instrument exists but no history", distinct from a transport
// failure which callers surface as a real error.
type Report struct {
	Error        string  `json:"error,omitempty"`
	Ticker       string  `json:"ticker"`
	Period       string  `json:"period"`
	Timestamp    string  `json:"timestamp,omitempty"` // when computed, ISO-8601 UTC
	CurrentPrice float64 `json:"current_price,omitempty"`
	Indicators   *Groups `json:"indicators,omitempty"`
}

// JSON returns the JSON-encoded report (ignoring errors for response usage).
func (r Report) JSON() []byte {
	b, _ := json.Marshal(r)
	return b
}
