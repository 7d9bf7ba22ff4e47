package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// PriceBar is one daily OHLCV observation from the history provider.
// Bars are immutable once fetched; the indicator engine never mutates them.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// PriceSeries is a date-ascending sequence of bars for one ticker over one
// lookback period. An empty series is a valid state (provider had no data),
// not an error.
type PriceSeries []PriceBar

// Closes returns the close column.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Close
	}
	return out
}

// Highs returns the high column.
func (s PriceSeries) Highs() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.High
	}
	return out
}

// Lows returns the low column.
func (s PriceSeries) Lows() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Low
	}
	return out
}

// Volumes returns the volume column as float64 for averaging.
func (s PriceSeries) Volumes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = float64(b.Volume)
	}
	return out
}

// Validate checks the series invariant: strictly increasing dates,
// no duplicates.
func (s PriceSeries) Validate() error {
	for i := 1; i < len(s); i++ {
		if !s[i].Date.After(s[i-1].Date) {
			return fmt.Errorf("price series not strictly ascending at index %d (%s then %s)",
				i, s[i-1].Date.Format("2006-01-02"), s[i].Date.Format("2006-01-02"))
		}
	}
	return nil
}

// JSON returns the JSON-encoded series (ignoring errors for response usage).
func (s PriceSeries) JSON() []byte {
	b, _ := json.Marshal(s)
	return b
}
