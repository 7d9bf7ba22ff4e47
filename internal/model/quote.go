package model

import "time"

// Quote is a point-in-time price snapshot for one ticker.
type Quote struct {
	Ticker        string    `json:"ticker"`
	Name          string    `json:"name,omitempty"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	PreviousClose float64   `json:"previous_close"`
	DayHigh       float64   `json:"day_high"`
	DayLow        float64   `json:"day_low"`
	Volume        int64     `json:"volume"`
	Currency      string    `json:"currency,omitempty"`
	Exchange      string    `json:"exchange,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// CompanyInfo is the fundamentals subset served by the info endpoint.
type CompanyInfo struct {
	Ticker           string  `json:"ticker"`
	Name             string  `json:"name,omitempty"`
	Exchange         string  `json:"exchange,omitempty"`
	Currency         string  `json:"currency,omitempty"`
	MarketCap        int64   `json:"market_cap,omitempty"`
	TrailingPE       float64 `json:"trailing_pe,omitempty"`
	ForwardPE        float64 `json:"forward_pe,omitempty"`
	EPS              float64 `json:"eps,omitempty"`
	FiftyTwoWeekHigh float64 `json:"fifty_two_week_high,omitempty"`
	FiftyTwoWeekLow  float64 `json:"fifty_two_week_low,omitempty"`
}

// History is the payload served by the history endpoint.
type History struct {
	Ticker string      `json:"ticker"`
	Period string      `json:"period"`
	Count  int         `json:"count"`
	Bars   PriceSeries `json:"data"`
}
