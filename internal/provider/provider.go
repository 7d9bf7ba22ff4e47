// Package provider defines the market-data seams the rest of the system
// depends on, plus the Yahoo Finance implementation. The indicator engine
// only requires that history bars be ascending by date with OHLCV present;
// it does not validate ticker existence.
package provider

import (
	"context"
	"fmt"
	"time"

	"stocksurge/internal/model"
)

// Period is the supported lookback window for daily history.
type Period string

const (
	Period1Mo Period = "1mo"
	Period3Mo Period = "3mo"
	Period6Mo Period = "6mo"
	Period1Y  Period = "1y"
	Period2Y  Period = "2y"
	Period5Y  Period = "5y"
)

// ParsePeriod validates a request string against the period enum.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case Period1Mo, Period3Mo, Period6Mo, Period1Y, Period2Y, Period5Y:
		return Period(s), nil
	case "":
		return Period3Mo, nil
	}
	return "", fmt.Errorf("unsupported period %q (want 1mo, 3mo, 6mo, 1y, 2y or 5y)", s)
}

// Start returns the beginning of the lookback window ending at now.
func (p Period) Start(now time.Time) time.Time {
	switch p {
	case Period1Mo:
		return now.AddDate(0, -1, 0)
	case Period3Mo:
		return now.AddDate(0, -3, 0)
	case Period6Mo:
		return now.AddDate(0, -6, 0)
	case Period1Y:
		return now.AddDate(-1, 0, 0)
	case Period2Y:
		return now.AddDate(-2, 0, 0)
	case Period5Y:
		return now.AddDate(-5, 0, 0)
	}
	return now.AddDate(0, -3, 0)
}

// HistoryProvider fetches daily OHLCV bars for one ticker over one period.
// An empty series with a nil error means the instrument had no data — a
// valid state, distinct from a transport failure.
type HistoryProvider interface {
	History(ctx context.Context, ticker string, period Period) (model.PriceSeries, error)
}

// QuoteProvider fetches a point-in-time price snapshot.
type QuoteProvider interface {
	Quote(ctx context.Context, ticker string) (*model.Quote, error)
}

// InfoProvider fetches the fundamentals subset.
type InfoProvider interface {
	Info(ctx context.Context, ticker string) (*model.CompanyInfo, error)
}

// MarketData bundles the three provider seams the API server needs.
type MarketData interface {
	HistoryProvider
	QuoteProvider
	InfoProvider
}
