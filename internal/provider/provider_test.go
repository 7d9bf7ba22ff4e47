package provider

import (
	"testing"
	"time"

	finance "github.com/piquette/finance-go"
)

func TestParsePeriod(t *testing.T) {
	for _, s := range []string{"1mo", "3mo", "6mo", "1y", "2y", "5y"} {
		p, err := ParsePeriod(s)
		if err != nil {
			t.Errorf("%s: unexpected error %v", s, err)
		}
		if string(p) != s {
			t.Errorf("%s: parsed as %s", s, p)
		}
	}

	if p, err := ParsePeriod(""); err != nil || p != Period3Mo {
		t.Errorf("empty period must default to 3mo, got %s / %v", p, err)
	}

	for _, s := range []string{"1d", "10y", "max", "week"} {
		if _, err := ParsePeriod(s); err == nil {
			t.Errorf("%s: expected error", s)
		}
	}
}

func TestPeriodStart(t *testing.T) {
	now := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		p    Period
		want time.Time
	}{
		{Period1Mo, time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)},
		{Period6Mo, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)},
		{Period1Y, time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC)},
		{Period5Y, time.Date(2020, 8, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		if got := c.p.Start(now); !got.Equal(c.want) {
			t.Errorf("%s: got %s, want %s", c.p, got, c.want)
		}
	}
}

func TestInfoFromEquity(t *testing.T) {
	// The valuation fields come from the equity payload, not the plain quote.
	eq := &finance.Equity{
		Quote: finance.Quote{
			Symbol:           "AAPL",
			ShortName:        "Apple Inc.",
			ExchangeID:       "NMS",
			CurrencyID:       "USD",
			FiftyTwoWeekHigh: 260.10,
			FiftyTwoWeekLow:  164.08,
		},
		MarketCap:               3_500_000_000_000,
		TrailingPE:              34.2,
		ForwardPE:               29.8,
		EpsTrailingTwelveMonths: 6.57,
	}

	info := infoFromEquity(eq)
	if info.Ticker != "AAPL" || info.Name != "Apple Inc." {
		t.Errorf("identity fields: got %q / %q", info.Ticker, info.Name)
	}
	if info.MarketCap != 3_500_000_000_000 {
		t.Errorf("market cap: got %d", info.MarketCap)
	}
	if info.TrailingPE != 34.2 || info.ForwardPE != 29.8 || info.EPS != 6.57 {
		t.Errorf("valuation: got pe=%.2f fwd=%.2f eps=%.2f", info.TrailingPE, info.ForwardPE, info.EPS)
	}
	if info.FiftyTwoWeekHigh != 260.10 || info.FiftyTwoWeekLow != 164.08 {
		t.Errorf("52w range: got %.2f / %.2f", info.FiftyTwoWeekHigh, info.FiftyTwoWeekLow)
	}
}
