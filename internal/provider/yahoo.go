package provider

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/equity"
	"github.com/piquette/finance-go/quote"

	"stocksurge/internal/model"
)

// Yahoo implements MarketData against Yahoo Finance.
type Yahoo struct {
	now func() time.Time
}

// NewYahoo creates the Yahoo Finance provider.
func NewYahoo() *Yahoo {
	return &Yahoo{now: time.Now}
}

// History fetches daily bars for the period. Bars with a zero close (Yahoo
// emits these for halted days) are skipped; the result is sorted ascending
// and validated against the series invariant.
func (y *Yahoo) History(ctx context.Context, ticker string, period Period) (model.PriceSeries, error) {
	end := y.now()
	start := period.Start(end)

	params := &chart.Params{
		Symbol:   strings.ToUpper(ticker),
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}
	params.Context = &ctx

	iter := chart.Get(params)
	series := make(model.PriceSeries, 0, 256)
	for iter.Next() {
		b := iter.Bar()
		closeF, _ := b.Close.Float64()
		if closeF == 0 {
			continue
		}
		openF, _ := b.Open.Float64()
		highF, _ := b.High.Float64()
		lowF, _ := b.Low.Float64()
		series = append(series, model.PriceBar{
			Date:   time.Unix(int64(b.Timestamp), 0).UTC(),
			Open:   openF,
			High:   highF,
			Low:    lowF,
			Close:  closeF,
			Volume: int64(b.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		// Yahoo reports unknown symbols as an API error; the caller treats
		// an empty series as "no data", so map not-found style errors there.
		if strings.Contains(err.Error(), "Not Found") {
			return nil, nil
		}
		return nil, fmt.Errorf("yahoo history %s: %w", ticker, err)
	}

	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("yahoo history %s: %w", ticker, err)
	}
	return series, nil
}

// Quote fetches the current price snapshot.
func (y *Yahoo) Quote(ctx context.Context, ticker string) (*model.Quote, error) {
	q, err := quote.Get(strings.ToUpper(ticker))
	if err != nil {
		return nil, fmt.Errorf("yahoo quote %s: %w", ticker, err)
	}
	if q == nil {
		return nil, fmt.Errorf("yahoo quote %s: no data", ticker)
	}
	return &model.Quote{
		Ticker:        q.Symbol,
		Name:          q.ShortName,
		Price:         q.RegularMarketPrice,
		Change:        q.RegularMarketChange,
		ChangePercent: q.RegularMarketChangePercent,
		PreviousClose: q.RegularMarketPreviousClose,
		DayHigh:       q.RegularMarketDayHigh,
		DayLow:        q.RegularMarketDayLow,
		Volume:        int64(q.RegularMarketVolume),
		Currency:      q.CurrencyID,
		Exchange:      q.ExchangeID,
		Timestamp:     y.now().UTC(),
	}, nil
}

// Info fetches the fundamentals subset served by the info endpoint. The
// valuation fields live on the equity payload, not the plain quote.
func (y *Yahoo) Info(ctx context.Context, ticker string) (*model.CompanyInfo, error) {
	eq, err := equity.Get(strings.ToUpper(ticker))
	if err != nil {
		return nil, fmt.Errorf("yahoo info %s: %w", ticker, err)
	}
	if eq == nil {
		return nil, fmt.Errorf("yahoo info %s: no data", ticker)
	}
	return infoFromEquity(eq), nil
}

func infoFromEquity(eq *finance.Equity) *model.CompanyInfo {
	return &model.CompanyInfo{
		Ticker:           eq.Symbol,
		Name:             eq.ShortName,
		Exchange:         eq.ExchangeID,
		Currency:         eq.CurrencyID,
		MarketCap:        eq.MarketCap,
		TrailingPE:       eq.TrailingPE,
		ForwardPE:        eq.ForwardPE,
		EPS:              eq.EpsTrailingTwelveMonths,
		FiftyTwoWeekHigh: eq.FiftyTwoWeekHigh,
		FiftyTwoWeekLow:  eq.FiftyTwoWeekLow,
	}
}
