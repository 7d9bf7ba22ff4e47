package indicator

import (
	"log"
	"time"

	"stocksurge/internal/model"
)

// Standard parameterization, matching common charting defaults.
const (
	rsiPeriod       = 14
	macdFast        = 12
	macdSlow        = 26
	macdSignal      = 9
	bollingerPeriod = 20
	bollingerWidth  = 2.0
	stochKPeriod    = 14
	stochDPeriod    = 3
	atrPeriod       = 14
)

// Engine assembles a full indicator report from one price series.
// It is pure, synchronous and stateless: no I/O, no shared mutable state.
// Concurrent calls for different tickers need no coordination.
type Engine struct {
	now func() time.Time
}

// NewEngine creates an engine using the wall clock for report timestamps.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// Compute runs all calculators against the series and assembles the report.
// An empty series yields the error-shaped report rather than an error value;
// a panic inside any single calculator nulls only that group, the other six
// still compute.
func (e *Engine) Compute(ticker, period string, series model.PriceSeries) Report {
	if len(series) == 0 {
		return Report{Error: "no data", Ticker: ticker, Period: period}
	}

	closes := series.Closes()
	highs := series.Highs()
	lows := series.Lows()
	volumes := series.Volumes()
	currentPrice := closes[len(closes)-1]

	rep := Report{
		Ticker:       ticker,
		Period:       period,
		Timestamp:    e.now().UTC().Format(time.RFC3339),
		CurrentPrice: currentPrice,
		Indicators:   &Groups{},
	}
	ind := rep.Indicators

	guard("rsi", func() {
		v := RSI(closes, rsiPeriod)
		ind.RSI = RSIGroup{Value: v, Signal: RSISignal(v)}
	})
	guard("macd", func() {
		ind.MACD = MACD(closes, macdFast, macdSlow, macdSignal)
	})
	guard("moving_averages", func() {
		ind.MovingAverages = ComputeMovingAverages(closes, currentPrice)
	})
	guard("bollinger_bands", func() {
		ind.BollingerBands = BollingerBands(closes, bollingerPeriod, bollingerWidth, currentPrice)
	})
	guard("stochastic", func() {
		ind.Stochastic = StochasticOscillator(highs, lows, closes, stochKPeriod, stochDPeriod)
	})
	guard("atr", func() {
		ind.ATR = ATR(highs, lows, closes, atrPeriod)
	})
	guard("volume", func() {
		ind.Volume = Volume(volumes)
	})

	return rep
}

// guard isolates one calculator: a panic leaves its group at the zero value
// (all fields nil) and the rest of the report intact.
func guard(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[indicator] %s calculator panic: %v", name, r)
		}
	}()
	fn()
}
