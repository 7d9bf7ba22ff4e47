package provider

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"stocksurge/internal/model"
)

// ErrUpstreamOpen is returned while the breaker is rejecting calls.
var ErrUpstreamOpen = errors.New("market data upstream circuit open")

// BreakerState is the circuit state.
type BreakerState int

const (
	BreakerClosed   BreakerState = iota // normal operation, calls pass through
	BreakerOpen                         // tripped, calls rejected immediately
	BreakerHalfOpen                     // probing, one call allowed through
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// breaker trips after maxFailures consecutive failures and rejects calls
// for resetTimeout. The first call after the timeout probes the upstream;
// success closes the breaker, failure reopens it.
type breaker struct {
	mu           sync.Mutex
	state        BreakerState
	failures     int
	maxFailures  int
	resetTimeout time.Duration
	lastFailure  time.Time
}

func (b *breaker) execute(fn func() error) error {
	b.mu.Lock()
	if b.state == BreakerOpen {
		if time.Since(b.lastFailure) > b.resetTimeout {
			b.transition(BreakerHalfOpen)
		} else {
			b.mu.Unlock()
			return ErrUpstreamOpen
		}
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.failures++
		b.lastFailure = time.Now()
		if b.state == BreakerHalfOpen || b.failures >= b.maxFailures {
			b.transition(BreakerOpen)
		}
		return err
	}
	if b.state == BreakerHalfOpen {
		b.transition(BreakerClosed)
	}
	b.failures = 0
	return nil
}

func (b *breaker) transition(to BreakerState) {
	from := b.state
	b.state = to
	if to == BreakerClosed {
		b.failures = 0
	}
	if from != to {
		log.Printf("[provider] upstream breaker %s -> %s", from, to)
	}
}

func (b *breaker) currentState() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Guarded wraps a MarketData provider with a circuit breaker so a dead
// upstream fails fast instead of stacking timed-out requests.
type Guarded struct {
	inner MarketData
	cb    *breaker
}

// NewGuarded creates the breaker-protected provider. maxFailures is the
// consecutive-failure trip threshold, resetTimeout the cool-off before a
// probe call is allowed.
func NewGuarded(inner MarketData, maxFailures int, resetTimeout time.Duration) *Guarded {
	return &Guarded{
		inner: inner,
		cb: &breaker{
			maxFailures:  maxFailures,
			resetTimeout: resetTimeout,
		},
	}
}

// State exposes the breaker state for health reporting.
func (g *Guarded) State() BreakerState { return g.cb.currentState() }

func (g *Guarded) History(ctx context.Context, ticker string, period Period) (model.PriceSeries, error) {
	var bars model.PriceSeries
	err := g.cb.execute(func() error {
		var err error
		bars, err = g.inner.History(ctx, ticker, period)
		return err
	})
	return bars, err
}

func (g *Guarded) Quote(ctx context.Context, ticker string) (*model.Quote, error) {
	var q *model.Quote
	err := g.cb.execute(func() error {
		var err error
		q, err = g.inner.Quote(ctx, ticker)
		return err
	})
	return q, err
}

func (g *Guarded) Info(ctx context.Context, ticker string) (*model.CompanyInfo, error) {
	var info *model.CompanyInfo
	err := g.cb.execute(func() error {
		var err error
		info, err = g.inner.Info(ctx, ticker)
		return err
	})
	return info, err
}
