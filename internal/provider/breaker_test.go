package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"stocksurge/internal/model"
)

type flakyMarket struct {
	fail  bool
	calls int
}

func (f *flakyMarket) History(_ context.Context, ticker string, _ Period) (model.PriceSeries, error) {
	f.calls++
	if f.fail {
		return nil, errors.New("upstream timeout")
	}
	return model.PriceSeries{}, nil
}

func (f *flakyMarket) Quote(_ context.Context, ticker string) (*model.Quote, error) {
	f.calls++
	if f.fail {
		return nil, errors.New("upstream timeout")
	}
	return &model.Quote{Ticker: ticker, Price: 100}, nil
}

func (f *flakyMarket) Info(_ context.Context, ticker string) (*model.CompanyInfo, error) {
	f.calls++
	if f.fail {
		return nil, errors.New("upstream timeout")
	}
	return &model.CompanyInfo{Ticker: ticker}, nil
}

func TestGuarded_TripsAfterConsecutiveFailures(t *testing.T) {
	upstream := &flakyMarket{fail: true}
	g := NewGuarded(upstream, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := g.Quote(ctx, "AAPL"); err == nil {
			t.Fatal("expected failure")
		}
	}
	if g.State() != BreakerOpen {
		t.Fatalf("state after trip: %v", g.State())
	}

	// Open breaker rejects without touching the upstream.
	before := upstream.calls
	if _, err := g.Quote(ctx, "AAPL"); !errors.Is(err, ErrUpstreamOpen) {
		t.Errorf("open breaker error: %v", err)
	}
	if upstream.calls != before {
		t.Error("open breaker still called upstream")
	}
}

func TestGuarded_SuccessResetsFailureCount(t *testing.T) {
	upstream := &flakyMarket{}
	g := NewGuarded(upstream, 2, time.Minute)
	ctx := context.Background()

	upstream.fail = true
	g.Quote(ctx, "AAPL")
	upstream.fail = false
	if _, err := g.Quote(ctx, "AAPL"); err != nil {
		t.Fatal(err)
	}

	// One more failure should not trip a freshly reset breaker.
	upstream.fail = true
	g.Quote(ctx, "AAPL")
	if g.State() != BreakerClosed {
		t.Errorf("state: %v, want closed after reset", g.State())
	}
}

func TestGuarded_HalfOpenProbe(t *testing.T) {
	upstream := &flakyMarket{fail: true}
	g := NewGuarded(upstream, 1, 10*time.Millisecond)
	ctx := context.Background()

	g.History(ctx, "AAPL", Period3Mo)
	if g.State() != BreakerOpen {
		t.Fatalf("state: %v", g.State())
	}

	time.Sleep(20 * time.Millisecond)

	// Probe fails, breaker reopens.
	if _, err := g.History(ctx, "AAPL", Period3Mo); err == nil {
		t.Fatal("expected probe failure")
	}
	if g.State() != BreakerOpen {
		t.Fatalf("state after failed probe: %v", g.State())
	}

	// Probe succeeds, breaker closes.
	time.Sleep(20 * time.Millisecond)
	upstream.fail = false
	if _, err := g.Info(ctx, "AAPL"); err != nil {
		t.Fatal(err)
	}
	if g.State() != BreakerClosed {
		t.Errorf("state after good probe: %v", g.State())
	}
}
