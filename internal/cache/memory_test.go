package cache

import (
	"context"
	"testing"
	"time"
)

type payload struct {
	Ticker string  `json:"ticker"`
	Price  float64 `json:"price"`
}

func TestMemory_RoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	m.Set(ctx, "quote:AAPL", payload{Ticker: "AAPL", Price: 187.5}, TTLShort)

	var got payload
	if !m.Get(ctx, "quote:AAPL", &got) {
		t.Fatal("expected hit")
	}
	if got.Ticker != "AAPL" || got.Price != 187.5 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestMemory_MissAndDelete(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	var got payload
	if m.Get(ctx, "absent", &got) {
		t.Error("expected miss for absent key")
	}

	m.Set(ctx, "k", payload{Ticker: "X"}, TTLShort)
	m.Delete(ctx, "k")
	if m.Get(ctx, "k", &got) {
		t.Error("expected miss after delete")
	}
}

func TestMemory_Expiry(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base }
	m.Set(ctx, "k", payload{Ticker: "X"}, 30*time.Second)

	var got payload
	if !m.Get(ctx, "k", &got) {
		t.Fatal("expected hit before expiry")
	}

	m.now = func() time.Time { return base.Add(31 * time.Second) }
	if m.Get(ctx, "k", &got) {
		t.Error("expected miss after TTL elapsed")
	}
}
