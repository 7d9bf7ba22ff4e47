package sentiment

import (
	"context"
	"sync"

	"stocksurge/internal/provider"
)

const validatorCacheLimit = 1000

// Common false positives that match the ticker pattern but are not tickers.
var tickerBlacklist = map[string]struct{}{
	"CEO": {}, "DD": {}, "IMO": {}, "IPO": {}, "EOD": {}, "FOR": {}, "ALL": {},
	"NEW": {}, "USA": {}, "ETF": {}, "ATH": {}, "ATL": {}, "PM": {}, "AH": {},
	"ER": {}, "IV": {}, "PT": {}, "EPS": {}, "PE": {}, "PS": {}, "PB": {},
	"ROE": {}, "ROI": {}, "YOY": {}, "QOQ": {}, "TTM": {}, "GDP": {}, "CPI": {},
	"FOMC": {}, "FED": {}, "SEC": {}, "IRS": {}, "LLC": {}, "INC": {}, "LTD": {},
	"YOLO": {}, "WSB": {}, "TBH": {}, "FOMO": {}, "FUD": {}, "HODL": {},
	"THE": {}, "AND": {}, "BUT": {}, "NOT": {}, "OUT": {}, "NOW": {}, "SEE": {},
	"GET": {}, "HAS": {}, "HAD": {}, "DID": {}, "CAN": {}, "MAY": {}, "ONE": {},
	"TWO": {}, "TOP": {},
}

// Validator decides whether an extracted symbol is a real, quotable ticker.
// Results are cached both ways so repeat symbols cost no provider calls.
type Validator struct {
	quotes provider.QuoteProvider
	extra  map[string]struct{}

	mu      sync.Mutex
	valid   map[string]struct{}
	invalid map[string]struct{}
}

// NewValidator creates a validator backed by the quote provider.
// extraBlacklist adds deployment-specific false positives.
func NewValidator(quotes provider.QuoteProvider, extraBlacklist []string) *Validator {
	extra := make(map[string]struct{}, len(extraBlacklist))
	for _, s := range extraBlacklist {
		extra[s] = struct{}{}
	}
	return &Validator{
		quotes:  quotes,
		extra:   extra,
		valid:   make(map[string]struct{}),
		invalid: make(map[string]struct{}),
	}
}

// IsValid reports whether the symbol resolves to a real quote.
func (v *Validator) IsValid(ctx context.Context, ticker string) bool {
	if _, ok := tickerBlacklist[ticker]; ok {
		return false
	}
	if _, ok := v.extra[ticker]; ok {
		return false
	}

	v.mu.Lock()
	if _, ok := v.valid[ticker]; ok {
		v.mu.Unlock()
		return true
	}
	if _, ok := v.invalid[ticker]; ok {
		v.mu.Unlock()
		return false
	}
	v.mu.Unlock()

	q, err := v.quotes.Quote(ctx, ticker)
	ok := err == nil && q != nil && q.Price > 0

	v.mu.Lock()
	defer v.mu.Unlock()
	if ok {
		v.remember(v.valid, ticker)
	} else {
		v.remember(v.invalid, ticker)
	}
	return ok
}

// remember adds to a cache set, evicting an arbitrary entry at the limit.
func (v *Validator) remember(set map[string]struct{}, ticker string) {
	if len(set) >= validatorCacheLimit {
		for k := range set {
			delete(set, k)
			break
		}
	}
	set[ticker] = struct{}{}
}
