package assistant

import (
	"fmt"
	"strings"

	"stocksurge/internal/model"
)

// StockContext is the market data injected into assistant prompts.
type StockContext struct {
	Quote *model.Quote
	Info  *model.CompanyInfo
}

// FormatContext renders stock data as the plain-text block prepended to
// assistant prompts. Nil sections are skipped so partial data still helps.
func FormatContext(sc *StockContext, watchlist []string) string {
	var b strings.Builder

	if len(watchlist) > 0 {
		fmt.Fprintf(&b, "USER'S WATCHLIST: %s\n\n", strings.Join(watchlist, ", "))
	}

	if sc == nil || sc.Quote == nil {
		return b.String()
	}

	q := sc.Quote
	fmt.Fprintf(&b, "STOCK DATA FOR %s:\n", q.Ticker)
	fmt.Fprintf(&b, "- Price: $%.2f\n", q.Price)
	fmt.Fprintf(&b, "- Change: %s$%.2f (%s%.2f%%)\n",
		sign(q.Change), q.Change, sign(q.ChangePercent), q.ChangePercent)
	if q.Volume > 0 {
		fmt.Fprintf(&b, "- Volume: %d\n", q.Volume)
	}

	if info := sc.Info; info != nil {
		if info.MarketCap > 0 {
			fmt.Fprintf(&b, "- Market Cap: $%d\n", info.MarketCap)
		}
		if info.TrailingPE > 0 {
			fmt.Fprintf(&b, "- P/E Ratio: %.2f\n", info.TrailingPE)
		}
		if info.FiftyTwoWeekHigh > 0 {
			fmt.Fprintf(&b, "- 52-Week Range: $%.2f - $%.2f\n",
				info.FiftyTwoWeekLow, info.FiftyTwoWeekHigh)
		}
	}
	b.WriteString("\n")
	return b.String()
}

// sign adds the explicit "+" prefix for gains; negatives already carry
// their minus from %f.
func sign(v float64) string {
	if v >= 0 {
		return "+"
	}
	return ""
}
