package indicator

import (
	"math"
	"testing"
)

// ────────────────────────────────────────────────────────────
// RSI
// ────────────────────────────────────────────────────────────

func TestRSI_HandComputed(t *testing.T) {
	// period=2, closes 10, 11, 10.5:
	// deltas: +1, -0.5 → meanGain=0.5, meanLoss=0.25 → RS=2 → RSI=66.667
	v := RSI([]float64{10, 11, 10.5}, 2)
	if v == nil {
		t.Fatal("expected RSI value")
	}
	assertClose(t, "RSI(2)", *v, 100.0-100.0/3.0, 1e-6)
}

func TestRSI_InsufficientHistory(t *testing.T) {
	// Needs period+1 bars (one extra for the first delta).
	for _, n := range []int{0, 1, 14} {
		closes := make([]float64, n)
		for i := range closes {
			closes[i] = 100 + float64(i%3)
		}
		if v := RSI(closes, 14); v != nil {
			t.Errorf("n=%d: expected nil RSI, got %.4f", n, *v)
		}
	}
}

func TestRSI_ZeroLossIsNil(t *testing.T) {
	// Strictly rising closes: mean loss is exactly zero. RSI must be nil,
	// not a fabricated 100.
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	if v := RSI(closes, 14); v != nil {
		t.Errorf("expected nil RSI for all-gain series, got %.4f", *v)
	}
}

func TestRSI_Bounds(t *testing.T) {
	// Mixed gains and losses over ≥15 bars: RSI must stay inside [0, 100].
	closes := make([]float64, 40)
	closes[0] = 100
	for i := 1; i < len(closes); i++ {
		if i%3 == 0 {
			closes[i] = closes[i-1] - 1.7
		} else {
			closes[i] = closes[i-1] + 0.9
		}
	}
	v := RSI(closes, 14)
	if v == nil {
		t.Fatal("expected RSI value for mixed series")
	}
	if *v < 0 || *v > 100 {
		t.Errorf("RSI out of bounds: %.4f", *v)
	}
}

func TestRSISignal_Labels(t *testing.T) {
	cases := []struct {
		val  float64
		want string
	}{
		{25, "oversold"},
		{30, "neutral"},
		{50, "neutral"},
		{70, "neutral"},
		{75, "overbought"},
	}
	for _, c := range cases {
		got := RSISignal(&c.val)
		if got == nil || *got != c.want {
			t.Errorf("RSI=%.0f: want %q, got %v", c.val, c.want, got)
		}
	}
	if RSISignal(nil) != nil {
		t.Error("nil RSI must give nil signal")
	}
}

// ────────────────────────────────────────────────────────────
// MACD
// ────────────────────────────────────────────────────────────

func TestMACD_SingleBar(t *testing.T) {
	// EMA of a single bar is the bar itself, so macd=0, signal=0, hist=0.
	res := MACD([]float64{100}, 12, 26, 9)
	if res.MACD == nil || res.Signal == nil || res.Histogram == nil {
		t.Fatal("MACD fields must be defined for a non-empty series")
	}
	assertClose(t, "macd", *res.MACD, 0, 1e-12)
	assertClose(t, "signal", *res.Signal, 0, 1e-12)
	assertClose(t, "histogram", *res.Histogram, 0, 1e-12)
}

func TestMACD_EmptySeries(t *testing.T) {
	res := MACD(nil, 12, 26, 9)
	if res.MACD != nil || res.Signal != nil || res.Histogram != nil {
		t.Error("MACD fields must be nil for an empty series")
	}
}

func TestMACD_HistogramIdentity(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + 5*math.Sin(float64(i)/4)
	}
	res := MACD(closes, 12, 26, 9)
	if res.MACD == nil || res.Signal == nil || res.Histogram == nil {
		t.Fatal("expected all MACD fields")
	}
	assertClose(t, "histogram identity", *res.Histogram, *res.MACD-*res.Signal, 1e-9)
}

// ────────────────────────────────────────────────────────────
// Moving averages
// ────────────────────────────────────────────────────────────

func TestSMALast_Windows(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = float64(i + 1)
	}
	// SMA(20) over 41..60 = 50.5
	v := SMALast(closes, 20)
	if v == nil {
		t.Fatal("expected SMA(20)")
	}
	assertClose(t, "SMA(20)", *v, 50.5, 1e-9)

	if SMALast(closes, 100) != nil {
		t.Error("SMA(100) over 60 bars must be nil")
	}
	if SMALast(closes, 200) != nil {
		t.Error("SMA(200) over 60 bars must be nil")
	}
}

func TestSMALast_InsufficientBoundary(t *testing.T) {
	for _, window := range []int{20, 50, 100, 200} {
		closes := make([]float64, window-1)
		for i := range closes {
			closes[i] = 100
		}
		if v := SMALast(closes, window); v != nil {
			t.Errorf("window=%d with window-1 bars: expected nil, got %.4f", window, *v)
		}
	}
}

func TestEMALast_SpanGate(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	if EMALast(closes, 12) != nil {
		t.Error("EMA(12) over 11 bars must be nil")
	}
	if EMALast(append(closes, 12), 12) == nil {
		t.Error("EMA(12) over 12 bars must be defined")
	}
}

func TestComputeMovingAverages_TrendFields(t *testing.T) {
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = 100
	}
	closes[24] = 110 // current price 10% above the 20-bar average region

	ma := ComputeMovingAverages(closes, 110)
	if ma.SMA.SMA20 == nil || ma.PriceVsSMA20 == nil {
		t.Fatal("expected SMA20 and trend field")
	}
	// SMA20 over last 20 bars = (19*100 + 110)/20 = 100.5
	assertClose(t, "SMA20", *ma.SMA.SMA20, 100.5, 1e-9)
	assertClose(t, "price_vs_sma20", *ma.PriceVsSMA20, (110-100.5)/100.5*100, 1e-9)

	if ma.PriceVsSMA50 != nil || ma.PriceVsSMA200 != nil {
		t.Error("trend fields for unavailable SMAs must be nil")
	}
}

// ────────────────────────────────────────────────────────────
// Bollinger Bands
// ────────────────────────────────────────────────────────────

func TestBollingerBands_Ordering(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + 3*math.Sin(float64(i))
	}
	b := BollingerBands(closes, 20, 2, closes[29])
	if b.Upper == nil || b.Middle == nil || b.Lower == nil {
		t.Fatal("expected all bands")
	}
	if !(*b.Lower <= *b.Middle && *b.Middle <= *b.Upper) {
		t.Errorf("band ordering violated: lower=%.4f middle=%.4f upper=%.4f",
			*b.Lower, *b.Middle, *b.Upper)
	}
	if b.Position == nil {
		t.Error("expected position label when bands are defined")
	}
}

func TestBollingerBands_Insufficient(t *testing.T) {
	closes := make([]float64, 19)
	for i := range closes {
		closes[i] = 100
	}
	b := BollingerBands(closes, 20, 2, 100)
	if b.Upper != nil || b.Middle != nil || b.Lower != nil || b.Position != nil {
		t.Error("all bands and position must be nil below 20 bars")
	}
}

func TestBollingerBands_FlatSeriesZeroWidth(t *testing.T) {
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = 42
	}
	b := BollingerBands(closes, 20, 2, 42)
	if b.Upper == nil || b.Middle == nil || b.Lower == nil {
		t.Fatal("flat series must still produce bands")
	}
	assertClose(t, "upper==middle", *b.Upper, *b.Middle, 1e-12)
	assertClose(t, "lower==middle", *b.Lower, *b.Middle, 1e-12)
	if b.Position == nil || *b.Position != "within_bands" {
		t.Errorf("expected within_bands, got %v", b.Position)
	}
}

func TestBollingerBands_PositionLabels(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i%2) // alternating 100/101
	}
	above := BollingerBands(closes, 20, 2, 200)
	if above.Position == nil || *above.Position != "above_upper" {
		t.Errorf("expected above_upper, got %v", above.Position)
	}
	below := BollingerBands(closes, 20, 2, 1)
	if below.Position == nil || *below.Position != "below_lower" {
		t.Errorf("expected below_lower, got %v", below.Position)
	}
}

// ────────────────────────────────────────────────────────────
// Stochastic
// ────────────────────────────────────────────────────────────

func TestStochastic_HandComputed(t *testing.T) {
	// kPeriod=3: window high=14, low=9, close=13 → %K = 100*(13-9)/5 = 80
	high := []float64{11, 12, 14, 13, 14}
	low := []float64{9, 10, 11, 10, 9}
	close := []float64{10, 11, 13, 12, 13}
	s := StochasticOscillator(high, low, close, 3, 2)
	if s.K == nil {
		t.Fatal("expected %K")
	}
	assertClose(t, "%K", *s.K, 80.0, 1e-9)
	if s.D == nil {
		t.Fatal("expected %D")
	}
}

func TestStochastic_FlatRangeIsNil(t *testing.T) {
	n := 25
	high := make([]float64, n)
	low := make([]float64, n)
	close := make([]float64, n)
	for i := 0; i < n; i++ {
		high[i], low[i], close[i] = 50, 50, 50
	}
	s := StochasticOscillator(high, low, close, 14, 3)
	if s.K != nil {
		t.Errorf("zero range must give nil %%K, got %.4f", *s.K)
	}
	if s.D != nil {
		t.Error("zero range must give nil %D")
	}
}

func TestStochastic_Insufficient(t *testing.T) {
	for _, n := range []int{0, 1, 13} {
		high := make([]float64, n)
		low := make([]float64, n)
		close := make([]float64, n)
		for i := 0; i < n; i++ {
			high[i], low[i], close[i] = 100+float64(i), 90+float64(i), 95+float64(i)
		}
		s := StochasticOscillator(high, low, close, 14, 3)
		if s.K != nil || s.D != nil {
			t.Errorf("n=%d: expected nil stochastic", n)
		}
	}
}

func TestStochastic_DNeedsExtraBars(t *testing.T) {
	// 15 bars: %K defined, %D (3-bar mean of %K) still short one %K value.
	n := 15
	high := make([]float64, n)
	low := make([]float64, n)
	close := make([]float64, n)
	for i := 0; i < n; i++ {
		high[i], low[i], close[i] = 100+float64(i), 90+float64(i), 95+float64(i)
	}
	s := StochasticOscillator(high, low, close, 14, 3)
	if s.K == nil {
		t.Error("expected %K at 15 bars")
	}
	if s.D != nil {
		t.Error("%D must be nil before 16 bars")
	}
}

// ────────────────────────────────────────────────────────────
// ATR
// ────────────────────────────────────────────────────────────

func TestATR_HandComputed(t *testing.T) {
	high := []float64{12, 13, 14}
	low := []float64{10, 11, 12}
	close := []float64{11, 12, 13}
	// TR[1] = max(2, 2, 0) = 2; TR[2] = max(2, 2, 0) = 2 → ATR(2) = 2
	v := ATR(high, low, close, 2)
	if v == nil {
		t.Fatal("expected ATR")
	}
	assertClose(t, "ATR(2)", *v, 2.0, 1e-9)
}

func TestATR_Insufficient(t *testing.T) {
	// First bar has no previous close, so period+1 bars are required.
	for _, n := range []int{0, 1, 13, 14} {
		high := make([]float64, n)
		low := make([]float64, n)
		close := make([]float64, n)
		for i := 0; i < n; i++ {
			high[i], low[i], close[i] = 105, 95, 100
		}
		if v := ATR(high, low, close, 14); v != nil {
			t.Errorf("n=%d: expected nil ATR, got %.4f", n, *v)
		}
	}
}

// ────────────────────────────────────────────────────────────
// Volume
// ────────────────────────────────────────────────────────────

func TestVolume_RatioScenario(t *testing.T) {
	vols := []float64{100, 100, 100, 100, 100, 100, 100, 100, 100, 1000}
	vc := Volume(vols)
	assertClose(t, "average", vc.Average, 190, 1e-9)
	assertClose(t, "current", vc.Current, 1000, 1e-9)
	if vc.Ratio == nil {
		t.Fatal("expected ratio")
	}
	assertClose(t, "ratio", *vc.Ratio, 1000.0/190.0, 1e-4)
}

func TestVolume_ZeroAverage(t *testing.T) {
	vc := Volume([]float64{0, 0, 0})
	if vc.Ratio != nil {
		t.Error("zero average volume must give nil ratio")
	}
}
