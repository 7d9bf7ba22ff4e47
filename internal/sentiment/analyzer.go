// Package sentiment tracks stock mentions on financial subreddits: ticker
// extraction and validation, lexicon sentiment scoring, and persistence with
// trending aggregation.
package sentiment

import (
	"math"
	"strings"
)

// Sentiment label thresholds.
const (
	bullishThreshold = 0.3
	bearishThreshold = -0.3
)

var positiveWords = []string{
	"gain", "profit", "beat", "upgrade", "strong", "growth", "rally",
	"surge", "soar", "breakout", "undervalued", "winner", "great",
}

var negativeWords = []string{
	"loss", "miss", "downgrade", "weak", "drop", "fall", "plunge",
	"bankrupt", "fraud", "overvalued", "scam", "terrible", "tank",
}

// Trader-slang phrases that shift the score beyond the base lexicon.
var bullishKeywords = []string{"moon", "rocket", "bull", "calls", "long", "buy", "bullish", "gap up"}
var bearishKeywords = []string{"dump", "crash", "bear", "puts", "short", "sell", "bearish", "gap down"}

var bullishEmojis = []string{"🚀", "📈", "💎"}
var bearishEmojis = []string{"💩", "📉", "🤡"}

// Analyzer scores post text into [-1, 1]: -1 very bearish, +1 very bullish.
// Deterministic lexicon scoring — no model, no network.
type Analyzer struct{}

// NewAnalyzer creates the sentiment analyzer.
func NewAnalyzer() *Analyzer { return &Analyzer{} }

// Score rates the text. Base score comes from positive/negative word
// balance; trader slang and emojis shift it further.
func (a *Analyzer) Score(text string) float64 {
	if text == "" {
		return 0
	}
	lower := strings.ToLower(text)

	pos := countAny(lower, positiveWords)
	neg := countAny(lower, negativeWords)
	score := 0.0
	if pos+neg > 0 {
		score = float64(pos-neg) / float64(pos+neg) * 0.6
	}

	if containsAny(lower, bullishKeywords) {
		score = math.Min(score+0.15, 1.0)
	}
	if containsAny(text, bullishEmojis) {
		score = math.Min(score+0.2, 1.0)
	}
	if containsAny(lower, bearishKeywords) {
		score = math.Max(score-0.15, -1.0)
	}
	if containsAny(text, bearishEmojis) {
		score = math.Max(score-0.2, -1.0)
	}

	return math.Round(score*1000) / 1000
}

// Label converts a score to Bullish/Bearish/Neutral.
func (a *Analyzer) Label(score float64) string {
	switch {
	case score >= bullishThreshold:
		return "Bullish"
	case score <= bearishThreshold:
		return "Bearish"
	default:
		return "Neutral"
	}
}

func countAny(text string, words []string) int {
	n := 0
	for _, w := range words {
		n += strings.Count(text, w)
	}
	return n
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
