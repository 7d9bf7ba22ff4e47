// Package notification delivers tracker alerts (unusual Reddit activity
// around a ticker) to external channels.
package notification

import (
	"context"
	"log"
)

// Alert is one notification about ticker activity.
type Alert struct {
	Tickers   []string `json:"tickers"`
	Title     string   `json:"title"`
	Message   string   `json:"message"`
	Score     int      `json:"score"`
	Sentiment string   `json:"sentiment"`
	Permalink string   `json:"permalink,omitempty"`
}

// Notifier is the interface for all delivery backends.
type Notifier interface {
	// Send delivers an alert. Returns error if delivery fails.
	Send(ctx context.Context, alert Alert) error
}

// LogNotifier logs alerts instead of delivering them (useful when no
// webhook is configured).
type LogNotifier struct{}

// NewLogNotifier creates a log-based notifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Send(_ context.Context, alert Alert) error {
	log.Printf("[notify] %v %s (score %d, %s)", alert.Tickers, alert.Title, alert.Score, alert.Sentiment)
	return nil
}
