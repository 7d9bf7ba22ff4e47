package notification

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// WebhookNotifier POSTs alerts as JSON to a generic HTTP endpoint
// (Slack/Discord-compatible relays, internal hooks).
type WebhookNotifier struct {
	url  string
	http *resty.Client
}

// NewWebhookNotifier creates a webhook notifier for the given endpoint.
func NewWebhookNotifier(url string) *WebhookNotifier {
	client := resty.New()
	client.SetTimeout(10 * time.Second)
	return &WebhookNotifier{url: url, http: client}
}

func (w *WebhookNotifier) Send(ctx context.Context, alert Alert) error {
	payload := map[string]any{
		"tickers":   alert.Tickers,
		"title":     alert.Title,
		"message":   alert.Message,
		"score":     alert.Score,
		"sentiment": alert.Sentiment,
		"permalink": alert.Permalink,
		"ts":        time.Now().UTC().Format(time.RFC3339Nano),
	}

	resp, err := w.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(w.url)
	if err != nil {
		return fmt.Errorf("webhook send: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return fmt.Errorf("webhook: unexpected status %d", resp.StatusCode())
	}

	log.Printf("[webhook] sent alert to %s: %s", w.url, alert.Title)
	return nil
}
