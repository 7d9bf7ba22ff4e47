// Package assistant talks to a local Ollama server for article
// summarization. Responses are schema-constrained so the model returns
// parseable JSON instead of prose.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const contentPreviewLen = 8000

// Summary is the structured output of SummarizeArticle.
type Summary struct {
	Summary     string `json:"summary"`
	KeyTakeaway string `json:"key_takeaway"`
	Sentiment   string `json:"sentiment"` // bullish, bearish, or neutral
	Model       string `json:"model"`
	WordCount   int    `json:"word_count"`
}

// KeyPoints is the structured output of ExtractKeyPoints.
type KeyPoints struct {
	Points []string `json:"key_points"`
	Model  string   `json:"model"`
}

// JSON schemas passed in the chat request's format field. Ollama constrains
// generation to match, so the message content decodes directly.
var summarySchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"summary": {"type": "string"},
		"key_takeaway": {"type": "string"},
		"sentiment": {"type": "string", "enum": ["bullish", "bearish", "neutral"]}
	},
	"required": ["summary", "key_takeaway", "sentiment"]
}`)

var keyPointsSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"points": {"type": "array", "items": {"type": "string"}}
	},
	"required": ["points"]
}`)

// Client is an Ollama API client.
type Client struct {
	http    *resty.Client
	baseURL string
	model   string
}

// NewClient creates a client for the Ollama server at baseURL.
func NewClient(baseURL, model string, timeout time.Duration) *Client {
	http := resty.New()
	http.SetTimeout(timeout)
	return &Client{
		http:    http,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
	}
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// Available reports whether the Ollama server answers.
func (c *Client) Available(ctx context.Context) bool {
	resp, err := c.http.R().SetContext(ctx).Get(c.baseURL + "/api/tags")
	return err == nil && resp.StatusCode() == 200
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string          `json:"model"`
	Messages []chatMessage   `json:"messages"`
	Stream   bool            `json:"stream"`
	Format   json.RawMessage `json:"format,omitempty"`
	Options  map[string]any  `json:"options,omitempty"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
	Error   string      `json:"error"`
}

// SummarizeArticle asks the model for an investor-focused summary of the
// article, capped at roughly maxWords words.
func (c *Client) SummarizeArticle(ctx context.Context, title, content string, maxWords int) (*Summary, error) {
	if content == "" {
		return nil, fmt.Errorf("no content to summarize")
	}
	if maxWords <= 0 {
		maxWords = 200
	}

	prompt := fmt.Sprintf(`Summarize this financial news article in approximately %d words. Focus on key facts and important details for stock investors. Be concise and objective.

Also determine the overall sentiment for investors as one of: bullish (positive for stock price), bearish (negative for stock price), or neutral.

Title: %s

Article:
%s`, maxWords, title, truncate(content, contentPreviewLen))

	raw, err := c.chat(ctx, prompt, summarySchema, map[string]any{
		"temperature": 0.7,
		"num_predict": 300,
	})
	if err != nil {
		return nil, err
	}

	var out Summary
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("ollama summary decode: %w", err)
	}
	out.Sentiment = strings.ToLower(out.Sentiment)
	out.Model = c.model
	out.WordCount = len(strings.Fields(out.Summary))
	return &out, nil
}

// ExtractKeyPoints asks the model for up to n key points from the article.
func (c *Client) ExtractKeyPoints(ctx context.Context, title, content string, n int) (*KeyPoints, error) {
	if content == "" {
		return nil, fmt.Errorf("no content provided")
	}
	if n <= 0 {
		n = 5
	}

	prompt := fmt.Sprintf(`Extract %d key points from this financial news article. Each point should be a concise statement about important information for investors.

Title: %s

Article:
%s`, n, title, truncate(content, contentPreviewLen))

	raw, err := c.chat(ctx, prompt, keyPointsSchema, map[string]any{
		"temperature": 0.5,
		"num_predict": 250,
	})
	if err != nil {
		return nil, err
	}

	var decoded struct {
		Points []string `json:"points"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("ollama key points decode: %w", err)
	}
	if len(decoded.Points) > n {
		decoded.Points = decoded.Points[:n]
	}
	return &KeyPoints{Points: decoded.Points, Model: c.model}, nil
}

// chat sends one user message and returns the raw assistant content.
func (c *Client) chat(ctx context.Context, prompt string, format json.RawMessage, options map[string]any) ([]byte, error) {
	req := chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Stream:   false,
		Format:   format,
		Options:  options,
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(c.baseURL + "/api/chat")
	if err != nil {
		return nil, fmt.Errorf("ollama chat: %w", err)
	}
	if resp.StatusCode() == 404 {
		return nil, fmt.Errorf("model %q not found, pull it with: ollama pull %s", c.model, c.model)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("ollama chat: status %d", resp.StatusCode())
	}

	var decoded chatResponse
	if err := json.Unmarshal(resp.Body(), &decoded); err != nil {
		return nil, fmt.Errorf("ollama response decode: %w", err)
	}
	if decoded.Error != "" {
		return nil, fmt.Errorf("ollama: %s", decoded.Error)
	}
	return []byte(decoded.Message.Content), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
