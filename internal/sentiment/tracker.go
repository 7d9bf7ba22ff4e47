package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"stocksurge/internal/model"
	"stocksurge/internal/notification"
)

const (
	defaultRedditBase = "https://www.reddit.com"
	bodyTruncateLen   = 500
)

// Matches $AAPL style cashtags and bare 2-5 letter uppercase words.
var tickerPattern = regexp.MustCompile(`\$([A-Za-z]{1,5})\b|\b([A-Z]{2,5})\b`)

// Tracker scans subreddits through Reddit's public JSON listings, extracts
// validated tickers, scores sentiment, and persists mentions.
type Tracker struct {
	http       *resty.Client
	baseURL    string
	store      *Store
	analyzer   *Analyzer
	validator  *Validator
	notifier   notification.Notifier
	minScore   int
	alertScore int
	limit      int
}

// TrackerOpts configures a Tracker.
type TrackerOpts struct {
	Store      *Store
	Validator  *Validator
	Notifier   notification.Notifier // nil disables activity alerts
	UserAgent  string
	MinScore   int // skip posts below this score
	AlertScore int // notify on stored posts at or above this score
	Limit      int // posts fetched per scan
	BaseURL    string
}

// NewTracker creates a tracker.
func NewTracker(opts TrackerOpts) *Tracker {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetHeader("User-Agent", opts.UserAgent)

	base := opts.BaseURL
	if base == "" {
		base = defaultRedditBase
	}
	limit := opts.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	alertScore := opts.AlertScore
	if alertScore <= 0 {
		alertScore = 500
	}
	return &Tracker{
		http:       client,
		baseURL:    strings.TrimRight(base, "/"),
		store:      opts.Store,
		analyzer:   NewAnalyzer(),
		validator:  opts.Validator,
		notifier:   opts.Notifier,
		minScore:   opts.MinScore,
		alertScore: alertScore,
		limit:      limit,
	}
}

// listing mirrors the subset of Reddit's listing response the tracker reads.
type listing struct {
	Data struct {
		Children []struct {
			Data post `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type post struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Permalink   string  `json:"permalink"`
	Subreddit   string  `json:"subreddit"`
	Author      string  `json:"author"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
	Stickied    bool    `json:"stickied"`
	IsSelf      bool    `json:"is_self"`
}

// ScanSubreddit fetches the subreddit's hot listing and stores any posts
// that mention at least one valid ticker. Returns the number of new
// mentions stored.
func (t *Tracker) ScanSubreddit(ctx context.Context, subreddit string) (int, error) {
	url := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", t.baseURL, subreddit, t.limit)
	resp, err := t.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return 0, fmt.Errorf("reddit fetch r/%s: %w", subreddit, err)
	}
	if resp.StatusCode() != 200 {
		return 0, fmt.Errorf("reddit fetch r/%s: status %d", subreddit, resp.StatusCode())
	}

	var l listing
	if err := json.Unmarshal(resp.Body(), &l); err != nil {
		return 0, fmt.Errorf("reddit parse r/%s: %w", subreddit, err)
	}

	stored := 0
	for _, child := range l.Data.Children {
		m, err := t.processPost(ctx, child.Data)
		if err != nil {
			log.Printf("[sentiment] r/%s post %s: %v", subreddit, child.Data.ID, err)
			continue
		}
		if m != nil {
			stored++
		}
	}
	return stored, nil
}

// processPost turns one listing entry into a stored mention, or nil when the
// post is skipped (stickied, low score, already seen, no valid tickers).
func (t *Tracker) processPost(ctx context.Context, p post) (*model.Mention, error) {
	if p.Stickied || p.Score < t.minScore {
		return nil, nil
	}
	if seen, err := t.store.Seen(ctx, p.ID); err != nil {
		return nil, err
	} else if seen {
		return nil, nil
	}

	body := ""
	if p.IsSelf {
		body = p.Selftext
	}
	tickers := t.validTickers(ctx, p.Title+" "+body)
	if len(tickers) == 0 {
		return nil, nil
	}

	score := t.analyzer.Score(p.Title + " " + body)
	if len(body) > bodyTruncateLen {
		body = body[:bodyTruncateLen]
	}

	m := model.Mention{
		PostID:      p.ID,
		Tickers:     tickers,
		Title:       p.Title,
		Body:        body,
		Subreddit:   p.Subreddit,
		Author:      authorOr(p.Author),
		Score:       p.Score,
		NumComments: p.NumComments,
		Sentiment:   score,
		Label:       t.analyzer.Label(score),
		Permalink:   "https://reddit.com" + p.Permalink,
		CreatedAt:   time.Unix(int64(p.CreatedUTC), 0).UTC(),
		ProcessedAt: time.Now().UTC(),
	}
	if err := t.store.Save(ctx, m); err != nil {
		return nil, err
	}
	log.Printf("[sentiment] stored %s (%s, %.2f) from r/%s",
		strings.Join(tickers, ","), m.Label, m.Sentiment, m.Subreddit)

	if t.notifier != nil && m.Score >= t.alertScore {
		alert := notification.Alert{
			Tickers:   m.Tickers,
			Title:     m.Title,
			Message:   fmt.Sprintf("r/%s post at %d upvotes", m.Subreddit, m.Score),
			Score:     m.Score,
			Sentiment: m.Label,
			Permalink: m.Permalink,
		}
		if err := t.notifier.Send(ctx, alert); err != nil {
			log.Printf("[sentiment] alert delivery failed: %v", err)
		}
	}
	return &m, nil
}

// validTickers extracts candidate symbols and keeps the validated ones,
// sorted for deterministic storage.
func (t *Tracker) validTickers(ctx context.Context, text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range ExtractCandidates(text) {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		if t.validator.IsValid(ctx, c) {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

// ExtractCandidates returns potential ticker symbols from free text:
// $-prefixed cashtags and bare 2-5 letter uppercase words. Validation is
// the caller's job.
func ExtractCandidates(text string) []string {
	if text == "" {
		return nil
	}
	matches := tickerPattern.FindAllStringSubmatch(text, -1)
	var out []string
	for _, m := range matches {
		ticker := m[1]
		if ticker == "" {
			ticker = m[2]
		}
		if ticker != "" {
			out = append(out, strings.ToUpper(ticker))
		}
	}
	return out
}

func authorOr(a string) string {
	if a == "" {
		return "[deleted]"
	}
	return a
}
