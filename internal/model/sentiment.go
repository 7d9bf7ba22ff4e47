package model

import "time"

// Mention is one Reddit post that referenced at least one valid ticker.
type Mention struct {
	PostID      string    `json:"post_id"`
	Tickers     []string  `json:"tickers"`
	Title       string    `json:"title"`
	Body        string    `json:"body,omitempty"` // truncated to 500 chars at capture
	Subreddit   string    `json:"subreddit"`
	Author      string    `json:"author"`
	Score       int       `json:"score"`
	NumComments int       `json:"num_comments"`
	Sentiment   float64   `json:"sentiment_score"`
	Label       string    `json:"sentiment_label"`
	Permalink   string    `json:"permalink"`
	CreatedAt   time.Time `json:"created_utc"`
	ProcessedAt time.Time `json:"processed_at"`
}

// TrendingTicker is one row of the trending aggregation: mention volume and
// average sentiment for a ticker inside a time window.
type TrendingTicker struct {
	Ticker    string  `json:"ticker"`
	Mentions  int     `json:"mentions"`
	Sentiment float64 `json:"sentiment"`
	Label     string  `json:"sentiment_label"`
	AvgScore  int     `json:"avg_score"`
	TopPost   string  `json:"top_post,omitempty"`
}
