package sentiment

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"stocksurge/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "mentions.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mention(postID, ticker string, score int, sentiment float64, created time.Time) model.Mention {
	a := NewAnalyzer()
	return model.Mention{
		PostID:      postID,
		Tickers:     []string{ticker},
		Title:       "post " + postID,
		Subreddit:   "stocks",
		Author:      "tester",
		Score:       score,
		NumComments: 2,
		Sentiment:   sentiment,
		Label:       a.Label(sentiment),
		Permalink:   "https://reddit.com/r/stocks/" + postID,
		CreatedAt:   created,
		ProcessedAt: created,
	}
}

func TestStore_SaveIsIdempotent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	m := mention("a1", "AAPL", 50, 0.4, now)
	if err := store.Save(ctx, m); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, m); err != nil {
		t.Fatal(err)
	}

	seen, err := store.Seen(ctx, "a1")
	if err != nil || !seen {
		t.Fatalf("Seen: %v %v", seen, err)
	}

	rows, err := store.TickerMentions(ctx, "aapl", now.Add(-time.Hour), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d mentions, want 1 (dedup)", len(rows))
	}
	if rows[0].Title != "post a1" || rows[0].Label != "Bullish" {
		t.Errorf("row: %+v", rows[0])
	}
}

func TestStore_TrendingAggregation(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	seed := []model.Mention{
		mention("g1", "GME", 100, 0.8, now),
		mention("g2", "GME", 300, 0.4, now.Add(-time.Hour)),
		mention("a1", "AAPL", 50, -0.5, now),
		mention("old", "AAPL", 900, 0.9, now.Add(-48*time.Hour)),
	}
	for _, m := range seed {
		if err := store.Save(ctx, m); err != nil {
			t.Fatal(err)
		}
	}

	trending, err := store.Trending(ctx, now.Add(-24*time.Hour), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(trending) != 2 {
		t.Fatalf("got %d rows, want 2: %+v", len(trending), trending)
	}

	// GME leads on mention count; its top post is the highest-scored one.
	if trending[0].Ticker != "GME" || trending[0].Mentions != 2 {
		t.Errorf("top row: %+v", trending[0])
	}
	if trending[0].TopPost != "post g2" {
		t.Errorf("top post: %q", trending[0].TopPost)
	}
	if trending[0].Sentiment < 0.59 || trending[0].Sentiment > 0.61 {
		t.Errorf("avg sentiment: %.3f, want 0.6", trending[0].Sentiment)
	}

	// The 48h-old AAPL mention is outside the window.
	if trending[1].Ticker != "AAPL" || trending[1].Mentions != 1 {
		t.Errorf("second row: %+v", trending[1])
	}
	if trending[1].Label != "Bearish" {
		t.Errorf("AAPL label: %q", trending[1].Label)
	}
}
