package sentiment

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"stocksurge/internal/model"
)

// Store persists mentions to SQLite and serves the trending aggregations.
type Store struct {
	db *sql.DB
}

// OpenStore opens (and initializes) the mention database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	log.Printf("[sentiment] opened mention store at %s", path)
	return &Store{db: db}, nil
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS mentions (
			post_id      TEXT PRIMARY KEY,
			subreddit    TEXT NOT NULL,
			title        TEXT NOT NULL,
			body         TEXT,
			author       TEXT,
			score        INTEGER NOT NULL,
			num_comments INTEGER NOT NULL,
			sentiment    REAL NOT NULL,
			label        TEXT NOT NULL,
			permalink    TEXT,
			created_at   INTEGER NOT NULL,
			processed_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS mention_tickers (
			post_id TEXT NOT NULL,
			ticker  TEXT NOT NULL,
			PRIMARY KEY (post_id, ticker)
		);

		CREATE INDEX IF NOT EXISTS idx_mention_tickers_ticker ON mention_tickers(ticker);
		CREATE INDEX IF NOT EXISTS idx_mentions_created ON mentions(created_at);
	`)
	return err
}

// DB returns the underlying handle for health checks.
func (s *Store) DB() *sql.DB { return s.db }

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

// Seen reports whether a post was already processed.
func (s *Store) Seen(ctx context.Context, postID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM mentions WHERE post_id = ?`, postID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Save persists one mention and its ticker links in a transaction.
// Saving an already-seen post is a no-op.
func (s *Store) Save(ctx context.Context, m model.Mention) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO mentions
			(post_id, subreddit, title, body, author, score, num_comments,
			 sentiment, label, permalink, created_at, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.PostID, m.Subreddit, m.Title, m.Body, m.Author, m.Score, m.NumComments,
		m.Sentiment, m.Label, m.Permalink, m.CreatedAt.Unix(), m.ProcessedAt.Unix())
	if err != nil {
		return fmt.Errorf("insert mention: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil
	}

	for _, ticker := range m.Tickers {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO mention_tickers (post_id, ticker) VALUES (?, ?)`,
			m.PostID, strings.ToUpper(ticker)); err != nil {
			return fmt.Errorf("insert mention ticker: %w", err)
		}
	}
	return tx.Commit()
}

// Trending returns the most mentioned tickers since the cutoff, with average
// sentiment and the highest-scored post title per ticker.
func (s *Store) Trending(ctx context.Context, since time.Time, limit int) ([]model.TrendingTicker, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT mt.ticker,
		       COUNT(*)          AS mentions,
		       AVG(m.sentiment)  AS sentiment,
		       AVG(m.score)      AS avg_score,
		       (SELECT m2.title
		          FROM mentions m2
		          JOIN mention_tickers t2 ON t2.post_id = m2.post_id
		         WHERE t2.ticker = mt.ticker AND m2.created_at >= ?
		         ORDER BY m2.score DESC LIMIT 1) AS top_post
		  FROM mention_tickers mt
		  JOIN mentions m ON m.post_id = mt.post_id
		 WHERE m.created_at >= ?
		 GROUP BY mt.ticker
		 ORDER BY mentions DESC, avg_score DESC
		 LIMIT ?`,
		since.Unix(), since.Unix(), limit)
	if err != nil {
		return nil, fmt.Errorf("trending query: %w", err)
	}
	defer rows.Close()

	analyzer := NewAnalyzer()
	out := make([]model.TrendingTicker, 0, limit)
	for rows.Next() {
		var t model.TrendingTicker
		var avgScore float64
		var topPost sql.NullString
		if err := rows.Scan(&t.Ticker, &t.Mentions, &t.Sentiment, &avgScore, &topPost); err != nil {
			return nil, err
		}
		t.AvgScore = int(avgScore)
		t.Label = analyzer.Label(t.Sentiment)
		t.TopPost = topPost.String
		out = append(out, t)
	}
	return out, rows.Err()
}

// TickerMentions returns recent mentions of one ticker, newest first.
func (s *Store) TickerMentions(ctx context.Context, ticker string, since time.Time, limit int) ([]model.Mention, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.post_id, m.subreddit, m.title, m.body, m.author, m.score,
		       m.num_comments, m.sentiment, m.label, m.permalink,
		       m.created_at, m.processed_at
		  FROM mentions m
		  JOIN mention_tickers mt ON mt.post_id = m.post_id
		 WHERE mt.ticker = ? AND m.created_at >= ?
		 ORDER BY m.created_at DESC
		 LIMIT ?`,
		strings.ToUpper(ticker), since.Unix(), limit)
	if err != nil {
		return nil, fmt.Errorf("ticker mentions query: %w", err)
	}
	defer rows.Close()

	out := make([]model.Mention, 0, limit)
	for rows.Next() {
		var m model.Mention
		var created, processed int64
		if err := rows.Scan(&m.PostID, &m.Subreddit, &m.Title, &m.Body, &m.Author,
			&m.Score, &m.NumComments, &m.Sentiment, &m.Label, &m.Permalink,
			&created, &processed); err != nil {
			return nil, err
		}
		m.CreatedAt = time.Unix(created, 0).UTC()
		m.ProcessedAt = time.Unix(processed, 0).UTC()
		m.Tickers = []string{strings.ToUpper(ticker)}
		out = append(out, m)
	}
	return out, rows.Err()
}
