package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// TrackerConfig configures the Reddit sentiment tracker: which subreddits to
// scan, how often, and what to filter. Loaded from a YAML file with
// environment overrides; a missing file falls back to defaults.
type TrackerConfig struct {
	Subreddits     []string `yaml:"subreddits"`
	MinScore       int      `yaml:"min_score"`
	PostsPerScan   int      `yaml:"posts_per_scan"`
	Cron           string   `yaml:"cron"`
	ExtraBlacklist []string `yaml:"extra_blacklist"`
}

// LoadTracker reads the tracker configuration from path.
func LoadTracker(path string) (*TrackerConfig, error) {
	cfg := &TrackerConfig{
		Subreddits:   []string{"wallstreetbets", "stocks", "investing", "StockMarket"},
		MinScore:     10,
		PostsPerScan: 50,
		Cron:         "@every 15m",
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read tracker config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse tracker config: %w", err)
		}
	}

	if v := os.Getenv("REDDIT_SUBREDDITS"); v != "" {
		cfg.Subreddits = strings.Split(v, "+")
	}
	if v := os.Getenv("REDDIT_MIN_SCORE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MinScore = n
		}
	}
	if v := os.Getenv("TRACKER_CRON"); v != "" {
		cfg.Cron = v
	}
	return cfg, nil
}
