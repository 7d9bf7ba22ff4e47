package model

// Article is scraped news article content with whatever metadata the page
// exposed. Missing metadata stays empty rather than guessed.
type Article struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Author      string `json:"author,omitempty"`
	PublishDate string `json:"publish_date,omitempty"`
	Content     string `json:"content"`
	WordCount   int    `json:"word_count"`
}
