// Package scraper fetches news articles and extracts their readable text.
package scraper

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"stocksurge/internal/model"
)

// Containers tried in order when locating the article body. The Yahoo
// selectors come first because finance links overwhelmingly point there.
var contentSelectors = []string{
	".caas-body",
	".article-wrap",
	"article",
	`[role="article"]`,
	".article-content",
	".article-body",
	".story-body",
	".post-content",
	".entry-content",
	"main",
}

// Stripped wholesale before text extraction.
var junkTags = []string{"script", "style", "aside", "nav", "header", "footer", "iframe", "form"}

// Word boundaries matter here: "ad-" must not match "read".
var junkClassPattern = regexp.MustCompile(
	`\bad-|\badvertisement\b|\bsocial\b|\bshare\b|\bcomment\b|\brelated\b|\bsidebar\b|\bnewsletter\b|\bpromo\b`)

const minParagraphLen = 15

// Scraper fetches article pages and extracts title, byline, and body text.
type Scraper struct {
	http *resty.Client
}

// New creates a scraper. userAgent is sent on every request; some news
// sites reject the default Go client string.
func New(userAgent string, timeout time.Duration) *Scraper {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", userAgent)
	client.SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	client.SetHeader("Accept-Language", "en-US,en;q=0.9")
	return &Scraper{http: client}
}

// Scrape fetches the URL and returns the extracted article.
func (s *Scraper) Scrape(ctx context.Context, url string) (*model.Article, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("article url cannot be empty")
	}

	resp, err := s.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch article: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("fetch article: status %d", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return nil, fmt.Errorf("parse article html: %w", err)
	}

	article := Extract(doc)
	article.URL = url
	return article, nil
}

// Extract pulls the article out of a parsed document. Exported so handlers
// and tests can run extraction over HTML from any source.
func Extract(doc *goquery.Document) *model.Article {
	content := extractContent(doc)
	return &model.Article{
		Title:       extractTitle(doc),
		Author:      extractAuthor(doc),
		PublishDate: extractPublishDate(doc),
		Content:     content,
		WordCount:   len(strings.Fields(content)),
	}
}

func extractContent(doc *goquery.Document) string {
	var container *goquery.Selection
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			container = sel
			break
		}
	}
	if container == nil {
		container = doc.Find("body").First()
	}
	if container.Length() == 0 {
		return ""
	}

	for _, tag := range junkTags {
		container.Find(tag).Remove()
	}
	container.Find("*").Each(func(_ int, sel *goquery.Selection) {
		if isJunk(sel) {
			sel.Remove()
		}
	})

	// Paragraphs and headings in document order. Hidden blocks are kept:
	// sites like Yahoo park the full article behind a collapsed div.
	var paragraphs []string
	seen := make(map[string]struct{})
	container.Find("p, h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		text := normalizeSpace(sel.Text())
		if len(text) < minParagraphLen {
			return
		}
		if _, dup := seen[text]; dup {
			return
		}
		seen[text] = struct{}{}
		if goquery.NodeName(sel)[0] == 'h' {
			paragraphs = append(paragraphs, "\n## "+text+"\n")
		} else {
			paragraphs = append(paragraphs, text)
		}
	})
	return strings.Join(paragraphs, "\n\n")
}

func isJunk(sel *goquery.Selection) bool {
	class, _ := sel.Attr("class")
	id, _ := sel.Attr("id")
	if class == "" && id == "" {
		return false
	}
	return junkClassPattern.MatchString(strings.ToLower(class + " " + id))
}

func extractTitle(doc *goquery.Document) string {
	if content, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && content != "" {
		return content
	}
	if t := normalizeSpace(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	return normalizeSpace(doc.Find("title").First().Text())
}

func extractAuthor(doc *goquery.Document) string {
	if content, ok := doc.Find(`meta[name="author"]`).Attr("content"); ok && content != "" {
		return content
	}
	for _, selector := range []string{".author", ".byline", `[rel="author"]`, `[itemprop="author"]`} {
		if t := normalizeSpace(doc.Find(selector).First().Text()); t != "" {
			return t
		}
	}
	return ""
}

func extractPublishDate(doc *goquery.Document) string {
	if content, ok := doc.Find(`meta[property="article:published_time"]`).Attr("content"); ok && content != "" {
		return content
	}
	timeEl := doc.Find("time").First()
	if dt, ok := timeEl.Attr("datetime"); ok && dt != "" {
		return dt
	}
	return normalizeSpace(timeEl.Text())
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
