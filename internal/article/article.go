package article

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/parkwoobin/News-temperature/internal/cleaner"
	"github.com/parkwoobin/News-temperature/internal/logger"
	"github.com/parkwoobin/News-temperature/internal/metrics"
	"github.com/parkwoobin/News-temperature/internal/naver"
	"github.com/parkwoobin/News-temperature/internal/sentiment"
)

const unknownSource = "알 수 없음"

// Record is one assembled article as returned to the frontend.
type Record struct {
	Title        string            `json:"title"`
	Link         string            `json:"link"`
	OriginalLink string            `json:"originallink"`
	Source       string            `json:"source"`
	PubDate      string            `json:"pubDate"`
	Description  string            `json:"description"`
	ViewCount    int               `json:"view_count"`
	Summary      string            `json:"text"`
	FullText     string            `json:"-"`
	Sentiment    *sentiment.Result `json:"sentiment,omitempty"`
}

// Searcher pages through the news search API.
type Searcher interface {
	SearchAll(ctx context.Context, query string, maxResults int, opts naver.SearchOptions) ([]naver.Item, error)
}

// PageReader pulls body text, titles and view counts from article pages.
type PageReader interface {
	FullText(ctx context.Context, url string) (string, error)
	Title(ctx context.Context, url string) (string, error)
	ViewCount(ctx context.Context, url string) int
}

// Summarizer condenses article bodies for display.
type Summarizer interface {
	Summarize(ctx context.Context, text string) string
}

// CollectOptions controls one assembly run.
type CollectOptions struct {
	Query      string
	MaxResults int
	Days       int
	SortBy     string // "date" or "view"
}

// Assembler turns search results into display-ready records: it scrapes
// bodies, summarizes them and optionally attaches sentiment.
type Assembler struct {
	searcher   Searcher
	pages      PageReader
	summarizer Summarizer
	scorer     sentiment.Scorer
	delay      time.Duration
}

// New returns an Assembler. scorer may be nil, in which case records
// carry no sentiment.
func New(searcher Searcher, pages PageReader, summarizer Summarizer, scorer sentiment.Scorer, delay time.Duration) *Assembler {
	return &Assembler{
		searcher:   searcher,
		pages:      pages,
		summarizer: summarizer,
		scorer:     scorer,
		delay:      delay,
	}
}

var (
	boldTagRe   = regexp.MustCompile(`</?b>`)
	hashtagRe   = regexp.MustCompile(`#\S+`)
	wsRe        = regexp.MustCompile(`\s+`)
	hangulRe    = regexp.MustCompile(`[가-힣]`)
	latinRe     = regexp.MustCompile(`[a-zA-Z]`)
	leadZeroMon = regexp.MustCompile(`0(\d)월`)
	leadZeroDay = regexp.MustCompile(`0(\d)일`)
	tzSuffixRe  = regexp.MustCompile(`\s*[+-]\d{4}$`)
)

// Collect runs one search-and-assemble pass. Body extraction can fail
// per article, so twice the requested count is fetched up front and
// assembly stops once MaxResults records are ready.
func (a *Assembler) Collect(ctx context.Context, opts CollectOptions) ([]Record, error) {
	if strings.TrimSpace(opts.Query) == "" {
		return nil, fmt.Errorf("empty query")
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 10
	}
	if opts.Days <= 0 {
		opts.Days = 1
	}

	sortParam := "sim"
	if opts.SortBy == "date" {
		sortParam = "date"
	}

	now := time.Now()
	searchOpts := naver.SearchOptions{
		Sort:     sortParam,
		DateFrom: now.AddDate(0, 0, -opts.Days).Format("20060102"),
		DateTo:   now.Format("20060102"),
	}

	items, err := a.searcher.SearchAll(ctx, opts.Query, opts.MaxResults*2, searchOpts)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	var records []Record
	for _, item := range items {
		if len(records) >= opts.MaxResults {
			break
		}
		if err := ctx.Err(); err != nil {
			return records, err
		}

		rec := a.assemble(ctx, item)
		if rec == nil {
			continue
		}
		records = append(records, *rec)
		metrics.Global.IncrementArticlesCrawled()
	}

	sortRecords(records, opts.SortBy)
	return records, nil
}

// assemble builds one record. Returns nil when the article is filtered
// out (English-only content).
func (a *Assembler) assemble(ctx context.Context, item naver.Item) *Record {
	rec := &Record{
		Title:        normalizeText(item.Title),
		Link:         item.Link,
		OriginalLink: item.OriginalLink,
		Source:       sourceFromLink(item.OriginalLink),
		PubDate:      formatDateKorean(item.PubDate),
		Description:  normalizeText(item.Description),
	}

	link := rec.OriginalLink
	if link == "" {
		link = rec.Link
	}

	// Search results truncate long titles, refetch from the page.
	if link != "" && (strings.HasSuffix(rec.Title, "...") || strings.HasSuffix(rec.Title, "…")) {
		if full, err := a.pages.Title(ctx, link); err == nil && full != "" {
			rec.Title = normalizeText(full)
		}
	}

	if link != "" {
		rec.ViewCount = a.pages.ViewCount(ctx, link)
		a.pause(ctx)
	}

	fullText, err := a.fullText(ctx, link)
	if err != nil {
		logger.Debug("body extraction failed, falling back to description", "link", link, "error", err)
		metrics.Global.IncrementFailedExtractions()
		fullText = rec.Description
	}

	if fullText != "" {
		rec.FullText = cleaner.Clean(fullText)
		rec.Summary = a.summarizer.Summarize(ctx, fullText)
		if rec.Summary != "" {
			metrics.Global.IncrementArticlesSummarized()
		}
	}
	a.pause(ctx)

	if isEnglishArticle(rec.Title, rec.Description, rec.Summary) {
		logger.Debug("skipping English-only article", "title", rec.Title)
		metrics.Global.IncrementEnglishFiltered()
		return nil
	}

	if a.scorer != nil {
		text := rec.FullText
		if text == "" {
			text = rec.Description
		}
		result := a.scorer.Score(ctx, text)
		rec.Sentiment = &result
		metrics.Global.IncrementArticlesScored()
	}

	return rec
}

func (a *Assembler) fullText(ctx context.Context, link string) (string, error) {
	if link == "" {
		return "", fmt.Errorf("no link to scrape")
	}
	return a.pages.FullText(ctx, link)
}

func (a *Assembler) pause(ctx context.Context) {
	if a.delay <= 0 {
		return
	}
	timer := time.NewTimer(a.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func sortRecords(records []Record, sortBy string) {
	switch sortBy {
	case "view":
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].ViewCount > records[j].ViewCount
		})
	case "date":
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].PubDate > records[j].PubDate
		})
	}
}

// normalizeText strips the search API's bold markers, HTML entities and
// hashtags from titles and descriptions.
func normalizeText(s string) string {
	s = boldTagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = hashtagRe.ReplaceAllString(s, "")
	return strings.TrimSpace(wsRe.ReplaceAllString(s, " "))
}

func sourceFromLink(link string) string {
	if link == "" {
		return unknownSource
	}
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return unknownSource
	}
	return strings.TrimPrefix(u.Host, "www.")
}

var pubDateLayouts = []string{
	"Mon, 02 Jan 2006 15:04:05 -0700",
	"Mon, 02 Jan 2006 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// formatDateKorean renders an RFC 1123 style date as "2025년 12월 11일
// 00:23". Unparseable input is returned unchanged.
func formatDateKorean(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return unknownSource
	}

	var parsed time.Time
	var ok bool
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			parsed, ok = t, true
			break
		}
	}
	if !ok {
		trimmed := tzSuffixRe.ReplaceAllString(s, "")
		if t, err := time.Parse("Mon, 02 Jan 2006 15:04:05", trimmed); err == nil {
			parsed, ok = t, true
		}
	}
	if !ok {
		return s
	}

	out := parsed.Format("2006년 01월 02일 15:04")
	out = leadZeroMon.ReplaceAllString(out, "${1}월")
	out = leadZeroDay.ReplaceAllString(out, "${1}일")
	return out
}

// isEnglishArticle reports whether the article carries no Hangul at all
// and is mostly Latin letters.
func isEnglishArticle(title, description, text string) bool {
	content := strings.TrimSpace(title + " " + description + " " + text)
	if content == "" {
		return false
	}
	if hangulRe.MatchString(content) {
		return false
	}

	compact := strings.ReplaceAll(content, " ", "")
	if len(compact) == 0 {
		return false
	}
	latin := len(latinRe.FindAllString(content, -1))
	return float64(latin)/float64(len([]rune(compact))) > 0.7
}
