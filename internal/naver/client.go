// Package naver is a client for the Naver Open API news search.
package naver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/parkwoobin/News-temperature/internal/logger"
)

const defaultBaseURL = "https://openapi.naver.com/v1/search/news.json"

// maxPageSize is the API's upper bound per request.
const maxPageSize = 100

// ErrUnauthorized marks rejected client credentials.
var ErrUnauthorized = errors.New("naver: invalid client credentials")

// Item is one raw search result. Title and description may contain
// highlight markup; none of the fields is guaranteed well-formed.
type Item struct {
	Title        string `json:"title"`
	OriginalLink string `json:"originallink"`
	Link         string `json:"link"`
	Description  string `json:"description"`
	PubDate      string `json:"pubDate"`
}

type SearchResult struct {
	Total   int    `json:"total"`
	Start   int    `json:"start"`
	Display int    `json:"display"`
	Items   []Item `json:"items"`
}

type SearchOptions struct {
	Display  int
	Start    int
	Sort     string // "date" or "sim"
	DateFrom string // YYYYMMDD
	DateTo   string // YYYYMMDD
}

type Client struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client
	baseURL      string
	delay        time.Duration
}

// NewClient builds a search client. delay is the pause after every API
// request, the rate-limiting the API terms ask for.
func NewClient(clientID, clientSecret string, delay time.Duration) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		baseURL:      defaultBaseURL,
		delay:        delay,
	}
}

// Search runs a single page query.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("naver: empty query")
	}

	display := opts.Display
	if display <= 0 || display > maxPageSize {
		display = maxPageSize
	}
	start := opts.Start
	if start <= 0 {
		start = 1
	}
	sort := opts.Sort
	if sort == "" {
		sort = "date"
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("display", strconv.Itoa(display))
	params.Set("start", strconv.Itoa(start))
	params.Set("sort", sort)
	if opts.DateFrom != "" {
		params.Set("dateFrom", opts.DateFrom)
	}
	if opts.DateTo != "" {
		params.Set("dateTo", opts.DateTo)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("naver: build request: %w", err)
	}
	req.Header.Set("X-Naver-Client-Id", c.clientID)
	req.Header.Set("X-Naver-Client-Secret", c.clientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("naver: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("naver: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var result SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("naver: decode response: %w", err)
	}

	c.pause(ctx)
	return &result, nil
}

// SearchAll paginates until maxResults items are collected, the total
// is exhausted, or a short page signals the end.
func (c *Client) SearchAll(ctx context.Context, query string, maxResults int, opts SearchOptions) ([]Item, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("naver: empty query")
	}

	var all []Item
	start := 1
	display := maxPageSize

	for len(all) < maxResults {
		page := opts
		page.Display = display
		page.Start = start

		result, err := c.Search(ctx, query, page)
		if err != nil {
			if len(all) > 0 {
				logger.Warn("naver pagination aborted, returning partial results", "error", err, "collected", len(all))
				break
			}
			return nil, err
		}
		if len(result.Items) == 0 {
			break
		}

		all = append(all, result.Items...)

		if start+display > result.Total || len(result.Items) < display {
			break
		}
		start += display
	}

	if len(all) > maxResults {
		all = all[:maxResults]
	}
	return all, nil
}

// Verify checks the credential pair with a minimal one-result search.
// It returns ErrUnauthorized when the API rejects the pair; other
// failures are reported as-is so callers can decide to let them pass.
func (c *Client) Verify(ctx context.Context) error {
	_, err := c.Search(ctx, "테스트", SearchOptions{Display: 1, Start: 1, Sort: "date"})
	return err
}

// pause sleeps for the configured inter-request delay, giving up early
// when the context is cancelled.
func (c *Client) pause(ctx context.Context) {
	if c.delay <= 0 {
		return
	}
	t := time.NewTimer(c.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
