package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	SearchRequests      int64
	ArticlesCrawled     int64
	ArticlesSummarized  int64
	ArticlesScored      int64
	FailedExtractions   int64
	EnglishFiltered     int64
	LoginAttempts       int64
	FailedLogins        int64

	// Timings
	LastSearchTime    time.Duration
	AverageSearchTime time.Duration
	TotalSearchTime   time.Duration
	SearchCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementSearchRequests() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SearchRequests++
}

func (m *Metrics) IncrementArticlesCrawled() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesCrawled++
}

func (m *Metrics) IncrementArticlesSummarized() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesSummarized++
}

func (m *Metrics) IncrementArticlesScored() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesScored++
}

func (m *Metrics) IncrementFailedExtractions() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FailedExtractions++
}

func (m *Metrics) IncrementEnglishFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EnglishFiltered++
}

func (m *Metrics) IncrementLoginAttempts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoginAttempts++
}

func (m *Metrics) IncrementFailedLogins() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FailedLogins++
}

func (m *Metrics) RecordSearchTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastSearchTime = duration
	m.TotalSearchTime += duration
	m.SearchCount++

	if m.SearchCount > 0 {
		m.AverageSearchTime = m.TotalSearchTime / time.Duration(m.SearchCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"search_requests":        m.SearchRequests,
		"articles_crawled":       m.ArticlesCrawled,
		"articles_summarized":    m.ArticlesSummarized,
		"articles_scored":        m.ArticlesScored,
		"failed_extractions":     m.FailedExtractions,
		"english_filtered":       m.EnglishFiltered,
		"login_attempts":         m.LoginAttempts,
		"failed_logins":          m.FailedLogins,
		"last_search_time_ms":    m.LastSearchTime.Milliseconds(),
		"average_search_time_ms": m.AverageSearchTime.Milliseconds(),
		"last_run_time":          m.LastRunTime.Format(time.RFC3339),
		"last_error_time":        m.LastErrorTime.Format(time.RFC3339),
		"last_error":             m.LastError,
		"is_healthy":             m.IsHealthy,
	}
}
