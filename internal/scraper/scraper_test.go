package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestScraper() *Scraper {
	return New(5*time.Second, 50)
}

func serveHTML(t *testing.T, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, html)
	}))
	t.Cleanup(srv.Close)
	return srv
}

const longParagraph = "정부는 이번 조치로 국내 경기가 완만한 회복 흐름을 이어갈 것으로 내다봤다. 관계 부처는 세부 시행 계획을 다음 달까지 확정하기로 했으며 업계에서도 긍정적인 반응이 나오고 있다. 전문가들은 추가 대책이 뒤따라야 한다고 지적했다."

func TestFullText_NaverArticle(t *testing.T) {
	html := `<html><body>
<div id="newsct_article">
<p>` + longParagraph + `</p>
<p>` + longParagraph + `</p>
<script>var tracker = 1;</script>
<div class="media_end_head_share">공유하기</div>
</div>
</body></html>`
	srv := serveHTML(t, html)

	got, err := newTestScraper().FullText(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FullText returned error: %v", err)
	}
	if !strings.Contains(got, "완만한 회복 흐름") {
		t.Errorf("body text missing from extraction: %q", got)
	}
	if strings.Contains(got, "tracker") {
		t.Errorf("script text leaked into extraction: %q", got)
	}
	if strings.Contains(got, "공유하기") {
		t.Errorf("share widget leaked into extraction: %q", got)
	}
}

func TestFullText_FallsThroughShortContainers(t *testing.T) {
	html := `<html><body>
<div class="article-body">짧은 요약문</div>
<article><p>` + longParagraph + `</p><p>` + longParagraph + `</p></article>
</body></html>`
	srv := serveHTML(t, html)

	got, err := newTestScraper().FullText(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FullText returned error: %v", err)
	}
	if !strings.Contains(got, "완만한 회복 흐름") {
		t.Errorf("expected fallback to article element, got %q", got)
	}
}

func TestFullText_TooShortIsError(t *testing.T) {
	srv := serveHTML(t, `<html><body><div id="newsct_article">`+longParagraph+`</div></body></html>`)

	s := New(5*time.Second, 10000)
	if _, err := s.FullText(context.Background(), srv.URL); err == nil {
		t.Error("expected error for body below minimum length")
	}
}

func TestFullText_NoContainerIsError(t *testing.T) {
	srv := serveHTML(t, `<html><body><p>본문 없음</p></body></html>`)

	if _, err := newTestScraper().FullText(context.Background(), srv.URL); err == nil {
		t.Error("expected error when no article container matches")
	}
}

func TestFullText_RemovesUIChatter(t *testing.T) {
	html := `<html><body><div id="newsct_article">
<p>` + longParagraph + `</p>
<a href="#">관련기사보기</a>
<span>2025.12.11 01:51</span>
<div>더보기</div>
</div></body></html>`
	srv := serveHTML(t, html)

	got, err := newTestScraper().FullText(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FullText returned error: %v", err)
	}
	for _, junk := range []string{"관련기사보기", "2025.12.11", "더보기"} {
		if strings.Contains(got, junk) {
			t.Errorf("UI chatter %q survived extraction: %q", junk, got)
		}
	}
}

func TestTitle_PrefersOpenGraph(t *testing.T) {
	html := `<html><head>
<meta property="og:title" content="정부, 경기 부양책 발표">
<title>뉴스 포털 - 기사</title>
</head><body><h1>다른 제목</h1></body></html>`
	srv := serveHTML(t, html)

	got, err := newTestScraper().Title(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Title returned error: %v", err)
	}
	if got != "정부, 경기 부양책 발표" {
		t.Errorf("Title = %q, want og:title content", got)
	}
}

func TestTitle_FallsBackToHeading(t *testing.T) {
	html := `<html><head></head><body><h1 class="media_end_head_headline">헤드라인 제목</h1></body></html>`
	srv := serveHTML(t, html)

	got, err := newTestScraper().Title(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Title returned error: %v", err)
	}
	if got != "헤드라인 제목" {
		t.Errorf("Title = %q, want heading text", got)
	}
}

func TestViewCount_FromLabel(t *testing.T) {
	srv := serveHTML(t, `<html><body><span>조회 1234</span></body></html>`)

	if got := newTestScraper().ViewCount(context.Background(), srv.URL); got != 1234 {
		t.Errorf("ViewCount = %d, want 1234", got)
	}
}

func TestViewCount_FromSelector(t *testing.T) {
	srv := serveHTML(t, `<html><body><span class="media_end_head_info_view_count">5,678</span></body></html>`)

	if got := newTestScraper().ViewCount(context.Background(), srv.URL); got != 5678 {
		t.Errorf("ViewCount = %d, want 5678", got)
	}
}

func TestViewCount_FromScript(t *testing.T) {
	srv := serveHTML(t, `<html><body><p>기사 본문</p><script>var viewCount = 42;</script></body></html>`)

	if got := newTestScraper().ViewCount(context.Background(), srv.URL); got != 42 {
		t.Errorf("ViewCount = %d, want 42", got)
	}
}

func TestViewCount_MissingIsZero(t *testing.T) {
	srv := serveHTML(t, `<html><body><p>조회수 표시가 없는 기사</p></body></html>`)

	if got := newTestScraper().ViewCount(context.Background(), srv.URL); got != 0 {
		t.Errorf("ViewCount = %d, want 0", got)
	}
}
