package scraper

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/parkwoobin/News-temperature/internal/logger"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// bodySelectors covers Naver news first, then the major Korean outlets,
// then generic article containers as a last resort.
var bodySelectors = []string{
	"#newsct_article",
	"#newsEndContents",
	".news_end_body_body",
	"._article_body_contents",
	"#articleBodyContents",
	"#article-view-content-div",
	".article-view-content",
	".article-body",
	".article_content",
	"#article_content",
	".article-body-content",
	"#article-body",
	".article-body-text",
	"article .content",
	"article .body",
	"div[id*=article][id*=body]",
	"div[id*=article][id*=content]",
	"div[class*=article][class*=body]",
	"div[class*=article][class*=content]",
	"article",
	"div[id*=article]",
	"div[class*=article-body]",
	"div[class*=article-content]",
}

var titleSelectors = []string{
	`meta[property="og:title"]`,
	`meta[name="twitter:title"]`,
	"title",
	"h1.media_end_head_headline",
	"h1.end_tit",
	".article_info h3",
	".article-header h1",
	"h1.article-title",
	"h1",
}

var viewCountSelectors = []string{
	".media_end_head_info_view_count",
	"#viewCount",
	".view_count",
	"[class*=view]",
	"[id*=view]",
}

// uiClassKeywords flags share buttons, menus, ads and other chrome that
// sits inside article containers on most outlet pages.
var uiClassKeywords = []string{
	"button", "btn", "menu", "nav", "header", "footer",
	"sidebar", "aside", "toolbar", "tool-bar",
	"share", "sns", "social", "comment", "reply",
	"ad", "advertisement", "sponsor", "promo", "banner",
	"related", "recommend", "recommended", "more", "more-news",
	"current", "location", "breadcrumb", "bread-crumb",
	"font-size", "font-size-control", "text-size",
	"copy", "url-copy", "clipboard",
	"print", "email", "facebook", "twitter", "kakao",
}

var uiTextPatterns = []string{
	"현재위치", "지자체", "기자명", "입력", "바로가기",
	"복사하기", "본문 글씨", "SNS", "페이스북", "트위터",
	"URL복사", "기사보내기", "공유하기", "댓글", "좋아요",
	"관련기사", "관련사진", "관련사진보기", "관련기사보기",
	"관련영상", "관련영상보기", "추천기사", "추천기사보기",
	"댓글보기", "더보기", "전체보기", "더 읽기", "전체 읽기",
	"보기", "클릭", "확인", "이동",
}

var (
	relatedViewRe   = regexp.MustCompile(`관련(사진|기사|영상|뉴스)보기`)
	uiVerbTailRe    = regexp.MustCompile(`(보기|클릭|읽기|확인|이동|더보기|전체보기|관련보기)$`)
	dateOnlyRe      = regexp.MustCompile(`^\d{4}\.\d{2}\.\d{2}`)
	viewLabelRe     = regexp.MustCompile(`조회\s*(\d+)`)
	viewScriptRe    = regexp.MustCompile(`(?:viewCount|view_count|조회수)[\s:=]+(\d+)`)
	digitsRe        = regexp.MustCompile(`\d+`)
	junkTagSelector = "script, style, iframe, noscript, svg, nav, header, footer"
)

// Scraper fetches article pages and extracts body text, titles and view
// counts. The search API only carries snippets, so the body has to come
// from the page itself.
type Scraper struct {
	httpClient *http.Client
	minBodyLen int
}

// New returns a Scraper. minBodyLen is the shortest extraction (in
// runes) still treated as a real article body.
func New(timeout time.Duration, minBodyLen int) *Scraper {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if minBodyLen <= 0 {
		minBodyLen = 50
	}
	return &Scraper{
		httpClient: &http.Client{Timeout: timeout},
		minBodyLen: minBodyLen,
	}
}

func (s *Scraper) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// FullText extracts the article body from url. Returns an error when no
// container yields at least minBodyLen runes of text.
func (s *Scraper) FullText(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("empty URL")
	}

	doc, err := s.fetch(ctx, url)
	if err != nil {
		return "", err
	}

	var container *goquery.Selection
	for _, selector := range bodySelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		// Containers shorter than 200 runes are usually teasers or
		// comment widgets, keep looking.
		if utf8.RuneCountInString(strings.TrimSpace(sel.Text())) > 200 {
			container = sel
			break
		}
	}
	if container == nil {
		return "", fmt.Errorf("no article body found at %s", url)
	}

	container.Find(junkTagSelector).Remove()
	removeUIElements(container)

	text := extractText(container)
	if utf8.RuneCountInString(text) < s.minBodyLen {
		return "", fmt.Errorf("article body too short at %s", url)
	}

	logger.Debug("extracted article body", "url", url, "length", utf8.RuneCountInString(text))
	return text, nil
}

// removeUIElements drops nodes whose class, id or short text marks them
// as page chrome rather than body copy.
func removeUIElements(container *goquery.Selection) {
	container.Find("div, section, aside, span, a, button").Each(func(_ int, sel *goquery.Selection) {
		class, _ := sel.Attr("class")
		id, _ := sel.Attr("id")
		classLower := strings.ToLower(class)
		idLower := strings.ToLower(id)

		for _, keyword := range uiClassKeywords {
			if strings.Contains(classLower, keyword) || strings.Contains(idLower, keyword) {
				sel.Remove()
				return
			}
		}

		text := strings.TrimSpace(sel.Text())
		n := utf8.RuneCountInString(text)
		if n < 50 {
			for _, pattern := range uiTextPatterns {
				if strings.Contains(text, pattern) {
					sel.Remove()
					return
				}
			}
		}
		if relatedViewRe.MatchString(text) {
			sel.Remove()
			return
		}
		if n < 30 && uiVerbTailRe.MatchString(text) {
			sel.Remove()
			return
		}
		if n < 30 && dateOnlyRe.MatchString(text) {
			sel.Remove()
		}
	})
}

// extractText walks the container's block elements and joins their text
// with newlines so line-based cleaning can run on the result.
func extractText(container *goquery.Selection) string {
	var lines []string
	container.Find("p, div").Each(func(_ int, sel *goquery.Selection) {
		// Skip wrappers, only leaf-ish nodes carry paragraph text.
		if sel.Find("p, div").Length() > 0 {
			return
		}
		text := strings.TrimSpace(sel.Text())
		if text != "" {
			lines = append(lines, text)
		}
	})
	if len(lines) == 0 {
		return strings.TrimSpace(container.Text())
	}
	return strings.Join(lines, "\n")
}

// Title extracts the article title, preferring OpenGraph metadata over
// page headings.
func (s *Scraper) Title(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("empty URL")
	}

	doc, err := s.fetch(ctx, url)
	if err != nil {
		return "", err
	}

	for _, selector := range titleSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		var title string
		if strings.HasPrefix(selector, "meta") {
			title, _ = sel.Attr("content")
		} else {
			title = sel.Text()
		}
		title = strings.TrimSpace(title)
		if title != "" {
			return title, nil
		}
	}
	return "", fmt.Errorf("no title found at %s", url)
}

// ViewCount extracts the view counter from an article page. Returns 0
// when no counter is present, which most outlet pages do not expose.
func (s *Scraper) ViewCount(ctx context.Context, url string) int {
	if url == "" {
		return 0
	}

	doc, err := s.fetch(ctx, url)
	if err != nil {
		logger.Debug("view count fetch failed", "url", url, "error", err)
		return 0
	}

	if m := viewLabelRe.FindStringSubmatch(doc.Text()); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}

	for _, selector := range viewCountSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		text := strings.ReplaceAll(sel.Text(), ",", "")
		if m := digitsRe.FindString(text); m != "" {
			if n, err := strconv.Atoi(m); err == nil {
				return n
			}
		}
	}

	found := 0
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if m := viewScriptRe.FindStringSubmatch(sel.Text()); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				found = n
				return false
			}
		}
		return true
	})
	return found
}
