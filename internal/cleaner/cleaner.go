// Package cleaner strips non-article noise (captions, bylines, hashtags,
// UI labels, press-agency tags) from scraped Korean news text.
package cleaner

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var hashtagRe = regexp.MustCompile(`#\S+`)

// Inline caption attributions like "사진=연합뉴스".
var captionAttrRes = []*regexp.Regexp{
	regexp.MustCompile(`사진\s*[=:]\s*[가-힣a-zA-Z\s]+`),
	regexp.MustCompile(`그림\s*[=:]\s*[가-힣a-zA-Z\s]+`),
	regexp.MustCompile(`표\s*[=:]\s*[가-힣a-zA-Z\s]+`),
}

// Whole-line boilerplate: caption markers, related-article blocks,
// copyright footers, byline fragments.
var skipLineRes = []*regexp.Regexp{
	regexp.MustCompile(`^\[사진[=:]`),
	regexp.MustCompile(`^\[그림[=:]`),
	regexp.MustCompile(`^\[표[=:]`),
	regexp.MustCompile(`^\[캡션[=:]`),
	regexp.MustCompile(`^\[.*사진.*\]`),
	regexp.MustCompile(`^\[.*그림.*\]`),
	regexp.MustCompile(`^\[.*표.*\]`),
	regexp.MustCompile(`^\[.*캡션.*\]`),
	regexp.MustCompile(`^관련\s*기사`),
	regexp.MustCompile(`^댓글`),
	regexp.MustCompile(`^기자\s*[=:]`),
	regexp.MustCompile(`^제보`),
	regexp.MustCompile(`(?i)^Copyright`),
	regexp.MustCompile(`^©`),
	regexp.MustCompile(`^무단\s*전재`),
	regexp.MustCompile(`^재배포\s*금지`),
	regexp.MustCompile(`^기사\s*제보`),
	regexp.MustCompile(`^이\s*기사`),
	regexp.MustCompile(`^기사\s*내용`),
	regexp.MustCompile(`^\[.*기자.*\]`),
	regexp.MustCompile(`(?i)^.*@.*\.(com|kr|net)`),
	regexp.MustCompile(`^.*기자.*=`),
	regexp.MustCompile(`^.*특파원.*=`),
	regexp.MustCompile(`^.*인턴기자.*=`),
	regexp.MustCompile(`^.*기자.*기자`),
	regexp.MustCompile(`^.*기자.*특파원`),
	regexp.MustCompile(`^.*기자.*인턴`),
}

// UI chrome and footer keywords; any line containing one is dropped.
var skipKeywords = []string{
	"본문 요약",
	"현재위치",
	"지자체",
	"기자명",
	"입력",
	"바로가기",
	"복사하기",
	"본문 글씨",
	"글씨 줄이기",
	"글씨 키우기",
	"SNS",
	"페이스북",
	"트위터",
	"URL복사",
	"기사보내기",
	"공유하기",
	"관련 기사",
	"관련기사",
	"관련사진",
	"관련사진보기",
	"관련기사보기",
	"관련영상",
	"관련영상보기",
	"추천 기사",
	"추천기사",
	"추천기사보기",
	"댓글",
	"댓글보기",
	"좋아요",
	"더보기",
	"전체보기",
	"기자 =",
	"기자=",
	"특파원 =",
	"특파원=",
	"인턴기자 =",
	"인턴기자=",
	"Copyright",
	"©",
	"무단 전재",
	"재배포 금지",
	"기사 제보",
	"이 기사",
	"기사 내용",
	"클릭",
	"보기",
	"더 읽기",
	"전체 읽기",
}

var (
	bylineRe      = regexp.MustCompile(`[가-힣]+\s*[=:]?\s*[가-힣]*\s*기자`)
	bylineQuoteRe = regexp.MustCompile(`기자.*(말|보고|전망|분석|설명|밝혀|발표)`)
	emailRe       = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	urlRe         = regexp.MustCompile(`https?://[^\s]+`)
	uiVerbEndRe   = regexp.MustCompile(`(보기|클릭|읽기|확인|이동|더보기|전체보기|관련보기)$`)
	relatedViewRe = regexp.MustCompile(`관련(사진|기사|영상|뉴스)보기`)
	uiPrefixRe    = regexp.MustCompile(`^(관련|추천|더|전체|기사|뉴스|사진|영상).*(보기|클릭|읽기|확인|이동)`)
	bracketLineRe = regexp.MustCompile(`^\[(사진|그림|표|캡션|포토|이미지)[=:].*\]`)
	bracketOnlyRe = regexp.MustCompile(`^\[.*\]$`)
	korean3Re     = regexp.MustCompile(`[가-힣]{3,}`)
	korean10Re    = regexp.MustCompile(`[가-힣]{10,}`)
	roleRe        = regexp.MustCompile(`(?i)(^|[^A-Za-z가-힣])(CEO|대표|회장|사장|이사|부장|차장|과장|팀장|실장|본부장|그룹장|총괄|책임|담당)([^A-Za-z가-힣]|$)`)
	bodyStartRe   = regexp.MustCompile(`[가-힣]{5,}`)
)

const agencyNames = `뉴시스|연합뉴스|조선일보|중앙일보|동아일보|한겨레|경향신문|매일경제|한국경제|서울신문|세계일보|문화일보|국민일보|내일신문|헤럴드경제|아시아경제|이데일리|뉴스1|YTN|SBS|KBS|MBC|JTBC|채널A|TV조선|MBN|기자협회|AP|AFP|로이터|로이터통신|Reuters|AP통신`

var (
	agencyTagRe  = regexp.MustCompile(`(?i)\[(` + agencyNames + `)\]\s*`)
	agencyLineRe = regexp.MustCompile(`(?i)^\[(` + agencyNames + `)\]\s*`)
)

var parenCaptionRes = []*regexp.Regexp{
	regexp.MustCompile(`\(사진\s*[=:]\s*[^)]+\)`),
	regexp.MustCompile(`\(그림\s*[=:]\s*[^)]+\)`),
	regexp.MustCompile(`\(표\s*[=:]\s*[^)]+\)`),
}

var (
	bracketCaptionRe = regexp.MustCompile(`\[(사진|그림|표|캡션|포토|이미지)[=:][^\]]*\]`)
	sourceCaptionRe  = regexp.MustCompile(`\[.*\]\s*.*\(사진\s*[=:]\s*[^)]+\)`)
	uiVerbLineRe     = regexp.MustCompile(`(?m)^.*(보기|클릭|읽기|확인|이동|더보기|전체보기|관련보기)$`)
	photoCreditRe    = regexp.MustCompile(`[/]?\s*사진\s*제공\s*[=:][^\n]*`)
	providerSlashRe  = regexp.MustCompile(`[/]\s*[가-힣a-zA-Z\s]+\s*제공`)
	providerRe       = regexp.MustCompile(`[/]?\s*제공\s*[=:][^\n]*`)
	rolePhotoRe      = regexp.MustCompile(`(?i)[가-힣a-zA-Z\s]+\s+(CEO|대표|회장|사장|이사|부장|차장|과장|팀장|실장|본부장|그룹장|총괄|책임|담당)([^A-Za-z가-힣]|$)\s*[/]?\s*사진\s*제공\s*[=:][^\n]*`)
	renderCreditRe   = regexp.MustCompile(`[가-힣\s]+(조감도|사진|그림|표|이미지)[.]?\s*[/]\s*[가-힣a-zA-Z\s]+\s*제공`)
	renderSlashRe    = regexp.MustCompile(`[가-힣\s]+(조감도|사진|그림|표|이미지)[.]?\s*[/]\s*[가-힣a-zA-Z\s]+`)
)

var (
	newline3Re   = regexp.MustCompile(`\n\s*\n\s*\n+`)
	newline2Re   = regexp.MustCompile(`\n\s*\n+`)
	spaceRunRe   = regexp.MustCompile(` +`)
	wsRunRe      = regexp.MustCompile(`\s+`)
	photoCredit2 = regexp.MustCompile(`[/]?\s*사진\s*제공\s*[=:]`)
)

// Clean removes captions, bylines, hashtags, press-agency tags and UI
// chatter from raw article text. It never fails; the worst case is an
// empty string. Applying it twice gives the same result as once.
func Clean(text string) string {
	if text == "" {
		return text
	}

	original := text

	text = hashtagRe.ReplaceAllString(text, "")
	for _, re := range captionAttrRes {
		text = re.ReplaceAllString(text, "")
	}

	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || dropLine(line) {
			continue
		}
		kept = append(kept, line)
	}

	kept = trimToBody(kept)
	kept = cutAtByline(kept)

	cleaned := stripNoise(strings.Join(kept, "\n"))

	cleaned = newline3Re.ReplaceAllString(cleaned, "\n\n")
	cleaned = newline2Re.ReplaceAllString(cleaned, "\n")
	cleaned = spaceRunRe.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	// Second-chance footer cut after normalization.
	cleaned = strings.Join(cutAtByline(strings.Split(cleaned, "\n")), "\n")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return strings.TrimSpace(strings.Join(longLines(original), "\n"))
	}
	return cleaned
}

// dropLine reports whether a line is noise rather than article prose.
func dropLine(line string) bool {
	if hashtagRe.MatchString(line) {
		return true
	}
	for _, re := range captionAttrRes {
		if re.MatchString(line) {
			return true
		}
	}
	for _, re := range skipLineRes {
		if re.MatchString(line) {
			return true
		}
	}
	for _, kw := range skipKeywords {
		if strings.Contains(line, kw) {
			return true
		}
	}
	if bylineRe.MatchString(line) && !bylineQuoteRe.MatchString(line) {
		return true
	}
	if emailRe.MatchString(line) {
		return true
	}
	if urlRe.MatchString(line) && utf8.RuneCountInString(line) < 100 {
		return true
	}
	if uiVerbEndRe.MatchString(line) {
		return true
	}
	if relatedViewRe.MatchString(line) {
		return true
	}
	if utf8.RuneCountInString(line) < 10 && !korean3Re.MatchString(line) {
		return true
	}
	if uiPrefixRe.MatchString(line) {
		return true
	}
	if bracketLineRe.MatchString(line) {
		return true
	}
	if bracketOnlyRe.MatchString(line) && utf8.RuneCountInString(line) < 50 {
		return true
	}
	if agencyLineRe.MatchString(line) {
		return true
	}
	for _, re := range parenCaptionRes {
		if re.MatchString(line) {
			return true
		}
	}
	if sourceCaptionRe.MatchString(line) {
		return true
	}
	if photoCredit2.MatchString(line) {
		return true
	}
	if providerRe.MatchString(line) && utf8.RuneCountInString(line) < 100 {
		return true
	}
	if utf8.RuneCountInString(line) < 50 && roleRe.MatchString(line) && !korean10Re.MatchString(line) {
		return true
	}
	return false
}

// trimToBody skips leading non-body lines (headlines, lead-ins) until a
// line reads like prose: a run of five or more Korean characters plus a
// sentence-ending marker. Without such a line it falls back to every
// line of twenty or more characters.
func trimToBody(lines []string) []string {
	for i, line := range lines {
		if bodyStartRe.MatchString(line) && (strings.Contains(line, ".") || strings.Contains(line, "다")) {
			return lines[i:]
		}
	}
	var long []string
	for _, line := range lines {
		if utf8.RuneCountInString(line) >= 20 {
			long = append(long, line)
		}
	}
	return long
}

// cutAtByline truncates at the first byline line, treating everything
// from the byline onward as footer.
func cutAtByline(lines []string) []string {
	for i, line := range lines {
		if i == 0 {
			continue
		}
		if bylineRe.MatchString(line) && utf8.RuneCountInString(line) < 50 {
			return lines[:i]
		}
	}
	return lines
}

// longLines returns the pre-cleaning lines longer than twenty runes, the
// fallback when cleaning removed everything from plausible content.
func longLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) > 20 {
			out = append(out, line)
		}
	}
	return out
}

// stripNoise runs the global caption/credit regex passes over joined
// text, catching fragments that span what were multiple lines.
func stripNoise(text string) string {
	text = bracketCaptionRe.ReplaceAllString(text, "")
	for _, re := range parenCaptionRes {
		text = re.ReplaceAllString(text, "")
	}
	text = relatedViewRe.ReplaceAllString(text, "")
	text = uiVerbLineRe.ReplaceAllString(text, "")
	text = agencyTagRe.ReplaceAllString(text, "")
	text = sourceCaptionRe.ReplaceAllString(text, "")
	text = rolePhotoRe.ReplaceAllString(text, "")
	text = photoCreditRe.ReplaceAllString(text, "")
	text = renderCreditRe.ReplaceAllString(text, "")
	text = renderSlashRe.ReplaceAllString(text, "")
	text = providerSlashRe.ReplaceAllString(text, "")
	text = providerRe.ReplaceAllString(text, "")
	return text
}

var summaryBylineRe = regexp.MustCompile(`[가-힣]+\s*[=:]?\s*[가-힣]*\s*기자\s*[=:]`)

// CleanSummary post-processes summarizer output with the same global
// noise passes, collapses whitespace to single spaces, and rejects
// results under twenty runes by returning an empty string.
func CleanSummary(summary string) string {
	if summary == "" {
		return summary
	}

	summary = hashtagRe.ReplaceAllString(summary, "")
	for _, re := range captionAttrRes {
		summary = re.ReplaceAllString(summary, "")
	}
	summary = stripNoise(summary)
	summary = summaryBylineRe.ReplaceAllString(summary, "")

	summary = wsRunRe.ReplaceAllString(summary, " ")
	summary = strings.TrimSpace(summary)

	if utf8.RuneCountInString(summary) < 20 {
		return ""
	}
	return summary
}
