package cleaner

import (
	"strings"
	"testing"
)

const sampleArticle = "삼성전자가 3분기 실적을 발표했다.\n" +
	"영업이익은 전년 대비 크게 증가했으며 반도체 부문이 실적 개선을 이끌었다.\n" +
	"회사 측은 내년에도 수요가 견조할 것으로 전망한다고 밝혔다.\n" +
	"서울=홍길동 기자\n" +
	"hong@example.com\n" +
	"무단 전재 및 재배포 금지"

func TestClean_RemovesBylineAndFooter(t *testing.T) {
	out := Clean(sampleArticle)
	if strings.Contains(out, "기자") {
		t.Errorf("byline survived cleaning: %q", out)
	}
	if strings.Contains(out, "@example.com") {
		t.Errorf("email survived cleaning: %q", out)
	}
	if strings.Contains(out, "무단 전재") {
		t.Errorf("copyright footer survived cleaning: %q", out)
	}
	if !strings.Contains(out, "3분기 실적을 발표했다") {
		t.Errorf("article prose was lost: %q", out)
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		sampleArticle,
		"[연합뉴스] 행사장 전경. (사진=연합뉴스)\n정부가 오늘 새로운 정책을 발표했다.\n전문가들은 이번 조치가 시장에 긍정적인 영향을 줄 것으로 분석했다.",
		"#속보 #경제\n한국은행이 기준금리를 동결했다.\n물가 상승세가 둔화되고 있다는 판단에 따른 것이다.",
		"",
	}
	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Errorf("cleaning is not idempotent:\nonce:  %q\ntwice: %q", once, twice)
		}
	}
}

func TestClean_RemovesCaptionLines(t *testing.T) {
	in := "사진=연합뉴스\n정부가 오늘 새로운 부동산 대책을 발표했다.\n[연합뉴스] 발표 현장 모습"
	out := Clean(in)
	if strings.Contains(out, "사진=") {
		t.Errorf("caption attribution survived: %q", out)
	}
	if strings.Contains(out, "[연합뉴스]") {
		t.Errorf("agency tag survived: %q", out)
	}
	if !strings.Contains(out, "부동산 대책을 발표했다") {
		t.Errorf("prose was lost: %q", out)
	}
}

func TestClean_RemovesHashtagsAndUIChatter(t *testing.T) {
	in := "#뉴스 #실시간\n관련기사보기\n더보기\n대통령이 오늘 국무회의에서 새 예산안을 논의했다고 발표했다."
	out := Clean(in)
	if strings.Contains(out, "#") {
		t.Errorf("hashtag survived: %q", out)
	}
	if strings.Contains(out, "보기") {
		t.Errorf("UI chatter survived: %q", out)
	}
}

func TestClean_BodyStartSkipsLeadIn(t *testing.T) {
	in := "포토\n행사 안내\n올해 첫 수출 실적이 발표되면서 업계의 관심이 집중되고 있다.\n수출액은 전년 동기 대비 10% 늘었다."
	out := Clean(in)
	if strings.HasPrefix(out, "포토") || strings.HasPrefix(out, "행사 안내") {
		t.Errorf("lead-in lines were not skipped: %q", out)
	}
	if !strings.Contains(out, "수출 실적이 발표되면서") {
		t.Errorf("body start line missing: %q", out)
	}
}

func TestClean_TruncatesAtMidBodyByline(t *testing.T) {
	// The byline line quotes the reporter, so the line filter keeps it
	// and the footer cut has to catch it instead.
	in := "정부가 오늘 신규 지원 정책을 발표했다.\n지원 대상은 중소기업 전반으로 확대된다.\n김철수 기자 이같이 밝혀\n이 내용은 푸터에 해당한다."
	out := Clean(in)
	if strings.Contains(out, "푸터에 해당") {
		t.Errorf("footer after byline survived: %q", out)
	}
	if !strings.Contains(out, "중소기업 전반으로 확대된다") {
		t.Errorf("body before byline was lost: %q", out)
	}
}

func TestClean_NeverReturnsNoiseOnEmptyish(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\n\n", "더보기\n클릭"} {
		out := Clean(in)
		if strings.TrimSpace(out) != out {
			t.Errorf("output not trimmed: %q", out)
		}
	}
}

func TestClean_FallbackKeepsLongOriginalLines(t *testing.T) {
	// Every line trips a drop rule, but the original had real content.
	in := "국내 대기업 대표 회장단이 오늘 간담회를 열었다. 사진=연합뉴스"
	out := Clean(in)
	if out == "" {
		t.Errorf("expected fallback to original long lines, got empty")
	}
}

func TestClean_RoleCaptionLines(t *testing.T) {
	// "대표" starts an ordinary word in line two and names a person's
	// role in line three; only the caption line may be dropped.
	in := "정부가 새로운 지원책을 발표했다고 설명했습니다.\n" +
		"대표적인 사례로 꼽힌다.\n" +
		"행사장에서 만난 김철수 대표\n" +
		"추가 지원책도 마련될 예정이라고 밝혔다."
	out := Clean(in)
	if !strings.Contains(out, "대표적인 사례로 꼽힌다.") {
		t.Errorf("prose starting with a role word was dropped: %q", out)
	}
	if strings.Contains(out, "김철수 대표") {
		t.Errorf("role caption line survived: %q", out)
	}
	if !strings.Contains(out, "추가 지원책도 마련될 예정이라고 밝혔다.") {
		t.Errorf("prose after the caption was lost: %q", out)
	}
}

func TestCleanSummary_StripsCreditsAndShortResults(t *testing.T) {
	in := "삼성전자가 신제품을 공개했다. (사진=삼성전자) 시장 반응은 긍정적이다."
	out := CleanSummary(in)
	if strings.Contains(out, "(사진=") {
		t.Errorf("caption survived summary cleaning: %q", out)
	}
	if !strings.Contains(out, "시장 반응은 긍정적이다") {
		t.Errorf("summary content lost: %q", out)
	}

	if got := CleanSummary("짧은 요약"); got != "" {
		t.Errorf("expected empty result for sub-20-rune summary, got %q", got)
	}
	if got := CleanSummary(""); got != "" {
		t.Errorf("expected empty result for empty input, got %q", got)
	}
}

func TestCleanSummary_RemovesBylineFragment(t *testing.T) {
	in := "서울 홍길동 기자= 이번 합의로 양국 교역이 확대될 것으로 기대된다."
	out := CleanSummary(in)
	if strings.Contains(out, "기자 =") || strings.Contains(out, "기자=") {
		t.Errorf("byline fragment survived: %q", out)
	}
}
