package sentiment

import (
	"regexp"
	"strings"
)

// Keyword tables for the local backend. Counts of these terms bias the
// classifier score toward the news domain's reading of the text.

var positiveKeywords = []string{
	"완승", "성공", "승리", "발전", "성장", "증가", "개선", "혁신", "확대", "상승",
	"향상", "도약", "기대", "긍정", "호재", "호조", "확장", "투자", "협력",
	"파트너십", "기술", "개발", "출시", "수상", "인정", "평가", "우수", "최고",
	"1위", "선두", "돌파", "기록", "최대", "최고치", "상승세", "호전", "개선세",
}

// Severe-incident terms force a negative classification outright.
var strongNegativeKeywords = []string{
	"숨지", "사망", "사고로", "사고로 인해", "사고로 사망", "방치", "유기",
	"살인", "폭행", "강도", "강간", "성폭행", "학대", "폭력", "테러",
	"폭발", "화재", "붕괴", "추락", "충돌", "교통사고", "교통사고로",
	"사고로 숨지", "사고로 부상", "사고로 다쳐",
	"비극", "참사", "재난", "재해", "피해자", "희생자", "부상자",
}

var negativeKeywords = []string{
	"감소", "하락", "위기", "문제", "사고", "부정", "부실", "실패", "폐쇄",
	"도산", "파산", "손실", "적자", "축소", "감원", "해고", "실업", "불안",
	"우려", "경고", "위험", "부상", "피해", "비리", "의혹", "논란",
	"조롱", "비난", "하락세", "악화", "쇠퇴", "후퇴", "실적부진", "부진",
}

// Context patterns catch indirect negative phrasing that carries no
// negative keyword of its own ("fell short of the target", "despite",
// "unfortunately"). Each matching pattern counts once.
var negativePatterns = compileAll(
	"숨지",
	`사망\s*했다`,
	"방치",
	"유기",
	`차에\s*방치`,
	`차량에\s*방치`,
	`차에\s*남겨`,
	`차량에\s*남겨`,
	`사고로\s*숨지`,
	`사고로\s*사망`,
	`사고로\s*인해`,
	"교통사고",
	"교통사고로",
	`하지\s*못`,
	`못\s*했다`,
	`실패\s*했다`,
	`보다\s*낮`,
	`보다\s*못`,
	`못\s*미친`,
	`에\s*못\s*미친`,
	`에\s*실패`,
	`하지\s*않`,
	`없\s*었다`,
	`없\s*었음`,
	`없\s*어`,
	"부족",
	`부족\s*했다`,
	"미달",
	`미달\s*했다`,
	`기대\s*에\s*못\s*미친`,
	`기대\s*이하`,
	`예상\s*보다\s*낮`,
	`예상\s*보다\s*못`,
	`전년\s*대비\s*감소`,
	`전년\s*대비\s*하락`,
	`전년\s*대비\s*줄어`,
	`전년\s*대비\s*떨어`,
	`전분기\s*대비\s*감소`,
	`전분기\s*대비\s*하락`,
	`목표\s*에\s*못\s*미친`,
	`목표\s*이하`,
	`목표\s*미달`,
	`기록\s*보다\s*낮`,
	`기록\s*보다\s*못`,
	`이전\s*보다\s*나빠`,
	`이전\s*보다\s*떨어`,
	`이전\s*보다\s*줄어`,
	`에도\s*불구하고`,
	`임에도\s*불구`,
	`그럼에도\s*불구`,
	"그러나",
	"하지만",
	"다만",
	"아쉽게도",
	"안타깝게도",
	"유감스럽게도",
	"아쉽",
	"안타깝",
	"유감",
	`우려\s*된다`,
	`우려\s*가`,
	`걱정\s*된다`,
	`걱정\s*이`,
	`불안\s*하다`,
	`불안\s*감`,
	`위험\s*하다`,
	`위험\s*이`,
	`문제\s*가\s*있다`,
	`문제\s*가\s*발생`,
	`문제\s*가\s*나타나`,
	"어려움",
	`어려움\s*을\s*겪`,
	"난관",
	`난관\s*에`,
	"장애",
	`장애\s*물`,
	"제약",
	`제약\s*이`,
	"한계",
	`한계\s*를`,
	`부족\s*하다`,
	`부족\s*한`,
	`부족\s*함`,
	"미흡",
	`미흡\s*하다`,
	`미흡\s*한`,
	"아쉬움",
	`아쉬움\s*을`,
	"아쉬운",
	`아쉬운\s*점`,
	`아쉬운\s*부분`,
)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}

func countContains(text string, terms []string) int {
	n := 0
	for _, term := range terms {
		if strings.Contains(text, term) {
			n++
		}
	}
	return n
}

func countPatterns(text string, patterns []*regexp.Regexp) int {
	n := 0
	for _, re := range patterns {
		if re.MatchString(text) {
			n++
		}
	}
	return n
}
