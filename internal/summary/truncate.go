package summary

import "strings"

var terminators = map[rune]bool{'.': true, '!': true, '?': true, '。': true, '！': true, '？': true}

// Truncate is the summarization fallback: cut at maxLength runes, then
// prefer ending on sentence punctuation past the halfway mark, then on
// whitespace past the 70% mark, else hard-cut with an ellipsis.
func Truncate(text string, maxLength int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}

	cut := runes[:maxLength]

	if last := lastTerminator(cut); float64(last) > float64(maxLength)*0.5 {
		return string(cut[:last+1])
	}

	if lastSpace := lastIndexRune(cut, ' '); float64(lastSpace) > float64(maxLength)*0.7 {
		cut = cut[:lastSpace]
		if last := lastTerminator(cut); float64(last) > float64(len(cut))*0.5 {
			return string(cut[:last+1])
		}
		return string(cut) + "…"
	}

	return string(cut) + "…"
}

// ensureSentenceEnd trims a summary back to its last sentence terminator
// when the output broke off mid-sentence. Text already ending with a
// terminator or the sentence-final "다" is left alone.
func ensureSentenceEnd(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	final := runes[len(runes)-1]
	if terminators[final] || final == '다' {
		return s
	}
	if last := lastTerminator(runes); float64(last) > float64(len(runes))*0.5 {
		return string(runes[:last+1])
	}
	return s
}

func lastTerminator(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if terminators[runes[i]] {
			return i
		}
	}
	return -1
}

func lastIndexRune(runes []rune, r rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == r {
			return i
		}
	}
	return -1
}
