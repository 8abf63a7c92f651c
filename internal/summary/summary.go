// Package summary produces short article summaries. A Dispatcher wraps
// one summarization strategy (OpenAI, Gemini, or a local seq2seq model)
// and degrades to plain truncation when the strategy fails.
package summary

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/parkwoobin/News-temperature/internal/cleaner"
	"github.com/parkwoobin/News-temperature/internal/logger"
)

// Strategy generates a summary for already-cleaned article text.
type Strategy interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// DefaultMaxLength bounds the truncation fallback.
const DefaultMaxLength = 300

// Dispatcher routes text to its strategy and post-cleans the result.
// A nil strategy means truncation-only mode.
type Dispatcher struct {
	strategy  Strategy
	maxLength int
}

func NewDispatcher(strategy Strategy, maxLength int) *Dispatcher {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	return &Dispatcher{strategy: strategy, maxLength: maxLength}
}

// Summarize cleans the text, dispatches to the configured strategy and
// post-processes the output. It returns an empty string when the source
// was empty or the summary collapsed below the minimum useful length;
// callers fall back to the item description in that case.
func (d *Dispatcher) Summarize(ctx context.Context, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	text = cleaner.Clean(text)
	if text == "" {
		return ""
	}

	// Short text is returned as-is rather than summarized.
	if utf8.RuneCountInString(text) < 100 {
		runes := []rune(text)
		if len(runes) > d.maxLength {
			return string(runes[:d.maxLength])
		}
		return text
	}

	// Truncation cuts the already-cleaned input, so the fallback paths
	// skip the model-output post-pass below.
	if d.strategy == nil {
		return Truncate(text, d.maxLength)
	}

	out, err := d.strategy.Summarize(ctx, text)
	if err != nil {
		logger.Warn("summarization failed, falling back to truncation", "error", err)
		return Truncate(text, d.maxLength)
	}

	out = cleaner.CleanSummary(out)
	return ensureSentenceEnd(out)
}
