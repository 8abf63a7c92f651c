package summary

import (
	"context"
	"fmt"
	"strings"
)

// GenerateOptions are decoding parameters for a local seq2seq model.
type GenerateOptions struct {
	MaxLength         int
	MinLength         int
	NumBeams          int
	NoRepeatNGramSize int
	LengthPenalty     float64
}

// Seq2SeqModel abstracts a local abstractive summarization model served
// out of process (or in tests, a stub).
type Seq2SeqModel interface {
	Generate(ctx context.Context, text string, opts GenerateOptions) (string, error)
}

// LocalStrategy feeds a window of the article to a seq2seq model. The
// two shipped variants differ only in window size and decoding options.
type LocalStrategy struct {
	model  Seq2SeqModel
	window int
	opts   GenerateOptions
}

// NewKosumFast uses a 512-rune input window with wider beam search.
func NewKosumFast(model Seq2SeqModel) *LocalStrategy {
	return &LocalStrategy{
		model:  model,
		window: 512,
		opts: GenerateOptions{
			MaxLength:         250,
			MinLength:         80,
			NumBeams:          5,
			NoRepeatNGramSize: 3,
			LengthPenalty:     1.2,
		},
	}
}

// NewKosumTuned uses a 1024-rune window and a tighter repetition block.
func NewKosumTuned(model Seq2SeqModel) *LocalStrategy {
	return &LocalStrategy{
		model:  model,
		window: 1024,
		opts: GenerateOptions{
			MaxLength:         200,
			MinLength:         50,
			NumBeams:          4,
			NoRepeatNGramSize: 2,
			LengthPenalty:     1.2,
		},
	}
}

func (s *LocalStrategy) Summarize(ctx context.Context, text string) (string, error) {
	if s.model == nil {
		return "", fmt.Errorf("no local model configured")
	}

	text = s.windowed(text)

	out, err := s.model.Generate(ctx, text, s.opts)
	if err != nil {
		return "", fmt.Errorf("local model generation: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// windowed cuts the input to the model window, preferring a sentence
// boundary in the last 30% of the window.
func (s *LocalStrategy) windowed(text string) string {
	runes := []rune(text)
	if len(runes) <= s.window {
		return text
	}
	cut := runes[:s.window]
	last := -1
	for i := len(cut) - 1; i >= 0; i-- {
		if cut[i] == '.' || cut[i] == '다' {
			last = i
			break
		}
	}
	if float64(last) > float64(s.window)*0.7 {
		return string(cut[:last+1])
	}
	return string(cut)
}
