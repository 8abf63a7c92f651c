// Package sentiment scores article text into a label, a [0,1] score and
// a 0-100 display temperature. Two backends share the same contract: an
// OpenAI chat backend and a local classifier corrected by keyword and
// context-pattern heuristics.
package sentiment

import (
	"context"
	"math"
)

const (
	LabelPositive = "positive"
	LabelNeutral  = "neutral"
	LabelNegative = "negative"
)

type Result struct {
	Label       string  `json:"label"`
	Score       float64 `json:"score"`
	Temperature int     `json:"temperature"`
	ImageKey    string  `json:"image"`
}

// Scorer is implemented by both backends. Scoring never fails; backends
// degrade to the neutral default on any upstream or parse error.
type Scorer interface {
	Score(ctx context.Context, text string) Result
}

// Neutral is the safe default when no backend is configured or a
// backend could not produce a usable answer.
func Neutral() Result {
	return newResult(LabelNeutral, 0.5)
}

func newResult(label string, score float64) Result {
	return Result{
		Label:       label,
		Score:       score,
		Temperature: temperatureOf(score),
		ImageKey:    imageForLabel(label),
	}
}

func temperatureOf(score float64) int {
	t := int(math.Round(score * 100))
	if t < 0 {
		t = 0
	}
	if t > 100 {
		t = 100
	}
	return t
}

func imageForLabel(label string) string {
	switch label {
	case LabelPositive:
		return "static/3.png"
	case LabelNegative:
		return "static/1.png"
	default:
		return "static/2.png"
	}
}

// Tuning holds the empirical correction constants of the local backend.
// The defaults come from hand tuning against Korean news text; they are
// adjustable parameters, not invariants.
type Tuning struct {
	PositiveBiasStep float64 // bias added per positive keyword
	PositiveBiasCap  float64
	NegativeBiasStep float64 // bias subtracted per negative keyword
	NegativeBiasCap  float64
	NegativeCtxStep  float64 // stronger step when context patterns fired
	NegativeCtxCap   float64
	PositiveBand     float64 // adjusted score at or above is positive
	NegativeBand     float64 // adjusted score at or below is negative
	StrongNegBase    float64 // score ceiling for severe-incident text
	StrongNegStep    float64
}

func DefaultTuning() Tuning {
	return Tuning{
		PositiveBiasStep: 0.1,
		PositiveBiasCap:  0.4,
		NegativeBiasStep: 0.1,
		NegativeBiasCap:  0.3,
		NegativeCtxStep:  0.12,
		NegativeCtxCap:   0.4,
		PositiveBand:     0.65,
		NegativeBand:     0.35,
		StrongNegBase:    0.2,
		StrongNegStep:    0.1,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// shorten keeps the head and tail of long text, where the lead and the
// conclusion carry most of the sentiment signal.
func shorten(text string, limit, head, tail int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:head]) + " " + string(runes[len(runes)-tail:])
}
