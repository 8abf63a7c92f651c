package sentiment

import (
	"context"
	"strings"

	"github.com/parkwoobin/News-temperature/internal/logger"
)

// Classifier is a 3-class sentiment model producing per-class
// probabilities for Korean text.
type Classifier interface {
	Probabilities(ctx context.Context, text string) (negative, neutral, positive float64, err error)
}

// LocalScorer blends classifier probabilities with the keyword and
// context-pattern tables.
type LocalScorer struct {
	classifier Classifier
	tuning     Tuning
}

func NewLocalScorer(classifier Classifier) *LocalScorer {
	return &LocalScorer{classifier: classifier, tuning: DefaultTuning()}
}

func NewLocalScorerTuned(classifier Classifier, tuning Tuning) *LocalScorer {
	return &LocalScorer{classifier: classifier, tuning: tuning}
}

func (s *LocalScorer) Score(ctx context.Context, text string) Result {
	short := shorten(text, 2000, 1500, 500)
	lower := strings.ToLower(short)

	// Severe incidents override everything, classifier included.
	if n := countContains(lower, strongNegativeKeywords); n > 0 {
		score := s.tuning.StrongNegBase - float64(n)*s.tuning.StrongNegStep
		if score < 0 {
			score = 0
		}
		return newResult(LabelNegative, score)
	}

	if s.classifier == nil {
		return Neutral()
	}

	negP, neuP, posP, err := s.classifier.Probabilities(ctx, short)
	if err != nil {
		logger.Warn("sentiment classifier failed, using neutral default", "error", err)
		return Neutral()
	}

	base := clamp01(0.5 + (posP-negP)*0.5)
	modelLabel := argmaxLabel(negP, neuP, posP)

	posCount := countContains(lower, positiveKeywords)
	negCount := countContains(lower, negativeKeywords)
	ctxCount := countPatterns(lower, negativePatterns)
	negCount += ctxCount

	bias := 0.0
	if posCount > 0 {
		bias = float64(posCount) * s.tuning.PositiveBiasStep
		if bias > s.tuning.PositiveBiasCap {
			bias = s.tuning.PositiveBiasCap
		}
	}
	if negCount > 0 {
		if ctxCount > 0 {
			bias = -float64(negCount) * s.tuning.NegativeCtxStep
			if bias < -s.tuning.NegativeCtxCap {
				bias = -s.tuning.NegativeCtxCap
			}
		} else {
			bias = -float64(negCount) * s.tuning.NegativeBiasStep
			if bias < -s.tuning.NegativeBiasCap {
				bias = -s.tuning.NegativeBiasCap
			}
		}
	}

	adjusted := clamp01(base + bias)

	var label string
	switch {
	case adjusted >= s.tuning.PositiveBand:
		label = LabelPositive
	case adjusted <= s.tuning.NegativeBand:
		label = LabelNegative
	case posCount >= 2 && posCount > negCount:
		label = LabelPositive
		adjusted = s.tuning.PositiveBand + float64(posCount)*s.tuning.PositiveBiasStep
		if adjusted > 1 {
			adjusted = 1
		}
	case negCount >= 2 && negCount > posCount:
		label = LabelNegative
		adjusted = s.tuning.NegativeBand - float64(negCount)*s.tuning.NegativeBiasStep
		if adjusted < 0 {
			adjusted = 0
		}
	default:
		label = modelLabel
	}

	return newResult(label, adjusted)
}

func argmaxLabel(negP, neuP, posP float64) string {
	switch {
	case posP >= neuP && posP >= negP:
		return LabelPositive
	case negP >= neuP && negP >= posP:
		return LabelNegative
	default:
		return LabelNeutral
	}
}
