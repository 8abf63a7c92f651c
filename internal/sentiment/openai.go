package sentiment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/parkwoobin/News-temperature/internal/logger"
	"github.com/parkwoobin/News-temperature/internal/ratelimit"
)

const sentimentSystemPrompt = `당신은 뉴스 기사 감정 분석 전문가입니다. 주어진 뉴스 기사를 분석하여 감정을 평가해주세요.

다음 형식으로 JSON 응답을 해주세요:
{
    "label": "positive" 또는 "neutral" 또는 "negative",
    "score": 0.0부터 1.0까지의 숫자 (0.0: 매우 부정적, 0.5: 중립적, 1.0: 매우 긍정적)
}

감정 판단 기준:
- positive: 성장, 발전, 성공, 개선, 혁신, 투자, 협력, 수상, 인정, 긍정적인 전망 등
- negative: 감소, 하락, 위기, 문제, 사고, 실패, 손실, 우려, 경고, 부정적인 전망 등
- neutral: 사실 전달 위주, 중립적인 내용, 명확한 감정이 없는 경우

점수 기준:
- 0.0~0.3: negative
- 0.4~0.6: neutral
- 0.7~1.0: positive

반드시 유효한 JSON 형식으로만 응답해주세요.`

// OpenAIScorer asks the chat completions API for a structured
// label/score judgement. Any failure yields the neutral default.
type OpenAIScorer struct {
	client  *openai.Client
	model   openai.ChatModel
	limiter *ratelimit.AIRateLimiter
}

func NewOpenAIScorer(apiKey string, limiter *ratelimit.AIRateLimiter) *OpenAIScorer {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIScorer{
		client:  &client,
		model:   openai.ChatModelGPT4oMini,
		limiter: limiter,
	}
}

func (s *OpenAIScorer) Score(ctx context.Context, text string) Result {
	result, err := s.score(ctx, text)
	if err != nil {
		logger.Warn("openai sentiment analysis failed, using neutral default", "error", err)
		return Neutral()
	}
	return result
}

func (s *OpenAIScorer) score(ctx context.Context, text string) (Result, error) {
	text = shorten(text, 3000, 2000, 1000)

	if s.limiter != nil {
		if err := s.limiter.Use("openai"); err != nil {
			return Result{}, err
		}
	}

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(sentimentSystemPrompt),
			openai.UserMessage("다음 뉴스 기사를 분석하여 감정을 평가해주세요:\n\n" + text),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
		MaxTokens:   openai.Int(200),
		Temperature: openai.Float(0.3),
	})
	if err != nil {
		return Result{}, fmt.Errorf("openai API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Result{}, fmt.Errorf("no response from openai")
	}

	var parsed struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &parsed); err != nil {
		return Result{}, fmt.Errorf("failed to parse response: %w", err)
	}

	score := clamp01(parsed.Score)
	label := parsed.Label
	if label != LabelPositive && label != LabelNeutral && label != LabelNegative {
		// Re-derive from the score bands when the label is off-contract.
		switch {
		case score >= 0.7:
			label = LabelPositive
		case score <= 0.3:
			label = LabelNegative
		default:
			label = LabelNeutral
		}
	}

	return newResult(label, score), nil
}
