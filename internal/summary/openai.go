package summary

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/parkwoobin/News-temperature/internal/ratelimit"
)

const summarySystemPrompt = "당신은 뉴스 기사 요약 전문가입니다. 주어진 뉴스 기사 본문만을 바탕으로 핵심 내용을 3줄 정도로 간결하게 요약해주세요. " +
	"요약은 기사의 주요 사실, 인물, 장소, 시간, 이유 등을 포함해야 합니다. 각 줄은 완전한 문장으로 작성해주세요. " +
	"다음 내용은 절대 요약에 포함하지 마세요: 기자 정보, 관련 기사, 댓글, 광고, [사진=...], [그림=...], /사진 제공=, 사진 제공=, " +
	"인물 이름과 직책만 나열된 캡션(예: '젠슨 황 엔비디아 CEO /사진 제공=엔비디아'). 순수한 기사 본문의 실제 내용만 요약해주세요."

// maxPromptRunes bounds how much article text goes into one request.
const maxPromptRunes = 4000

// OpenAIStrategy summarizes with the chat completions API.
type OpenAIStrategy struct {
	client  *openai.Client
	model   openai.ChatModel
	limiter *ratelimit.AIRateLimiter
}

func NewOpenAIStrategy(apiKey string, limiter *ratelimit.AIRateLimiter) *OpenAIStrategy {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIStrategy{
		client:  &client,
		model:   openai.ChatModelGPT4oMini,
		limiter: limiter,
	}
}

func (s *OpenAIStrategy) Summarize(ctx context.Context, text string) (string, error) {
	runes := []rune(text)
	if len(runes) > maxPromptRunes {
		text = string(runes[:maxPromptRunes])
	}

	if s.limiter != nil {
		if err := s.limiter.Use("openai"); err != nil {
			return "", err
		}
	}

	userPrompt := "다음 뉴스 기사 본문을 3줄 정도로 요약해주세요. 기사 본문의 실제 내용만 요약하고, " +
		"기자 정보, 관련 기사, [사진=...], /사진 제공= 같은 캡션이나 제공 정보는 절대 포함하지 마세요:\n\n" + text

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(summarySystemPrompt),
			openai.UserMessage(userPrompt),
		},
		MaxTokens:   openai.Int(400),
		Temperature: openai.Float(0.3),
	})
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	return resp.Choices[0].Message.Content, nil
}
