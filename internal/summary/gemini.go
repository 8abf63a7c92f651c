package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/parkwoobin/News-temperature/internal/ratelimit"
)

// GeminiStrategy is an alternative external summarizer for deployments
// without an OpenAI key.
type GeminiStrategy struct {
	client  *genai.Client
	limiter *ratelimit.AIRateLimiter
}

func NewGeminiStrategy(apiKey string, limiter *ratelimit.AIRateLimiter) (*GeminiStrategy, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiStrategy{client: client, limiter: limiter}, nil
}

func (s *GeminiStrategy) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

func (s *GeminiStrategy) Summarize(ctx context.Context, text string) (string, error) {
	runes := []rune(text)
	if len(runes) > maxPromptRunes {
		text = string(runes[:maxPromptRunes])
	}

	if s.limiter != nil {
		if err := s.limiter.Use("gemini"); err != nil {
			return "", err
		}
	}

	model := s.client.GenerativeModel("gemini-1.5-flash")
	prompt := summarySystemPrompt + "\n\n기사 본문:\n" + text

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}

	out := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	return strings.TrimSpace(out), nil
}
