package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"legal-timeline/config"
)

// NewClient 는 설정된 provider 에 맞는 Generator 를 만든다.
// API 키가 비어 있으면 ErrMissingAPIKey 를 반환하고 네트워크 자원은 만들지 않는다.
func NewClient(ctx context.Context, cfg config.LLMConfig, httpClient *http.Client) (Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w (provider=%s)", ErrMissingAPIKey, cfg.Provider)
	}

	provider := strings.ToLower(cfg.Provider)
	switch provider {
	case "google", "gemini":
		return NewGeminiClient(ctx, cfg.APIKey, cfg.ModelName, cfg.BaseURL, httpClient)
	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.ModelName, cfg.BaseURL, httpClient), nil
	case "claude", "anthropic":
		return NewClaudeClient(cfg.APIKey, cfg.ModelName, cfg.BaseURL, httpClient), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
