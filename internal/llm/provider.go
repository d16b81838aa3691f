package llm

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"career-coach/internal/config"
)

// NewFromConfig elige el proveedor según LLM_PROVIDER.
func NewFromConfig(ctx context.Context, cfg *config.Config, logger *zap.Logger) (LLMClient, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.LLMProvider)) {
	case "", "gemini":
		return NewGeminiClient(ctx, GeminiConfig{
			APIKey:      cfg.GeminiAPIKey,
			Model:       cfg.GeminiModel,
			Temperature: cfg.LLMTemperature,
			Timeout:     cfg.LLMTimeout(),
			MaxRetries:  cfg.LLMMaxRetries,
			Breaker: BreakerSettings{
				Enabled:          cfg.BreakerEnabled,
				MaxRequests:      cfg.BreakerMaxRequests,
				Interval:         cfg.BreakerInterval(),
				Timeout:          cfg.BreakerTimeout(),
				MinRequests:      cfg.BreakerMinRequests,
				FailureThreshold: cfg.BreakerFailureThreshold,
			},
		}, logger)
	case "openai":
		if strings.TrimSpace(cfg.LLMAPIKey) == "" {
			return nil, fmt.Errorf("openai: %w", ErrNotConfigured)
		}
		return NewOpenAIClient(OpenAIConfig{
			BaseURL:     cfg.LLMBaseURL,
			APIKey:      cfg.LLMAPIKey,
			Model:       cfg.LLMModel,
			Temperature: cfg.LLMTemperature,
			Timeout:     cfg.LLMTimeout(),
		}, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.LLMProvider)
	}
}
