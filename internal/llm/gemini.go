package llm

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// contentGenerator es la parte de *genai.Models que usamos.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateContentStream(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error]
}

// BreakerSettings configura el circuit breaker del proveedor.
type BreakerSettings struct {
	Enabled          bool
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	MinRequests      uint32
	FailureThreshold float64
}

// GeminiConfig agrupa las opciones del cliente Gemini.
type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration
	MaxRetries  int
	Breaker     BreakerSettings
}

// GeminiClient implementa StreamingClient sobre google.golang.org/genai, con reintentos
// exponenciales y circuit breaker.
type GeminiClient struct {
	models     contentGenerator
	model      string
	genConfig  *genai.GenerateContentConfig
	timeout    time.Duration
	maxRetries int
	baseDelay  time.Duration
	breaker    *gobreaker.CircuitBreaker[string]
	logger     *zap.Logger
}

var _ StreamingClient = (*GeminiClient)(nil)

// NewGeminiClient crea el cliente contra la Gemini API.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig, logger *zap.Logger) (*GeminiClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gemini: %w", ErrNotConfigured)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return newGeminiClient(client.Models, cfg, logger), nil
}

func newGeminiClient(models contentGenerator, cfg GeminiConfig, logger *zap.Logger) *GeminiClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	genConfig := &genai.GenerateContentConfig{}
	if cfg.Temperature > 0 {
		genConfig.Temperature = genai.Ptr(cfg.Temperature)
	}
	return &GeminiClient{
		models:     models,
		model:      cfg.Model,
		genConfig:  genConfig,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		baseDelay:  time.Second,
		breaker:    newBreaker(cfg.Model, cfg.Breaker, logger),
		logger:     logger,
	}
}

func newBreaker(name string, s BreakerSettings, logger *zap.Logger) *gobreaker.CircuitBreaker[string] {
	if !s.Enabled {
		return nil
	}
	if s.MinRequests == 0 {
		s.MinRequests = 5
	}
	if s.FailureThreshold <= 0 {
		s.FailureThreshold = 0.6
	}
	return gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "llm-" + name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= s.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("llm circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}

func (g *GeminiClient) execute(fn func() (string, error)) (string, error) {
	if g.breaker == nil {
		return fn()
	}
	out, err := g.breaker.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}
	return out, err
}

// Generate devuelve el texto completo de la respuesta.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	return g.execute(func() (string, error) {
		return g.withRetry(ctx, func(ctx context.Context) (string, error) {
			callCtx, cancel := context.WithTimeout(ctx, g.timeout)
			defer cancel()
			resp, err := g.models.GenerateContent(callCtx, g.model, genai.Text(prompt), g.genConfig)
			if err != nil {
				return "", err
			}
			if resp == nil {
				return "", ErrEmptyResponse
			}
			text := resp.Text()
			if strings.TrimSpace(text) == "" {
				return "", ErrEmptyResponse
			}
			return text, nil
		})
	})
}

// GenerateStream emite cada fragmento a onChunk. No reintenta: una vez emitido un chunk
// el consumidor ya lo vio.
func (g *GeminiClient) GenerateStream(ctx context.Context, prompt string, onChunk func(string) error) (string, error) {
	return g.execute(func() (string, error) {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()
		var sb strings.Builder
		for resp, err := range g.models.GenerateContentStream(callCtx, g.model, genai.Text(prompt), g.genConfig) {
			if err != nil {
				return "", err
			}
			if resp == nil {
				continue
			}
			chunk := resp.Text()
			if chunk == "" {
				continue
			}
			sb.WriteString(chunk)
			if onChunk != nil {
				if err := onChunk(chunk); err != nil {
					return "", err
				}
			}
		}
		if strings.TrimSpace(sb.String()) == "" {
			return "", ErrEmptyResponse
		}
		return sb.String(), nil
	})
}

func (g *GeminiClient) withRetry(ctx context.Context, fn func(context.Context) (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("retrying llm call",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", g.maxRetries),
				zap.Error(lastErr),
			)
			select {
			case <-time.After(g.backoff(attempt)):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		out, err := fn(ctx)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if !IsRetryable(err) {
			break
		}
	}
	return "", fmt.Errorf("gemini generate: %w", lastErr)
}

// backoff: 2^(n-1) * baseDelay con 10% de jitter, tope 30s.
func (g *GeminiClient) backoff(attempt int) time.Duration {
	base := time.Duration(math.Pow(2, float64(attempt-1))) * g.baseDelay
	jitter := time.Duration(0)
	if spread := int64(float64(base) * 0.1); spread > 0 {
		jitter = time.Duration(rand.Int64N(spread))
	}
	return min(base+jitter, 30*time.Second)
}
