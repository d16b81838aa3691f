package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	LLMProvider       string  `env:"LLM_PROVIDER" envDefault:"gemini"`
	GeminiAPIKey      string  `env:"GEMINI_API_KEY"`
	GeminiModel       string  `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	LLMAPIKey         string  `env:"LLM_API_KEY"`
	LLMBaseURL        string  `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel          string  `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	LLMTimeoutSeconds int     `env:"LLM_TIMEOUT_SECONDS" envDefault:"60"`
	LLMMaxRetries     int     `env:"LLM_MAX_RETRIES" envDefault:"2"`
	LLMTemperature    float32 `env:"LLM_TEMPERATURE" envDefault:"0.7"`

	BreakerEnabled          bool    `env:"LLM_BREAKER_ENABLED" envDefault:"true"`
	BreakerMaxRequests      uint32  `env:"LLM_BREAKER_MAX_REQUESTS" envDefault:"3"`
	BreakerIntervalSeconds  int     `env:"LLM_BREAKER_INTERVAL_SECONDS" envDefault:"60"`
	BreakerTimeoutSeconds   int     `env:"LLM_BREAKER_TIMEOUT_SECONDS" envDefault:"30"`
	BreakerMinRequests      uint32  `env:"LLM_BREAKER_MIN_REQUESTS" envDefault:"5"`
	BreakerFailureThreshold float64 `env:"LLM_BREAKER_FAILURE_THRESHOLD" envDefault:"0.6"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	JWTSecret            string `env:"JWT_SECRET"`
	JWTAccessTTLMinutes  int    `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"15"`
	JWTRefreshTTLMinutes int    `env:"JWT_REFRESH_TTL_MINUTES" envDefault:"43200"`

	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"60"`
	RateLimitBurst     int `env:"RATE_LIMIT_BURST" envDefault:"10"`

	HistoryCacheTTLSeconds int   `env:"HISTORY_CACHE_TTL_SECONDS" envDefault:"300"`
	FetchTimeoutSeconds    int   `env:"FETCH_TIMEOUT_SECONDS" envDefault:"10"`
	MaxUploadBytes         int64 `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) LLMTimeout() time.Duration {
	return seconds(c.LLMTimeoutSeconds, 60)
}

func (c *Config) BreakerInterval() time.Duration {
	return seconds(c.BreakerIntervalSeconds, 60)
}

func (c *Config) BreakerTimeout() time.Duration {
	return seconds(c.BreakerTimeoutSeconds, 30)
}

func (c *Config) HistoryCacheTTL() time.Duration {
	return seconds(c.HistoryCacheTTLSeconds, 300)
}

func (c *Config) FetchTimeout() time.Duration {
	return seconds(c.FetchTimeoutSeconds, 10)
}

func seconds(v, fallback int) time.Duration {
	if v <= 0 {
		v = fallback
	}
	return time.Duration(v) * time.Second
}
