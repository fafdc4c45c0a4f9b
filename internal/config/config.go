// Package config loads service configuration from defaults, an optional YAML
// file and environment variables, in that order of precedence.
package config

import "time"

// Config is the full service configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Catalog  CatalogConfig  `koanf:"catalog"`
	Provider ProviderConfig `koanf:"provider"`
	Breaker  BreakerConfig  `koanf:"breaker"`
	Engine   EngineConfig   `koanf:"engine"`
	Logging  LoggingConfig  `koanf:"logging"`
}

type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port" validate:"gte=1,lte=65535"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout" validate:"gt=0"`
	WriteTimeout      time.Duration `koanf:"write_timeout" validate:"gte=0"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"gte=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gte=0"`
}

// CatalogConfig selects where tracks come from.
type CatalogConfig struct {
	Source string `koanf:"source" validate:"oneof=json sqlite"`
	Path   string `koanf:"path"`
	// Table is only read for the sqlite source.
	Table         string        `koanf:"table"`
	Watch         bool          `koanf:"watch"`
	WatchDebounce time.Duration `koanf:"watch_debounce" validate:"gte=0"`
}

// ProviderConfig selects and tunes the completion backend.
type ProviderConfig struct {
	Name              string        `koanf:"name" validate:"oneof=openai ollama gemini"`
	Model             string        `koanf:"model"`
	BaseURL           string        `koanf:"base_url" validate:"omitempty,url"`
	APIKey            string        `koanf:"api_key"`
	OpenAIAPIKey      string        `koanf:"openai_api_key"`
	GeminiAPIKey      string        `koanf:"gemini_api_key"`
	OllamaHost        string        `koanf:"ollama_host"`
	Timeout           time.Duration `koanf:"timeout" validate:"gt=0"`
	MaxRetries        int           `koanf:"max_retries" validate:"gte=0,lte=10"`
	RetryBackoff      time.Duration `koanf:"retry_backoff" validate:"gte=0"`
	RequestsPerSecond float64       `koanf:"requests_per_second" validate:"gte=0"`
}

// ResolvedAPIKey prefers the generic key over the vendor variable.
func (p ProviderConfig) ResolvedAPIKey() string {
	if p.APIKey != "" {
		return p.APIKey
	}
	switch p.Name {
	case "openai":
		return p.OpenAIAPIKey
	case "gemini":
		return p.GeminiAPIKey
	}
	return ""
}

// ResolvedBaseURL falls back to OLLAMA_HOST for the ollama provider.
func (p ProviderConfig) ResolvedBaseURL() string {
	if p.BaseURL != "" {
		return p.BaseURL
	}
	if p.Name == "ollama" {
		return p.OllamaHost
	}
	return ""
}

// BreakerConfig tunes the circuit breaker wrapped around the provider.
type BreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval" validate:"gte=0"`
	Timeout      time.Duration `koanf:"timeout" validate:"gte=0"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio" validate:"gte=0,lte=1"`
}

type EngineConfig struct {
	BotName string `koanf:"bot_name" validate:"required"`
}

type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              5000,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      0, // completions can be slow
			ShutdownTimeout:   15 * time.Second,
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 60,
			RateLimitWindow:   time.Minute,
		},
		Catalog: CatalogConfig{
			Source:        "json",
			Path:          "tracks.json",
			Table:         "tracks",
			Watch:         false,
			WatchDebounce: 500 * time.Millisecond,
		},
		Provider: ProviderConfig{
			Name:              "openai",
			Timeout:           60 * time.Second,
			MaxRetries:        3,
			RetryBackoff:      500 * time.Millisecond,
			RequestsPerSecond: 5,
		},
		Breaker: BreakerConfig{
			Enabled:      true,
			MaxRequests:  1,
			Interval:     time.Minute,
			Timeout:      30 * time.Second,
			MinRequests:  5,
			FailureRatio: 0.6,
		},
		Engine: EngineConfig{
			BotName: "MIRA - Hoopr Music AI",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}
