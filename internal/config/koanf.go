package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched when no explicit path is given.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/mira/config.yaml",
}

const ConfigPathEnvVar = "CONFIG_PATH"

// Load layers defaults, the YAML file at path (or the first one found) and
// the environment, then validates the result. Provider credentials are
// checked separately by ValidateProvider.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields splits comma-separated env values for slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

var envMappings = map[string]string{
	// vendor variables
	"openai_api_key": "provider.openai_api_key",
	"gemini_api_key": "provider.gemini_api_key",
	"ollama_host":    "provider.ollama_host",
	"port":           "server.port",

	"mira_host":                "server.host",
	"mira_port":                "server.port",
	"mira_read_header_timeout": "server.read_header_timeout",
	"mira_write_timeout":       "server.write_timeout",
	"mira_shutdown_timeout":    "server.shutdown_timeout",
	"mira_cors_origins":        "server.cors_origins",
	"mira_rate_limit_requests": "server.rate_limit_requests",
	"mira_rate_limit_window":   "server.rate_limit_window",

	"mira_catalog_source":         "catalog.source",
	"mira_catalog_path":           "catalog.path",
	"mira_catalog_table":          "catalog.table",
	"mira_catalog_watch":          "catalog.watch",
	"mira_catalog_watch_debounce": "catalog.watch_debounce",

	"mira_provider":                     "provider.name",
	"mira_provider_model":               "provider.model",
	"mira_provider_base_url":            "provider.base_url",
	"mira_provider_api_key":             "provider.api_key",
	"mira_provider_timeout":             "provider.timeout",
	"mira_provider_max_retries":         "provider.max_retries",
	"mira_provider_retry_backoff":       "provider.retry_backoff",
	"mira_provider_requests_per_second": "provider.requests_per_second",

	"mira_breaker_enabled":       "breaker.enabled",
	"mira_breaker_max_requests":  "breaker.max_requests",
	"mira_breaker_interval":      "breaker.interval",
	"mira_breaker_timeout":       "breaker.timeout",
	"mira_breaker_min_requests":  "breaker.min_requests",
	"mira_breaker_failure_ratio": "breaker.failure_ratio",

	"mira_bot_name": "engine.bot_name",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps known variables to config paths and drops the rest.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
