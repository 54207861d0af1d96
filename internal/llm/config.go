package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter", "mock".
	Provider string

	Anthropic  ProviderConfig
	OpenAI     ProviderConfig
	Gemini     ProviderConfig
	OpenRouter ProviderConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

// ProviderConfig is the per-provider credential and model selection.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string // OpenAI-compatible endpoints only
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  ProviderConfig{Model: "claude-haiku"},
		OpenAI:     ProviderConfig{Model: "gpt-4o-mini"},
		Gemini:     ProviderConfig{Model: "gemini-flash"},
		OpenRouter: ProviderConfig{Model: "google/gemini-2.0-flash-001", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv builds a Config from SNAPQUIZ_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	setFromEnv(&cfg.Provider, "SNAPQUIZ_LLM_PROVIDER")
	for prefix, pc := range map[string]*ProviderConfig{
		"SNAPQUIZ_ANTHROPIC":  &cfg.Anthropic,
		"SNAPQUIZ_OPENAI":     &cfg.OpenAI,
		"SNAPQUIZ_GEMINI":     &cfg.Gemini,
		"SNAPQUIZ_OPENROUTER": &cfg.OpenRouter,
	} {
		setFromEnv(&pc.APIKey, prefix+"_API_KEY")
		setFromEnv(&pc.Model, prefix+"_MODEL")
		setFromEnv(&pc.BaseURL, prefix+"_BASE_URL")
	}

	if v := os.Getenv("SNAPQUIZ_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg
}

// DiscoverConfig probes the vendors' standard API key variables
// (Gemini, OpenAI, Anthropic, OpenRouter) and returns a Config for the
// first one set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, c := range []struct {
		env      string
		provider string
		target   *ProviderConfig
	}{
		{"GEMINI_API_KEY", "gemini", &cfg.Gemini},
		{"OPENAI_API_KEY", "openai", &cfg.OpenAI},
		{"ANTHROPIC_API_KEY", "anthropic", &cfg.Anthropic},
		{"OPENROUTER_API_KEY", "openrouter", &cfg.OpenRouter},
	} {
		if k := os.Getenv(c.env); k != "" {
			cfg.Provider = c.provider
			c.target.APIKey = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	var pc ProviderConfig
	switch c.Provider {
	case "mock":
		return nil
	case "anthropic":
		pc = c.Anthropic
	case "openai":
		pc = c.OpenAI
	case "gemini":
		pc = c.Gemini
	case "openrouter":
		pc = c.OpenRouter
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if pc.APIKey == "" {
		return fmt.Errorf("an API key is required for the %s provider (set SNAPQUIZ_%s_API_KEY)",
			c.Provider, strings.ToUpper(c.Provider))
	}
	return nil
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
