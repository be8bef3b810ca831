package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the agent server configuration loaded from environment
// variables.
type Config struct {
	// Server
	Host      string
	Port      string
	PublicURL string
	LogLevel  string // debug, info, warn, error
	LogFormat string // text, json

	// Image provider selection
	Provider   string // google, openai, placeholder
	ImageModel string

	// API Keys
	GoogleKey    string
	OpenAIKey    string
	OpenAIURL    string
	AnthropicKey string

	// Widget planning
	Planner      string // keyword, llm
	PlannerModel string

	// Agent config
	Timeout       time.Duration
	RetryAttempts int
	ValidateUI    bool
	LegacyWidgets bool
	StateTTL      time.Duration
}

// LoadConfig loads configuration from environment variables.
// It loads a .env file if present (silent fail if not found).
func LoadConfig() (*Config, error) {
	godotenv.Load() // Load .env file if present

	cfg := &Config{
		Host:          getEnvOrDefault("IMAGINE_HOST", "localhost"),
		Port:          getEnvOrDefault("IMAGINE_PORT", "10002"),
		PublicURL:     os.Getenv("IMAGINE_PUBLIC_URL"),
		LogLevel:      getEnvOrDefault("IMAGINE_LOG_LEVEL", "info"),
		LogFormat:     getEnvOrDefault("IMAGINE_LOG_FORMAT", "text"),
		Provider:      os.Getenv("IMAGINE_PROVIDER"),
		ImageModel:    os.Getenv("IMAGINE_IMAGE_MODEL"),
		GoogleKey:     getEnvOrDefault("GOOGLE_API_KEY", os.Getenv("GEMINI_API_KEY")),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIURL:     os.Getenv("OPENAI_BASE_URL"),
		AnthropicKey:  os.Getenv("ANTHROPIC_API_KEY"),
		Planner:       getEnvOrDefault("IMAGINE_PLANNER", "keyword"),
		PlannerModel:  os.Getenv("IMAGINE_PLANNER_MODEL"),
		Timeout:       getEnvDurationOrDefault("IMAGINE_TIMEOUT", 2*time.Minute),
		RetryAttempts: getEnvIntOrDefault("IMAGINE_RETRY_ATTEMPTS", 3),
		ValidateUI:    getEnvBoolOrDefault("IMAGINE_VALIDATE", true),
		LegacyWidgets: getEnvBoolOrDefault("IMAGINE_LEGACY_WIDGETS", false),
		StateTTL:      getEnvDurationOrDefault("IMAGINE_STATE_TTL", time.Hour),
	}

	if cfg.Provider == "" {
		cfg.Provider = defaultProvider(cfg)
	}
	if cfg.PublicURL == "" {
		cfg.PublicURL = fmt.Sprintf("http://%s:%s/", cfg.Host, cfg.Port)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// defaultProvider picks the first provider with a configured key, falling
// back to the offline placeholder.
func defaultProvider(c *Config) string {
	switch {
	case c.GoogleKey != "":
		return "google"
	case c.OpenAIKey != "":
		return "openai"
	default:
		return "placeholder"
	}
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	switch c.Provider {
	case "google":
		if c.GoogleKey == "" {
			return fmt.Errorf("GOOGLE_API_KEY or GEMINI_API_KEY is required for google provider")
		}
	case "openai":
		if c.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for openai provider")
		}
	case "placeholder":
	default:
		return fmt.Errorf("unknown provider: %s (must be google, openai, or placeholder)", c.Provider)
	}

	switch c.Planner {
	case "keyword":
	case "llm":
		if c.AnthropicKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for llm planner")
		}
	default:
		return fmt.Errorf("unknown planner: %s (must be keyword or llm)", c.Planner)
	}

	if c.RetryAttempts < 1 {
		return fmt.Errorf("IMAGINE_RETRY_ATTEMPTS must be at least 1")
	}

	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
