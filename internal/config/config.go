package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	OracleGroq      = "groq"
	OracleAnthropic = "anthropic"
)

type Config struct {
	Port     int    `yaml:"port"`
	LogLevel string `yaml:"log_level"`
	APIToken string `yaml:"api_token"`

	Oracle        string        `yaml:"oracle"`
	GroqAPIKey    string        `yaml:"groq_api_key"`
	GroqBaseURL   string        `yaml:"groq_base_url"`
	Model         string        `yaml:"model"`
	Temperature   float64       `yaml:"temperature"`
	MaxTokens     int           `yaml:"max_tokens"`
	OracleTimeout time.Duration `yaml:"oracle_timeout"`
	OracleRetries int           `yaml:"oracle_retries"`

	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	AnthropicModel  string `yaml:"anthropic_model"`

	EmotionConfidence bool `yaml:"emotion_confidence"`

	NatsURL   string `yaml:"nats_url"`
	NatsToken string `yaml:"nats_token"`
}

// Load reads configuration from the environment. When MOODWATCH_CONFIG names a YAML
// file, values it sets override the environment.
func Load() (Config, error) {
	cfg := fromEnv()
	path := os.Getenv("MOODWATCH_CONFIG")
	if path == "" {
		return cfg, nil
	}
	if err := overlayFile(&cfg, path); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func fromEnv() Config {
	return Config{
		Port:     envInt("MOODWATCH_PORT", 8760),
		LogLevel: envStr("LOG_LEVEL", "info"),
		APIToken: envStr("MOODWATCH_API_TOKEN", ""),

		Oracle:        envStr("MOODWATCH_ORACLE", OracleGroq),
		GroqAPIKey:    envStr("GROQ_API_KEY", ""),
		GroqBaseURL:   envStr("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		Model:         envStr("MOODWATCH_MODEL", "llama-3.1-8b-instant"),
		Temperature:   envFloat("MOODWATCH_TEMPERATURE", 0.3),
		MaxTokens:     envInt("MOODWATCH_MAX_TOKENS", 512),
		OracleTimeout: envDuration("MOODWATCH_ORACLE_TIMEOUT", 60*time.Second),
		OracleRetries: envInt("MOODWATCH_ORACLE_RETRIES", 2),

		AnthropicAPIKey: envStr("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  envStr("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),

		EmotionConfidence: envBool("MOODWATCH_EMOTION_CONFIDENCE", true),

		NatsURL:   envStr("NATS_URL", ""),
		NatsToken: envStr("NATS_TOKEN", ""),
	}
}

// overlayFile decodes path on top of cfg. A missing file leaves cfg untouched.
func overlayFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate reports settings the chosen oracle cannot run without.
func (c Config) Validate() error {
	switch c.Oracle {
	case OracleGroq:
		if c.GroqAPIKey == "" {
			return errors.New("GROQ_API_KEY is required")
		}
	case OracleAnthropic:
		if c.AnthropicAPIKey == "" {
			return errors.New("ANTHROPIC_API_KEY is required")
		}
	default:
		return fmt.Errorf("unknown oracle %q (want %s or %s)", c.Oracle, OracleGroq, OracleAnthropic)
	}
	if c.OracleTimeout < 0 {
		return errors.New("oracle timeout must be >= 0")
	}
	if c.OracleRetries < 0 {
		return errors.New("oracle retries must be >= 0")
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
