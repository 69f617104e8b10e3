// Package config loads the application configuration once at startup from
// defaults, an optional config file, .env files, environment variables and
// command-line flags (later sources win).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/yourusername/book-finder/pkg/book"
)

const envPrefix = "BOOKFINDER"

// Config holds the application configuration.
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Server ServerConfig `mapstructure:"server"`
	AI     AIConfig     `mapstructure:"ai"`
	Books  BooksConfig  `mapstructure:"books"`
	Cover  CoverConfig  `mapstructure:"cover"`
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string `mapstructure:"env"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"` // json or text
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

// AIConfig selects and configures the generative backends.
type AIConfig struct {
	Provider     string        `mapstructure:"provider"` // gemini or openai
	GeminiAPIKey string        `mapstructure:"gemini_api_key"`
	OpenAIAPIKey string        `mapstructure:"openai_api_key"`
	GeminiModel  string        `mapstructure:"gemini_model"`
	OpenAIModel  string        `mapstructure:"openai_model"`
	ImageModel   string        `mapstructure:"image_model"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// BooksConfig holds Google Books API configuration.
type BooksConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	BaseURL    string        `mapstructure:"base_url"`
	MaxResults int           `mapstructure:"max_results"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// CoverConfig selects the cover resolution strategy.
type CoverConfig struct {
	Strategy string `mapstructure:"strategy"` // lookup or generative
}

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// flagKeys maps command-line flag names onto config keys.
var flagKeys = map[string]string{
	"log-level":      "app.log_level",
	"log-format":     "app.log_format",
	"port":           "server.port",
	"provider":       "ai.provider",
	"cover-strategy": "cover.strategy",
}

// legacyEnv lists the unprefixed variable names accepted for each key.
var legacyEnv = map[string][]string{
	"ai.gemini_api_key": {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	"ai.openai_api_key": {"OPENAI_API_KEY"},
	"books.api_key":     {"GOOGLE_BOOKS_API_KEY"},
	"server.port":       {"PORT"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "json")

	v.SetDefault("server.port", "8899")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("ai.provider", ProviderGemini)
	v.SetDefault("ai.gemini_api_key", "")
	v.SetDefault("ai.openai_api_key", "")
	v.SetDefault("ai.gemini_model", "gemini-2.0-flash")
	v.SetDefault("ai.openai_model", "gpt-4o-mini")
	v.SetDefault("ai.image_model", "gemini-2.0-flash-preview-image-generation")
	v.SetDefault("ai.timeout", 60*time.Second)

	v.SetDefault("books.api_key", "")
	v.SetDefault("books.base_url", "")
	v.SetDefault("books.max_results", 20)
	v.SetDefault("books.timeout", 10*time.Second)

	v.SetDefault("cover.strategy", "lookup")
}

// Load reads configuration. cfgFile may be empty, in which case ./config.yaml
// is used when present. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	// .env.local takes precedence over .env; neither overrides the real environment.
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range legacyEnv {
		prefixed := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(append([]string{key, prefixed}, names...)...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.normalize()
	return &cfg, nil
}

func (c *Config) normalize() {
	c.App.LogLevel = strings.ToLower(strings.TrimSpace(c.App.LogLevel))
	c.App.LogFormat = strings.ToLower(strings.TrimSpace(c.App.LogFormat))
	c.AI.Provider = strings.ToLower(strings.TrimSpace(c.AI.Provider))
	c.AI.GeminiAPIKey = strings.TrimSpace(c.AI.GeminiAPIKey)
	c.AI.OpenAIAPIKey = strings.TrimSpace(c.AI.OpenAIAPIKey)
	c.Books.APIKey = strings.TrimSpace(c.Books.APIKey)
	c.Cover.Strategy = strings.ToLower(strings.TrimSpace(c.Cover.Strategy))
	c.Server.Port = strings.TrimPrefix(strings.TrimSpace(c.Server.Port), ":")
}

// Validate fails fast on settings every command needs. The text-model key is
// checked separately by ValidateTextModel.
func (c *Config) Validate() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.App.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.App.LogLevel)
	}
	if c.App.LogFormat != "json" && c.App.LogFormat != "text" {
		return fmt.Errorf("invalid log format: %s (must be json or text)", c.App.LogFormat)
	}
	if c.Server.Port == "" {
		return errors.New("server port is required")
	}

	if c.AI.Provider != ProviderGemini && c.AI.Provider != ProviderOpenAI {
		return fmt.Errorf("invalid ai provider: %s (must be gemini or openai)", c.AI.Provider)
	}

	switch c.Cover.Strategy {
	case "lookup":
	case "generative":
		if c.AI.GeminiAPIKey == "" {
			return &book.CredentialError{Name: "GEMINI_API_KEY"}
		}
	default:
		return fmt.Errorf("invalid cover strategy: %s (must be lookup or generative)", c.Cover.Strategy)
	}
	return nil
}

// ValidateTextModel reports a missing key for the configured text provider.
func (c *Config) ValidateTextModel() error {
	switch c.AI.Provider {
	case ProviderOpenAI:
		if c.AI.OpenAIAPIKey == "" {
			return &book.CredentialError{Name: "OPENAI_API_KEY"}
		}
	default:
		if c.AI.GeminiAPIKey == "" {
			return &book.CredentialError{Name: "GEMINI_API_KEY"}
		}
	}
	return nil
}

// Warnings lists settings that degrade features without stopping startup.
func (c *Config) Warnings() []string {
	var out []string
	if c.Books.APIKey == "" {
		msg := "GOOGLE_BOOKS_API_KEY is not set: keyword search is unavailable"
		if c.Cover.Strategy == "lookup" {
			msg += " and every cover will be the placeholder"
		}
		out = append(out, msg)
	}
	return out
}

// SlogLevel converts the configured log level.
func (c *Config) SlogLevel() slog.Level {
	switch c.App.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
