package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix shared by all application environment variables.
const EnvPrefix = "DAYPLAN"

// Default values applied before any configuration source is read.
const (
	DefaultPort            = 8080
	DefaultLogLevel        = "info"
	DefaultTokenLifetime   = 60
	DefaultBCryptCost      = 10
	DefaultModelName       = "gemini-2.5-flash"
	DefaultGeminiEndpoint  = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent"
	DefaultTransport       = "rest"
	fallbackGeminiKeyEnvar = "GEMINI_API_KEY"
)

// Options controls where Load looks for configuration.
type Options struct {
	// ConfigFile is an explicit config file path. When empty, config.yaml in
	// the working directory is used if present.
	ConfigFile string
	// EnvFile is the dotenv file loaded before reading the environment.
	// Existing environment variables are never overridden.
	EnvFile string
}

// Load reads configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadWithOptions(Options{EnvFile: ".env"})
}

// LoadWithOptions is Load with explicit file locations.
func LoadWithOptions(opts Options) (*Config, error) {
	v, err := newViper(opts)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadLLM loads and validates only the LLM section. It is used by tools
// that convert paragraphs without a database or an HTTP server.
func LoadLLM(opts Options) (*LLMConfig, error) {
	v, err := newViper(opts)
	if err != nil {
		return nil, err
	}

	// UnmarshalKey("llm") would only see the file and defaults; env-bound
	// keys are merged by the full Unmarshal.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg.LLM); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg.LLM, nil
}

func newViper(opts Options) (*viper.Viper, error) {
	if opts.EnvFile != "" {
		// godotenv.Load leaves variables that are already set untouched.
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", opts.EnvFile, err)
		}
	}

	v := viper.New()

	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("auth.token_lifetime_minutes", DefaultTokenLifetime)
	v.SetDefault("auth.bcrypt_cost", DefaultBCryptCost)
	v.SetDefault("llm.model_name", DefaultModelName)
	v.SetDefault("llm.endpoint", DefaultGeminiEndpoint)
	v.SetDefault("llm.transport", DefaultTransport)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || opts.ConfigFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key must be bound explicitly so Unmarshal sees env-only values.
	keys := []string{
		"server.port", "server.log_level",
		"database.url",
		"auth.jwt_secret", "auth.token_lifetime_minutes", "auth.bcrypt_cost",
		"llm.model_name", "llm.endpoint", "llm.transport",
		"llm.prompt_template_path",
	}
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	// The first variable that is set wins; the config file is consulted last.
	if err := v.BindEnv("llm.gemini_api_key", EnvPrefix+"_LLM_GEMINI_API_KEY", fallbackGeminiKeyEnvar); err != nil {
		return nil, fmt.Errorf("failed to bind env for llm.gemini_api_key: %w", err)
	}

	return v, nil
}
