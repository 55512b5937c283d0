// Package config loads the rebal settings from the environment and persists the
// LLM API keys entered by the user.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/etnz/rebalancer"
	"github.com/joho/godotenv"
)

// LLM providers.
const (
	Groq   = "groq"
	Gemini = "gemini"
)

// Settings holds every tunable of the application.
type Settings struct {
	LogLevel  string `env:"REBAL_LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"REBAL_LOG_PRETTY" envDefault:"true"`

	Provider     string        `env:"REBAL_LLM_PROVIDER" envDefault:"groq"`
	GroqAPIKey   string        `env:"GROQ_API_KEY"`
	GroqModel    string        `env:"REBAL_GROQ_MODEL" envDefault:"llama-3.3-70b-versatile"`
	GroqBaseURL  string        `env:"REBAL_GROQ_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	GeminiAPIKey string        `env:"GEMINI_API_KEY"`
	GeminiModel  string        `env:"REBAL_GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	LLMTimeout   time.Duration `env:"REBAL_LLM_TIMEOUT" envDefault:"30s"`
	LLMCache     bool          `env:"REBAL_LLM_CACHE" envDefault:"true"`
	CacheDir     string        `env:"REBAL_CACHE_DIR"`

	DebtPrefix    string `env:"REBAL_DEBT_PREFIX" envDefault:"SG"`
	MaxIterations int    `env:"REBAL_MAX_ITERATIONS" envDefault:"10000"`
	Currency      string `env:"REBAL_CURRENCY" envDefault:"INR"`

	ConfigFile string `env:"REBAL_CONFIG_FILE"`
}

// Load reads an optional .env file in the working directory, then the process
// environment.
func Load() (Settings, error) {
	_ = godotenv.Load(".env")
	var s Settings
	if err := env.Parse(&s); err != nil {
		return s, fmt.Errorf("parse settings: %w", err)
	}
	return s, s.validate()
}

// LoadFrom reads settings from environ only, ignoring the process environment.
func LoadFrom(environ map[string]string) (Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, env.Options{Environment: environ}); err != nil {
		return s, fmt.Errorf("parse settings: %w", err)
	}
	return s, s.validate()
}

func (s *Settings) validate() error {
	s.Provider = strings.ToLower(strings.TrimSpace(s.Provider))
	switch s.Provider {
	case Groq, Gemini:
	default:
		return fmt.Errorf("unknown LLM provider %q, expected %q or %q", s.Provider, Groq, Gemini)
	}
	if s.MaxIterations <= 0 {
		return fmt.Errorf("REBAL_MAX_ITERATIONS must be positive, got %d", s.MaxIterations)
	}
	if s.ConfigFile == "" {
		s.ConfigFile = DefaultPath()
	}
	if s.CacheDir == "" {
		s.CacheDir = DefaultCacheDir()
	}
	return nil
}

// APIKey returns the key of the selected provider.
func (s Settings) APIKey() string {
	if s.Provider == Gemini {
		return s.GeminiAPIKey
	}
	return s.GroqAPIKey
}

// Resolve fills API keys missing from the environment with the ones saved in st.
func (s *Settings) Resolve(st Store) error {
	saved, err := st.Load()
	if err != nil {
		return err
	}
	if s.GroqAPIKey == "" {
		s.GroqAPIKey = saved[keyName(Groq)]
	}
	if s.GeminiAPIKey == "" {
		s.GeminiAPIKey = saved[keyName(Gemini)]
	}
	return nil
}

// Options returns the engine options configured by s.
func (s Settings) Options() rebalancer.Options {
	opts := rebalancer.DefaultOptions()
	opts.DebtPrefix = strings.ToUpper(strings.TrimSpace(s.DebtPrefix))
	opts.MaxIterations = s.MaxIterations
	return opts
}
