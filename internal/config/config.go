// Package config loads process configuration from .env and the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderArk    = "ark"
	ProviderNone   = "none"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	GinMode     string `env:"GIN_MODE" envDefault:"debug"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"mongodb://localhost:27017"`
	DBName      string `env:"DB_NAME" envDefault:"evol_jewels"`
	// RedisURL is optional; caches and the shared limiter store are skipped without it.
	RedisURL        string   `env:"REDIS_URL"`
	CORSOrigins     []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	RateLimitPerSec uint     `env:"RATE_LIMIT_PER_SEC" envDefault:"10"`
	USDToINR        float64  `env:"USD_TO_INR" envDefault:"83"`

	OracleProvider       string        `env:"ORACLE_PROVIDER" envDefault:"openai"`
	OracleTimeout        time.Duration `env:"ORACLE_TIMEOUT" envDefault:"22s"`
	OpenAIAPIKey         string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL        string        `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	OpenAIModel          string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIFallbackModels []string      `env:"OPENAI_FALLBACK_MODELS" envSeparator:","`
	ArkAPIKey            string        `env:"ARK_API_KEY"`
	ArkBaseURL           string        `env:"ARK_BASE_URL" envDefault:"https://ark.cn-beijing.volces.com/api/v3"`
	ArkModel             string        `env:"ARK_MODEL"`

	PassportCacheTTL time.Duration `env:"PASSPORT_CACHE_TTL" envDefault:"10m"`
	CatalogCacheTTL  time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"5m"`
	SeedCatalog      bool          `env:"SEED_CATALOG" envDefault:"true"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads ENV_FILE (default .env) when present, then parses the environment.
func Load() (Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	cfg.OracleProvider = strings.ToLower(strings.TrimSpace(cfg.OracleProvider))
	return cfg, nil
}

// Provider resolves the oracle backend, returning ProviderNone when its credential is missing.
func (c Config) Provider() string {
	switch c.OracleProvider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey != "" {
			return ProviderOpenAI
		}
	case ProviderArk:
		if c.ArkAPIKey != "" && c.ArkModel != "" {
			return ProviderArk
		}
	}
	return ProviderNone
}

// OracleModels is the preferred model followed by the fallbacks.
func (c Config) OracleModels() []string {
	return append([]string{c.OpenAIModel}, c.OpenAIFallbackModels...)
}

func (c Config) Addr() string {
	return "0.0.0.0:" + c.Port
}
