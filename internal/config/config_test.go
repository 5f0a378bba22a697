package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnvFile(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoadDefaults(t *testing.T) {
	noEnvFile(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 83.0, cfg.USDToINR)
	assert.Equal(t, 22*time.Second, cfg.OracleTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.True(t, cfg.SeedCatalog)
}

func TestLoadFromEnvironment(t *testing.T) {
	noEnvFile(t)
	t.Setenv("PORT", "9000")
	t.Setenv("USD_TO_INR", "84.5")
	t.Setenv("CORS_ORIGINS", "https://kiosk.example,https://admin.example")
	t.Setenv("ORACLE_PROVIDER", " OpenAI ")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("OPENAI_FALLBACK_MODELS", "gpt-4o-mini,gpt-4.1-mini")
	t.Setenv("PASSPORT_CACHE_TTL", "1m")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 84.5, cfg.USDToINR)
	assert.Equal(t, []string{"https://kiosk.example", "https://admin.example"}, cfg.CORSOrigins)
	assert.Equal(t, ProviderOpenAI, cfg.Provider())
	assert.Equal(t, []string{"gpt-4o", "gpt-4o-mini", "gpt-4.1-mini"}, cfg.OracleModels())
	assert.Equal(t, time.Minute, cfg.PassportCacheTTL)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("DB_NAME=from_file\nRATE_LIMIT_PER_SEC=3\n"), 0o600))
	t.Setenv("ENV_FILE", path)
	// godotenv does not override variables that are already set
	t.Setenv("DB_NAME", "")
	require.NoError(t, os.Unsetenv("DB_NAME"))
	t.Setenv("RATE_LIMIT_PER_SEC", "7")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "from_file", cfg.DBName)
	assert.Equal(t, uint(7), cfg.RateLimitPerSec)
}

func TestLoadInvalid(t *testing.T) {
	noEnvFile(t)
	t.Setenv("ORACLE_TIMEOUT", "soon")

	_, err := Load()

	assert.Error(t, err)
}

func TestProvider(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want string
	}{
		{"openai without key", Config{OracleProvider: ProviderOpenAI}, ProviderNone},
		{"openai", Config{OracleProvider: ProviderOpenAI, OpenAIAPIKey: "k"}, ProviderOpenAI},
		{"ark without model", Config{OracleProvider: ProviderArk, ArkAPIKey: "k"}, ProviderNone},
		{"ark", Config{OracleProvider: ProviderArk, ArkAPIKey: "k", ArkModel: "ep-1"}, ProviderArk},
		{"none", Config{OracleProvider: ProviderNone, OpenAIAPIKey: "k"}, ProviderNone},
		{"unknown", Config{OracleProvider: "bard", OpenAIAPIKey: "k"}, ProviderNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.cfg.Provider())
		})
	}
}
