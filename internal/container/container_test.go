package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evol-jewels-io/stylist/internal/config"
	"evol-jewels-io/stylist/pkg/oracle"
	"evol-jewels-io/stylist/pkg/vibe"
)

func TestNewOracleDisabledWithoutCredentials(t *testing.T) {
	cfg := config.Config{OracleProvider: config.ProviderOpenAI}

	o, err := NewOracle(context.Background(), cfg, vibe.DefaultTable())

	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestNewOracleOpenAI(t *testing.T) {
	cfg := config.Config{
		OracleProvider:       config.ProviderOpenAI,
		OpenAIAPIKey:         "sk-test",
		OpenAIModel:          "gpt-4o-mini",
		OpenAIFallbackModels: []string{"gpt-4.1-mini", "gpt-4o-mini"},
	}

	o, err := NewOracle(context.Background(), cfg, vibe.DefaultTable())

	require.NoError(t, err)
	openai, ok := o.(*oracle.OpenAI)
	require.True(t, ok)
	assert.Equal(t, "openai", openai.Name())
	assert.Equal(t, []string{"gpt-4o-mini", "gpt-4.1-mini"}, openai.Models())
}

func TestNewOracleArkNeedsModel(t *testing.T) {
	cfg := config.Config{OracleProvider: config.ProviderArk, ArkAPIKey: "ak"}

	o, err := NewOracle(context.Background(), cfg, vibe.DefaultTable())

	require.NoError(t, err)
	assert.Nil(t, o)
}
