package config

import (
	"testing"
	"time"

	"github.com/local/contextblog/internal/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"OPENROUTER_API_KEY", "OPENAI_API_KEY", "AI_BASE_URL", "AI_READ_TIMEOUT", "AI_IMAGE_READ_TIMEOUT", "AI_CONNECT_TIMEOUT", "AI_SOLVE_MODELS", "AI_TAG_MODELS", "PORT", "NEWS_DEFAULT_COUNT", "NEWS_MAX_COUNT", "CACHE_ENABLED", "CACHE_TTL", "LOG_FILE"} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()

	assert.Equal(t, "", cfg.AI.APIKey)
	assert.Equal(t, ai.DefaultBaseURL, cfg.AI.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.AI.ConnectTimeout)
	assert.Equal(t, 15*time.Second, cfg.AI.ReadTimeout)
	assert.Equal(t, cfg.AI.ReadTimeout, cfg.AI.ImageReadTimeout)
	assert.Equal(t, ai.DefaultChains().For(ai.KindSolve), cfg.AI.Chains.For(ai.KindSolve))
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, 4, cfg.HTTP.NewsDefaultCount)
	assert.Equal(t, 8, cfg.HTTP.NewsMaxCount)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "logs/contextblog.log", cfg.Logging.File)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-or-v1-legacy")
	t.Setenv("AI_READ_TIMEOUT", "30s")
	t.Setenv("AI_IMAGE_READ_TIMEOUT", "45s")
	t.Setenv("AI_SOLVE_MODELS", "openai/gpt-4o-mini, google/gemini-flash-1.5")
	t.Setenv("AI_TAG_MODELS", " , ")
	t.Setenv("CACHE_ENABLED", "off")
	t.Setenv("NEWS_DEFAULT_COUNT", "6")
	t.Setenv("NEWS_MAX_COUNT", "3")
	t.Setenv("AXIOM_DATASET", "prod")

	cfg := FromEnv()
	assert.Equal(t, "sk-or-v1-legacy", cfg.AI.APIKey)
	assert.Equal(t, 30*time.Second, cfg.AI.ReadTimeout)
	assert.Equal(t, 45*time.Second, cfg.AI.ImageReadTimeout)

	solve := cfg.AI.Chains.For(ai.KindSolve)
	require.Len(t, solve, 2)
	assert.Equal(t, "openai/gpt-4o-mini", solve[0].Model)
	assert.Equal(t, ai.DefaultChains().For(ai.KindTag), cfg.AI.Chains.For(ai.KindTag))

	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 6, cfg.HTTP.NewsDefaultCount)
	assert.Equal(t, 6, cfg.HTTP.NewsMaxCount)
	assert.Equal(t, "prod_contextblog", cfg.Axiom.Dataset)
}

func TestPrimaryKeyWinsOverAlias(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "sk-or-v1-primary")
	t.Setenv("OPENAI_API_KEY", "sk-or-v1-legacy")
	assert.Equal(t, "sk-or-v1-primary", FromEnv().AI.APIKey)
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, 3, parseInt("x", 3))
	assert.Equal(t, 2*time.Second, parseDuration("soon", 2*time.Second))
	assert.True(t, parseBool(" YES "))
	assert.False(t, parseBool("0"))
}
