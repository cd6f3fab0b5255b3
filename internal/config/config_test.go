package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_PATH", "JWT_EXPIRES_DAYS", "GENERATION_MAX_TOKENS",
		"GENERATION_TIMEOUT", "REQUEST_TIMEOUT", "GENERATION_MODEL", "NODE_ENV"} {
		t.Setenv(k, "")
	}

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, ":5175", c.Addr())
	assert.Equal(t, "./data/golf.db", c.DBPath)
	assert.Equal(t, 14, c.JWTExpiresDays)
	assert.Equal(t, 40, c.MaxTokens)
	assert.Equal(t, 20*time.Second, c.GenerationTimeout)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, "gpt-3.5-turbo-instruct", c.Model)
	assert.False(t, c.Production)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GENERATION_MAX_TOKENS", "60")
	t.Setenv("GENERATION_TIMEOUT", "5s")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:8080/v1")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", c.Port)
	assert.Equal(t, 60, c.MaxTokens)
	assert.Equal(t, 5*time.Second, c.GenerationTimeout)
	assert.True(t, c.Production)
	assert.Equal(t, "http://localhost:8080/v1", c.OpenAIBaseURL)
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad int", "JWT_EXPIRES_DAYS", "two weeks"},
		{"bad max tokens", "GENERATION_MAX_TOKENS", "lots"},
		{"bad duration", "GENERATION_TIMEOUT", "20"},
		{"bad request timeout", "REQUEST_TIMEOUT", "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
