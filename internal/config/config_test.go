package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://api.coingecko.com/api/v3", cfg.CoinGeckoURL)
	assert.Equal(t, "@every 15m", cfg.PriceRefreshSchedule)
	assert.False(t, cfg.MailEnabled())
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.MailEnabled())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigin)
}

func TestNewConfig_RequiredValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := NewConfig()
	assert.EqualError(t, err, "JWT_SECRET is required")
}
