package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenTTLConversion(t *testing.T) {
	cfg := AuthConfig{TokenTTLMS: 604800000}
	require.Equal(t, 7*24*time.Hour, cfg.TokenTTL())
}

func TestTokenTTLFallback(t *testing.T) {
	require.Equal(t, 7*24*time.Hour, AuthConfig{}.TokenTTL())
	require.Equal(t, 7*24*time.Hour, AuthConfig{TokenTTLMS: -1}.TokenTTL())
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_TOKEN_TTL_MS", "")
	t.Setenv("APP_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "attendance-service", cfg.App.Name)
	require.Equal(t, int64(604800000), cfg.Auth.TokenTTLMS)
	require.Equal(t, 10, cfg.RateLimit.LoginPerMinute)
	require.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("AUTH_TOKEN_TTL_MS", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}

func TestRequestTimeout(t *testing.T) {
	require.Equal(t, 30*time.Second, AppConfig{RequestTimeoutSeconds: 30}.RequestTimeout())
	require.Zero(t, AppConfig{}.RequestTimeout())
}
