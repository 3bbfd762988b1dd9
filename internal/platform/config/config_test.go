package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "127.0.0.1", cfg.DB.Host)
	assert.Equal(t, "3306", cfg.DB.Port)
	assert.Equal(t, "auth_backend", cfg.DB.Name)
	assert.Equal(t, "test-secret", cfg.JWT.Secret)
	assert.Equal(t, AuthTokenTTL, cfg.JWT.AuthTTL)
	assert.Equal(t, ResetTokenTTL, cfg.JWT.ResetTTL)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.False(t, cfg.RunMigrations)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "4000")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("EMAIL_USER", "noreply@example.com")
	t.Setenv("EMAIL_PASS", "app-password")
	t.Setenv("APP_BASE_URL", "https://auth.example.com")
	t.Setenv("RUN_MIGRATIONS", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":4000", cfg.Addr)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "noreply@example.com", cfg.SMTP.Username)
	assert.Equal(t, "noreply@example.com", cfg.SMTP.From)
	assert.Equal(t, "app-password", cfg.SMTP.Password)
	assert.Equal(t, "https://auth.example.com", cfg.BaseURL)
	assert.True(t, cfg.RunMigrations)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}
