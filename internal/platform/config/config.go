// Package config loads the process configuration into an explicit struct.
// Configuration is read once at startup and injected into the components
// that need it; nothing below main reads ambient process state.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"auth_backend/internal/platform/db"
	"auth_backend/internal/platform/mail"
)

// Token lifetimes are fixed product decisions rather than deploy-time knobs.
const (
	AuthTokenTTL  = time.Hour
	ResetTokenTTL = 15 * time.Minute
)

// JWT holds the signing secret and token lifetimes.
type JWT struct {
	Secret   string
	AuthTTL  time.Duration
	ResetTTL time.Duration
}

// Config is the full process configuration.
type Config struct {
	// Addr is the listen address for the HTTP server, e.g. ":8080".
	Addr string

	DB   db.Config
	JWT  JWT
	SMTP mail.Config

	// BaseURL is the public URL prefix used when building reset links.
	BaseURL string

	// RunMigrations enables schema auto-migration at startup.
	RunMigrations bool
}

// Load reads configuration from environment variables with sensible defaults.
// It fails if the JWT secret is unset, since tokens signed with an empty
// secret would be forgeable.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "auth_backend")
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("APP_BASE_URL", "http://localhost:8080")
	v.SetDefault("RUN_MIGRATIONS", false)

	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	cfg := &Config{
		Addr: ":" + v.GetString("PORT"),
		DB: db.Config{
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetString("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			Name:         v.GetString("DB_NAME"),
			InstanceName: v.GetString("INSTANCE_CONNECTION_NAME"),
		},
		JWT: JWT{
			Secret:   secret,
			AuthTTL:  AuthTokenTTL,
			ResetTTL: ResetTokenTTL,
		},
		SMTP: mail.Config{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			Username: v.GetString("EMAIL_USER"),
			Password: v.GetString("EMAIL_PASS"),
			From:     v.GetString("EMAIL_USER"),
		},
		BaseURL:       v.GetString("APP_BASE_URL"),
		RunMigrations: v.GetBool("RUN_MIGRATIONS"),
	}

	return cfg, nil
}
