// Package config reads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	RelayWeb3Forms = "web3forms"
	RelaySMTP      = "smtp"
)

type Config struct {
	Port         string        `mapstructure:"PORT" validate:"required"`
	GinMode      string        `mapstructure:"GIN_MODE" validate:"omitempty,oneof=debug release test"`
	DatabasePath string        `mapstructure:"DATABASE_PATH" validate:"required"`
	SessionTTL   time.Duration `mapstructure:"SESSION_TTL" validate:"gt=0"`

	Relay RelayConfig `mapstructure:",squash"`
	Admin AdminConfig `mapstructure:",squash"`
	Log   LogConfig   `mapstructure:",squash"`
}

type RelayConfig struct {
	Provider  string        `mapstructure:"RELAY_PROVIDER" validate:"oneof=web3forms smtp"`
	URL       string        `mapstructure:"RELAY_URL" validate:"omitempty,url"`
	AccessKey string        `mapstructure:"WEB3FORMS_ACCESS_KEY"`
	Timeout   time.Duration `mapstructure:"RELAY_TIMEOUT" validate:"gt=0"`

	SMTPHost string `mapstructure:"SMTP_HOST"`
	SMTPPort int    `mapstructure:"SMTP_PORT"`
	SMTPUser string `mapstructure:"SMTP_USER"`
	SMTPPass string `mapstructure:"SMTP_PASS"`
	ToEmail  string `mapstructure:"TO_EMAIL" validate:"omitempty,email"`
}

type AdminConfig struct {
	Username string `mapstructure:"ADMIN_USERNAME"`
	Password string `mapstructure:"ADMIN_PASSWORD"`
}

type LogConfig struct {
	Level  string `mapstructure:"LOG_LEVEL" validate:"omitempty,oneof=trace debug info warn error"`
	Format string `mapstructure:"LOG_FORMAT" validate:"omitempty,oneof=console json"`
	File   string `mapstructure:"LOG_FILE"`
}

var defaults = map[string]any{
	"PORT":                 "8080",
	"GIN_MODE":             "",
	"DATABASE_PATH":        "portfolio.db",
	"SESSION_TTL":          "30m",
	"RELAY_PROVIDER":       RelayWeb3Forms,
	"RELAY_URL":            "",
	"WEB3FORMS_ACCESS_KEY": "",
	"RELAY_TIMEOUT":        "30s",
	"SMTP_HOST":            "smtp.gmail.com",
	"SMTP_PORT":            587,
	"SMTP_USER":            "",
	"SMTP_PASS":            "",
	"TO_EMAIL":             "hello@bintang.ai",
	"ADMIN_USERNAME":       "",
	"ADMIN_PASSWORD":       "",
	"LOG_LEVEL":            "info",
	"LOG_FORMAT":           "console",
	"LOG_FILE":             "",
}

// Load reads envFile (if it exists) into the process environment and then
// binds every setting from the environment.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Relay.Provider = strings.ToLower(strings.TrimSpace(cfg.Relay.Provider))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	switch c.Relay.Provider {
	case RelayWeb3Forms:
		if c.Relay.AccessKey == "" {
			return errors.New("invalid config: WEB3FORMS_ACCESS_KEY is required for the web3forms relay")
		}
	case RelaySMTP:
		if c.Relay.SMTPUser == "" || c.Relay.SMTPPass == "" {
			return errors.New("invalid config: SMTP_USER and SMTP_PASS are required for the smtp relay")
		}
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
