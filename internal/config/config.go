// Package config loads server and session settings. Priority:
// environment variables (FOODBIZ_ prefix), then an optional
// config.yaml, then defaults. Gameplay tables and economics are
// deliberately not configurable; only the report span (the one knob
// the rules leave open) and operational settings live here.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the binary needs at startup.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Session SessionConfig `mapstructure:"session"`
}

// ServerConfig covers the HTTP surface.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"gte=1,lte=65535"`
	AdminKey string `mapstructure:"admin_key"`
}

// SessionConfig covers per-game setup.
type SessionConfig struct {
	MaxDays    int `mapstructure:"max_days" validate:"gte=1"`
	ReportSpan int `mapstructure:"report_span" validate:"gte=1"`

	// Weather pins the session condition by display name
	// (Słonecznie/Deszczowo/Pochmurno); empty draws it at random.
	Weather string `mapstructure:"weather"`

	// Seed makes the weather draw reproducible when Weather is empty.
	// 0 keeps the crypto/rand draw.
	Seed int64 `mapstructure:"seed"`

	// LedgerPath overrides the in-memory ledger, mainly for debugging.
	LedgerPath string `mapstructure:"ledger_path"`
}

// Load reads configuration from env and the optional config file.
func Load(configPath string) (*Config, error) {
	// .env is optional; missing files are fine.
	_ = godotenv.Load()

	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("FOODBIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.admin_key", "")
	v.SetDefault("session.max_days", 35)
	v.SetDefault("session.report_span", 7)
	v.SetDefault("session.weather", "")
	v.SetDefault("session.seed", 0)
	v.SetDefault("session.ledger_path", "")
}
