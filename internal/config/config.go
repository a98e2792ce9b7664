package config

import (
	"fmt"
	"time"

	dnderr "github.com/KirkDiggler/skirmish/internal/errors"
	"github.com/caarlos0/env/v11"
)

// Bestiary backends
const (
	BestiaryStatic = "static"
	BestiaryDND5E  = "dnd5e"
)

// Config holds all configuration for the application
type Config struct {
	Redis     RedisConfig
	Combat    CombatConfig
	Bestiary  BestiaryConfig
	Telemetry TelemetryConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// URL is a redis:// URL; empty keeps saves in memory
	URL string `env:"SKIRMISH_REDIS_URL"`
}

// CombatConfig tunes the resolver and the hero's pack
type CombatConfig struct {
	MaxTurns       int   `env:"SKIRMISH_MAX_TURNS" envDefault:"200"`
	InventorySlots int   `env:"SKIRMISH_INVENTORY_SLOTS" envDefault:"10"`
	Seed           int64 `env:"SKIRMISH_SEED"`
}

// BestiaryConfig selects where monsters come from
type BestiaryConfig struct {
	Source       string        `env:"SKIRMISH_BESTIARY" envDefault:"static"`
	DND5ETimeout time.Duration `env:"SKIRMISH_DND5E_TIMEOUT" envDefault:"30s"`
}

// TelemetryConfig holds tracing configuration
type TelemetryConfig struct {
	Enabled  bool   `env:"SKIRMISH_OTEL_ENABLED"`
	Endpoint string `env:"SKIRMISH_OTEL_ENDPOINT"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks ranges that env tags cannot express
func (c *Config) Validate() error {
	if c.Combat.MaxTurns < 0 {
		return dnderr.Validationf("SKIRMISH_MAX_TURNS must not be negative, got %d", c.Combat.MaxTurns)
	}
	if c.Combat.InventorySlots < 1 {
		return dnderr.Validationf("SKIRMISH_INVENTORY_SLOTS must be at least 1, got %d", c.Combat.InventorySlots)
	}
	switch c.Bestiary.Source {
	case BestiaryStatic, BestiaryDND5E:
	default:
		return dnderr.Validationf("SKIRMISH_BESTIARY must be %q or %q, got %q", BestiaryStatic, BestiaryDND5E, c.Bestiary.Source).
			WithMeta("bestiary", c.Bestiary.Source)
	}
	if c.Bestiary.DND5ETimeout <= 0 {
		return dnderr.Validation("SKIRMISH_DND5E_TIMEOUT must be positive")
	}
	if c.Telemetry.Enabled && c.Telemetry.Endpoint == "" {
		return dnderr.Validation("SKIRMISH_OTEL_ENDPOINT is required when tracing is enabled")
	}

	return nil
}
