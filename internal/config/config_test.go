package config_test

import (
	"testing"
	"time"

	"github.com/KirkDiggler/skirmish/internal/config"
	dnderr "github.com/KirkDiggler/skirmish/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, 200, cfg.Combat.MaxTurns)
	assert.Equal(t, 10, cfg.Combat.InventorySlots)
	assert.Equal(t, int64(0), cfg.Combat.Seed)
	assert.Equal(t, config.BestiaryStatic, cfg.Bestiary.Source)
	assert.Equal(t, 30*time.Second, cfg.Bestiary.DND5ETimeout)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SKIRMISH_REDIS_URL", "redis://localhost:6379/2")
	t.Setenv("SKIRMISH_MAX_TURNS", "0")
	t.Setenv("SKIRMISH_INVENTORY_SLOTS", "4")
	t.Setenv("SKIRMISH_SEED", "42")
	t.Setenv("SKIRMISH_BESTIARY", "dnd5e")
	t.Setenv("SKIRMISH_DND5E_TIMEOUT", "5s")
	t.Setenv("SKIRMISH_OTEL_ENABLED", "true")
	t.Setenv("SKIRMISH_OTEL_ENDPOINT", "localhost:4318")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "redis://localhost:6379/2", cfg.Redis.URL)
	assert.Equal(t, 0, cfg.Combat.MaxTurns)
	assert.Equal(t, 4, cfg.Combat.InventorySlots)
	assert.Equal(t, int64(42), cfg.Combat.Seed)
	assert.Equal(t, config.BestiaryDND5E, cfg.Bestiary.Source)
	assert.Equal(t, 5*time.Second, cfg.Bestiary.DND5ETimeout)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "localhost:4318", cfg.Telemetry.Endpoint)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		validation bool
	}{
		{name: "unparseable turns", env: map[string]string{"SKIRMISH_MAX_TURNS": "many"}},
		{name: "negative turns", env: map[string]string{"SKIRMISH_MAX_TURNS": "-1"}, validation: true},
		{name: "no slots", env: map[string]string{"SKIRMISH_INVENTORY_SLOTS": "0"}, validation: true},
		{name: "unknown bestiary", env: map[string]string{"SKIRMISH_BESTIARY": "zoo"}, validation: true},
		{name: "zero timeout", env: map[string]string{"SKIRMISH_DND5E_TIMEOUT": "0s"}, validation: true},
		{name: "tracing without endpoint", env: map[string]string{"SKIRMISH_OTEL_ENABLED": "true"}, validation: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := config.Load()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Equal(t, tt.validation, dnderr.IsValidation(err))
		})
	}
}
