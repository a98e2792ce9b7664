package services_test

import (
	"context"
	"testing"

	mockdnd5e "github.com/KirkDiggler/skirmish/internal/clients/dnd5e/mock"
	"github.com/KirkDiggler/skirmish/internal/config"
	mockdice "github.com/KirkDiggler/skirmish/internal/dice/mock"
	"github.com/KirkDiggler/skirmish/internal/services"
	"github.com/KirkDiggler/skirmish/internal/services/skirmish"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testConfig(source string) *config.Config {
	return &config.Config{
		Combat:   config.CombatConfig{MaxTurns: 50, InventorySlots: 3},
		Bestiary: config.BestiaryConfig{Source: source},
	}
}

func TestNewProvider_StaticBestiary(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	// Attack every turn, never crit, never drop loot
	roller.SetDefaultChance(0.6)

	provider := services.NewProvider(&services.ProviderConfig{
		Config: testConfig(config.BestiaryStatic),
		Roller: roller,
	})
	require.NotNil(t, provider.SkirmishService)
	require.NotNil(t, provider.SaveRepository)

	keys, err := provider.Bestiary.Keys(context.Background())
	require.NoError(t, err)
	assert.Contains(t, keys, "goblin")

	outcome, err := provider.SkirmishService.Run(context.Background(), &skirmish.RunInput{
		OwnerID:  "owner-1",
		HeroName: "Aria",
		Monsters: []string{"goblin"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Aria", outcome.Result.Winner)
	assert.Empty(t, outcome.Added)

	list, err := provider.SaveRepository.ListByOwner(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestNewProvider_DND5EBestiaryNeedsClient(t *testing.T) {
	assert.Panics(t, func() {
		services.NewProvider(&services.ProviderConfig{Config: testConfig(config.BestiaryDND5E)})
	})

	ctrl := gomock.NewController(t)
	provider := services.NewProvider(&services.ProviderConfig{
		Config:    testConfig(config.BestiaryDND5E),
		DNDClient: mockdnd5e.NewMockClient(ctrl),
	})
	assert.NotNil(t, provider.Bestiary)
}

func TestNewProvider_RequiresConfig(t *testing.T) {
	assert.Panics(t, func() { services.NewProvider(nil) })
	assert.Panics(t, func() { services.NewProvider(&services.ProviderConfig{}) })
}
