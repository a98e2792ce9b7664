package services

import (
	"github.com/KirkDiggler/skirmish/internal/abilities"
	"github.com/KirkDiggler/skirmish/internal/clients/dnd5e"
	"github.com/KirkDiggler/skirmish/internal/config"
	"github.com/KirkDiggler/skirmish/internal/dice"
	"github.com/KirkDiggler/skirmish/internal/domain/combat"
	"github.com/KirkDiggler/skirmish/internal/repositories/saves"
	"github.com/KirkDiggler/skirmish/internal/services/bestiary"
	"github.com/KirkDiggler/skirmish/internal/services/loot"
	"github.com/KirkDiggler/skirmish/internal/services/skirmish"
	"github.com/KirkDiggler/skirmish/internal/uuid"
)

// Special attack costs
const (
	SpecialAbility  = "power_strike"
	SpecialManaCost = 10
)

// Provider holds all service instances
type Provider struct {
	SkirmishService skirmish.Service
	SaveRepository  saves.Repository
	Bestiary        bestiary.Source
	Resolver        combat.Resolver
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	Config         *config.Config // Required
	DNDClient      dnd5e.Client   // Required when the bestiary is dnd5e
	SaveRepository saves.Repository
	Roller         dice.Roller
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	if cfg == nil || cfg.Config == nil {
		panic("config is required")
	}

	// Use in-memory repository if none provided
	saveRepo := cfg.SaveRepository
	if saveRepo == nil {
		saveRepo = saves.NewInMemoryRepository(nil)
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.NewRandomRoller(cfg.Config.Combat.Seed)
	}

	var source bestiary.Source = bestiary.NewStaticSource(nil)
	if cfg.Config.Bestiary.Source == config.BestiaryDND5E {
		if cfg.DNDClient == nil {
			panic("DND client is required for the dnd5e bestiary")
		}
		source = bestiary.NewAPISource(&bestiary.APISourceConfig{
			DNDClient: cfg.DNDClient,
			Fallback:  source,
		})
	}

	resolver := combat.NewResolver(&combat.ResolverConfig{
		Roller: roller,
		Loot:   loot.DefaultTable(),
		Gate: abilities.NewGate(&abilities.GateConfig{
			Ability:  SpecialAbility,
			ManaCost: SpecialManaCost,
		}),
		IDs:      uuid.NewGoogleUUIDGenerator(),
		MaxTurns: cfg.Config.Combat.MaxTurns,
	})

	skirmishService := skirmish.NewService(&skirmish.ServiceConfig{
		Repository:     saveRepo,
		Bestiary:       source,
		Resolver:       resolver,
		InventorySlots: cfg.Config.Combat.InventorySlots,
	})

	return &Provider{
		SkirmishService: skirmishService,
		SaveRepository:  saveRepo,
		Bestiary:        source,
		Resolver:        resolver,
	}
}
