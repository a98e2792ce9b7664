package abilities

import (
	"context"
	"time"

	"github.com/KirkDiggler/skirmish/internal/domain/character"
)

// Gate runs an ability chain to decide whether a special attack may happen.
// Any error from the chain refuses the attack.
type Gate struct {
	ability string
	handler Handler
}

// GateConfig holds configuration for the gate
type GateConfig struct {
	Ability string // Required

	ManaCost int           // 0 for free
	Cooldown time.Duration // 0 for none
	Clock    Clock         // Defaults to RealClock
	Logger   Logger        // Defaults to the standard log package
}

// NewGate builds the chain logging, validation, cooldown, mana cost in that order
func NewGate(cfg *GateConfig) *Gate {
	if cfg == nil || cfg.Ability == "" {
		panic("ability is required")
	}

	middleware := []Middleware{
		WithLogging(cfg.Logger),
		WithValidation(),
	}
	if cfg.Cooldown > 0 {
		middleware = append(middleware, WithCooldown(cfg.Clock, cfg.Cooldown))
	}
	if cfg.ManaCost > 0 {
		middleware = append(middleware, WithManaCost(cfg.ManaCost))
	}

	return &Gate{
		ability: cfg.Ability,
		handler: Chain(middleware...)(Noop),
	}
}

// Allow reports whether actor may use the gated ability now, paying its costs if so
func (g *Gate) Allow(ctx context.Context, actor *character.Character) bool {
	return g.handler.Handle(ctx, &Use{Ability: g.ability, Caster: actor}) == nil
}
