package combat

//go:generate mockgen -destination=mock/mock_resolver.go -package=mockcombat -source=resolver.go

import (
	"context"
	"sort"

	"github.com/KirkDiggler/skirmish/internal/dice"
	"github.com/KirkDiggler/skirmish/internal/domain/character"
	dnderr "github.com/KirkDiggler/skirmish/internal/errors"
	"github.com/KirkDiggler/skirmish/internal/uuid"
)

// Resolver runs a combat between one primary character and its adversaries to the end
type Resolver interface {
	Resolve(ctx context.Context, primary *character.Character, adversaries []*character.Character) (*CombatResult, error)
}

type resolver struct {
	roller   dice.Roller
	policy   Policy
	loot     LootTable
	gate     SpecialGate
	ids      uuid.Generator
	maxTurns int
}

// ResolverConfig holds configuration for the resolver
type ResolverConfig struct {
	Roller dice.Roller // Required

	Policy Policy         // Defaults to DefaultPolicy
	Loot   LootTable      // Optional, no drops when nil
	Gate   SpecialGate    // Optional, special attacks always allowed when nil
	IDs    uuid.Generator // Defaults to google uuids

	// MaxTurns stops a combat that nobody can finish. 0 means no limit.
	MaxTurns int
}

// NewResolver creates a new resolver
func NewResolver(cfg *ResolverConfig) Resolver {
	if cfg == nil || cfg.Roller == nil {
		panic("roller is required")
	}

	r := &resolver{
		roller:   cfg.Roller,
		policy:   cfg.Policy,
		loot:     cfg.Loot,
		gate:     cfg.Gate,
		ids:      cfg.IDs,
		maxTurns: cfg.MaxTurns,
	}

	if r.policy == nil {
		r.policy = DefaultPolicy{}
	}
	if r.ids == nil {
		r.ids = uuid.NewGoogleUUIDGenerator()
	}

	return r
}

// Resolve alternates turns in speed order until the primary or every adversary is down.
// Characters are mutated in place.
func (r *resolver) Resolve(ctx context.Context, primary *character.Character, adversaries []*character.Character) (*CombatResult, error) {
	if primary == nil {
		return nil, dnderr.InvalidArgument("primary combatant is required")
	}
	if len(adversaries) == 0 {
		return nil, dnderr.Validation("at least one adversary is required")
	}
	for i, a := range adversaries {
		if a == nil {
			return nil, dnderr.Validationf("adversary %d is nil", i)
		}
	}

	order := TurnOrder(primary, adversaries)
	field := NewField(primary, adversaries)
	result := &CombatResult{
		ID:      r.ids.New(),
		Actions: []CombatAction{},
	}

	for turnIndex := 0; primary.IsAlive() && field.LivingAdversaries() > 0; turnIndex++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		current := order[turnIndex%len(order)]
		if !current.Character.IsAlive() {
			continue
		}

		if r.maxTurns > 0 && result.Turns >= r.maxTurns {
			result.Stalemate = true
			return result, nil
		}

		result.Turns++
		action, err := r.takeTurn(ctx, current, field, result.Turns)
		if err != nil {
			return nil, dnderr.Wrapf(err, "turn %d for %s", result.Turns, current.Character.Name).
				WithMeta("combat_id", result.ID)
		}
		result.Actions = append(result.Actions, action)
	}

	if !primary.IsAlive() {
		result.Winner = adversaries[0].Name
		return result, nil
	}

	result.Winner = primary.Name
	for _, a := range adversaries {
		if !a.IsAlive() {
			result.Experience += a.Level * ExperiencePerLevel
		}
	}

	if r.loot != nil {
		drops, err := r.loot.Drop(r.roller)
		if err != nil {
			return nil, dnderr.Wrap(err, "failed to roll loot")
		}
		result.Loot = drops
	}

	return result, nil
}

func (r *resolver) takeTurn(ctx context.Context, current Participant, field *Field, turn int) (CombatAction, error) {
	actor := current.Character
	decision := r.policy.Choose(current, r.roller.Chance(), field)

	switch decision.Kind {
	case ActionAttack:
		if decision.Target == nil || !decision.Target.IsAlive() {
			return CombatAction{Kind: ActionDefend, Actor: actor.Name, Turn: turn}, nil
		}

		special := decision.Special
		if special && r.gate != nil && !r.gate.Allow(ctx, actor) {
			special = false
		}

		critical := r.roller.Chance() < CriticalChance
		damage, err := actor.Attack(decision.Target, critical)
		if err != nil {
			return CombatAction{}, err
		}

		return CombatAction{
			Kind:     ActionAttack,
			Actor:    actor.Name,
			Target:   decision.Target.Name,
			Damage:   &damage,
			Critical: critical,
			Special:  special,
			Turn:     turn,
		}, nil
	case ActionFlee:
		return CombatAction{Kind: ActionFlee, Actor: actor.Name, Turn: turn}, nil
	default:
		return CombatAction{Kind: ActionDefend, Actor: actor.Name, Turn: turn}, nil
	}
}

// TurnOrder lists the primary then the adversaries, sorted by speed from fastest.
// Ties keep that listing order.
func TurnOrder(primary *character.Character, adversaries []*character.Character) []Participant {
	order := make([]Participant, 0, len(adversaries)+1)
	order = append(order, Participant{Character: primary, Side: SidePrimary})
	for _, a := range adversaries {
		order = append(order, Participant{Character: a, Side: SideAdversary})
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Character.Stats().Speed > order[j].Character.Stats().Speed
	})

	return order
}
