package combat

import (
	"context"

	"github.com/KirkDiggler/skirmish/internal/dice"
	"github.com/KirkDiggler/skirmish/internal/domain/character"
	"github.com/KirkDiggler/skirmish/internal/domain/item"
)

// ActionKind is what a participant did on its turn
type ActionKind string

const (
	ActionAttack ActionKind = "attack"
	ActionDefend ActionKind = "defend"
	ActionFlee   ActionKind = "flee"
)

// Side tells the primary combatant apart from its adversaries
type Side string

const (
	SidePrimary   Side = "primary"
	SideAdversary Side = "adversary"
)

const (
	// CriticalChance is the probability that an attack doubles its raw damage
	CriticalChance = 0.10

	// ExperiencePerLevel is awarded for every level of each defeated adversary
	ExperiencePerLevel = 25
)

// CombatAction is one entry in the combat log
type CombatAction struct {
	Kind     ActionKind `json:"kind"`
	Actor    string     `json:"actor"`
	Target   string     `json:"target,omitempty"`
	Damage   *int       `json:"damage,omitempty"`
	Critical bool       `json:"critical,omitempty"`
	Special  bool       `json:"special,omitempty"`
	Turn     int        `json:"turn"`
}

// CombatResult is the outcome of one resolved combat.
// An empty Winner means nobody won, which only happens on a stalemate.
type CombatResult struct {
	ID         string         `json:"id"`
	Actions    []CombatAction `json:"actions"`
	Winner     string         `json:"winner"`
	Experience int            `json:"experience"`
	Loot       []item.Item    `json:"-"`
	Turns      int            `json:"turns"`
	Stalemate  bool           `json:"stalemate"`
}

// Participant is a character in the turn order
type Participant struct {
	Character *character.Character
	Side      Side
}

// LootTable produces the drops for a victory. It is evaluated once per combat.
type LootTable interface {
	Drop(r dice.Roller) ([]item.Item, error)
}

// SpecialGate decides whether an actor may use its special attack right now
type SpecialGate interface {
	Allow(ctx context.Context, actor *character.Character) bool
}
