package combat

import (
	"github.com/KirkDiggler/skirmish/internal/domain/character"
)

const (
	primaryAttackThreshold   = 0.70
	primarySpecialThreshold  = 0.90
	adversaryAttackThreshold = 0.80
)

// Decision is what a policy picked for one turn
type Decision struct {
	Kind    ActionKind
	Target  *character.Character
	Special bool
}

// Policy chooses an action from a single uniform draw in [0, 1)
type Policy interface {
	Choose(actor Participant, draw float64, field *Field) Decision
}

// Field is the read-only view of the combatants a policy chooses from
type Field struct {
	primary     *character.Character
	adversaries []*character.Character
}

// NewField creates a view over the primary and its adversaries
func NewField(primary *character.Character, adversaries []*character.Character) *Field {
	return &Field{primary: primary, adversaries: adversaries}
}

// Primary returns the primary combatant, alive or not
func (f *Field) Primary() *character.Character {
	return f.primary
}

// NearestAdversary returns the first living adversary in the order they were given.
// Positions are not tracked, so order stands in for distance.
func (f *Field) NearestAdversary() *character.Character {
	for _, a := range f.adversaries {
		if a.IsAlive() {
			return a
		}
	}
	return nil
}

// LivingAdversaries counts the adversaries still standing
func (f *Field) LivingAdversaries() int {
	count := 0
	for _, a := range f.adversaries {
		if a.IsAlive() {
			count++
		}
	}
	return count
}

// DefaultPolicy attacks most of the time and defends otherwise.
// The primary also gets a special attack between the attack and defend bands.
type DefaultPolicy struct{}

// Choose implements Policy
func (DefaultPolicy) Choose(actor Participant, draw float64, field *Field) Decision {
	if actor.Side == SidePrimary {
		target := field.NearestAdversary()
		switch {
		case target == nil:
			return Decision{Kind: ActionDefend}
		case draw < primaryAttackThreshold:
			return Decision{Kind: ActionAttack, Target: target}
		case draw < primarySpecialThreshold:
			return Decision{Kind: ActionAttack, Target: target, Special: true}
		default:
			return Decision{Kind: ActionDefend}
		}
	}

	if draw < adversaryAttackThreshold && field.Primary().IsAlive() {
		return Decision{Kind: ActionAttack, Target: field.Primary()}
	}
	return Decision{Kind: ActionDefend}
}

// AggressivePolicy always attacks. Used for duels and simulations.
type AggressivePolicy struct{}

// Choose implements Policy
func (AggressivePolicy) Choose(actor Participant, _ float64, field *Field) Decision {
	target := field.Primary()
	if actor.Side == SidePrimary {
		target = field.NearestAdversary()
	}
	if target == nil || !target.IsAlive() {
		return Decision{Kind: ActionDefend}
	}
	return Decision{Kind: ActionAttack, Target: target}
}

// ComputeDamage is the damage a hit deals after defense, never less than 1
func ComputeDamage(attack, defense int, critical bool) int {
	return character.Mitigate(character.RawDamage(attack, critical), defense)
}
