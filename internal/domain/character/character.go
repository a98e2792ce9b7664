package character

import (
	"time"

	dnderr "github.com/KirkDiggler/skirmish/internal/errors"
)

// ExperiencePerLevel is multiplied by the current level to get the level-up threshold
const ExperiencePerLevel = 100

// Character is identified by name and mutated in place by combat and items.
// It is not safe for concurrent use; a character belongs to one session at a time.
type Character struct {
	Name       string
	Class      Class
	Level      int
	Experience int
	Position   Position

	stats     Stats
	growth    Growth
	cooldowns map[string]time.Time
}

// New creates a level 1 character with the base stats of a playable class
func New(name string, class Class) (*Character, error) {
	if name == "" {
		return nil, dnderr.Validation("character name is required")
	}

	arch, ok := LookupArchetype(class)
	if !ok || class == ClassMonster {
		return nil, dnderr.InvalidArgumentf("unknown class %q", class)
	}

	return &Character{
		Name:      name,
		Class:     class,
		Level:     1,
		stats:     arch.Base,
		growth:    arch.Growth,
		cooldowns: make(map[string]time.Time),
	}, nil
}

// NewWithStats creates a character with explicit stats, used for monsters
func NewWithStats(name string, class Class, level int, stats Stats) (*Character, error) {
	if name == "" {
		return nil, dnderr.Validation("character name is required")
	}
	if level < 1 {
		return nil, dnderr.Validationf("level %d must be at least 1", level)
	}
	if err := stats.Validate(); err != nil {
		return nil, dnderr.Wrapf(err, "invalid stats for %s", name)
	}

	arch, _ := LookupArchetype(class)

	return &Character{
		Name:      name,
		Class:     class,
		Level:     level,
		stats:     stats,
		growth:    arch.Growth,
		cooldowns: make(map[string]time.Time),
	}, nil
}

// Stats returns a copy of the current stats
func (c *Character) Stats() Stats {
	return c.stats
}

// IsAlive returns true if the character has more than 0 health
func (c *Character) IsAlive() bool {
	return c.stats.Health > 0
}

// TakeDamage applies defense to a raw hit and subtracts the result from health.
// It returns the damage after defense, which is at least 1, even if health clamps at zero first.
func (c *Character) TakeDamage(raw int) (int, error) {
	if raw <= 0 {
		return 0, dnderr.Validationf("damage must be positive, got %d", raw)
	}

	actual := Mitigate(raw, c.stats.Defense)
	c.stats.Health -= actual
	if c.stats.Health < 0 {
		c.stats.Health = 0
	}

	return actual, nil
}

// Heal restores health up to the maximum and returns the amount restored
func (c *Character) Heal(amount int) (int, error) {
	if amount <= 0 {
		return 0, dnderr.Validationf("heal amount must be positive, got %d", amount)
	}
	if !c.IsAlive() {
		return 0, dnderr.FailedPreconditionf("%s is not alive", c.Name)
	}

	before := c.stats.Health
	c.stats.Health += amount
	if c.stats.Health > c.stats.MaxHealth {
		c.stats.Health = c.stats.MaxHealth
	}

	return c.stats.Health - before, nil
}

// RestoreMana restores mana up to the maximum and returns the amount restored
func (c *Character) RestoreMana(amount int) (int, error) {
	if amount <= 0 {
		return 0, dnderr.Validationf("mana amount must be positive, got %d", amount)
	}

	before := c.stats.Mana
	c.stats.Mana += amount
	if c.stats.Mana > c.stats.MaxMana {
		c.stats.Mana = c.stats.MaxMana
	}

	return c.stats.Mana - before, nil
}

// SpendMana removes mana or fails without changing anything when there is not enough
func (c *Character) SpendMana(amount int) error {
	if amount < 0 {
		return dnderr.Validationf("mana cost must not be negative, got %d", amount)
	}
	if amount > c.stats.Mana {
		return dnderr.FailedPreconditionf("%s has %d mana, needs %d", c.Name, c.stats.Mana, amount)
	}

	c.stats.Mana -= amount
	return nil
}

// Rest refills health and mana, bringing a defeated character back
func (c *Character) Rest() {
	c.stats.Health = c.stats.MaxHealth
	c.stats.Mana = c.stats.MaxMana
}

// Attack deals one hit to target. Attacking while defeated is an invariant violation.
func (c *Character) Attack(target *Character, critical bool) (int, error) {
	if !c.IsAlive() {
		return 0, dnderr.FailedPreconditionf("%s cannot attack while not alive", c.Name).
			WithMeta("actor", c.Name)
	}
	if target == nil {
		return 0, dnderr.InvalidArgument("target cannot be nil")
	}

	// A zero-attack hit still lands for the minimum
	raw := RawDamage(c.stats.Attack, critical)
	if raw < 1 {
		raw = 1
	}

	return target.TakeDamage(raw)
}

// GainExperience adds experience and levels up once the threshold for the current level is met
func (c *Character) GainExperience(amount int) (bool, error) {
	if amount < 0 {
		return false, dnderr.Validationf("experience must not be negative, got %d", amount)
	}

	c.Experience += amount
	if c.Experience >= c.Level*ExperiencePerLevel {
		c.LevelUp()
		return true, nil
	}

	return false, nil
}

// LevelUp raises the level, resets experience, grows stats and refills health and mana
func (c *Character) LevelUp() {
	c.Level++
	c.Experience = 0

	c.stats.MaxHealth += c.growth.MaxHealth
	c.stats.MaxMana += c.growth.MaxMana
	c.stats.Attack += c.growth.Attack
	c.stats.Defense += c.growth.Defense
	c.stats.Speed += c.growth.Speed
	c.Rest()
}

// RawDamage is the hit before defense; a critical doubles it
func RawDamage(attack int, critical bool) int {
	if critical {
		return attack * 2
	}
	return attack
}

// Mitigate subtracts defense from a raw hit with a floor of 1
func Mitigate(raw, defense int) int {
	actual := raw - defense
	if actual < 1 {
		return 1
	}
	return actual
}
