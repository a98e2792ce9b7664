package character

import (
	dnderr "github.com/KirkDiggler/skirmish/internal/errors"
)

// Stats is a value type; Character hands out copies so callers cannot break its invariants
type Stats struct {
	Health    int `json:"health"`
	MaxHealth int `json:"max_health"`
	Mana      int `json:"mana"`
	MaxMana   int `json:"max_mana"`
	Attack    int `json:"attack"`
	Defense   int `json:"defense"`
	Speed     int `json:"speed"`
}

// Validate checks 0 <= health <= maxHealth, 0 <= mana <= maxMana and non-negative combat stats
func (s Stats) Validate() error {
	if s.MaxHealth < 0 || s.Health < 0 || s.Health > s.MaxHealth {
		return dnderr.Validationf("health %d/%d out of range", s.Health, s.MaxHealth)
	}
	if s.MaxMana < 0 || s.Mana < 0 || s.Mana > s.MaxMana {
		return dnderr.Validationf("mana %d/%d out of range", s.Mana, s.MaxMana)
	}
	if s.Attack < 0 || s.Defense < 0 || s.Speed < 0 {
		return dnderr.Validationf("attack %d, defense %d, speed %d must not be negative", s.Attack, s.Defense, s.Speed)
	}
	return nil
}

// Growth is what a class gains on every level-up
type Growth struct {
	MaxHealth int
	MaxMana   int
	Attack    int
	Defense   int
	Speed     int
}

// Position is kept for the game layer; combat ignores it
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}
