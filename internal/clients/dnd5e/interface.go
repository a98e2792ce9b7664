package dnd5e

//go:generate mockgen -destination=mock/mock_client.go -package=mockdnd5e . Client

// Client reads monster data from the D&D 5e API
type Client interface {
	GetMonster(key string) (*MonsterTemplate, error)

	// ListMonsterKeysByCR returns the keys of monsters within a challenge rating range
	ListMonsterKeysByCR(minCR, maxCR float32) ([]string, error)
}

// MonsterTemplate is the part of an API monster that can be turned into a combatant
type MonsterTemplate struct {
	Key             string
	Name            string
	Type            string
	ArmorClass      int
	HitPoints       int
	HitDice         string
	ChallengeRating float64
	Actions         []*MonsterAction
}

// MonsterAction is one attack or ability from a monster's stat block
type MonsterAction struct {
	Name        string
	Description string
	AttackBonus int
	Damage      []string // Dice notation, e.g. "1d6+2"
}
