package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// Roller provides an interface for rolling dice and drawing probabilities.
// Combat and loot take a Roller so tests can script every random outcome.
type Roller interface {
	// Roll rolls a number of dice with the given sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)

	// Chance draws a uniform value in [0, 1)
	Chance() float64
}
