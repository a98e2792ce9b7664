package dice

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

// randomRoller implements Roller on top of math/rand
type randomRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomRoller creates a new random dice roller. A zero seed uses the clock.
func NewRandomRoller(seed int64) Roller {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &randomRoller{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, errors.New("invalid dice count")
	}
	if sides < 1 {
		return nil, errors.New("invalid dice size")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rolls := make([]int, count)
	rawTotal := 0
	for i := 0; i < count; i++ {
		rolls[i] = r.rng.Intn(sides) + 1
		rawTotal += rolls[i]
	}

	return &RollResult{
		Total:    rawTotal + bonus,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
		RawTotal: rawTotal,
	}, nil
}

// Chance implements Roller.Chance
func (r *randomRoller) Chance() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.rng.Float64()
}
