package mockdice

import (
	"fmt"
	"sync"

	"github.com/KirkDiggler/skirmish/internal/dice"
)

// ManualMockRoller implements dice.Roller for testing with predetermined results
type ManualMockRoller struct {
	mu          sync.Mutex
	rolls       []int
	rollIndex   int
	chances     []float64
	chanceIndex int

	defaultChance    float64
	hasDefaultChance bool
}

// NewManualMockRoller creates a new mock dice roller
func NewManualMockRoller() *ManualMockRoller {
	return &ManualMockRoller{
		rolls:   []int{},
		chances: []float64{},
	}
}

// SetNextRoll sets the next roll result
func (m *ManualMockRoller) SetNextRoll(roll int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append(m.rolls, roll)
}

// SetRolls sets multiple roll results
func (m *ManualMockRoller) SetRolls(rolls []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = rolls
	m.rollIndex = 0
}

// SetChances sets the scripted Chance draws, consumed in order
func (m *ManualMockRoller) SetChances(chances ...float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chances = chances
	m.chanceIndex = 0
}

// SetDefaultChance sets the draw returned once scripted chances run out
func (m *ManualMockRoller) SetDefaultChance(chance float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultChance = chance
	m.hasDefaultChance = true
}

// ChancesUsed reports how many Chance draws have been taken
func (m *ManualMockRoller) ChancesUsed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chanceIndex
}

// Reset clears all rolls and chances and resets the indexes
func (m *ManualMockRoller) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = []int{}
	m.rollIndex = 0
	m.chances = []float64{}
	m.chanceIndex = 0
	m.hasDefaultChance = false
}

func (m *ManualMockRoller) getNextRoll() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rollIndex >= len(m.rolls) {
		return 0, fmt.Errorf("no more predetermined rolls available (used %d of %d)", m.rollIndex, len(m.rolls))
	}

	roll := m.rolls[m.rollIndex]
	m.rollIndex++
	return roll, nil
}

// Roll implements dice.Roller.Roll
func (m *ManualMockRoller) Roll(count, sides, bonus int) (*dice.RollResult, error) {
	rolls := make([]int, count)
	rawTotal := 0

	for i := 0; i < count; i++ {
		roll, err := m.getNextRoll()
		if err != nil {
			return nil, err
		}
		if roll < 1 || roll > sides {
			return nil, fmt.Errorf("invalid roll %d for d%d", roll, sides)
		}
		rolls[i] = roll
		rawTotal += roll
	}

	return &dice.RollResult{
		Total:    rawTotal + bonus,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
		RawTotal: rawTotal,
	}, nil
}

// Chance implements dice.Roller.Chance. It panics when no scripted draw or default is left,
// which fails the calling test loudly.
func (m *ManualMockRoller) Chance() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.chanceIndex < len(m.chances) {
		c := m.chances[m.chanceIndex]
		m.chanceIndex++
		return c
	}

	if m.hasDefaultChance {
		m.chanceIndex++
		return m.defaultChance
	}

	panic(fmt.Sprintf("no more predetermined chances available (used %d of %d)", m.chanceIndex, len(m.chances)))
}
