package dice_test

import (
	"testing"

	"github.com/KirkDiggler/skirmish/internal/dice"
	mockdice "github.com/KirkDiggler/skirmish/internal/dice/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockRoller_Roll(t *testing.T) {
	tests := []struct {
		name       string
		setupRolls []int
		count      int
		sides      int
		bonus      int
		wantTotal  int
		wantRolls  []int
		wantErr    bool
	}{
		{
			name:       "single d20 roll",
			setupRolls: []int{15},
			count:      1,
			sides:      20,
			wantTotal:  15,
			wantRolls:  []int{15},
		},
		{
			name:       "2d6+3",
			setupRolls: []int{4, 5},
			count:      2,
			sides:      6,
			bonus:      3,
			wantTotal:  12, // 4+5+3
			wantRolls:  []int{4, 5},
		},
		{
			name:       "not enough rolls",
			setupRolls: []int{10},
			count:      2,
			sides:      6,
			wantErr:    true,
		},
		{
			name:       "invalid roll for die size",
			setupRolls: []int{7},
			count:      1,
			sides:      6,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roller := mockdice.NewManualMockRoller()
			roller.SetRolls(tt.setupRolls)

			result, err := roller.Roll(tt.count, tt.sides, tt.bonus)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, result.Total)
			assert.Equal(t, tt.wantRolls, result.Rolls)
		})
	}
}

func TestMockRoller_Chance(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetChances(0.05, 0.95)

	assert.Equal(t, 0.05, roller.Chance())
	assert.Equal(t, 0.95, roller.Chance())
	assert.Panics(t, func() { roller.Chance() })

	roller.SetDefaultChance(0.5)
	assert.Equal(t, 0.5, roller.Chance())
	assert.Equal(t, 0.5, roller.Chance())
}

func TestParseNotation(t *testing.T) {
	tests := []struct {
		notation  string
		wantCount int
		wantSides int
		wantBonus int
		wantErr   bool
	}{
		{notation: "2d6", wantCount: 2, wantSides: 6},
		{notation: "1d4+1", wantCount: 1, wantSides: 4, wantBonus: 1},
		{notation: "3d8-2", wantCount: 3, wantSides: 8, wantBonus: -2},
		{notation: "d20", wantCount: 1, wantSides: 20},
		{notation: "5", wantBonus: 5},
		{notation: "", wantErr: true},
		{notation: "2x6", wantErr: true},
		{notation: "0d6", wantErr: true},
		{notation: "1d0", wantErr: true},
		{notation: "1d6+x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.notation, func(t *testing.T) {
			count, sides, bonus, err := dice.ParseNotation(tt.notation)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, count)
			assert.Equal(t, tt.wantSides, sides)
			assert.Equal(t, tt.wantBonus, bonus)
		})
	}
}

func TestRollNotation(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{2, 6})

	result, err := dice.RollNotation(roller, "2d6+1")
	require.NoError(t, err)
	assert.Equal(t, 9, result.Total)

	// Constants never touch the roller
	result, err = dice.RollNotation(roller, "4")
	require.NoError(t, err)
	assert.Equal(t, 4, result.Total)
}

func TestAverage(t *testing.T) {
	avg, err := dice.Average("1d6+2")
	require.NoError(t, err)
	assert.Equal(t, 5, avg)

	avg, err = dice.Average("2d8")
	require.NoError(t, err)
	assert.Equal(t, 9, avg)
}

func TestRandomRoller_BasicFunctionality(t *testing.T) {
	roller := dice.NewRandomRoller(42)

	result, err := roller.Roll(2, 6, 3)
	require.NoError(t, err)
	assert.Len(t, result.Rolls, 2)
	assert.GreaterOrEqual(t, result.Total, 5) // minimum: 1+1+3
	assert.LessOrEqual(t, result.Total, 15)   // maximum: 6+6+3

	_, err = roller.Roll(0, 6, 0)
	assert.Error(t, err)

	for i := 0; i < 100; i++ {
		c := roller.Chance()
		assert.GreaterOrEqual(t, c, 0.0)
		assert.Less(t, c, 1.0)
	}
}

func TestRandomRoller_SeedIsDeterministic(t *testing.T) {
	a := dice.NewRandomRoller(7)
	b := dice.NewRandomRoller(7)

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Chance(), b.Chance())
	}
}
