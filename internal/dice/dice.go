package dice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// RollResult holds the outcome of a dice roll
type RollResult struct {
	Total    int
	Rolls    []int
	Bonus    int
	Count    int
	Sides    int
	RawTotal int
}

// String renders the roll as "total (rolls+bonus)"
func (r *RollResult) String() string {
	compact := strings.ReplaceAll(fmt.Sprintf("%v", r.Rolls), " ", ",")
	if r.Bonus != 0 {
		return fmt.Sprintf("%d %s%+d", r.Total, compact, r.Bonus)
	}
	return fmt.Sprintf("%d %s", r.Total, compact)
}

// ParseNotation parses dice notation like "2d6", "1d4+1", "3d8-2" or a plain integer.
// A plain integer is returned as a bonus with zero dice.
func ParseNotation(notation string) (count, sides, bonus int, err error) {
	s := strings.ToLower(strings.ReplaceAll(notation, " ", ""))
	if s == "" {
		return 0, 0, 0, errors.New("empty dice notation")
	}

	if n, convErr := strconv.Atoi(s); convErr == nil {
		return 0, 0, n, nil
	}

	dicePart := s
	if i := strings.IndexAny(s, "+-"); i > 0 {
		bonus, err = strconv.Atoi(s[i:])
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid dice bonus in %q", notation)
		}
		dicePart = s[:i]
	}

	parts := strings.Split(dicePart, "d")
	if len(parts) != 2 {
		return 0, 0, 0, fmt.Errorf("invalid dice notation %q", notation)
	}

	count = 1
	if parts[0] != "" {
		count, err = strconv.Atoi(parts[0])
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid dice count in %q", notation)
		}
	}
	sides, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid dice size in %q", notation)
	}

	if count < 1 {
		return 0, 0, 0, errors.New("invalid dice count")
	}
	if sides < 1 {
		return 0, 0, 0, errors.New("invalid dice size")
	}

	return count, sides, bonus, nil
}

// RollNotation parses notation and rolls it with the given roller
func RollNotation(r Roller, notation string) (*RollResult, error) {
	count, sides, bonus, err := ParseNotation(notation)
	if err != nil {
		return nil, err
	}

	if count == 0 {
		return &RollResult{Total: bonus, Bonus: bonus, Rolls: []int{}}, nil
	}

	return r.Roll(count, sides, bonus)
}

// Average returns the expected total of the notation rounded down
func Average(notation string) (int, error) {
	count, sides, bonus, err := ParseNotation(notation)
	if err != nil {
		return 0, err
	}

	return count*(sides+1)/2 + bonus, nil
}
