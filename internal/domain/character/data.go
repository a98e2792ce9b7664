package character

import (
	"time"

	dnderr "github.com/KirkDiggler/skirmish/internal/errors"
)

// Data is the serialized form of a character
type Data struct {
	Name       string               `json:"name"`
	Class      Class                `json:"class"`
	Level      int                  `json:"level"`
	Experience int                  `json:"experience"`
	Position   Position             `json:"position"`
	Stats      Stats                `json:"stats"`
	Cooldowns  map[string]time.Time `json:"cooldowns,omitempty"`
}

// ToData snapshots the character for storage
func (c *Character) ToData() *Data {
	var cooldowns map[string]time.Time
	if len(c.cooldowns) > 0 {
		cooldowns = make(map[string]time.Time, len(c.cooldowns))
		for k, v := range c.cooldowns {
			cooldowns[k] = v
		}
	}

	return &Data{
		Name:       c.Name,
		Class:      c.Class,
		Level:      c.Level,
		Experience: c.Experience,
		Position:   c.Position,
		Stats:      c.stats,
		Cooldowns:  cooldowns,
	}
}

// FromData rebuilds a character, rejecting data that breaks the stat invariants
func FromData(data *Data) (*Character, error) {
	if data == nil {
		return nil, dnderr.InvalidArgument("character data cannot be nil")
	}
	if data.Experience < 0 {
		return nil, dnderr.Validationf("experience %d must not be negative", data.Experience)
	}

	c, err := NewWithStats(data.Name, data.Class, data.Level, data.Stats)
	if err != nil {
		return nil, err
	}

	c.Experience = data.Experience
	c.Position = data.Position
	for k, v := range data.Cooldowns {
		c.cooldowns[k] = v
	}

	return c, nil
}
