package bestiary

import (
	"context"
	"sort"
	"strings"

	"github.com/KirkDiggler/skirmish/internal/domain/character"
	dnderr "github.com/KirkDiggler/skirmish/internal/errors"
)

// Entry is a monster stat block
type Entry struct {
	Name  string
	Level int
	Stats character.Stats
}

func statBlock(health, attack, defense, speed int) character.Stats {
	return character.Stats{
		Health:    health,
		MaxHealth: health,
		Attack:    attack,
		Defense:   defense,
		Speed:     speed,
	}
}

var defaultEntries = map[string]Entry{
	"goblin":   {Name: "Goblin", Level: 1, Stats: statBlock(30, 8, 2, 12)},
	"wolf":     {Name: "Wolf", Level: 1, Stats: statBlock(35, 9, 2, 14)},
	"skeleton": {Name: "Skeleton", Level: 2, Stats: statBlock(40, 10, 4, 9)},
	"orc":      {Name: "Orc", Level: 2, Stats: statBlock(50, 12, 5, 8)},
	"troll":    {Name: "Troll", Level: 4, Stats: statBlock(90, 16, 8, 6)},
}

type staticSource struct {
	entries map[string]Entry
}

// NewStaticSource creates a source from fixed stat blocks.
// With no entries it uses the built-in goblin, wolf, skeleton, orc and troll.
func NewStaticSource(entries map[string]Entry) Source {
	if len(entries) == 0 {
		entries = defaultEntries
	}

	copied := make(map[string]Entry, len(entries))
	for key, entry := range entries {
		copied[strings.ToLower(key)] = entry
	}

	return &staticSource{entries: copied}
}

func (s *staticSource) Spawn(_ context.Context, key string) (*character.Character, error) {
	if key == "" {
		return nil, dnderr.InvalidArgument("monster key is required")
	}

	entry, ok := s.entries[strings.ToLower(key)]
	if !ok {
		return nil, dnderr.NotFoundf("monster %s not found", key).
			WithMeta("key", key)
	}

	return character.NewWithStats(entry.Name, character.ClassMonster, entry.Level, entry.Stats)
}

func (s *staticSource) Keys(_ context.Context) ([]string, error) {
	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
