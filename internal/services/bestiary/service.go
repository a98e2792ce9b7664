package bestiary

//go:generate mockgen -destination=mock/mock_source.go -package=mockbestiary -source=service.go

import (
	"context"

	"github.com/KirkDiggler/skirmish/internal/domain/character"
)

// Source spawns adversaries by key
type Source interface {
	// Spawn creates a fresh character for the monster with the given key
	Spawn(ctx context.Context, key string) (*character.Character, error)

	// Keys lists the monsters this source can spawn
	Keys(ctx context.Context) ([]string, error)
}
