package saves

//go:generate mockgen -destination=mock/mock.go -package=mocksaves -source=interface.go

import (
	"context"
	"time"

	"github.com/KirkDiggler/skirmish/internal/domain/character"
	"github.com/KirkDiggler/skirmish/internal/domain/inventory"
)

// Snapshot is one save slot: a hero and what they carry
type Snapshot struct {
	ID        string
	OwnerID   string
	Character *character.Character
	Inventory *inventory.Inventory
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository defines the interface for save slot persistence
type Repository interface {
	// Create stores a new save, assigning an ID when it has none
	Create(ctx context.Context, save *Snapshot) error

	// Get retrieves a save by ID
	Get(ctx context.Context, id string) (*Snapshot, error)

	// Update overwrites an existing save
	Update(ctx context.Context, save *Snapshot) error

	// Delete removes a save
	Delete(ctx context.Context, id string) error

	// ListByOwner retrieves all saves for an owner
	ListByOwner(ctx context.Context, ownerID string) ([]*Snapshot, error)
}

func validate(save *Snapshot) error {
	switch {
	case save == nil:
		return errSaveNil
	case save.OwnerID == "":
		return errOwnerRequired
	case save.Character == nil:
		return errCharacterRequired
	case save.Inventory == nil:
		return errInventoryRequired
	}
	return nil
}
