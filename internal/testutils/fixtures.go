package testutils

import (
	"testing"

	"github.com/KirkDiggler/skirmish/internal/domain/character"
	"github.com/KirkDiggler/skirmish/internal/domain/inventory"
	"github.com/KirkDiggler/skirmish/internal/domain/item"
	"github.com/KirkDiggler/skirmish/internal/repositories/saves"
	"github.com/stretchr/testify/require"
)

// CreateTestHero creates a level 1 hero of the given class
func CreateTestHero(t *testing.T, name string, class character.Class) *character.Character {
	t.Helper()

	hero, err := character.New(name, class)
	require.NoError(t, err)
	return hero
}

// CreateTestFighter creates a character with exact stats, for predictable combat math
func CreateTestFighter(t *testing.T, name string, level, health, attack, defense, speed int) *character.Character {
	t.Helper()

	fighter, err := character.NewWithStats(name, character.ClassMonster, level, character.Stats{
		Health:    health,
		MaxHealth: health,
		Attack:    attack,
		Defense:   defense,
		Speed:     speed,
	})
	require.NoError(t, err)
	return fighter
}

// CreateTestPotion creates a stack of healing potions
func CreateTestPotion(quantity int) *item.Consumable {
	return &item.Consumable{
		Base: item.Base{
			ID:       "health_potion",
			Name:     "Health Potion",
			Quantity: quantity,
			Value:    25,
		},
		MaxStack:   10,
		HealAmount: 30,
	}
}

// CreateTestSword creates a single non-stackable weapon
func CreateTestSword() *item.Weapon {
	return &item.Weapon{
		Base: item.Base{
			ID:       "short_sword",
			Name:     "Short Sword",
			Quantity: 1,
			Value:    40,
		},
		Damage: 6,
	}
}

// CreateTestInventory creates an inventory holding a sword and two potions
func CreateTestInventory(t *testing.T, maxSlots int) *inventory.Inventory {
	t.Helper()

	inv := inventory.New(maxSlots)
	for _, it := range []item.Item{CreateTestSword(), CreateTestPotion(2)} {
		added, err := inv.AddItem(it)
		require.NoError(t, err)
		require.True(t, added, "fixture item %s did not fit", it.GetID())
	}
	return inv
}

// CreateTestSave creates an unsaved snapshot for the owner
func CreateTestSave(t *testing.T, ownerID string) *saves.Snapshot {
	t.Helper()

	return &saves.Snapshot{
		OwnerID:   ownerID,
		Character: CreateTestHero(t, "Aria", character.ClassWarrior),
		Inventory: CreateTestInventory(t, 10),
	}
}
