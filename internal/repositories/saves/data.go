package saves

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/KirkDiggler/skirmish/internal/domain/character"
	"github.com/KirkDiggler/skirmish/internal/domain/inventory"
	"github.com/KirkDiggler/skirmish/internal/domain/item"
	dnderr "github.com/KirkDiggler/skirmish/internal/errors"
)

// ItemData wraps an item with its variant for JSON marshaling
type ItemData struct {
	Type string          `json:"type"`
	Item json.RawMessage `json:"item"`
}

// InventoryData is the serialized form of an inventory
type InventoryData struct {
	MaxSlots int        `json:"max_slots"`
	Items    []ItemData `json:"items"`
}

// Data represents the serialized form of a save slot
type Data struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"owner_id"`
	Character *character.Data `json:"character"`
	Inventory InventoryData   `json:"inventory"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToData converts a save into its stored form
func ToData(save *Snapshot) (*Data, error) {
	if err := validate(save); err != nil {
		return nil, err
	}

	items := save.Inventory.GetAllItems()
	itemData := make([]ItemData, 0, len(items))
	for _, it := range items {
		d, err := itemToData(it)
		if err != nil {
			return nil, err
		}
		itemData = append(itemData, d)
	}

	return &Data{
		ID:        save.ID,
		OwnerID:   save.OwnerID,
		Character: save.Character.ToData(),
		Inventory: InventoryData{
			MaxSlots: save.Inventory.MaxSlots(),
			Items:    itemData,
		},
		CreatedAt: save.CreatedAt,
		UpdatedAt: save.UpdatedAt,
	}, nil
}

// FromData rebuilds a save, validating the character and every item
func FromData(data *Data) (*Snapshot, error) {
	if data == nil {
		return nil, dnderr.InvalidArgument("save data cannot be nil")
	}
	if data.Inventory.MaxSlots < 1 {
		return nil, dnderr.Validationf("save %s has an inventory without slots", data.ID)
	}

	char, err := character.FromData(data.Character)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to load character for save %s", data.ID)
	}

	items := make([]item.Item, 0, len(data.Inventory.Items))
	for _, d := range data.Inventory.Items {
		it, err := dataToItem(d)
		if err != nil {
			return nil, dnderr.Wrapf(err, "failed to load inventory for save %s", data.ID)
		}
		items = append(items, it)
	}

	inv := inventory.New(data.Inventory.MaxSlots)
	if err := inv.Restore(items); err != nil {
		return nil, dnderr.Wrapf(err, "failed to load inventory for save %s", data.ID)
	}

	return &Snapshot{
		ID:        data.ID,
		OwnerID:   data.OwnerID,
		Character: char,
		Inventory: inv,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}, nil
}

// itemToData converts an item to ItemData for storage
func itemToData(it item.Item) (ItemData, error) {
	data, err := json.Marshal(it)
	if err != nil {
		return ItemData{}, fmt.Errorf("failed to marshal item: %w", err)
	}

	return ItemData{
		Type: string(it.GetType()),
		Item: data,
	}, nil
}

// dataToItem converts ItemData back to an item
func dataToItem(data ItemData) (item.Item, error) {
	var it item.Item
	switch item.Type(strings.ToLower(data.Type)) {
	case item.TypeWeapon:
		it = &item.Weapon{}
	case item.TypeConsumable:
		it = &item.Consumable{}
	case item.TypeMisc:
		it = &item.Misc{}
	case item.TypeArmor:
		it = &item.Armor{}
	default:
		return nil, dnderr.Validationf("unknown item type '%s'", data.Type)
	}

	if err := json.Unmarshal(data.Item, it); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", data.Type, err)
	}
	return it, nil
}

// sortByCreated orders saves oldest first, breaking ties by id
func sortByCreated(saves []*Snapshot) {
	sort.Slice(saves, func(i, j int) bool {
		if !saves[i].CreatedAt.Equal(saves[j].CreatedAt) {
			return saves[i].CreatedAt.Before(saves[j].CreatedAt)
		}
		return saves[i].ID < saves[j].ID
	})
}
