package inventory

import (
	"github.com/KirkDiggler/skirmish/internal/domain/item"
	dnderr "github.com/KirkDiggler/skirmish/internal/errors"
)

// Inventory is a fixed number of slots keyed by item id.
// An item takes one slot whatever its quantity. Items go in and come out as copies.
type Inventory struct {
	maxSlots int
	items    map[string]item.Item
	order    []string
}

// New creates an empty inventory with maxSlots slots
func New(maxSlots int) *Inventory {
	if maxSlots < 1 {
		panic("inventory needs at least one slot")
	}

	return &Inventory{
		maxSlots: maxSlots,
		items:    make(map[string]item.Item),
		order:    []string{},
	}
}

// AddItem stores an item, merging into an existing stack with the same id.
// A merge that would pass the stack ceiling is rejected whole, never split.
// The bool is false when the stack or the slots are full; errors are reserved for bad input.
func (inv *Inventory) AddItem(it item.Item) (bool, error) {
	if err := item.Validate(it); err != nil {
		return false, err
	}

	id := it.GetID()
	if existing, ok := inv.items[id]; ok {
		maxStack, stackable := item.MaxStack(existing)
		if !stackable {
			return false, dnderr.AlreadyExistsf("item %s is not stackable and already in the inventory", id).
				WithMeta("item_id", id)
		}

		merged := existing.GetQuantity() + it.GetQuantity()
		if merged > maxStack {
			return false, nil
		}

		existing.SetQuantity(merged)
		return true, nil
	}

	if len(inv.items) >= inv.maxSlots {
		return false, nil
	}

	inv.items[id] = item.Clone(it)
	inv.order = append(inv.order, id)
	return true, nil
}

// RemoveItem takes up to quantity of an item out of the inventory.
// Asking for the whole stack or more empties the slot and returns the full stack.
// A missing id returns nil without an error.
func (inv *Inventory) RemoveItem(id string, quantity int) (item.Item, error) {
	if quantity < 1 {
		return nil, dnderr.Validationf("remove quantity must be at least 1, got %d", quantity)
	}

	existing, ok := inv.items[id]
	if !ok {
		return nil, nil
	}

	stored := existing.GetQuantity()
	if quantity >= stored {
		inv.delete(id)
		return existing, nil
	}

	existing.SetQuantity(stored - quantity)
	return item.WithQuantity(existing, quantity), nil
}

// UseItem applies a usable item's effect to user once and consumes one of it.
// Missing and non-usable items return false. If the effect fails nothing is consumed.
func (inv *Inventory) UseItem(id string, user item.User) (bool, error) {
	existing, ok := inv.items[id]
	if !ok {
		return false, nil
	}

	consumable, ok := existing.(*item.Consumable)
	if !ok {
		return false, nil
	}
	if user == nil {
		return false, dnderr.InvalidArgument("user cannot be nil")
	}

	if err := consumable.Use(user); err != nil {
		return false, err
	}

	consumable.Quantity--
	if consumable.Quantity <= 0 {
		inv.delete(id)
	}

	return true, nil
}

// GetItem returns a copy of the item with the given id
func (inv *Inventory) GetItem(id string) (item.Item, bool) {
	existing, ok := inv.items[id]
	if !ok {
		return nil, false
	}
	return item.Clone(existing), true
}

// GetAllItems returns copies of every item in insertion order
func (inv *Inventory) GetAllItems() []item.Item {
	out := make([]item.Item, 0, len(inv.order))
	for _, id := range inv.order {
		out = append(out, item.Clone(inv.items[id]))
	}
	return out
}

// GetItemsByType returns copies of the items of one variant in insertion order
func (inv *Inventory) GetItemsByType(t item.Type) []item.Item {
	out := []item.Item{}
	for _, id := range inv.order {
		if it := inv.items[id]; it.GetType() == t {
			out = append(out, item.Clone(it))
		}
	}
	return out
}

// TotalValue sums value times quantity over every slot
func (inv *Inventory) TotalValue() int {
	total := 0
	for _, it := range inv.items {
		total += it.GetValue() * it.GetQuantity()
	}
	return total
}

// ItemCount sums quantities over every slot
func (inv *Inventory) ItemCount() int {
	count := 0
	for _, it := range inv.items {
		count += it.GetQuantity()
	}
	return count
}

func (inv *Inventory) IsEmpty() bool {
	return len(inv.items) == 0
}

func (inv *Inventory) IsFull() bool {
	return len(inv.items) >= inv.maxSlots
}

func (inv *Inventory) MaxSlots() int {
	return inv.maxSlots
}

func (inv *Inventory) SlotCount() int {
	return len(inv.items)
}

// Restore replaces the contents with previously stored items, keeping their order.
// Nothing changes if any item is invalid, repeated, or there are more items than slots.
func (inv *Inventory) Restore(items []item.Item) error {
	if len(items) > inv.maxSlots {
		return dnderr.Validationf("%d items do not fit in %d slots", len(items), inv.maxSlots)
	}

	restored := make(map[string]item.Item, len(items))
	order := make([]string, 0, len(items))
	for _, it := range items {
		if err := item.Validate(it); err != nil {
			return err
		}
		if _, dup := restored[it.GetID()]; dup {
			return dnderr.AlreadyExistsf("item %s appears twice", it.GetID())
		}
		restored[it.GetID()] = item.Clone(it)
		order = append(order, it.GetID())
	}

	inv.items = restored
	inv.order = order
	return nil
}

func (inv *Inventory) delete(id string) {
	delete(inv.items, id)
	for i, existing := range inv.order {
		if existing == id {
			inv.order = append(inv.order[:i], inv.order[i+1:]...)
			break
		}
	}
}
