package item

import (
	dnderr "github.com/KirkDiggler/skirmish/internal/errors"
)

// Type tags the item variant
type Type string

const (
	TypeWeapon     Type = "weapon"
	TypeConsumable Type = "consumable"
	TypeMisc       Type = "misc"
	TypeArmor      Type = "armor"
)

// Item is a closed set of variants: *Weapon, *Consumable, *Misc and *Armor.
// The unexported base method keeps other packages from adding variants.
type Item interface {
	GetID() string
	GetName() string
	GetQuantity() int
	GetValue() int
	SetQuantity(quantity int)
	GetType() Type

	base() *Base
}

// User receives the one-shot effect of a usable item
type User interface {
	Heal(amount int) (int, error)
	RestoreMana(amount int) (int, error)
}

// Base holds the fields every variant shares
type Base struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Value    int    `json:"value"`
}

// GetID returns the item id, the merge key inside an inventory
func (b *Base) GetID() string { return b.ID }

func (b *Base) GetName() string { return b.Name }

func (b *Base) GetQuantity() int { return b.Quantity }

func (b *Base) GetValue() int { return b.Value }

func (b *Base) SetQuantity(quantity int) { b.Quantity = quantity }

func (b *Base) base() *Base { return b }

// Weapon is never stackable
type Weapon struct {
	Base
	Damage int `json:"damage"`
}

func (w *Weapon) GetType() Type { return TypeWeapon }

// Consumable stacks up to MaxStack and is used up one at a time
type Consumable struct {
	Base
	MaxStack   int `json:"max_stack"`
	HealAmount int `json:"heal_amount"`
	ManaAmount int `json:"mana_amount"`
}

func (c *Consumable) GetType() Type { return TypeConsumable }

// Use applies the consumable's effect to the user once
func (c *Consumable) Use(u User) error {
	if c.HealAmount > 0 {
		if _, err := u.Heal(c.HealAmount); err != nil {
			return dnderr.Wrapf(err, "failed to use %s", c.Name)
		}
	}
	if c.ManaAmount > 0 {
		if _, err := u.RestoreMana(c.ManaAmount); err != nil {
			return dnderr.Wrapf(err, "failed to use %s", c.Name)
		}
	}
	return nil
}

// Misc covers loot like coins and gems; stackable, not usable
type Misc struct {
	Base
	MaxStack int `json:"max_stack"`
}

func (m *Misc) GetType() Type { return TypeMisc }

// Armor is declared for completeness; nothing in combat reads it yet
type Armor struct {
	Base
	Defense int `json:"defense"`
}

func (a *Armor) GetType() Type { return TypeArmor }

// MaxStack returns the merge ceiling of an item and whether it is stack-capable.
// Only variants declaring a ceiling above 1 merge; everything else has an implicit ceiling of 1.
func MaxStack(it Item) (int, bool) {
	switch v := it.(type) {
	case *Consumable:
		return v.MaxStack, v.MaxStack > 1
	case *Misc:
		return v.MaxStack, v.MaxStack > 1
	default:
		return 1, false
	}
}

// IsUsable reports whether the item has a one-shot use effect
func IsUsable(it Item) bool {
	_, ok := it.(*Consumable)
	return ok
}

// Validate checks the descriptor before an inventory accepts it
func Validate(it Item) error {
	if isNil(it) {
		return dnderr.Validation("item cannot be nil")
	}

	b := it.base()
	if b.ID == "" {
		return dnderr.Validation("item id is required")
	}
	if b.Quantity < 0 {
		return dnderr.Validationf("item %s has negative quantity %d", b.ID, b.Quantity)
	}
	if b.Value < 0 {
		return dnderr.Validationf("item %s has negative value %d", b.ID, b.Value)
	}

	switch v := it.(type) {
	case *Consumable:
		return validateStack(b, v.MaxStack)
	case *Misc:
		return validateStack(b, v.MaxStack)
	}

	return nil
}

func isNil(it Item) bool {
	switch v := it.(type) {
	case nil:
		return true
	case *Weapon:
		return v == nil
	case *Consumable:
		return v == nil
	case *Misc:
		return v == nil
	case *Armor:
		return v == nil
	}
	return false
}

func validateStack(b *Base, maxStack int) error {
	if maxStack < 1 {
		return dnderr.Validationf("item %s has max stack %d", b.ID, maxStack)
	}
	if b.Quantity > maxStack {
		return dnderr.Validationf("item %s quantity %d exceeds max stack %d", b.ID, b.Quantity, maxStack)
	}
	return nil
}

// Clone returns an independent copy so inventories never alias caller items
func Clone(it Item) Item {
	if isNil(it) {
		return nil
	}

	switch v := it.(type) {
	case *Weapon:
		c := *v
		return &c
	case *Consumable:
		c := *v
		return &c
	case *Misc:
		c := *v
		return &c
	case *Armor:
		c := *v
		return &c
	default:
		return nil
	}
}

// WithQuantity returns a copy of the item carrying the given quantity
func WithQuantity(it Item, quantity int) Item {
	c := Clone(it)
	if c != nil {
		c.SetQuantity(quantity)
	}
	return c
}
