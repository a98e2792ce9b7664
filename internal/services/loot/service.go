package loot

import (
	"github.com/KirkDiggler/skirmish/internal/dice"
	"github.com/KirkDiggler/skirmish/internal/domain/item"
	dnderr "github.com/KirkDiggler/skirmish/internal/errors"
)

// DefaultMaxDrops caps how many entries a single evaluation can yield
const DefaultMaxDrops = 2

// Entry is one possible drop
type Entry struct {
	Template item.Item
	Chance   float64 // 0.0 to 1.0
	Quantity string  // Dice notation, e.g. "2d10". Empty means 1.
}

// Table is a collection of possible drops evaluated in order
type Table struct {
	Entries  []Entry
	MaxDrops int
}

// NewTable creates a table, using DefaultMaxDrops when maxDrops is not positive
func NewTable(maxDrops int, entries ...Entry) *Table {
	if maxDrops <= 0 {
		maxDrops = DefaultMaxDrops
	}
	return &Table{Entries: entries, MaxDrops: maxDrops}
}

// DefaultTable drops healing potions and gold coins
func DefaultTable() *Table {
	return NewTable(DefaultMaxDrops,
		Entry{
			Template: &item.Consumable{
				Base:       item.Base{ID: "health_potion", Name: "Health Potion", Value: 25},
				MaxStack:   10,
				HealAmount: 30,
			},
			Chance:   0.5,
			Quantity: "1d2",
		},
		Entry{
			Template: &item.Misc{
				Base:     item.Base{ID: "gold_coins", Name: "Gold Coins", Value: 1},
				MaxStack: 999,
			},
			Chance:   0.3,
			Quantity: "2d10",
		},
	)
}

// Drop evaluates every entry once with one chance draw each and returns fresh items.
// Evaluation stops once MaxDrops items have dropped.
func (t *Table) Drop(r dice.Roller) ([]item.Item, error) {
	if r == nil {
		return nil, dnderr.InvalidArgument("roller is required")
	}

	maxDrops := t.MaxDrops
	if maxDrops <= 0 {
		maxDrops = DefaultMaxDrops
	}

	drops := []item.Item{}
	for _, entry := range t.Entries {
		if len(drops) >= maxDrops {
			break
		}
		if r.Chance() >= entry.Chance {
			continue
		}

		quantity, err := rollQuantity(r, entry)
		if err != nil {
			return nil, err
		}
		if quantity < 1 {
			continue
		}

		drops = append(drops, item.WithQuantity(entry.Template, quantity))
	}

	return drops, nil
}

func rollQuantity(r dice.Roller, entry Entry) (int, error) {
	quantity := 1
	if entry.Quantity != "" {
		result, err := dice.RollNotation(r, entry.Quantity)
		if err != nil {
			return 0, dnderr.Wrapf(err, "failed to roll quantity for %s", entry.Template.GetID())
		}
		quantity = result.Total
	}

	// a drop never overflows its own stack
	if maxStack, _ := item.MaxStack(entry.Template); quantity > maxStack {
		quantity = maxStack
	}
	return quantity, nil
}
