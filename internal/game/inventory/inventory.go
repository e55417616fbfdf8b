package inventory

import (
	"errors"
	"fmt"
)

// DefaultCapacity is the number of slots a combatant carries unless configured otherwise.
const DefaultCapacity = 20

var (
	// ErrItemNotFound is returned when a named item is absent from an inventory.
	ErrItemNotFound = errors.New("not found in inventory")
	// ErrInventoryFull is returned when an inventory has no free slot.
	ErrInventoryFull = errors.New("inventory is full")
)

// Inventory is an ordered, slot-limited collection of items. Each item takes
// one slot.
//
// Invariant: Len() <= Capacity().
type Inventory struct {
	capacity int
	items    []Item
}

// NewInventory creates an empty Inventory with capacity slots.
//
// Precondition: capacity >= 0.
func NewInventory(capacity int) *Inventory {
	return &Inventory{capacity: capacity}
}

// Add appends item.
//
// Postcondition: on success item is last; when full, returns an error
// wrapping ErrInventoryFull and the inventory is unchanged.
func (inv *Inventory) Add(item Item) error {
	if len(inv.items) >= inv.capacity {
		return fmt.Errorf("cannot add %q: %w (%d/%d)", item.Name(), ErrInventoryFull, len(inv.items), inv.capacity)
	}
	inv.items = append(inv.items, item)
	return nil
}

// Remove takes out the first item whose name equals name.
//
// Postcondition: returns an error wrapping ErrItemNotFound if no item matches.
func (inv *Inventory) Remove(name string) (Item, error) {
	for i, it := range inv.items {
		if it.Name() == name {
			inv.items = append(inv.items[:i], inv.items[i+1:]...)
			return it, nil
		}
	}
	return nil, fmt.Errorf("item %q %w", name, ErrItemNotFound)
}

// RemoveInstance takes out the item with the given instance ID.
func (inv *Inventory) RemoveInstance(instanceID string) (Item, error) {
	for i, it := range inv.items {
		if it.InstanceID() == instanceID {
			inv.items = append(inv.items[:i], inv.items[i+1:]...)
			return it, nil
		}
	}
	return nil, fmt.Errorf("item instance %q %w", instanceID, ErrItemNotFound)
}

// Contains reports whether an item named name is present.
func (inv *Inventory) Contains(name string) bool {
	for _, it := range inv.items {
		if it.Name() == name {
			return true
		}
	}
	return false
}

// Items returns a snapshot copy of the items in insertion order.
func (inv *Inventory) Items() []Item {
	out := make([]Item, len(inv.items))
	copy(out, inv.items)
	return out
}

// Len returns the number of occupied slots.
func (inv *Inventory) Len() int { return len(inv.items) }

// Capacity returns the maximum number of slots.
func (inv *Inventory) Capacity() int { return inv.capacity }

// ByRarity groups the items by rarity; an unset rarity counts as common.
func (inv *Inventory) ByRarity() map[Rarity][]Item {
	out := make(map[Rarity][]Item)
	for _, it := range inv.items {
		r := it.Def().Rarity
		if r == "" {
			r = RarityCommon
		}
		out[r] = append(out[r], it)
	}
	return out
}
