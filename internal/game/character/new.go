package character

import (
	"fmt"

	"github.com/cory-johannsen/dungeon/internal/game/battle"
	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
)

// Fighter is a class character usable as a battle.Combatant.
type Fighter interface {
	battle.Combatant
	Sheet() *Character
	String() string
}

// Option configures a Character at construction.
type Option func(*Character)

// WithInventorySize sets the number of inventory slots.
//
// Precondition: size >= 0.
func WithInventorySize(size int) Option {
	return func(c *Character) { c.inv = inventory.NewInventory(size) }
}

// New creates a level 1 character of class.
//
// Precondition: roller must be non-nil.
// Postcondition: returns an error if class is unknown.
func New(class Class, name string, roller *dice.Roller, opts ...Option) (Fighter, error) {
	switch class {
	case ClassWarrior:
		return NewWarrior(name, roller, opts...), nil
	case ClassMage:
		return NewMage(name, roller, opts...), nil
	case ClassArcher:
		return NewArcher(name, roller, opts...), nil
	default:
		return nil, fmt.Errorf("character: unknown class %q", class)
	}
}

// Give creates an instance of item id from reg and adds it to f's inventory.
func Give(f Fighter, reg *inventory.Registry, id string) (inventory.Item, error) {
	item, err := reg.NewInstance(id)
	if err != nil {
		return nil, fmt.Errorf("character: %w", err)
	}
	if err := f.AddItem(item); err != nil {
		return nil, fmt.Errorf("character: %w", err)
	}
	return item, nil
}

// Equip gives f an instance of item id and equips it. The item must be a
// weapon or armor.
func Equip(f Fighter, reg *inventory.Registry, id string) error {
	item, err := Give(f, reg, id)
	if err != nil {
		return err
	}
	sheet := f.Sheet()
	switch item.(type) {
	case *inventory.Weapon:
		return sheet.EquipWeapon(item.Name())
	case *inventory.Armor:
		return sheet.EquipArmor(item.Name())
	default:
		_, _ = sheet.inv.RemoveInstance(item.InstanceID())
		return fmt.Errorf("character: %q: %w", id, ErrNotEquippable)
	}
}

// Outfit gives f each item in ids, equipping weapons and armor into empty
// slots and carrying everything else.
func Outfit(f Fighter, reg *inventory.Registry, ids []string) error {
	sheet := f.Sheet()
	for _, id := range ids {
		item, err := Give(f, reg, id)
		if err != nil {
			return err
		}
		switch it := item.(type) {
		case *inventory.Weapon:
			if sheet.weapon == nil {
				err = sheet.EquipWeapon(it.Name())
			}
		case *inventory.Armor:
			if _, taken := sheet.armor[it.Slot()]; !taken {
				err = sheet.EquipArmor(it.Name())
			}
		}
		if err != nil {
			return fmt.Errorf("character: outfitting %q: %w", id, err)
		}
	}
	return nil
}
