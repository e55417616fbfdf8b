package inventory

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/dungeon/internal/game/dice"
)

// Item is one concrete item instance.
type Item interface {
	// InstanceID uniquely identifies this instance.
	InstanceID() string
	// Name is the display name used for inventory lookups.
	Name() string
	// Def returns the static definition the instance was created from.
	Def() *ItemDef
}

// Vitals is the subset of a combatant a consumable acts on.
type Vitals interface {
	CurrentHealth() int
	MaxHealth() int
	CurrentMana() int
	MaxMana() int
	Heal(amount int)
	RestoreMana(amount int)
}

// Usable is an Item that can be consumed on a target.
type Usable interface {
	Item
	// CanUse reports whether Use would succeed on target.
	CanUse(target Vitals) bool
	// Use applies the item to target and reports success.
	Use(target Vitals) bool
}

type base struct {
	id  string
	def *ItemDef
}

func (b base) InstanceID() string { return b.id }
func (b base) Name() string       { return b.def.Name }
func (b base) Def() *ItemDef      { return b.def }

// Potion is a consumable with a limited number of uses.
type Potion struct {
	base
	remaining int
}

// RemainingUses returns how many more times the potion can be used.
func (p *Potion) RemainingUses() int { return p.remaining }

// IsSellable reports whether the potion is still untouched.
func (p *Potion) IsSellable() bool { return p.remaining == p.def.Potion.Uses }

// CanUse reports whether the potion has uses left and would have an effect.
// Health and mana potions require the matching pool to be below its maximum.
func (p *Potion) CanUse(target Vitals) bool {
	if p.remaining <= 0 {
		return false
	}
	switch p.def.Potion.Type {
	case PotionHealth:
		return target.CurrentHealth() < target.MaxHealth()
	case PotionMana:
		return target.CurrentMana() < target.MaxMana()
	}
	return true
}

// Use applies the potion to target.
//
// Postcondition: on success RemainingUses is decremented by one; on failure
// the potion and target are unchanged.
func (p *Potion) Use(target Vitals) bool {
	if !p.CanUse(target) {
		return false
	}
	switch p.def.Potion.Type {
	case PotionHealth:
		target.Heal(p.def.Potion.Potency)
	case PotionMana:
		target.RestoreMana(p.def.Potion.Potency)
	}
	p.remaining--
	return true
}

// Weapon deals damage rolled from its dice expression.
type Weapon struct {
	base
	damage dice.Expression
}

// Damage returns the weapon's damage expression.
func (w *Weapon) Damage() dice.Expression { return w.damage }

// Armor adds flat defense in one slot.
type Armor struct {
	base
}

// Slot returns the armor's body slot.
func (a *Armor) Slot() ArmorSlot { return a.def.Armor.Slot }

// Defense returns the armor's defense bonus.
func (a *Armor) Defense() int { return a.def.Armor.Defense }

// Junk has no use beyond its value.
type Junk struct {
	base
}

// NewItem creates a fresh instance of def with a new instance ID.
//
// Precondition: def must have passed Validate.
// Postcondition: returns a *Potion, *Weapon, *Armor or *Junk matching def.Kind.
func NewItem(def *ItemDef) (Item, error) {
	b := base{id: uuid.New().String(), def: def}
	switch def.Kind {
	case KindPotion:
		if def.Potion == nil {
			return nil, fmt.Errorf("inventory: item %q has no potion block", def.ID)
		}
		return &Potion{base: b, remaining: def.Potion.Uses}, nil
	case KindWeapon:
		if def.Weapon == nil {
			return nil, fmt.Errorf("inventory: item %q has no weapon block", def.ID)
		}
		expr, err := dice.Parse(def.Weapon.Damage)
		if err != nil {
			return nil, fmt.Errorf("inventory: item %q: %w", def.ID, err)
		}
		return &Weapon{base: b, damage: expr}, nil
	case KindArmor:
		if def.Armor == nil {
			return nil, fmt.Errorf("inventory: item %q has no armor block", def.ID)
		}
		return &Armor{base: b}, nil
	case KindJunk:
		return &Junk{base: b}, nil
	default:
		return nil, fmt.Errorf("inventory: item %q has unknown kind %q", def.ID, def.Kind)
	}
}
