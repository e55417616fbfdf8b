// Package character provides the reference combatants: a shared Character
// sheet plus the Warrior, Mage and Archer classes, and enemy templates loaded
// from YAML.
package character

import (
	"errors"
	"fmt"
	"maps"

	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
)

// Class names a character archetype.
type Class string

const (
	ClassWarrior Class = "warrior"
	ClassMage    Class = "mage"
	ClassArcher  Class = "archer"
)

// Valid reports whether c is a known class.
func (c Class) Valid() bool {
	switch c {
	case ClassWarrior, ClassMage, ClassArcher:
		return true
	}
	return false
}

// ExperiencePerLevel is the experience needed for each level-up.
const ExperiencePerLevel = 100

// Stats is a block of the four core numbers. It is used both for a class's
// starting values and for its per-level growth.
type Stats struct {
	Health   int
	Mana     int
	Strength int
	Defense  int
}

// levelUpBase is the growth every class receives before its own.
var levelUpBase = Stats{Health: 10, Mana: 5, Strength: 2, Defense: 1}

// ErrNotEquippable is returned when equipping an item of the wrong kind.
var ErrNotEquippable = errors.New("item cannot be equipped")

// Character is the state every class shares: vitals, equipment, inventory,
// gold and experience. It does not attack on its own; the class types supply
// CalculateAttackDamage and UseSpecialAbility.
//
// Invariant: 0 <= CurrentHealth() <= MaxHealth() and 0 <= CurrentMana() <= MaxMana().
type Character struct {
	name  string
	class Class

	level      int
	experience int
	gold       int

	health, maxHealth int
	mana, maxMana     int
	strength          int
	defense           int

	weapon *inventory.Weapon
	armor  map[inventory.ArmorSlot]*inventory.Armor

	inv    *inventory.Inventory
	recent []inventory.Item

	roller    *dice.Roller
	onLevelUp func()
}

func newCharacter(name string, class Class, base Stats, roller *dice.Roller, opts []Option) *Character {
	c := &Character{
		name:      name,
		class:     class,
		level:     1,
		health:    base.Health,
		maxHealth: base.Health,
		mana:      base.Mana,
		maxMana:   base.Mana,
		strength:  base.Strength,
		defense:   base.Defense,
		armor:     make(map[inventory.ArmorSlot]*inventory.Armor),
		inv:       inventory.NewInventory(inventory.DefaultCapacity),
		roller:    roller,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sheet returns c itself; class types expose their shared state through it.
func (c *Character) Sheet() *Character { return c }

func (c *Character) Name() string       { return c.name }
func (c *Character) Class() Class       { return c.class }
func (c *Character) Level() int         { return c.level }
func (c *Character) Experience() int    { return c.experience }
func (c *Character) Gold() int          { return c.gold }
func (c *Character) CurrentHealth() int { return c.health }
func (c *Character) MaxHealth() int     { return c.maxHealth }
func (c *Character) CurrentMana() int   { return c.mana }
func (c *Character) MaxMana() int       { return c.maxMana }
func (c *Character) Strength() int      { return c.strength }
func (c *Character) BaseDefense() int   { return c.defense }

// IsAlive reports whether health is above zero.
func (c *Character) IsAlive() bool { return c.health > 0 }

// TotalDefense is base defense plus the defense of every equipped armor piece.
func (c *Character) TotalDefense() int {
	total := c.defense
	for _, a := range c.armor {
		total += a.Defense()
	}
	return total
}

// TakeDamage reduces health by amount minus TotalDefense, never below zero
// and never healing.
func (c *Character) TakeDamage(amount int) {
	c.health = max(0, c.health-max(0, amount-c.TotalDefense()))
}

// Heal restores up to amount health. Non-positive amounts are ignored.
func (c *Character) Heal(amount int) {
	if amount <= 0 {
		return
	}
	c.health = min(c.maxHealth, c.health+amount)
}

// RestoreMana restores up to amount mana.
func (c *Character) RestoreMana(amount int) {
	c.mana = min(c.maxMana, c.mana+amount)
}

// UseMana spends amount mana if available.
func (c *Character) UseMana(amount int) bool {
	if c.mana < amount {
		return false
	}
	c.mana -= amount
	return true
}

// weaponDamage rolls the equipped weapon, or 0 when unarmed.
func (c *Character) weaponDamage() int {
	if c.weapon == nil {
		return 0
	}
	return c.roller.Roll(c.weapon.Damage()).Total()
}

// Inventory returns the character's inventory.
func (c *Character) Inventory() *inventory.Inventory { return c.inv }

// AddItem stores item. The error wraps inventory.ErrInventoryFull.
func (c *Character) AddItem(item inventory.Item) error {
	if err := c.inv.Add(item); err != nil {
		return fmt.Errorf("%s: %w", c.name, err)
	}
	return nil
}

// RemoveItem takes out the first item named name. The error wraps
// inventory.ErrItemNotFound.
func (c *Character) RemoveItem(name string) (inventory.Item, error) {
	return c.inv.Remove(name)
}

// PushRecentlyUsed records item as the most recently used.
func (c *Character) PushRecentlyUsed(item inventory.Item) {
	c.recent = append(c.recent, item)
}

// PopRecentlyUsed removes and returns the most recently used item.
func (c *Character) PopRecentlyUsed() (inventory.Item, bool) {
	if len(c.recent) == 0 {
		return nil, false
	}
	item := c.recent[len(c.recent)-1]
	c.recent = c.recent[:len(c.recent)-1]
	return item, true
}

// PeekRecentlyUsed returns the most recently used item without removing it.
func (c *Character) PeekRecentlyUsed() (inventory.Item, bool) {
	if len(c.recent) == 0 {
		return nil, false
	}
	return c.recent[len(c.recent)-1], true
}

// EquipWeapon moves the first weapon named name from the inventory into the
// weapon slot. Any previously equipped weapon goes back into the inventory.
func (c *Character) EquipWeapon(name string) error {
	item, err := c.takeEquippable(name, func(it inventory.Item) bool {
		_, ok := it.(*inventory.Weapon)
		return ok
	})
	if err != nil {
		return err
	}
	old := c.weapon
	c.weapon = item.(*inventory.Weapon)
	if old != nil {
		// A slot was just freed, so this cannot overflow.
		_ = c.inv.Add(old)
	}
	return nil
}

// EquipArmor moves the first armor piece named name from the inventory into
// its slot, returning any piece it replaces to the inventory.
func (c *Character) EquipArmor(name string) error {
	item, err := c.takeEquippable(name, func(it inventory.Item) bool {
		_, ok := it.(*inventory.Armor)
		return ok
	})
	if err != nil {
		return err
	}
	piece := item.(*inventory.Armor)
	old, had := c.armor[piece.Slot()]
	c.armor[piece.Slot()] = piece
	if had {
		_ = c.inv.Add(old)
	}
	return nil
}

func (c *Character) takeEquippable(name string, match func(inventory.Item) bool) (inventory.Item, error) {
	found := false
	for _, it := range c.inv.Items() {
		if it.Name() != name {
			continue
		}
		found = true
		if match(it) {
			return c.inv.RemoveInstance(it.InstanceID())
		}
	}
	if found {
		return nil, fmt.Errorf("%s: %q: %w", c.name, name, ErrNotEquippable)
	}
	return nil, fmt.Errorf("%s: item %q %w", c.name, name, inventory.ErrItemNotFound)
}

// EquippedWeapon returns the weapon in hand, or nil.
func (c *Character) EquippedWeapon() *inventory.Weapon { return c.weapon }

// EquippedArmor returns a copy of the slot to armor mapping.
func (c *Character) EquippedArmor() map[inventory.ArmorSlot]*inventory.Armor {
	return maps.Clone(c.armor)
}

// AddGold adds amount gold.
func (c *Character) AddGold(amount int) { c.gold += amount }

// SpendGold deducts amount if the character can afford it.
func (c *Character) SpendGold(amount int) bool {
	if c.gold < amount {
		return false
	}
	c.gold -= amount
	return true
}

// GainExperience adds amount experience and applies every level-up it pays
// for. Each level grants the shared growth, a full restore, then the class's
// own growth.
func (c *Character) GainExperience(amount int) {
	c.experience += amount
	for c.experience >= ExperiencePerLevel {
		c.experience -= ExperiencePerLevel
		c.level++
		c.grow(levelUpBase)
		if c.onLevelUp != nil {
			c.onLevelUp()
		}
	}
}

// grow applies s and restores health and mana to full.
func (c *Character) grow(s Stats) {
	c.maxHealth += s.Health
	c.maxMana += s.Mana
	c.strength += s.Strength
	c.defense += s.Defense
	c.health = c.maxHealth
	c.mana = c.maxMana
}

// String summarizes the sheet on one line.
func (c *Character) String() string {
	return fmt.Sprintf("%s (Level %d) - HP: %d/%d, Mana: %d/%d, Gold: %d",
		c.name, c.level, c.health, c.maxHealth, c.mana, c.maxMana, c.gold)
}
