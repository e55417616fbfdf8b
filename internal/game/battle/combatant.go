// Package battle implements the turn-based battle resolution engine: the
// action queue, priority ordering, action execution and the Active/Ended
// termination state machine for one player versus one enemy.
//
// The package depends only on the Combatant capability contract; concrete
// character types live elsewhere.
package battle

import "github.com/cory-johannsen/dungeon/internal/game/inventory"

// Combatant is the capability contract the battle engine requires from each
// side. The engine never owns a Combatant; it mutates it only through these
// methods.
type Combatant interface {
	inventory.Vitals

	Name() string
	Level() int
	IsAlive() bool

	// CalculateAttackDamage returns the raw, pre-defense damage of one attack.
	CalculateAttackDamage() int
	// UseSpecialAbility performs the combatant's special move against target
	// and reports whether it went off.
	UseSpecialAbility(target Combatant) bool
	// TakeDamage applies raw damage; any mitigation is the combatant's own.
	TakeDamage(amount int)

	// RemoveItem takes the named item out of the inventory. The error wraps
	// inventory.ErrItemNotFound when absent.
	RemoveItem(name string) (inventory.Item, error)
	// AddItem puts item back. The error wraps inventory.ErrInventoryFull when full.
	AddItem(item inventory.Item) error
	// PushRecentlyUsed records a successfully used item.
	PushRecentlyUsed(item inventory.Item)

	AddGold(amount int)
	GainExperience(amount int)
}
