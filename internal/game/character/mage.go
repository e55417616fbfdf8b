package character

import (
	"fmt"
	"math"

	"github.com/cory-johannsen/dungeon/internal/game/battle"
	"github.com/cory-johannsen/dungeon/internal/game/dice"
)

var (
	mageBase   = Stats{Health: 80, Mana: 150, Strength: 5, Defense: 3}
	mageGrowth = Stats{Health: 8, Mana: 25, Strength: 1, Defense: 1}
)

const (
	baseSpellPower     = 20
	spellPowerPerLevel = 5
	fireballManaCost   = 25
	fireballMultiplier = 1.5
	healManaCost       = 30
)

// Mage spends mana on spells scaled by spell power.
type Mage struct {
	*Character
	spellPower int
}

// NewMage creates a level 1 Mage.
//
// Precondition: roller must be non-nil.
func NewMage(name string, roller *dice.Roller, opts ...Option) *Mage {
	m := &Mage{
		Character:  newCharacter(name, ClassMage, mageBase, roller, opts),
		spellPower: baseSpellPower,
	}
	m.onLevelUp = func() {
		m.spellPower += spellPowerPerLevel
		m.grow(mageGrowth)
	}
	return m
}

// SpellPower returns the mage's spell power.
func (m *Mage) SpellPower() int { return m.spellPower }

// CalculateAttackDamage is strength plus weapon.
func (m *Mage) CalculateAttackDamage() int {
	return m.strength + m.weaponDamage()
}

// SpellDamage returns spell power scaled by multiplier, rounded up.
func (m *Mage) SpellDamage(multiplier float64) int {
	return int(math.Ceil(float64(m.spellPower) * multiplier))
}

// UseSpecialAbility casts Fireball for 25 mana.
func (m *Mage) UseSpecialAbility(target battle.Combatant) bool {
	if !m.UseMana(fireballManaCost) {
		return false
	}
	target.TakeDamage(m.SpellDamage(fireballMultiplier))
	return true
}

// CastHeal spends 30 mana to heal by spell power.
func (m *Mage) CastHeal() bool {
	if !m.UseMana(healManaCost) {
		return false
	}
	m.Heal(m.spellPower)
	return true
}

// ManaShield absorbs incoming damage at two points per mana and returns the
// damage left over.
func (m *Mage) ManaShield(incoming int) int {
	capacity := m.mana * 2
	if capacity >= incoming {
		m.mana -= (incoming + 1) / 2
		return 0
	}
	m.mana = 0
	return incoming - capacity
}

func (m *Mage) String() string {
	return fmt.Sprintf("Mage: %s | Spell Power: %d", m.Character, m.spellPower)
}
