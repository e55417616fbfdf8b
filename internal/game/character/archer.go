package character

import (
	"fmt"

	"github.com/cory-johannsen/dungeon/internal/game/battle"
	"github.com/cory-johannsen/dungeon/internal/game/dice"
)

var (
	archerBase   = Stats{Health: 100, Mana: 80, Strength: 12, Defense: 5}
	archerGrowth = Stats{Health: 12, Mana: 10, Strength: 2, Defense: 1}
)

const (
	MaxArrows          = 30
	multishotArrowCost = 3
	multishotShots     = 3
	multishotRatio     = 0.7
	arrowPrice         = 5

	baseCritChance     = 0.15
	critChancePerLevel = 0.02
	maxCritChance      = 0.5
	critMultiplier     = 2
)

// Archer fights with arrows and critical hits.
type Archer struct {
	*Character
	critChance float64
	arrows     int
}

// NewArcher creates a level 1 Archer with a full quiver.
//
// Precondition: roller must be non-nil.
func NewArcher(name string, roller *dice.Roller, opts ...Option) *Archer {
	a := &Archer{
		Character:  newCharacter(name, ClassArcher, archerBase, roller, opts),
		critChance: baseCritChance,
		arrows:     MaxArrows,
	}
	a.onLevelUp = func() {
		a.critChance = min(maxCritChance, a.critChance+critChancePerLevel)
		a.arrows = MaxArrows
		a.grow(archerGrowth)
	}
	return a
}

func (a *Archer) Arrows() int             { return a.arrows }
func (a *Archer) CriticalChance() float64 { return a.critChance }

// critical rolls a crit and applies it to dmg.
func (a *Archer) critical(dmg int) int {
	if a.roller.Chance("critical", a.critChance) {
		return dmg * critMultiplier
	}
	return dmg
}

// CalculateAttackDamage is strength plus weapon, doubled on a critical hit.
func (a *Archer) CalculateAttackDamage() int {
	return a.critical(a.strength + a.weaponDamage())
}

// UseSpecialAbility fires Multishot: three arrows, each dealing 70% of a
// fresh base roll with its own crit chance.
func (a *Archer) UseSpecialAbility(target battle.Combatant) bool {
	if a.arrows < multishotArrowCost {
		return false
	}
	a.arrows -= multishotArrowCost
	for range multishotShots {
		shot := int(float64(a.strength+a.weaponDamage()) * multishotRatio)
		target.TakeDamage(a.critical(shot))
	}
	return true
}

// ShootArrow spends one arrow on a normal attack and returns the raw damage,
// or false when the quiver is empty.
func (a *Archer) ShootArrow(target battle.Combatant) (int, bool) {
	if a.arrows <= 0 {
		return 0, false
	}
	a.arrows--
	dmg := a.CalculateAttackDamage()
	target.TakeDamage(dmg)
	return dmg, true
}

// RefillArrows buys the missing arrows at 5 gold each. It fails when the
// quiver is full or the archer cannot pay.
func (a *Archer) RefillArrows() bool {
	missing := MaxArrows - a.arrows
	if missing <= 0 || !a.SpendGold(missing*arrowPrice) {
		return false
	}
	a.arrows = MaxArrows
	return true
}

func (a *Archer) String() string {
	return fmt.Sprintf("Archer: %s | Arrows: %d/%d", a.Character, a.arrows, MaxArrows)
}
