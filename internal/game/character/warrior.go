package character

import (
	"fmt"

	"github.com/cory-johannsen/dungeon/internal/game/battle"
	"github.com/cory-johannsen/dungeon/internal/game/dice"
)

var (
	warriorBase   = Stats{Health: 150, Mana: 30, Strength: 15, Defense: 10}
	warriorGrowth = Stats{Health: 20, Mana: 5, Strength: 3, Defense: 2}
)

const (
	MaxRage          = 100
	ragePerHit       = 10
	berserkRageCost  = 50
	shieldBlockMana  = 20
	shieldBlockRatio = 0.25
)

// Warrior builds rage when hit and spends it on Berserk.
type Warrior struct {
	*Character
	rage int
}

// NewWarrior creates a level 1 Warrior.
//
// Precondition: roller must be non-nil.
func NewWarrior(name string, roller *dice.Roller, opts ...Option) *Warrior {
	w := &Warrior{Character: newCharacter(name, ClassWarrior, warriorBase, roller, opts)}
	w.onLevelUp = func() { w.grow(warriorGrowth) }
	return w
}

// Rage returns the current rage, 0 through MaxRage.
func (w *Warrior) Rage() int { return w.rage }

// CalculateAttackDamage is strength plus weapon plus one point per ten rage.
func (w *Warrior) CalculateAttackDamage() int {
	return w.strength + w.weaponDamage() + w.rage/10
}

// TakeDamage applies the hit and builds rage, even when armor absorbs it all.
func (w *Warrior) TakeDamage(amount int) {
	w.Character.TakeDamage(amount)
	w.rage = min(MaxRage, w.rage+ragePerHit)
}

// UseSpecialAbility performs Berserk: spend 50 rage to hit for double attack
// damage. Fails without effect when rage is short.
func (w *Warrior) UseSpecialAbility(target battle.Combatant) bool {
	if w.rage < berserkRageCost {
		return false
	}
	w.rage -= berserkRageCost
	target.TakeDamage(w.CalculateAttackDamage() * 2)
	return true
}

// ShieldBlock spends 20 mana to take only a quarter of incoming. It does not
// build rage.
func (w *Warrior) ShieldBlock(incoming int) bool {
	if !w.UseMana(shieldBlockMana) {
		return false
	}
	w.Character.TakeDamage(int(float64(incoming) * shieldBlockRatio))
	return true
}

func (w *Warrior) String() string {
	return fmt.Sprintf("Warrior: %s | Rage: %d/%d", w.Character, w.rage, MaxRage)
}
