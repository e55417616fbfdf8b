package battle

import "github.com/cory-johannsen/dungeon/internal/game/dice"

// Enemy action policy: one draw in [0, 1) selects the kind.
const (
	enemyAttackBelow  = 0.60 // [0, 0.60) attacks
	enemySpecialBelow = 0.85 // [0.60, 0.85) specials; the rest defends
)

// Generator produces the enemy's move for a round.
type Generator struct {
	src dice.Source
}

// NewGenerator creates a Generator drawing from src.
//
// Precondition: src must be non-nil.
func NewGenerator(src dice.Source) *Generator {
	return &Generator{src: src}
}

// Next draws one value and returns the enemy's action against player.
//
// Postcondition: Actor() == enemy, Target() == player, Kind() is Attack,
// Special or Defend.
func (g *Generator) Next(enemy, player Combatant) Action {
	return Action{
		actor:    enemy,
		target:   player,
		kind:     EnemyKindFor(g.src.Float64()),
		priority: DefaultPriority,
	}
}

// EnemyKindFor maps a draw in [0, 1) to the enemy's action kind.
func EnemyKindFor(roll float64) ActionKind {
	switch {
	case roll < enemyAttackBelow:
		return ActionAttack
	case roll < enemySpecialBelow:
		return ActionSpecial
	default:
		return ActionDefend
	}
}
