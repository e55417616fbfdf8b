package battle

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
)

// Flee chance parameters. The chance is not clamped: a large level advantage
// makes fleeing certain, a large deficit makes it impossible.
const (
	fleeBaseChance     = 0.30
	fleeChancePerLevel = 0.05
)

// FleeChance returns the probability that a combatant at actorLevel escapes
// from one at opponentLevel.
func FleeChance(actorLevel, opponentLevel int) float64 {
	return fleeBaseChance + fleeChancePerLevel*float64(actorLevel-opponentLevel)
}

// Outcome is the result of executing one Action.
type Outcome struct {
	// Message is the result line returned to the caller and logged.
	Message string
	// Notes are extra log lines written before Message. They are not part of
	// the round result.
	Notes []string
	// Fled is true when a Flee succeeded.
	Fled bool
}

// Executor applies one Action's effects to its participants.
type Executor struct {
	src    dice.Source
	logger *zap.Logger
}

// NewExecutor creates an Executor.
//
// Precondition: src and logger must be non-nil.
func NewExecutor(src dice.Source, logger *zap.Logger) *Executor {
	return &Executor{src: src, logger: logger}
}

// Execute performs a.
//
// Precondition: a was built by NewAction, NewItemAction or a Generator.
// Postcondition: exactly one Message is produced; termination is not checked.
func (e *Executor) Execute(a Action) Outcome {
	actor := a.Actor()
	switch a.Kind() {
	case ActionAttack:
		raw := actor.CalculateAttackDamage()
		a.Target().TakeDamage(raw)
		return Outcome{Message: fmt.Sprintf("%s attacked for %d damage.", actor.Name(), raw)}
	case ActionSpecial:
		if actor.UseSpecialAbility(a.Target()) {
			return Outcome{Message: actor.Name() + " used special ability!"}
		}
		return Outcome{Message: actor.Name() + " failed special ability."}
	case ActionDefend:
		return Outcome{
			Notes:   []string{actor.Name() + " takes defensive stance."},
			Message: actor.Name() + " is defending.",
		}
	case ActionUseItem:
		return e.useItem(actor, a.Item())
	case ActionFlee:
		return e.flee(actor, a.Target())
	default:
		return Outcome{Message: fmt.Sprintf("Error: %v: unknown kind %d", ErrInvalidAction, int(a.Kind()))}
	}
}

// useItem removes the named item, applies it and returns it on failure.
// A failure to return the item (inventory full) is dropped silently.
func (e *Executor) useItem(actor Combatant, name string) Outcome {
	item, err := actor.RemoveItem(name)
	if err != nil {
		return Outcome{Message: "Error: " + err.Error()}
	}
	if usable, ok := item.(inventory.Usable); ok && usable.Use(actor) {
		actor.PushRecentlyUsed(item)
		return Outcome{Message: fmt.Sprintf("%s used %s", actor.Name(), name)}
	}
	if err := actor.AddItem(item); err != nil {
		e.logger.Debug("item lost after failed use",
			zap.String("actor", actor.Name()),
			zap.String("item", name),
			zap.Error(err),
		)
	}
	return Outcome{Message: actor.Name() + " failed to use item."}
}

func (e *Executor) flee(actor, opponent Combatant) Outcome {
	chance := FleeChance(actor.Level(), opponent.Level())
	draw := e.src.Float64()
	e.logger.Debug("flee attempt",
		zap.String("actor", actor.Name()),
		zap.Float64("chance", chance),
		zap.Float64("draw", draw),
	)
	if draw < chance {
		return Outcome{Message: actor.Name() + " fled the battle!", Fled: true}
	}
	return Outcome{Message: actor.Name() + " failed to flee."}
}
