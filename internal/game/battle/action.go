package battle

import (
	"errors"
	"fmt"
)

// ErrInvalidAction is returned when an Action violates its construction contract.
var ErrInvalidAction = errors.New("invalid battle action")

// ActionKind identifies what a combatant intends to do.
// The zero value (ActionUnknown) is intentionally invalid.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionAttack
	ActionSpecial
	ActionDefend
	ActionUseItem
	ActionFlee
)

// String returns the lowercase name of the kind.
func (k ActionKind) String() string {
	switch k {
	case ActionAttack:
		return "attack"
	case ActionSpecial:
		return "special"
	case ActionDefend:
		return "defend"
	case ActionUseItem:
		return "use_item"
	case ActionFlee:
		return "flee"
	default:
		return "unknown"
	}
}

// Valid reports whether k is one of the five real kinds.
func (k ActionKind) Valid() bool {
	return k >= ActionAttack && k <= ActionFlee
}

// DefaultPriority is the priority every constructed Action starts with.
// All kinds share it, so ordering is FIFO unless a caller overrides it.
const DefaultPriority = 0

// Action is one combatant's intended move. Actions are immutable values.
type Action struct {
	actor    Combatant
	target   Combatant
	kind     ActionKind
	item     string
	priority int
}

// NewAction builds a non-item action.
//
// Precondition: actor and target are non-nil and distinct; kind is valid and
// not ActionUseItem.
// Postcondition: returns an error wrapping ErrInvalidAction on violation.
func NewAction(actor, target Combatant, kind ActionKind) (Action, error) {
	if !kind.Valid() {
		return Action{}, fmt.Errorf("%w: unknown kind %d", ErrInvalidAction, int(kind))
	}
	if kind == ActionUseItem {
		return Action{}, fmt.Errorf("%w: use_item requires an item name", ErrInvalidAction)
	}
	if err := checkParticipants(actor, target); err != nil {
		return Action{}, err
	}
	return Action{actor: actor, target: target, kind: kind, priority: DefaultPriority}, nil
}

// NewItemAction builds an ActionUseItem for the named item.
//
// Precondition: item is non-empty; actor and target are non-nil and distinct.
func NewItemAction(actor, target Combatant, item string) (Action, error) {
	if item == "" {
		return Action{}, fmt.Errorf("%w: use_item requires an item name", ErrInvalidAction)
	}
	if err := checkParticipants(actor, target); err != nil {
		return Action{}, err
	}
	return Action{actor: actor, target: target, kind: ActionUseItem, item: item, priority: DefaultPriority}, nil
}

func checkParticipants(actor, target Combatant) error {
	if actor == nil || target == nil {
		return fmt.Errorf("%w: actor and target must be set", ErrInvalidAction)
	}
	if actor == target {
		return fmt.Errorf("%w: %s cannot target itself", ErrInvalidAction, actor.Name())
	}
	return nil
}

// WithPriority returns a copy of a with priority p. Higher resolves first.
func (a Action) WithPriority(p int) Action {
	a.priority = p
	return a
}

func (a Action) Actor() Combatant  { return a.actor }
func (a Action) Target() Combatant { return a.target }
func (a Action) Kind() ActionKind  { return a.kind }
func (a Action) Priority() int     { return a.priority }

// Item returns the item name; empty unless Kind is ActionUseItem.
func (a Action) Item() string { return a.item }

// FilterActions returns the actions for which keep reports true, in order.
func FilterActions(actions []Action, keep func(Action) bool) []Action {
	var out []Action
	for _, a := range actions {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}
