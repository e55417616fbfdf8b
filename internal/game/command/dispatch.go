package command

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCommand is returned when a line names no registered command.
var ErrUnknownCommand = errors.New("unknown command")

// BattleActor is the part of a battle that player commands drive.
type BattleActor interface {
	EnqueuePlayerAttack() error
	EnqueuePlayerSpecial() error
	EnqueuePlayerItem(name string) error
	EnqueuePlayerDefend() error
	EnqueuePlayerFlee() error
}

// Dispatch is the outcome of handling one input line.
type Dispatch struct {
	// Command is the resolved command; nil for an empty line.
	Command *Command
	// Input is the parsed line.
	Input ParseResult
	// Enqueued is true when a battle action was queued.
	Enqueued bool
}

// Dispatch parses line and, for combat commands, enqueues the matching player
// action on b. System commands are resolved but left to the caller.
//
// Postcondition: an empty line returns a zero Dispatch and nil error; an
// unresolvable line returns an error wrapping ErrUnknownCommand; enqueue
// errors (e.g. battle.ErrBattleEnded) are returned wrapped.
func (r *Registry) Dispatch(b BattleActor, line string) (Dispatch, error) {
	in := Parse(line)
	if in.Command == "" {
		return Dispatch{}, nil
	}
	cmd, ok := r.Resolve(in.Command)
	if !ok {
		return Dispatch{Input: in}, fmt.Errorf("%w: %q", ErrUnknownCommand, in.Command)
	}
	d := Dispatch{Command: cmd, Input: in}
	if !cmd.IsAction() {
		return d, nil
	}

	var err error
	switch cmd.Handler {
	case HandlerAttack:
		err = b.EnqueuePlayerAttack()
	case HandlerSpecial:
		err = b.EnqueuePlayerSpecial()
	case HandlerItem:
		err = b.EnqueuePlayerItem(itemName(in))
	case HandlerDefend:
		err = b.EnqueuePlayerDefend()
	case HandlerFlee:
		err = b.EnqueuePlayerFlee()
	default:
		err = fmt.Errorf("command %q has no battle handler", cmd.Name)
	}
	if err != nil {
		return d, fmt.Errorf("%s: %w", cmd.Name, err)
	}
	d.Enqueued = true
	return d, nil
}

// itemName is the raw argument text with its original casing, or DefaultItem.
func itemName(in ParseResult) string {
	if name := strings.TrimSpace(in.RawArgs); name != "" {
		return name
	}
	return DefaultItem
}
