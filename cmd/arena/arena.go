package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/config"
	"github.com/cory-johannsen/dungeon/internal/game/battle"
	"github.com/cory-johannsen/dungeon/internal/game/character"
	"github.com/cory-johannsen/dungeon/internal/game/command"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
)

// Arena runs a single battle from a line-oriented input stream.
type Arena struct {
	battle    *battle.Battle
	player    character.Fighter
	enemy     character.Fighter
	commands  *command.Registry
	maxRounds int
	logger    *zap.Logger
	stopped   atomic.Bool
}

// NewArena assembles an Arena around an already started battle.
func NewArena(cfg *config.Config, b *battle.Battle, c Combatants, cmds *command.Registry, logger *zap.Logger) *Arena {
	return &Arena{
		battle:    b,
		player:    c.Player,
		enemy:     c.Enemy,
		commands:  cmds,
		maxRounds: cfg.Battle.MaxRounds,
		logger:    logger,
	}
}

// Stop makes Run return before it handles the next line. It is safe to call
// from another goroutine.
func (a *Arena) Stop() { a.stopped.Store(true) }

// Run reads commands from in until the battle ends, the player quits, the
// round cap is reached, Stop is called, or in is exhausted. Battle text is
// written to out.
//
// Postcondition: returns nil unless reading in fails.
func (a *Arena) Run(in io.Reader, out io.Writer) error {
	for _, line := range a.battle.Log() {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintf(out, "A wild %s appears!\n", a.enemy.Name())
	fmt.Fprint(out, a.commands.HelpText())

	scanner := bufio.NewScanner(in)
	rounds := 0
	for !a.battle.IsEnded() && !a.stopped.Load() {
		if a.maxRounds > 0 && rounds >= a.maxRounds {
			fmt.Fprintf(out, "The battle drags on for %d rounds. Both sides withdraw.\n", rounds)
			a.logger.Info("round cap reached", zap.Int("rounds", rounds))
			return nil
		}
		a.printStatus(out)
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			fmt.Fprintln(out)
			return nil
		}
		if a.stopped.Load() {
			return nil
		}

		d, err := a.commands.Dispatch(a.battle, scanner.Text())
		switch {
		case errors.Is(err, command.ErrUnknownCommand):
			// Nothing is queued, so the round resolves nothing.
			fmt.Fprintln(out, "You hesitated! (Skipping turn)")
		case err != nil:
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		case d.Command == nil:
			continue
		case !d.Enqueued:
			if quit := a.system(out, d.Command); quit {
				return nil
			}
			continue
		}

		for _, msg := range a.battle.ResolveRound() {
			fmt.Fprintln(out, msg)
		}
		rounds++
	}

	if a.battle.IsEnded() {
		a.printOutcome(out)
	}
	return nil
}

// system handles commands that do not consume a turn. It reports whether the
// player asked to leave.
func (a *Arena) system(out io.Writer, cmd *command.Command) bool {
	switch cmd.Handler {
	case command.HandlerStatus:
		fmt.Fprintln(out, a.player.String())
		fmt.Fprintln(out, a.enemy.String())
	case command.HandlerInventory:
		items := a.player.Sheet().Inventory().Items()
		if len(items) == 0 {
			fmt.Fprintln(out, "Your pack is empty.")
		}
		for _, it := range items {
			if w, ok := it.(*inventory.Weapon); ok {
				fmt.Fprintf(out, "  %s (damage %d-%d)\n", it.Name(), w.Damage().Min(), w.Damage().Max())
				continue
			}
			fmt.Fprintf(out, "  %s\n", it.Name())
		}
	case command.HandlerHelp:
		fmt.Fprint(out, a.commands.HelpText())
	case command.HandlerQuit:
		fmt.Fprintln(out, "You leave the arena.")
		a.logger.Info("player quit", zap.String("battle", a.battle.ID()))
		return true
	}
	return false
}

func (a *Arena) printStatus(out io.Writer) {
	fmt.Fprintf(out, "\n%s HP %d/%d | %s HP %d/%d\n",
		a.player.Name(), a.player.CurrentHealth(), a.player.MaxHealth(),
		a.enemy.Name(), a.enemy.CurrentHealth(), a.enemy.MaxHealth())
}

func (a *Arena) printOutcome(out io.Writer) {
	switch {
	case a.battle.Winner() == a.player:
		fmt.Fprintf(out, "VICTORY! You defeated %s!\n", a.enemy.Name())
		fmt.Fprintln(out, a.player.String())
	case a.player.IsAlive():
		fmt.Fprintf(out, "You escaped from %s.\n", a.enemy.Name())
	default:
		fmt.Fprintln(out, "DEFEAT! You were knocked out...")
	}
	a.logger.Info("battle finished",
		zap.String("battle", a.battle.ID()),
		zap.String("winner", a.battle.Winner().Name()),
	)
}
