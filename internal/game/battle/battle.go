package battle

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/game/dice"
)

// ErrBattleEnded is returned when an action is enqueued after termination.
var ErrBattleEnded = errors.New("battle has already ended")

// Battle states and the single transition between them.
const (
	StateActive = "active"
	StateEnded  = "ended"

	eventEnd = "end"
)

// Reward multipliers applied to the defeated enemy's level.
const (
	GoldPerEnemyLevel       = 10
	ExperiencePerEnemyLevel = 20
)

// Option configures a Battle.
type Option func(*Battle)

// WithSource sets the randomness used by the enemy generator and flee checks.
func WithSource(src dice.Source) Option {
	return func(b *Battle) { b.src = src }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Battle) { b.logger = logger }
}

// WithHooks sets the lifecycle hooks.
func WithHooks(h Hooks) Option {
	return func(b *Battle) { b.hooks = h }
}

// Battle is one player-versus-enemy encounter. It owns its action queue, log
// and state but never the combatants.
//
// A Battle is not safe for concurrent use.
type Battle struct {
	id     string
	player Combatant
	enemy  Combatant

	src    dice.Source
	logger *zap.Logger
	hooks  Hooks

	scheduler *Scheduler
	ready     []Action
	executor  *Executor
	generator *Generator
	state     *fsm.FSM

	winner Combatant
	log    []string
}

// New starts a battle between player and enemy.
//
// Precondition: player and enemy are non-nil and distinct.
// Postcondition: the battle is active, the queue is empty and the log holds
// exactly the start line (plus any BattleStarted hook output).
func New(player, enemy Combatant, opts ...Option) (*Battle, error) {
	if err := checkParticipants(player, enemy); err != nil {
		return nil, fmt.Errorf("battle: %w", err)
	}
	b := &Battle{
		id:        uuid.New().String(),
		player:    player,
		enemy:     enemy,
		src:       dice.NewCryptoSource(),
		logger:    zap.NewNop(),
		hooks:     NopHooks{},
		scheduler: NewScheduler(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With(zap.String("battle", b.id))
	b.executor = NewExecutor(b.src, b.logger)
	b.generator = NewGenerator(b.src)
	b.state = fsm.NewFSM(
		StateActive,
		fsm.Events{
			{Name: eventEnd, Src: []string{StateActive}, Dst: StateEnded},
		},
		fsm.Callbacks{
			"enter_" + StateEnded: func(_ context.Context, e *fsm.Event) {
				b.logger.Debug("battle ended", zap.String("from", e.Src))
			},
		},
	)

	b.record(fmt.Sprintf("Battle started: %s vs %s", player.Name(), enemy.Name()))
	b.recordHook(b.hooks.BattleStarted(player.Name(), enemy.Name()))
	b.logger.Debug("battle started",
		zap.String("player", player.Name()),
		zap.String("enemy", enemy.Name()),
	)
	return b, nil
}

// ID returns the battle's unique identifier.
func (b *Battle) ID() string { return b.id }

func (b *Battle) Player() Combatant { return b.player }
func (b *Battle) Enemy() Combatant  { return b.enemy }

// State returns StateActive or StateEnded.
func (b *Battle) State() string { return b.state.Current() }

// IsEnded reports whether the battle has terminated.
func (b *Battle) IsEnded() bool { return b.state.Is(StateEnded) }

// Winner returns the winning combatant, or nil while the battle is active.
func (b *Battle) Winner() Combatant { return b.winner }

// Log returns a copy of the battle log.
func (b *Battle) Log() []string {
	out := make([]string, len(b.log))
	copy(out, b.log)
	return out
}

// PendingCount returns the number of actions not yet resolved. Actions left
// over when the battle ends are still counted.
func (b *Battle) PendingCount() int { return len(b.ready) + b.scheduler.Len() }

// Pending returns the unresolved actions: the current ordered batch first,
// then newly enqueued actions in enqueue order.
func (b *Battle) Pending() []Action {
	out := make([]Action, 0, b.PendingCount())
	out = append(out, b.ready...)
	return append(out, b.scheduler.Snapshot()...)
}

// Enqueue adds an action built by the caller.
//
// Precondition: a's actor and target are this battle's two combatants.
// Postcondition: returns ErrBattleEnded after termination and an error
// wrapping ErrInvalidAction for a foreign or malformed action.
func (b *Battle) Enqueue(a Action) error {
	if b.IsEnded() {
		return ErrBattleEnded
	}
	if !a.Kind().Valid() {
		return fmt.Errorf("battle: %w: unknown kind", ErrInvalidAction)
	}
	participants := (a.Actor() == b.player && a.Target() == b.enemy) ||
		(a.Actor() == b.enemy && a.Target() == b.player)
	if !participants {
		return fmt.Errorf("battle: %w: action is not between this battle's combatants", ErrInvalidAction)
	}
	b.scheduler.Enqueue(a)
	return nil
}

func (b *Battle) EnqueuePlayerAttack() error  { return b.enqueuePlayer(ActionAttack) }
func (b *Battle) EnqueuePlayerSpecial() error { return b.enqueuePlayer(ActionSpecial) }
func (b *Battle) EnqueuePlayerDefend() error  { return b.enqueuePlayer(ActionDefend) }
func (b *Battle) EnqueuePlayerFlee() error    { return b.enqueuePlayer(ActionFlee) }

// EnqueuePlayerItem queues the player using the named item.
func (b *Battle) EnqueuePlayerItem(name string) error {
	if b.IsEnded() {
		return ErrBattleEnded
	}
	a, err := NewItemAction(b.player, b.enemy, name)
	if err != nil {
		return fmt.Errorf("battle: %w", err)
	}
	b.scheduler.Enqueue(a)
	return nil
}

func (b *Battle) enqueuePlayer(kind ActionKind) error {
	if b.IsEnded() {
		return ErrBattleEnded
	}
	a, err := NewAction(b.player, b.enemy, kind)
	if err != nil {
		return fmt.Errorf("battle: %w", err)
	}
	b.scheduler.Enqueue(a)
	return nil
}

// ResolveNext executes the highest-ordered pending action.
//
// Postcondition: returns ("", false) without effect when the battle has ended
// or nothing is pending; otherwise the action's message and true. The
// termination check runs after every resolved action.
func (b *Battle) ResolveNext() (string, bool) {
	if b.IsEnded() {
		return "", false
	}
	if len(b.ready) == 0 {
		b.ready = b.scheduler.DrainOrdered()
	}
	if len(b.ready) == 0 {
		return "", false
	}
	a := b.ready[0]
	b.ready = b.ready[1:]

	out := b.executor.Execute(a)
	for _, note := range out.Notes {
		b.record(note)
	}
	b.record(out.Message)
	b.recordHook(b.hooks.ActionResolved(a.Actor().Name(), a.Kind(), out.Message))
	b.logger.Debug("action resolved",
		zap.String("actor", a.Actor().Name()),
		zap.Stringer("kind", a.Kind()),
		zap.String("message", out.Message),
	)

	if out.Fled {
		b.end(a.Target(), true)
	}
	b.checkTermination()
	return out.Message, true
}

// ResolveRound resolves pending actions until the queue is empty or the
// battle ends. When the only pending action is the player's, an enemy action
// is generated first so the round has both sides.
//
// Postcondition: returns a non-nil slice of result messages in resolution
// order; empty when the battle had already ended.
func (b *Battle) ResolveRound() []string {
	messages := []string{}
	if b.IsEnded() {
		return messages
	}
	if only, ok := b.onlyPending(); ok && only.Actor() == b.player {
		b.scheduler.Enqueue(b.generator.Next(b.enemy, b.player))
	}
	for !b.IsEnded() {
		msg, ok := b.ResolveNext()
		if !ok {
			break
		}
		messages = append(messages, msg)
	}
	return messages
}

func (b *Battle) onlyPending() (Action, bool) {
	if b.PendingCount() != 1 {
		return Action{}, false
	}
	if len(b.ready) == 1 {
		return b.ready[0], true
	}
	return b.scheduler.Peek()
}

// checkTermination ends the battle when either side is down. The player is
// checked first. The victory reward is granted once, immediately before the
// transition.
func (b *Battle) checkTermination() {
	if b.IsEnded() {
		return
	}
	switch {
	case !b.player.IsAlive():
		b.record(b.player.Name() + " was defeated!")
		b.end(b.enemy, false)
	case !b.enemy.IsAlive():
		b.record(b.enemy.Name() + " was defeated!")
		gold := b.enemy.Level() * GoldPerEnemyLevel
		b.player.AddGold(gold)
		b.player.GainExperience(b.enemy.Level() * ExperiencePerEnemyLevel)
		b.record(fmt.Sprintf("%s gained %d gold.", b.player.Name(), gold))
		b.end(b.player, false)
	}
}

// end moves the battle to StateEnded. Unresolved actions stay queued and are
// still counted by PendingCount, but they can never resolve.
func (b *Battle) end(winner Combatant, fled bool) {
	if err := b.state.Event(context.Background(), eventEnd); err != nil {
		b.logger.Warn("battle end transition rejected", zap.Error(err))
		return
	}
	b.winner = winner
	b.logger.Debug("battle terminated",
		zap.String("winner", winner.Name()),
		zap.Bool("fled", fled),
		zap.Int("unresolved", b.PendingCount()),
	)
	b.recordHook(b.hooks.BattleEnded(winner.Name(), fled))
}

func (b *Battle) record(line string) {
	b.log = append(b.log, line)
}

func (b *Battle) recordHook(line string) {
	if line != "" {
		b.record(line)
	}
}
