package scripting

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/dungeon/internal/game/battle"
)

// Lua global functions the battle hooks dispatch to.
const (
	HookBattleStart    = "on_battle_start"
	HookActionResolved = "on_action_resolved"
	HookBattleEnd      = "on_battle_end"
)

// BattleHooks adapts a Manager to battle.Hooks. A hook that returns a string
// contributes that string to the battle log; any other return is ignored.
type BattleHooks struct {
	mgr *Manager
}

var _ battle.Hooks = (*BattleHooks)(nil)

// NewBattleHooks wraps mgr.
//
// Precondition: mgr must be non-nil.
func NewBattleHooks(mgr *Manager) *BattleHooks {
	return &BattleHooks{mgr: mgr}
}

func (h *BattleHooks) BattleStarted(player, enemy string) string {
	return h.call(HookBattleStart, lua.LString(player), lua.LString(enemy))
}

func (h *BattleHooks) ActionResolved(actor string, kind battle.ActionKind, message string) string {
	return h.call(HookActionResolved, lua.LString(actor), lua.LString(kind.String()), lua.LString(message))
}

func (h *BattleHooks) BattleEnded(winner string, fled bool) string {
	return h.call(HookBattleEnd, lua.LString(winner), lua.LBool(fled))
}

func (h *BattleHooks) call(hook string, args ...lua.LValue) string {
	if s, ok := h.mgr.CallHook(hook, args...).(lua.LString); ok {
		return string(s)
	}
	return ""
}
