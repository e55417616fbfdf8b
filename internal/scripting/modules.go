package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/game/dice"
)

// RegisterModules installs the engine global:
//
//	engine.roll(expr)  -> total of a dice expression such as "2d6+1"
//	engine.chance(p)   -> true with probability p
//	engine.log(msg)    -> writes msg to the game log at info level
//
// Precondition: L must be from NewSandboxedState.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetFuncs(engine, map[string]lua.LGFunction{
		"roll":   m.luaRoll,
		"chance": m.luaChance,
		"log":    m.luaLog,
	})
	L.SetGlobal("engine", engine)
}

func (m *Manager) luaRoll(L *lua.LState) int {
	expr, err := dice.Parse(L.CheckString(1))
	if err != nil {
		L.RaiseError("engine.roll: %s", err.Error())
		return 0
	}
	L.Push(lua.LNumber(m.roller.Roll(expr).Total()))
	return 1
}

func (m *Manager) luaChance(L *lua.LState) int {
	p := float64(L.CheckNumber(1))
	L.Push(lua.LBool(m.roller.Chance("script", p)))
	return 1
}

func (m *Manager) luaLog(L *lua.LState) int {
	m.logger.Info("script", zap.String("message", L.CheckString(1)))
	return 0
}
