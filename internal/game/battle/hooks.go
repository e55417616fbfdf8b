package battle

// Hooks observes a battle's lifecycle. Any non-empty string a hook returns is
// appended to the battle log; it never changes round results or game state.
type Hooks interface {
	BattleStarted(player, enemy string) string
	ActionResolved(actor string, kind ActionKind, message string) string
	BattleEnded(winner string, fled bool) string
}

// NopHooks ignores every event.
type NopHooks struct{}

func (NopHooks) BattleStarted(string, string) string              { return "" }
func (NopHooks) ActionResolved(string, ActionKind, string) string { return "" }
func (NopHooks) BattleEnded(string, bool) string                  { return "" }
