// Package command provides the battle command registry, parser, and the
// dispatcher that turns a player's line into a queued battle action.
package command

// Categories for organizing commands.
const (
	CategoryCombat = "combat"
	CategorySystem = "system"
)

// Handler identifiers mapping commands to battle operations or local handlers.
const (
	HandlerAttack    = "attack"
	HandlerSpecial   = "special"
	HandlerItem      = "item"
	HandlerDefend    = "defend"
	HandlerFlee      = "flee"
	HandlerStatus    = "status"
	HandlerInventory = "inventory"
	HandlerHelp      = "help"
	HandlerQuit      = "quit"
)

// DefaultItem is used when the item command is given without a name.
const DefaultItem = "Health Potion"

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command (combat, system).
	Category string
	// Handler identifies what the command does.
	Handler string
}

// IsAction reports whether the command queues a battle action.
func (c *Command) IsAction() bool { return c.Category == CategoryCombat }

// BuiltinCommands returns all built-in commands. The numeric aliases follow
// the classic battle menu order.
func BuiltinCommands() []Command {
	return []Command{
		{Name: "attack", Aliases: []string{"a", "1"}, Help: "Attack the enemy", Category: CategoryCombat, Handler: HandlerAttack},
		{Name: "special", Aliases: []string{"s", "2"}, Help: "Use your class special ability", Category: CategoryCombat, Handler: HandlerSpecial},
		{Name: "item", Aliases: []string{"use", "i", "3"}, Help: "Use an item: item <name> (default Health Potion)", Category: CategoryCombat, Handler: HandlerItem},
		{Name: "defend", Aliases: []string{"d", "4"}, Help: "Take a defensive stance", Category: CategoryCombat, Handler: HandlerDefend},
		{Name: "flee", Aliases: []string{"f", "run", "5"}, Help: "Attempt to flee the battle", Category: CategoryCombat, Handler: HandlerFlee},

		{Name: "status", Aliases: []string{"st"}, Help: "Show both combatants", Category: CategorySystem, Handler: HandlerStatus},
		{Name: "inventory", Aliases: []string{"inv"}, Help: "List your items", Category: CategorySystem, Handler: HandlerInventory},
		{Name: "help", Aliases: []string{"h", "?"}, Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "quit", Aliases: []string{"q", "exit"}, Help: "Leave the arena", Category: CategorySystem, Handler: HandlerQuit},
	}
}
