package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/config"
	"github.com/cory-johannsen/dungeon/internal/game/battle"
	"github.com/cory-johannsen/dungeon/internal/game/character"
	"github.com/cory-johannsen/dungeon/internal/game/command"
	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
	"github.com/cory-johannsen/dungeon/internal/scripting"
)

// Combatants pairs the player with the enemy it faces.
type Combatants struct {
	Player character.Fighter
	Enemy  character.Fighter
}

// ProvideSource returns a seeded source when battle.seed is set, otherwise
// the crypto-backed default.
func ProvideSource(cfg *config.Config, logger *zap.Logger) dice.Source {
	if cfg.Battle.Seed != 0 {
		logger.Info("using seeded randomness", zap.Uint64("seed", cfg.Battle.Seed))
		return dice.NewSeededSource(cfg.Battle.Seed)
	}
	return dice.NewCryptoSource()
}

// ProvideRoller wraps src in a roller that logs every roll.
func ProvideRoller(src dice.Source, logger *zap.Logger) *dice.Roller {
	return dice.NewLoggedRoller(src, logger)
}

// ProvideItemRegistry loads every item definition under content.items_dir.
func ProvideItemRegistry(cfg *config.Config, logger *zap.Logger) (*inventory.Registry, error) {
	defs, err := inventory.LoadItems(cfg.Content.ItemsDir)
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	reg, err := inventory.NewRegistryFrom(defs)
	if err != nil {
		return nil, fmt.Errorf("registering items: %w", err)
	}
	logger.Info("loaded items", zap.Int("count", len(defs)), zap.String("dir", cfg.Content.ItemsDir))
	return reg, nil
}

// ProvideCombatants creates the configured player and builds the enemy from
// its template.
func ProvideCombatants(cfg *config.Config, reg *inventory.Registry, roller *dice.Roller, logger *zap.Logger) (Combatants, error) {
	templates, err := character.LoadTemplates(cfg.Content.EnemiesDir)
	if err != nil {
		return Combatants{}, fmt.Errorf("loading enemy templates: %w", err)
	}
	logger.Info("loaded enemy templates", zap.Int("count", len(templates)))

	var tmpl *character.Template
	for _, t := range templates {
		if t.ID == cfg.Battle.Enemy {
			tmpl = t
			break
		}
	}
	if tmpl == nil {
		return Combatants{}, fmt.Errorf("enemy template %q not found in %q", cfg.Battle.Enemy, cfg.Content.EnemiesDir)
	}
	enemy, err := tmpl.Build(reg, roller)
	if err != nil {
		return Combatants{}, fmt.Errorf("building enemy %q: %w", tmpl.ID, err)
	}

	player, err := character.New(character.Class(cfg.Player.Class), cfg.Player.Name, roller,
		character.WithInventorySize(cfg.Player.InventorySize))
	if err != nil {
		return Combatants{}, fmt.Errorf("creating player: %w", err)
	}
	if err := character.Outfit(player, reg, cfg.Player.StartingItems); err != nil {
		return Combatants{}, fmt.Errorf("outfitting player: %w", err)
	}
	return Combatants{Player: player, Enemy: enemy}, nil
}

// ProvideScripts creates the scripting manager and loads scripting.script_dir
// when set. The cleanup closes the VM.
//
// Scripts roll on their own source so that a hook drawing random numbers
// never shifts the draws the battle sees. With battle.seed set the script
// source is seeded from seed+1, keeping replays reproducible.
func ProvideScripts(cfg *config.Config, logger *zap.Logger) (*scripting.Manager, func(), error) {
	src := dice.NewCryptoSource()
	if cfg.Battle.Seed != 0 {
		src = dice.NewSeededSource(cfg.Battle.Seed + 1)
	}
	roller := dice.NewLoggedRoller(src, logger.Named("script"))
	mgr := scripting.NewManager(roller, logger, cfg.Scripting.InstructionLimit)
	if cfg.Scripting.ScriptDir != "" {
		if err := mgr.LoadDir(cfg.Scripting.ScriptDir); err != nil {
			mgr.Close()
			return nil, nil, err
		}
	}
	return mgr, mgr.Close, nil
}

// ProvideHooks returns Lua-backed hooks when scripts are loaded.
func ProvideHooks(mgr *scripting.Manager) battle.Hooks {
	if !mgr.Loaded() {
		return battle.NopHooks{}
	}
	return scripting.NewBattleHooks(mgr)
}

// ProvideBattle starts the battle between the combatants.
func ProvideBattle(c Combatants, src dice.Source, hooks battle.Hooks, logger *zap.Logger) (*battle.Battle, error) {
	return battle.New(c.Player, c.Enemy,
		battle.WithSource(src),
		battle.WithLogger(logger),
		battle.WithHooks(hooks),
	)
}

// ProvideCommands returns the built-in command registry.
func ProvideCommands() *command.Registry {
	return command.DefaultRegistry()
}
