//go:build wireinject

package main

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/config"
)

func initializeArena(cfg *config.Config, logger *zap.Logger) (*Arena, func(), error) {
	wire.Build(
		ProvideSource,
		ProvideRoller,
		ProvideItemRegistry,
		ProvideCombatants,
		ProvideScripts,
		ProvideHooks,
		ProvideBattle,
		ProvideCommands,
		NewArena,
	)
	return nil, nil, nil
}
