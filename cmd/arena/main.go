// Package main provides the arena binary: it wires configuration, content,
// scripts and the battle engine, then plays one battle over stdin/stdout.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/config"
	"github.com/cory-johannsen/dungeon/internal/lifecycle"
	"github.com/cory-johannsen/dungeon/internal/observability"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting arena",
		zap.String("player", cfg.Player.Name),
		zap.String("class", cfg.Player.Class),
		zap.String("enemy", cfg.Battle.Enemy),
	)

	arena, cleanup, err := initializeArena(&cfg, logger)
	if err != nil {
		logger.Fatal("wiring arena", zap.Error(err))
	}
	defer cleanup()
	logger.Info("arena ready", zap.Duration("elapsed", time.Since(start)))

	lc := lifecycle.NewLifecycle(logger)
	lc.Add("arena", &lifecycle.FuncService{
		StartFn: func() error { return arena.Run(os.Stdin, os.Stdout) },
		StopFn:  arena.Stop,
	})
	if err := lc.Run(context.Background()); err != nil {
		logger.Error("arena stopped", zap.Error(err))
	}
}
