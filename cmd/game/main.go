// Command game serves a character roster whose objects are built by the
// inject resolver.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/xraph/inject"
	"github.com/xraph/inject/game"
	"github.com/xraph/inject/internal/config"
	"github.com/xraph/inject/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to an .hcl or .yaml config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := cfg.Logger()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	resolver, err := inject.New(func(reg *inject.Registry) error {
		return game.Compose(reg, cfg.Game.Seed)
	}, inject.WithLogger(logger.Named("inject")))
	if err != nil {
		return fmt.Errorf("composing registry: %w", err)
	}

	if err := resolver.Registry().Validate(); err != nil {
		return fmt.Errorf("validating registry: %w", err)
	}

	g, err := game.NewGame(resolver,
		game.WithMaxCharacters(cfg.Game.MaxCharacters),
		game.WithLogger(logger.Named("game")),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(g, resolver.Registry(), logger.Named("http"))

	logger.Info("starting game server",
		zap.String("address", cfg.Server.Address),
		zap.Int("max_characters", cfg.Game.MaxCharacters),
	)

	return srv.Run(ctx, cfg.Server.Address)
}
