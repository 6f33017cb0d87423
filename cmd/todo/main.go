package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/urfave/cli/v3"

	"todolist/internal/config"
	"todolist/internal/logging"
	"todolist/internal/storage"
	"todolist/internal/todo"
	"todolist/internal/ui"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "todo: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "todo",
		Usage: "Terminal todo list with persistent state",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.ResolveConfigPath(),
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "Path to the SQLite file (overrides db_path)",
			},
			&cli.StringFlag{
				Name:  "variant",
				Usage: "View variant: card or compact (overrides variant)",
			},
			&cli.BoolFlag{
				Name:  "reset",
				Usage: "Clear the stored task list and theme before starting",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error (overrides log_level)",
			},
		},
		Action: run,
	}
}

func run(_ context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadOrCreate(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if v := cmd.String("db"); v != "" {
		cfg.DBPath = v
	}
	if v := cmd.String("variant"); v != "" {
		cfg.Variant = v
	}
	if v := cmd.String("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closer.Close()

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	if cmd.Bool("reset") {
		cleared, err := resetState(store)
		if err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		logger.Info("state reset", "keys", cleared)
	}

	logger.Info("starting", "db", cfg.DBPath, "variant", cfg.Variant)
	return ui.Run(store, cfg, logger)
}

// resetState removes the persisted task list and theme, returning the keys
// that were present. The next load yields the defaults.
func resetState(store *storage.Store) ([]string, error) {
	keys, err := store.Keys()
	if err != nil {
		return nil, err
	}
	var cleared []string
	for _, k := range keys {
		if k != todo.KeyTodos && k != todo.KeyTheme {
			continue
		}
		if err := store.Delete(k); err != nil {
			return cleared, err
		}
		cleared = append(cleared, k)
	}
	return cleared, nil
}
