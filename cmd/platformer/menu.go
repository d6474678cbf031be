package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a level picker menu",
	Long: `Start the platformer in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a level.
After a run ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select level
  Tab          - High scores
  Q            - Quit

Examples:
  platformer menu
  platformer menu --fps 30
  platformer menu --levels ./levels --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger, closeLog := newLogger(true, "platformer")
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open score storage; the menu still works without it
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	err := tui.RunSession(ctx, runtimeConfig(), tui.SessionOptions{
		Factory:   newFactory(cfg, loadSprites(cfg, logger), logger),
		Store:     store,
		Logger:    logger,
		HoldTicks: cfg.Input.HoldTicks,
		EndDelay:  cfg.EndDelay,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running menu: %v\n", err)
		os.Exit(1)
	}
}
