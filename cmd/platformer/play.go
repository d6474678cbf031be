package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing the named level (default: lab).

Controls:
  A/D, Left/Right  - Move
  Space/W/Up       - Jump
  P                - Pause
  Esc/B            - Leave (when paused or after game over)
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - More lives, fewer enemies, gentle progression
  normal - Default lives and enemy cap
  hard   - Fewer lives, faster spawns
  fixed  - No progression

Examples:
  platformer play
  platformer play stairs --difficulty hard
  platformer play --config ./my-platformer.yaml
  platformer play canyon --levels ./levels`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	levelID := levels.DefaultID
	if len(args) > 0 {
		levelID = args[0]
	}

	// Check if level exists
	if !registry.Exists(levelID) {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
		fmt.Fprintln(os.Stderr, "Run 'platformer list' to see available levels.")
		os.Exit(1)
	}

	cfg := loadConfig()
	logger, closeLog := newLogger(true, "platformer")
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	game, err := newFactory(cfg, loadSprites(cfg, logger), logger)(ctx, levelID)
	if err != nil {
		fatalf("creating game: %v", err)
	}

	// Open score storage; the game still works without it
	store := openStore(logger)

	runErr := tui.Run(game, runtimeConfig(), tui.ModelOptions{
		Store:     store,
		Logger:    logger,
		HoldTicks: cfg.Input.HoldTicks,
		EndDelay:  cfg.EndDelay,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}

	if r, ok := game.(tui.RunReporter); ok {
		run := r.RunRecord()
		fmt.Printf("%s: score %d, coins %d, stomps %d, lives left %d (%s)\n",
			game.Title(), run.Score, run.Coins, run.Stomps, run.Lives, run.EndReason)
	}
}
