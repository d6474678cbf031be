package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/assets"
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// fatalf prints an error and exits with status 1.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// registerLevelDir adds the YAML levels from --levels to the registry.
func registerLevelDir() {
	if flagLevels == "" {
		return
	}
	ids, err := levels.RegisterDir(flagLevels)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if len(ids) == 0 && err == nil {
		fmt.Fprintf(os.Stderr, "Warning: no levels found in %s\n", flagLevels)
	}
}

// newLogger builds the logger for a command. Interactive commands own the
// terminal, so they only log when --log-file is set.
func newLogger(interactive bool, prefix string) (*log.Logger, func()) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fatalf("invalid --log-level %q", flagLogLevel)
	}

	var (
		out     io.Writer = os.Stderr
		cleanup           = func() {}
	)
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fatalf("cannot open log file: %v", err)
		}
		out = f
		cleanup = func() { f.Close() }
	case interactive:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, cleanup
}

// loadConfig loads and validates the platformer config, applying --difficulty.
func loadConfig() config.PlatformerConfig {
	cfg, err := config.LoadPlatformer(flagConfig)
	if err != nil {
		fatalf("%v", err)
	}

	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			fatalf("unknown difficulty %q (use easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyPlatformerPreset(&cfg, preset)
	}

	if err := cfg.Validate(); err != nil {
		fatalf("%v", err)
	}
	return cfg
}

// loadSprites loads the sprite set, or returns nil for glyph rendering.
func loadSprites(cfg config.PlatformerConfig, logger *log.Logger) *assets.Set {
	if flagGlyphs {
		return nil
	}
	return assets.LoadSet(logger, cfg.Assets, flagAssets)
}

// newFactory returns a factory that builds platformer games. Every game
// it builds stops when its context ends.
func newFactory(cfg config.PlatformerConfig, sprites *assets.Set, logger *log.Logger) tui.GameFactory {
	return func(ctx context.Context, levelID string) (core.Game, error) {
		lvl, err := registry.Create(levelID)
		if err != nil {
			return nil, err
		}
		return platformer.New(cfg, lvl, platformer.GameOptions{
			Sprites: sprites,
			Logger:  logger.With("level", levelID),
			Context: ctx,
		}), nil
	}
}

// runtimeConfig builds the runtime config from the terminal and global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database. Interactive play continues without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "error", err)
		return nil
	}
	return store
}
