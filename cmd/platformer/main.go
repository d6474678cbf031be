// platformer is a concurrent terminal platformer: enemies patrol on their
// own goroutines while the main loop runs the player at a fixed tick.
//
// Usage:
//
//	platformer list              - List available levels
//	platformer play [level]      - Play a level (default: lab)
//	platformer menu              - Pick levels interactively
//	platformer serve             - Start SSH server for remote play
//	platformer scores [level]    - Show high scores and run statistics
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--config <path>      - Load a custom config YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--assets <dir>       - Sprite directory
//	--levels <dir>       - Extra YAML level directory
//	--log-level <level>  - debug, info, warn, error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register built-in levels
	_ "github.com/vovakirdan/tui-platformer/internal/levels"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagAssets     string
	flagGlyphs     bool
	flagLevels     string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "TUI Platformer - jump, stomp and collect coins in your terminal",
	Long: `TUI Platformer is a terminal platform game. Every enemy runs on its
own goroutine; at most eight are alive at once.

Available commands:
  list     - Show all available levels
  play     - Play a level directly
  menu     - Interactive level picker
  serve    - Start SSH server for remote play
  scores   - View high scores and run statistics

Examples:
  platformer list
  platformer play
  platformer play towers --difficulty hard
  platformer menu --levels ./levels
  platformer serve --ssh :2222
  platformer scores lab`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		registerLevelDir()
	},
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom platformer config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagAssets, "assets", "", "Sprite directory (default: assets.dir from config)")
	pf.BoolVar(&flagGlyphs, "glyphs", false, "Draw plain colored glyphs instead of sprites")
	pf.StringVar(&flagLevels, "levels", "", "Directory of extra YAML levels")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
