package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var flagRuns int

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show high scores and run statistics",
	Long: `Display the top 10 high scores and the most recent runs for a level.
Without a level, shows a summary of every level that has been played.

Examples:
  platformer scores
  platformer scores lab
  platformer scores lab --runs 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRuns, "runs", 5, "Number of recent runs to show")
}

func runScores(_ *cobra.Command, args []string) {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		printSummary(store)
		return
	}

	levelID := args[0]
	if !registry.Exists(levelID) {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
		fmt.Fprintln(os.Stderr, "Run 'platformer list' to see available levels.")
		store.Close()
		os.Exit(1)
	}
	printLevel(store, levelID)
}

// printSummary prints one line of run statistics per played level.
func printSummary(store *storage.Store) {
	all, err := store.GetAllLevelStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving statistics: %v\n", err)
		return
	}

	fmt.Println("Run Statistics")
	fmt.Println()

	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'platformer play' to record the first run!")
		return
	}

	fmt.Printf("  %-12s  %-6s  %-6s  %-8s  %-6s  %s\n", "Level", "Runs", "Best", "Average", "Coins", "Last played")
	fmt.Printf("  %-12s  %-6s  %-6s  %-8s  %-6s  %s\n", "-----", "----", "----", "-------", "-----", "-----------")

	// Registry order, then anything stored for levels no longer loaded
	seen := make(map[string]bool, len(all))
	row := func(s *storage.LevelStats) {
		fmt.Printf("  %-12s  %-6d  %-6d  %-8.1f  %-6d  %s\n",
			s.LevelID, s.RunsCount, s.HighScore, s.AvgScore, s.TotalCoins, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	for _, l := range registry.List() {
		if s, ok := all[l.ID]; ok {
			row(s)
			seen[l.ID] = true
		}
	}
	for id, s := range all {
		if !seen[id] {
			row(s)
		}
	}
}

// printLevel prints top scores and recent runs for one level.
func printLevel(store *storage.Store, levelID string) {
	lvl, err := registry.Create(levelID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading level: %v\n", err)
		return
	}

	// Get top scores
	scores, err := store.TopScores(levelID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", lvl.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'platformer play %s' to set the first high score!\n", levelID)
		return
	}

	fmt.Printf("  %-4s  %-12s  %-8s  %s\n", "Rank", "Player", "Score", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %s\n", "----", "------", "-----", "----")
	for i, entry := range scores {
		player := entry.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-12s  %-8d  %s\n", i+1, player, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetLevelStats(levelID); err == nil && stats.RunsCount > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Average: %.1f  Stomps: %d  Coins: %d\n",
			stats.RunsCount, stats.HighScore, stats.AvgScore, stats.TotalStomps, stats.TotalCoins)
	}

	if flagRuns <= 0 {
		return
	}
	runs, err := store.RecentRuns(levelID, flagRuns)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}
	if len(runs) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Recent Runs")
	fmt.Printf("  %-12s  %-6s  %-6s  %-6s  %-5s  %-9s  %s\n", "Player", "Score", "Coins", "Stomps", "Hits", "Duration", "End")
	for _, r := range runs {
		fmt.Printf("  %-12s  %-6d  %-6d  %-6d  %-5d  %-9s  %s\n",
			r.Player, r.Score, r.Coins, r.Stomps, r.Hits, r.Duration.Round(100*time.Millisecond), r.EndReason)
	}
}
