package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores [pack]",
	Short: "Show high scores and level statistics",
	Long: `Display the top 10 run scores. With a pack ID, also show how often
each of its levels was tried, won and lost, and the best time.

Examples:
  platformer scores
  platformer scores classic
  platformer scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all recorded scores and level results")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(platformer.GameID); err != nil {
			return err
		}
		fmt.Println("Scores cleared.")
		return nil
	}

	if err := printHighScores(store); err != nil {
		return err
	}

	if len(args) == 1 {
		pack, err := levels.Resolve(args[0], flagPackDir)
		if err != nil {
			return err
		}
		fmt.Println()
		return printLevelStats(store, pack)
	}
	return nil
}

func printHighScores(store *storage.Store) error {
	scores, err := store.TopScores(platformer.GameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Println("High Scores - Lava Run")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'platformer play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(platformer.GameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Runs: %d  Average: %.0f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
	return nil
}

func printLevelStats(store *storage.Store, pack levels.Pack) error {
	stats, err := store.LevelStats(platformer.GameID, pack.ID)
	if err != nil {
		return fmt.Errorf("retrieving level stats: %w", err)
	}
	byID := make(map[string]storage.LevelStats, len(stats))
	for _, st := range stats {
		byID[st.LevelID] = st
	}

	fmt.Printf("Levels - %s\n", pack.Title())
	fmt.Println()
	fmt.Printf("  %-3s  %-24s  %6s  %5s  %6s  %s\n", "#", "Level", "Tries", "Wins", "Deaths", "Best")
	fmt.Printf("  %-3s  %-24s  %6s  %5s  %6s  %s\n", "-", "-----", "-----", "----", "------", "----")
	for i, plan := range pack.Levels {
		st := byID[plan.ID]
		best := "-"
		if st.Wins > 0 {
			best = fmt.Sprintf("%.1fs", st.Best.Seconds())
		}
		fmt.Printf("  %-3d  %-24s  %6d  %5d  %6d  %s\n", i+1, plan.Title(), st.Attempts, st.Wins, st.Deaths, best)
	}
	return nil
}
