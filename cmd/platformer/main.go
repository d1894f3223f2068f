// platformer is a terminal lava platformer: run across tile levels, grab
// every coin and stay out of the lava.
//
// Usage:
//
//	platformer list                 - List level packs and their levels
//	platformer play [pack]          - Play a pack
//	platformer menu                 - Pick a pack and level interactively
//	platformer serve                - Start SSH server for remote play
//	platformer scores [pack]        - Show high scores and level statistics
//	platformer levels validate <f>  - Check a pack file
//	platformer replay <file>        - Re-run a recorded game
//	platformer render <pack> <lvl>  - Save a level as a PNG image
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.platformer/scores.db)
//	--log-level <lvl>   - Log verbosity (debug, info, warn, error)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-platformer/internal/games/platformer"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
	flagPackDir  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "Lava Run - a tile platformer in your terminal",
	Long: `Lava Run is a terminal platformer. Each level is a grid of walls,
lava and coins: collect every coin to clear it, touch lava and you start
the level over.

Available commands:
  list     - Show level packs and their levels
  play     - Play a pack directly
  menu     - Interactive pack and level picker
  serve    - Start SSH server for remote play
  scores   - View high scores and per-level statistics
  levels   - Validate pack files
  replay   - Re-run a recorded game
  render   - Export a level as a PNG image

Examples:
  platformer list
  platformer play classic
  platformer play tutorial --level 2
  platformer play mypack --pack-dir ./packs --watch
  platformer menu
  platformer serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.platformer/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file for full-screen commands (default: ~/.platformer/platformer.log)")
	rootCmd.PersistentFlags().StringVar(&flagPackDir, "pack-dir", "", "Directory with extra level packs (*.yaml)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(renderCmd)
}
