package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/replay"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      string
	flagRecord     string
	flagWatch      bool
)

var playCmd = &cobra.Command{
	Use:   "play [pack]",
	Short: "Play a level pack",
	Long: `Start playing a level pack, by default the configured one.

Controls:
  Left/Right, A/D  - Run
  Up/W/Space       - Jump
  P/Esc            - Pause
  R                - Restart the level (new run after game over)
  Ctrl+S           - Save a screenshot (text and PNG)
  Ctrl+Y           - Copy the screen to the clipboard
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Unlimited retries, longer key hold, higher jumps
  normal - Five lives
  hard   - Three lives, faster player and lava

Examples:
  platformer play
  platformer play tutorial
  platformer play classic --level 3
  platformer play classic --level gauntlet --difficulty hard
  platformer play mypack --pack-dir ./packs --watch
  platformer play classic --record run.replay`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Level to start at: 1-based number or level ID")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Record the run to this replay file")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the pack when its file changes")
}

// levelIndex resolves a --level value against pack.
func levelIndex(pack levels.Pack, value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(value); err == nil {
		if n < 1 || n > len(pack.Levels) {
			return 0, fmt.Errorf("level %d out of range: pack %q has %d levels", n, pack.ID, len(pack.Levels))
		}
		return n - 1, nil
	}
	if i := pack.Index(value); i >= 0 {
		return i, nil
	}
	return 0, fmt.Errorf("%w: %q in pack %q", levels.ErrLevelNotFound, value, pack.ID)
}

func runPlay(_ *cobra.Command, args []string) error {
	gameCfg, err := loadGameConfig(flagConfig, flagDifficulty)
	if err != nil {
		return err
	}

	packID := gameCfg.Gameplay.Pack
	if len(args) == 1 {
		packID = args[0]
	}
	pack, err := levels.Resolve(packID, flagPackDir)
	if err != nil {
		return fmt.Errorf("%w\nRun 'platformer list' to see available packs", err)
	}
	start, err := levelIndex(pack, flagLevel)
	if err != nil {
		return err
	}

	logger, closeLog, err := fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	game := platformer.New()
	game.SetConfig(gameCfg)
	if err := game.SetPack(pack); err != nil {
		return err
	}
	game.SetStartLevel(start)

	opts := []tui.Option{tui.WithLogger(logger)}
	if flagRecord != "" {
		path := flagRecord
		if filepath.Ext(path) == "" {
			path += replay.Extension
		}
		opts = append(opts, tui.WithRecording(path))
	}
	if flagWatch {
		if pack.FilePath == "" {
			return fmt.Errorf("--watch needs a pack loaded from --pack-dir, %q is built in", pack.ID)
		}
		watcher, err := levels.NewWatcher(filepath.Dir(pack.FilePath))
		if err != nil {
			return err
		}
		defer watcher.Close()
		opts = append(opts, tui.WithWatcher(watcher))
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	logger.Info("starting game", "pack", pack.ID, "level", start+1)
	if err := tui.Run(game, store, runtimeConfig(), opts...); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
