package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a pack and level interactively",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to open a pack and pick a level.
The level list shows your best time for each level. After a game ends,
you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Esc/B        - Back to the pack list
  Tab          - Scoreboard
  Q            - Quit

Examples:
  platformer menu
  platformer menu --fps 30
  platformer menu --pack-dir ./packs --difficulty hard`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runMenu(_ *cobra.Command, _ []string) error {
	gameCfg, err := loadGameConfig(flagConfig, flagDifficulty)
	if err != nil {
		return err
	}

	logger, closeLog, err := fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	packs := availablePacks(logger)
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	for {
		menuResult, err := tui.RunMenu(store, cfg, packs)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH, packs)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue
			}
			return nil
		}

		sel := menuResult.Selection
		if sel == nil {
			return nil
		}

		game := platformer.New()
		game.SetConfig(gameCfg)
		if err := game.SetPack(sel.Pack); err != nil {
			logger.Warn("cannot play pack", "pack", sel.Pack.ID, "error", err)
			continue
		}
		game.SetStartLevel(sel.Level)

		cfg.Seed = time.Now().UnixNano()
		if flagSeed != 0 {
			cfg.Seed = flagSeed
		}

		logger.Info("starting game", "pack", sel.Pack.ID, "level", sel.Level+1)
		if err := tui.Run(game, store, cfg, tui.WithLogger(logger)); err != nil {
			return fmt.Errorf("running game: %w", err)
		}
	}
}
