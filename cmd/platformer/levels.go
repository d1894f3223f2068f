package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Work with level pack files",
}

var levelsValidateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check pack files for errors",
	Long: `Parse each pack file and build every level in it.

A pack is valid when it has an ID and at least one level, level IDs are
unique, and every level has equal-length rows with exactly one player
start below the top row.

Examples:
  platformer levels validate ./packs/mypack.yaml
  platformer levels validate ./packs/*.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLevelsValidate,
}

func init() {
	levelsCmd.AddCommand(levelsValidateCmd)
}

var errInvalidPacks = errors.New("some packs are invalid")

func runLevelsValidate(_ *cobra.Command, args []string) error {
	failed := 0
	for _, path := range args {
		pack, err := levels.NewLoader("").LoadFile(path)
		if err != nil {
			failed++
			fmt.Printf("FAIL  %s\n      %v\n", path, err)
			continue
		}
		fmt.Printf("ok    %s  (%s, %d levels)\n", path, pack.ID, len(pack.Levels))
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errInvalidPacks, failed, len(args))
	}
	return nil
}
