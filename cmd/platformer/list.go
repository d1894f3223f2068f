package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List level packs and their levels",
	Long:  `Shows every built-in pack, plus those found in --pack-dir, with their levels.`,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	logger, err := stderrLogger()
	if err != nil {
		return err
	}
	packs := availablePacks(logger)

	for _, g := range registry.List() {
		fmt.Printf("%s (%s)\n\n", g.Title, g.ID)
	}

	if len(packs) == 0 {
		fmt.Println("No level packs available.")
		return nil
	}

	fmt.Println("Available packs:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, p := range packs {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, p := range packs {
		title := p.Title()
		if p.FilePath != "" {
			title += " (" + p.FilePath + ")"
		}
		fmt.Printf("  %-*s  %s\n", maxIDLen, p.ID, title)
		for i, plan := range p.Levels {
			fmt.Printf("  %-*s    %2d. %s\n", maxIDLen, "", i+1, plan.Title())
		}
	}

	fmt.Println()
	fmt.Println("Run 'platformer play <id>' to play a pack.")
	return nil
}
