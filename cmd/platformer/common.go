package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/logging"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

// runtimeConfig builds the runtime config from the global flags.
func runtimeConfig() core.RuntimeConfig {
	w, h := terminalSize()
	return core.RuntimeConfig{
		ScreenW:  w,
		ScreenH:  h,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// loadGameConfig loads the tuning from path (or the default search order)
// and applies a difficulty preset.
func loadGameConfig(path, difficulty string) (config.PlatformerConfig, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if difficulty != "" {
		preset := config.ParsePreset(difficulty)
		if preset == "" {
			return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", difficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}

// availablePacks returns the built-in packs plus those in --pack-dir.
// A pack in the directory replaces a built-in pack with the same ID.
func availablePacks(logger *log.Logger) []levels.Pack {
	byID := make(map[string]levels.Pack)
	for _, p := range levels.Builtin() {
		byID[p.ID] = p
	}
	if flagPackDir != "" {
		extra, err := levels.NewLoader(flagPackDir).LoadAll()
		if err != nil {
			logger.Warn("cannot load pack directory", "dir", flagPackDir, "error", err)
		}
		for _, p := range extra {
			byID[p.ID] = p
		}
	}

	packs := make([]levels.Pack, 0, len(byID))
	for _, p := range byID {
		packs = append(packs, p)
	}
	sort.Slice(packs, func(i, j int) bool { return packs[i].ID < packs[j].ID })
	return packs
}

// openStore opens the scores database. Games still run without one.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// stderrLogger logs to stderr for commands that do not take over the terminal.
func stderrLogger() (*log.Logger, error) {
	return logging.New(os.Stderr, flagLogLevel)
}

// fileLogger logs to a file while a full-screen program owns the terminal.
// The returned func closes the file.
func fileLogger() (*log.Logger, func(), error) {
	path := flagLogFile
	if path == "" {
		path = logging.DefaultFile
	}
	f, err := logging.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(f, flagLogLevel)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}
