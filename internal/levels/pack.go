// Package levels loads level packs: ordered lists of plans described in YAML.
// Two packs ship embedded in the binary; more can be loaded from a directory.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-platformer/internal/level"
)

// Pack validation errors.
var (
	ErrNoID          = errors.New("levels: missing id")
	ErrNoLevels      = errors.New("levels: pack has no levels")
	ErrDuplicateID   = errors.New("levels: duplicate level id")
	ErrSpawnTopRow   = errors.New("levels: player spawn in top row")
	ErrPackNotFound  = errors.New("levels: pack not found")
	ErrLevelNotFound = errors.New("levels: level not found")
)

//go:embed packs/*.yaml
var builtinFS embed.FS

// Plan is a single level layout.
type Plan struct {
	ID   string   `yaml:"id"`
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

// Title returns the display name, falling back to the ID.
func (p Plan) Title() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// Build constructs a playable level from the plan.
func (p Plan) Build(phys level.Physics, seed int64) (*level.Level, error) {
	return level.New(p.Rows, phys, rand.New(rand.NewSource(seed)))
}

// Pack is an ordered sequence of plans played one after another.
type Pack struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Levels []Plan `yaml:"levels"`

	// FilePath is set for packs loaded from disk.
	FilePath string `yaml:"-"`
}

// Title returns the display name, falling back to the ID.
func (p Pack) Title() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// Index returns the position of the level with the given ID, or -1.
func (p Pack) Index(levelID string) int {
	for i, plan := range p.Levels {
		if plan.ID == levelID {
			return i
		}
	}
	return -1
}

// ParsePack decodes and validates a YAML pack document.
func ParsePack(data []byte) (Pack, error) {
	var pack Pack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return Pack{}, fmt.Errorf("levels: decode pack: %w", err)
	}
	for i := range pack.Levels {
		if pack.Levels[i].ID == "" {
			pack.Levels[i].ID = fmt.Sprintf("level-%d", i+1)
		}
	}
	if err := Validate(pack); err != nil {
		return Pack{}, err
	}
	return pack, nil
}

// Validate checks that every plan in the pack builds into a level whose
// player can move.
func Validate(pack Pack) error {
	if strings.TrimSpace(pack.ID) == "" {
		return ErrNoID
	}
	if len(pack.Levels) == 0 {
		return fmt.Errorf("%w: %s", ErrNoLevels, pack.ID)
	}

	seen := make(map[string]bool, len(pack.Levels))
	for i, plan := range pack.Levels {
		if seen[plan.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, plan.ID)
		}
		seen[plan.ID] = true

		if len(plan.Rows) > 0 && strings.ContainsRune(plan.Rows[0], '@') {
			return fmt.Errorf("%w: level %d (%s)", ErrSpawnTopRow, i+1, plan.ID)
		}
		if _, err := level.New(plan.Rows, level.DefaultPhysics(), nil); err != nil {
			return fmt.Errorf("level %d (%s): %w", i+1, plan.ID, err)
		}
	}
	return nil
}

// Builtin returns the embedded packs sorted by ID.
func Builtin() []Pack {
	entries, err := builtinFS.ReadDir("packs")
	if err != nil {
		return nil
	}

	packs := make([]Pack, 0, len(entries))
	for _, e := range entries {
		data, err := builtinFS.ReadFile("packs/" + e.Name())
		if err != nil {
			continue
		}
		pack, err := ParsePack(data)
		if err != nil {
			continue
		}
		packs = append(packs, pack)
	}

	sort.Slice(packs, func(i, j int) bool {
		return packs[i].ID < packs[j].ID
	})
	return packs
}

// BuiltinByID returns the embedded pack with the given ID.
func BuiltinByID(id string) (Pack, error) {
	for _, p := range Builtin() {
		if p.ID == id {
			return p, nil
		}
	}
	return Pack{}, fmt.Errorf("%w: %s", ErrPackNotFound, id)
}
