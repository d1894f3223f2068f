package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader reads packs from a directory tree.
type Loader struct {
	Root string
}

// NewLoader creates a new pack loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all pack files.
// Invalid files are skipped. Packs are sorted by ID.
func (l *Loader) LoadAll() ([]Pack, error) {
	var packs []Pack

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsPackFile(path) {
			return nil
		}

		pack, err := l.LoadFile(path)
		if err != nil {
			return nil
		}
		packs = append(packs, pack)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}

	sort.Slice(packs, func(i, j int) bool {
		return packs[i].ID < packs[j].ID
	})
	return packs, nil
}

// LoadFile loads and validates a single pack file.
func (l *Loader) LoadFile(path string) (Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pack{}, fmt.Errorf("levels: reading file %s: %w", path, err)
	}

	pack, err := ParsePack(data)
	if err != nil {
		return Pack{}, fmt.Errorf("levels: parsing file %s: %w", path, err)
	}
	pack.FilePath = path
	return pack, nil
}

// LoadByID loads the pack with the given ID.
func (l *Loader) LoadByID(id string) (Pack, error) {
	packs, err := l.LoadAll()
	if err != nil {
		return Pack{}, err
	}
	for _, p := range packs {
		if p.ID == id {
			return p, nil
		}
	}
	return Pack{}, fmt.Errorf("%w: %s", ErrPackNotFound, id)
}

// IsPackFile reports whether path has a pack file extension.
func IsPackFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Resolve finds a pack by ID, looking in dir first (when set) and then
// among the built-in packs.
func Resolve(id, dir string) (Pack, error) {
	if dir != "" {
		if pack, err := NewLoader(dir).LoadByID(id); err == nil {
			return pack, nil
		}
	}
	return BuiltinByID(id)
}
