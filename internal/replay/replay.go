// Package replay records the input of a run and plays it back.
//
// Games are deterministic for a given seed, configuration and input
// sequence, so a recording only stores those and re-simulates the rest.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// FormatVersion is written into every recording.
const FormatVersion = 1

// Extension is the file extension used for saved recordings.
const Extension = ".replay"

var (
	// ErrUnsupportedVersion indicates a recording written by another format version.
	ErrUnsupportedVersion = errors.New("replay: unsupported format version")
	// ErrGameMismatch indicates a recording made with a different game.
	ErrGameMismatch = errors.New("replay: recording belongs to another game")
)

// Frame is the input of one tick.
type Frame struct {
	Elapsed time.Duration `msgpack:"e"`
	Actions []core.Action `msgpack:"a,omitempty"`
}

// Input converts the frame back into an InputFrame.
func (f Frame) Input() core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range f.Actions {
		in.Set(a)
	}
	in.Elapsed = f.Elapsed
	return in
}

// Recording is everything needed to re-run a game.
type Recording struct {
	Version    int                     `msgpack:"version"`
	GameID     string                  `msgpack:"game_id"`
	PackID     string                  `msgpack:"pack_id"`
	Pack       levels.Pack             `msgpack:"pack"`
	StartLevel int                     `msgpack:"start_level"`
	Seed       int64                   `msgpack:"seed"`
	TickRate   int                     `msgpack:"tick_rate"`
	Config     config.PlatformerConfig `msgpack:"config"`
	CreatedAt  time.Time               `msgpack:"created_at"`
	Frames     []Frame                 `msgpack:"frames"`
}

// Duration returns the total recorded wall-clock time.
func (r *Recording) Duration() time.Duration {
	var total time.Duration
	for _, f := range r.Frames {
		total += f.Elapsed
	}
	return total
}

// Inputs returns the frames as input frames, in order.
func (r *Recording) Inputs() []core.InputFrame {
	out := make([]core.InputFrame, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = f.Input()
	}
	return out
}

// Encode writes the recording to w.
func (r *Recording) Encode(w io.Writer) error {
	if err := msgpack.NewEncoder(w).Encode(r); err != nil {
		return fmt.Errorf("replay: encode: %w", err)
	}
	return nil
}

// Decode reads a recording from r.
func Decode(r io.Reader) (*Recording, error) {
	var rec Recording
	if err := msgpack.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("replay: decode: %w", err)
	}
	if rec.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, rec.Version)
	}
	return &rec, nil
}

// Save writes the recording to path, creating parent directories.
func (r *Recording) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("replay: create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("replay: create %s: %w", path, err)
	}
	if err := r.Encode(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Load reads a recording from path.
func Load(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// levelGame is implemented by games that play a configurable level pack.
type levelGame interface {
	Config() config.PlatformerConfig
	SetConfig(cfg config.PlatformerConfig)
	Pack() levels.Pack
	SetPack(p levels.Pack) error
	StartLevel() int
	SetStartLevel(index int)
}

// Prepare configures game the way it was when rec was made and resets it.
func Prepare(game registry.Game, rec *Recording) error {
	if game.ID() != rec.GameID {
		return fmt.Errorf("%w: %s, not %s", ErrGameMismatch, rec.GameID, game.ID())
	}
	if lg, ok := game.(levelGame); ok {
		lg.SetConfig(rec.Config)
		if len(rec.Pack.Levels) > 0 {
			if err := lg.SetPack(rec.Pack); err != nil {
				return fmt.Errorf("replay: recorded pack: %w", err)
			}
		}
		lg.SetStartLevel(rec.StartLevel)
	}

	rt := core.DefaultConfig()
	rt.TickRate = rec.TickRate
	rt.Seed = rec.Seed
	game.Reset(rt)
	return nil
}

// Play re-runs rec on game without a terminal and returns the final state.
func Play(game registry.Game, rec *Recording) (core.GameState, error) {
	if err := Prepare(game, rec); err != nil {
		return core.GameState{}, err
	}
	for _, f := range rec.Frames {
		game.Step(f.Input())
	}
	return game.State(), nil
}
