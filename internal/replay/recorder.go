package replay

import (
	"sync"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// Recorder captures the frames of a live game.
type Recorder struct {
	mu  sync.Mutex
	rec Recording
}

// NewRecorder starts a recording for game, which must already be configured.
// Call it with the same seed and tick rate the game is reset with.
func NewRecorder(game registry.Game, seed int64, tickRate int) *Recorder {
	rec := Recording{
		Version:   FormatVersion,
		GameID:    game.ID(),
		Seed:      seed,
		TickRate:  tickRate,
		CreatedAt: time.Now().UTC(),
	}
	if lg, ok := game.(levelGame); ok {
		rec.StartLevel = lg.StartLevel()
		rec.Config = lg.Config()
		rec.Pack = lg.Pack()
		rec.PackID = rec.Pack.ID
	}
	return &Recorder{rec: rec}
}

// Record appends one tick of input.
func (r *Recorder) Record(in core.InputFrame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rec.Frames = append(r.rec.Frames, Frame{Elapsed: in.Elapsed, Actions: in.List()})
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rec.Frames)
}

// Recording returns a snapshot of what has been recorded so far.
func (r *Recorder) Recording() *Recording {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := r.rec
	rec.Frames = append([]Frame(nil), r.rec.Frames...)
	return &rec
}
