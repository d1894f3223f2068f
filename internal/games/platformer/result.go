package platformer

import (
	"time"

	"github.com/vovakirdan/tui-platformer/internal/level"
)

// Result describes how a single attempt at a level ended.
type Result struct {
	PackID  string
	LevelID string
	Status  level.Status
	Elapsed time.Duration
	Coins   int
}

// ResultSink receives a Result each time a level finishes.
type ResultSink interface {
	LevelFinished(r Result)
}

// ResultSinkFunc adapts a function to ResultSink.
type ResultSinkFunc func(r Result)

// LevelFinished calls f(r).
func (f ResultSinkFunc) LevelFinished(r Result) { f(r) }
