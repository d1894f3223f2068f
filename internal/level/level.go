package level

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Plan validation errors.
var (
	ErrEmptyPlan       = errors.New("level: plan has no rows")
	ErrRaggedPlan      = errors.New("level: plan rows differ in length")
	ErrNoPlayer        = errors.New("level: plan has no player spawn")
	ErrMultiplePlayers = errors.New("level: plan has more than one player spawn")
)

// Level is a running level: an immutable tile grid plus the actors in it.
type Level struct {
	width  int
	height int
	grid   [][]Kind
	actors []Actor
	player *Player
	phys   Physics

	status      Status
	finishDelay float64

	coinsTotal     int
	coinsCollected int
	elapsed        float64
}

// New builds a level from a plan: equal-length rows where
//
//	'x' = wall, '!' = lava, '@' = player, 'o' = coin,
//	'=' = lava moving sideways, '|' = lava moving up and down,
//	'v' = dripping lava, anything else = empty.
//
// The rng seeds the coin bob phases.
func New(plan []string, phys Physics, rng *rand.Rand) (*Level, error) {
	if len(plan) == 0 || len(plan[0]) == 0 {
		return nil, ErrEmptyPlan
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	lvl := &Level{
		width:  len(plan[0]),
		height: len(plan),
		grid:   make([][]Kind, len(plan)),
		phys:   phys.withDefaults(),
	}

	for y, line := range plan {
		if len(line) != lvl.width {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrRaggedPlan, y, len(line), lvl.width)
		}

		row := make([]Kind, lvl.width)
		for x := 0; x < lvl.width; x++ {
			at := core.V(float64(x), float64(y))
			switch ch := line[x]; ch {
			case 'x':
				row[x] = KindWall
			case '!':
				row[x] = KindLava
			case '@':
				if lvl.player != nil {
					return nil, fmt.Errorf("%w: second spawn at %d,%d", ErrMultiplePlayers, x, y)
				}
				lvl.player = newPlayer(at)
				lvl.actors = append(lvl.actors, lvl.player)
			case 'o':
				lvl.actors = append(lvl.actors, newCoin(at, rng))
				lvl.coinsTotal++
			case '=', '|', 'v':
				lvl.actors = append(lvl.actors, newLava(at, ch, lvl.phys))
			}
		}
		lvl.grid[y] = row
	}

	if lvl.player == nil {
		return nil, ErrNoPlayer
	}
	return lvl, nil
}

// Width returns the grid width in tiles.
func (l *Level) Width() int { return l.width }

// Height returns the grid height in tiles.
func (l *Level) Height() int { return l.height }

// TileAt returns the tile at grid coordinates, KindNone outside the grid.
func (l *Level) TileAt(x, y int) Kind {
	if x < 0 || y < 0 || x >= l.width || y >= l.height {
		return KindNone
	}
	return l.grid[y][x]
}

// Actors returns the live actors in update order.
// The returned slice must not be modified.
func (l *Level) Actors() []Actor { return l.actors }

// Player returns the player actor.
func (l *Level) Player() *Player { return l.player }

// Status returns the level outcome so far.
func (l *Level) Status() Status { return l.status }

// FinishDelay returns the remaining linger time after the outcome.
func (l *Level) FinishDelay() float64 { return l.finishDelay }

// CoinsTotal returns the number of coins the plan started with.
func (l *Level) CoinsTotal() int { return l.coinsTotal }

// CoinsCollected returns how many coins the player has picked up.
func (l *Level) CoinsCollected() int { return l.coinsCollected }

// Elapsed returns the simulated seconds spent in the level.
func (l *Level) Elapsed() float64 { return l.elapsed }

// IsFinished reports whether the outcome is decided and the linger time has run out.
func (l *Level) IsFinished() bool {
	return l.status != StatusPlaying && l.finishDelay < 0
}

// ObstacleAt returns the first non-empty tile overlapped by a box of the given
// size at pos, scanning rows top to bottom. Leaving the grid through the left,
// right or top counts as wall; through the bottom, as lava.
func (l *Level) ObstacleAt(pos, size core.Vec) Kind {
	xStart := int(math.Floor(pos.X))
	xEnd := int(math.Ceil(pos.X + size.X))
	yStart := int(math.Floor(pos.Y))
	yEnd := int(math.Ceil(pos.Y + size.Y))

	if xStart < 0 || xEnd > l.width || yStart < 0 {
		return KindWall
	}
	if yEnd > l.height {
		return KindLava
	}

	for y := yStart; y < yEnd; y++ {
		for x := xStart; x < xEnd; x++ {
			if tile := l.grid[y][x]; tile != KindNone {
				return tile
			}
		}
	}
	return KindNone
}

// ActorAt returns the first actor other than a whose box overlaps a's box.
func (l *Level) ActorAt(a Actor) Actor {
	pos, size := a.Pos(), a.Size()
	for _, other := range l.actors {
		if other == a {
			continue
		}
		op, os := other.Pos(), other.Size()
		if pos.X+size.X > op.X && pos.X < op.X+os.X &&
			pos.Y+size.Y > op.Y && pos.Y < op.Y+os.Y {
			return other
		}
	}
	return nil
}

// Animate advances the level by step seconds in sub-steps no larger than
// Physics.MaxStep. Once the outcome is known the finish delay runs down by
// the whole step, once per call.
func (l *Level) Animate(step float64, keys core.KeyState) {
	if l.status != StatusPlaying {
		l.finishDelay -= step
	}

	for step > 0 {
		sub := math.Min(step, l.phys.MaxStep)
		// Coin pickup replaces l.actors, so this snapshot stays intact.
		actors := l.actors
		for _, a := range actors {
			a.Act(sub, l, keys)
		}
		l.elapsed += sub
		step -= sub
	}
}

// PlayerTouched handles the player running into a tile or an actor.
// actor is nil for tiles.
func (l *Level) PlayerTouched(kind Kind, actor Actor) {
	switch kind {
	case KindLava:
		if l.status == StatusPlaying {
			l.status = StatusLost
			l.finishDelay = l.phys.FinishDelay
		}
	case KindCoin:
		if !l.removeActor(actor) {
			return
		}
		l.coinsCollected++
		if l.status == StatusPlaying && l.CoinsLeft() == 0 {
			l.status = StatusWon
			l.finishDelay = l.phys.FinishDelay
		}
	}
}

// CoinsLeft returns the number of coins still in the level.
func (l *Level) CoinsLeft() int {
	n := 0
	for _, a := range l.actors {
		if a.Kind() == KindCoin {
			n++
		}
	}
	return n
}

// removeActor drops actor from the level into a fresh slice.
func (l *Level) removeActor(actor Actor) bool {
	if actor == nil {
		return false
	}
	kept := make([]Actor, 0, len(l.actors))
	found := false
	for _, a := range l.actors {
		if a == actor {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if found {
		l.actors = kept
	}
	return found
}
