package level

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Actor is anything in the level that moves or can be touched by the player.
type Actor interface {
	Pos() core.Vec
	Size() core.Vec
	Kind() Kind

	// Act advances the actor by one sub-step.
	Act(step float64, lvl *Level, keys core.KeyState)
}

// Player is the actor controlled by the keyboard.
type Player struct {
	pos   core.Vec
	size  core.Vec
	speed core.Vec
}

func newPlayer(at core.Vec) *Player {
	return &Player{
		pos:  at.Plus(core.V(0, -0.5)),
		size: core.V(0.8, 1.5),
	}
}

func (p *Player) Pos() core.Vec   { return p.pos }
func (p *Player) Size() core.Vec  { return p.size }
func (p *Player) Kind() Kind      { return KindPlayer }
func (p *Player) Speed() core.Vec { return p.speed }

// Act moves the player along each axis independently, then checks actor contact.
func (p *Player) Act(step float64, lvl *Level, keys core.KeyState) {
	p.moveX(step, lvl, keys)
	p.moveY(step, lvl, keys)

	if other := lvl.ActorAt(p); other != nil {
		lvl.PlayerTouched(other.Kind(), other)
	}

	// Sink into the lava; purely visual.
	if lvl.status == StatusLost {
		p.pos.Y += step
		p.size.Y -= step
	}
}

func (p *Player) moveX(step float64, lvl *Level, keys core.KeyState) {
	p.speed.X = 0
	if keys.Left {
		p.speed.X -= lvl.phys.PlayerXSpeed
	}
	if keys.Right {
		p.speed.X += lvl.phys.PlayerXSpeed
	}

	newPos := p.pos.Plus(core.V(p.speed.X*step, 0))
	if obstacle := lvl.ObstacleAt(newPos, p.size); obstacle != KindNone {
		lvl.PlayerTouched(obstacle, nil)
		return
	}
	p.pos = newPos
}

func (p *Player) moveY(step float64, lvl *Level, keys core.KeyState) {
	p.speed.Y += step * lvl.phys.Gravity

	newPos := p.pos.Plus(core.V(0, p.speed.Y*step))
	obstacle := lvl.ObstacleAt(newPos, p.size)
	if obstacle == KindNone {
		p.pos = newPos
		return
	}

	lvl.PlayerTouched(obstacle, nil)
	if keys.Up && p.speed.Y > 0 {
		p.speed.Y = -lvl.phys.JumpSpeed
	} else {
		p.speed.Y = 0
	}
}

// Lava is a moving hazard. It either bounces between obstacles or, when it
// has a repeat position, drips and restarts from there.
type Lava struct {
	pos       core.Vec
	size      core.Vec
	speed     core.Vec
	repeatPos *core.Vec
}

func newLava(at core.Vec, ch byte, phys Physics) *Lava {
	l := &Lava{pos: at, size: core.V(1, 1)}
	switch ch {
	case '=':
		l.speed = core.V(phys.HorizontalLavaSpeed, 0)
	case '|':
		l.speed = core.V(0, phys.VerticalLavaSpeed)
	case 'v':
		l.speed = core.V(0, phys.DrippingLavaSpeed)
		repeat := at
		l.repeatPos = &repeat
	}
	return l
}

func (l *Lava) Pos() core.Vec   { return l.pos }
func (l *Lava) Size() core.Vec  { return l.size }
func (l *Lava) Kind() Kind      { return KindLava }
func (l *Lava) Speed() core.Vec { return l.speed }

// Dripping reports whether the lava resets instead of bouncing.
func (l *Lava) Dripping() bool { return l.repeatPos != nil }

func (l *Lava) Act(step float64, lvl *Level, _ core.KeyState) {
	newPos := l.pos.Plus(l.speed.Times(step))
	switch {
	case lvl.ObstacleAt(newPos, l.size) == KindNone:
		l.pos = newPos
	case l.repeatPos != nil:
		l.pos = *l.repeatPos
	default:
		l.speed = l.speed.Times(-1)
	}
}

// Coin bobs in place until the player picks it up.
type Coin struct {
	pos     core.Vec
	basePos core.Vec
	size    core.Vec
	wobble  float64
}

func newCoin(at core.Vec, rng *rand.Rand) *Coin {
	base := at.Plus(core.V(0.2, 0.1))
	return &Coin{
		pos:     base,
		basePos: base,
		size:    core.V(0.6, 0.6),
		wobble:  rng.Float64() * math.Pi * 2,
	}
}

func (c *Coin) Pos() core.Vec  { return c.pos }
func (c *Coin) Size() core.Vec { return c.size }
func (c *Coin) Kind() Kind     { return KindCoin }

func (c *Coin) Act(step float64, lvl *Level, _ core.KeyState) {
	c.wobble += step * lvl.phys.WobbleSpeed
	c.pos = c.basePos.Plus(core.V(0, math.Sin(c.wobble)*lvl.phys.WobbleDist))
}
