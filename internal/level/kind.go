// Package level implements the platformer simulation: a static tile grid,
// the actors moving through it and the fixed sub-step integrator that
// advances them.
package level

// Kind names what occupies a tile or what an actor is.
// Tiles only ever hold KindNone, KindWall or KindLava.
type Kind uint8

const (
	KindNone Kind = iota
	KindWall
	KindLava
	KindPlayer
	KindCoin
)

// String returns the lowercase name used in level files and logs.
func (k Kind) String() string {
	switch k {
	case KindWall:
		return "wall"
	case KindLava:
		return "lava"
	case KindPlayer:
		return "player"
	case KindCoin:
		return "coin"
	default:
		return ""
	}
}

// Status is the outcome of a level.
type Status uint8

const (
	StatusPlaying Status = iota
	StatusWon
	StatusLost
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "playing"
	}
}

// Physics holds the tuning constants of the simulation.
type Physics struct {
	MaxStep      float64 // Largest sub-step in seconds
	Gravity      float64 // Downward acceleration, tiles/s²
	JumpSpeed    float64 // Upward speed applied on a grounded jump, tiles/s
	PlayerXSpeed float64 // Horizontal player speed, tiles/s
	WobbleSpeed  float64 // Coin bob phase speed, rad/s
	WobbleDist   float64 // Coin bob amplitude, tiles
	FinishDelay  float64 // Seconds the level lingers after the outcome

	HorizontalLavaSpeed float64 // '=' lava
	VerticalLavaSpeed   float64 // '|' lava
	DrippingLavaSpeed   float64 // 'v' lava
}

// DefaultPhysics returns the stock tuning.
func DefaultPhysics() Physics {
	return Physics{
		MaxStep:             0.05,
		Gravity:             30,
		JumpSpeed:           17,
		PlayerXSpeed:        7,
		WobbleSpeed:         8,
		WobbleDist:          0.07,
		FinishDelay:         1,
		HorizontalLavaSpeed: 2,
		VerticalLavaSpeed:   2,
		DrippingLavaSpeed:   3,
	}
}

func (p Physics) withDefaults() Physics {
	d := DefaultPhysics()
	if p.MaxStep <= 0 {
		p.MaxStep = d.MaxStep
	}
	return p
}
