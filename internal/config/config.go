// Package config provides YAML-based configuration loading and difficulty
// presets for the platformer.
package config

import "github.com/vovakirdan/tui-platformer/internal/level"

// PlatformerConfig contains all configuration for the platformer.
type PlatformerConfig struct {
	Physics  PlatformerPhysics  `yaml:"physics"`
	Gameplay PlatformerGameplay `yaml:"gameplay"`
	Input    PlatformerInput    `yaml:"input"`
}

// PlatformerPhysics defines the simulation constants.
// Speeds are in tiles per second, times in seconds.
type PlatformerPhysics struct {
	MaxStep             float64 `yaml:"max_step" env:"MAX_STEP"`
	Gravity             float64 `yaml:"gravity" env:"GRAVITY"`
	JumpSpeed           float64 `yaml:"jump_speed" env:"JUMP_SPEED"`
	PlayerXSpeed        float64 `yaml:"player_x_speed" env:"PLAYER_SPEED"`
	WobbleSpeed         float64 `yaml:"wobble_speed" env:"WOBBLE_SPEED"`
	WobbleDist          float64 `yaml:"wobble_dist" env:"WOBBLE_DIST"`
	FinishDelay         float64 `yaml:"finish_delay" env:"FINISH_DELAY"`
	HorizontalLavaSpeed float64 `yaml:"horizontal_lava_speed" env:"HORIZONTAL_LAVA_SPEED"`
	VerticalLavaSpeed   float64 `yaml:"vertical_lava_speed" env:"VERTICAL_LAVA_SPEED"`
	DrippingLavaSpeed   float64 `yaml:"dripping_lava_speed" env:"DRIPPING_LAVA_SPEED"`
}

// PlatformerGameplay defines scoring and level flow.
type PlatformerGameplay struct {
	// Pack is the built-in level pack played by default.
	Pack string `yaml:"pack" env:"PACK"`
	// Lives is the number of deaths allowed per run; 0 means unlimited retries.
	Lives       int `yaml:"lives" env:"LIVES"`
	CoinPoints  int `yaml:"coin_points" env:"COIN_POINTS"`
	LevelPoints int `yaml:"level_points" env:"LEVEL_POINTS"`
	// MaxFrameMS caps the simulated time of a single frame.
	MaxFrameMS int `yaml:"max_frame_ms" env:"MAX_FRAME_MS"`
}

// PlatformerInput defines how terminal key presses become held keys.
type PlatformerInput struct {
	// HoldTicks is how many ticks a direction stays held after a key press.
	// Terminals send repeats but no key release, so a press is a short hold.
	HoldTicks int `yaml:"hold_ticks" env:"HOLD_TICKS"`
}

// Physics converts the configured values into simulation tuning.
// Zero values fall back to the defaults.
func (p PlatformerPhysics) Physics() level.Physics {
	d := level.DefaultPhysics()
	pick := func(v, def float64) float64 {
		if v <= 0 {
			return def
		}
		return v
	}
	return level.Physics{
		MaxStep:             pick(p.MaxStep, d.MaxStep),
		Gravity:             pick(p.Gravity, d.Gravity),
		JumpSpeed:           pick(p.JumpSpeed, d.JumpSpeed),
		PlayerXSpeed:        pick(p.PlayerXSpeed, d.PlayerXSpeed),
		WobbleSpeed:         pick(p.WobbleSpeed, d.WobbleSpeed),
		WobbleDist:          pick(p.WobbleDist, d.WobbleDist),
		FinishDelay:         pick(p.FinishDelay, d.FinishDelay),
		HorizontalLavaSpeed: pick(p.HorizontalLavaSpeed, d.HorizontalLavaSpeed),
		VerticalLavaSpeed:   pick(p.VerticalLavaSpeed, d.VerticalLavaSpeed),
		DrippingLavaSpeed:   pick(p.DrippingLavaSpeed, d.DrippingLavaSpeed),
	}
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a CLI string to a preset; unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
