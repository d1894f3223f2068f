package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the hardcoded platformer configuration.
// It matches defaults/platformer.yaml.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PlatformerPhysics{
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
		},
		Gameplay: PlatformerGameplay{
			Pack:        "classic",
			Lives:       0,
			CoinPoints:  10,
			LevelPoints: 100,
			MaxFrameMS:  100,
		},
		Input: PlatformerInput{
			HoldTicks: 8,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultPlatformerYAML
}
