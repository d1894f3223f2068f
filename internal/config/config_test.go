package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	var fromYAML PlatformerConfig
	if err := yaml.Unmarshal(DefaultYAML(), &fromYAML); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}

	if fromYAML != DefaultPlatformerConfig() {
		t.Errorf("embedded YAML = %+v\nhardcoded = %+v", fromYAML, DefaultPlatformerConfig())
	}
}

func TestLoadCustomPathPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("physics:\n  gravity: 40\ngameplay:\n  lives: 2\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Physics.Gravity != 40 || cfg.Gameplay.Lives != 2 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	// Keys missing from the file keep their defaults
	if cfg.Physics.JumpSpeed != 17 || cfg.Input.HoldTicks != 8 {
		t.Errorf("defaults lost: jump=%f hold=%d", cfg.Physics.JumpSpeed, cfg.Input.HoldTicks)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() should fail for a missing custom file")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PLATFORMER_GRAVITY", "12.5")
	t.Setenv("PLATFORMER_LIVES", "4")
	t.Setenv("PLATFORMER_HOLD_TICKS", "3")

	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  gravity: 40\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Physics.Gravity != 12.5 {
		t.Errorf("gravity = %f, environment should win over the file", cfg.Physics.Gravity)
	}
	if cfg.Gameplay.Lives != 4 || cfg.Input.HoldTicks != 3 {
		t.Errorf("lives=%d hold=%d", cfg.Gameplay.Lives, cfg.Input.HoldTicks)
	}
}

func TestLoadBadEnvValue(t *testing.T) {
	t.Setenv("PLATFORMER_LIVES", "many")

	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("gameplay:\n  lives: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should reject a non-numeric PLATFORMER_LIVES")
	}
}

func TestPhysicsFallsBackOnZero(t *testing.T) {
	p := PlatformerPhysics{Gravity: 50}.Physics()

	if p.Gravity != 50 {
		t.Errorf("gravity = %f, expected 50", p.Gravity)
	}
	if p.MaxStep != 0.05 || p.JumpSpeed != 17 || p.FinishDelay != 1 {
		t.Errorf("zero values should use defaults: %+v", p)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		lives     int
		holdTicks int
	}{
		{"", 0, 8},
		{DifficultyEasy, 0, 10},
		{DifficultyNormal, 5, 8},
		{DifficultyHard, 3, 8},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultPlatformerConfig()
			ApplyPreset(&cfg, tc.preset)
			if cfg.Gameplay.Lives != tc.lives || cfg.Input.HoldTicks != tc.holdTicks {
				t.Errorf("lives=%d hold=%d, expected %d and %d", cfg.Gameplay.Lives, cfg.Input.HoldTicks, tc.lives, tc.holdTicks)
			}
		})
	}

	hard := DefaultPlatformerConfig()
	ApplyPreset(&hard, DifficultyHard)
	if hard.Physics.HorizontalLavaSpeed <= 2 {
		t.Error("hard preset should speed up lava")
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("hard not recognised")
	}
	if ParsePreset("nightmare") != "" {
		t.Error("unknown preset should map to empty")
	}
}
