package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
)

var plan = []string{
	"......",
	".@..o.",
	"xxx!!x",
}

func newLevel(t *testing.T) *level.Level {
	t.Helper()
	lvl, err := level.New(plan, level.DefaultPhysics(), nil)
	if err != nil {
		t.Fatalf("level.New failed: %v", err)
	}
	return lvl
}

func decode(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	return img
}

func sameColor(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

func TestPNGDimensionsAndTiles(t *testing.T) {
	var buf bytes.Buffer
	if err := PNG(&buf, newLevel(t), Options{}); err != nil {
		t.Fatalf("PNG failed: %v", err)
	}
	img := decode(t, buf.Bytes())

	if b := img.Bounds(); b.Dx() != 6*DefaultScale || b.Dy() != 3*DefaultScale {
		t.Fatalf("expected %dx%d, got %dx%d", 6*DefaultScale, 3*DefaultScale, b.Dx(), b.Dy())
	}

	tests := []struct {
		name string
		x, y int
		want color.Color
	}{
		{"sky", 5*DefaultScale + 10, 10, SkyColor},
		{"wall", 10, 2*DefaultScale + 10, WallColor},
		{"lava", 3*DefaultScale + 10, 2*DefaultScale + 10, LavaColor},
		{"player", DefaultScale + 8, DefaultScale + 10, PlayerColor},
		{"coin", 4*DefaultScale + 10, DefaultScale + 8, CoinColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := img.At(tt.x, tt.y); !sameColor(got, tt.want) {
				t.Errorf("pixel %d,%d = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestPNGScale(t *testing.T) {
	var buf bytes.Buffer
	if err := PNG(&buf, newLevel(t), Options{Scale: 4}); err != nil {
		t.Fatalf("PNG failed: %v", err)
	}
	if b := decode(t, buf.Bytes()).Bounds(); b.Dx() != 24 || b.Dy() != 12 {
		t.Errorf("expected 24x12, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestPNGLostTint(t *testing.T) {
	lvl := newLevel(t)
	lvl.PlayerTouched(level.KindLava, nil)

	var buf bytes.Buffer
	if err := PNG(&buf, lvl, Options{}); err != nil {
		t.Fatalf("PNG failed: %v", err)
	}
	img := decode(t, buf.Bytes())
	if got := img.At(5*DefaultScale+10, 10); !sameColor(got, LostSkyColor) {
		t.Errorf("expected lost sky, got %v", got)
	}
}

func TestPNGLabel(t *testing.T) {
	var plain, labeled bytes.Buffer
	if err := PNG(&plain, newLevel(t), Options{}); err != nil {
		t.Fatal(err)
	}
	if err := PNG(&labeled, newLevel(t), Options{Label: "Over the Pit"}); err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(plain.Bytes(), labeled.Bytes()) {
		t.Error("label did not change the image")
	}
}

func TestPNGNilLevel(t *testing.T) {
	if err := PNG(&bytes.Buffer{}, nil, Options{}); err == nil {
		t.Error("expected error for nil level")
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shots", "level.png")
	lvl := newLevel(t)
	lvl.Animate(0.1, core.KeyState{})

	if err := SavePNG(path, lvl, Options{Label: "test"}); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read png: %v", err)
	}
	decode(t, data)
}
