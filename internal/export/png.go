// Package export draws levels as PNG images.
package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/vovakirdan/tui-platformer/internal/level"
)

// DefaultScale is the size of one tile in pixels.
const DefaultScale = 20

// Palette.
var (
	SkyColor      = color.RGBA{52, 166, 251, 255}
	LostSkyColor  = color.RGBA{44, 136, 214, 255}
	WonSkyColor   = color.RGBA{109, 196, 255, 255}
	WallColor     = color.RGBA{255, 255, 255, 255}
	LavaColor     = color.RGBA{255, 100, 100, 255}
	CoinColor     = color.RGBA{241, 229, 89, 255}
	PlayerColor   = color.RGBA{64, 64, 64, 255}
	LostColor     = color.RGBA{160, 30, 30, 255}
	LabelBarColor = color.RGBA{0, 0, 0, 160}
)

// Options controls how a level is drawn.
type Options struct {
	// Scale is the tile size in pixels. Zero means DefaultScale.
	Scale float64
	// Label is drawn in a bar along the top edge when set.
	Label string
}

// Draw renders lvl into a new drawing context.
func Draw(lvl *level.Level, opts Options) (*gg.Context, error) {
	if lvl == nil {
		return nil, fmt.Errorf("export: nil level")
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}

	dc := gg.NewContext(int(float64(lvl.Width())*scale), int(float64(lvl.Height())*scale))

	switch lvl.Status() {
	case level.StatusLost:
		dc.SetColor(LostSkyColor)
	case level.StatusWon:
		dc.SetColor(WonSkyColor)
	default:
		dc.SetColor(SkyColor)
	}
	dc.Clear()

	drawTiles(dc, lvl, scale)
	drawActors(dc, lvl, scale)

	if opts.Label != "" {
		if err := drawLabel(dc, opts.Label, scale); err != nil {
			return nil, err
		}
	}
	return dc, nil
}

// PNG writes lvl to w as a PNG image.
func PNG(w io.Writer, lvl *level.Level, opts Options) error {
	dc, err := Draw(lvl, opts)
	if err != nil {
		return err
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("export: encode png: %w", err)
	}
	return nil
}

// SavePNG writes lvl to path, creating parent directories.
func SavePNG(path string, lvl *level.Level, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("export: create directory: %w", err)
	}
	dc, err := Draw(lvl, opts)
	if err != nil {
		return err
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}
	return nil
}

func drawTiles(dc *gg.Context, lvl *level.Level, scale float64) {
	for y := 0; y < lvl.Height(); y++ {
		for x := 0; x < lvl.Width(); x++ {
			switch lvl.TileAt(x, y) {
			case level.KindWall:
				dc.SetColor(WallColor)
			case level.KindLava:
				dc.SetColor(LavaColor)
			default:
				continue
			}
			dc.DrawRectangle(float64(x)*scale, float64(y)*scale, scale, scale)
			dc.Fill()
		}
	}
}

func drawActors(dc *gg.Context, lvl *level.Level, scale float64) {
	for _, a := range lvl.Actors() {
		pos, size := a.Pos(), a.Size()
		x, y := pos.X*scale, pos.Y*scale
		w, h := size.X*scale, size.Y*scale

		switch a.Kind() {
		case level.KindLava:
			dc.SetColor(LavaColor)
			dc.DrawRectangle(x, y, w, h)
			dc.Fill()
		case level.KindCoin:
			dc.SetColor(CoinColor)
			dc.DrawEllipse(x+w/2, y+h/2, w/2, h/2)
			dc.Fill()
		case level.KindPlayer:
			if lvl.Status() == level.StatusLost {
				dc.SetColor(LostColor)
			} else {
				dc.SetColor(PlayerColor)
			}
			dc.DrawRoundedRectangle(x, y, w, h, scale/8)
			dc.Fill()
		}
	}
}

func drawLabel(dc *gg.Context, label string, scale float64) error {
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("export: parse font: %w", err)
	}
	size := scale * 0.7
	dc.SetFontFace(truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	dc.SetColor(LabelBarColor)
	dc.DrawRectangle(0, 0, float64(dc.Width()), scale)
	dc.Fill()

	dc.SetColor(color.White)
	dc.DrawStringAnchored(label, scale/4, scale/2, 0, 0.5)
	return nil
}
