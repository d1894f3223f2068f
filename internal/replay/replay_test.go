package replay

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/levels"
)

// recordRun plays a scripted run on a fresh game and returns the recording
// together with the final state.
func recordRun(t *testing.T, seed int64) (*Recording, core.GameState) {
	t.Helper()

	g := platformer.New()
	cfg := config.DefaultPlatformerConfig()
	cfg.Gameplay.Lives = 4
	cfg.Physics.Gravity = 28
	g.SetConfig(cfg)
	g.SetStartLevel(1)

	rt := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
	g.Reset(rt)
	rec := NewRecorder(g, seed, rt.TickRate)

	for i := 0; i < 900; i++ {
		in := core.NewInputFrame()
		switch {
		case i%90 < 50:
			in.Set(core.ActionRight)
		case i%90 < 60:
			in.Set(core.ActionLeft)
		}
		if i%37 == 0 {
			in.Set(core.ActionJump)
		}
		in.Elapsed = time.Duration(12+(i*7)%11) * time.Millisecond
		rec.Record(in)
		g.Step(in)
	}
	return rec.Recording(), g.State()
}

func TestRecorderMetadata(t *testing.T) {
	rec, _ := recordRun(t, 99)

	if rec.Version != FormatVersion {
		t.Errorf("expected version %d, got %d", FormatVersion, rec.Version)
	}
	if rec.GameID != platformer.GameID {
		t.Errorf("expected game id %q, got %q", platformer.GameID, rec.GameID)
	}
	if rec.PackID != "classic" || rec.Pack.ID != "classic" {
		t.Errorf("expected classic pack, got %q / %q", rec.PackID, rec.Pack.ID)
	}
	if rec.StartLevel != 1 {
		t.Errorf("expected start level 1, got %d", rec.StartLevel)
	}
	if rec.Config.Physics.Gravity != 28 {
		t.Errorf("config not captured: gravity %v", rec.Config.Physics.Gravity)
	}
	if len(rec.Frames) != 900 {
		t.Errorf("expected 900 frames, got %d", len(rec.Frames))
	}
	if rec.Duration() <= 0 {
		t.Error("expected positive duration")
	}
}

func TestPlayReproducesRun(t *testing.T) {
	rec, want := recordRun(t, 1234)

	got, err := Play(platformer.New(), rec)
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if got != want {
		t.Errorf("replayed state %+v, recorded %+v", got, want)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	rec, want := recordRun(t, 7)

	var buf bytes.Buffer
	if err := rec.Encode(&buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !decoded.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("created at %v, want %v", decoded.CreatedAt, rec.CreatedAt)
	}

	// The decoded recording must drive a fresh game to the same result.
	got, err := Play(platformer.New(), decoded)
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if got != want {
		t.Errorf("state after decode %+v, want %+v", got, want)
	}
}

func TestSaveLoad(t *testing.T) {
	rec, _ := recordRun(t, 3)
	path := filepath.Join(t.TempDir(), "runs", "run"+Extension)

	if err := rec.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Frames) != len(rec.Frames) || loaded.Seed != rec.Seed {
		t.Errorf("loaded recording differs: %d frames seed %d", len(loaded.Frames), loaded.Seed)
	}
}

func TestDecodeRejectsVersion(t *testing.T) {
	rec := &Recording{Version: FormatVersion + 1, GameID: platformer.GameID}
	var buf bytes.Buffer
	if err := rec.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(&buf); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte{0xc1, 0x00})); err == nil {
		t.Error("expected error for garbage input")
	}
}

func TestPlayRejectsOtherGame(t *testing.T) {
	rec := &Recording{Version: FormatVersion, GameID: "snake"}
	if _, err := Play(platformer.New(), rec); !errors.Is(err, ErrGameMismatch) {
		t.Errorf("expected ErrGameMismatch, got %v", err)
	}
}

func TestPlayWithCustomPack(t *testing.T) {
	pack := levels.Pack{ID: "mine", Levels: []levels.Plan{{ID: "a", Rows: []string{
		"....",
		".@o.",
		"xxxx",
	}}}}

	g := platformer.New()
	if err := g.SetPack(pack); err != nil {
		t.Fatal(err)
	}
	g.Reset(core.RuntimeConfig{TickRate: 60, Seed: 5})
	r := NewRecorder(g, 5, 60)
	for i := 0; i < 120; i++ {
		in := core.NewInputFrame()
		in.Set(core.ActionRight)
		r.Record(in)
		g.Step(in)
	}
	if !g.State().Won {
		t.Fatal("scripted run should win the custom pack")
	}

	got, err := Play(platformer.New(), r.Recording())
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if !got.Won || got.Score != g.State().Score {
		t.Errorf("replay of custom pack ended with %+v", got)
	}
}

func TestFrameInput(t *testing.T) {
	f := Frame{Elapsed: 15 * time.Millisecond, Actions: []core.Action{core.ActionLeft, core.ActionJump}}
	in := f.Input()
	if !in.Has(core.ActionLeft) || !in.Has(core.ActionJump) || in.Has(core.ActionRight) {
		t.Errorf("unexpected actions %v", in.List())
	}
	if in.Elapsed != f.Elapsed {
		t.Errorf("elapsed %v, want %v", in.Elapsed, f.Elapsed)
	}
}
