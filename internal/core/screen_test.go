package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("new screen cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(3, 4, '@', ColorYellow)
	if c := s.GetCell(3, 4); c.Rune != '@' || c.Color != ColorYellow {
		t.Errorf("GetCell(3, 4) = %+v, expected yellow '@'", c)
	}

	// Plain Set resets the color
	s.Set(3, 4, 'x')
	if c := s.GetCell(3, 4); c.Color != ColorDefault {
		t.Errorf("Set should use the default color, got %v", c.Color)
	}

	// Out of bounds is silent
	s.Set(-1, 0, 'A')
	s.Set(0, 100, 'A')
	if s.Get(100, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextColored(2, 1, "Lava", ColorRed)

	for i, ch := range "Lava" {
		c := s.GetCell(2+i, 1)
		if c.Rune != ch || c.Color != ColorRed {
			t.Errorf("cell %d = %+v, expected red %q", i, c, ch)
		}
	}

	// Clipped at the right edge
	s.DrawText(18, 0, "Hello")
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("text should be clipped at right boundary")
	}
}

func TestScreenDrawTextCenteredMultibyte(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextCentered(0, "██")

	if s.Get(4, 0) != '█' || s.Get(5, 0) != '█' {
		t.Errorf("row = %q, expected block runes centered", s.Row(0))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4))

	if s.Get(1, 1) != '┌' || s.Get(5, 1) != '┐' || s.Get(1, 4) != '└' || s.Get(5, 4) != '┘' {
		t.Error("box corners are wrong")
	}
	if s.Get(3, 1) != '─' || s.Get(1, 2) != '│' {
		t.Error("box edges are wrong")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(5, 5)
	s.SetColored(1, 1, 'X', ColorGreen)

	s.Resize(10, 3)
	if s.Width() != 10 || s.Height() != 3 {
		t.Fatalf("size after resize = %dx%d", s.Width(), s.Height())
	}
	if c := s.GetCell(1, 1); c.Rune != 'X' || c.Color != ColorGreen {
		t.Errorf("content not preserved across resize: %+v", c)
	}
	if s.Get(8, 2) != ' ' {
		t.Error("new area should be blank")
	}
}

func TestScreenStringAndRow(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawHLine(0, 0, 3, '=')
	s.Set(1, 1, 'o')

	if got := s.String(); got != "===\n o " {
		t.Errorf("String() = %q", got)
	}
	if got := s.Row(5); got != strings.Repeat(" ", 3) {
		t.Errorf("out of range Row() = %q", got)
	}
}
