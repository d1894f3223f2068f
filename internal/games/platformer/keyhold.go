package platformer

import "github.com/vovakirdan/tui-platformer/internal/core"

// KeyHold turns key presses into held keys.
//
// A terminal reports presses and auto-repeats but never a release, so each
// press holds its direction for a fixed number of ticks. Auto-repeat keeps
// re-arming the hold while the key is down.
type KeyHold struct {
	ticks int
	left  int
	right int
	up    int
}

// NewKeyHold creates a KeyHold that keeps a pressed key down for ticks ticks.
func NewKeyHold(ticks int) KeyHold {
	if ticks < 1 {
		ticks = 1
	}
	return KeyHold{ticks: ticks}
}

// Update applies this tick's presses and returns the keys held for it.
func (h *KeyHold) Update(in core.InputFrame) core.KeyState {
	left, right := in.Has(core.ActionLeft), in.Has(core.ActionRight)
	switch {
	case left && !right:
		h.left, h.right = h.ticks, 0
	case right && !left:
		h.left, h.right = 0, h.ticks
	case left && right:
		h.left, h.right = h.ticks, h.ticks
	}
	if in.Has(core.ActionUp) || in.Has(core.ActionJump) {
		h.up = h.ticks
	}

	keys := core.KeyState{Left: h.left > 0, Right: h.right > 0, Up: h.up > 0}
	h.left = decay(h.left)
	h.right = decay(h.right)
	h.up = decay(h.up)
	return keys
}

// Release drops every held key.
func (h *KeyHold) Release() {
	h.left, h.right, h.up = 0, 0, 0
}

func decay(n int) int {
	if n > 0 {
		return n - 1
	}
	return 0
}
