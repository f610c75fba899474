package picking

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// PointerState is the per-frame pointer snapshot every stage reads.
type PointerState struct {
	X, Y         float64 // screen position
	Present      bool    // false when no position is available this frame
	Moved        bool    // position differs from the previous frame
	Pressed      bool    // primary button (or a touch) is down
	JustPressed  bool    // went down this frame
	JustReleased bool    // went up this frame
	MultiSelect  bool    // selection modifier held (Control)
}

// PointerSource supplies one PointerState per frame. Poll is called exactly
// once at the start of every App.Update.
type PointerSource interface {
	Poll() PointerState
}

// pointerTracker derives edge fields (Moved, JustPressed, JustReleased) from
// raw level samples.
type pointerTracker struct {
	lastX, lastY float64
	hadPos       bool
	wasPressed   bool
}

func (t *pointerTracker) next(x, y float64, present, pressed, multi bool) PointerState {
	st := PointerState{
		X: x, Y: y,
		Present:      present,
		Pressed:      pressed,
		JustPressed:  pressed && !t.wasPressed,
		JustReleased: !pressed && t.wasPressed,
		MultiSelect:  multi,
	}
	if present {
		st.Moved = !t.hadPos || x != t.lastX || y != t.lastY
		t.lastX, t.lastY = x, y
	}
	t.hadPos = present
	t.wasPressed = pressed
	return st
}

// EbitenPointer reads the mouse (left button) and the first active touch
// from ebiten. A touch, when present, takes precedence over the mouse.
type EbitenPointer struct {
	tracker  pointerTracker
	touchIDs []ebiten.TouchID
}

// NewEbitenPointer creates a pointer source bound to ebiten's input state.
// Poll must be called from the game's Update.
func NewEbitenPointer() *EbitenPointer {
	return &EbitenPointer{}
}

// Poll samples ebiten's input state.
func (p *EbitenPointer) Poll() PointerState {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	if len(p.touchIDs) > 0 {
		tx, ty := ebiten.TouchPosition(p.touchIDs[0])
		x, y = float64(tx), float64(ty)
		pressed = true
	}

	multi := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	return p.tracker.next(x, y, true, pressed, multi)
}
