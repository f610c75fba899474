package picking

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// RGB returns an opaque color.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// Vec2 is a 2D screen-space position.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Interaction is the per-entity pointer state produced by the Focus stage.
type Interaction uint8

const (
	InteractionNone    Interaction = iota // not under the pointer
	InteractionHovered                    // under the pointer, button up
	InteractionPressed                    // under the pointer, button pressed on it
)

// String returns the lower-case name of the interaction.
func (i Interaction) String() string {
	switch i {
	case InteractionNone:
		return "none"
	case InteractionHovered:
		return "hovered"
	case InteractionPressed:
		return "pressed"
	default:
		return "unknown"
	}
}

// FocusPolicy controls whether a hovered entity stops focus from reaching
// entities further along the same ray.
type FocusPolicy uint8

const (
	FocusBlock FocusPolicy = iota // nearest hit takes focus, entities behind it do not
	FocusPass                     // entities behind this one may also be hovered
)

// UpdateMode selects when a ray source recomputes its ray.
type UpdateMode uint8

const (
	UpdateEveryFrame     UpdateMode = iota // recompute every frame at the cached screen position
	UpdateOnPointerEvent                   // recompute only on frames with pointer activity
)

// UpdatePicks is the update policy attached to a ray source.
type UpdatePicks struct {
	Mode UpdateMode
	// Cursor is the cached screen position used by UpdateEveryFrame. It
	// follows the pointer whenever the pointer is present.
	Cursor Vec2
}

// UpdatePicksEveryFrame returns a policy that casts every frame, starting
// from the given screen position until the pointer reports one.
func UpdatePicksEveryFrame(pos Vec2) UpdatePicks {
	return UpdatePicks{Mode: UpdateEveryFrame, Cursor: pos}
}

// UpdatePicksOnPointerEvent returns a policy that only casts on frames where
// the pointer moved or changed button state.
func UpdatePicksOnPointerEvent() UpdatePicks {
	return UpdatePicks{Mode: UpdateOnPointerEvent}
}
