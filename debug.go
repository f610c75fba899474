package picking

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

const (
	debugCursorMinScale = 0.8
	debugCursorMaxScale = 1.2
	debugCursorPulse    = 0.5 // seconds per half cycle
)

// DebugCursor marks where a ray source's nearest hit lies. Hosts draw it;
// the picking stages only keep it current.
type DebugCursor struct {
	Visible  bool
	Position mgl64.Vec3
	Normal   mgl64.Vec3
	// Scale pulses between 0.8 and 1.2 so the cursor stands out.
	Scale float64
}

// debugCursorUpdater owns the pulse tween shared by every cursor.
type debugCursorUpdater struct {
	pulse   *gween.Tween
	growing bool
	scale   float64
	pending []donburi.Entity
}

func newDebugCursorUpdater() *debugCursorUpdater {
	return &debugCursorUpdater{
		pulse:   gween.New(debugCursorMinScale, debugCursorMaxScale, debugCursorPulse, ease.InOutSine),
		growing: true,
		scale:   debugCursorMinScale,
	}
}

// step advances the pulse by dt seconds, reversing at each end.
func (d *debugCursorUpdater) step(dt float64) float64 {
	cur, done := d.pulse.Update(float32(dt))
	d.scale = float64(cur)
	if done {
		d.growing = !d.growing
		if d.growing {
			d.pulse = gween.New(debugCursorMinScale, debugCursorMaxScale, debugCursorPulse, ease.InOutSine)
		} else {
			d.pulse = gween.New(debugCursorMaxScale, debugCursorMinScale, debugCursorPulse, ease.InOutSine)
		}
	}
	return d.scale
}

func cursorFor(e *donburi.Entry, scale float64) DebugCursor {
	hit, ok := CameraComponent.Get(e).Nearest()
	if !ok {
		return DebugCursor{}
	}
	return DebugCursor{Visible: true, Position: hit.Position, Normal: hit.Normal, Scale: scale}
}

func (d *debugCursorUpdater) run(ctx *Context) {
	scale := d.step(ctx.DeltaTime)

	// Sources without a cursor get one after the walk; adding a component
	// during iteration would move the entity between archetypes.
	d.pending = d.pending[:0]
	sourceQuery.Each(ctx.World, func(e *donburi.Entry) {
		if !e.HasComponent(DebugCursorComponent) {
			d.pending = append(d.pending, e.Entity())
			return
		}
		DebugCursorComponent.SetValue(e, cursorFor(e, scale))
	})
	for _, ent := range d.pending {
		e := ctx.World.Entry(ent)
		insert(e, DebugCursorComponent, cursorFor(e, scale))
	}
}
