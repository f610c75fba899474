package picking

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

func TestDebugCursorPulse(t *testing.T) {
	d := newDebugCursorUpdater()
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := 0; i < 120; i++ {
		s := d.step(1.0 / 60)
		lo, hi = math.Min(lo, s), math.Max(hi, s)
		if s < debugCursorMinScale-1e-6 || s > debugCursorMaxScale+1e-6 {
			t.Fatalf("step %d: scale %v outside [%v, %v]", i, s, debugCursorMinScale, debugCursorMaxScale)
		}
	}
	if hi-lo < 0.3 {
		t.Errorf("pulse range [%v, %v], want it to sweep most of the band", lo, hi)
	}
}

func TestDebugCursorTracksNearestHit(t *testing.T) {
	s := newTestScene(t, PickingPlugin{}, DebugCursorPlugin{})
	s.spawnCube(0, 0, 0, 1)
	var src donburi.Entity
	sourceQuery.Each(s.world, func(e *donburi.Entry) { src = e.Entity() })

	cx, cy := s.screen(0, 0, 0)
	s.pointer.Move(cx, cy)
	s.app.Update()

	e := s.entry(src)
	if !e.HasComponent(DebugCursorComponent) {
		t.Fatal("ray source should get a DebugCursor")
	}
	c := DebugCursorComponent.GetValue(e)
	if !c.Visible {
		t.Fatal("cursor should be visible over the cube")
	}
	if !vecNear(c.Position, mgl64.Vec3{0, 0, 1}) {
		t.Errorf("Position = %v, want the cube's front face center", c.Position)
	}
	if !vecNear(c.Normal, mgl64.Vec3{0, 0, 1}) {
		t.Errorf("Normal = %v, want +Z", c.Normal)
	}
	if c.Scale < debugCursorMinScale || c.Scale > debugCursorMaxScale {
		t.Errorf("Scale = %v out of range", c.Scale)
	}

	s.pointer.Move(5, 5)
	s.app.Update()
	if DebugCursorComponent.GetValue(s.entry(src)).Visible {
		t.Error("cursor should hide when nothing is hit")
	}
}
