package picking

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// pointerSample is one queued raw pointer reading.
type pointerSample struct {
	x, y    float64
	present bool
	pressed bool
	multi   bool
}

// ScriptedPointer is a PointerSource fed from a queue of synthetic samples.
// Each Poll consumes one sample; once the queue is empty the last sample
// repeats, so the pointer rests where the script left it.
type ScriptedPointer struct {
	queue   []pointerSample
	last    pointerSample
	multi   bool
	tracker pointerTracker
}

// NewScriptedPointer creates an empty script. Until something is queued the
// pointer reports no position.
func NewScriptedPointer() *ScriptedPointer {
	return &ScriptedPointer{}
}

// Poll pops the next sample.
func (p *ScriptedPointer) Poll() PointerState {
	if len(p.queue) > 0 {
		p.last = p.queue[0]
		copy(p.queue, p.queue[1:])
		p.queue = p.queue[:len(p.queue)-1]
	}
	s := p.last
	return p.tracker.next(s.x, s.y, s.present, s.pressed, s.multi)
}

// Pending returns the number of queued samples.
func (p *ScriptedPointer) Pending() int {
	return len(p.queue)
}

// tail is the sample subsequent queue operations build on.
func (p *ScriptedPointer) tail() pointerSample {
	if n := len(p.queue); n > 0 {
		return p.queue[n-1]
	}
	return p.last
}

func (p *ScriptedPointer) push(s pointerSample) {
	s.multi = p.multi
	p.queue = append(p.queue, s)
}

// SetMultiSelect holds or releases the selection modifier for samples
// queued from now on.
func (p *ScriptedPointer) SetMultiSelect(held bool) {
	p.multi = held
}

// Move queues a move to (x, y), keeping the current button state.
func (p *ScriptedPointer) Move(x, y float64) {
	t := p.tail()
	p.push(pointerSample{x: x, y: y, present: true, pressed: t.pressed})
}

// Press queues a button press at (x, y).
func (p *ScriptedPointer) Press(x, y float64) {
	p.push(pointerSample{x: x, y: y, present: true, pressed: true})
}

// Release queues a button release at (x, y).
func (p *ScriptedPointer) Release(x, y float64) {
	p.push(pointerSample{x: x, y: y, present: true, pressed: false})
}

// Click queues a press followed by a release at the same position. Consumes
// two frames.
func (p *ScriptedPointer) Click(x, y float64) {
	p.Press(x, y)
	p.Release(x, y)
}

// Drag queues a press at (fromX, fromY), frames-2 interpolated moves, and a
// release at (toX, toY). Minimum frames is 2.
func (p *ScriptedPointer) Drag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	p.Press(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		p.Move(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	p.Release(toX, toY)
}

// Wait queues n frames with the pointer unchanged.
func (p *ScriptedPointer) Wait(n int) {
	for i := 0; i < n; i++ {
		p.push(p.tail())
	}
}

// Leave queues a frame where the pointer has left the window.
func (p *ScriptedPointer) Leave() {
	p.push(pointerSample{})
}

// --- Pointer scripts ---

// scriptStep is one action in a pointer script.
type scriptStep struct {
	Action string  `yaml:"action"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	FromX  float64 `yaml:"fromX,omitempty"`
	FromY  float64 `yaml:"fromY,omitempty"`
	ToX    float64 `yaml:"toX,omitempty"`
	ToY    float64 `yaml:"toY,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
	Held   bool    `yaml:"held,omitempty"`
}

type pointerScript struct {
	Steps []scriptStep `yaml:"steps"`
}

// LoadPointerScript parses a YAML (or JSON) pointer script into a
// ScriptedPointer. Actions: move, press, release, click, drag, wait, leave,
// multiselect.
func LoadPointerScript(data []byte) (*ScriptedPointer, error) {
	var script pointerScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse pointer script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse pointer script: no steps")
	}
	p := NewScriptedPointer()
	for i, st := range script.Steps {
		switch st.Action {
		case "move":
			p.Move(st.X, st.Y)
		case "press":
			p.Press(st.X, st.Y)
		case "release":
			p.Release(st.X, st.Y)
		case "click":
			p.Click(st.X, st.Y)
		case "drag":
			p.Drag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
		case "wait":
			p.Wait(st.Frames)
		case "leave":
			p.Leave()
		case "multiselect":
			p.SetMultiSelect(st.Held)
		default:
			return nil, fmt.Errorf("parse pointer script: step %d: unknown action %q", i, st.Action)
		}
	}
	return p, nil
}
