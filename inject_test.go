package picking

import (
	"strings"
	"testing"
)

func TestScriptedPointerClick(t *testing.T) {
	p := NewScriptedPointer()
	p.Click(50, 60)
	if p.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", p.Pending())
	}

	// Frame 1: press
	st := p.Poll()
	if !st.Present || !st.Pressed || !st.JustPressed || st.JustReleased {
		t.Errorf("frame 1 = %+v, want a fresh press", st)
	}
	if st.X != 50 || st.Y != 60 {
		t.Errorf("frame 1 position = (%v, %v), want (50, 60)", st.X, st.Y)
	}

	// Frame 2: release
	st = p.Poll()
	if st.Pressed || st.JustPressed || !st.JustReleased {
		t.Errorf("frame 2 = %+v, want a release", st)
	}
	if st.Moved {
		t.Error("release in place should not report Moved")
	}

	// Frame 3: queue empty, pointer rests.
	st = p.Poll()
	if st.JustReleased || st.Moved || !st.Present {
		t.Errorf("frame 3 = %+v, want a resting pointer", st)
	}
}

func TestScriptedPointerDrag(t *testing.T) {
	p := NewScriptedPointer()
	p.Drag(0, 0, 40, 80, 5)
	if p.Pending() != 5 {
		t.Fatalf("Pending = %d, want 5", p.Pending())
	}
	wantX := []float64{0, 10, 20, 30, 40}
	for i, x := range wantX {
		st := p.Poll()
		if st.X != x || st.Y != 2*x {
			t.Errorf("frame %d position = (%v, %v), want (%v, %v)", i, st.X, st.Y, x, 2*x)
		}
		last := i == len(wantX)-1
		if st.Pressed == last {
			t.Errorf("frame %d Pressed = %v", i, st.Pressed)
		}
		if i > 0 && !st.Moved {
			t.Errorf("frame %d should report Moved", i)
		}
	}
}

func TestScriptedPointerLeaveAndMultiSelect(t *testing.T) {
	p := NewScriptedPointer()
	if st := p.Poll(); st.Present {
		t.Errorf("empty script = %+v, want no pointer", st)
	}

	p.SetMultiSelect(true)
	p.Move(1, 1)
	p.Leave()
	p.SetMultiSelect(false)
	p.Move(2, 2)

	if st := p.Poll(); !st.MultiSelect || !st.Moved {
		t.Errorf("move = %+v, want moved with multi-select", st)
	}
	if st := p.Poll(); st.Present {
		t.Errorf("leave = %+v, want absent", st)
	}
	st := p.Poll()
	if st.MultiSelect {
		t.Error("multi-select should be released")
	}
	if !st.Moved {
		t.Error("re-entering the window should report Moved")
	}
}

func TestLoadPointerScript(t *testing.T) {
	script := `
steps:
  - action: move
    x: 10
    y: 20
  - action: multiselect
    held: true
  - action: click
    x: 10
    y: 20
  - action: wait
    frames: 2
  - action: drag
    fromX: 0
    fromY: 0
    toX: 30
    toY: 30
    frames: 4
  - action: leave
`
	p, err := LoadPointerScript([]byte(script))
	if err != nil {
		t.Fatalf("LoadPointerScript: %v", err)
	}
	if got, want := p.Pending(), 1+2+2+4+1; got != want {
		t.Fatalf("Pending = %d, want %d", got, want)
	}
	p.Poll()
	if st := p.Poll(); !st.JustPressed || !st.MultiSelect {
		t.Errorf("click press = %+v, want multi-select press", st)
	}
}

func TestLoadPointerScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"empty", "steps: []\n", "no steps"},
		{"unknown action", "steps:\n  - action: hover\n", `unknown action "hover"`},
		{"malformed", "steps: [", "parse pointer script"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPointerScript([]byte(tt.script))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}
