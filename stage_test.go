package picking

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/yohamta/donburi"
)

func noop(*Context) {}

func labels(ss ...string) []StageLabel {
	out := make([]StageLabel, len(ss))
	for i, s := range ss {
		out[i] = StageLabel(s)
	}
	return out
}

func TestScheduleOrder(t *testing.T) {
	tests := []struct {
		name   string
		stages []Stage
		want   []StageLabel
	}{
		{
			name: "registration order without constraints",
			stages: []Stage{
				{Label: "a", Run: noop},
				{Label: "b", Run: noop},
				{Label: "c", Run: noop},
			},
			want: labels("a", "b", "c"),
		},
		{
			name: "after reorders",
			stages: []Stage{
				{Label: "a", Run: noop, After: labels("c")},
				{Label: "b", Run: noop},
				{Label: "c", Run: noop},
			},
			want: labels("b", "c", "a"),
		},
		{
			name: "before reorders",
			stages: []Stage{
				{Label: "a", Run: noop},
				{Label: "b", Run: noop},
				{Label: "c", Run: noop, Before: labels("a")},
			},
			want: labels("b", "c", "a"),
		},
		{
			name: "unknown labels ignored",
			stages: []Stage{
				{Label: "a", Run: noop, After: labels("missing")},
				{Label: "b", Run: noop, Before: labels("gone")},
			},
			want: labels("a", "b"),
		},
		{
			name: "duplicate edges count once",
			stages: []Stage{
				{Label: "a", Run: noop, Before: labels("b")},
				{Label: "b", Run: noop, After: labels("a", "a")},
			},
			want: labels("a", "b"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSchedule()
			for _, st := range tt.stages {
				if err := s.Add(st); err != nil {
					t.Fatalf("Add(%q): %v", st.Label, err)
				}
			}
			if err := s.Build(); err != nil {
				t.Fatalf("Build: %v", err)
			}
			if got := s.Order(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScheduleErrors(t *testing.T) {
	s := NewSchedule()
	if err := s.Add(Stage{Label: "x"}); !errors.Is(err, ErrNilStage) {
		t.Errorf("nil Run: err = %v, want ErrNilStage", err)
	}
	if err := s.Add(Stage{Label: "x", Run: noop}); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(Stage{Label: "x", Run: noop}); !errors.Is(err, ErrDuplicateStage) {
		t.Errorf("duplicate: err = %v, want ErrDuplicateStage", err)
	}
	if err := s.Build(); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(Stage{Label: "y", Run: noop}); !errors.Is(err, ErrScheduleBuilt) {
		t.Errorf("add after build: err = %v, want ErrScheduleBuilt", err)
	}
	if err := s.Build(); !errors.Is(err, ErrScheduleBuilt) {
		t.Errorf("second build: err = %v, want ErrScheduleBuilt", err)
	}
}

func TestScheduleCycle(t *testing.T) {
	s := NewSchedule()
	for _, st := range []Stage{
		{Label: "free", Run: noop},
		{Label: "a", Run: noop, After: labels("b")},
		{Label: "b", Run: noop, After: labels("a")},
	} {
		if err := s.Add(st); err != nil {
			t.Fatal(err)
		}
	}
	err := s.Build()
	if !errors.Is(err, ErrStageCycle) {
		t.Fatalf("err = %v, want ErrStageCycle", err)
	}
	if msg := err.Error(); !strings.Contains(msg, "a, b") || strings.Contains(msg, "free") {
		t.Errorf("err = %q, want only the stuck stages listed", msg)
	}
	if s.Built() {
		t.Error("schedule should not be built after a cycle")
	}
}

func TestScheduleRunIf(t *testing.T) {
	var ran []string
	s := NewSchedule()
	gate := false
	for _, st := range []Stage{
		{Label: "always", Run: func(*Context) { ran = append(ran, "always") }},
		{
			Label: "gated",
			Run:   func(*Context) { ran = append(ran, "gated") },
			RunIf: func(*Context) bool { return gate },
		},
	} {
		if err := s.Add(st); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Build(); err != nil {
		t.Fatal(err)
	}

	ctx := &Context{World: donburi.NewWorld()}
	s.Run(ctx)
	gate = true
	s.Run(ctx)
	want := []string{"always", "always", "gated"}
	if !reflect.DeepEqual(ran, want) {
		t.Errorf("ran = %v, want %v", ran, want)
	}
}

func TestDefaultPluginOrder(t *testing.T) {
	app := NewApp(donburi.NewWorld())
	if err := app.AddPlugins(DefaultPlugins()...); err != nil {
		t.Fatal(err)
	}
	if err := app.AddPlugins(DebugCursorPlugin{}, DebugEventsPlugin{}); err != nil {
		t.Fatal(err)
	}
	if err := app.Build(); err != nil {
		t.Fatal(err)
	}
	want := []StageLabel{
		StageUpdatePickSourcePositions,
		StageBuildRays,
		StageUpdateRaycast,
		StagePauseForBlockers,
		StageFocus,
		StageSelection,
		StageCaptureInitialMaterial,
		StageHighlighting,
		StageEvents,
		StageDebugCursor,
		StageDebugEvents,
	}
	if got := app.Order(); !reflect.DeepEqual(got, want) {
		t.Errorf("Order =\n%v\nwant\n%v", got, want)
	}
}

func TestHighlightOnlyPluginBuilds(t *testing.T) {
	app := NewApp(donburi.NewWorld())
	if err := app.AddPlugins(HighlightablePlugin{}); err != nil {
		t.Fatal(err)
	}
	if err := app.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := []StageLabel{StageCaptureInitialMaterial, StageHighlighting}
	if got := app.Order(); !reflect.DeepEqual(got, want) {
		t.Errorf("Order = %v, want %v", got, want)
	}
}

func TestAppBuildWrapsCycle(t *testing.T) {
	app := NewApp(donburi.NewWorld())
	if err := app.AddPlugins(PickingPlugin{}); err != nil {
		t.Fatal(err)
	}
	if err := app.AddStage(Stage{
		Label:  "custom",
		Run:    noop,
		After:  labels(string(StageUpdateRaycast)),
		Before: labels(string(StageBuildRays)),
	}); err != nil {
		t.Fatal(err)
	}
	err := app.Build()
	if !errors.Is(err, ErrStageCycle) {
		t.Fatalf("err = %v, want ErrStageCycle", err)
	}
}
