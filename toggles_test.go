package picking

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestParseFeatureToggles(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want FeatureToggles
	}{
		{"empty keeps defaults", "", DefaultFeatureToggles()},
		{
			"partial",
			"enableHighlighting: false\nprintDebugEvents: false\n",
			FeatureToggles{
				EnablePicking:     true,
				EnableInteracting: true,
				UpdateDebugCursor: true,
			},
		},
		{
			"all off",
			"enablePicking: false\nenableHighlighting: false\nenableInteracting: false\n" +
				"updateDebugCursor: false\nprintDebugEvents: false\n",
			FeatureToggles{},
		},
		{"unknown keys ignored", "somethingElse: 3\n", DefaultFeatureToggles()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFeatureToggles([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("ParseFeatureToggles: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseFeatureTogglesInvalid(t *testing.T) {
	got, err := ParseFeatureToggles([]byte("enablePicking: [nope"))
	if err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
	if got != DefaultFeatureToggles() {
		t.Errorf("got %+v on error, want defaults", got)
	}
}

func TestLoadFeatureToggles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toggles.yaml")
	if err := os.WriteFile(path, []byte("enablePicking: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFeatureToggles(path)
	if err != nil {
		t.Fatalf("LoadFeatureToggles: %v", err)
	}
	if got.EnablePicking || !got.EnableHighlighting {
		t.Errorf("got %+v, want only picking disabled", got)
	}

	if _, err := LoadFeatureToggles(filepath.Join(dir, "missing.yaml")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file: err = %v, want not-exist", err)
	}
}

func TestDisabledInteractingFreezesState(t *testing.T) {
	s := newTestScene(t, DefaultPlugins()...)
	cube := s.spawnCube(0, 0, 0, s.store.MustAdd(Material{}))
	cx, cy := s.screen(0, 0, 0)

	s.pointer.Move(cx, cy)
	s.app.Update()
	s.app.Toggles().EnableInteracting = false
	s.pointer.Press(cx, cy)
	s.app.Update()
	if got := s.interaction(cube); got != InteractionHovered {
		t.Errorf("interaction = %v, want frozen hovered", got)
	}
	if s.selected(cube) {
		t.Error("selection changed while interacting was disabled")
	}
	if evs := s.app.Events(); len(evs) != 0 {
		t.Errorf("events = %v, want none", evs)
	}
}
