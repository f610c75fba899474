package picking

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FeatureToggles holds the independent switches that gate each stage group.
// A stage group whose switch is off is skipped for the whole frame and leaves
// its outputs untouched.
type FeatureToggles struct {
	EnablePicking      bool `yaml:"enablePicking"`      // BuildRays, UpdateRaycast
	EnableHighlighting bool `yaml:"enableHighlighting"` // CaptureInitialMaterial, Highlighting
	EnableInteracting  bool `yaml:"enableInteracting"`  // PauseForBlockers, Focus, Selection, Events
	UpdateDebugCursor  bool `yaml:"updateDebugCursor"`  // DebugCursor
	PrintDebugEvents   bool `yaml:"printDebugEvents"`   // DebugEvents
}

// DefaultFeatureToggles returns toggles with every stage group enabled.
func DefaultFeatureToggles() FeatureToggles {
	return FeatureToggles{
		EnablePicking:      true,
		EnableHighlighting: true,
		EnableInteracting:  true,
		UpdateDebugCursor:  true,
		PrintDebugEvents:   true,
	}
}

// ParseFeatureToggles decodes YAML on top of the defaults, so keys that are
// omitted stay enabled.
func ParseFeatureToggles(data []byte) (FeatureToggles, error) {
	t := DefaultFeatureToggles()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return DefaultFeatureToggles(), fmt.Errorf("parse feature toggles: %w", err)
	}
	return t, nil
}

// LoadFeatureToggles reads a YAML toggle file from disk.
func LoadFeatureToggles(path string) (FeatureToggles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultFeatureToggles(), fmt.Errorf("read feature toggles %s: %w", path, err)
	}
	return ParseFeatureToggles(data)
}

// Run predicates. Each reads one switch; stage bodies never check toggles.

func pickingEnabled(ctx *Context) bool      { return ctx.Toggles.EnablePicking }
func highlightingEnabled(ctx *Context) bool { return ctx.Toggles.EnableHighlighting }
func interactingEnabled(ctx *Context) bool  { return ctx.Toggles.EnableInteracting }
func debugCursorEnabled(ctx *Context) bool  { return ctx.Toggles.UpdateDebugCursor }
func debugEventsEnabled(ctx *Context) bool  { return ctx.Toggles.PrintDebugEvents }
