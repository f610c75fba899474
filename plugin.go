package picking

import (
	"errors"
	"fmt"
)

// ErrPluginAdded is returned when a plugin that may only be built once is
// added again.
var ErrPluginAdded = errors.New("picking: plugin already added")

// Plugin registers resources and stages on an App.
type Plugin interface {
	Build(a *App) error
}

// DefaultPlugins returns the picking, interaction, and highlighting plugins.
func DefaultPlugins() []Plugin {
	return []Plugin{PickingPlugin{}, InteractablePlugin{}, HighlightablePlugin{}}
}

// PickingPlugin casts rays from every ray source each frame.
type PickingPlugin struct{}

// Build registers UpdatePickSourcePositions, BuildRays, and UpdateRaycast.
func (PickingPlugin) Build(a *App) error {
	return a.addStages(
		Stage{
			Label:  StageUpdatePickSourcePositions,
			Run:    updatePickSourcePositions,
			RunIf:  pickingEnabled,
			Before: []StageLabel{StageBuildRays},
		},
		Stage{
			Label:  StageBuildRays,
			Run:    buildRays,
			RunIf:  pickingEnabled,
			Before: []StageLabel{StageUpdateRaycast},
		},
		Stage{
			Label: StageUpdateRaycast,
			Run:   updateRaycast,
			RunIf: pickingEnabled,
		},
	)
}

// InteractablePlugin turns ray hits into Interaction, Selection, and events.
type InteractablePlugin struct{}

// Build registers PauseForBlockers, Focus, Selection, and Events.
func (InteractablePlugin) Build(a *App) error {
	f := newFocuser()
	em := newEventEmitter()
	return a.addStages(
		Stage{
			Label: StagePauseForBlockers,
			Run:   pauseForBlockers,
			RunIf: interactingEnabled,
			After: []StageLabel{StageUpdateRaycast},
		},
		Stage{
			Label: StageFocus,
			Run:   f.run,
			RunIf: interactingEnabled,
			After: []StageLabel{StagePauseForBlockers},
		},
		Stage{
			Label:  StageSelection,
			Run:    updateSelection,
			RunIf:  interactingEnabled,
			After:  []StageLabel{StageFocus},
			Before: []StageLabel{StageEvents},
		},
		Stage{
			Label: StageEvents,
			Run:   em.run,
			RunIf: interactingEnabled,
		},
	)
}

// HighlightablePlugin swaps displayed materials to reflect interaction and
// selection state.
type HighlightablePlugin struct{}

// Build creates the global fallback materials and registers
// CaptureInitialMaterial and Highlighting. It fails when the app has no
// usable material store, is already built, or already has the plugin. On
// failure the app's fallbacks are left as they were.
func (HighlightablePlugin) Build(a *App) error {
	if a.schedule.Built() {
		return fmt.Errorf("highlightable plugin: %w", ErrScheduleBuilt)
	}
	if a.ctx.hasHighlight {
		return fmt.Errorf("highlightable plugin: %w", ErrPluginAdded)
	}
	globals, err := NewGlobalHighlightMaterials(a.ctx.Materials)
	if err != nil {
		return fmt.Errorf("highlightable plugin: %w", err)
	}

	h := newHighlighter(globals)
	err = a.addStages(
		Stage{
			Label:  StageCaptureInitialMaterial,
			Run:    captureInitialMaterials,
			RunIf:  highlightingEnabled,
			After:  []StageLabel{StageUpdateRaycast},
			Before: []StageLabel{StageHighlighting},
		},
		Stage{
			Label: StageHighlighting,
			Run:   h.run,
			RunIf: highlightingEnabled,
			After: []StageLabel{
				StageUpdateRaycast, StagePauseForBlockers, StageFocus, StageSelection,
			},
			Before: []StageLabel{StageEvents},
		},
	)
	if err != nil {
		return fmt.Errorf("highlightable plugin: %w", err)
	}
	a.ctx.highlight = globals
	a.ctx.hasHighlight = true
	return nil
}

// DebugCursorPlugin tracks the nearest hit of every ray source in a
// DebugCursor component.
type DebugCursorPlugin struct{}

// Build registers DebugCursor.
func (DebugCursorPlugin) Build(a *App) error {
	d := newDebugCursorUpdater()
	return a.addStages(Stage{
		Label: StageDebugCursor,
		Run:   d.run,
		RunIf: debugCursorEnabled,
		After: []StageLabel{StageUpdateRaycast},
	})
}

// DebugEventsPlugin logs every picking event.
type DebugEventsPlugin struct{}

// Build registers DebugEvents.
func (DebugEventsPlugin) Build(a *App) error {
	return a.addStages(Stage{
		Label: StageDebugEvents,
		Run:   logEvents,
		RunIf: debugEventsEnabled,
		After: []StageLabel{StageEvents},
	})
}
