package picking

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

var (
	captureQuery   = donburi.NewQuery(filter.Contains(HighlightComponent, MaterialComponent))
	highlightQuery = donburi.NewQuery(filter.Contains(InteractionComponent, HighlightComponent, MaterialComponent))
)

// captureInitialMaterials records each highlightable entity's displayed
// material the first time it has one. Later frames are no-ops for entities
// already captured.
func captureInitialMaterials(ctx *Context) {
	captureQuery.Each(ctx.World, func(e *donburi.Entry) {
		if HighlightComponent.Get(e).captureInitial(MaterialComponent.GetValue(e)) {
			ctx.Stats.Captured++
		}
	})
}

// highlightKey is the state the resolver reacts to.
type highlightKey struct {
	interaction Interaction
	selected    bool
}

// highlighter resolves displayed materials for entities whose interaction or
// selection changed since it last looked at them. The first observation of an
// entity counts as a change.
type highlighter struct {
	globals GlobalHighlightMaterials
	seen    *snapshots[highlightKey]
}

func newHighlighter(globals GlobalHighlightMaterials) *highlighter {
	return &highlighter{globals: globals, seen: newSnapshots[highlightKey]()}
}

func (h *highlighter) run(ctx *Context) {
	paused := ctx.Pause.Paused()
	highlightQuery.Each(ctx.World, func(e *donburi.Entry) {
		key := highlightKey{interaction: InteractionComponent.GetValue(e)}
		if e.HasComponent(SelectionComponent) {
			key.selected = SelectionComponent.Get(e).Selected
		}
		if prev, seen := h.seen.swap(e.Entity(), key, ctx.Frame); seen && prev == key {
			return
		}

		m, ok := h.choose(paused, key, HighlightComponent.Get(e))
		if !ok {
			ctx.Stats.MissingInitial++
			ctx.Log.Warn().Interface("entity", e.Entity()).
				Msg("selectable entity missing its initial material")
			return
		}
		if m == MaterialComponent.GetValue(e) {
			return
		}
		MaterialComponent.SetValue(e, m)
		ctx.Stats.Resolved++
	})
	h.seen.prune(ctx.Frame)
}

// choose applies the priority order Pressed > Hovered > Selected > initial.
// While paused the Pressed and Hovered tiers are skipped entirely.
func (h *highlighter) choose(paused bool, key highlightKey, o *HighlightOverrides) (MaterialHandle, bool) {
	if !paused {
		switch key.interaction {
		case InteractionPressed:
			return orFallback(o.Pressed, h.globals.Pressed), true
		case InteractionHovered:
			return orFallback(o.Hovered, h.globals.Hovered), true
		}
	}
	if key.selected {
		return orFallback(o.Selected, h.globals.Selected), true
	}
	return o.Initial()
}

func orFallback(override, fallback MaterialHandle) MaterialHandle {
	if override.Valid() {
		return override
	}
	return fallback
}
