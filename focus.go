package picking

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

var (
	blockerQuery = donburi.NewQuery(filter.Contains(PickingBlocker))
	// focusQuery excludes blockers: their Interaction, when they have one,
	// belongs to the host UI layer.
	focusQuery = donburi.NewQuery(filter.And(
		filter.Contains(PickableComponent, InteractionComponent),
		filter.Not(filter.Contains(PickingBlocker)),
	))
)

// focusPolicyOf returns the entity's focus policy. Entities without one block.
func focusPolicyOf(e *donburi.Entry) FocusPolicy {
	if e.HasComponent(FocusPolicyComponent) {
		return FocusPolicyComponent.GetValue(e)
	}
	return FocusBlock
}

// walkFocus visits a source's hits nearest first until one blocks focus.
// The blocking hit is visited too. Stale hits on removed entities are skipped.
func walkFocus(w donburi.World, hits []Intersection, visit func(e *donburi.Entry) bool) {
	for _, hit := range hits {
		if !w.Valid(hit.Entity) {
			continue
		}
		e := w.Entry(hit.Entity)
		if !visit(e) {
			return
		}
		if focusPolicyOf(e) == FocusBlock {
			return
		}
	}
}

// pauseForBlockers recomputes the pause gate: it is set iff a blocker is
// under the pointer, either because a ray source reaches it before any
// blocking pickable, or because the host UI reports an interaction on it.
func pauseForBlockers(ctx *Context) {
	paused := false
	blockerQuery.Each(ctx.World, func(e *donburi.Entry) {
		if e.HasComponent(InteractionComponent) && InteractionComponent.GetValue(e) != InteractionNone {
			paused = true
		}
	})
	if !paused {
		sourceQuery.Each(ctx.World, func(src *donburi.Entry) {
			walkFocus(ctx.World, CameraComponent.Get(src).hits, func(e *donburi.Entry) bool {
				if e.HasComponent(PickingBlocker) {
					paused = true
					return false
				}
				return true
			})
		})
	}
	ctx.Pause.paused = paused
}

// focuser writes Interaction and Hover for every pickable entity.
type focuser struct {
	hovered map[donburi.Entity]struct{}
}

func newFocuser() *focuser {
	return &focuser{hovered: make(map[donburi.Entity]struct{})}
}

func (f *focuser) run(ctx *Context) {
	clear(f.hovered)
	if !ctx.Pause.Paused() {
		sourceQuery.Each(ctx.World, func(src *donburi.Entry) {
			walkFocus(ctx.World, CameraComponent.Get(src).hits, func(e *donburi.Entry) bool {
				if e.HasComponent(PickingBlocker) {
					return false
				}
				f.hovered[e.Entity()] = struct{}{}
				return true
			})
		})
	}

	p := ctx.Pointer
	focusQuery.Each(ctx.World, func(e *donburi.Entry) {
		_, hovered := f.hovered[e.Entity()]
		cur := InteractionComponent.GetValue(e)
		next := InteractionNone
		if hovered {
			switch {
			case p.JustPressed:
				next = InteractionPressed
			case p.Pressed && cur == InteractionPressed:
				next = InteractionPressed
			default:
				next = InteractionHovered
			}
		}
		if next != cur {
			InteractionComponent.SetValue(e, next)
		}
		if e.HasComponent(HoverComponent) {
			if h := HoverComponent.Get(e); h.Hovered != hovered {
				h.Hovered = hovered
			}
		}
	})
}
