package picking

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

var selectionQuery = donburi.NewQuery(filter.And(
	filter.Contains(SelectionComponent, InteractionComponent),
	filter.Not(filter.Contains(PickingBlocker)),
))

// updateSelection reacts to a fresh press. The pressed entity toggles; with
// the selection modifier up, every other selected entity is deselected.
// Entities tagged NoDeselect are never deselected here.
func updateSelection(ctx *Context) {
	p := ctx.Pointer
	if !p.JustPressed || ctx.Pause.Paused() {
		return
	}
	selectionQuery.Each(ctx.World, func(e *donburi.Entry) {
		sel := SelectionComponent.Get(e)
		pressed := InteractionComponent.GetValue(e) == InteractionPressed
		locked := e.HasComponent(NoDeselect)
		switch {
		case pressed && !sel.Selected:
			sel.Selected = true
		case pressed && sel.Selected && !locked:
			sel.Selected = false
		case !pressed && sel.Selected && !locked && !p.MultiSelect:
			sel.Selected = false
		}
	})
}
