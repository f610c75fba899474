package picking

import (
	"fmt"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EventKind identifies a picking event.
type EventKind uint8

const (
	EventHoverEntered   EventKind = iota // entity became hovered
	EventHoverLeft                       // entity stopped being hovered
	EventJustSelected                    // entity became selected
	EventJustDeselected                  // entity stopped being selected
	EventClicked                         // pointer went down on the entity
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventHoverEntered:
		return "hover_entered"
	case EventHoverLeft:
		return "hover_left"
	case EventJustSelected:
		return "just_selected"
	case EventJustDeselected:
		return "just_deselected"
	case EventClicked:
		return "clicked"
	default:
		return "unknown"
	}
}

// PickingEvent is one entry of the per-frame event stream.
type PickingEvent struct {
	Kind   EventKind
	Entity donburi.Entity
}

func (e PickingEvent) String() string {
	return fmt.Sprintf("%s(%v)", e.Kind, e.Entity)
}

// PickingEventType is the donburi event type picking events are published
// to when the app is built with [WithWorldEvents]. Subscribe to it and call
// ProcessEvents in your ECS systems to receive them.
var PickingEventType = events.NewEventType[PickingEvent]()

// emit appends ev to the frame buffer and, if enabled, publishes it to the
// world.
func (c *Context) emit(ev PickingEvent) {
	c.events = append(c.events, ev)
	if c.publishEvents {
		PickingEventType.Publish(c.World, ev)
	}
}

// eventState is the per-entity state the event stream is derived from.
type eventState struct {
	hovered     bool
	selected    bool
	interaction Interaction
}

// eventEmitter turns per-entity state transitions into events. For each
// entity, hover events come first, then selection, then click.
type eventEmitter struct {
	seen *snapshots[eventState]
}

func newEventEmitter() *eventEmitter {
	return &eventEmitter{seen: newSnapshots[eventState]()}
}

func (em *eventEmitter) run(ctx *Context) {
	focusQuery.Each(ctx.World, func(e *donburi.Entry) {
		cur := eventState{interaction: InteractionComponent.GetValue(e)}
		if e.HasComponent(HoverComponent) {
			cur.hovered = HoverComponent.Get(e).Hovered
		}
		if e.HasComponent(SelectionComponent) {
			cur.selected = SelectionComponent.Get(e).Selected
		}
		prev, _ := em.seen.swap(e.Entity(), cur, ctx.Frame)
		if prev == cur {
			return
		}

		ent := e.Entity()
		if cur.hovered != prev.hovered {
			if cur.hovered {
				ctx.emit(PickingEvent{Kind: EventHoverEntered, Entity: ent})
			} else {
				ctx.emit(PickingEvent{Kind: EventHoverLeft, Entity: ent})
			}
		}
		if cur.selected != prev.selected {
			if cur.selected {
				ctx.emit(PickingEvent{Kind: EventJustSelected, Entity: ent})
			} else {
				ctx.emit(PickingEvent{Kind: EventJustDeselected, Entity: ent})
			}
		}
		if cur.interaction == InteractionPressed && prev.interaction != InteractionPressed {
			ctx.emit(PickingEvent{Kind: EventClicked, Entity: ent})
		}
	})
	em.seen.prune(ctx.Frame)
}

// logEvents writes every event of the frame to the app logger.
func logEvents(ctx *Context) {
	for _, ev := range ctx.events {
		ctx.Log.Info().Str("event", ev.Kind.String()).Interface("entity", ev.Entity).
			Uint64("frame", ctx.Frame).Msg("picking event")
	}
}
