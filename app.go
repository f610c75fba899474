package picking

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
)

// PauseGate suspends interaction-driven highlight feedback. It is recomputed
// every frame by the PauseForBlockers stage, its only writer.
type PauseGate struct {
	paused bool
}

// Paused reports whether feedback is suspended this frame.
func (g PauseGate) Paused() bool {
	return g.paused
}

// Stats are cumulative counters kept by the highlight stages.
type Stats struct {
	Captured       uint64 // initial materials captured
	Resolved       uint64 // materials written by the highlight resolver
	MissingInitial uint64 // resolutions skipped for lack of an initial material
}

// Context is handed to every stage. It carries the world and the
// process-wide resources so stages never reach for globals.
type Context struct {
	World     donburi.World
	Toggles   FeatureToggles
	Pause     PauseGate
	Materials MaterialStore
	Pointer   PointerState
	Log       zerolog.Logger
	Frame     uint64
	DeltaTime float64 // seconds per frame
	Stats     Stats

	highlight     GlobalHighlightMaterials
	hasHighlight  bool
	events        []PickingEvent
	publishEvents bool
}

// HighlightMaterials returns the global fallbacks, if the highlight plugin
// has been built.
func (c *Context) HighlightMaterials() (GlobalHighlightMaterials, bool) {
	return c.highlight, c.hasHighlight
}

// Events returns the events emitted so far this frame.
func (c *Context) Events() []PickingEvent {
	return c.events
}

// App owns the schedule and the resources for one donburi world.
type App struct {
	ctx      Context
	schedule *Schedule
	pointer  PointerSource
}

// Option configures an App.
type Option func(*App)

// WithToggles sets the initial feature toggles.
func WithToggles(t FeatureToggles) Option {
	return func(a *App) { a.ctx.Toggles = t }
}

// WithMaterials sets the material store the highlight plugin creates its
// fallbacks in.
func WithMaterials(store MaterialStore) Option {
	return func(a *App) { a.ctx.Materials = store }
}

// WithPointer sets the pointer source polled each frame.
func WithPointer(src PointerSource) Option {
	return func(a *App) { a.pointer = src }
}

// WithLogger replaces the default stderr logger.
func WithLogger(l zerolog.Logger) Option {
	return func(a *App) { a.ctx.Log = l }
}

// WithWorldEvents also publishes every event to [PickingEventType] on the
// world. The host must then call ProcessEvents on it every frame, or the
// world's queue grows without bound.
func WithWorldEvents() Option {
	return func(a *App) { a.ctx.publishEvents = true }
}

// WithDeltaTime sets the frame duration in seconds.
func WithDeltaTime(dt float64) Option {
	return func(a *App) { a.ctx.DeltaTime = dt }
}

// NewApp creates an App for w with default toggles, an in-memory material
// store, and no pointer. Add plugins, then call Build once before Update.
func NewApp(w donburi.World, opts ...Option) *App {
	a := &App{
		ctx: Context{
			World:     w,
			Toggles:   DefaultFeatureToggles(),
			Materials: NewMaterialAssets(),
			Log: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				With().Timestamp().Str("module", "picking").Logger(),
			DeltaTime: 1.0 / float64(ebiten.DefaultTPS),
		},
		schedule: NewSchedule(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AddPlugins builds each plugin into the app in order.
func (a *App) AddPlugins(plugins ...Plugin) error {
	for _, p := range plugins {
		if err := p.Build(a); err != nil {
			return err
		}
	}
	return nil
}

// AddStage registers a custom stage alongside the built-in ones.
func (a *App) AddStage(st Stage) error {
	return a.schedule.Add(st)
}

func (a *App) addStages(stages ...Stage) error {
	for _, st := range stages {
		if err := a.schedule.Add(st); err != nil {
			return err
		}
	}
	return nil
}

// Build resolves the stage order. Structural errors (cycles, duplicate
// labels) surface here, before any frame runs.
func (a *App) Build() error {
	if err := a.schedule.Build(); err != nil {
		return fmt.Errorf("build picking schedule: %w", err)
	}
	return nil
}

// Update runs one frame: polls the pointer, then every enabled stage in
// order.
func (a *App) Update() {
	if !a.schedule.Built() {
		panic("picking: Update called before Build")
	}
	if a.pointer != nil {
		a.ctx.Pointer = a.pointer.Poll()
	} else {
		a.ctx.Pointer = PointerState{}
	}
	a.ctx.events = a.ctx.events[:0]
	a.schedule.Run(&a.ctx)
	a.ctx.Frame++
}

// World returns the app's donburi world.
func (a *App) World() donburi.World {
	return a.ctx.World
}

// Toggles returns the live feature toggles. Changes apply from the next frame.
func (a *App) Toggles() *FeatureToggles {
	return &a.ctx.Toggles
}

// Paused reports the pause gate as of the last frame.
func (a *App) Paused() bool {
	return a.ctx.Pause.Paused()
}

// Events returns the events emitted during the last frame. The slice is
// reused by the next Update.
func (a *App) Events() []PickingEvent {
	return a.ctx.events
}

// HighlightMaterials returns the global fallback materials.
func (a *App) HighlightMaterials() (GlobalHighlightMaterials, bool) {
	return a.ctx.HighlightMaterials()
}

// Materials returns the app's material store.
func (a *App) Materials() MaterialStore {
	return a.ctx.Materials
}

// Stats returns the highlight counters.
func (a *App) Stats() Stats {
	return a.ctx.Stats
}

// Order returns the resolved stage order.
func (a *App) Order() []StageLabel {
	return a.schedule.Order()
}
