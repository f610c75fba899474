// Package picking resolves pointer rays into per-entity interaction state
// (hover, press, selection) and swaps displayed materials to match, once per
// frame, for scenes stored in a [Donburi] world.
//
// # Quick start
//
//	world := donburi.NewWorld()
//	app := picking.NewApp(world, picking.WithPointer(picking.NewEbitenPointer()))
//	if err := app.AddPlugins(picking.DefaultPlugins()...); err != nil {
//		log.Fatal(err)
//	}
//	if err := app.Build(); err != nil {
//		log.Fatal(err)
//	}
//
//	cube := picking.NewPickableBundle(picking.HitBox(1, 1, 1)).Spawn(world)
//	picking.SetDisplayedMaterial(cube, cubeMaterial)
//	picking.NewPickingCameraBundle(camera).Spawn(world)
//
//	// each frame, from ebiten.Game.Update:
//	app.Update()
//
// # Stages
//
// Every frame runs a fixed graph of stages, ordered by declarative
// before/after constraints resolved once in [App.Build]:
//
//	UpdatePickSourcePositions → BuildRays → UpdateRaycast → PauseForBlockers
//	→ Focus → Selection → CaptureInitialMaterial → Highlighting → Events
//
// Each stage group is gated by a [FeatureToggles] switch. A disabled stage is
// skipped for the frame and leaves its outputs as they were.
//
// # Highlighting
//
// The resolver only touches entities it has not seen before or whose
// [Interaction] or [Selection] changed. It picks, in strict priority, the
// pressed material, the hovered material, the selected material, or the
// material the entity was first seen with. Per-entity [HighlightOverrides] win over [GlobalHighlightMaterials].
// While a [PickingBlocker] is under the pointer the pressed and hovered tiers
// are skipped.
//
// # Events
//
// Read [App.Events] after Update for the transitions of the last frame. Apps
// built with [WithWorldEvents] also publish them to [PickingEventType]; such
// hosts must call ProcessEvents on it every frame to drain the queue.
//
// [Donburi]: https://github.com/yohamta/donburi
package picking
