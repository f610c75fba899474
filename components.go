package picking

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// --- Per-entity records ---

// Selection is the per-entity selection flag, written only by the Selection stage.
type Selection struct {
	Selected bool
}

// Hover mirrors whether any ray source currently hovers the entity. Written
// only by the Focus stage.
type Hover struct {
	Hovered bool
}

// HighlightOverrides holds optional per-entity materials for each highlight
// state. A zero handle means "use the global fallback". The initial material
// is captured from the displayed material the first time the entity is seen
// with one, and is never overwritten afterwards.
type HighlightOverrides struct {
	Hovered  MaterialHandle
	Pressed  MaterialHandle
	Selected MaterialHandle

	initial MaterialHandle
}

// Initial returns the captured initial material, if any.
func (o *HighlightOverrides) Initial() (MaterialHandle, bool) {
	return o.initial, o.initial.Valid()
}

// captureInitial records h as the initial material unless one was already
// captured. Reports whether it wrote.
func (o *HighlightOverrides) captureInitial(h MaterialHandle) bool {
	if o.initial.Valid() || !h.Valid() {
		return false
	}
	o.initial = h
	return true
}

// PickableMesh marks an entity as a ray target. Volume is in the entity's
// local space; the optional Transform component places it in the world.
type PickableMesh struct {
	Volume HitVolume
}

// Transform is the entity's local-to-world matrix. Entities without one are
// treated as sitting at the origin with identity orientation.
type Transform struct {
	World mgl64.Mat4
}

// NewTransform wraps a world matrix.
func NewTransform(world mgl64.Mat4) Transform {
	return Transform{World: world}
}

// Translation returns a transform that only moves by (x, y, z).
func Translation(x, y, z float64) Transform {
	return Transform{World: mgl64.Translate3D(x, y, z)}
}

// --- Component types ---

var (
	InteractionComponent = donburi.NewComponentType[Interaction]()
	SelectionComponent   = donburi.NewComponentType[Selection]()
	HoverComponent       = donburi.NewComponentType[Hover]()
	HighlightComponent   = donburi.NewComponentType[HighlightOverrides]()
	MaterialComponent    = donburi.NewComponentType[MaterialHandle]() // displayed material, owned by the renderer
	PickableComponent    = donburi.NewComponentType[PickableMesh]()
	TransformComponent   = donburi.NewComponentType[Transform]()
	FocusPolicyComponent = donburi.NewComponentType[FocusPolicy]()
	CameraComponent      = donburi.NewComponentType[PickingCamera]()
	UpdatePicksComponent = donburi.NewComponentType[UpdatePicks]()
	DebugCursorComponent = donburi.NewComponentType[DebugCursor]()

	// NoDeselect opts an entity out of being deselected by the Selection stage.
	NoDeselect = donburi.NewTag()
	// PickingBlocker marks an entity whose presence under the pointer pauses
	// interaction feedback on every pickable entity.
	PickingBlocker = donburi.NewTag()
)

// insert adds c to e with value v, or overwrites the existing value.
func insert[T any](e *donburi.Entry, c *donburi.ComponentType[T], v T) {
	if e.HasComponent(c) {
		c.SetValue(e, v)
		return
	}
	donburi.Add(e, c, &v)
}

// SetDisplayedMaterial assigns the renderer's material for e.
func SetDisplayedMaterial(e *donburi.Entry, h MaterialHandle) {
	insert(e, MaterialComponent, h)
}

// DisplayedMaterial returns the material currently shown for e.
func DisplayedMaterial(e *donburi.Entry) MaterialHandle {
	if !e.HasComponent(MaterialComponent) {
		return NoMaterial
	}
	return MaterialComponent.GetValue(e)
}

// SetTransform places e in the world.
func SetTransform(e *donburi.Entry, t Transform) {
	insert(e, TransformComponent, t)
}

// --- Bundles ---

// PickableBundle is the default set of components that makes an entity take
// part in picking, interaction, selection, and highlighting.
type PickableBundle struct {
	Mesh        PickableMesh
	Interaction Interaction
	FocusPolicy FocusPolicy
	Highlight   HighlightOverrides
	Selection   Selection
	Hover       Hover
}

// NewPickableBundle returns the defaults: no interaction, blocking focus,
// no highlight overrides, unselected, not hovered.
func NewPickableBundle(volume HitVolume) PickableBundle {
	return PickableBundle{
		Mesh:        PickableMesh{Volume: volume},
		Interaction: InteractionNone,
		FocusPolicy: FocusBlock,
	}
}

// Insert adds the bundle's components to an existing entity, overwriting any
// it already has.
func (b PickableBundle) Insert(e *donburi.Entry) {
	insert(e, PickableComponent, b.Mesh)
	insert(e, InteractionComponent, b.Interaction)
	insert(e, FocusPolicyComponent, b.FocusPolicy)
	insert(e, HighlightComponent, b.Highlight)
	insert(e, SelectionComponent, b.Selection)
	insert(e, HoverComponent, b.Hover)
}

// Spawn creates a new entity carrying the bundle.
func (b PickableBundle) Spawn(w donburi.World) *donburi.Entry {
	e := w.Entry(w.Create(
		PickableComponent, InteractionComponent, FocusPolicyComponent,
		HighlightComponent, SelectionComponent, HoverComponent,
	))
	b.Insert(e)
	return e
}

// PickingCameraBundle makes an entity a ray source.
type PickingCameraBundle struct {
	Source PickingCamera
	Update UpdatePicks
}

// NewPickingCameraBundle returns a ray source that casts every frame from
// the screen origin until the pointer reports a position.
func NewPickingCameraBundle(cam Camera) PickingCameraBundle {
	return PickingCameraBundle{
		Source: PickingCamera{Camera: cam},
		Update: UpdatePicksEveryFrame(Vec2{}),
	}
}

// Insert adds the bundle's components to an existing entity.
func (b PickingCameraBundle) Insert(e *donburi.Entry) {
	insert(e, CameraComponent, b.Source)
	insert(e, UpdatePicksComponent, b.Update)
}

// Spawn creates a new ray source entity.
func (b PickingCameraBundle) Spawn(w donburi.World) *donburi.Entry {
	e := w.Entry(w.Create(CameraComponent, UpdatePicksComponent))
	b.Insert(e)
	return e
}
