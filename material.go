package picking

import (
	"errors"
	"fmt"
)

// MaterialHandle is an opaque reference to a material owned by a
// MaterialStore. The zero handle refers to no material.
type MaterialHandle uint32

// NoMaterial is the zero handle.
const NoMaterial MaterialHandle = 0

// Valid reports whether h refers to a material.
func (h MaterialHandle) Valid() bool {
	return h != NoMaterial
}

// Material is the renderer-facing description of a surface. The pipeline
// never looks inside it; only handles flow through the stages.
type Material struct {
	Color Color
}

var (
	ErrNoMaterialStore = errors.New("picking: no material store")
	ErrMaterialCreate  = errors.New("picking: material store failed to create material")
	ErrUnknownMaterial = errors.New("picking: unknown material handle")
)

// MaterialStore owns material resources by handle.
type MaterialStore interface {
	Add(m Material) (MaterialHandle, error)
	Get(h MaterialHandle) (Material, bool)
}

// MaterialAssets is an in-memory MaterialStore. Handles are issued
// sequentially starting at 1. A nil *MaterialAssets is an empty store that
// refuses to add materials.
type MaterialAssets struct {
	materials []Material
}

// NewMaterialAssets creates an empty store.
func NewMaterialAssets() *MaterialAssets {
	return &MaterialAssets{}
}

// Add stores m and returns its handle.
func (a *MaterialAssets) Add(m Material) (MaterialHandle, error) {
	if a == nil {
		return NoMaterial, ErrNoMaterialStore
	}
	a.materials = append(a.materials, m)
	return MaterialHandle(len(a.materials)), nil
}

// MustAdd is Add for stores that cannot fail, convenient in scene setup.
func (a *MaterialAssets) MustAdd(m Material) MaterialHandle {
	h, _ := a.Add(m)
	return h
}

// Get returns the material behind h.
func (a *MaterialAssets) Get(h MaterialHandle) (Material, bool) {
	if a == nil || !h.Valid() || int(h) > len(a.materials) {
		return Material{}, false
	}
	return a.materials[h-1], true
}

// Set replaces the material behind an existing handle.
func (a *MaterialAssets) Set(h MaterialHandle, m Material) error {
	if a == nil || !h.Valid() || int(h) > len(a.materials) {
		return fmt.Errorf("%w: %d", ErrUnknownMaterial, h)
	}
	a.materials[h-1] = m
	return nil
}

// Len returns the number of stored materials.
func (a *MaterialAssets) Len() int {
	if a == nil {
		return 0
	}
	return len(a.materials)
}

// Default fallback colors.
var (
	DefaultHoveredColor  = RGB(0.35, 0.35, 0.35)
	DefaultPressedColor  = RGB(0.35, 0.75, 0.35)
	DefaultSelectedColor = RGB(0.35, 0.35, 0.75)
)

// GlobalHighlightMaterials are the fallbacks used when an entity has no
// override for a state. Created once when the highlight plugin is built.
type GlobalHighlightMaterials struct {
	Hovered  MaterialHandle
	Pressed  MaterialHandle
	Selected MaterialHandle
}

// NewGlobalHighlightMaterials creates the default fallback materials in store.
func NewGlobalHighlightMaterials(store MaterialStore) (GlobalHighlightMaterials, error) {
	if store == nil {
		return GlobalHighlightMaterials{}, ErrNoMaterialStore
	}
	var g GlobalHighlightMaterials
	for _, m := range []struct {
		dst   *MaterialHandle
		color Color
		name  string
	}{
		{&g.Hovered, DefaultHoveredColor, "hovered"},
		{&g.Pressed, DefaultPressedColor, "pressed"},
		{&g.Selected, DefaultSelectedColor, "selected"},
	} {
		h, err := store.Add(Material{Color: m.color})
		if err != nil {
			return GlobalHighlightMaterials{}, fmt.Errorf("%w (%s): %w", ErrMaterialCreate, m.name, err)
		}
		if !h.Valid() {
			return GlobalHighlightMaterials{}, fmt.Errorf("%w (%s): zero handle", ErrMaterialCreate, m.name)
		}
		*m.dst = h
	}
	return g, nil
}
