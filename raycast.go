package picking

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

const rayEpsilon = 1e-9

// Ray is a half-line in world space. Direction is normalized when produced
// by a Camera.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// --- Hit volumes ---

// HitVolume is a pickable shape in local space. Intersect returns the ray
// parameter of the nearest hit at or in front of the origin and the surface
// normal there.
type HitVolume interface {
	Intersect(r Ray) (t float64, normal mgl64.Vec3, ok bool)
}

// HitAABB is an axis-aligned box.
type HitAABB struct {
	Min, Max mgl64.Vec3
}

// HitBox returns a box centered on the origin with the given full extents.
func HitBox(w, h, d float64) HitAABB {
	return HitAABB{
		Min: mgl64.Vec3{-w / 2, -h / 2, -d / 2},
		Max: mgl64.Vec3{w / 2, h / 2, d / 2},
	}
}

// Intersect uses the slab test. A ray starting inside the box hits its far side.
func (b HitAABB) Intersect(r Ray) (float64, mgl64.Vec3, bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	var nmin, nmax mgl64.Vec3
	for axis := 0; axis < 3; axis++ {
		o, d := r.Origin[axis], r.Direction[axis]
		if math.Abs(d) < rayEpsilon {
			if o < b.Min[axis] || o > b.Max[axis] {
				return 0, mgl64.Vec3{}, false
			}
			continue
		}
		t1 := (b.Min[axis] - o) / d
		t2 := (b.Max[axis] - o) / d
		var n1, n2 mgl64.Vec3
		n1[axis], n2[axis] = -1, 1
		if t1 > t2 {
			t1, t2 = t2, t1
			n1, n2 = n2, n1
		}
		if t1 > tmin {
			tmin, nmin = t1, n1
		}
		if t2 < tmax {
			tmax, nmax = t2, n2
		}
		if tmin > tmax {
			return 0, mgl64.Vec3{}, false
		}
	}
	if tmax < 0 {
		return 0, mgl64.Vec3{}, false
	}
	if tmin < 0 {
		return tmax, nmax.Mul(-1), true
	}
	return tmin, nmin, true
}

// HitSphere is a sphere.
type HitSphere struct {
	Center mgl64.Vec3
	Radius float64
}

// Intersect solves the ray/sphere quadratic.
func (s HitSphere) Intersect(r Ray) (float64, mgl64.Vec3, bool) {
	oc := r.Origin.Sub(s.Center)
	a := r.Direction.Dot(r.Direction)
	if a < rayEpsilon {
		return 0, mgl64.Vec3{}, false
	}
	b := 2 * r.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, mgl64.Vec3{}, false
	}
	sq := math.Sqrt(disc)
	t := (-b - sq) / (2 * a)
	if t < 0 {
		t = (-b + sq) / (2 * a)
	}
	if t < 0 {
		return 0, mgl64.Vec3{}, false
	}
	n := r.At(t).Sub(s.Center)
	if s.Radius > 0 {
		n = n.Mul(1 / s.Radius)
	}
	return t, n, true
}

// HitTriangle is a single two-sided triangle.
type HitTriangle struct {
	A, B, C mgl64.Vec3
}

// Intersect uses the Möller-Trumbore algorithm. The normal faces the ray.
func (tr HitTriangle) Intersect(r Ray) (float64, mgl64.Vec3, bool) {
	e1 := tr.B.Sub(tr.A)
	e2 := tr.C.Sub(tr.A)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < rayEpsilon {
		return 0, mgl64.Vec3{}, false
	}
	inv := 1 / det
	s := r.Origin.Sub(tr.A)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, mgl64.Vec3{}, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, mgl64.Vec3{}, false
	}
	t := e2.Dot(q) * inv
	if t < 0 {
		return 0, mgl64.Vec3{}, false
	}
	n := e1.Cross(e2).Normalize()
	if n.Dot(r.Direction) > 0 {
		n = n.Mul(-1)
	}
	return t, n, true
}

// --- Cameras ---

// Camera projects between screen space and world space.
type Camera struct {
	View       mgl64.Mat4
	Projection mgl64.Mat4
	Viewport   Rect
}

// NewPerspectiveCamera builds a camera at eye looking at center.
// fovy is in degrees.
func NewPerspectiveCamera(eye, center, up mgl64.Vec3, fovy float64, viewport Rect, near, far float64) Camera {
	aspect := 1.0
	if viewport.Height > 0 {
		aspect = viewport.Width / viewport.Height
	}
	return Camera{
		View:       mgl64.LookAtV(eye, center, up),
		Projection: mgl64.Perspective(mgl64.DegToRad(fovy), aspect, near, far),
		Viewport:   viewport,
	}
}

// ScreenRay returns the world-space ray through screen point (x, y).
// Points outside the viewport produce no ray.
func (c Camera) ScreenRay(x, y float64) (Ray, bool) {
	vp := c.Viewport
	if vp.Width <= 0 || vp.Height <= 0 || !vp.Contains(x, y) {
		return Ray{}, false
	}
	ndcX := 2*(x-vp.X)/vp.Width - 1
	ndcY := 1 - 2*(y-vp.Y)/vp.Height

	inv := c.Projection.Mul4(c.View).Inv()
	near := mgl64.TransformCoordinate(mgl64.Vec3{ndcX, ndcY, -1}, inv)
	far := mgl64.TransformCoordinate(mgl64.Vec3{ndcX, ndcY, 1}, inv)
	dir := far.Sub(near)
	if dir.Len() < rayEpsilon {
		return Ray{}, false
	}
	return Ray{Origin: near, Direction: dir.Normalize()}, true
}

// WorldToScreen projects a world point into screen coordinates. Reports
// false for points behind the camera.
func (c Camera) WorldToScreen(p mgl64.Vec3) (float64, float64, bool) {
	clip := c.Projection.Mul4(c.View).Mul4x1(p.Vec4(1))
	if clip[3] <= rayEpsilon {
		return 0, 0, false
	}
	ndcX, ndcY := clip[0]/clip[3], clip[1]/clip[3]
	vp := c.Viewport
	return vp.X + (ndcX+1)/2*vp.Width, vp.Y + (1-ndcY)/2*vp.Height, true
}

// Intersection is one ray hit on a pickable entity.
type Intersection struct {
	Entity   donburi.Entity
	Distance float64
	Position mgl64.Vec3
	Normal   mgl64.Vec3
}

// PickingCamera is a ray source. The picking stages keep its ray and
// intersections up to date; hosts read them through the accessors.
type PickingCamera struct {
	Camera Camera

	cursor  Vec2
	pending bool
	lost    bool // pointer left the window; cast with no ray
	ray     Ray
	hasRay  bool
	hits    []Intersection
}

// Ray returns the most recently built ray.
func (p *PickingCamera) Ray() (Ray, bool) {
	return p.ray, p.hasRay
}

// Cursor returns the screen position the last ray was built from.
func (p *PickingCamera) Cursor() Vec2 {
	return p.cursor
}

// Intersections returns the hits of the last cast, nearest first. The slice
// is reused on the next cast and MUST NOT be retained.
func (p *PickingCamera) Intersections() []Intersection {
	return p.hits
}

// Nearest returns the closest hit of the last cast.
func (p *PickingCamera) Nearest() (Intersection, bool) {
	if len(p.hits) == 0 {
		return Intersection{}, false
	}
	return p.hits[0], true
}

// --- Stages ---

var (
	sourceQuery   = donburi.NewQuery(filter.Contains(CameraComponent, UpdatePicksComponent))
	pickableQuery = donburi.NewQuery(filter.Contains(PickableComponent))
)

// updatePickSourcePositions applies each ray source's update policy to the
// frame's pointer snapshot and marks the sources that must cast this frame.
func updatePickSourcePositions(ctx *Context) {
	p := ctx.Pointer
	sourceQuery.Each(ctx.World, func(e *donburi.Entry) {
		cam := CameraComponent.Get(e)
		up := UpdatePicksComponent.Get(e)
		switch up.Mode {
		case UpdateOnPointerEvent:
			switch {
			case p.Present && (p.Moved || p.JustPressed || p.JustReleased):
				cam.cursor = Vec2{p.X, p.Y}
				cam.pending, cam.lost = true, false
			case !p.Present && !cam.lost:
				// Leaving the window is an event too: the next cast clears
				// the hits.
				cam.pending, cam.lost = true, true
			default:
				cam.pending = false
			}
		default:
			if p.Present {
				up.Cursor = Vec2{p.X, p.Y}
			}
			cam.cursor = up.Cursor
			cam.pending, cam.lost = true, false
		}
	})
}

// buildRays unprojects the cursor of every pending source.
func buildRays(ctx *Context) {
	sourceQuery.Each(ctx.World, func(e *donburi.Entry) {
		cam := CameraComponent.Get(e)
		if !cam.pending {
			return
		}
		if cam.lost {
			cam.ray, cam.hasRay = Ray{}, false
			return
		}
		cam.ray, cam.hasRay = cam.Camera.ScreenRay(cam.cursor.X, cam.cursor.Y)
	})
}

// updateRaycast intersects every pending source's ray with every pickable
// entity and stores the hits nearest first.
func updateRaycast(ctx *Context) {
	sourceQuery.Each(ctx.World, func(e *donburi.Entry) {
		cam := CameraComponent.Get(e)
		if !cam.pending {
			return
		}
		cam.pending = false
		cam.hits = cam.hits[:0]
		if !cam.hasRay {
			return
		}
		ray := cam.ray
		pickableQuery.Each(ctx.World, func(pe *donburi.Entry) {
			if hit, ok := intersectEntity(pe, ray); ok {
				cam.hits = append(cam.hits, hit)
			}
		})
		sort.SliceStable(cam.hits, func(i, j int) bool {
			return cam.hits[i].Distance < cam.hits[j].Distance
		})
	})
}

// intersectEntity tests a world ray against an entity's volume, moving the
// ray into the entity's local space when it has a Transform.
func intersectEntity(e *donburi.Entry, ray Ray) (Intersection, bool) {
	mesh := PickableComponent.Get(e)
	if mesh.Volume == nil {
		return Intersection{}, false
	}
	if !e.HasComponent(TransformComponent) {
		t, n, ok := mesh.Volume.Intersect(ray)
		if !ok {
			return Intersection{}, false
		}
		return Intersection{Entity: e.Entity(), Distance: t, Position: ray.At(t), Normal: n}, true
	}

	world := TransformComponent.Get(e).World
	inv := world.Inv()
	local := Ray{
		Origin:    mgl64.TransformCoordinate(ray.Origin, inv),
		Direction: mgl64.TransformNormal(ray.Direction, inv),
	}
	// local.Direction is not renormalized, so t is already a world distance.
	t, n, ok := mesh.Volume.Intersect(local)
	if !ok {
		return Intersection{}, false
	}
	wn := mgl64.TransformNormal(n, inv.Transpose())
	if wn.Len() > rayEpsilon {
		wn = wn.Normalize()
	}
	return Intersection{Entity: e.Entity(), Distance: t, Position: ray.At(t), Normal: wn}, true
}
