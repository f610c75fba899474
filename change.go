package picking

import "github.com/yohamta/donburi"

// snapshots remembers the last observed value of some per-entity state so a
// stage can act only on entities whose state changed. For an entity seen for
// the first time the previous value is the zero value, which is the default
// state a freshly spawned pickable starts in.
type snapshots[V comparable] struct {
	m       map[donburi.Entity]stamped[V]
	visited int
}

type stamped[V comparable] struct {
	v     V
	frame uint64
}

func newSnapshots[V comparable]() *snapshots[V] {
	return &snapshots[V]{m: make(map[donburi.Entity]stamped[V])}
}

// swap stores v for e and returns the previous value. seen is false the
// first time e is observed.
func (s *snapshots[V]) swap(e donburi.Entity, v V, frame uint64) (prev V, seen bool) {
	p, seen := s.m[e]
	s.m[e] = stamped[V]{v: v, frame: frame}
	s.visited++
	return p.v, seen
}

// prune forgets entities not visited during frame. Removed entities drop out
// here, so their snapshots live exactly as long as the entity does.
func (s *snapshots[V]) prune(frame uint64) {
	if s.visited < len(s.m) {
		for e, p := range s.m {
			if p.frame != frame {
				delete(s.m, e)
			}
		}
	}
	s.visited = 0
}

func (s *snapshots[V]) len() int {
	return len(s.m)
}
