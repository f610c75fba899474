package picking

import (
	"errors"
	"fmt"
	"strings"
)

// StageLabel names a stage so other stages can order themselves around it.
type StageLabel string

// Labels of the built-in stages.
const (
	StageUpdatePickSourcePositions StageLabel = "update_pick_source_positions"
	StageBuildRays                 StageLabel = "build_rays"
	StageUpdateRaycast             StageLabel = "update_raycast"
	StagePauseForBlockers          StageLabel = "pause_for_blockers"
	StageFocus                     StageLabel = "focus"
	StageSelection                 StageLabel = "selection"
	StageCaptureInitialMaterial    StageLabel = "capture_initial_material"
	StageHighlighting              StageLabel = "highlighting"
	StageEvents                    StageLabel = "events"
	StageDebugCursor               StageLabel = "debug_cursor"
	StageDebugEvents               StageLabel = "debug_events"
)

var (
	ErrStageCycle     = errors.New("picking: stage dependency cycle")
	ErrDuplicateStage = errors.New("picking: duplicate stage label")
	ErrNilStage       = errors.New("picking: stage has no run function")
	ErrScheduleBuilt  = errors.New("picking: schedule already built")
)

// Stage is a named, orderable unit of per-frame work.
//
// Before and After are declarative constraints. A constraint naming a label
// that no registered stage carries is ignored, so a host can leave out a
// whole plugin without breaking the stages that mention it.
type Stage struct {
	Label StageLabel
	Run   func(*Context)
	// RunIf is evaluated by the schedule each frame. A nil RunIf always runs.
	RunIf  func(*Context) bool
	Before []StageLabel
	After  []StageLabel
}

// Schedule resolves stage constraints into a single execution order.
type Schedule struct {
	stages []Stage
	index  map[StageLabel]int
	order  []int
	built  bool
}

// NewSchedule creates an empty schedule.
func NewSchedule() *Schedule {
	return &Schedule{index: make(map[StageLabel]int)}
}

// Add registers a stage. Stages cannot be added after Build.
func (s *Schedule) Add(st Stage) error {
	if s.built {
		return ErrScheduleBuilt
	}
	if st.Run == nil {
		return fmt.Errorf("%w: %q", ErrNilStage, st.Label)
	}
	if _, ok := s.index[st.Label]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateStage, st.Label)
	}
	s.index[st.Label] = len(s.stages)
	s.stages = append(s.stages, st)
	return nil
}

// Build sorts the registered stages topologically. Among stages that are
// ready at the same time, the one registered first runs first, so the order
// is deterministic for a given registration sequence.
func (s *Schedule) Build() error {
	if s.built {
		return ErrScheduleBuilt
	}
	n := len(s.stages)
	adj := make([][]int, n)
	indeg := make([]int, n)
	seen := make(map[[2]int]bool)
	addEdge := func(from, to int) {
		key := [2]int{from, to}
		if seen[key] {
			return
		}
		seen[key] = true
		adj[from] = append(adj[from], to)
		indeg[to]++
	}
	for i, st := range s.stages {
		for _, b := range st.Before {
			if j, ok := s.index[b]; ok {
				addEdge(i, j)
			}
		}
		for _, a := range st.After {
			if j, ok := s.index[a]; ok {
				addEdge(j, i)
			}
		}
	}

	order := make([]int, 0, n)
	done := make([]bool, n)
	for len(order) < n {
		next := -1
		for i := 0; i < n; i++ {
			if !done[i] && indeg[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			var stuck []string
			for i := 0; i < n; i++ {
				if !done[i] {
					stuck = append(stuck, string(s.stages[i].Label))
				}
			}
			return fmt.Errorf("%w among: %s", ErrStageCycle, strings.Join(stuck, ", "))
		}
		done[next] = true
		order = append(order, next)
		for _, j := range adj[next] {
			indeg[j]--
		}
	}
	s.order = order
	s.built = true
	return nil
}

// Built reports whether Build has succeeded.
func (s *Schedule) Built() bool {
	return s.built
}

// Order returns the labels in execution order. Empty until Build succeeds.
func (s *Schedule) Order() []StageLabel {
	labels := make([]StageLabel, len(s.order))
	for i, idx := range s.order {
		labels[i] = s.stages[idx].Label
	}
	return labels
}

// Run executes one frame. Each stage runs to completion before the next
// starts; a stage whose RunIf reports false is skipped.
func (s *Schedule) Run(ctx *Context) {
	for _, idx := range s.order {
		st := &s.stages[idx]
		if st.RunIf != nil && !st.RunIf(ctx) {
			continue
		}
		st.Run(ctx)
	}
}
