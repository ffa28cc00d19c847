package costscale

import (
	"math"
	"strconv"
)

// arcStep is one hop on the partial-augmentation path built by discharge.
type arcStep struct {
	arc  int
	from int
	to   int
}

// discharge implements C5: it repeatedly extends an admissible path from
// start by at most MaxAugmentPathLength arcs, relabeling whenever the
// current vertex runs out of admissible out-arcs, and stopping early to
// push flow the moment it meets a vertex with negative excess or a vertex
// already on the path (an admissible cycle — canceled by pushing around it,
// same as a normal augmentation since every arc on a cycle has the same
// bottleneck semantics).
func (s *Solver) discharge(start int) {
	path := s.pathBuf[:0]
	u := start

	for {
		arc, ok := s.scanAdmissible(u)
		if ok {
			v := s.g.Head(arc)
			path = append(path, arcStep{arc: arc, from: u, to: v})
			if len(path) == MaxAugmentPathLength || s.excess[v] < 0 || s.onPath[v] {
				s.pushPath(path)
				s.clearOnPath(path)
				s.pathBuf = path[:0]
				if s.excess[start] > 0 {
					s.enqueue(start)
				}
				return
			}
			s.onPath[v] = true
			u = v
			continue
		}

		s.relabel(u, path)
		s.relabelCount++
		if u != start {
			last := path[len(path)-1]
			path = path[:len(path)-1]
			s.onPath[last.to] = false
			u = last.from
			continue
		}
		if s.excess[start] <= 0 {
			s.pathBuf = path[:0]
			return
		}
		// u == start, cursor was just reset by relabel: loop re-scans it.
	}
}

// scanAdmissible advances u's cursor past every inadmissible arc and
// returns the first admissible one found, or ok=false once u's out-edge
// list is exhausted.
func (s *Solver) scanAdmissible(u int) (arc int, ok bool) {
	for {
		a, has := s.g.CurrentArc(u)
		if !has {
			return 0, false
		}
		if s.g.Cap(a) > 0 && s.reducedCost(a) < 0 {
			return a, true
		}
		s.g.AdvanceCursor(u)
	}
}

// relabel raises u's potential just enough to make at least one residual
// out-arc of u admissible again. The minimum considered also includes the
// reverse of the arc that led onto the path (if any), even though that twin
// currently has zero residual capacity: it is the arc that becomes
// available the instant pushPath runs, and folding it into the minimum here
// keeps the vertex we just backed away from from immediately re-triggering
// another relabel on the next visit.
func (s *Solver) relabel(u int, path []arcStep) {
	delta := int64(math.MaxInt64)
	for _, e32 := range s.g.OutEdges(u) {
		e := int(e32)
		if s.g.Cap(e) <= 0 {
			continue
		}
		if rc := s.reducedCost(e); rc < delta {
			delta = rc
		}
	}
	if n := len(path); n > 0 {
		twin := s.g.Twin(path[n-1].arc)
		if rc := s.reducedCost(twin); rc < delta {
			delta = rc
		}
	}
	if delta == math.MaxInt64 {
		panic("costscale: relabel found no residual out-arc at vertex " + strconv.Itoa(u))
	}
	s.potential[u] -= delta + s.eps
	s.g.ResetCursor(u)
}

// pushPath sends the bottleneck amount of flow along the arcs accumulated
// in path, updating excess at both ends of every hop and re-activating any
// vertex that just transitioned from non-positive to positive excess.
func (s *Solver) pushPath(path []arcStep) {
	if len(path) == 0 {
		return
	}
	delta := s.excess[path[0].from]
	for _, step := range path {
		if c := s.g.Cap(step.arc); c < delta {
			delta = c
		}
	}
	for _, step := range path {
		s.g.Push(step.arc, delta)
		s.excess[step.from] -= delta
		s.excess[step.to] += delta
		if s.excess[step.to] > 0 && s.excess[step.to] <= delta {
			s.enqueue(step.to)
		}
	}
}

func (s *Solver) clearOnPath(path []arcStep) {
	for _, step := range path {
		s.onPath[step.to] = false
	}
}
