// Package costscale implements the cost-scaling push-relabel minimum-cost
// flow core: the epsilon-scaling outer loop (C4), partial-augmentation
// discharge (C5), global update (C6), and potential refinement with
// topological cycle canceling (C7).
//
// The solver consumes a residual.Graph that already carries a feasible
// circulation (built by flow/internal/circulation and flow/reductions.go)
// and costs pre-multiplied by Alpha*n, and refines it in place into a
// minimum-cost circulation.
package costscale

import "github.com/katalvlaran/mincostflow/flow/internal/residual"

// Alpha is the cost-scaling factor (epsilon shrinks by this much each
// round) and also the rank-bucket upper-bound multiplier (rankUpperBound =
// Alpha * |V|).
const Alpha = 16

// MaxAugmentPathLength bounds the length of a single partial-augmentation
// path built by discharge before it is forced to push.
const MaxAugmentPathLength = 4

// Solver holds all per-vertex state for one cost-scaling run: the
// potentials and excesses of the Goldberg-Tarjan algorithm, plus the active
// vertex queue and scratch buffers reused across discharge/refine calls.
type Solver struct {
	g   *residual.Graph
	n   int
	eps int64

	potential []int64
	excess    []int64

	active       []int
	queued       []bool
	relabelCount int
	epsIter      int
	cadence      int

	// scratch buffers, reused across discharge/refine calls to avoid
	// reallocating on every vertex processed
	pathBuf  []arcStep
	onPath   []bool
	colorBuf []int
	frameBuf []frame
	pathBuf2 []int
	rankBuf  []int64

	selfLoopFlow []SelfLoopFlowEntry
}

// New builds a solver over a residual graph whose costs are already
// pre-scaled by Alpha*n and whose initial residual capacities encode a
// feasible circulation (excess[v] == 0 for every v).
func New(g *residual.Graph, n int) *Solver {
	return &Solver{
		g:         g,
		n:         n,
		cadence:   n,
		potential: make([]int64, n),
		excess:    make([]int64, n),
		queued:    make([]bool, n),
		onPath:    make([]bool, n),
		colorBuf:  make([]int, n),
		rankBuf:   make([]int64, n),
	}
}

// SetGlobalUpdateCadence overrides the number of relabels between two
// global-update passes (C6). cadence <= 0 is ignored.
func (s *Solver) SetGlobalUpdateCadence(cadence int) {
	if cadence > 0 {
		s.cadence = cadence
	}
}

// Solve runs the full epsilon-scaling loop to completion. After it returns,
// every original arc's Flow() reflects a minimum-cost circulation and every
// vertex's residual out-arcs are 0-optimal (eps == 0).
func (s *Solver) Solve() {
	s.eps = s.initialEpsilon()
	for s.eps >= 1 {
		refined := s.epsIter >= 2 && s.refine()
		if !refined {
			s.saturateNegativeReducedCost()
			s.enqueueAllActive()
			s.runActiveLoop()
		}
		s.epsIter++
		if s.eps == 1 {
			s.eps = 0
			break
		}
		next := s.eps / Alpha
		if next < 1 {
			next = 1
		}
		s.eps = next
	}
	s.saturateSelfLoops()
}

// initialEpsilon returns the largest magnitude of any original arc's
// (already-scaled) cost, per the standard cost-scaling starting bound.
func (s *Solver) initialEpsilon() int64 {
	var maxAbs int64
	for e := 0; e < s.g.NumArcs(); e++ {
		if !s.g.IsOriginal(e) {
			continue
		}
		c := s.g.Cost(e)
		if c < 0 {
			c = -c
		}
		if c > maxAbs {
			maxAbs = c
		}
	}
	for _, sl := range s.g.SelfLoops() {
		c := sl.Cost
		if c < 0 {
			c = -c
		}
		if c > maxAbs {
			maxAbs = c
		}
	}
	if maxAbs == 0 {
		return 0
	}
	eps := maxAbs
	return eps
}

func (s *Solver) reducedCost(e int) int64 {
	return s.g.Cost(e) + s.potential[s.g.Tail(e)] - s.potential[s.g.Head(e)]
}

// saturateNegativeReducedCost pushes full residual capacity across every
// arc whose reduced cost is strictly negative, creating the excess that the
// active loop then redistributes.
func (s *Solver) saturateNegativeReducedCost() {
	for u := 0; u < s.n; u++ {
		for _, e32 := range s.g.OutEdges(u) {
			e := int(e32)
			if cap := s.g.Cap(e); cap > 0 && s.reducedCost(e) < 0 {
				v := s.g.Head(e)
				s.g.Push(e, cap)
				s.excess[u] -= cap
				s.excess[v] += cap
			}
		}
	}
}

func (s *Solver) enqueueAllActive() {
	s.active = s.active[:0]
	for v := 0; v < s.n; v++ {
		s.queued[v] = false
	}
	for v := 0; v < s.n; v++ {
		if s.excess[v] > 0 {
			s.enqueue(v)
		}
	}
}

func (s *Solver) enqueue(v int) {
	if !s.queued[v] {
		s.active = append(s.active, v)
		s.queued[v] = true
	}
}

func (s *Solver) runActiveLoop() {
	for len(s.active) > 0 {
		u := s.active[0]
		s.active = s.active[1:]
		s.queued[u] = false
		if s.excess[u] <= 0 {
			continue
		}
		s.discharge(u)
		if s.relabelCount >= s.cadence {
			s.globalUpdate()
			s.relabelCount = 0
		}
	}
}

// saturateSelfLoops applies open-question decision (c): negative-cost
// self-edges never participate in discharge/global-update/refine; once the
// scaling loop has produced a 0-optimal circulation, any self-loop with
// negative cost is saturated (it can only reduce total cost further, and a
// loop never perturbs any vertex's flow balance).
func (s *Solver) saturateSelfLoops() {
	for _, sl := range s.g.SelfLoops() {
		if sl.Cost < 0 {
			s.selfLoopFlow = append(s.selfLoopFlow, SelfLoopFlowEntry{OriginalEdge: sl.OriginalEdge, Flow: sl.Capacity})
		} else {
			s.selfLoopFlow = append(s.selfLoopFlow, SelfLoopFlowEntry{OriginalEdge: sl.OriginalEdge, Flow: 0})
		}
	}
}

type SelfLoopFlowEntry struct {
	OriginalEdge int
	Flow         int64
}

// SelfLoopFlow returns the flow assigned to each self-loop by the final
// post-processing step, keyed by original edge index.
func (s *Solver) SelfLoopFlow() []SelfLoopFlowEntry { return s.selfLoopFlow }

// Potential returns vertex v's final potential, descaled by the caller
// (the solver works entirely in Alpha*n-scaled cost units).
func (s *Solver) Potential(v int) int64 { return s.potential[v] }
