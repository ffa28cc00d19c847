package flow

import (
	"math"

	"github.com/katalvlaran/mincostflow/core"
)

// CostFunc returns the signed cost of the edge identified by ID. Every edge
// of the graph passed to a min-cost entry point must have a finite cost
// under this function; LowerBoundFunc has the same shape and returns the
// mandatory lower bound on an edge's flow (0 for edges with no lower bound).
type CostFunc func(edgeID string) int64

// problem is the single-supply instance C4 consumes, after any reduction
// from (source,sink)/(sources,sinks)/lower-bound inputs (C3).
type problem struct {
	n          int
	vertexID   []string // dense index -> vertex ID, len n (synthetic indices beyond the original graph have "")
	edgeID     []string // parallel to capacity/cost/from/to, "" for synthetic edges
	from, to   []int
	capacity   []int64
	cost       []int64 // raw, unscaled
	isSelfLoop []bool
	supply     []int64
}

// buildBaseProblem maps g's string-keyed vertices/edges onto dense indices
// and reads capacity from Edge.Weight, cost from cost(edgeID). Self-loops
// (From == To) are flagged but still included in capacity/cost arrays so
// callers can find them by original edge index.
func buildBaseProblem(g *core.Graph, cost CostFunc) (*problem, map[string]int, error) {
	ids := g.Vertices()
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	edges := g.Edges()
	p := &problem{
		n:          len(ids),
		vertexID:   append([]string(nil), ids...),
		edgeID:     make([]string, len(edges)),
		from:       make([]int, len(edges)),
		to:         make([]int, len(edges)),
		capacity:   make([]int64, len(edges)),
		cost:       make([]int64, len(edges)),
		isSelfLoop: make([]bool, len(edges)),
		supply:     make([]int64, len(ids)),
	}
	for i, e := range edges {
		if e.Weight < 0 {
			return nil, nil, &SolverError{Kind: InvalidArgument, Msg: "negative capacity on edge " + e.ID}
		}
		p.edgeID[i] = e.ID
		p.from[i] = index[e.From]
		p.to[i] = index[e.To]
		p.capacity[i] = e.Weight
		if cost != nil {
			p.cost[i] = cost(e.ID)
		}
		p.isSelfLoop[i] = e.From == e.To
	}
	return p, index, nil
}

// addVertex appends a fresh synthetic vertex (no original ID) and returns
// its dense index.
func (p *problem) addVertex() int {
	idx := p.n
	p.n++
	p.vertexID = append(p.vertexID, "")
	p.supply = append(p.supply, 0)
	return idx
}

// addSyntheticArc appends a synthetic (non-original) arc.
func (p *problem) addSyntheticArc(from, to int, capacity, cost int64) {
	p.edgeID = append(p.edgeID, "")
	p.from = append(p.from, from)
	p.to = append(p.to, to)
	p.capacity = append(p.capacity, capacity)
	p.cost = append(p.cost, cost)
	p.isSelfLoop = append(p.isSelfLoop, false)
}

// sumAbsCost returns 1 + sum(|cost(e)|) over every real (non-synthetic,
// non-self-loop-exempt) arc already in p, the C_huge constant from the
// reduction's "Numeric rules", and an OVERFLOW error if it does not fit a
// signed 32-bit integer.
func sumAbsCost(p *problem) (int64, error) {
	sum := int64(1)
	for _, c := range p.cost {
		abs := c
		if abs < 0 {
			abs = -abs
		}
		if sum > math.MaxInt64-abs {
			return 0, newSolverError(Overflow, "sum of |cost| overflows int64 while computing C_huge")
		}
		sum += abs
	}
	if sum > math.MaxInt32 {
		return 0, newSolverError(Overflow, "C_huge does not fit a signed 32-bit integer")
	}
	return sum, nil
}

// totalCapacity sums every arc's capacity as a safe upper bound on any
// achievable flow value, saturating to math.MaxInt64 on overflow rather
// than failing (per "supply sums saturate to integer max on overflow").
func totalCapacity(p *problem) int64 {
	var sum int64
	for _, c := range p.capacity {
		if sum > math.MaxInt64-c {
			return math.MaxInt64
		}
		sum += c
	}
	return sum
}

// addSuperTerminals implements the (sources,sinks) -> single-supply
// reduction of §4.3: a super-source S and super-sink T, arcs S->s / t->T at
// cost -C_huge (so the solver maximizes flow through the real network
// before resorting to the network at all), and a zero-cost S<->T pair of
// huge-capacity "slack" arcs so any supply the network cannot carry still
// has somewhere to go without making the instance infeasible.
func addSuperTerminals(p *problem, sourceIdx, sinkIdx []int) error {
	cHuge, err := sumAbsCost(p)
	if err != nil {
		return err
	}
	h := totalCapacity(p)
	if h == math.MaxInt64 {
		h-- // leave headroom so S/T supply arithmetic below cannot itself overflow
	}

	s := p.addVertex()
	t := p.addVertex()

	for _, si := range sourceIdx {
		p.addSyntheticArc(s, si, h, -cHuge)
	}
	for _, ti := range sinkIdx {
		p.addSyntheticArc(ti, t, h, -cHuge)
	}
	p.addSyntheticArc(s, t, h, 0)
	p.addSyntheticArc(t, s, h, 0)

	p.supply[s] += h
	p.supply[t] -= h
	return nil
}

// applyLowerBounds implements the lower-bound transform of §4.3: every arc
// e with lower bound l(e) has its capacity reduced to capacity(e)-l(e), and
// l(e) is moved onto the vertex supply balance (from gets -l(e), to gets
// +l(e)), to be added back onto the returned flow once the reduced problem
// is solved. Returns INVALID_ARGUMENT if any arc's lower bound is negative
// or exceeds its capacity.
func applyLowerBounds(p *problem, lowerBound LowerBoundFunc) ([]int64, error) {
	baseline := make([]int64, len(p.edgeID))
	if lowerBound == nil {
		return baseline, nil
	}
	for i, id := range p.edgeID {
		if id == "" {
			continue
		}
		l := lowerBound(id)
		if l == 0 {
			continue
		}
		if l < 0 || l > p.capacity[i] {
			return nil, newSolverError(InvalidArgument, "lower bound out of range on edge "+id)
		}
		baseline[i] = l
		p.capacity[i] -= l
		p.supply[p.from[i]] -= l
		p.supply[p.to[i]] += l
	}
	return baseline, nil
}

// LowerBoundFunc returns the mandatory lower bound on an edge's flow (0 if
// none), keyed by edge ID.
type LowerBoundFunc func(edgeID string) int64
