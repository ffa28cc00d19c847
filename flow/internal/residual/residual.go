// Package residual implements the dense-index residual graph shared by the
// max-flow clients (flow.Dinic, flow.EdmondsKarp, flow.FordFulkerson) and the
// cost-scaling minimum-cost flow core (flow/internal/costscale).
//
// Vertices are dense integers [0,n). Arcs are always allocated in
// forward/reverse pairs: arc 2k is the forward member of pair k, arc 2k+1 is
// its reverse twin, so Twin(e) is simply e^1. Self-loops (From == To in the
// caller's original graph) never enter this structure's out-edge lists: they
// are tracked on the side via AddSelfLoop/SelfLoops, since a loop can never
// affect a vertex's flow balance and the cost-scaling discharge/global-update
// /refine passes must never walk one.
package residual

// SelfLoop records a self-edge from the caller's original graph, kept aside
// from the arc arrays below.
type SelfLoop struct {
	Vertex       int
	Capacity     int64
	Cost         int64 // pre-scaled, same units as Graph.Cost
	OriginalEdge int   // sentinel -1 for a synthetic loop (never produced by reductions today, kept for symmetry)
}

// Graph is the residual network: a flat set of arcs over n dense vertices.
type Graph struct {
	n int

	head     []int64 // head[e]: arc e's target vertex
	cap      []int64 // residual capacity of arc e
	pairCap  []int64 // capacity(e) + capacity(twin(e)) split point: the pair's original forward capacity, mirrored on both slots
	cost     []int64 // cost[e] == -cost[twin(e)]
	origEdge []int64 // sentinel -1 for synthetic arcs ("no original edge" — open question (b))

	out    [][]int32 // out[v]: arc indices with tail v, insertion order
	cursor []int32   // per-vertex current-arc cursor, an offset into out[v]

	selfLoops []SelfLoop
}

// New allocates a residual graph over n dense vertices with no arcs yet.
func New(n int) *Graph {
	return &Graph{
		n:      n,
		out:    make([][]int32, n),
		cursor: make([]int32, n),
	}
}

// NumVertices reports n.
func (g *Graph) NumVertices() int { return g.n }

// NumArcs reports the number of arcs allocated so far (always even).
func (g *Graph) NumArcs() int { return len(g.head) }

// Twin returns the paired arc index.
func (g *Graph) Twin(e int) int { return e ^ 1 }

// IsOriginal reports whether e is the forward member of its pair. Forward
// arcs are always even-indexed by construction.
func (g *Graph) IsOriginal(e int) bool { return e%2 == 0 }

// Head returns e's target vertex.
func (g *Graph) Head(e int) int { return int(g.head[e]) }

// Tail returns e's source vertex, derived as the head of its twin.
func (g *Graph) Tail(e int) int { return int(g.head[g.Twin(e)]) }

// Cap returns e's residual capacity.
func (g *Graph) Cap(e int) int64 { return g.cap[e] }

// Cost returns e's (pre-scaled) cost.
func (g *Graph) Cost(e int) int64 { return g.cost[e] }

// OriginalEdge returns the caller-supplied original edge index for e, or -1
// if e belongs to a synthetic pair introduced by a reduction.
func (g *Graph) OriginalEdge(e int) int { return int(g.origEdge[e]) }

// OriginalCapacity returns the pair's total capacity (the original edge's
// declared capacity), available from either arc of the pair.
func (g *Graph) OriginalCapacity(e int) int64 { return g.pairCap[e] }

// Flow returns the flow currently carried across arc e's pair, valid for
// either member of the pair: capacity(e) - residualCapacity(forward member).
func (g *Graph) Flow(e int) int64 {
	if g.IsOriginal(e) {
		return g.pairCap[e] - g.cap[e]
	}
	return g.cap[e]
}

// AddArcPair inserts a forward arc u->v with the given capacity and
// pre-scaled cost, plus its reverse twin v->u with zero capacity and negated
// cost. originalEdge is the caller's edge index, or -1 for a synthetic arc.
// Panics on a self-loop: use AddSelfLoop instead (design decision (c)).
func (g *Graph) AddArcPair(u, v int, capacity, cost int64, originalEdge int) (fwd, rev int) {
	if u == v {
		panic("residual: AddArcPair called with u == v; use AddSelfLoop")
	}
	fwd = len(g.head)
	rev = fwd + 1
	g.head = append(g.head, int64(v), int64(u))
	g.cap = append(g.cap, capacity, 0)
	g.pairCap = append(g.pairCap, capacity, capacity)
	g.cost = append(g.cost, cost, -cost)
	g.origEdge = append(g.origEdge, int64(originalEdge), int64(originalEdge))
	g.out[u] = append(g.out[u], int32(fwd))
	g.out[v] = append(g.out[v], int32(rev))
	return fwd, rev
}

// AddSelfLoop records a self-edge without adding it to any vertex's
// out-edge iteration list.
func (g *Graph) AddSelfLoop(v int, capacity, cost int64, originalEdge int) {
	g.selfLoops = append(g.selfLoops, SelfLoop{Vertex: v, Capacity: capacity, Cost: cost, OriginalEdge: originalEdge})
}

// SelfLoops returns the recorded self-edges, in insertion order.
func (g *Graph) SelfLoops() []SelfLoop { return g.selfLoops }

// Push moves delta units of residual capacity from e to its twin, i.e.
// routes delta units of flow across e.
func (g *Graph) Push(e int, delta int64) {
	g.cap[e] -= delta
	g.cap[g.Twin(e)] += delta
}

// OutEdges returns v's out-arcs in insertion order. The slice must not be
// mutated by callers.
func (g *Graph) OutEdges(v int) []int32 { return g.out[v] }

// ResetCursor rewinds v's current-arc cursor to the start of its out-edge
// list. Any potential change at v invalidates the admissibility of arcs
// already scanned past, so every potential update resets the cursor.
func (g *Graph) ResetCursor(v int) { g.cursor[v] = 0 }

// CurrentArc returns the arc at v's cursor position without advancing it, or
// ok=false once the cursor has scanned past the end of v's out-edge list.
func (g *Graph) CurrentArc(v int) (arc int, ok bool) {
	out := g.out[v]
	c := g.cursor[v]
	if int(c) >= len(out) {
		return 0, false
	}
	return int(out[c]), true
}

// AdvanceCursor moves v's cursor to the next out-arc.
func (g *Graph) AdvanceCursor(v int) { g.cursor[v]++ }
