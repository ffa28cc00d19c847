package circulation

import "github.com/katalvlaran/mincostflow/flow/internal/residual"

// pushRelabelMaxFlow is a generic FIFO push-relabel maximum flow, grounded
// on other_examples' flownet Graph.PushRelabel (discharge/relabel/push over
// capacity+preflow arrays), adapted here to residual.Graph's arc-pair
// representation and scoped to s/t only (cost is not considered: this is a
// pure feasibility max-flow, not the cost-scaling solver).
func pushRelabelMaxFlow(g *residual.Graph, s, t int) int64 {
	n := g.NumVertices()
	label := make([]int, n)
	excess := make([]int64, n)
	label[s] = n

	// Saturate every arc out of s to build the initial preflow.
	for _, e := range g.OutEdges(s) {
		arc := int(e)
		if c := g.Cap(arc); c > 0 {
			v := g.Head(arc)
			g.Push(arc, c)
			excess[s] -= c
			excess[v] += c
		}
	}

	active := make([]int, 0, n)
	queued := make([]bool, n)
	for v := 0; v < n; v++ {
		if v != s && v != t && excess[v] > 0 {
			active = append(active, v)
			queued[v] = true
		}
	}

	enqueue := func(v int) {
		if v != s && v != t && !queued[v] {
			active = append(active, v)
			queued[v] = true
		}
	}

	for len(active) > 0 {
		u := active[0]
		active = active[1:]
		queued[u] = false
		discharge(g, u, label, excess, enqueue)
	}

	return excess[t]
}

func discharge(g *residual.Graph, u int, label []int, excess []int64, enqueue func(int)) {
	out := g.OutEdges(u)
	for excess[u] > 0 {
		arc, ok := g.CurrentArc(u)
		if !ok {
			relabel(g, u, out, label)
			g.ResetCursor(u)
			continue
		}
		v := g.Head(arc)
		if g.Cap(arc) > 0 && label[u] == label[v]+1 {
			delta := excess[u]
			if c := g.Cap(arc); c < delta {
				delta = c
			}
			g.Push(arc, delta)
			excess[u] -= delta
			excess[v] += delta
			if excess[v] > 0 {
				enqueue(v)
			}
		} else {
			g.AdvanceCursor(u)
		}
	}
}

func relabel(g *residual.Graph, u int, out []int32, label []int) {
	minLabel := int(^uint(0) >> 1) // math.MaxInt
	for _, e := range out {
		arc := int(e)
		if g.Cap(arc) > 0 {
			if l := label[g.Head(arc)]; l < minLabel {
				minLabel = l
			}
		}
	}
	if minLabel < int(^uint(0)>>1) {
		label[u] = minLabel + 1
	}
}
