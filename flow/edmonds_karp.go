package flow

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/mincostflow/core"
	"github.com/katalvlaran/mincostflow/flow/internal/residual"
)

// EdmondsKarp computes the maximum flow from source to sink using BFS for
// shortest (fewest-arcs) augmenting paths.
//
// It returns:
//   - maxFlow       : total flow value
//   - residualGraph : residual-capacity graph after flow
//   - err           : ErrSourceNotFound, ErrSinkNotFound, EdgeError (negative
//     capacity), or context cancellation
//
// Complexity: O(V * E^2). Memory: O(V + E).
func EdmondsKarp(ctx context.Context, g *core.Graph, source, sink string, opts *FlowOptions) (maxFlow int64, residualGraph *core.Graph, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	verbose := opts != nil && opts.Verbose

	if !g.HasVertex(source) {
		return 0, nil, ErrSourceNotFound
	}
	if !g.HasVertex(sink) {
		return 0, nil, ErrSinkNotFound
	}

	net, index, ids, err := buildMaxFlowNetwork(g)
	if err != nil {
		return 0, nil, err
	}
	s, t := index[source], index[sink]

	for {
		select {
		case <-ctx.Done():
			return maxFlow, nil, ctx.Err()
		default:
		}

		path, bottleneck := bfsAugmentingPath(net, s, t)
		if path == nil {
			break
		}
		for _, e := range path {
			net.Push(e, bottleneck)
		}
		maxFlow += bottleneck
		if verbose {
			fmt.Printf("EdmondsKarp: augmented %d, total %d\n", bottleneck, maxFlow)
		}
	}

	return maxFlow, buildResidualCoreGraph(net, ids), nil
}

// bfsAugmentingPath finds the shortest (fewest-arc) s->t path with positive
// residual capacity, returning the arcs on the path (sink-to-source order is
// irrelevant to the caller, which only pushes each of them) and their
// bottleneck. Returns a nil path if t is unreachable.
func bfsAugmentingPath(net *residual.Graph, s, t int) ([]int, int64) {
	parentArc := make([]int, net.NumVertices())
	visited := make([]bool, net.NumVertices())
	for i := range parentArc {
		parentArc[i] = -1
	}
	visited[s] = true
	queue := []int{s}
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		if u == t {
			break
		}
		for _, e32 := range net.OutEdges(u) {
			e := int(e32)
			v := net.Head(e)
			if net.Cap(e) > 0 && !visited[v] {
				visited[v] = true
				parentArc[v] = e
				queue = append(queue, v)
			}
		}
	}
	if !visited[t] {
		return nil, 0
	}

	var path []int
	bottleneck := int64(math.MaxInt64)
	for v := t; v != s; {
		e := parentArc[v]
		if net.Cap(e) < bottleneck {
			bottleneck = net.Cap(e)
		}
		path = append(path, e)
		v = net.Tail(e)
	}
	return path, bottleneck
}
