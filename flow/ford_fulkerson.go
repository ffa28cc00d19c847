package flow

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/mincostflow/core"
	"github.com/katalvlaran/mincostflow/flow/internal/residual"
)

// FordFulkerson computes the maximum flow from source to sink by repeatedly
// finding any path in the residual network with positive capacity (plain
// DFS, no shortest-path guarantee) and augmenting along it until none
// remains.
//
// Use FordFulkerson when a straightforward max-flow implementation over
// integral capacities suffices; EdmondsKarp and Dinic give stronger
// worst-case bounds.
//
// Complexity: O(E * maxFlow). Memory: O(V + E).
//
// Returns:
//   - maxFlow       : the total flow value found
//   - residualGraph : residual capacities after flow
//   - err           : ErrSourceNotFound, ErrSinkNotFound, EdgeError (negative
//     capacity), or context cancellation
func FordFulkerson(ctx context.Context, g *core.Graph, source, sink string, opts *FlowOptions) (maxFlow int64, residualGraph *core.Graph, err error) {
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
		visited := make([]bool, net.NumVertices())
		path, flow := dfsFindPath(net, s, t, visited, math.MaxInt64)
		if path == nil {
			break // no more augmenting path
		}
		for _, e := range path {
			net.Push(e, flow)
		}
		maxFlow += flow
		if verbose {
			fmt.Printf("FordFulkerson: augmented %d, total %d\n", flow, maxFlow)
		}
		if err = ctx.Err(); err != nil {
			return maxFlow, nil, err
		}
	}

	return maxFlow, buildResidualCoreGraph(net, ids), nil
}

// dfsFindPath performs a DFS in the residual graph to locate any s->t path
// with positive capacity, returning the arcs on the path in source-to-sink
// order and the path's bottleneck. Returns a nil path if none found.
func dfsFindPath(net *residual.Graph, u, sink int, visited []bool, available int64) ([]int, int64) {
	if u == sink {
		return []int{}, available
	}
	visited[u] = true
	for _, e32 := range net.OutEdges(u) {
		e := int(e32)
		v := net.Head(e)
		cap := net.Cap(e)
		if visited[v] || cap <= 0 {
			continue
		}
		b := available
		if cap < b {
			b = cap
		}
		path, flow := dfsFindPath(net, v, sink, visited, b)
		if path != nil {
			return append([]int{e}, path...), flow
		}
	}
	return nil, 0
}
