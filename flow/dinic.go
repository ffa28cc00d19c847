package flow

import (
	"fmt"
	"math"

	"github.com/katalvlaran/mincostflow/core"
	"github.com/katalvlaran/mincostflow/flow/internal/residual"
)

// Dinic computes the maximum flow from source to sink in g using Dinic's
// algorithm (BFS level graph + DFS blocking flow), operating on the same
// dense residual.Graph the minimum-cost solver uses.
//
// It returns:
//   - maxFlow       : the total flow value
//   - residualGraph : a *core.Graph of remaining residual capacities
//   - err           : ErrSourceNotFound, ErrSinkNotFound, EdgeError (negative
//     capacity), or context cancellation
//
// Complexity:
//
//	Time:   O(V^2 * E) in general; O(E*sqrt(V)) on unit-capacity networks.
//	Memory: O(V + E).
func Dinic(g *core.Graph, source, sink string, opts FlowOptions) (maxFlow int64, residualGraph *core.Graph, err error) {
	opts.normalize()
	ctx := opts.Ctx

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

	level := make([]int, net.NumVertices())
	queue := make([]int, 0, net.NumVertices())
	iter := make([]int32, net.NumVertices())

	augmentCount := 0
	for {
		if err = ctx.Err(); err != nil {
			return maxFlow, nil, err
		}

		// BFS: compute the level graph rooted at s.
		for v := range level {
			level[v] = -1
		}
		level[s] = 0
		queue = queue[:0]
		queue = append(queue, s)
		for i := 0; i < len(queue); i++ {
			u := queue[i]
			for _, e32 := range net.OutEdges(u) {
				e := int(e32)
				v := net.Head(e)
				if net.Cap(e) > 0 && level[v] < 0 {
					level[v] = level[u] + 1
					queue = append(queue, v)
				}
			}
		}
		if level[t] < 0 {
			break // sink unreachable: maxFlow found
		}

		for v := range iter {
			iter[v] = 0
		}
		for {
			if err = ctx.Err(); err != nil {
				return maxFlow, nil, err
			}
			pushed := dinicBlockingPush(net, level, iter, s, t, math.MaxInt64)
			if pushed == 0 {
				break
			}
			maxFlow += pushed
			augmentCount++
			if opts.Verbose {
				fmt.Printf("Dinic: pushed %d, total %d\n", pushed, maxFlow)
			}
			if opts.LevelRebuildInterval > 0 && augmentCount%opts.LevelRebuildInterval == 0 {
				break
			}
		}
	}

	return maxFlow, buildResidualCoreGraph(net, ids), nil
}

// dinicBlockingPush pushes one DFS augmenting path through the level graph
// computed by Dinic, advancing each vertex's iter cursor past arcs that lead
// nowhere so the next call never rescans them.
func dinicBlockingPush(net *residual.Graph, level []int, iter []int32, u, sink int, available int64) int64 {
	if u == sink {
		return available
	}
	out := net.OutEdges(u)
	for ; int(iter[u]) < len(out); iter[u]++ {
		e := int(out[iter[u]])
		v := net.Head(e)
		cap := net.Cap(e)
		if cap <= 0 || level[v] != level[u]+1 {
			continue
		}
		send := available
		if cap < send {
			send = cap
		}
		pushed := dinicBlockingPush(net, level, iter, v, sink, send)
		if pushed > 0 {
			net.Push(e, pushed)
			return pushed
		}
	}
	return 0
}
