package flow

import (
	"github.com/katalvlaran/mincostflow/core"
	"github.com/katalvlaran/mincostflow/flow/internal/residual"
)

// buildMaxFlowNetwork maps g's string-keyed vertices/edges onto a dense
// residual.Graph for the max-flow algorithms (FordFulkerson, EdmondsKarp,
// Dinic): parallel edges between the same ordered pair are aggregated into
// one arc pair, and self-loops are dropped (a loop can never sit on a
// source->sink path). It mirrors flow/reductions.go's buildBaseProblem,
// minus cost and supply, which the max-flow algorithms don't need.
func buildMaxFlowNetwork(g *core.Graph) (*residual.Graph, map[string]int, []string, error) {
	ids := g.Vertices()
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	// aggregate parallel (u,v) edges before allocating arc pairs, so two
	// edges between the same endpoints don't each get their own residual
	// twin (which would make the reverse arcs fight each other).
	type pairKey struct{ u, v int }
	agg := make(map[pairKey]int64)
	order := make([]pairKey, 0, len(ids))
	for _, e := range g.Edges() {
		if e.From == e.To {
			continue // self-loop: never on a source->sink path
		}
		if e.Weight < 0 {
			return nil, nil, nil, EdgeError{From: e.From, To: e.To, Cap: e.Weight}
		}
		key := pairKey{index[e.From], index[e.To]}
		if _, seen := agg[key]; !seen {
			order = append(order, key)
		}
		agg[key] += e.Weight
	}

	net := residual.New(len(ids))
	for _, key := range order {
		net.AddArcPair(key.u, key.v, agg[key], 0, -1)
	}
	return net, index, ids, nil
}

// buildResidualCoreGraph decodes a solved residual.Graph back into a
// *core.Graph whose edge weights are the arcs' remaining residual
// capacities, the same shape FordFulkerson/EdmondsKarp/Dinic have always
// returned to callers.
func buildResidualCoreGraph(net *residual.Graph, ids []string) *core.Graph {
	out := core.NewGraph(core.WithDirected(true), core.WithWeighted(), core.WithMultiEdges())
	for _, id := range ids {
		_ = out.AddVertex(id)
	}
	for e := 0; e < net.NumArcs(); e++ {
		if cap := net.Cap(e); cap > 0 {
			u, v := ids[net.Tail(e)], ids[net.Head(e)]
			_, _ = out.AddEdge(u, v, cap)
		}
	}
	return out
}
