// Package circulation computes a feasible integer circulation for a vertex
// supply vector, ignoring cost entirely (C2). It is the first thing the
// cost-scaling solver needs: a starting flow assignment that satisfies every
// vertex's supply/demand before any minimization begins.
//
// The construction mirrors other_examples' flownet Circulation type: wire a
// synthetic super-source and super-sink from the supply vector, run a
// generic push-relabel max-flow between them, and declare success only if
// every unit of positive supply was routed.
package circulation

import "errors"

import "github.com/katalvlaran/mincostflow/flow/internal/residual"

// ErrInfeasible is returned when no circulation realizes the given supply
// vector under the given capacities.
var ErrInfeasible = errors.New("circulation: no feasible circulation exists for the given supply")

// Edge is one capacitated arc of the instance to circulate flow through.
// Cost is irrelevant here; callers attach it afterwards when they build the
// cost-scaling residual graph from the returned flow values.
type Edge struct {
	From, To int
	Capacity int64
}

// Solve finds flow values for edges such that, for every vertex v,
// sum(flow out) - sum(flow in) == supply[v], and 0 <= flow[i] <= edges[i].Capacity.
// len(supply) must equal n. Returns ErrInfeasible if no such assignment
// exists.
func Solve(n int, edges []Edge, supply []int64) ([]int64, error) {
	g := residual.New(n + 2)
	s, t := n, n+1

	fwdArcs := make([]int, len(edges))
	for i, e := range edges {
		if e.From == e.To {
			// Self-loops never affect any vertex's balance; they are
			// handled entirely outside circulation.
			fwdArcs[i] = -1
			continue
		}
		fwd, _ := g.AddArcPair(e.From, e.To, e.Capacity, 0, i)
		fwdArcs[i] = fwd
	}

	var totalSupply int64
	for v, sup := range supply {
		switch {
		case sup > 0:
			g.AddArcPair(s, v, sup, 0, -1)
			totalSupply += sup
		case sup < 0:
			g.AddArcPair(v, t, -sup, 0, -1)
		}
	}

	if totalSupply == 0 {
		return zeroFlow(edges), nil
	}

	maxFlow := pushRelabelMaxFlow(g, s, t)
	if maxFlow < totalSupply {
		return nil, ErrInfeasible
	}

	flow := make([]int64, len(edges))
	for i, fwd := range fwdArcs {
		if fwd < 0 {
			continue
		}
		flow[i] = g.Flow(fwd)
	}
	return flow, nil
}

func zeroFlow(edges []Edge) []int64 {
	return make([]int64, len(edges))
}
