package flow

import (
	"github.com/katalvlaran/mincostflow/core"
	"github.com/katalvlaran/mincostflow/flow/internal/circulation"
	"github.com/katalvlaran/mincostflow/flow/internal/costscale"
	"github.com/katalvlaran/mincostflow/flow/internal/residual"
)

// Result is the outcome of a minimum-cost flow solve: the flow carried by
// every edge of the input graph, the solution's total cost, and the final
// vertex potentials (exposed for callers layering their own reoptimizations
// on top of one solve; re-solving incrementally is out of scope here, but
// reading the potentials afterwards is not).
type Result struct {
	Flow      map[string]int64
	TotalCost int64
	Potential map[string]int64
}

// MinCostFlow finds the minimum-cost maximum flow from source to sink.
func MinCostFlow(g *core.Graph, source, sink string, cost CostFunc, opts Options) (Result, error) {
	return MinCostFlowMultiTerminal(g, []string{source}, []string{sink}, cost, opts)
}

// MinCostFlowValue finds the minimum-cost flow of exactly targetFlow units
// from source to sink (INFEASIBLE if the network cannot carry that much). It
// is the (source,sink) reduction of §4.3 with the super-source and
// super-sink arcs capped at targetFlow and no zero-cost S<->T slack arcs,
// so every one of the targetFlow units has to cross the real network.
func MinCostFlowValue(g *core.Graph, source, sink string, targetFlow int64, cost CostFunc, opts Options) (Result, error) {
	if targetFlow < 0 {
		return Result{}, newSolverError(InvalidArgument, "targetFlow must be non-negative")
	}
	p, index, err := buildBaseProblem(g, cost)
	if err != nil {
		return Result{}, err
	}
	si, ok := index[source]
	if !ok {
		return Result{}, wrapSolverError(InvalidArgument, "source vertex not found", ErrSourceNotFound)
	}
	ti, ok := index[sink]
	if !ok {
		return Result{}, wrapSolverError(InvalidArgument, "sink vertex not found", ErrSinkNotFound)
	}

	cHuge, err := sumAbsCost(p)
	if err != nil {
		return Result{}, err
	}
	s := p.addVertex()
	t := p.addVertex()
	p.addSyntheticArc(s, si, targetFlow, -cHuge)
	p.addSyntheticArc(ti, t, targetFlow, -cHuge)
	p.supply[s] += targetFlow
	p.supply[t] -= targetFlow

	return solveProblem(p, opts)
}

// MinCostFlowMultiTerminal finds the minimum-cost maximum flow from any of
// sources to any of sinks, per the (sources,sinks) reduction of §4.3.
func MinCostFlowMultiTerminal(g *core.Graph, sources, sinks []string, cost CostFunc, opts Options) (Result, error) {
	p, index, err := buildBaseProblem(g, cost)
	if err != nil {
		return Result{}, err
	}
	sourceIdx, err := resolveVertices(index, sources)
	if err != nil {
		return Result{}, wrapSolverError(InvalidArgument, "source vertex not found", err)
	}
	sinkIdx, err := resolveVertices(index, sinks)
	if err != nil {
		return Result{}, wrapSolverError(InvalidArgument, "sink vertex not found", err)
	}
	if err := addSuperTerminals(p, sourceIdx, sinkIdx); err != nil {
		return Result{}, err
	}
	return solveProblem(p, opts)
}

// MinCostCirculation is the direct single-supply entry point C4 consumes;
// the other entry points all reduce to this one.
func MinCostCirculation(g *core.Graph, supply map[string]int64, cost CostFunc, opts Options) (Result, error) {
	p, index, err := buildBaseProblem(g, cost)
	if err != nil {
		return Result{}, err
	}
	for id, s := range supply {
		idx, ok := index[id]
		if !ok {
			return Result{}, newSolverError(InvalidArgument, "supply references unknown vertex "+id)
		}
		p.supply[idx] = s
	}
	return solveProblem(p, opts)
}

// MinCostFlowWithLowerBounds finds the minimum-cost flow from source to sink
// subject to a mandatory per-edge lower bound, per the lower-bound transform
// of §4.3.
func MinCostFlowWithLowerBounds(g *core.Graph, source, sink string, lowerBound LowerBoundFunc, cost CostFunc, opts Options) (Result, error) {
	p, index, err := buildBaseProblem(g, cost)
	if err != nil {
		return Result{}, err
	}
	si, ok := index[source]
	if !ok {
		return Result{}, wrapSolverError(InvalidArgument, "source vertex not found", ErrSourceNotFound)
	}
	ti, ok := index[sink]
	if !ok {
		return Result{}, wrapSolverError(InvalidArgument, "sink vertex not found", ErrSinkNotFound)
	}

	baseline, err := applyLowerBounds(p, lowerBound)
	if err != nil {
		return Result{}, err
	}
	if err := addSuperTerminals(p, []int{si}, []int{ti}); err != nil {
		return Result{}, err
	}
	return solveProblemWithBaseline(p, opts, baseline)
}

func resolveVertices(index map[string]int, ids []string) ([]int, error) {
	if len(ids) == 0 {
		return nil, errVertexNotFound
	}
	out := make([]int, len(ids))
	for i, id := range ids {
		idx, ok := index[id]
		if !ok {
			return nil, errVertexNotFound
		}
		out[i] = idx
	}
	return out, nil
}

func solveProblem(p *problem, opts Options) (Result, error) {
	return solveProblemWithBaseline(p, opts, nil)
}

// solveProblemWithBaseline runs C2 (feasible circulation) then C4-C7
// (cost-scaling minimization) over p, and decodes the result back onto the
// original graph's edge IDs, adding any lower-bound baseline back in.
func solveProblemWithBaseline(p *problem, opts Options, baseline []int64) (Result, error) {
	circEdges := make([]circulation.Edge, 0, len(p.edgeID))
	circIndexOf := make([]int, 0, len(p.edgeID)) // circulation edge index -> problem edge index
	for i, capacity := range p.capacity {
		if p.isSelfLoop[i] {
			continue
		}
		circEdges = append(circEdges, circulation.Edge{From: p.from[i], To: p.to[i], Capacity: capacity})
		circIndexOf = append(circIndexOf, i)
	}

	flowByCircIdx, err := circulation.Solve(p.n, circEdges, p.supply)
	if err != nil {
		return Result{}, wrapSolverError(Infeasible, "no feasible circulation for this instance", err)
	}

	scale := int64(costscale.Alpha * p.n)
	if scale == 0 {
		scale = 1
	}

	g := residual.New(p.n)
	arcOf := make([]int, len(p.edgeID)) // problem edge index -> forward residual arc, -1 for self-loops
	for i := range arcOf {
		arcOf[i] = -1
	}
	for ci, pi := range circIndexOf {
		fwd, _ := g.AddArcPair(p.from[pi], p.to[pi], p.capacity[pi], p.cost[pi]*scale, pi)
		g.Push(fwd, flowByCircIdx[ci])
		arcOf[pi] = fwd
	}
	for i, isSelf := range p.isSelfLoop {
		if isSelf {
			g.AddSelfLoop(p.from[i], p.capacity[i], p.cost[i]*scale, i)
		}
	}

	solver := costscale.New(g, p.n)
	if opts.GlobalUpdateCadence > 0 {
		solver.SetGlobalUpdateCadence(opts.GlobalUpdateCadence)
	}
	solver.Solve()

	result := Result{
		Flow:      make(map[string]int64, len(p.edgeID)),
		Potential: make(map[string]int64, p.n),
	}
	var totalCost int64
	for i, id := range p.edgeID {
		if id == "" || p.isSelfLoop[i] {
			continue // synthetic arc, or a self-loop handled separately below
		}
		flow := g.Flow(arcOf[i])
		if baseline != nil {
			flow += baseline[i]
		}
		result.Flow[id] = flow
		totalCost += flow * p.cost[i]
	}
	for _, entry := range solver.SelfLoopFlow() {
		id := p.edgeID[entry.OriginalEdge]
		if id == "" {
			continue
		}
		flow := entry.Flow
		if baseline != nil {
			flow += baseline[entry.OriginalEdge]
		}
		result.Flow[id] = flow
		totalCost += flow * p.cost[entry.OriginalEdge]
	}
	result.TotalCost = totalCost

	for i := 0; i < p.n; i++ {
		if id := p.vertexID[i]; id != "" {
			result.Potential[id] = solver.Potential(i) / scale
		}
	}

	return result, nil
}
