// Package flow implements maximum-flow and minimum-cost-flow algorithms on
// graphs represented by *core.Graph.
//
// # Maximum flow
//
// FordFulkerson, EdmondsKarp, and Dinic each compute the maximum feasible
// flow from a source to a sink:
//
//   - FordFulkerson — DFS for any augmenting path. O(E * maxFlow).
//   - EdmondsKarp   — BFS for shortest augmenting paths. O(V * E^2).
//   - Dinic         — level graph + blocking flow. O(V^2 * E) in general,
//     much faster in practice and on unit-capacity networks.
//
// All three share the same dense residual representation internally
// (flow/internal/residual), aggregate parallel edges, ignore self-loops,
// and return a *core.Graph of remaining residual capacities.
//
// # Minimum-cost flow
//
// MinCostFlow, MinCostFlowValue, MinCostFlowMultiTerminal, MinCostCirculation,
// and MinCostFlowWithLowerBounds compute a minimum-cost solution: the
// cheapest way to route flow (to maximum value, to an exact target value,
// between multiple sources/sinks, to satisfy arbitrary vertex supplies, or
// subject to mandatory per-edge lower bounds) given a per-edge cost.
//
// The solver is a cost-scaling push-relabel algorithm (flow/internal/costscale):
// an outer epsilon-scaling loop alternates partial-augmentation discharge
// with periodic global potential updates, refining vertex potentials until
// the circulation is provably optimal, then resolves back to the caller's
// original edge IDs. See SPEC_FULL.md for the full numeric design.
//
// # Errors
//
//	ErrSourceNotFound / ErrSinkNotFound - a named vertex is missing.
//	EdgeError                          - a negative capacity was found.
//	SolverError                        - the minimum-cost entry points classify
//	                                      failures via ErrorKind (INVALID_ARGUMENT,
//	                                      INFEASIBLE, OVERFLOW, ALGORITHMIC_INVARIANT).
//	context.Canceled / context.DeadlineExceeded - a max-flow call's context
//	                                      was canceled (the cost-scaling core
//	                                      runs synchronously and takes no
//	                                      context).
package flow
