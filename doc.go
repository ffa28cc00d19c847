// Package mincostflow is a minimum-cost flow library for Go: a cost-scaling
// push-relabel solver for integer-capacity, integer-cost directed graphs,
// built on top of a thread-safe general-purpose graph core.
//
// The module is organized into:
//
//	core/             — Graph, Vertex, Edge: thread-safe primitives for
//	                    building and querying directed (optionally mixed,
//	                    multi-edge, looped) graphs.
//	flow/             — FordFulkerson, EdmondsKarp, Dinic (maximum flow) and
//	                    MinCostFlow, MinCostFlowValue, MinCostFlowMultiTerminal,
//	                    MinCostCirculation, MinCostFlowWithLowerBounds
//	                    (minimum-cost flow).
//	flow/internal/    — the cost-scaling push-relabel core (residual graph,
//	                    feasible-circulation reduction, epsilon-scaling
//	                    solver) that flow/ wires into public entry points.
//	internal/obslog/  — structured logging shared by the solver and the CLI.
//	internal/telemetry/ — Prometheus metrics for solve duration and iteration counts.
//	cmd/mincostflow/  — a one-shot CLI: load a JSON flow instance, solve it,
//	                    print the result.
//
// See SPEC_FULL.md for the full specification this module implements, and
// DESIGN.md for the design decisions and their grounding.
package mincostflow
