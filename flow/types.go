package flow

import (
	"context"
	"fmt"
)

// ErrSourceNotFound is returned when the specified source vertex is missing.
var ErrSourceNotFound = fmt.Errorf("flow: %w", errSourceNotFound)
var errSourceNotFound = fmt.Errorf("source vertex not found")

// ErrSinkNotFound is returned when the specified sink vertex is missing.
var ErrSinkNotFound = fmt.Errorf("flow: %w", errSinkNotFound)
var errSinkNotFound = fmt.Errorf("sink vertex not found")

// ErrVertexNotFound is returned when a named supply/source/sink vertex is
// absent from the graph.
var ErrVertexNotFound = fmt.Errorf("flow: %w", errVertexNotFound)
var errVertexNotFound = fmt.Errorf("vertex not found")

// EdgeError is returned when an edge has a negative capacity or a lower
// bound exceeding its capacity.
type EdgeError struct {
	From, To string
	Cap      int64
}

func (e EdgeError) Error() string {
	return fmt.Sprintf("flow: invalid capacity on edge %q→%q: %d", e.From, e.To, e.Cap)
}

// FlowOptions configures the max-flow algorithms (FordFulkerson,
// EdmondsKarp, Dinic).
type FlowOptions struct {
	// Ctx, when set, is checked between augmentations; a canceled context
	// aborts the search and returns ctx.Err().
	Ctx context.Context
	// Verbose logs each augmentation when true.
	Verbose bool
	// LevelRebuildInterval controls how often Dinic rebuilds its level
	// graph. 0 means rebuild only once the current level graph admits no
	// further augmenting path (the textbook blocking-flow phase); N > 0
	// also rebuilds after every N augmentations, so 1 rebuilds after each.
	LevelRebuildInterval int
}

// DefaultOptions returns the zero-tuning FlowOptions: no deadline, silent,
// rebuild the level graph after each blocking flow.
func DefaultOptions() FlowOptions {
	return FlowOptions{Ctx: context.Background()}
}

func (o *FlowOptions) normalize() {
	if o.Ctx == nil {
		o.Ctx = context.Background()
	}
}

// ErrorKind classifies a SolverError, mirroring the integer error taxonomy:
// invalid input, no feasible solution, declared-width overflow, or an
// internal invariant violation that should never be reachable from valid
// input.
type ErrorKind int

const (
	// InvalidArgument marks malformed input: a missing vertex, a negative
	// capacity, a lower bound exceeding its arc's capacity.
	InvalidArgument ErrorKind = iota
	// Infeasible marks a well-formed instance with no feasible circulation.
	Infeasible
	// Overflow marks a huge-cost or huge-capacity synthetic constant that
	// does not fit the declared integer width.
	Overflow
	// AlgorithmicInvariant marks an internal invariant violation (a bug in
	// this package, never a consequence of caller input).
	AlgorithmicInvariant
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidArgument:
		return "INVALID_ARGUMENT"
	case Infeasible:
		return "INFEASIBLE"
	case Overflow:
		return "OVERFLOW"
	case AlgorithmicInvariant:
		return "ALGORITHMIC_INVARIANT"
	default:
		return "UNKNOWN"
	}
}

// SolverError is returned by the minimum-cost flow entry points; Kind lets
// callers branch on the error taxonomy without string-matching messages.
type SolverError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *SolverError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("flow: %s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("flow: %s: %s", e.Kind, e.Msg)
}

func (e *SolverError) Unwrap() error { return e.Err }

func newSolverError(kind ErrorKind, msg string) *SolverError {
	return &SolverError{Kind: kind, Msg: msg}
}

func wrapSolverError(kind ErrorKind, msg string, err error) *SolverError {
	return &SolverError{Kind: kind, Msg: msg, Err: err}
}

// Options configures the minimum-cost flow solver entry points
// (flow/mincost.go). The zero value is the standard algorithm: the cadence
// knob below only matters for tuning solve time on large instances,
// typically set from cmd/mincostflow/config rather than by hand.
type Options struct {
	// Verbose is accepted but not read by the minimum-cost entry points;
	// they produce no log output either way.
	Verbose bool
	// GlobalUpdateCadence overrides the number of relabels between two
	// global-update passes (default: one pass per |V| relabels, 0 means
	// use the default).
	GlobalUpdateCadence int
}

// DefaultSolverOptions returns the zero-tuning Options.
func DefaultSolverOptions() Options {
	return Options{}
}
