// Command mincostflow loads a JSON-described flow instance, solves it with
// the minimum-cost flow solver, and prints the result as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/katalvlaran/mincostflow/cmd/mincostflow/config"
	"github.com/katalvlaran/mincostflow/core"
	"github.com/katalvlaran/mincostflow/flow"
	"github.com/katalvlaran/mincostflow/internal/obslog"
	"github.com/katalvlaran/mincostflow/internal/telemetry"
)

// instanceEdge is one edge of the JSON instance format: an arc from->to with
// a non-negative capacity, a cost (possibly negative), and an optional
// mandatory lower bound.
type instanceEdge struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Capacity   int64  `json:"capacity"`
	Cost       int64  `json:"cost"`
	LowerBound int64  `json:"lower_bound"`
}

// instance is the JSON shape accepted on stdin (or via -in): a vertex list,
// an edge list, and a mode selecting which entry point to solve with.
type instance struct {
	Vertices []string       `json:"vertices"`
	Edges    []instanceEdge `json:"edges"`

	// Mode selects the entry point: "maxflow" (default), "value",
	// "multiterminal", "circulation", or "lowerbounds".
	Mode string `json:"mode"`

	Source     string           `json:"source"`
	Sink       string           `json:"sink"`
	TargetFlow int64            `json:"target_flow"`
	Sources    []string         `json:"sources"`
	Sinks      []string         `json:"sinks"`
	Supply     map[string]int64 `json:"supply"`
}

type outcome struct {
	Flow      map[string]flowEdge `json:"flow"`
	TotalCost int64               `json:"total_cost"`
}

type flowEdge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
}

func main() {
	inPath := flag.String("in", "", "path to the JSON instance (default: stdin)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config: "+err.Error())
		os.Exit(1)
	}

	log := obslog.New(obslog.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})

	var metrics *telemetry.Metrics
	if cfg.Metrics.Enabled {
		metrics = telemetry.New("mincostflow", "solver")
		metrics.SetBuildInfo(cfg.App.Version)
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
			log.Info("serving metrics", "addr", addr)
			if err := http.ListenAndServe(addr, metrics.Handler()); err != nil {
				log.Warn("metrics server stopped", "error", err)
			}
		}()
	}

	if err := run(*inPath, cfg.Solver, log, metrics); err != nil {
		log.Error("solve failed", "error", err)
		os.Exit(1)
	}
}

func run(inPath string, solverCfg config.SolverConfig, log *slog.Logger, metrics *telemetry.Metrics) error {
	raw, err := readInput(inPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	var inst instance
	if err := json.Unmarshal(raw, &inst); err != nil {
		return fmt.Errorf("parsing instance: %w", err)
	}
	if inst.Mode == "" {
		inst.Mode = "maxflow"
	}

	g := core.NewGraph(core.WithDirected(true), core.WithWeighted(), core.WithMultiEdges(), core.WithLoops())
	for _, v := range inst.Vertices {
		if err := g.AddVertex(v); err != nil {
			return fmt.Errorf("adding vertex %q: %w", v, err)
		}
	}

	cost := make(map[string]int64, len(inst.Edges))
	lowerBound := make(map[string]int64, len(inst.Edges))
	for _, e := range inst.Edges {
		id, err := g.AddEdge(e.From, e.To, e.Capacity)
		if err != nil {
			return fmt.Errorf("adding edge %s->%s: %w", e.From, e.To, err)
		}
		cost[id] = e.Cost
		lowerBound[id] = e.LowerBound
	}

	costFn := func(edgeID string) int64 { return cost[edgeID] }
	lowerBoundFn := func(edgeID string) int64 { return lowerBound[edgeID] }

	log = obslog.WithSolve(log, inst.Mode, len(g.Vertices()), len(g.Edges()))
	log.Info("solving")

	opts := flow.Options{Verbose: solverCfg.Verbose, GlobalUpdateCadence: solverCfg.GlobalUpdateCadence}

	start := time.Now()
	result, solveErr := solve(g, inst, costFn, lowerBoundFn, opts)
	elapsed := time.Since(start)

	if metrics != nil {
		vertices, arcs := len(g.Vertices()), len(g.Edges())
		totalCost := int64(0)
		if solveErr == nil {
			totalCost = result.TotalCost
		}
		metrics.RecordSolve(inst.Mode, solveErr == nil, elapsed, vertices, arcs, 0, 0, 0, totalCost)
	}
	if solveErr != nil {
		return solveErr
	}

	log.Info("solved", "total_cost", result.TotalCost, "duration", elapsed)
	return printResult(os.Stdout, g, result)
}

func solve(g *core.Graph, inst instance, costFn flow.CostFunc, lowerBoundFn flow.LowerBoundFunc, opts flow.Options) (flow.Result, error) {
	switch inst.Mode {
	case "maxflow":
		return flow.MinCostFlow(g, inst.Source, inst.Sink, costFn, opts)
	case "value":
		return flow.MinCostFlowValue(g, inst.Source, inst.Sink, inst.TargetFlow, costFn, opts)
	case "multiterminal":
		return flow.MinCostFlowMultiTerminal(g, inst.Sources, inst.Sinks, costFn, opts)
	case "circulation":
		return flow.MinCostCirculation(g, inst.Supply, costFn, opts)
	case "lowerbounds":
		return flow.MinCostFlowWithLowerBounds(g, inst.Source, inst.Sink, lowerBoundFn, costFn, opts)
	default:
		return flow.Result{}, fmt.Errorf("unknown mode %q", inst.Mode)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func printResult(w io.Writer, g *core.Graph, result flow.Result) error {
	out := outcome{Flow: make(map[string]flowEdge, len(result.Flow)), TotalCost: result.TotalCost}
	for edgeID, amount := range result.Flow {
		e, err := g.GetEdge(edgeID)
		if err != nil {
			continue
		}
		out.Flow[edgeID] = flowEdge{From: e.From, To: e.To, Amount: amount}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
