// Package telemetry exposes Prometheus metrics for the minimum-cost flow
// solver: solve durations, epsilon-phase and relabel counts, and the size
// and value of solved instances.
package telemetry

import (
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles every counter, histogram, and gauge the solver reports.
type Metrics struct {
	SolveOperationsTotal *prometheus.CounterVec
	SolveDuration        *prometheus.HistogramVec
	EpsilonPhasesTotal   prometheus.Histogram
	RelabelsTotal        prometheus.Histogram
	DischargesTotal      prometheus.Histogram
	GraphVerticesTotal   prometheus.Histogram
	GraphArcsTotal       prometheus.Histogram
	SolutionCost         prometheus.Gauge
	ServiceInfo          *prometheus.GaugeVec

	runtime *runtimeCollector
}

// New registers and returns a Metrics bundle under the given namespace and
// subsystem (e.g. "mincostflow", "solver").
func New(namespace, subsystem string) *Metrics {
	m := &Metrics{
		SolveOperationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "solve_operations_total",
			Help:      "Total number of solve calls, partitioned by entry point and outcome.",
		}, []string{"entry_point", "outcome"}),

		SolveDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "solve_duration_seconds",
			Help:      "Wall-clock duration of a solve call, by entry point.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"entry_point"}),

		EpsilonPhasesTotal: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "epsilon_phases",
			Help:      "Number of epsilon-scaling phases a solve took.",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64},
		}),

		RelabelsTotal: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "relabels",
			Help:      "Number of vertex relabels a solve performed.",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 8),
		}),

		DischargesTotal: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "discharges",
			Help:      "Number of discharge operations a solve performed.",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 8),
		}),

		GraphVerticesTotal: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "graph_vertices",
			Help:      "Vertex count of solved instances.",
			Buckets:   prometheus.ExponentialBuckets(4, 2, 10),
		}),

		GraphArcsTotal: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "graph_arcs",
			Help:      "Arc count of solved instances.",
			Buckets:   prometheus.ExponentialBuckets(4, 2, 10),
		}),

		SolutionCost: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "last_solution_cost",
			Help:      "Total cost of the most recently completed solve.",
		}),

		ServiceInfo: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "build_info",
			Help:      "Always 1, labeled by build version.",
		}, []string{"version"}),
	}
	m.runtime = newRuntimeCollector(namespace, subsystem)
	prometheus.MustRegister(m.runtime)
	return m
}

// RecordSolve records the outcome of one solve call: entry point name,
// whether it succeeded, its duration, iteration counts, instance size, and
// (on success) the resulting cost.
func (m *Metrics) RecordSolve(entryPoint string, success bool, d time.Duration, vertices, arcs, epsilonPhases, relabels, discharges int, cost int64) {
	outcome := "error"
	if success {
		outcome = "ok"
	}
	m.SolveOperationsTotal.WithLabelValues(entryPoint, outcome).Inc()
	m.SolveDuration.WithLabelValues(entryPoint).Observe(d.Seconds())
	m.GraphVerticesTotal.Observe(float64(vertices))
	m.GraphArcsTotal.Observe(float64(arcs))
	if success {
		m.EpsilonPhasesTotal.Observe(float64(epsilonPhases))
		m.RelabelsTotal.Observe(float64(relabels))
		m.DischargesTotal.Observe(float64(discharges))
		m.SolutionCost.Set(float64(cost))
	}
}

// SetBuildInfo publishes the running binary's version as a gauge.
func (m *Metrics) SetBuildInfo(version string) {
	m.ServiceInfo.Reset()
	m.ServiceInfo.WithLabelValues(version).Set(1)
}

// Handler returns the HTTP handler serving the registered metrics in the
// Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}

// Timer measures an in-flight solve and feeds its elapsed duration into a
// histogram observation on Stop.
type Timer struct {
	observer prometheus.Observer
	start    time.Time
}

// NewTimer starts a timer against a label set of obs (e.g.
// m.SolveDuration.WithLabelValues(entryPoint)).
func NewTimer(obs prometheus.Observer, start time.Time) *Timer {
	return &Timer{observer: obs, start: start}
}

// Stop records the elapsed time since the timer started.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	t.observer.Observe(elapsed.Seconds())
	return elapsed
}

// runtimeCollector reports Go runtime statistics (goroutines, heap) as a
// custom prometheus.Collector, the way a long-running solve server would
// expose them alongside business metrics.
type runtimeCollector struct {
	mu          sync.Mutex
	goroutines  *prometheus.Desc
	memAlloc    *prometheus.Desc
	memSys      *prometheus.Desc
	gcPauseNs   *prometheus.Desc
	gcRuns      *prometheus.Desc
}

func newRuntimeCollector(namespace, subsystem string) *runtimeCollector {
	fq := func(name string) string {
		return prometheus.BuildFQName(namespace, subsystem, name)
	}
	return &runtimeCollector{
		goroutines: prometheus.NewDesc(fq("goroutines"), "Number of live goroutines.", nil, nil),
		memAlloc:   prometheus.NewDesc(fq("mem_alloc_bytes"), "Bytes of allocated heap objects.", nil, nil),
		memSys:     prometheus.NewDesc(fq("mem_sys_bytes"), "Bytes obtained from the OS.", nil, nil),
		gcPauseNs:  prometheus.NewDesc(fq("gc_pause_ns"), "Most recent GC pause in nanoseconds.", nil, nil),
		gcRuns:     prometheus.NewDesc(fq("gc_runs_total"), "Number of completed GC cycles.", nil, nil),
	}
}

func (c *runtimeCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.goroutines
	ch <- c.memAlloc
	ch <- c.memSys
	ch <- c.gcPauseNs
	ch <- c.gcRuns
}

func (c *runtimeCollector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	ch <- prometheus.MustNewConstMetric(c.goroutines, prometheus.GaugeValue, float64(runtime.NumGoroutine()))
	ch <- prometheus.MustNewConstMetric(c.memAlloc, prometheus.GaugeValue, float64(stats.Alloc))
	ch <- prometheus.MustNewConstMetric(c.memSys, prometheus.GaugeValue, float64(stats.Sys))
	ch <- prometheus.MustNewConstMetric(c.gcPauseNs, prometheus.GaugeValue, float64(stats.PauseNs[(stats.NumGC+255)%256]))
	ch <- prometheus.MustNewConstMetric(c.gcRuns, prometheus.CounterValue, float64(stats.NumGC))
}
