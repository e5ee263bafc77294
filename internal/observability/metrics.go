// Package observability holds the Prometheus metrics and the OpenTelemetry
// tracer shared by the pipeline stages.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "classc_stage_seconds",
		Help:    "Time spent in a pipeline stage.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	FilesProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "classc_files_processed_total",
		Help: "Total number of AST documents processed, by stage.",
	}, []string{"stage"})

	DiagnosticsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "classc_diagnostics_total",
		Help: "Total number of diagnostics reported, by code and severity.",
	}, []string{"code", "severity"})

	SymbolsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "classc_symbols_total",
		Help: "Number of entries in the last global symbol table.",
	})

	NamespacesTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "classc_namespaces_total",
		Help: "Number of namespaces in the last global symbol table.",
	})

	DuplicateSymbolsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "classc_duplicate_symbols_total",
		Help: "Total number of same-scope redeclarations replaced during table construction.",
	})

	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "classc_runs_total",
		Help: "Total number of pipeline runs, by outcome.",
	}, []string{"outcome"})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "classc_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})
)
