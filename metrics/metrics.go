// Package metrics exposes Prometheus instrumentation for the layout engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SimulationTicks counts scheduled simulation steps.
	SimulationTicks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "taskflow_simulation_ticks_total",
			Help: "Total number of scheduled simulation ticks",
		},
	)

	// SimulationRebuilds counts simulation teardowns caused by structural or selection changes.
	SimulationRebuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskflow_simulation_rebuilds_total",
			Help: "Total number of simulation rebuilds",
		},
		[]string{"cause"},
	)

	// SimulationAlpha tracks the current temperature of the live simulation.
	SimulationAlpha = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "taskflow_simulation_alpha",
			Help: "Current alpha of the running simulation",
		},
	)

	// GraphNodes tracks the node count.
	GraphNodes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "taskflow_graph_nodes",
			Help: "Number of nodes in the graph",
		},
	)

	// GraphEdges tracks the edge count.
	GraphEdges = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "taskflow_graph_edges",
			Help: "Number of edges in the graph",
		},
	)

	// EditsRejected counts edit requests that were silently ignored.
	EditsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskflow_edits_rejected_total",
			Help: "Edit requests ignored because they were invalid",
		},
		[]string{"op", "reason"},
	)
)
