package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/stepflow/internal/logging"
	"github.com/aretw0/stepflow/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder counts editor events.
type Recorder struct {
	nodes  *prometheus.CounterVec
	edges  prometheus.Counter
	checks *prometheus.CounterVec
	flows  *prometheus.CounterVec
	steps  prometheus.Histogram
	gate   prometheus.Gauge
	logger *slog.Logger
}

// NewRecorder registers the editor metrics on reg. A nil logger discards logs.
func NewRecorder(reg prometheus.Registerer, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = logging.NewNop()
	}
	r := &Recorder{
		nodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stepflow_nodes_added_total",
			Help: "Nodes added to the flow, by page key.",
		}, []string{"page"}),
		edges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stepflow_edges_connected_total",
			Help: "Edges drawn between nodes.",
		}),
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stepflow_status_checks_total",
			Help: "API status checks, by outcome.",
		}, []string{"outcome"}),
		flows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stepflow_flows_submitted_total",
			Help: "Flow submissions, by outcome.",
		}, []string{"outcome"}),
		steps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stepflow_flow_steps",
			Help:    "Steps per submitted flow.",
			Buckets: prometheus.LinearBuckets(0, 2, 10),
		}),
		gate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stepflow_gate_unlocked",
			Help: "1 once the execution API was validated.",
		}),
		logger: logger,
	}
	reg.MustRegister(r.nodes, r.edges, r.checks, r.flows, r.steps, r.gate)
	return r
}

// Hooks returns lifecycle hooks feeding the recorder.
func (r *Recorder) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeAdded: func(ctx context.Context, e *domain.GraphEvent) {
			r.logger.Info("node_added", "node_id", e.NodeID, "page", e.PageKey)
			r.nodes.WithLabelValues(e.PageKey).Inc()
		},
		OnEdgeConnected: func(ctx context.Context, e *domain.GraphEvent) {
			if e.Edge != nil {
				r.logger.Info("edge_connected", "edge_id", e.Edge.ID)
			}
			r.edges.Inc()
		},
		OnStatusChecked: func(ctx context.Context, e *domain.GatewayEvent) {
			r.logger.Info("status_checked", "outcome", e.Outcome.Status, "gate", e.Gate)
			r.checks.WithLabelValues(string(e.Outcome.Status)).Inc()
			r.setGate(e.Gate)
		},
		OnFlowSubmitted: func(ctx context.Context, e *domain.GatewayEvent) {
			attrs := []any{"outcome", e.Outcome.Status}
			if req := e.Outcome.Request; req != nil {
				attrs = append(attrs, "flow", req.NameFlow, "steps", len(req.Steps))
				r.steps.Observe(float64(len(req.Steps)))
			}
			if e.Outcome.Err != nil {
				attrs = append(attrs, "error", e.Outcome.Err)
			}
			r.logger.Info("flow_submitted", attrs...)
			r.flows.WithLabelValues(string(e.Outcome.Status)).Inc()
		},
	}
}

func (r *Recorder) setGate(s domain.GateState) {
	if s == domain.GateUnlocked {
		r.gate.Set(1)
		return
	}
	r.gate.Set(0)
}
