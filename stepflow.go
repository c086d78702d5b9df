package stepflow

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/stepflow/internal/logging"
	"github.com/aretw0/stepflow/pkg/catalog"
	"github.com/aretw0/stepflow/pkg/domain"
	"github.com/aretw0/stepflow/pkg/gateway"
	"github.com/aretw0/stepflow/pkg/graph"
)

// Gateway is the backend the editor validates against and submits to.
type Gateway interface {
	CheckStatus(ctx context.Context) domain.Outcome
	SubmitFlow(ctx context.Context, nodes []domain.Node) domain.Outcome
}

// Editor is the high-level entry point of stepflow.
// It owns the graph store, the page selection and the gate, and is meant to be
// shared by reference between front-ends.
type Editor struct {
	catalog *catalog.Catalog
	store   *graph.Store
	gateway Gateway
	gate    *gateway.Gate
	hooks   domain.LifecycleHooks
	logger  *slog.Logger

	mu       sync.RWMutex
	selected string
}

// Option defines a functional option for configuring the Editor.
type Option func(*Editor)

// WithCatalog replaces the default page catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(e *Editor) {
		e.catalog = c
	}
}

// WithStore injects a preconfigured graph store.
func WithStore(s *graph.Store) Option {
	return func(e *Editor) {
		e.store = s
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Editor) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the editor.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// New creates an editor bound to gw.
// The gate starts locked and the selection starts empty, which AddNode treats as
// catalog.DefaultKey.
func New(gw Gateway, opts ...Option) *Editor {
	e := &Editor{
		gateway: gw,
		gate:    gateway.NewGate(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.catalog == nil {
		e.catalog = catalog.Default()
	}
	if e.store == nil {
		e.store = graph.NewStore()
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	return e
}

// Catalog returns the page catalog.
func (e *Editor) Catalog() *catalog.Catalog { return e.catalog }

// Select sets the page used by the next AddNode.
// The key is validated when the node is added, not here.
func (e *Editor) Select(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.logger.Debug("Changing page", "page_key", key)
	e.selected = key
}

// Selected returns the selected page key, or "" when nothing was selected.
func (e *Editor) Selected() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.selected
}

// GateState returns the current gate state.
func (e *Editor) GateState() domain.GateState {
	return e.gate.State()
}

// Snapshot returns a copy of the graph.
func (e *Editor) Snapshot() graph.Snapshot {
	return e.store.Snapshot()
}

// CheckStatus validates the backend and feeds the outcome to the gate.
func (e *Editor) CheckStatus(ctx context.Context) domain.Outcome {
	out := e.gateway.CheckStatus(ctx)
	state := e.gate.Observe(out)
	e.logger.Info("API status checked", "status", out.Status, "gate", state)
	if e.hooks.OnStatusChecked != nil {
		e.hooks.OnStatusChecked(ctx, &domain.GatewayEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStatusChecked},
			Outcome:   out,
			Gate:      state,
		})
	}
	return out
}

// AddNode appends a node for the selected page.
// It returns domain.ErrLocked while the gate is locked and a *domain.LookupError
// when the selected key is not in the catalog.
func (e *Editor) AddNode(ctx context.Context) (domain.Node, error) {
	return e.AddPage(ctx, e.Selected())
}

// AddPage appends a node for key without touching the selection.
// An empty key means catalog.DefaultKey. Errors are those of AddNode.
func (e *Editor) AddPage(ctx context.Context, key string) (domain.Node, error) {
	if !e.gate.Unlocked() {
		return domain.Node{}, domain.ErrLocked
	}
	if key == "" {
		key = catalog.DefaultKey
	}

	n, err := e.store.AddNode(key, e.catalog)
	if err != nil {
		e.logger.Error("No page selected or page not found", "page_key", key, "error", err)
		return domain.Node{}, err
	}
	e.logger.Debug("Adding new node", "page_key", key, "node_id", n.ID)
	if e.hooks.OnNodeAdded != nil {
		e.hooks.OnNodeAdded(ctx, &domain.GraphEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventNodeAdded},
			NodeID:    n.ID,
			PageKey:   key,
		})
	}
	return n, nil
}

// Connect adds an edge. Edges are cosmetic and never affect execution order.
func (e *Editor) Connect(ctx context.Context, conn domain.Connection) domain.Edge {
	edge := e.store.Connect(conn)
	e.logger.Debug("Edge added", "source", conn.Source, "target", conn.Target)
	if e.hooks.OnEdgeConnected != nil {
		e.hooks.OnEdgeConnected(ctx, &domain.GraphEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventEdgeConnected},
			Edge:      &edge,
		})
	}
	return edge
}

// ApplyNodeChanges forwards canvas gestures to the store.
func (e *Editor) ApplyNodeChanges(changes ...domain.NodeChange) []domain.Node {
	return e.store.ApplyNodeChanges(changes...)
}

// ApplyEdgeChanges forwards canvas gestures to the store.
func (e *Editor) ApplyEdgeChanges(changes ...domain.EdgeChange) []domain.Edge {
	return e.store.ApplyEdgeChanges(changes...)
}

// Reset clears the graph. The gate and the selection are kept.
func (e *Editor) Reset() {
	e.store.Reset()
	e.logger.Debug("Graph cleared")
}

// Execute submits the current nodes, in creation order.
// The gate is left untouched whatever the outcome; overlapping calls are not prevented.
func (e *Editor) Execute(ctx context.Context) (domain.Outcome, error) {
	if !e.gate.Unlocked() {
		return domain.Outcome{}, domain.ErrLocked
	}
	nodes := e.store.Nodes()
	out := e.gateway.SubmitFlow(ctx, nodes)
	e.logger.Info("Flow executed", "status", out.Status, "nodes", len(nodes))
	if e.hooks.OnFlowSubmitted != nil {
		e.hooks.OnFlowSubmitted(ctx, &domain.GatewayEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventFlowSubmitted},
			Outcome:   out,
			Gate:      e.gate.State(),
		})
	}
	return out, nil
}
