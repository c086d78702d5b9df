package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/stepflow"
	"github.com/aretw0/stepflow/internal/dto"
	"github.com/aretw0/stepflow/internal/logging"
	mermaid "github.com/aretw0/stepflow/internal/presentation/graph"
	"github.com/aretw0/stepflow/pkg/catalog"
	"github.com/aretw0/stepflow/pkg/domain"
	"github.com/aretw0/stepflow/pkg/graph"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Stream topics.
const (
	TopicGraph         = "graph"
	TopicNotifications = "notifications"
)

// Editor defines the editor operations exposed over HTTP.
type Editor interface {
	Catalog() *catalog.Catalog
	Select(key string)
	Selected() string
	GateState() domain.GateState
	Snapshot() graph.Snapshot
	CheckStatus(ctx context.Context) domain.Outcome
	AddNode(ctx context.Context) (domain.Node, error)
	AddPage(ctx context.Context, key string) (domain.Node, error)
	Connect(ctx context.Context, conn domain.Connection) domain.Edge
	ApplyNodeChanges(changes ...domain.NodeChange) []domain.Node
	ApplyEdgeChanges(changes ...domain.EdgeChange) []domain.Edge
	Execute(ctx context.Context) (domain.Outcome, error)
	Reset()
}

var _ Editor = (*stepflow.Editor)(nil)

// Server serves the editor API.
type Server struct {
	Editor  Editor
	Streams *StreamManager
	logger  *slog.Logger
}

// HandlerOption configures NewHandler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// WithGatherer exposes the given registry on GET /metrics.
func WithGatherer(g prometheus.Gatherer) HandlerOption {
	return func(c *handlerConfig) {
		c.gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) HandlerOption {
	return func(c *handlerConfig) {
		c.logger = l
	}
}

// NewHandler creates a new HTTP handler for the editor.
func NewHandler(editor Editor, opts ...HandlerOption) http.Handler {
	cfg := handlerConfig{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	server := &Server{
		Editor:  editor,
		Streams: NewStreamManager(cfg.logger),
		logger:  cfg.logger,
	}

	r := chi.NewRouter()
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/catalog", server.GetCatalog)
	r.Put("/selection", server.PutSelection)
	r.Get("/graph", server.GetGraph)
	r.Delete("/graph", server.DeleteGraph)
	r.Post("/nodes", server.AddNode)
	r.Post("/nodes/changes", server.NodeChanges)
	r.Post("/edges/changes", server.EdgeChanges)
	r.Post("/connect", server.Connect)
	r.Get("/gate", server.GetGate)
	r.Post("/status", server.CheckStatus)
	r.Post("/execute", server.Execute)
	r.Get("/events", server.SubscribeEvents)
	if cfg.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CatalogEntry is one page as listed by GET /catalog.
type CatalogEntry struct {
	Key string `json:"key"`
	domain.Page
}

// CatalogResponse is the body of GET /catalog.
type CatalogResponse struct {
	Pages    []CatalogEntry `json:"pages"`
	Selected string         `json:"selected"`
	Default  string         `json:"default"`
}

// OutcomeResponse is the body of POST /status and POST /execute.
type OutcomeResponse struct {
	domain.Outcome
	Error string           `json:"error,omitempty"`
	Gate  domain.GateState `json:"gate"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "stepflow-http",
		"version": stepflow.Version,
	})
}

// GetCatalog handles the GET /catalog request.
func (s *Server) GetCatalog(w http.ResponseWriter, r *http.Request) {
	entries := s.Editor.Catalog().Entries()
	resp := CatalogResponse{
		Pages:    make([]CatalogEntry, 0, len(entries)),
		Selected: s.Editor.Selected(),
		Default:  catalog.DefaultKey,
	}
	for _, e := range entries {
		resp.Pages = append(resp.Pages, CatalogEntry{Key: e.Key, Page: e.Page})
	}
	writeJSON(w, http.StatusOK, resp)
}

// PutSelection handles the PUT /selection request.
func (s *Server) PutSelection(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("PutSelection: Invalid request body", "error", err)
		return
	}
	s.Editor.Select(body.Key)
	writeJSON(w, http.StatusOK, map[string]string{"selected": body.Key})
}

// GetGraph handles the GET /graph request.
// With ?format=mermaid it returns a Mermaid flowchart instead of JSON.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	snap := s.Editor.Snapshot()
	if r.URL.Query().Get("format") == "mermaid" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(mermaid.GenerateMermaid(snap.Nodes, snap.Edges, &mermaid.Overlay{ShowOrder: true, HighlightSelected: true})))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// DeleteGraph handles the DELETE /graph request.
func (s *Server) DeleteGraph(w http.ResponseWriter, r *http.Request) {
	s.Editor.Reset()
	s.broadcastGraph()
	w.WriteHeader(http.StatusNoContent)
}

// AddNode handles the POST /nodes request.
// An optional {"key": "..."} body names the page; otherwise the selection is used.
func (s *Server) AddNode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Key *string `json:"key"`
	}
	if r.Body != nil && r.Body != http.NoBody {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			s.logger.Warn("AddNode: Invalid request body", "error", err)
			return
		}
	}

	var (
		node domain.Node
		err  error
	)
	if body.Key != nil {
		node, err = s.Editor.AddPage(r.Context(), *body.Key)
	} else {
		node, err = s.Editor.AddNode(r.Context())
	}
	switch {
	case errors.Is(err, domain.ErrLocked):
		http.Error(w, err.Error(), http.StatusLocked)
		return
	case errors.Is(err, domain.ErrPageNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, fmt.Sprintf("AddNode error: %v", err), http.StatusInternalServerError)
		s.logger.Error("AddNode failed", "error", err)
		return
	}

	s.broadcastGraph()
	writeJSON(w, http.StatusCreated, node)
}

// NodeChanges handles the POST /nodes/changes request.
func (s *Server) NodeChanges(w http.ResponseWriter, r *http.Request) {
	var raw []map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("NodeChanges: Invalid request body", "error", err)
		return
	}
	changes, err := dto.DecodeNodeChanges(raw)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid changes: %v", err), http.StatusBadRequest)
		return
	}
	if skipped := len(raw) - len(changes); skipped > 0 {
		s.logger.Debug("NodeChanges: render-only changes ignored", "count", skipped)
	}

	nodes := s.Editor.ApplyNodeChanges(changes...)
	s.broadcastGraph()
	writeJSON(w, http.StatusOK, nodes)
}

// EdgeChanges handles the POST /edges/changes request.
func (s *Server) EdgeChanges(w http.ResponseWriter, r *http.Request) {
	var raw []map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("EdgeChanges: Invalid request body", "error", err)
		return
	}
	changes, err := dto.DecodeEdgeChanges(raw)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid changes: %v", err), http.StatusBadRequest)
		return
	}
	if skipped := len(raw) - len(changes); skipped > 0 {
		s.logger.Debug("EdgeChanges: render-only changes ignored", "count", skipped)
	}

	edges := s.Editor.ApplyEdgeChanges(changes...)
	s.broadcastGraph()
	writeJSON(w, http.StatusOK, edges)
}

// Connect handles the POST /connect request.
func (s *Server) Connect(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Connect: Invalid request body", "error", err)
		return
	}
	conn, err := dto.DecodeConnection(raw)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid connection: %v", err), http.StatusBadRequest)
		return
	}

	edge := s.Editor.Connect(r.Context(), conn)
	s.broadcastGraph()
	writeJSON(w, http.StatusCreated, edge)
}

// GetGate handles the GET /gate request.
func (s *Server) GetGate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]domain.GateState{"state": s.Editor.GateState()})
}

// CheckStatus handles the POST /status request.
// The HTTP status is always 200; the outcome carries the backend result.
func (s *Server) CheckStatus(w http.ResponseWriter, r *http.Request) {
	out := s.Editor.CheckStatus(r.Context())
	s.respondOutcome(w, out)
}

// Execute handles the POST /execute request.
func (s *Server) Execute(w http.ResponseWriter, r *http.Request) {
	out, err := s.Editor.Execute(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusLocked)
		return
	}
	s.respondOutcome(w, out)
}

// SubscribeEvents handles the GET /events request (SSE).
// ?topic=graph or ?topic=notifications limits the stream to one topic.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	topics := []string{TopicGraph, TopicNotifications}
	if t := r.URL.Query().Get("topic"); t != "" {
		topics = []string{t}
	}

	ch, cancel := s.Streams.Subscribe(topics...)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE Client Disconnected")
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Topic, ev.Data)
			flusher.Flush()
		}
	}
}

func (s *Server) respondOutcome(w http.ResponseWriter, out domain.Outcome) {
	resp := OutcomeResponse{Outcome: out, Gate: s.Editor.GateState()}
	if out.Err != nil {
		resp.Error = out.Err.Error()
	}
	if data, err := json.Marshal(out.Notification); err == nil {
		s.Streams.Broadcast(TopicNotifications, string(data))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) broadcastGraph() {
	data, err := json.Marshal(s.Editor.Snapshot())
	if err != nil {
		s.logger.Error("Graph encode failed", "error", err)
		return
	}
	s.Streams.Broadcast(TopicGraph, string(data))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}
