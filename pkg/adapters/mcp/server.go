package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/stepflow"
	"github.com/aretw0/stepflow/internal/logging"
	"github.com/aretw0/stepflow/pkg/catalog"
	"github.com/aretw0/stepflow/pkg/domain"
	"github.com/aretw0/stepflow/pkg/graph"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// GraphURI is the resource exposing the current graph.
const GraphURI = "stepflow://graph"

// Editor defines the editor operations exposed as MCP tools.
type Editor interface {
	Catalog() *catalog.Catalog
	GateState() domain.GateState
	Snapshot() graph.Snapshot
	CheckStatus(ctx context.Context) domain.Outcome
	AddPage(ctx context.Context, key string) (domain.Node, error)
	Connect(ctx context.Context, conn domain.Connection) domain.Edge
	Execute(ctx context.Context) (domain.Outcome, error)
}

var _ Editor = (*stepflow.Editor)(nil)

// PageEntry is one selectable page.
type PageEntry struct {
	Key         string `json:"key" jsonschema_description:"Key to pass to add_node"`
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PagesResponse lists the catalog in declaration order.
type PagesResponse struct {
	Pages []PageEntry `json:"pages"`
}

// AddNodeArgs are the arguments of add_node.
type AddNodeArgs struct {
	Key string `json:"key"`
}

// ConnectArgs are the arguments of connect.
type ConnectArgs struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// OutcomeResponse reports a backend call and the resulting gate.
type OutcomeResponse struct {
	Status       domain.OutcomeStatus     `json:"status" jsonschema_description:"Result class of the backend call"`
	Notification domain.Notification      `json:"notification"`
	Request      *domain.ExecutionRequest `json:"request,omitempty" jsonschema_description:"Payload sent to the execution API"`
	Error        string                   `json:"error,omitempty"`
	Gate         domain.GateState         `json:"gate" jsonschema_description:"Whether nodes can be added and flows executed"`
}

// Server wraps an Editor and exposes it as an MCP Server.
type Server struct {
	editor    Editor
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance.
func NewServer(editor Editor, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		editor:    editor,
		mcpServer: server.NewMCPServer("stepflow-mcp", stepflow.Version),
		logger:    logger,
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_pages",
		mcp.WithDescription("List the pages a step can navigate to."),
		mcp.WithOutputSchema[PagesResponse](),
	), mcp.NewStructuredToolHandler(s.handleListPages))

	s.mcpServer.AddTool(mcp.NewTool("check_status",
		mcp.WithDescription("Validate the execution API. A successful check unlocks add_node and execute_flow."),
		mcp.WithOutputSchema[OutcomeResponse](),
	), mcp.NewStructuredToolHandler(s.handleCheckStatus))

	s.mcpServer.AddTool(mcp.NewTool("add_node",
		mcp.WithDescription("Append a navigation step for a page. Requires a successful check_status."),
		mcp.WithString("key", mcp.Description("Page key from list_pages (defaults to home)")),
		mcp.WithOutputSchema[domain.Node](),
	), mcp.NewStructuredToolHandler(s.handleAddNode))

	s.mcpServer.AddTool(mcp.NewTool("connect",
		mcp.WithDescription("Draw an edge between two nodes. Edges do not change the execution order."),
		mcp.WithString("source", mcp.Required(), mcp.Description("Source node ID")),
		mcp.WithString("target", mcp.Required(), mcp.Description("Target node ID")),
		mcp.WithOutputSchema[domain.Edge](),
	), mcp.NewStructuredToolHandler(s.handleConnect))

	s.mcpServer.AddTool(mcp.NewTool("execute_flow",
		mcp.WithDescription("Submit the nodes, in creation order, to the execution API."),
		mcp.WithOutputSchema[OutcomeResponse](),
	), mcp.NewStructuredToolHandler(s.handleExecute))

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get the current nodes and edges."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, err := json.Marshal(s.editor.Snapshot())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleListPages(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (PagesResponse, error) {
	entries := s.editor.Catalog().Entries()
	resp := PagesResponse{Pages: make([]PageEntry, 0, len(entries))}
	for _, e := range entries {
		resp.Pages = append(resp.Pages, PageEntry{
			Key:         e.Key,
			ID:          e.Page.ID,
			Title:       e.Page.Title,
			Description: e.Page.Description,
		})
	}
	return resp, nil
}

func (s *Server) handleCheckStatus(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (OutcomeResponse, error) {
	return s.outcome(s.editor.CheckStatus(ctx)), nil
}

func (s *Server) handleAddNode(ctx context.Context, request mcp.CallToolRequest, args AddNodeArgs) (domain.Node, error) {
	node, err := s.editor.AddPage(ctx, args.Key)
	if err != nil {
		if !errors.Is(err, domain.ErrLocked) {
			s.logger.Warn("MCP AddNode: rejected", "key", args.Key, "error", err)
		}
		return domain.Node{}, fmt.Errorf("add node: %w", err)
	}
	return node, nil
}

func (s *Server) handleConnect(ctx context.Context, request mcp.CallToolRequest, args ConnectArgs) (domain.Edge, error) {
	if args.Source == "" || args.Target == "" {
		return domain.Edge{}, errors.New("source and target are required")
	}
	return s.editor.Connect(ctx, domain.Connection{Source: args.Source, Target: args.Target}), nil
}

func (s *Server) handleExecute(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (OutcomeResponse, error) {
	out, err := s.editor.Execute(ctx)
	if err != nil {
		return OutcomeResponse{}, fmt.Errorf("execute: %w", err)
	}
	return s.outcome(out), nil
}

func (s *Server) outcome(out domain.Outcome) OutcomeResponse {
	resp := OutcomeResponse{
		Status:       out.Status,
		Notification: out.Notification,
		Request:      out.Request,
		Gate:         s.editor.GateState(),
	}
	if out.Err != nil {
		resp.Error = out.Err.Error()
	}
	return resp
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(GraphURI, "Current Flow Graph",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.editor.Snapshot())
		if err != nil {
			return nil, fmt.Errorf("failed to encode graph: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      GraphURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
