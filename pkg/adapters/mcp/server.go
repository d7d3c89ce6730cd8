// Package mcp exposes the tour engine as a Model Context Protocol server,
// so agent tooling can inspect and drive a walkthrough.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	tour "github.com/josephwaugh312/shiftsync-tour"
	"github.com/josephwaugh312/shiftsync-tour/pkg/domain"
)

// StatusResponse provides a unified structure across adapters: the state,
// the step the user currently sees, and whether advancement is permitted.
type StatusResponse struct {
	State       domain.TourState       `json:"state" jsonschema_description:"The current state of the tour"`
	CurrentStep *domain.StepDescriptor `json:"current_step,omitempty" jsonschema_description:"The step currently shown"`
	ActionMet   bool                   `json:"action_met" jsonschema_description:"Whether the current step permits advancing"`
}

// Engine defines the interface required by the MCP server to drive the tour.
type Engine interface {
	State() domain.TourState
	Catalog() domain.Catalog
	Start(ctx context.Context)
	Resume(ctx context.Context)
	Toggle(ctx context.Context)
	Next(ctx context.Context) bool
	Prev(ctx context.Context) bool
	Skip(ctx context.Context)
	CheckRequiredAction() bool
	CompleteRequiredAction(ctx context.Context)
	HandleRouteChange(ctx context.Context, route string)
	HandleClick(ctx context.Context, href string)
}

// Server wraps the tour Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("shiftsync-tour-mcp", strings.TrimSpace(tour.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
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
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fmt.Println("\nShutdown signal received, shutting down server...")
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
	// TOOL: tour_status
	s.mcpServer.AddTool(mcp.NewTool("tour_status",
		mcp.WithDescription("Get the current tour state, the visible step, and whether advancing is permitted."),
		mcp.WithOutputSchema[StatusResponse](),
	), mcp.NewStructuredToolHandler(s.handleStatus))

	// TOOL: tour_control
	controlTool := mcp.NewTool("tour_control",
		mcp.WithDescription("Drive the tour: start, resume, toggle, next, prev, skip, or complete_action."),
		mcp.WithString("command", mcp.Required(),
			mcp.Description("One of: start, resume, toggle, next, prev, skip, complete_action")),
		mcp.WithOutputSchema[StatusResponse](),
	)
	s.mcpServer.AddTool(controlTool, mcp.NewStructuredToolHandler(s.handleControl))

	// TOOL: tour_signal
	signalTool := mcp.NewTool("tour_signal",
		mcp.WithDescription("Report a host event to the tour: a route change or a click on a navigation element."),
		mcp.WithString("kind", mcp.Required(), mcp.Description("Signal kind: route or click")),
		mcp.WithString("value", mcp.Required(), mcp.Description("The route path or clicked href")),
		mcp.WithOutputSchema[StatusResponse](),
	)
	s.mcpServer.AddTool(signalTool, mcp.NewStructuredToolHandler(s.handleSignal))

	// TOOL: get_catalog
	s.mcpServer.AddTool(mcp.NewTool("get_catalog",
		mcp.WithDescription("Get the full step catalog for introspection."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, err := json.Marshal(s.engine.Catalog())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshal failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

// Handler methods for structured tools

func (s *Server) handleStatus(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StatusResponse, error) {
	return s.status(), nil
}

func (s *Server) handleControl(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StatusResponse, error) {
	command, _ := args["command"].(string)

	switch command {
	case "start":
		s.engine.Start(ctx)
	case "resume":
		s.engine.Resume(ctx)
	case "toggle":
		s.engine.Toggle(ctx)
	case "next":
		if !s.engine.Next(ctx) && s.engine.State().Active {
			return s.status(), fmt.Errorf("step requires an action before advancing")
		}
	case "prev":
		s.engine.Prev(ctx)
	case "skip":
		s.engine.Skip(ctx)
	case "complete_action":
		s.engine.CompleteRequiredAction(ctx)
	default:
		return StatusResponse{}, fmt.Errorf("unknown command %q", command)
	}

	return s.status(), nil
}

func (s *Server) handleSignal(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StatusResponse, error) {
	kind, _ := args["kind"].(string)
	value, _ := args["value"].(string)

	switch kind {
	case "route":
		s.engine.HandleRouteChange(ctx, value)
	case "click":
		s.engine.HandleClick(ctx, value)
	default:
		return StatusResponse{}, fmt.Errorf("unknown signal kind %q", kind)
	}

	return s.status(), nil
}

func (s *Server) status() StatusResponse {
	state := s.engine.State()
	resp := StatusResponse{State: state, ActionMet: s.engine.CheckRequiredAction()}
	if state.Active {
		step := s.engine.Catalog()[state.StepIndex]
		resp.CurrentStep = &step
	}
	return resp
}

func (s *Server) registerResources() {
	// EXPOSE: shiftsync://tour/catalog
	s.mcpServer.AddResource(mcp.NewResource("shiftsync://tour/catalog", "Tour Step Catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.engine.Catalog())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal catalog: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "shiftsync://tour/catalog",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
