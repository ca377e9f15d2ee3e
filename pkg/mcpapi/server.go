// Package mcpapi exposes the batch engine and tracker lookups as MCP tools,
// served over stateless streamable HTTP or stdio.
package mcpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/michelzandonai/jira-mcp/pkg/batch"
	"github.com/michelzandonai/jira-mcp/pkg/jira"
)

// defaultShutdownTimeout bounds graceful shutdown time once context cancellation starts.
const defaultShutdownTimeout = 5 * time.Second

// Config captures MCP transport configuration.
type Config struct {
	ServerName    string
	ServerVersion string
	EndpointPath  string
}

// BatchRunner runs whole batches and reports one result per item.
type BatchRunner interface {
	RunCreate(ctx context.Context, req batch.CreateRequest) (*batch.Report, error)
	RunLogWork(ctx context.Context, req batch.LogWorkRequest) (*batch.Report, error)
}

// ProjectResolver turns free-text project identifiers into projects.
type ProjectResolver interface {
	ResolveProject(ctx context.Context, identifier string) (*jira.Project, error)
}

// Directory reads projects and issues from the tracker.
type Directory interface {
	ListProjects(ctx context.Context) ([]jira.Project, error)
	GetProject(ctx context.Context, key string) (*jira.Project, error)
	SearchIssues(ctx context.Context, jql string, limit int) ([]jira.Issue, error)
}

// Dependencies defines the services backing the MCP tools. Batch is required;
// the others enable their tool groups when present.
type Dependencies struct {
	Batch     BatchRunner
	Runner    batch.OperationRunner
	Resolver  ProjectResolver
	Directory Directory
}

// Handler wraps one stateless MCP streamable HTTP handler.
type Handler struct {
	httpHandler http.Handler
}

// NewHandler builds one stateless MCP adapter with batch, issue, and browse tools.
func NewHandler(cfg Config, deps Dependencies) (*Handler, error) {
	cfg = normalizeConfig(cfg)
	mcpSrv, err := newMCPServer(cfg, deps)
	if err != nil {
		return nil, err
	}

	streamable := mcpserver.NewStreamableHTTPServer(
		mcpSrv,
		mcpserver.WithEndpointPath(cfg.EndpointPath),
		mcpserver.WithStateLess(true),
	)
	return &Handler{httpHandler: streamable}, nil
}

// ServeHTTP handles one MCP streamable HTTP request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.httpHandler == nil {
		http.Error(w, "mcp handler unavailable", http.StatusServiceUnavailable)
		return
	}
	h.httpHandler.ServeHTTP(w, r)
}

// ServeStdio serves the MCP tools over stdin/stdout and blocks until EOF.
func ServeStdio(cfg Config, deps Dependencies) error {
	mcpSrv, err := newMCPServer(normalizeConfig(cfg), deps)
	if err != nil {
		return err
	}
	return mcpserver.ServeStdio(mcpSrv)
}

// Run serves the MCP endpoint plus health probes over HTTP and blocks until
// shutdown or startup failure.
func Run(ctx context.Context, addr string, cfg Config, deps Dependencies) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg = normalizeConfig(cfg)

	handler, err := NewHandler(cfg, deps)
	if err != nil {
		return fmt.Errorf("build mcp handler: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", writeHealthStatus)
	mux.HandleFunc("/readyz", writeHealthStatus)
	mux.Handle(cfg.EndpointPath, handler)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serveErrCh := make(chan error, 1)
	go func() {
		serveErrCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErrCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen and serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()

		shutdownErr := httpServer.Shutdown(shutdownCtx)
		serveErr := <-serveErrCh
		if shutdownErr != nil && !errors.Is(shutdownErr, context.Canceled) {
			return fmt.Errorf("shutdown server: %w", shutdownErr)
		}
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return fmt.Errorf("serve after shutdown: %w", serveErr)
		}
		return nil
	}
}

// newMCPServer assembles the MCP server and registers every available tool group.
func newMCPServer(cfg Config, deps Dependencies) (*mcpserver.MCPServer, error) {
	if deps.Batch == nil {
		return nil, fmt.Errorf("batch service is required")
	}

	mcpSrv := mcpserver.NewMCPServer(
		cfg.ServerName,
		cfg.ServerVersion,
		mcpserver.WithToolCapabilities(false),
	)
	registerBatchTools(mcpSrv, deps.Batch)
	registerIssueTools(mcpSrv, deps.Runner, deps.Resolver)
	registerBrowseTools(mcpSrv, deps.Directory, deps.Resolver)
	return mcpSrv, nil
}

// normalizeConfig applies deterministic defaults to MCP adapter config.
func normalizeConfig(cfg Config) Config {
	cfg.ServerName = strings.TrimSpace(cfg.ServerName)
	if cfg.ServerName == "" {
		cfg.ServerName = "jira-mcp"
	}
	cfg.ServerVersion = strings.TrimSpace(cfg.ServerVersion)
	if cfg.ServerVersion == "" {
		cfg.ServerVersion = "dev"
	}
	cfg.EndpointPath = strings.TrimSpace(cfg.EndpointPath)
	if cfg.EndpointPath == "" {
		cfg.EndpointPath = "/mcp"
	}
	if !strings.HasPrefix(cfg.EndpointPath, "/") {
		cfg.EndpointPath = "/" + cfg.EndpointPath
	}
	cfg.EndpointPath = "/" + strings.Trim(cfg.EndpointPath, "/")
	return cfg
}

// writeHealthStatus responds with a deterministic readiness payload.
func writeHealthStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
}
