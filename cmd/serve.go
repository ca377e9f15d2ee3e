package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/michelzandonai/jira-mcp/pkg/mcpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server exposing the batch engine",
	Long: `Run an MCP server that exposes the batch engine and tracker lookups as
tools for AI assistants.

By default the server speaks MCP over stdio, which is what desktop
assistants expect. With --http it serves the stateless streamable HTTP
transport instead, alongside /healthz and /readyz endpoints.`,
	Example: `  # Serve over stdio (for MCP client configs)
  jira-mcp serve

  # Serve over streamable HTTP on the configured address
  jira-mcp serve --http

  # Serve over HTTP on an explicit address
  jira-mcp serve --http --addr :9090`,
	RunE: runServe,
}

// Command flags
var (
	serveHTTP bool
	serveAddr string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveHTTP, "http", false, "Serve streamable HTTP instead of stdio")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "HTTP listen address (overrides the configured http_addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(cfg)
	eng := buildEngine(cfg, logger)

	mcpCfg := mcpapi.Config{
		ServerName:    cfg.Server.Name,
		ServerVersion: Version,
		EndpointPath:  cfg.Server.EndpointPath,
	}
	deps := mcpapi.Dependencies{
		Batch:     eng.orchestrator,
		Runner:    eng.executor,
		Resolver:  eng.resolver,
		Directory: eng.client,
	}

	if !serveHTTP {
		// Stdio owns stdout, so nothing else may print there.
		return mcpapi.ServeStdio(mcpCfg, deps)
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.HTTPAddr
	}
	if addr == "" {
		addr = "localhost:8080"
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting mcp server", "addr", addr, "endpoint", mcpCfg.EndpointPath)
	return mcpapi.Run(ctx, addr, mcpCfg, deps)
}
