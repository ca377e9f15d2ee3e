package cmd

import (
	"fmt"
	"os"
	"time"

	charmLog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/michelzandonai/jira-mcp/pkg/batch"
	"github.com/michelzandonai/jira-mcp/pkg/config"
	"github.com/michelzandonai/jira-mcp/pkg/jira"
	"github.com/michelzandonai/jira-mcp/pkg/output"
	"github.com/michelzandonai/jira-mcp/pkg/resolver"
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "jira-mcp",
	Short: "Batch operation engine for Jira",
	Long: `A batch operation engine for Jira issue tracking, usable from the command
line or as an MCP server.

This tool allows you to:
- Create many issues in one request, with per-item results
- Log work on many issues of a project in one request
- Refer to projects and issues by name fragments instead of exact keys
- Expose all of the above as MCP tools for AI assistants`,
	Version: Version,
}

// Global flags
var (
	configPath   string
	outputFormat string
	debugMode    bool
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (defaults to nearest "+config.ConfigFileName+")")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "Output format (table, json, csv)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
}

func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		errFormat := output.FormatTable
		if outputFormat == "json" {
			errFormat = output.FormatJSON
		}
		_ = output.NewFormatterWithWriter(errFormat, os.Stderr).FormatError(err)
		return 1
	}
	return 0
}

// loadConfig loads the configuration, honoring the --config flag.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w\nSet %s and %s or create %s",
			err, config.EnvJiraURL, config.EnvJiraAPIToken, config.ConfigFileName)
	}
	return cfg, nil
}

// newLogger builds the CLI logger from the logging config.
func newLogger(cfg *config.Config) *charmLog.Logger {
	return charmLog.NewWithOptions(os.Stderr, charmLog.Options{
		Level:           logLevel(cfg),
		Prefix:          "jira-mcp",
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.TextFormatter,
	})
}

// logLevel picks the log level from config. --debug wins over the configured
// level; an unparseable level falls back to info.
func logLevel(cfg *config.Config) charmLog.Level {
	if debugMode {
		return charmLog.DebugLevel
	}
	if parsed, err := charmLog.ParseLevel(cfg.Logging.Level); err == nil {
		return parsed
	}
	return charmLog.InfoLevel
}

// engine bundles the wired tracker client and batch components.
type engine struct {
	client       *jira.Client
	resolver     *resolver.Resolver
	executor     *batch.Executor
	orchestrator *batch.Orchestrator

	// defaultProject fills in the project when a command is run without one.
	defaultProject string
}

// buildEngine wires the tracker client, resolver and batch engine from config.
func buildEngine(cfg *config.Config, logger *charmLog.Logger) *engine {
	client := jira.NewClient(cfg.Jira.URL, cfg.Jira.Username, cfg.Jira.APIToken)
	res := resolver.New(client, client, cfg.Defaults.MaxSearchResults)
	exec := batch.NewExecutor(client, res, cfg.Defaults.IssueType)
	return &engine{
		client:         client,
		resolver:       res,
		executor:       exec,
		orchestrator:   batch.NewOrchestrator(exec, res, logger),
		defaultProject: cfg.Defaults.Project,
	}
}

// selectFormat maps the global output flag and a per-command quiet flag to a
// formatter type.
func selectFormat(quiet bool) output.FormatType {
	if quiet {
		return output.FormatQuiet
	}
	switch outputFormat {
	case "json":
		return output.FormatJSON
	case "csv":
		return output.FormatCSV
	default:
		return output.FormatTable
	}
}
