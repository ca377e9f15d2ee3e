package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/michelzandonai/jira-mcp/pkg/args"
	"github.com/michelzandonai/jira-mcp/pkg/config"
	"github.com/michelzandonai/jira-mcp/pkg/output"
)

var issuesCmd = &cobra.Command{
	Use:     "issues [query]",
	Aliases: []string{"search"},
	Short:   "Search issues in a project",
	Long: `Search issues in one project by summary text, newest first. The project
may be an exact key or a name fragment; it is resolved the same way the
batch engine resolves it.`,
	Example: `  # List recent issues in a project
  jira-mcp issues --project MOB

  # Search by summary text
  jira-mcp issues login --project "Mobile App"

  # Narrow by status and issue type
  jira-mcp issues -p MOB -s "In Progress" -t Bug

  # Cap the number of results
  jira-mcp issues login -p MOB -L 5

  # Only print issue keys
  jira-mcp issues -p MOB --quiet`,
	RunE: runIssues,
}

// Command flags
var (
	issuesProject string
	issuesQuiet   bool
)

func init() {
	rootCmd.AddCommand(issuesCmd)

	issuesCmd.Flags().StringVarP(&issuesProject, "project", "p", "", "Project key or name fragment")
	issuesCmd.Flags().BoolVarP(&issuesQuiet, "quiet", "q", false, "Only output issue keys")
	args.AddSearchFlags(issuesCmd)
}

func runIssues(cmd *cobra.Command, cmdArgs []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	identifier := issuesProject
	if identifier == "" {
		identifier = cfg.Defaults.Project
	}
	if identifier == "" {
		return fmt.Errorf("--project is required (or set defaults.project in %s)", config.ConfigFileName)
	}

	filters, err := args.ParseSearchFlags(cmd)
	if err != nil {
		return err
	}
	filters.Query = strings.Join(cmdArgs, " ")
	if filters.Limit <= 0 {
		filters.Limit = cfg.Defaults.MaxSearchResults
	}

	eng := buildEngine(cfg, newLogger(cfg))
	formatter := output.NewFormatter(selectFormat(issuesQuiet))

	project, err := eng.resolver.ResolveProject(cmd.Context(), identifier)
	if err != nil {
		return err
	}

	issues, err := eng.client.SearchIssues(cmd.Context(), filters.JQL(project.Key), filters.Limit)
	if err != nil {
		return fmt.Errorf("failed to search issues: %w", err)
	}
	return formatter.FormatIssues(issues)
}
