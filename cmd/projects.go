package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/michelzandonai/jira-mcp/pkg/jira"
	"github.com/michelzandonai/jira-mcp/pkg/output"
)

var projectsCmd = &cobra.Command{
	Use:   "projects [query]",
	Short: "List projects in the Jira instance",
	Long: `List the projects visible to the configured account, optionally filtered
by a key or name fragment. The same matching powers identifier resolution
in create and logwork, so this is the place to check what a fragment
would select.`,
	Example: `  # List all projects
  jira-mcp projects

  # Filter by a name or key fragment
  jira-mcp projects mobile

  # Only print project keys
  jira-mcp projects --quiet

  # JSON output
  jira-mcp projects --output json`,
	RunE: runProjects,
}

var projectsQuiet bool

func init() {
	rootCmd.AddCommand(projectsCmd)

	projectsCmd.Flags().BoolVarP(&projectsQuiet, "quiet", "q", false, "Only output project keys")
}

func runProjects(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	eng := buildEngine(cfg, newLogger(cfg))
	formatter := output.NewFormatter(selectFormat(projectsQuiet))

	projects, err := eng.client.ListProjects(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	if len(args) > 0 {
		projects = filterProjects(projects, strings.Join(args, " "))
	}
	return formatter.FormatProjects(projects)
}

// filterProjects keeps projects whose key or name contains the query,
// case-insensitively.
func filterProjects(projects []jira.Project, query string) []jira.Project {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return projects
	}
	var matched []jira.Project
	for _, p := range projects {
		if strings.Contains(strings.ToLower(p.Key), needle) ||
			strings.Contains(strings.ToLower(p.Name), needle) {
			matched = append(matched, p)
		}
	}
	return matched
}
