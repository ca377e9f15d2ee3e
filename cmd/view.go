package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/michelzandonai/jira-mcp/pkg/output"
	"github.com/michelzandonai/jira-mcp/pkg/utils"
)

var viewCmd = &cobra.Command{
	Use:   "view <issue-key|project>",
	Short: "View an issue or a project",
	Long: `Display one issue or one project. An argument shaped like an issue key
(e.g. MOB-42) shows that issue; anything else is resolved as a project
identifier and shows the project with its issue types.`,
	Example: `  # View an issue by key
  jira-mcp view MOB-42

  # View a project by key
  jira-mcp view MOB

  # View a project by name fragment
  jira-mcp view "mobile app"

  # JSON output
  jira-mcp view MOB-42 --output json`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	eng := buildEngine(cfg, newLogger(cfg))
	formatter := output.NewFormatter(selectFormat(false))

	identifier := args[0]
	if utils.IsIssueKey(identifier) {
		issue, err := eng.client.GetIssue(cmd.Context(), identifier)
		if err != nil {
			return fmt.Errorf("failed to get issue %s: %w", identifier, err)
		}
		return formatter.FormatIssue(issue)
	}

	// Resolve the fragment first, then fetch the full record including
	// issue types and lead.
	resolved, err := eng.resolver.ResolveProject(cmd.Context(), identifier)
	if err != nil {
		return err
	}
	project, err := eng.client.GetProject(cmd.Context(), resolved.Key)
	if err != nil {
		return fmt.Errorf("failed to get project %s: %w", resolved.Key, err)
	}
	return formatter.FormatProject(project)
}
