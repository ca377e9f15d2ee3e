package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/michelzandonai/jira-mcp/pkg/config"
	initpkg "github.com/michelzandonai/jira-mcp/pkg/init"
	"github.com/michelzandonai/jira-mcp/pkg/jira"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize jira-mcp configuration",
	Long: `Initialize a new jira-mcp configuration file (.jira-mcp.yml) in the current directory.

This command will:
- Detect connection settings from JIRA_URL, JIRA_USERNAME and JIRA_API_TOKEN
- Verify the connection and let you pick a default project
- Write .jira-mcp.yml without credentials; the API token stays in the environment`,
	Example: `  # Interactive initialization
  jira-mcp init

  # Overwrite an existing configuration file
  jira-mcp init --force

  # Non-interactive, preselecting the default project
  jira-mcp init --project MOB --no-input`,
	RunE: runInit,
}

var (
	initProject string
	initForce   bool
	initNoInput bool
)

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initProject, "project", "", "Project key or name to record as the default project")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing configuration file without asking")
	initCmd.Flags().BoolVar(&initNoInput, "no-input", false, "Never prompt; rely on flags and the environment only")
}

func runInit(cmd *cobra.Command, args []string) error {
	prompt := initpkg.NewPrompt(os.Stdin, os.Stdout)

	if config.Exists() && !initForce {
		if initNoInput {
			return initpkg.NewValidationError("configuration file already exists (use --force to overwrite)")
		}
		if !prompt.ConfirmOverwrite() {
			fmt.Println("Initialization cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	conn := initpkg.DetectConnection()
	cfg.Jira.URL = conn.URL
	cfg.Jira.Username = conn.Username

	if cfg.Jira.URL == "" && !initNoInput {
		cfg.Jira.URL = prompt.GetStringInput("Enter your Jira URL (e.g. https://your-team.atlassian.net)", "")
	}
	if !conn.TokenSet {
		fmt.Printf("Note: %s is not set; export it before running commands.\n", config.EnvJiraAPIToken)
	}

	// Pick defaults against the live instance when the connection allows it.
	if cfg.Jira.URL != "" && conn.TokenSet {
		if err := selectInitDefaults(cmd.Context(), cfg, prompt); err != nil {
			fmt.Printf("Warning: %v\n", err)
			if hint := initpkg.Hint(err); hint != "" {
				fmt.Println(hint)
			}
		}
	}

	if err := cfg.Save(config.ConfigFileName); err != nil {
		return initpkg.NewFileSystemError("failed to save configuration", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", config.ConfigFileName)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Review and edit .jira-mcp.yml to customize settings")
	fmt.Printf("  2. Export %s so jira-mcp can authenticate\n", config.EnvJiraAPIToken)
	fmt.Println("  3. Run 'jira-mcp projects' to verify the connection")

	return nil
}

// selectInitDefaults lists the reachable projects and records the chosen one,
// along with its preferred issue type, in the config defaults.
func selectInitDefaults(ctx context.Context, cfg *config.Config, prompt *initpkg.Prompt) error {
	client := jira.NewClient(cfg.Jira.URL, cfg.Jira.Username, os.Getenv(config.EnvJiraAPIToken))

	fmt.Printf("Fetching projects from %s...\n", cfg.Jira.URL)
	projects, err := initpkg.NewDetector(client).ListProjects(ctx)
	if err != nil {
		return err
	}

	var selected *jira.Project
	if initProject != "" {
		selected = matchInitProject(projects, initProject)
		if selected == nil {
			fmt.Printf("Project '%s' not found; skipping default project.\n", initProject)
		}
	} else if !initNoInput {
		selected = prompt.SelectProject(projects)
	}
	if selected == nil {
		return nil
	}

	fmt.Printf("Selected default project: %s (%s)\n", selected.Name, selected.Key)

	defaults, err := initpkg.NewMetadataFetcher(client).DefaultsFor(ctx, selected.Key)
	if err != nil {
		// The project choice still stands even when its metadata is unreachable.
		cfg.Defaults.Project = selected.Key
		fmt.Printf("Warning: %v\n", err)
		return nil
	}

	cfg.Defaults.Project = defaults.Project
	if defaults.IssueType != "" {
		cfg.Defaults.IssueType = defaults.IssueType
	}
	return nil
}

// matchInitProject finds a project by exact key first, then by name fragment.
func matchInitProject(projects []jira.Project, identifier string) *jira.Project {
	for i := range projects {
		if strings.EqualFold(projects[i].Key, identifier) {
			return &projects[i]
		}
	}
	needle := strings.ToLower(identifier)
	for i := range projects {
		if strings.Contains(strings.ToLower(projects[i].Name), needle) {
			return &projects[i]
		}
	}
	return nil
}
