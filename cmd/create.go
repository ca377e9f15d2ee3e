package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/michelzandonai/jira-mcp/pkg/batch"
	"github.com/michelzandonai/jira-mcp/pkg/output"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create issues, one or many at a time",
	Long: `Create Jira issues through the batch engine. A single issue is a batch of
one; a YAML file turns into a batch of many.

This command will:
- Resolve the project from an exact key or a name fragment
- Create each issue in input order, isolating failures per item
- Optionally log initial work on each created issue
- Print one result record per item`,
	Example: `  # Create an issue with a summary
  jira-mcp create --summary "Fix login bug" --project MOB

  # Create with a description and an estimate
  jira-mcp create -s "Add OAuth" -p "Mobile App" -d "Use the new flow" --estimate 3d

  # Create and log initial work in the same operation
  jira-mcp create -s "Hotfix" -p MOB --time-spent 2h --work-date yesterday

  # Create many issues from a file
  jira-mcp create --from-file issues.yml

  # Only print created issue keys
  jira-mcp create --from-file issues.yml --quiet`,
	RunE: runCreate,
}

// Command flags
var (
	createSummary     string
	createDescription string
	createProject     string
	createType        string
	createEstimate    string
	createTimeSpent   string
	createWorkDate    string
	createWorkDesc    string
	createFromFile    string
	createQuiet       bool
)

func init() {
	rootCmd.AddCommand(createCmd)

	// Basic issue flags
	createCmd.Flags().StringVarP(&createSummary, "summary", "s", "", "Issue summary")
	createCmd.Flags().StringVarP(&createDescription, "description", "d", "", "Issue description")
	createCmd.Flags().StringVarP(&createProject, "project", "p", "", "Project key or name fragment")
	createCmd.Flags().StringVar(&createType, "type", "", "Issue type (defaults to the configured issue_type)")
	createCmd.Flags().StringVar(&createEstimate, "estimate", "", "Original time estimate, e.g. 3d")

	// Initial work log flags
	createCmd.Flags().StringVar(&createTimeSpent, "time-spent", "", "Log this much work after creating, e.g. \"2h 30m\"")
	createCmd.Flags().StringVar(&createWorkDate, "work-date", "", "Work date, ISO or natural language like \"yesterday\"")
	createCmd.Flags().StringVar(&createWorkDesc, "work-description", "", "Work log comment")

	// Batch mode
	createCmd.Flags().StringVar(&createFromFile, "from-file", "", "Create issues from a YAML batch file")

	// Output control
	createCmd.Flags().BoolVarP(&createQuiet, "quiet", "q", false, "Only output created issue keys")
}

type CreateCommand struct {
	engine    *engine
	formatter *output.Formatter
}

func runCreate(cmd *cobra.Command, args []string) error {
	// Positional words are a summary when --summary is not given.
	if len(args) > 0 && createSummary == "" {
		createSummary = strings.Join(args, " ")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	command := &CreateCommand{
		engine:    buildEngine(cfg, newLogger(cfg)),
		formatter: output.NewFormatter(selectFormat(createQuiet)),
	}

	if createFromFile != "" {
		return command.ExecuteBatch(cmd, createFromFile)
	}
	return command.Execute(cmd)
}

// Execute creates one issue from the command flags, as a batch of one.
func (c *CreateCommand) Execute(cmd *cobra.Command) error {
	project := createProject
	if project == "" {
		project = c.engine.defaultProject
	}

	req := batch.CreateRequest{Items: []batch.CreateItem{{
		Summary:           createSummary,
		Description:       createDescription,
		IssueType:         createType,
		ProjectIdentifier: project,
		OriginalEstimate:  createEstimate,
		TimeSpent:         createTimeSpent,
		WorkDate:          createWorkDate,
		WorkDescription:   createWorkDesc,
	}}}

	report, err := c.engine.orchestrator.RunCreate(cmd.Context(), req)
	if err != nil {
		return err
	}
	return c.printReport(report)
}

// ExecuteBatch creates every issue listed in a YAML batch file.
func (c *CreateCommand) ExecuteBatch(cmd *cobra.Command, path string) error {
	req, err := readCreateBatchFile(path)
	if err != nil {
		return err
	}

	report, err := c.engine.orchestrator.RunCreate(cmd.Context(), req)
	if err != nil {
		return err
	}
	return c.printReport(report)
}

// printReport renders the report and reflects failed items in the exit code.
func (c *CreateCommand) printReport(report *batch.Report) error {
	if err := c.formatter.FormatReport(report); err != nil {
		return err
	}
	return reportExitError(report)
}

// readCreateBatchFile parses a create batch request from a YAML file.
// JSON works too since YAML is a superset.
func readCreateBatchFile(path string) (batch.CreateRequest, error) {
	var req batch.CreateRequest

	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("failed to read batch file: %w", err)
	}
	if err := yaml.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("failed to parse batch file %s: %w", path, err)
	}
	if len(req.Items) == 0 {
		return req, fmt.Errorf("batch file %s contains no items", path)
	}
	return req, nil
}

// reportExitError turns a report with failed items into a command error so
// the process exits non-zero. The report itself was already printed.
func reportExitError(report *batch.Report) error {
	_, _, failed := report.Counts()
	if failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d items failed", failed, report.Len())
}
