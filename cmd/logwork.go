package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/michelzandonai/jira-mcp/pkg/batch"
	"github.com/michelzandonai/jira-mcp/pkg/output"
)

var logworkCmd = &cobra.Command{
	Use:     "logwork",
	Aliases: []string{"log"},
	Short:   "Log work on issues of one project",
	Long: `Log work on existing Jira issues through the batch engine. All entries of
one batch share a project, which is resolved exactly once; if the project
cannot be resolved, no entry is attempted.

This command will:
- Resolve the shared project from an exact key or a name fragment
- Resolve each issue from an exact key or a summary fragment
- Record work logs in input order, isolating failures per entry
- Print one result record per entry`,
	Example: `  # Log work on one issue by key
  jira-mcp logwork --project MOB --issue MOB-4 --time 30m

  # Refer to the issue by a summary fragment
  jira-mcp logwork -p "Mobile App" -i "login flow" -t 1h -m "pairing session"

  # Log a batch of entries from a file
  jira-mcp logwork --from-file worklog.yml

  # Supply the shared project on the command line instead of in the file
  jira-mcp logwork --from-file worklog.yml --project MOB`,
	RunE: runLogWork,
}

// Command flags
var (
	logworkProject  string
	logworkIssue    string
	logworkTime     string
	logworkDate     string
	logworkDesc     string
	logworkFromFile string
	logworkQuiet    bool
)

func init() {
	rootCmd.AddCommand(logworkCmd)

	// Single entry flags
	logworkCmd.Flags().StringVarP(&logworkProject, "project", "p", "", "Project key or name fragment (shared by the whole batch)")
	logworkCmd.Flags().StringVarP(&logworkIssue, "issue", "i", "", "Issue key or summary fragment")
	logworkCmd.Flags().StringVarP(&logworkTime, "time", "t", "", "Time spent, e.g. \"2h 30m\"")
	logworkCmd.Flags().StringVar(&logworkDate, "work-date", "", "Work date, ISO or natural language like \"last friday\"")
	logworkCmd.Flags().StringVarP(&logworkDesc, "message", "m", "", "Work log comment")

	// Batch mode
	logworkCmd.Flags().StringVar(&logworkFromFile, "from-file", "", "Log work entries from a YAML batch file")

	// Output control
	logworkCmd.Flags().BoolVarP(&logworkQuiet, "quiet", "q", false, "Only output issue keys that received work logs")
}

type LogWorkCommand struct {
	engine    *engine
	formatter *output.Formatter
}

func runLogWork(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	command := &LogWorkCommand{
		engine:    buildEngine(cfg, newLogger(cfg)),
		formatter: output.NewFormatter(selectFormat(logworkQuiet)),
	}

	if logworkFromFile != "" {
		return command.ExecuteBatch(cmd, logworkFromFile)
	}
	return command.Execute(cmd)
}

// Execute logs work on one issue from the command flags, as a batch of one.
func (c *LogWorkCommand) Execute(cmd *cobra.Command) error {
	project := logworkProject
	if project == "" {
		project = c.engine.defaultProject
	}

	req := batch.LogWorkRequest{
		ProjectIdentifier: project,
		Items: []batch.LogTimeItem{{
			IssueIdentifier: logworkIssue,
			TimeSpent:       logworkTime,
			WorkDate:        logworkDate,
			WorkDescription: logworkDesc,
		}},
	}

	report, err := c.engine.orchestrator.RunLogWork(cmd.Context(), req)
	if err != nil {
		return err
	}
	return c.printReport(report)
}

// ExecuteBatch logs every work entry listed in a YAML batch file.
func (c *LogWorkCommand) ExecuteBatch(cmd *cobra.Command, path string) error {
	req, err := readLogWorkBatchFile(path)
	if err != nil {
		return err
	}
	if req.ProjectIdentifier == "" {
		req.ProjectIdentifier = c.engine.defaultProject
	}

	report, err := c.engine.orchestrator.RunLogWork(cmd.Context(), req)
	if err != nil {
		return err
	}
	return c.printReport(report)
}

func (c *LogWorkCommand) printReport(report *batch.Report) error {
	if err := c.formatter.FormatReport(report); err != nil {
		return err
	}
	return reportExitError(report)
}

// readLogWorkBatchFile parses a work log batch request from a YAML file. The
// --project flag overrides the file's project_identifier when given.
func readLogWorkBatchFile(path string) (batch.LogWorkRequest, error) {
	var req batch.LogWorkRequest

	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("failed to read batch file: %w", err)
	}
	if err := yaml.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("failed to parse batch file %s: %w", path, err)
	}
	if logworkProject != "" {
		req.ProjectIdentifier = logworkProject
	}
	if len(req.Items) == 0 {
		return req, fmt.Errorf("batch file %s contains no items", path)
	}
	return req, nil
}
