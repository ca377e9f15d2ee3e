package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/michelzandonai/jira-mcp/pkg/batch"
	"github.com/michelzandonai/jira-mcp/pkg/jira"
)

// FormatType represents the output format type
type FormatType int

const (
	// FormatTable outputs as a formatted table
	FormatTable FormatType = iota
	// FormatJSON outputs as JSON
	FormatJSON
	// FormatCSV outputs as CSV
	FormatCSV
	// FormatQuiet outputs minimal information
	FormatQuiet
)

// Formatter handles output formatting
type Formatter struct {
	format FormatType
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(format FormatType) *Formatter {
	return &Formatter{
		format: format,
		writer: os.Stdout,
	}
}

// NewFormatterWithWriter creates a new formatter with custom writer
func NewFormatterWithWriter(format FormatType, writer io.Writer) *Formatter {
	return &Formatter{
		format: format,
		writer: writer,
	}
}

// FormatReport formats the per-item results of a batch run
func (f *Formatter) FormatReport(report *batch.Report) error {
	switch f.format {
	case FormatQuiet:
		return f.formatReportQuiet(report)
	case FormatJSON:
		return f.encodeJSON(report)
	case FormatCSV:
		return f.formatReportCSV(report)
	default:
		return f.formatReportTable(report)
	}
}

// formatReportQuiet prints only the keys of issues that exist after the run.
func (f *Formatter) formatReportQuiet(report *batch.Report) error {
	for _, result := range report.Results {
		if result.IssueKey == "" {
			continue
		}
		if _, err := fmt.Fprintln(f.writer, result.IssueKey); err != nil {
			return err
		}
	}
	return nil
}

// formatReportTable formats a batch report as a table
func (f *Formatter) formatReportTable(report *batch.Report) error {
	w := tabwriter.NewWriter(f.writer, 0, 0, 2, ' ', 0)
	defer w.Flush()

	succeeded, partial, failed := report.Counts()

	fmt.Fprintf(w, "Batch Complete\n\n")
	fmt.Fprintf(w, "Total:\t%d\n", report.Len())
	fmt.Fprintf(w, "Succeeded:\t%d\n", succeeded)
	fmt.Fprintf(w, "Partial:\t%d\n", partial)
	fmt.Fprintf(w, "Failed:\t%d\n", failed)

	fmt.Fprintf(w, "\nIndex\tStatus\tIssue\tDetail\n")
	for _, result := range report.Results {
		key := result.IssueKey
		if key == "" {
			key = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", result.Index, result.Status, key, firstLine(result.Message))
	}

	return nil
}

// formatReportCSV formats a batch report as CSV
func (f *Formatter) formatReportCSV(report *batch.Report) error {
	w := csv.NewWriter(f.writer)
	defer w.Flush()

	if err := w.Write([]string{"Index", "Status", "IssueKey", "ErrorKind", "Message"}); err != nil {
		return err
	}

	for _, result := range report.Results {
		record := []string{
			fmt.Sprintf("%d", result.Index),
			string(result.Status),
			result.IssueKey,
			result.ErrorKind,
			result.Message,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}

// FormatProjects formats a project listing
func (f *Formatter) FormatProjects(projects []jira.Project) error {
	switch f.format {
	case FormatQuiet:
		for _, p := range projects {
			if _, err := fmt.Fprintln(f.writer, p.Key); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		return f.encodeJSON(projects)
	case FormatCSV:
		return f.formatProjectsCSV(projects)
	default:
		return f.formatProjectsTable(projects)
	}
}

// formatProjectsTable formats projects as a table
func (f *Formatter) formatProjectsTable(projects []jira.Project) error {
	w := tabwriter.NewWriter(f.writer, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "Key\tName\tType\tLead\n")
	for _, p := range projects {
		lead := ""
		if p.Lead != nil {
			lead = p.Lead.DisplayName
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Key, p.Name, p.ProjectTypeKey, lead)
	}

	return nil
}

// formatProjectsCSV formats projects as CSV
func (f *Formatter) formatProjectsCSV(projects []jira.Project) error {
	w := csv.NewWriter(f.writer)
	defer w.Flush()

	if err := w.Write([]string{"Key", "Name", "Type", "Description"}); err != nil {
		return err
	}

	for _, p := range projects {
		record := []string{p.Key, p.Name, p.ProjectTypeKey, p.Description}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}

// FormatProject formats a single project with its detail fields
func (f *Formatter) FormatProject(project *jira.Project) error {
	switch f.format {
	case FormatQuiet:
		_, err := fmt.Fprintln(f.writer, project.Key)
		return err
	case FormatJSON:
		return f.encodeJSON(project)
	default:
		return f.formatProjectTable(project)
	}
}

// formatProjectTable formats a project as a table
func (f *Formatter) formatProjectTable(project *jira.Project) error {
	w := tabwriter.NewWriter(f.writer, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "Key:\t%s\n", project.Key)
	fmt.Fprintf(w, "Name:\t%s\n", project.Name)
	if project.Description != "" {
		fmt.Fprintf(w, "Description:\t%s\n", firstLine(project.Description))
	}
	if project.Lead != nil {
		fmt.Fprintf(w, "Lead:\t%s\n", project.Lead.DisplayName)
	}

	if len(project.IssueTypes) > 0 {
		fmt.Fprintf(w, "\nIssue Types:\n")
		for _, it := range project.IssueTypes {
			name := it.Name
			if it.Subtask {
				name += " (subtask)"
			}
			fmt.Fprintf(w, "  %s\t%s\n", name, firstLine(it.Description))
		}
	}

	return nil
}

// FormatIssues formats an issue listing
func (f *Formatter) FormatIssues(issues []jira.Issue) error {
	switch f.format {
	case FormatQuiet:
		for _, issue := range issues {
			if _, err := fmt.Fprintln(f.writer, issue.Key); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		return f.encodeJSON(issues)
	case FormatCSV:
		return f.formatIssuesCSV(issues)
	default:
		return f.formatIssuesTable(issues)
	}
}

// formatIssuesTable formats issues as a table
func (f *Formatter) formatIssuesTable(issues []jira.Issue) error {
	w := tabwriter.NewWriter(f.writer, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "Key\tType\tStatus\tSummary\n")
	for _, issue := range issues {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", issue.Key, issueTypeName(&issue), statusName(&issue), issue.Fields.Summary)
	}

	return nil
}

// formatIssuesCSV formats issues as CSV
func (f *Formatter) formatIssuesCSV(issues []jira.Issue) error {
	w := csv.NewWriter(f.writer)
	defer w.Flush()

	if err := w.Write([]string{"Key", "Type", "Status", "Summary"}); err != nil {
		return err
	}

	for _, issue := range issues {
		record := []string{issue.Key, issueTypeName(&issue), statusName(&issue), issue.Fields.Summary}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}

// FormatIssue formats a single issue with its description
func (f *Formatter) FormatIssue(issue *jira.Issue) error {
	switch f.format {
	case FormatQuiet:
		_, err := fmt.Fprintln(f.writer, issue.Key)
		return err
	case FormatJSON:
		return f.encodeJSON(issue)
	default:
		return f.formatIssueTable(issue)
	}
}

// formatIssueTable formats an issue as a table
func (f *Formatter) formatIssueTable(issue *jira.Issue) error {
	w := tabwriter.NewWriter(f.writer, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "Key:\t%s\n", issue.Key)
	fmt.Fprintf(w, "Summary:\t%s\n", issue.Fields.Summary)
	fmt.Fprintf(w, "Type:\t%s\n", issueTypeName(issue))
	fmt.Fprintf(w, "Status:\t%s\n", statusName(issue))
	if issue.Fields.Project != nil {
		fmt.Fprintf(w, "Project:\t%s\n", issue.Fields.Project.Key)
	}
	if issue.Fields.Created != "" {
		fmt.Fprintf(w, "Created:\t%s\n", issue.Fields.Created)
	}

	if description := jira.DescriptionToPlainText(issue.Fields.Description); description != "" {
		fmt.Fprintf(w, "\nDescription:\n%s\n", description)
	}

	return nil
}

func issueTypeName(issue *jira.Issue) string {
	if issue.Fields.IssueType == nil {
		return ""
	}
	return issue.Fields.IssueType.Name
}

func statusName(issue *jira.Issue) string {
	if issue.Fields.Status == nil {
		return ""
	}
	return issue.Fields.Status.Name
}

// FormatError formats an error for output
func (f *Formatter) FormatError(err error) error {
	if f.format == FormatJSON {
		errorData := map[string]any{
			"error": err.Error(),
		}

		// If it's an OperationError, include more details
		if opErr, ok := batch.AsOperationError(err); ok {
			errorData["kind"] = opErr.Kind.String()
			if opErr.Suggestion != "" {
				errorData["suggestion"] = opErr.Suggestion
			}
			if len(opErr.Candidates) > 0 {
				errorData["candidates"] = opErr.Candidates
			}
		}

		return f.encodeJSON(errorData)
	}

	// For table and quiet formats, just print the error
	_, printErr := fmt.Fprintln(f.writer, err.Error())
	return printErr
}

func (f *Formatter) encodeJSON(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// firstLine keeps table cells single-line.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
