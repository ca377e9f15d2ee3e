package mcpapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/michelzandonai/jira-mcp/pkg/batch"
	"github.com/michelzandonai/jira-mcp/pkg/filter"
	"github.com/michelzandonai/jira-mcp/pkg/jira"
)

// projectRow is the compact project shape returned by browse tools.
type projectRow struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	Lead        string `json:"lead,omitempty"`
}

// issueTypeRow is the issue-type shape returned by project tools.
type issueTypeRow struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Subtask     bool   `json:"subtask,omitempty"`
}

// issueRow is the compact issue shape returned by search tools. The
// description is flattened from ADF to plain text.
type issueRow struct {
	Key         string `json:"key"`
	Summary     string `json:"summary"`
	Type        string `json:"type,omitempty"`
	Status      string `json:"status,omitempty"`
	Created     string `json:"created,omitempty"`
	Description string `json:"description,omitempty"`
}

// itemOutcome is the shape returned by the single-issue tools.
type itemOutcome struct {
	IssueKey string       `json:"issue_key"`
	Status   batch.Status `json:"status"`
	Message  string       `json:"message,omitempty"`
}

// registerBatchTools registers the batch_create_issues and batch_log_work tools.
func registerBatchTools(srv *mcpserver.MCPServer, runner BatchRunner) {
	srv.AddTool(
		mcp.NewTool(
			"batch_create_issues",
			mcp.WithDescription("Create several Jira issues in one call, optionally logging initial work on each. Items are processed in order and the result carries one record per item."),
			mcp.WithArray("items", mcp.Required(), mcp.Description("Issues to create. Each item takes summary (required), project_identifier (required, exact key or name fragment), description, issue_type, original_estimate, time_spent, work_date, work_description.")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			var args struct {
				Items []batch.CreateItem `json:"items"`
			}
			if err := req.BindArguments(&args); err != nil {
				return invalidRequestToolResult(err), nil
			}
			report, err := runner.RunCreate(ctx, batch.CreateRequest{Items: args.Items})
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(report)
			if err != nil {
				return nil, fmt.Errorf("encode batch_create_issues result: %w", err)
			}
			return result, nil
		},
	)

	srv.AddTool(
		mcp.NewTool(
			"batch_log_work",
			mcp.WithDescription("Log work on several existing issues of one project. The project is resolved once for the whole batch; entries are processed in order."),
			mcp.WithString("project_identifier", mcp.Required(), mcp.Description("Project shared by every entry: exact key or name fragment")),
			mcp.WithArray("items", mcp.Required(), mcp.Description("Work entries. Each item takes issue_identifier (required, exact key or summary fragment), time_spent (required, e.g. \"2h 30m\"), work_date, work_description.")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			var args struct {
				ProjectIdentifier string              `json:"project_identifier"`
				Items             []batch.LogTimeItem `json:"items"`
			}
			if err := req.BindArguments(&args); err != nil {
				return invalidRequestToolResult(err), nil
			}
			report, err := runner.RunLogWork(ctx, batch.LogWorkRequest{
				ProjectIdentifier: args.ProjectIdentifier,
				Items:             args.Items,
			})
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(report)
			if err != nil {
				return nil, fmt.Errorf("encode batch_log_work result: %w", err)
			}
			return result, nil
		},
	)
}

// registerIssueTools registers the single-issue create_issue and add_worklog tools.
func registerIssueTools(srv *mcpserver.MCPServer, runner batch.OperationRunner, resolver ProjectResolver) {
	if runner == nil {
		return
	}

	srv.AddTool(
		mcp.NewTool(
			"create_issue",
			mcp.WithDescription("Create one Jira issue, optionally logging initial work on it."),
			mcp.WithString("summary", mcp.Required(), mcp.Description("Issue summary")),
			mcp.WithString("project_identifier", mcp.Required(), mcp.Description("Project: exact key or name fragment")),
			mcp.WithString("description", mcp.Description("Issue description")),
			mcp.WithString("issue_type", mcp.Description("Issue type name, e.g. Task or Bug")),
			mcp.WithString("original_estimate", mcp.Description("Original time estimate, e.g. \"3d\"")),
			mcp.WithString("time_spent", mcp.Description("Time to log after creation, e.g. \"2h 30m\"")),
			mcp.WithString("work_date", mcp.Description("Work date: ISO date or natural language like \"yesterday\"")),
			mcp.WithString("work_description", mcp.Description("Work log comment")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			var item batch.CreateItem
			if err := req.BindArguments(&item); err != nil {
				return invalidRequestToolResult(err), nil
			}
			if strings.TrimSpace(item.Summary) == "" {
				return mcp.NewToolResultError(`validation: required argument "summary" not found`), nil
			}
			if strings.TrimSpace(item.ProjectIdentifier) == "" {
				return mcp.NewToolResultError(`validation: required argument "project_identifier" not found`), nil
			}
			outcome, err := runner.ExecuteCreate(ctx, item)
			if err != nil {
				return toolResultFromError(err), nil
			}
			out := itemOutcome{
				IssueKey: outcome.IssueKey,
				Status:   batch.StatusSuccess,
				Message:  fmt.Sprintf("created %s", outcome.IssueKey),
			}
			if outcome.LogErr != nil {
				out.Status = batch.StatusPartial
				out.Message = fmt.Sprintf("created %s, but %v", outcome.IssueKey, outcome.LogErr)
			}
			result, err := mcp.NewToolResultJSON(out)
			if err != nil {
				return nil, fmt.Errorf("encode create_issue result: %w", err)
			}
			return result, nil
		},
	)

	if resolver == nil {
		return
	}

	srv.AddTool(
		mcp.NewTool(
			"add_worklog",
			mcp.WithDescription("Log work on one existing issue."),
			mcp.WithString("project_identifier", mcp.Required(), mcp.Description("Project: exact key or name fragment")),
			mcp.WithString("issue_identifier", mcp.Required(), mcp.Description("Issue: exact key or summary fragment")),
			mcp.WithString("time_spent", mcp.Required(), mcp.Description("Time spent, e.g. \"2h 30m\"")),
			mcp.WithString("work_date", mcp.Description("Work date: ISO date or natural language like \"last friday\"")),
			mcp.WithString("work_description", mcp.Description("Work log comment")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			var args struct {
				ProjectIdentifier string `json:"project_identifier"`
				batch.LogTimeItem
			}
			if err := req.BindArguments(&args); err != nil {
				return invalidRequestToolResult(err), nil
			}
			if strings.TrimSpace(args.ProjectIdentifier) == "" {
				return mcp.NewToolResultError(`validation: required argument "project_identifier" not found`), nil
			}
			project, err := resolver.ResolveProject(ctx, args.ProjectIdentifier)
			if err != nil {
				return toolResultFromError(err), nil
			}
			issueKey, err := runner.ExecuteLogWork(ctx, project.Key, args.LogTimeItem)
			if err != nil {
				return toolResultFromError(err), nil
			}
			out := itemOutcome{
				IssueKey: issueKey,
				Status:   batch.StatusSuccess,
				Message:  fmt.Sprintf("logged %s on %s", strings.TrimSpace(args.TimeSpent), issueKey),
			}
			result, err := mcp.NewToolResultJSON(out)
			if err != nil {
				return nil, fmt.Errorf("encode add_worklog result: %w", err)
			}
			return result, nil
		},
	)
}

// registerBrowseTools registers read-only project and issue lookup tools.
func registerBrowseTools(srv *mcpserver.MCPServer, directory Directory, resolver ProjectResolver) {
	if directory == nil {
		return
	}

	srv.AddTool(
		mcp.NewTool(
			"search_projects",
			mcp.WithDescription("List projects, optionally filtered by a key or name fragment."),
			mcp.WithString("query", mcp.Description("Case-insensitive fragment matched against project keys and names")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			projects, err := directory.ListProjects(ctx)
			if err != nil {
				return toolResultFromError(err), nil
			}
			query := strings.ToLower(strings.TrimSpace(req.GetString("query", "")))
			rows := make([]projectRow, 0, len(projects))
			for _, p := range projects {
				if query != "" &&
					!strings.Contains(strings.ToLower(p.Key), query) &&
					!strings.Contains(strings.ToLower(p.Name), query) {
					continue
				}
				rows = append(rows, newProjectRow(p))
			}
			result, err := mcp.NewToolResultJSON(map[string]any{"projects": rows})
			if err != nil {
				return nil, fmt.Errorf("encode search_projects result: %w", err)
			}
			return result, nil
		},
	)

	if resolver == nil {
		return
	}

	srv.AddTool(
		mcp.NewTool(
			"get_project_details",
			mcp.WithDescription("Return one project with its lead and issue types."),
			mcp.WithString("project_identifier", mcp.Required(), mcp.Description("Project: exact key or name fragment")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			identifier, err := req.RequireString("project_identifier")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			project, err := fetchProjectDetails(ctx, directory, resolver, identifier)
			if err != nil {
				return toolResultFromError(err), nil
			}
			row := newProjectRow(*project)
			types := make([]issueTypeRow, 0, len(project.IssueTypes))
			for _, it := range project.IssueTypes {
				types = append(types, newIssueTypeRow(it))
			}
			result, err := mcp.NewToolResultJSON(map[string]any{
				"project":     row,
				"issue_types": types,
			})
			if err != nil {
				return nil, fmt.Errorf("encode get_project_details result: %w", err)
			}
			return result, nil
		},
	)

	srv.AddTool(
		mcp.NewTool(
			"list_issue_types",
			mcp.WithDescription("List the issue types available in one project."),
			mcp.WithString("project_identifier", mcp.Required(), mcp.Description("Project: exact key or name fragment")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			identifier, err := req.RequireString("project_identifier")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			project, err := fetchProjectDetails(ctx, directory, resolver, identifier)
			if err != nil {
				return toolResultFromError(err), nil
			}
			types := make([]issueTypeRow, 0, len(project.IssueTypes))
			for _, it := range project.IssueTypes {
				types = append(types, newIssueTypeRow(it))
			}
			result, err := mcp.NewToolResultJSON(map[string]any{"issue_types": types})
			if err != nil {
				return nil, fmt.Errorf("encode list_issue_types result: %w", err)
			}
			return result, nil
		},
	)

	srv.AddTool(
		mcp.NewTool(
			"search_issues",
			mcp.WithDescription("Search issues in one project by summary text, newest first."),
			mcp.WithString("project_identifier", mcp.Required(), mcp.Description("Project: exact key or name fragment")),
			mcp.WithString("summary", mcp.Description("Text matched against issue summaries; empty lists recent issues")),
			mcp.WithNumber("limit", mcp.Description("Maximum rows to return")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			identifier, err := req.RequireString("project_identifier")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			project, err := resolver.ResolveProject(ctx, identifier)
			if err != nil {
				return toolResultFromError(err), nil
			}
			filters := filter.NewIssueFilters()
			filters.Query = req.GetString("summary", "")
			if n := req.GetInt("limit", 0); n > 0 {
				filters.Limit = n
			}
			issues, err := directory.SearchIssues(ctx, filters.JQL(project.Key), filters.Limit)
			if err != nil {
				return toolResultFromError(err), nil
			}
			rows := make([]issueRow, 0, len(issues))
			for _, issue := range issues {
				rows = append(rows, newIssueRow(issue))
			}
			result, err := mcp.NewToolResultJSON(map[string]any{"issues": rows})
			if err != nil {
				return nil, fmt.Errorf("encode search_issues result: %w", err)
			}
			return result, nil
		},
	)
}

// fetchProjectDetails resolves a free-text identifier and fetches the full
// project record, issue types included.
func fetchProjectDetails(ctx context.Context, directory Directory, resolver ProjectResolver, identifier string) (*jira.Project, error) {
	resolved, err := resolver.ResolveProject(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return directory.GetProject(ctx, resolved.Key)
}

func newProjectRow(p jira.Project) projectRow {
	row := projectRow{
		Key:         p.Key,
		Name:        p.Name,
		Type:        p.ProjectTypeKey,
		Description: p.Description,
	}
	if p.Lead != nil {
		row.Lead = p.Lead.DisplayName
	}
	return row
}

func newIssueTypeRow(it jira.IssueTypeField) issueTypeRow {
	return issueTypeRow{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Subtask:     it.Subtask,
	}
}

func newIssueRow(issue jira.Issue) issueRow {
	row := issueRow{
		Key:         issue.Key,
		Summary:     issue.Fields.Summary,
		Created:     issue.Fields.Created,
		Description: jira.DescriptionToPlainText(issue.Fields.Description),
	}
	if issue.Fields.IssueType != nil {
		row.Type = issue.Fields.IssueType.Name
	}
	if issue.Fields.Status != nil {
		row.Status = issue.Fields.Status.Name
	}
	return row
}

// toolResultFromError maps engine errors into MCP-visible tool errors, using
// the operation error kind as a stable prefix.
func toolResultFromError(err error) *mcp.CallToolResult {
	if err == nil {
		return mcp.NewToolResultError("unknown error")
	}
	if opErr, ok := batch.AsOperationError(err); ok {
		return mcp.NewToolResultError(opErr.Kind.String() + ": " + err.Error())
	}
	return mcp.NewToolResultError("internal_error: " + err.Error())
}

// invalidRequestToolResult wraps argument-binding failures as deterministic tool errors.
func invalidRequestToolResult(err error) *mcp.CallToolResult {
	if err == nil {
		return mcp.NewToolResultError("validation: malformed arguments")
	}
	return mcp.NewToolResultError("validation: " + err.Error())
}
