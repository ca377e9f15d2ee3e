package batch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/michelzandonai/jira-mcp/pkg/jira"
	"github.com/michelzandonai/jira-mcp/pkg/utils"
)

// IssueWriter is the write side of the tracker used by the executor.
type IssueWriter interface {
	CreateIssue(ctx context.Context, input jira.CreateIssueInput) (*jira.CreatedIssue, error)
	AddWorklog(ctx context.Context, issueKey string, w jira.Worklog) error
}

// Resolver translates free-text identifiers into exact tracker entities.
type Resolver interface {
	ResolveProject(ctx context.Context, identifier string) (*jira.Project, error)
	ResolveIssue(ctx context.Context, projectKey, identifier string) (*jira.Issue, error)
}

// Executor runs single batch operations against the tracker. It never
// retries and never rolls back: a created issue stays created even when a
// later step fails.
type Executor struct {
	writer           IssueWriter
	resolver         Resolver
	defaultIssueType string
	now              func() time.Time
}

// NewExecutor creates an executor. defaultIssueType applies to create items
// that do not name a type.
func NewExecutor(writer IssueWriter, resolver Resolver, defaultIssueType string) *Executor {
	if defaultIssueType == "" {
		defaultIssueType = "Task"
	}
	return &Executor{
		writer:           writer,
		resolver:         resolver,
		defaultIssueType: defaultIssueType,
		now:              time.Now,
	}
}

// CreateOutcome describes how far a create operation got.
type CreateOutcome struct {
	IssueKey string
	// LogErr is set when the issue was created but the follow-up work log
	// step failed. The creation itself is not undone.
	LogErr *OperationError
}

// ExecuteCreate runs the create-then-log operation for one item: validate,
// resolve the project, create the issue, then optionally record the work log.
// A nil error with a non-nil LogErr is the partial success case.
func (e *Executor) ExecuteCreate(ctx context.Context, item CreateItem) (*CreateOutcome, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}

	// Parse before touching the tracker so a bad date never creates an issue.
	var started time.Time
	if item.HasWorklog() {
		var err error
		started, err = utils.ParseWorkDateWithBase(item.WorkDate, e.now())
		if err != nil {
			return nil, NewValidationError("invalid work_date", err)
		}
	}

	project, err := e.resolver.ResolveProject(ctx, item.ProjectIdentifier)
	if err != nil {
		return nil, orWrap(err, NewCreationError,
			fmt.Sprintf("failed to resolve project '%s'", item.ProjectIdentifier))
	}

	issueType := item.IssueType
	if issueType == "" {
		issueType = e.defaultIssueType
	}

	created, err := e.writer.CreateIssue(ctx, jira.CreateIssueInput{
		ProjectKey:       project.Key,
		Summary:          item.Summary,
		Description:      item.Description,
		IssueType:        issueType,
		OriginalEstimate: item.OriginalEstimate,
	})
	if err != nil {
		return nil, NewCreationError(
			fmt.Sprintf("failed to create issue '%s' in %s", item.Summary, project.Key), err)
	}

	outcome := &CreateOutcome{IssueKey: created.Key}

	if item.HasWorklog() {
		comment := item.WorkDescription
		if comment == "" {
			comment = "Initial work logged on creation"
		}
		worklog := jira.Worklog{
			TimeSpent: strings.TrimSpace(item.TimeSpent),
			Started:   started,
			Comment:   comment,
		}
		if err := e.writer.AddWorklog(ctx, created.Key, worklog); err != nil {
			outcome.LogErr = NewWorklogError(
				fmt.Sprintf("failed to log %s on %s", worklog.TimeSpent, created.Key), err)
		}
	}

	return outcome, nil
}

// ExecuteLogWork records one work entry on an existing issue inside an
// already-resolved project. Returns the key of the issue logged against.
func (e *Executor) ExecuteLogWork(ctx context.Context, projectKey string, item LogTimeItem) (string, error) {
	if err := item.Validate(); err != nil {
		return "", err
	}

	started, err := utils.ParseWorkDateWithBase(item.WorkDate, e.now())
	if err != nil {
		return "", NewValidationError("invalid work_date", err)
	}

	issue, err := e.resolver.ResolveIssue(ctx, projectKey, item.IssueIdentifier)
	if err != nil {
		return "", orWrap(err, NewWorklogError,
			fmt.Sprintf("failed to resolve issue '%s' in %s", item.IssueIdentifier, projectKey))
	}

	worklog := jira.Worklog{
		TimeSpent: strings.TrimSpace(item.TimeSpent),
		Started:   started,
		Comment:   item.WorkDescription,
	}
	if err := e.writer.AddWorklog(ctx, issue.Key, worklog); err != nil {
		return "", NewWorklogError(
			fmt.Sprintf("failed to log %s on %s", worklog.TimeSpent, issue.Key), err)
	}

	return issue.Key, nil
}

// orWrap passes typed operation errors through and folds anything else,
// transport failures mostly, into the operation's own kind.
func orWrap(err error, fallback func(string, error) *OperationError, message string) *OperationError {
	if opErr, ok := AsOperationError(err); ok {
		return opErr
	}
	return fallback(message, err)
}
