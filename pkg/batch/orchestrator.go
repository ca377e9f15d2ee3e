package batch

import (
	"context"
	"fmt"
	"strings"

	charmLog "github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/michelzandonai/jira-mcp/pkg/jira"
)

// OperationRunner runs the per-item operations of a batch.
type OperationRunner interface {
	ExecuteCreate(ctx context.Context, item CreateItem) (*CreateOutcome, error)
	ExecuteLogWork(ctx context.Context, projectKey string, item LogTimeItem) (string, error)
}

// ScopeResolver resolves the project shared by a whole batch.
type ScopeResolver interface {
	ResolveProject(ctx context.Context, identifier string) (*jira.Project, error)
}

// Orchestrator drives batches: strictly sequential, in input order, one
// result per item. A failing item never stops the ones after it.
type Orchestrator struct {
	runner OperationRunner
	scopes ScopeResolver
	logger *charmLog.Logger
}

// NewOrchestrator creates an orchestrator. A nil logger falls back to the
// package default.
func NewOrchestrator(runner OperationRunner, scopes ScopeResolver, logger *charmLog.Logger) *Orchestrator {
	if logger == nil {
		logger = charmLog.Default()
	}
	return &Orchestrator{runner: runner, scopes: scopes, logger: logger}
}

// RunCreate processes a batch of create items. The returned error is non-nil
// only for a malformed request; everything that happens per item lands in
// the report instead.
func (o *Orchestrator) RunCreate(ctx context.Context, req CreateRequest) (*Report, error) {
	if len(req.Items) == 0 {
		return nil, NewValidationError("batch contains no items", nil)
	}

	logger := o.logger.With("run", shortRunID(), "items", len(req.Items))
	logger.Info("starting batch create")

	report := NewReport(len(req.Items))
	for i, item := range req.Items {
		outcome, err := o.runner.ExecuteCreate(ctx, item)
		switch {
		case err != nil:
			opErr := orWrap(err, NewCreationError, "create operation failed")
			report.AddFailure(i, opErr.Kind, opErr.Error())
			logger.Debug("item failed", "index", i, "kind", opErr.Kind.String())
		case outcome.LogErr != nil:
			msg := fmt.Sprintf("created %s, but %v", outcome.IssueKey, outcome.LogErr)
			report.AddPartial(i, outcome.IssueKey, outcome.LogErr.Kind, msg)
			logger.Debug("item partially succeeded", "index", i, "issue", outcome.IssueKey)
		default:
			report.AddSuccess(i, outcome.IssueKey, fmt.Sprintf("created %s", outcome.IssueKey))
			logger.Debug("item succeeded", "index", i, "issue", outcome.IssueKey)
		}
	}

	logger.Info("batch create complete", "result", report.Summary())
	return report, nil
}

// RunLogWork processes a batch of work log entries against one project. The
// project scope is resolved exactly once, before any item runs; if that
// fails, no item is attempted and every record reports the scope failure.
func (o *Orchestrator) RunLogWork(ctx context.Context, req LogWorkRequest) (*Report, error) {
	if strings.TrimSpace(req.ProjectIdentifier) == "" {
		return nil, NewValidationError("project_identifier is required", nil)
	}
	if len(req.Items) == 0 {
		return nil, NewValidationError("batch contains no items", nil)
	}

	logger := o.logger.With("run", shortRunID(), "items", len(req.Items))
	logger.Info("starting batch log work", "project", req.ProjectIdentifier)

	report := NewReport(len(req.Items))

	project, err := o.scopes.ResolveProject(ctx, req.ProjectIdentifier)
	if err != nil {
		scopeErr := NewScopeError(
			fmt.Sprintf("cannot resolve project '%s', no entries were processed", req.ProjectIdentifier), err)
		for i := range req.Items {
			report.AddFailure(i, scopeErr.Kind, scopeErr.Error())
		}
		logger.Warn("scope resolution failed, batch short-circuited", "project", req.ProjectIdentifier)
		return report, nil
	}

	for i, item := range req.Items {
		issueKey, err := o.runner.ExecuteLogWork(ctx, project.Key, item)
		if err != nil {
			opErr := orWrap(err, NewWorklogError, "log work operation failed")
			report.AddFailure(i, opErr.Kind, opErr.Error())
			logger.Debug("item failed", "index", i, "kind", opErr.Kind.String())
			continue
		}
		report.AddSuccess(i, issueKey, fmt.Sprintf("logged %s on %s", strings.TrimSpace(item.TimeSpent), issueKey))
		logger.Debug("item succeeded", "index", i, "issue", issueKey)
	}

	logger.Info("batch log work complete", "result", report.Summary())
	return report, nil
}

// shortRunID returns a compact id correlating the log lines of one run.
func shortRunID() string {
	return uuid.NewString()[:8]
}
