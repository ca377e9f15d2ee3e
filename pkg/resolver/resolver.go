// Package resolver turns the free-text project and issue identifiers that
// arrive in batch requests into exact Jira keys. NotFound and Ambiguous are
// ordinary outcomes here, not exceptional ones: callers are expected to
// branch on them.
package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/michelzandonai/jira-mcp/pkg/batch"
	"github.com/michelzandonai/jira-mcp/pkg/filter"
	"github.com/michelzandonai/jira-mcp/pkg/jira"
	"github.com/michelzandonai/jira-mcp/pkg/utils"
)

// ProjectLister is the read side used for project resolution.
type ProjectLister interface {
	ListProjects(ctx context.Context) ([]jira.Project, error)
}

// IssueSearcher is the read side used for issue resolution.
type IssueSearcher interface {
	SearchIssues(ctx context.Context, jql string, limit int) ([]jira.Issue, error)
	GetIssue(ctx context.Context, key string) (*jira.Issue, error)
}

// Resolver resolves identifiers against a live Jira instance. Nothing is
// cached between calls; every resolution sees the tracker as it is now.
type Resolver struct {
	projects   ProjectLister
	issues     IssueSearcher
	maxResults int
}

// New creates a resolver. maxResults caps how many candidate issues a
// summary search fetches.
func New(projects ProjectLister, issues IssueSearcher, maxResults int) *Resolver {
	if maxResults <= 0 {
		maxResults = 20
	}
	return &Resolver{projects: projects, issues: issues, maxResults: maxResults}
}

// ResolveProject maps a free-text identifier to exactly one project. An
// exact key match wins immediately; otherwise the identifier is matched
// case-insensitively against project names. Matching more than one project
// is an ambiguous error carrying every candidate.
func (r *Resolver) ResolveProject(ctx context.Context, identifier string) (*jira.Project, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, batch.NewValidationError("project identifier is empty", nil)
	}

	projects, err := r.projects.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	// Keys are unique in Jira, so an exact key match can never be ambiguous.
	// The comparison is case sensitive: "mob" is a name fragment, not a key.
	for i := range projects {
		if projects[i].Key == identifier {
			return &projects[i], nil
		}
	}

	needle := strings.ToLower(identifier)
	var matches []*jira.Project
	for i := range projects {
		if strings.Contains(strings.ToLower(projects[i].Name), needle) {
			matches = append(matches, &projects[i])
		}
	}

	switch len(matches) {
	case 0:
		return nil, batch.NewNotFoundError(fmt.Sprintf("project matching '%s'", identifier))
	case 1:
		return matches[0], nil
	default:
		candidates := make([]batch.Candidate, len(matches))
		names := make([]string, len(matches))
		for i, p := range matches {
			candidates[i] = batch.Candidate{Key: p.Key, Name: p.Name}
			names[i] = fmt.Sprintf("'%s' (%s)", p.Name, p.Key)
		}
		msg := fmt.Sprintf("project identifier '%s' matches %d projects: %s",
			identifier, len(matches), strings.Join(names, ", "))
		return nil, batch.NewAmbiguousError(msg, candidates)
	}
}

// ResolveIssue maps a free-text identifier to exactly one issue inside a
// project. An exact issue key is fetched directly; anything else is treated
// as a summary fragment.
func (r *Resolver) ResolveIssue(ctx context.Context, projectKey, identifier string) (*jira.Issue, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, batch.NewValidationError("issue identifier is empty", nil)
	}

	if utils.IsIssueKey(identifier) {
		issue, err := r.issues.GetIssue(ctx, identifier)
		if err != nil {
			if jira.IsNotFound(err) {
				return nil, batch.NewNotFoundError(fmt.Sprintf("issue '%s'", identifier))
			}
			return nil, fmt.Errorf("get issue %s: %w", identifier, err)
		}
		if issue.Fields.Project != nil && issue.Fields.Project.Key != projectKey {
			return nil, batch.NewNotFoundError(
				fmt.Sprintf("issue '%s' in project %s", identifier, projectKey))
		}
		return issue, nil
	}

	found, err := r.issues.SearchIssues(ctx, filter.SummaryJQL(projectKey, identifier), r.maxResults)
	if err != nil {
		return nil, fmt.Errorf("search issues: %w", err)
	}

	// Jira's ~ operator is a fuzzy text match; filter down to plain
	// case-insensitive containment so resolution stays deterministic.
	needle := strings.ToLower(identifier)
	var matches []*jira.Issue
	for i := range found {
		if strings.Contains(strings.ToLower(found[i].Fields.Summary), needle) {
			matches = append(matches, &found[i])
		}
	}

	switch len(matches) {
	case 0:
		return nil, batch.NewNotFoundError(
			fmt.Sprintf("issue matching '%s' in project %s", identifier, projectKey))
	case 1:
		return matches[0], nil
	default:
		candidates := make([]batch.Candidate, len(matches))
		for i, issue := range matches {
			candidates[i] = batch.Candidate{Key: issue.Key, Name: issue.Fields.Summary}
		}
		return nil, batch.NewAmbiguousError(ambiguousIssueMessage(identifier, matches), candidates)
	}
}

// ambiguousIssueMessage lists the first few matches and counts the rest.
func ambiguousIssueMessage(identifier string, matches []*jira.Issue) string {
	const maxListed = 5
	var listed []string
	for i, issue := range matches {
		if i == maxListed {
			break
		}
		listed = append(listed, fmt.Sprintf("%s '%s'", issue.Key, issue.Fields.Summary))
	}
	msg := fmt.Sprintf("issue identifier '%s' matches %d issues: %s",
		identifier, len(matches), strings.Join(listed, ", "))
	if len(matches) > maxListed {
		msg += fmt.Sprintf(" and %d more", len(matches)-maxListed)
	}
	return msg
}
