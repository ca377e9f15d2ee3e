package filter

import (
	"fmt"
	"strings"
)

// IssueFilters narrows an issue search within a single project. Zero values
// mean "no constraint"; Limit caps how many issues the search returns.
type IssueFilters struct {
	// Query matches against issue summaries (JQL ~ operator).
	Query string
	// Status filters by status name, e.g. "In Progress".
	Status string
	// Type filters by issue type name, e.g. "Bug".
	Type string
	// Limit is the maximum number of issues to fetch.
	Limit int
}

// NewIssueFilters creates a new IssueFilters with default values
func NewIssueFilters() *IssueFilters {
	return &IssueFilters{
		Limit: 20,
	}
}

// JQL renders the filters as a JQL query scoped to the given project,
// newest issues first.
func (f *IssueFilters) JQL(projectKey string) string {
	clauses := []string{fmt.Sprintf(`project = "%s"`, Escape(projectKey))}

	if q := strings.TrimSpace(f.Query); q != "" {
		clauses = append(clauses, fmt.Sprintf(`summary ~ "%s"`, Escape(q)))
	}
	if f.Status != "" {
		clauses = append(clauses, fmt.Sprintf(`status = "%s"`, Escape(f.Status)))
	}
	if f.Type != "" {
		clauses = append(clauses, fmt.Sprintf(`issuetype = "%s"`, Escape(f.Type)))
	}

	return strings.Join(clauses, " AND ") + " ORDER BY created DESC"
}

// SummaryJQL returns the JQL for a plain summary-fragment search in one
// project, the query shape issue resolution relies on.
func SummaryJQL(projectKey, query string) string {
	f := IssueFilters{Query: query}
	return f.JQL(projectKey)
}

// Escape escapes backslashes and quotes inside a JQL string literal.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
