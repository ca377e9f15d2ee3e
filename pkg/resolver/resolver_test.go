package resolver

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michelzandonai/jira-mcp/pkg/batch"
	"github.com/michelzandonai/jira-mcp/pkg/jira"
)

// stubDirectory fakes the Jira read side and records what was asked of it.
type stubDirectory struct {
	projects    []jira.Project
	projectsErr error

	searchResult []jira.Issue
	searchErr    error
	lastJQL      string
	lastLimit    int

	issue      *jira.Issue
	getErr     error
	lastGetKey string
}

func (s *stubDirectory) ListProjects(ctx context.Context) ([]jira.Project, error) {
	return s.projects, s.projectsErr
}

func (s *stubDirectory) SearchIssues(ctx context.Context, jql string, limit int) ([]jira.Issue, error) {
	s.lastJQL = jql
	s.lastLimit = limit
	return s.searchResult, s.searchErr
}

func (s *stubDirectory) GetIssue(ctx context.Context, key string) (*jira.Issue, error) {
	s.lastGetKey = key
	return s.issue, s.getErr
}

func demoProjects() []jira.Project {
	return []jira.Project{
		{ID: "10000", Key: "MOB", Name: "Mobile App"},
		{ID: "10001", Key: "WEB", Name: "Mobile Web"},
		{ID: "10002", Key: "INFRA", Name: "Infrastructure"},
	}
}

func kindOf(t *testing.T, err error) batch.ErrorKind {
	t.Helper()
	opErr, ok := batch.AsOperationError(err)
	require.True(t, ok, "expected an operation error, got %v", err)
	return opErr.Kind
}

func TestResolveProject_ExactKey(t *testing.T) {
	dir := &stubDirectory{projects: demoProjects()}
	r := New(dir, dir, 20)

	project, err := r.ResolveProject(context.Background(), "MOB")
	require.NoError(t, err)
	assert.Equal(t, "MOB", project.Key)
	assert.Equal(t, "Mobile App", project.Name)
}

func TestResolveProject_ExactKeyBeatsNameCollision(t *testing.T) {
	// "WEB" is both a key and a fragment of another project's name. The key
	// match must win without raising ambiguity.
	dir := &stubDirectory{projects: []jira.Project{
		{ID: "1", Key: "WEB", Name: "Storefront"},
		{ID: "2", Key: "MKT", Name: "WEB campaigns"},
	}}
	r := New(dir, dir, 20)

	project, err := r.ResolveProject(context.Background(), "WEB")
	require.NoError(t, err)
	assert.Equal(t, "Storefront", project.Name)
}

func TestResolveProject_KeyMatchIsCaseSensitive(t *testing.T) {
	dir := &stubDirectory{projects: demoProjects()}
	r := New(dir, dir, 20)

	// "infra" is not the key INFRA; it falls through to name matching and
	// lands on "Infrastructure".
	project, err := r.ResolveProject(context.Background(), "infra")
	require.NoError(t, err)
	assert.Equal(t, "INFRA", project.Key)
}

func TestResolveProject_NameContainment(t *testing.T) {
	dir := &stubDirectory{projects: demoProjects()}
	r := New(dir, dir, 20)

	project, err := r.ResolveProject(context.Background(), "structure")
	require.NoError(t, err)
	assert.Equal(t, "INFRA", project.Key)
}

func TestResolveProject_Ambiguous(t *testing.T) {
	dir := &stubDirectory{projects: demoProjects()}
	r := New(dir, dir, 20)

	_, err := r.ResolveProject(context.Background(), "Mobile")
	require.Error(t, err)

	opErr, ok := batch.AsOperationError(err)
	require.True(t, ok)
	assert.Equal(t, batch.KindAmbiguous, opErr.Kind)
	require.Len(t, opErr.Candidates, 2)
	assert.Equal(t, batch.Candidate{Key: "MOB", Name: "Mobile App"}, opErr.Candidates[0])
	assert.Equal(t, batch.Candidate{Key: "WEB", Name: "Mobile Web"}, opErr.Candidates[1])
	assert.Contains(t, opErr.Message, "'Mobile App' (MOB)")
	assert.Contains(t, opErr.Message, "'Mobile Web' (WEB)")
}

func TestResolveProject_NotFound(t *testing.T) {
	dir := &stubDirectory{projects: demoProjects()}
	r := New(dir, dir, 20)

	_, err := r.ResolveProject(context.Background(), "Payments")
	assert.Equal(t, batch.KindNotFound, kindOf(t, err))
}

func TestResolveProject_EmptyIdentifier(t *testing.T) {
	dir := &stubDirectory{projects: demoProjects()}
	r := New(dir, dir, 20)

	_, err := r.ResolveProject(context.Background(), "   ")
	assert.Equal(t, batch.KindValidation, kindOf(t, err))
}

func TestResolveProject_TransportErrorStaysUntyped(t *testing.T) {
	dir := &stubDirectory{projectsErr: fmt.Errorf("connection refused")}
	r := New(dir, dir, 20)

	_, err := r.ResolveProject(context.Background(), "MOB")
	require.Error(t, err)
	_, ok := batch.AsOperationError(err)
	assert.False(t, ok, "transport failures must not masquerade as resolution outcomes")
}

func TestResolveIssue_DirectKey(t *testing.T) {
	dir := &stubDirectory{
		issue: &jira.Issue{
			ID:  "1",
			Key: "MOB-7",
			Fields: jira.IssueFields{
				Summary: "Fix crash on login",
				Project: &jira.ProjectField{Key: "MOB"},
			},
		},
	}
	r := New(dir, dir, 20)

	issue, err := r.ResolveIssue(context.Background(), "MOB", "MOB-7")
	require.NoError(t, err)
	assert.Equal(t, "MOB-7", issue.Key)
	assert.Equal(t, "MOB-7", dir.lastGetKey)
	// A key lookup never hits the search endpoint.
	assert.Empty(t, dir.lastJQL)
}

func TestResolveIssue_DirectKeyWrongProject(t *testing.T) {
	dir := &stubDirectory{
		issue: &jira.Issue{
			ID:  "1",
			Key: "WEB-3",
			Fields: jira.IssueFields{
				Summary: "Checkout spinner",
				Project: &jira.ProjectField{Key: "WEB"},
			},
		},
	}
	r := New(dir, dir, 20)

	_, err := r.ResolveIssue(context.Background(), "MOB", "WEB-3")
	assert.Equal(t, batch.KindNotFound, kindOf(t, err))
}

func TestResolveIssue_DirectKeyMissing(t *testing.T) {
	dir := &stubDirectory{
		getErr: &jira.APIError{StatusCode: http.StatusNotFound, Body: "no issue"},
	}
	r := New(dir, dir, 20)

	_, err := r.ResolveIssue(context.Background(), "MOB", "MOB-999")
	assert.Equal(t, batch.KindNotFound, kindOf(t, err))
}

func TestResolveIssue_SummaryFragment(t *testing.T) {
	dir := &stubDirectory{
		searchResult: []jira.Issue{
			{ID: "1", Key: "MOB-4", Fields: jira.IssueFields{Summary: "Implement login screen"}},
			// Returned by Jira's fuzzy match but not an actual containment hit.
			{ID: "2", Key: "MOB-9", Fields: jira.IssueFields{Summary: "Logging pipeline cleanup"}},
		},
	}
	r := New(dir, dir, 15)

	issue, err := r.ResolveIssue(context.Background(), "MOB", "login")
	require.NoError(t, err)
	assert.Equal(t, "MOB-4", issue.Key)

	assert.Equal(t, `project = "MOB" AND summary ~ "login" ORDER BY created DESC`, dir.lastJQL)
	assert.Equal(t, 15, dir.lastLimit)
}

func TestResolveIssue_FragmentCaseInsensitive(t *testing.T) {
	dir := &stubDirectory{
		searchResult: []jira.Issue{
			{ID: "1", Key: "MOB-4", Fields: jira.IssueFields{Summary: "Implement Login Screen"}},
		},
	}
	r := New(dir, dir, 20)

	issue, err := r.ResolveIssue(context.Background(), "MOB", "LOGIN")
	require.NoError(t, err)
	assert.Equal(t, "MOB-4", issue.Key)
}

func TestResolveIssue_Ambiguous(t *testing.T) {
	dir := &stubDirectory{
		searchResult: []jira.Issue{
			{ID: "1", Key: "MOB-4", Fields: jira.IssueFields{Summary: "Login screen layout"}},
			{ID: "2", Key: "MOB-5", Fields: jira.IssueFields{Summary: "Login error handling"}},
		},
	}
	r := New(dir, dir, 20)

	_, err := r.ResolveIssue(context.Background(), "MOB", "login")
	opErr, ok := batch.AsOperationError(err)
	require.True(t, ok)
	assert.Equal(t, batch.KindAmbiguous, opErr.Kind)
	require.Len(t, opErr.Candidates, 2)
	assert.Contains(t, opErr.Message, "MOB-4")
	assert.Contains(t, opErr.Message, "MOB-5")
}

func TestResolveIssue_AmbiguousListsFirstFive(t *testing.T) {
	var many []jira.Issue
	for i := 1; i <= 8; i++ {
		many = append(many, jira.Issue{
			ID:     fmt.Sprintf("%d", i),
			Key:    fmt.Sprintf("MOB-%d", i),
			Fields: jira.IssueFields{Summary: fmt.Sprintf("login step %d", i)},
		})
	}
	dir := &stubDirectory{searchResult: many}
	r := New(dir, dir, 20)

	_, err := r.ResolveIssue(context.Background(), "MOB", "login")
	opErr, ok := batch.AsOperationError(err)
	require.True(t, ok)
	assert.Contains(t, opErr.Message, "MOB-5")
	assert.NotContains(t, opErr.Message, "MOB-6 ")
	assert.Contains(t, opErr.Message, "and 3 more")
	assert.Len(t, opErr.Candidates, 8)
}

func TestResolveIssue_NotFound(t *testing.T) {
	dir := &stubDirectory{searchResult: nil}
	r := New(dir, dir, 20)

	_, err := r.ResolveIssue(context.Background(), "MOB", "nonexistent widget")
	assert.Equal(t, batch.KindNotFound, kindOf(t, err))
}

func TestResolveIssue_EscapesJQL(t *testing.T) {
	dir := &stubDirectory{
		searchResult: []jira.Issue{
			{ID: "1", Key: "MOB-4", Fields: jira.IssueFields{Summary: `handle "quoted" input`}},
		},
	}
	r := New(dir, dir, 20)

	_, err := r.ResolveIssue(context.Background(), "MOB", `"quoted" input`)
	require.NoError(t, err)
	assert.Contains(t, dir.lastJQL, `summary ~ "\"quoted\" input"`)
}
