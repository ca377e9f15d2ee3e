package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michelzandonai/jira-mcp/pkg/batch"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCreateBatchFile(t *testing.T) {
	t.Run("parses items with all fields", func(t *testing.T) {
		path := writeTempFile(t, "issues.yml", `
items:
  - summary: Implement login
    project_identifier: Mobile App
    description: Use the new OAuth flow
    issue_type: Story
    original_estimate: 3d
    time_spent: 2h
    work_date: yesterday
    work_description: initial spike
  - summary: Fix crash on startup
    project_identifier: MOB
`)

		req, err := readCreateBatchFile(path)
		require.NoError(t, err)
		require.Len(t, req.Items, 2)

		first := req.Items[0]
		assert.Equal(t, "Implement login", first.Summary)
		assert.Equal(t, "Mobile App", first.ProjectIdentifier)
		assert.Equal(t, "Use the new OAuth flow", first.Description)
		assert.Equal(t, "Story", first.IssueType)
		assert.Equal(t, "3d", first.OriginalEstimate)
		assert.Equal(t, "2h", first.TimeSpent)
		assert.Equal(t, "yesterday", first.WorkDate)
		assert.True(t, first.HasWorklog())

		second := req.Items[1]
		assert.Equal(t, "MOB", second.ProjectIdentifier)
		assert.False(t, second.HasWorklog())
	})

	t.Run("accepts JSON too", func(t *testing.T) {
		path := writeTempFile(t, "issues.json",
			`{"items": [{"summary": "From JSON", "project_identifier": "MOB"}]}`)

		req, err := readCreateBatchFile(path)
		require.NoError(t, err)
		require.Len(t, req.Items, 1)
		assert.Equal(t, "From JSON", req.Items[0].Summary)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := readCreateBatchFile(filepath.Join(t.TempDir(), "absent.yml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read batch file")
	})

	t.Run("empty items", func(t *testing.T) {
		path := writeTempFile(t, "empty.yml", "items: []\n")
		_, err := readCreateBatchFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "contains no items")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeTempFile(t, "bad.yml", "items: [unclosed\n")
		_, err := readCreateBatchFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse batch file")
	})
}

func TestReportExitError(t *testing.T) {
	t.Run("no failures", func(t *testing.T) {
		report := batch.NewReport(2)
		report.AddSuccess(0, "MOB-1", "created MOB-1")
		report.AddPartial(1, "MOB-2", batch.KindLogFailed, "created MOB-2, but work log failed")
		assert.NoError(t, reportExitError(report))
	})

	t.Run("failures produce an error", func(t *testing.T) {
		report := batch.NewReport(3)
		report.AddSuccess(0, "MOB-1", "created MOB-1")
		report.AddFailure(1, batch.KindNotFound, "project not found")
		report.AddFailure(2, batch.KindValidation, "summary is required")

		err := reportExitError(report)
		require.Error(t, err)
		assert.Equal(t, "2 of 3 items failed", err.Error())
	})
}
