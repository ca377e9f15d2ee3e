package init

import (
	"context"
	"strings"

	"github.com/michelzandonai/jira-mcp/pkg/config"
	"github.com/michelzandonai/jira-mcp/pkg/jira"
)

// ProjectGetter fetches full project details, issue types included.
type ProjectGetter interface {
	GetProject(ctx context.Context, key string) (*jira.Project, error)
}

// MetadataFetcher derives configuration defaults from live project metadata
type MetadataFetcher struct {
	projects ProjectGetter
}

// NewMetadataFetcher creates a new MetadataFetcher instance
func NewMetadataFetcher(projects ProjectGetter) *MetadataFetcher {
	return &MetadataFetcher{
		projects: projects,
	}
}

// DefaultsFor fetches a project and derives the default values to record
// for it. The issue type is left empty when the project reports none, so
// callers can keep their existing default.
func (m *MetadataFetcher) DefaultsFor(ctx context.Context, key string) (config.DefaultsConfig, error) {
	proj, err := m.projects.GetProject(ctx, key)
	if err != nil {
		return config.DefaultsConfig{}, NewConnectionError("failed to fetch project details", err)
	}

	return config.DefaultsConfig{
		Project:   proj.Key,
		IssueType: DefaultIssueType(proj.IssueTypes),
	}, nil
}

// DefaultIssueType picks the issue type new issues should default to:
// "Task" when the project has one, otherwise the first non-subtask type.
func DefaultIssueType(types []jira.IssueTypeField) string {
	for _, it := range types {
		if strings.EqualFold(it.Name, "Task") {
			return it.Name
		}
	}
	for _, it := range types {
		if !it.Subtask {
			return it.Name
		}
	}
	if len(types) > 0 {
		return types[0].Name
	}
	return ""
}
