package init

import (
	"context"
	"os"

	"github.com/michelzandonai/jira-mcp/pkg/config"
	"github.com/michelzandonai/jira-mcp/pkg/jira"
)

// ProjectLister lists the projects visible to the configured credentials.
type ProjectLister interface {
	ListProjects(ctx context.Context) ([]jira.Project, error)
}

// Connection holds the connection settings detected from the environment.
// The token itself is never carried around, only whether it is set.
type Connection struct {
	URL      string
	Username string
	TokenSet bool
}

// DetectConnection reads Jira connection settings from the environment.
func DetectConnection() Connection {
	return Connection{
		URL:      os.Getenv(config.EnvJiraURL),
		Username: os.Getenv(config.EnvJiraUsername),
		TokenSet: os.Getenv(config.EnvJiraAPIToken) != "",
	}
}

// Detector probes a Jira instance during initialization
type Detector struct {
	projects ProjectLister
}

// NewDetector creates a new Detector instance
func NewDetector(projects ProjectLister) *Detector {
	return &Detector{
		projects: projects,
	}
}

// ListProjects lists the projects the connection can see, verifying the
// credentials along the way.
func (d *Detector) ListProjects(ctx context.Context) ([]jira.Project, error) {
	projects, err := d.projects.ListProjects(ctx)
	if err != nil {
		return nil, NewConnectionError("failed to list projects", err)
	}

	return projects, nil
}
