package batch

import (
	"strings"

	"github.com/michelzandonai/jira-mcp/pkg/utils"
)

// CreateItem describes one issue to create, with an optional work log
// recorded right after creation.
type CreateItem struct {
	Summary           string `json:"summary" yaml:"summary"`
	Description       string `json:"description,omitempty" yaml:"description,omitempty"`
	IssueType         string `json:"issue_type,omitempty" yaml:"issue_type,omitempty"`
	ProjectIdentifier string `json:"project_identifier" yaml:"project_identifier"`
	OriginalEstimate  string `json:"original_estimate,omitempty" yaml:"original_estimate,omitempty"`

	// Optional work log. TimeSpent being set turns the item into the
	// two-step create-then-log operation.
	TimeSpent       string `json:"time_spent,omitempty" yaml:"time_spent,omitempty"`
	WorkDate        string `json:"work_date,omitempty" yaml:"work_date,omitempty"`
	WorkDescription string `json:"work_description,omitempty" yaml:"work_description,omitempty"`
}

// HasWorklog reports whether the item asks for time to be logged after creation.
func (it CreateItem) HasWorklog() bool {
	return strings.TrimSpace(it.TimeSpent) != ""
}

// Validate checks the item before any remote call is made.
func (it CreateItem) Validate() error {
	if strings.TrimSpace(it.Summary) == "" {
		return NewValidationError("summary is required", nil)
	}
	if strings.TrimSpace(it.ProjectIdentifier) == "" {
		return NewValidationError("project_identifier is required", nil)
	}
	if it.HasWorklog() {
		if err := utils.ValidateTimeSpent(it.TimeSpent); err != nil {
			return NewValidationError("invalid time_spent", err)
		}
	}
	if it.OriginalEstimate != "" {
		if err := utils.ValidateTimeSpent(it.OriginalEstimate); err != nil {
			return NewValidationError("invalid original_estimate", err)
		}
	}
	return nil
}

// LogTimeItem describes a work entry to record on an existing issue.
// The issue is looked up within the batch's shared project scope.
type LogTimeItem struct {
	IssueIdentifier string `json:"issue_identifier" yaml:"issue_identifier"`
	TimeSpent       string `json:"time_spent" yaml:"time_spent"`
	WorkDate        string `json:"work_date,omitempty" yaml:"work_date,omitempty"`
	WorkDescription string `json:"work_description,omitempty" yaml:"work_description,omitempty"`
}

// Validate checks the item before any remote call is made.
func (it LogTimeItem) Validate() error {
	if strings.TrimSpace(it.IssueIdentifier) == "" {
		return NewValidationError("issue_identifier is required", nil)
	}
	if strings.TrimSpace(it.TimeSpent) == "" {
		return NewValidationError("time_spent is required", nil)
	}
	if err := utils.ValidateTimeSpent(it.TimeSpent); err != nil {
		return NewValidationError("invalid time_spent", err)
	}
	return nil
}

// CreateRequest is a batch of issues to create. Each item carries its own
// project identifier; items resolve independently.
type CreateRequest struct {
	Items []CreateItem `json:"items" yaml:"items"`
}

// LogWorkRequest is a batch of work entries against issues in one project.
// The project identifier is resolved once for the whole batch.
type LogWorkRequest struct {
	ProjectIdentifier string        `json:"project_identifier" yaml:"project_identifier"`
	Items             []LogTimeItem `json:"items" yaml:"items"`
}
