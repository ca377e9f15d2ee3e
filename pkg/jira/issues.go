package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Issue represents a Jira issue from the REST API.
type Issue struct {
	ID     string      `json:"id"`
	Key    string      `json:"key"`
	Self   string      `json:"self"`
	Fields IssueFields `json:"fields"`
}

// IssueFields contains the fields of a Jira issue.
type IssueFields struct {
	Summary     string          `json:"summary"`
	Description json.RawMessage `json:"description"` // ADF (Atlassian Document Format) or plain text
	Status      *StatusField    `json:"status"`
	IssueType   *IssueTypeField `json:"issuetype"`
	Project     *ProjectField   `json:"project"`
	Created     string          `json:"created"`
	Updated     string          `json:"updated"`
}

// StatusField represents a Jira issue status.
type StatusField struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProjectField represents the project reference on an issue.
type ProjectField struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}

// SearchResult represents a Jira JQL search response.
type SearchResult struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	Total      int     `json:"total"`
	Issues     []Issue `json:"issues"`
}

// searchFields is the default set of fields to request in search/get queries.
const searchFields = "summary,description,status,issuetype,project,created,updated"

// SearchIssues queries Jira using JQL and returns matching issues, handling
// pagination. A positive limit caps the number of issues returned; limit <= 0
// fetches everything.
func (c *Client) SearchIssues(ctx context.Context, jql string, limit int) ([]Issue, error) {
	var allIssues []Issue
	startAt := 0
	pageSize := 100
	if limit > 0 && limit < pageSize {
		pageSize = limit
	}

	for {
		params := url.Values{
			"jql":        {jql},
			"fields":     {searchFields},
			"startAt":    {fmt.Sprintf("%d", startAt)},
			"maxResults": {fmt.Sprintf("%d", pageSize)},
		}

		apiURL := fmt.Sprintf("%s/rest/api/3/search?%s", c.URL, params.Encode())

		body, err := c.doRequest(ctx, "GET", apiURL, nil)
		if err != nil {
			return nil, fmt.Errorf("search issues: %w", err)
		}

		var result SearchResult
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, fmt.Errorf("parse search response: %w", err)
		}

		allIssues = append(allIssues, result.Issues...)

		if limit > 0 && len(allIssues) >= limit {
			return allIssues[:limit], nil
		}
		if len(result.Issues) == 0 || startAt+len(result.Issues) >= result.Total {
			break
		}
		startAt += len(result.Issues)
	}

	return allIssues, nil
}

// GetIssue fetches a single Jira issue by key (e.g., "PROJ-123").
func (c *Client) GetIssue(ctx context.Context, key string) (*Issue, error) {
	apiURL := fmt.Sprintf("%s/rest/api/3/issue/%s?fields=%s", c.URL, url.PathEscape(key), searchFields)

	body, err := c.doRequest(ctx, "GET", apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("get issue %s: %w", key, err)
	}

	var issue Issue
	if err := json.Unmarshal(body, &issue); err != nil {
		return nil, fmt.Errorf("parse issue response: %w", err)
	}

	return &issue, nil
}

// CreateIssueInput describes a new issue to create.
type CreateIssueInput struct {
	ProjectKey       string
	Summary          string
	Description      string
	IssueType        string
	OriginalEstimate string
}

// CreatedIssue is the reference Jira returns for a newly created issue.
type CreatedIssue struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}

// CreateIssue creates a new issue in Jira and returns its reference.
func (c *Client) CreateIssue(ctx context.Context, input CreateIssueInput) (*CreatedIssue, error) {
	fields := map[string]interface{}{
		"project":   map[string]interface{}{"key": input.ProjectKey},
		"summary":   input.Summary,
		"issuetype": map[string]interface{}{"name": input.IssueType},
	}
	if input.Description != "" {
		fields["description"] = json.RawMessage(PlainTextToADF(input.Description))
	}
	if input.OriginalEstimate != "" {
		fields["timetracking"] = map[string]interface{}{"originalEstimate": input.OriginalEstimate}
	}

	payload := map[string]interface{}{"fields": fields}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal create request: %w", err)
	}

	apiURL := fmt.Sprintf("%s/rest/api/3/issue", c.URL)

	body, err := c.doRequest(ctx, "POST", apiURL, data)
	if err != nil {
		return nil, fmt.Errorf("create issue: %w", err)
	}

	var created CreatedIssue
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("parse create response: %w", err)
	}

	return &created, nil
}
