package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Project represents a Jira project from the REST API.
type Project struct {
	ID             string           `json:"id"`
	Key            string           `json:"key"`
	Name           string           `json:"name"`
	Description    string           `json:"description,omitempty"`
	ProjectTypeKey string           `json:"projectTypeKey,omitempty"`
	Lead           *UserField       `json:"lead,omitempty"`
	IssueTypes     []IssueTypeField `json:"issueTypes,omitempty"`
}

// UserField represents a Jira user.
type UserField struct {
	AccountID    string `json:"accountId"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress,omitempty"`
}

// IssueTypeField represents a Jira issue type.
type IssueTypeField struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Subtask     bool   `json:"subtask,omitempty"`
}

// projectSearchResult represents one page of a project search response.
type projectSearchResult struct {
	StartAt    int       `json:"startAt"`
	MaxResults int       `json:"maxResults"`
	Total      int       `json:"total"`
	IsLast     bool      `json:"isLast"`
	Values     []Project `json:"values"`
}

// ListProjects returns all projects visible to the authenticated user,
// handling pagination.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var all []Project
	startAt := 0
	maxResults := 50

	for {
		params := url.Values{
			"startAt":    {fmt.Sprintf("%d", startAt)},
			"maxResults": {fmt.Sprintf("%d", maxResults)},
			"expand":     {"description"},
		}

		apiURL := fmt.Sprintf("%s/rest/api/3/project/search?%s", c.URL, params.Encode())

		body, err := c.doRequest(ctx, "GET", apiURL, nil)
		if err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}

		var page projectSearchResult
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("parse project search response: %w", err)
		}

		all = append(all, page.Values...)

		if page.IsLast || len(page.Values) == 0 || startAt+len(page.Values) >= page.Total {
			break
		}
		startAt += len(page.Values)
	}

	return all, nil
}

// GetProject fetches a single project by key, including its issue types.
func (c *Client) GetProject(ctx context.Context, key string) (*Project, error) {
	apiURL := fmt.Sprintf("%s/rest/api/3/project/%s?expand=description,lead,issueTypes",
		c.URL, url.PathEscape(key))

	body, err := c.doRequest(ctx, "GET", apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("get project %s: %w", key, err)
	}

	var project Project
	if err := json.Unmarshal(body, &project); err != nil {
		return nil, fmt.Errorf("parse project response: %w", err)
	}

	return &project, nil
}
