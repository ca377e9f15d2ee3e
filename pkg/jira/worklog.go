package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

// startedFormat is the timestamp layout the worklog API expects.
const startedFormat = "2006-01-02T15:04:05.000-0700"

// Worklog describes a work entry to record on an issue.
type Worklog struct {
	TimeSpent string
	Started   time.Time
	Comment   string
}

// AddWorklog records time spent on an issue. TimeSpent uses Jira duration
// syntax ("2h 30m") and is passed through untouched.
func (c *Client) AddWorklog(ctx context.Context, issueKey string, w Worklog) error {
	payload := map[string]interface{}{
		"timeSpent": w.TimeSpent,
		"started":   w.Started.Format(startedFormat),
	}
	if w.Comment != "" {
		payload["comment"] = json.RawMessage(PlainTextToADF(w.Comment))
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal worklog request: %w", err)
	}

	apiURL := fmt.Sprintf("%s/rest/api/3/issue/%s/worklog", c.URL, url.PathEscape(issueKey))

	if _, err := c.doRequest(ctx, "POST", apiURL, data); err != nil {
		return fmt.Errorf("add worklog to %s: %w", issueKey, err)
	}

	return nil
}
