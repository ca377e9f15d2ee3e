package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	timeSpentPattern  = regexp.MustCompile(`^(\d+[wdhm]\s*)+$`)
	timeSpentQuantity = regexp.MustCompile(`(\d+)[wdhm]`)
	issueKeyPattern   = regexp.MustCompile(`^[A-Z][A-Z0-9]*-\d+$`)
)

// ValidateTimeSpent checks a Jira duration expression such as "2h 30m" or "1d".
// The value itself is never converted; Jira applies the workspace's own
// hours-per-day and days-per-week settings.
func ValidateTimeSpent(input string) error {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return fmt.Errorf("time spent is required")
	}

	if !timeSpentPattern.MatchString(trimmed) {
		return fmt.Errorf("invalid time format '%s': use units w, d, h, m such as '2h 30m'", input)
	}

	// "0h" and friends match the pattern but would log nothing.
	total := 0
	for _, m := range timeSpentQuantity.FindAllStringSubmatch(trimmed, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return fmt.Errorf("invalid time quantity in '%s': %w", input, err)
		}
		total += n
	}
	if total == 0 {
		return fmt.Errorf("time spent must be greater than zero, got '%s'", input)
	}

	return nil
}

// IsIssueKey reports whether s is an exact issue key such as "PROJ-123".
// Keys are uppercase; "proj-123" is a search term, not a key.
func IsIssueKey(s string) bool {
	return issueKeyPattern.MatchString(s)
}
