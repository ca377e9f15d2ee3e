package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var workDateParser = newWorkDateParser()

func newWorkDateParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// ParseWorkDate converts a work date expression to the day the work happened.
// Examples:
//
//	""           -> today
//	2025-01-15   -> that day
//	yesterday    -> base minus one day
//	last friday  -> the most recent Friday
func ParseWorkDate(input string) (time.Time, error) {
	return ParseWorkDateWithBase(input, time.Now())
}

// ParseWorkDateWithBase converts with a specific base date (for testing)
func ParseWorkDateWithBase(input string, baseDate time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)

	if input == "" {
		return midnight(baseDate), nil
	}

	if isoDatePattern.MatchString(input) {
		t, err := time.ParseInLocation("2006-01-02", input, baseDate.Location())
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date '%s': %w", input, err)
		}
		return t, nil
	}

	result, err := workDateParser.Parse(input, baseDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse work date '%s': %w", input, err)
	}
	if result == nil {
		return time.Time{}, fmt.Errorf("unsupported work date format: %s", input)
	}

	return midnight(result.Time), nil
}

// midnight truncates a time to the start of its day, keeping the location
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
