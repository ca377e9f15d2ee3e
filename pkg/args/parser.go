package args

import (
	"github.com/spf13/cobra"

	"github.com/michelzandonai/jira-mcp/pkg/filter"
)

// AddSearchFlags adds issue search filter flags to the command
func AddSearchFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("status", "s", "", "Filter by status name, e.g. \"In Progress\"")
	cmd.Flags().StringP("type", "t", "", "Filter by issue type name, e.g. \"Bug\"")
	cmd.Flags().IntP("limit", "L", 0, "Maximum number of issues to fetch (0 uses the configured cap)")
}

// ParseSearchFlags extracts issue filters from command flags. The free-text
// query is positional, so callers set Query themselves.
func ParseSearchFlags(cmd *cobra.Command) (*filter.IssueFilters, error) {
	filters := filter.NewIssueFilters()

	var err error

	if filters.Status, err = cmd.Flags().GetString("status"); err != nil {
		return nil, err
	}

	if filters.Type, err = cmd.Flags().GetString("type"); err != nil {
		return nil, err
	}

	if filters.Limit, err = cmd.Flags().GetInt("limit"); err != nil {
		return nil, err
	}

	return filters, nil
}
