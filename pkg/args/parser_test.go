package args

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSearchFlags(t *testing.T) {
	cmd := &cobra.Command{
		Use: "test",
	}

	AddSearchFlags(cmd)

	// Check that flags were added
	assert.NotNil(t, cmd.Flags().Lookup("status"))
	assert.NotNil(t, cmd.Flags().Lookup("type"))
	assert.NotNil(t, cmd.Flags().Lookup("limit"))

	// Check short flags
	assert.Equal(t, "s", cmd.Flags().Lookup("status").Shorthand)
	assert.Equal(t, "t", cmd.Flags().Lookup("type").Shorthand)
	assert.Equal(t, "L", cmd.Flags().Lookup("limit").Shorthand)
}

func TestParseSearchFlags(t *testing.T) {
	cmd := &cobra.Command{
		Use: "test",
	}

	AddSearchFlags(cmd)

	// Set some flag values
	err := cmd.Flags().Set("status", "In Progress")
	require.NoError(t, err)
	err = cmd.Flags().Set("type", "Bug")
	require.NoError(t, err)
	err = cmd.Flags().Set("limit", "50")
	require.NoError(t, err)

	filters, err := ParseSearchFlags(cmd)
	require.NoError(t, err)

	assert.Equal(t, "In Progress", filters.Status)
	assert.Equal(t, "Bug", filters.Type)
	assert.Equal(t, 50, filters.Limit)
}

func TestParseSearchFlagsDefaults(t *testing.T) {
	cmd := &cobra.Command{
		Use: "test",
	}

	AddSearchFlags(cmd)

	filters, err := ParseSearchFlags(cmd)
	require.NoError(t, err)

	assert.Empty(t, filters.Status)
	assert.Empty(t, filters.Type)
	assert.Zero(t, filters.Limit)
}
