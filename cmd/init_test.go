package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michelzandonai/jira-mcp/pkg/jira"
)

func TestMatchInitProject(t *testing.T) {
	projects := []jira.Project{
		{Key: "MOB", Name: "Mobile App"},
		{Key: "WEB", Name: "Web Storefront"},
		{Key: "OPS", Name: "Operations"},
	}

	t.Run("exact key", func(t *testing.T) {
		got := matchInitProject(projects, "WEB")
		require.NotNil(t, got)
		assert.Equal(t, "WEB", got.Key)
	})

	t.Run("key ignores case", func(t *testing.T) {
		got := matchInitProject(projects, "mob")
		require.NotNil(t, got)
		assert.Equal(t, "MOB", got.Key)
	})

	t.Run("name fragment", func(t *testing.T) {
		got := matchInitProject(projects, "storefront")
		require.NotNil(t, got)
		assert.Equal(t, "WEB", got.Key)
	})

	t.Run("key wins over name fragment", func(t *testing.T) {
		ambiguous := []jira.Project{
			{Key: "APP", Name: "OPS Tooling"},
			{Key: "OPS", Name: "Operations"},
		}
		got := matchInitProject(ambiguous, "OPS")
		require.NotNil(t, got)
		assert.Equal(t, "OPS", got.Key)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Nil(t, matchInitProject(projects, "nothing"))
	})
}
