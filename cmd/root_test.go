package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withVersion sets the root version for the duration of the test.
func withVersion(t *testing.T, v string) {
	t.Helper()
	previous := rootCmd.Version
	SetVersion(v)
	t.Cleanup(func() { rootCmd.Version = previous })
}

func TestRootCmd(t *testing.T) {
	assert.Equal(t, "spruthub-mcp-server", rootCmd.Use)
	assert.Equal(t, "MCP server for Sprut.hub smart homes", rootCmd.Short)
	assert.Contains(t, rootCmd.Long, "Model Context Protocol")
	assert.True(t, rootCmd.SilenceUsage)

	names := make(map[string]*cobra.Command)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = sub
	}
	for _, want := range []string{"serve", "accessories", "version", "self-update"} {
		assert.Contains(t, names, want)
	}
}

func TestSetVersion(t *testing.T) {
	withVersion(t, "v0.9.0-rc.1")
	assert.Equal(t, "v0.9.0-rc.1", rootCmd.Version)
}

func TestVersionCmdOutput(t *testing.T) {
	for _, v := range []string{"dev", "v1.4.0", ""} {
		t.Run("version "+v, func(t *testing.T) {
			withVersion(t, v)

			cmd := newVersionCmd()
			var buf bytes.Buffer
			cmd.SetOut(&buf)
			cmd.SetArgs([]string{})

			require.NoError(t, cmd.Execute())
			assert.Equal(t, "spruthub-mcp-server version "+v+"\n", buf.String())
		})
	}
}

func TestSelfUpdateRefusesDevelopmentBuilds(t *testing.T) {
	assert.Equal(t, "shady2k/spruthub-mcp-server", githubRepoSlug)

	for _, v := range []string{"dev", ""} {
		t.Run("version "+v, func(t *testing.T) {
			withVersion(t, v)

			cmd := newSelfUpdateCmd()
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetArgs([]string{})

			err := cmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "cannot self-update a development version")
		})
	}
}
