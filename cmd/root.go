package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the spruthub-mcp-server application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "spruthub-mcp-server",
	Short: "MCP server for Sprut.hub smart homes",
	Long: `spruthub-mcp-server is a Model Context Protocol (MCP) server that exposes a
Sprut.hub smart-home hub to AI assistants. It lists, filters and counts
accessories, rooms and hubs, and writes characteristic values, while keeping
responses small enough for an LLM context window.

When run without subcommands, it starts the MCP server (equivalent to 'spruthub-mcp-server serve').`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This function is called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "spruthub-mcp-server version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAccessoriesCmd())
}
