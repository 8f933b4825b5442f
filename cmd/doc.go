// Package cmd provides the command-line interface for spruthub-mcp-server.
//
// Subcommands:
//   - serve: starts the MCP server (the default when no subcommand is given)
//   - accessories: prints one filtered page of accessories as a table
//   - version: prints the application version
//   - self-update: replaces the binary with the latest GitHub release
//
// Command Structure:
//
//	spruthub-mcp-server [flags]                  # Starts the MCP server (default)
//	spruthub-mcp-server serve --transport sse    # MCP over Server-Sent Events
//	spruthub-mcp-server accessories --room 3     # Table of accessories in room 3
//	spruthub-mcp-server version
//	spruthub-mcp-server self-update
//
// Configuration is resolved in layers, later layers winning: built-in
// defaults, the --config YAML file, SPRUTHUB_* environment variables, and
// finally flags set on the command line. The hub password is never accepted
// as a flag.
package cmd
