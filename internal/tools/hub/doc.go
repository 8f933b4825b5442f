// Package hub provides the hub listing tool.
package hub
