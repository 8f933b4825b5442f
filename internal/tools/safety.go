package tools

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/shady2k/spruthub-mcp-server/internal/server"
)

// CheckMutatingOperation verifies that an operation writing to the hub is
// allowed. Returns an error result if blocked, nil if allowed.
func CheckMutatingOperation(sc *server.ServerContext, operation string) *mcp.CallToolResult {
	config := sc.Config()
	if config == nil || !config.ReadOnly {
		return nil
	}

	return mcp.NewToolResultError(fmt.Sprintf(
		"%s operations are not allowed in read-only mode (unset SPRUTHUB_READ_ONLY to enable)",
		cases.Title(language.English).String(operation),
	))
}
