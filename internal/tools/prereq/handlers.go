package prereqtools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/kubestellar/mcp-kubestellar/internal/prereq"
	"github.com/kubestellar/mcp-kubestellar/internal/server"
	"github.com/kubestellar/mcp-kubestellar/internal/tools"
)

// handleCheckPrerequisites runs the full tool battery.
func handleCheckPrerequisites(sc *server.ServerContext) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		checker := prereq.NewChecker(sc.Runner(), sc.Logger())
		return tools.JSONResult(checker.CheckAll(ctx))
	}
}
