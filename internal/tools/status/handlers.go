package statustools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/kubestellar/mcp-kubestellar/internal/server"
	"github.com/kubestellar/mcp-kubestellar/internal/status"
	"github.com/kubestellar/mcp-kubestellar/internal/tools"
)

// handleCheckStatus runs the readiness scan across kubeconfig contexts.
func handleCheckStatus(sc *server.ServerContext) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		checker := status.NewChecker(sc.Kubectl(), sc.Logger())
		return tools.JSONResult(checker.Check(ctx))
	}
}
