package diagnosticstools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/kubestellar/mcp-kubestellar/internal/diagnostics"
	"github.com/kubestellar/mcp-kubestellar/internal/server"
	"github.com/kubestellar/mcp-kubestellar/internal/tools"
)

// handleDiagnoseIssues runs every diagnostic check and aggregates the report.
func handleDiagnoseIssues(sc *server.ServerContext) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		runner := diagnostics.NewRunner(sc.Runner(), sc.Kubectl(), sc.Logger())
		return tools.JSONResult(runner.Diagnose(ctx))
	}
}
