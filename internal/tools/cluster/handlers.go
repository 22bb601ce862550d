package clustertools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/kubestellar/mcp-kubestellar/internal/cluster"
	"github.com/kubestellar/mcp-kubestellar/internal/server"
	"github.com/kubestellar/mcp-kubestellar/internal/tools"
)

// handleGetClusterInfo inspects one named context or all KubeStellar-related
// contexts.
func handleGetClusterInfo(sc *server.ServerContext) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kubeContext, _ := request.GetArguments()["context"].(string)

		manager := cluster.NewManager(sc.Kubectl(), sc.Logger())
		return tools.JSONResult(manager.Info(ctx, kubeContext))
	}
}
