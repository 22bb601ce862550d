package clustertools

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/kubestellar/mcp-kubestellar/internal/server"
	"github.com/kubestellar/mcp-kubestellar/internal/tools"
)

// RegisterClusterTools registers the cluster inspection tools with the MCP server
func RegisterClusterTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	clusterInfoTool := mcp.NewTool("get_cluster_info",
		mcp.WithDescription("Get detailed information about KubeStellar clusters: accessibility, nodes, control namespaces and KubeStellar custom resources"),
		mcp.WithString("context",
			mcp.Description("Inspect only this kubeconfig context; omit to inspect every KubeStellar-related context"),
		),
	)

	s.AddTool(clusterInfoTool, tools.Instrumented(sc, "get_cluster_info", handleGetClusterInfo(sc)))

	return nil
}
