package demoenvtools

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/kubestellar/mcp-kubestellar/internal/server"
	"github.com/kubestellar/mcp-kubestellar/internal/tools"
)

// RegisterDemoEnvTools registers the demo environment tools with the MCP server
func RegisterDemoEnvTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	manageDemoTool := mcp.NewTool("manage_demo_environment",
		mcp.WithDescription("Create or tear down the KubeStellar demo environment (kubeflex, cluster1 and cluster2 clusters) using the official demo script"),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Description("'create' to provision the demo environment, 'cleanup' to tear it down"),
		),
		mcp.WithString("platform",
			mcp.Description("Cluster platform: 'kind' or 'k3d'; defaults to the configured platform"),
		),
	)

	s.AddTool(manageDemoTool, tools.Instrumented(sc, "manage_demo_environment", handleManageDemoEnvironment(sc)))

	return nil
}
