package installtools

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/kubestellar/mcp-kubestellar/internal/server"
	"github.com/kubestellar/mcp-kubestellar/internal/tools"
)

// RegisterInstallTools registers the installation helper tools with the MCP server
func RegisterInstallTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	installInfoTool := mcp.NewTool("get_installation_info",
		mcp.WithDescription("Get KubeStellar installation information: the full guide, the demo script, the Helm chart, or a pre-flight validation of this machine"),
		mcp.WithString("method",
			mcp.Description("What to return: 'all' (default), 'demo_script', 'helm' or 'validate'"),
		),
		mcp.WithString("platform",
			mcp.Description("Cluster platform for 'validate': 'kind' (default) or 'k3d'"),
		),
	)

	s.AddTool(installInfoTool, tools.Instrumented(sc, "get_installation_info", handleGetInstallationInfo(sc)))

	return nil
}
