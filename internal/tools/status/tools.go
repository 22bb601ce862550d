package statustools

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/kubestellar/mcp-kubestellar/internal/server"
	"github.com/kubestellar/mcp-kubestellar/internal/tools"
)

// RegisterStatusTools registers the KubeStellar status tools with the MCP server
func RegisterStatusTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	checkStatusTool := mcp.NewTool("check_kubestellar_status",
		mcp.WithDescription("Check if KubeStellar is installed and ready by scanning kubeconfig contexts for a compatible cluster with the required control namespaces"),
	)

	s.AddTool(checkStatusTool, tools.Instrumented(sc, "check_kubestellar_status", handleCheckStatus(sc)))

	return nil
}
