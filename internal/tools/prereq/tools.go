package prereqtools

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/kubestellar/mcp-kubestellar/internal/server"
	"github.com/kubestellar/mcp-kubestellar/internal/tools"
)

// RegisterPrereqTools registers the prerequisite checking tools with the MCP server
func RegisterPrereqTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	checkPrereqsTool := mcp.NewTool("check_prerequisites",
		mcp.WithDescription("Verify that the tools required for a KubeStellar installation (kubectl, docker, helm, go, kind, k3d) are installed and usable"),
	)

	s.AddTool(checkPrereqsTool, tools.Instrumented(sc, "check_prerequisites", handleCheckPrerequisites(sc)))

	return nil
}
