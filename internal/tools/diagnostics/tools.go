package diagnosticstools

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/kubestellar/mcp-kubestellar/internal/server"
	"github.com/kubestellar/mcp-kubestellar/internal/tools"
)

// RegisterDiagnosticsTools registers the diagnostics tools with the MCP server
func RegisterDiagnosticsTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	diagnoseTool := mcp.NewTool("diagnose_issues",
		mcp.WithDescription("Run the full diagnostic battery (docker, kubectl, contexts, namespaces, connectivity, ports, resources) and report every issue found"),
	)

	s.AddTool(diagnoseTool, tools.Instrumented(sc, "diagnose_issues", handleDiagnoseIssues(sc)))

	return nil
}
