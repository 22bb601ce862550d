package demoenvtools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/kubestellar/mcp-kubestellar/internal/demoenv"
	"github.com/kubestellar/mcp-kubestellar/internal/server"
	"github.com/kubestellar/mcp-kubestellar/internal/tools"
)

// handleManageDemoEnvironment dispatches create/cleanup actions.
func handleManageDemoEnvironment(sc *server.ServerContext) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		action, _ := args["action"].(string)
		if action == "" {
			return mcp.NewToolResultError("action is required: use 'create' or 'cleanup'"), nil
		}

		platform, _ := args["platform"].(string)
		if platform == "" {
			platform = sc.Config().DemoPlatform
		}
		if platform != "kind" && platform != "k3d" {
			return mcp.NewToolResultError(
				fmt.Sprintf("Unsupported platform: %s. Use 'kind' or 'k3d'", platform)), nil
		}

		manager := demoenv.NewManager(sc.Runner(), sc.Kubectl(), sc.Config(), sc.Logger())

		switch action {
		case "create":
			return tools.JSONResult(manager.Create(ctx, platform))
		case "cleanup":
			return tools.JSONResult(manager.Cleanup(ctx, platform))
		default:
			return mcp.NewToolResultError(
				fmt.Sprintf("Unknown action: %s. Use 'create' or 'cleanup'", action)), nil
		}
	}
}
