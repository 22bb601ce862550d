package installtools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/kubestellar/mcp-kubestellar/internal/install"
	"github.com/kubestellar/mcp-kubestellar/internal/server"
	"github.com/kubestellar/mcp-kubestellar/internal/tools"
)

// handleGetInstallationInfo dispatches on the requested method.
func handleGetInstallationInfo(sc *server.ServerContext) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		method, _ := args["method"].(string)
		if method == "" {
			method = "all"
		}

		platform, _ := args["platform"].(string)
		if platform == "" {
			platform = "kind"
		}
		if platform != "kind" && platform != "k3d" {
			return mcp.NewToolResultError(
				fmt.Sprintf("Unsupported platform: %s. Use 'kind' or 'k3d'", platform)), nil
		}

		helper := install.NewHelper(sc.Runner(), sc.Config(), sc.Logger())

		switch method {
		case "all":
			return tools.JSONResult(helper.InstallationOverview())
		case "demo_script":
			return tools.JSONResult(helper.DownloadScript(ctx))
		case "helm":
			return tools.JSONResult(helper.InstallationGuide().Methods.HelmChart)
		case "validate":
			return tools.JSONResult(helper.ValidateEnvironment(ctx, platform))
		default:
			return mcp.NewToolResultError(
				fmt.Sprintf("Unknown method: %s. Use 'all', 'demo_script', 'helm' or 'validate'", method)), nil
		}
	}
}
