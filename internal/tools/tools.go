// Package tools holds helpers shared by the MCP tool categories: JSON result
// marshaling and per-call instrumentation.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/kubestellar/mcp-kubestellar/internal/instrumentation"
	"github.com/kubestellar/mcp-kubestellar/internal/logging"
	"github.com/kubestellar/mcp-kubestellar/internal/server"
)

// JSONResult marshals a report to indented JSON for the tool response.
func JSONResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// Instrumented wraps a tool handler with logging and tool-call metrics. The
// recorded status reflects the MCP-level outcome: an error result counts as
// an error even though the handler returned it as data.
func Instrumented(sc *server.ServerContext, tool string, handler mcpserver.ToolHandlerFunc) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := logging.WithTool(sc.Logger(), tool)
		logger.Info("tool call started")

		start := time.Now()
		result, err := handler(ctx, request)
		elapsed := time.Since(start)

		status := instrumentation.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
		}
		sc.Metrics().RecordToolCall(ctx, tool, status, elapsed)

		logger.Info("tool call finished",
			logging.Status(status), logging.Duration(elapsed))
		return result, err
	}
}
