package cmd

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// runStdioServer serves MCP over stdin/stdout. ServeStdio handles interrupt
// signals itself and returns when the client closes the stream, so the call
// simply blocks until the session ends. Nothing is written to stdout here:
// it carries the protocol frames.
func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	if err := mcpserver.ServeStdio(mcpSrv); err != nil {
		return fmt.Errorf("stdio server stopped with error: %w", err)
	}
	return nil
}
