// Package cmd provides the command-line interface for mcp-kubestellar.
//
// This package implements a Cobra-based CLI with multiple subcommands:
//   - serve: Starts the MCP server (default behavior when no subcommand is provided)
//   - version: Displays the application version
//   - self-update: Updates the binary to the latest version from GitHub releases
//
// The CLI maintains backwards compatibility by running the serve command when
// no subcommand is specified, preserving the original behavior of the application.
//
// Command Structure:
//
//	mcp-kubestellar [flags]                 # Starts the MCP server (default)
//	mcp-kubestellar serve [flags]           # Explicitly starts the MCP server
//	mcp-kubestellar version                 # Shows version information
//	mcp-kubestellar self-update             # Updates to latest release
//	mcp-kubestellar help [command]          # Shows help information
//
// The serve command supports multiple transport options:
//   - stdio: Standard input/output (default) - for command-line integration
//   - sse: Server-Sent Events over HTTP - for web-based clients
//   - streamable-http: Streamable HTTP transport - for HTTP-based integration
//
// Transport Configuration Examples:
//
//	mcp-kubestellar serve --transport stdio           # Default STDIO transport
//	mcp-kubestellar serve --transport sse --http-addr :8080 --sse-endpoint /sse
//	mcp-kubestellar serve --transport streamable-http --http-addr :9000 --http-endpoint /mcp
//
// Server configuration (KubeStellar release version, documentation URLs,
// command timeout, demo platform) is read from KUBESTELLAR_* environment
// variables at startup; see the config package for the full list.
package cmd
