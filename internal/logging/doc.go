// Package logging provides structured logging utilities for the
// mcp-kubestellar application.
//
// This package centralizes logging patterns to ensure consistent, structured
// logging throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - Consistent attribute naming across the codebase
//   - Level parsing from configuration strings
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithTool(slog.Default(), "check_kubestellar_status")
//	logger.Info("checking namespace",
//	    logging.Context("kind-kubeflex"))
//
// The process logger must write to stderr: stdout carries the MCP protocol
// stream when the stdio transport is active.
package logging
