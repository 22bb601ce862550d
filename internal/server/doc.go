// Package server wires the MCP server's dependencies together. ServerContext
// is built once at startup from functional options and handed to every tool
// category; HealthChecker exposes the probe endpoints used by the HTTP
// transports.
package server
