// Package middleware holds HTTP middleware shared by the SSE and streamable
// HTTP transports.
package middleware
