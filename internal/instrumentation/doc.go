// Package instrumentation provides OpenTelemetry instrumentation for the
// mcp-kubestellar server.
//
// This package enables production-grade observability through:
//   - OpenTelemetry metrics for HTTP requests, MCP tool calls, and external commands
//   - Distributed tracing for tool invocation flows
//   - Prometheus metrics export via the /metrics endpoint
//   - OTLP export support for modern observability platforms
//
// # Metrics
//
// Server/HTTP Metrics:
//   - http_requests_total: Counter of HTTP requests by method, path, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//
// MCP Tool Metrics:
//   - mcp_tool_calls_total: Counter of tool invocations by tool and status
//   - mcp_tool_call_duration_seconds: Histogram of tool invocation durations
//
// External Command Metrics:
//   - command_executions_total: Counter of spawned commands by binary name and status
//   - command_execution_duration_seconds: Histogram of command wall-clock durations
//
// The command label carries only the binary name (kubectl, docker, kind, ...),
// never arguments, keeping cardinality bounded.
//
// # Configuration
//
// Instrumentation is configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: false)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: mcp-kubestellar)
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	recorder := provider.Metrics()
//	recorder.RecordCommand(ctx, "kubectl", 0, time.Since(start))
package instrumentation
