package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/kubestellar/mcp-kubestellar/internal/cmdexec"
	"github.com/kubestellar/mcp-kubestellar/internal/config"
	"github.com/kubestellar/mcp-kubestellar/internal/instrumentation"
	"github.com/kubestellar/mcp-kubestellar/internal/kubectl"
	"github.com/kubestellar/mcp-kubestellar/internal/logging"
	"github.com/kubestellar/mcp-kubestellar/internal/server"
	clustertools "github.com/kubestellar/mcp-kubestellar/internal/tools/cluster"
	demoenvtools "github.com/kubestellar/mcp-kubestellar/internal/tools/demoenv"
	diagnosticstools "github.com/kubestellar/mcp-kubestellar/internal/tools/diagnostics"
	installtools "github.com/kubestellar/mcp-kubestellar/internal/tools/install"
	prereqtools "github.com/kubestellar/mcp-kubestellar/internal/tools/prereq"
	statustools "github.com/kubestellar/mcp-kubestellar/internal/tools/status"
)

// Transport type constants for the MCP server.
const (
	transportStdio          = "stdio"
	transportSSE            = "sse"
	transportStreamableHTTP = "streamable-http"
)

// shutdownTimeout bounds graceful shutdown of the HTTP transports.
const shutdownTimeout = 30 * time.Second

// ServeConfig holds all configuration for the serve command.
type ServeConfig struct {
	// Transport settings
	Transport string
	HTTPAddr  string

	// Endpoint paths
	SSEEndpoint     string
	MessageEndpoint string
	HTTPEndpoint    string

	// DebugMode forces debug-level logging regardless of KUBESTELLAR_LOG_LEVEL.
	DebugMode bool
}

// newServeCmd creates the Cobra command for starting the MCP server.
func newServeCmd() *cobra.Command {
	var (
		debugMode bool

		// Transport options
		transport       string
		httpAddr        string
		sseEndpoint     string
		messageEndpoint string
		httpEndpoint    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP KubeStellar server",
		Long: `Start the MCP KubeStellar server to provide tools for checking,
diagnosing and setting up KubeStellar multi-cluster environments via the
Model Context Protocol.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - sse: Server-Sent Events over HTTP
  - streamable-http: Streamable HTTP transport

Server behavior (KubeStellar release version, documentation URLs, command
timeout, default demo platform) is configured through KUBESTELLAR_*
environment variables.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(ServeConfig{
				Transport:       transport,
				HTTPAddr:        httpAddr,
				SSEEndpoint:     sseEndpoint,
				MessageEndpoint: messageEndpoint,
				HTTPEndpoint:    httpEndpoint,
				DebugMode:       debugMode,
			})
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging (default: false)")

	// Transport flags
	cmd.Flags().StringVar(&transport, "transport", transportStdio, "Transport type: stdio, sse, or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "HTTP server address (for sse and streamable-http transports)")
	cmd.Flags().StringVar(&sseEndpoint, "sse-endpoint", "/sse", "SSE endpoint path (for sse transport)")
	cmd.Flags().StringVar(&messageEndpoint, "message-endpoint", "/message", "Message endpoint path (for sse transport)")
	cmd.Flags().StringVar(&httpEndpoint, "http-endpoint", "/mcp", "HTTP endpoint path (for streamable-http transport)")

	return cmd
}

// runServe contains the main server logic with support for multiple transports.
func runServe(serveConfig ServeConfig) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// The stdio transport owns stdout for the protocol stream, so the logger
	// always writes to stderr.
	logLevel := cfg.LogLevel
	if serveConfig.DebugMode {
		logLevel = "debug"
	}
	logger := logging.NewLogger(os.Stderr, logLevel)

	serverVersion := rootCmd.Version
	if serverVersion == "" {
		serverVersion = cfg.ServerVersion
	}

	// Setup graceful shutdown - listen for both SIGINT and SIGTERM
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize OpenTelemetry instrumentation provider
	instrumentationConfig := instrumentation.DefaultConfig()
	instrumentationConfig.ServiceName = cfg.ServerName
	instrumentationConfig.ServiceVersion = serverVersion
	instrumentationProvider, err := instrumentation.NewProvider(shutdownCtx, instrumentationConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}

	if instrumentationProvider.Enabled() {
		logger.Info("instrumentation enabled",
			"metrics_exporter", instrumentationConfig.MetricsExporter,
			"tracing_exporter", instrumentationConfig.TracingExporter)
	}

	// All external tooling (kubectl, docker, kind, k3d, helm, ...) is invoked
	// through a single runner so command timeouts, logging and metrics apply
	// uniformly.
	runner := cmdexec.NewExecRunner(
		cmdexec.WithDefaultTimeout(cfg.CommandTimeout),
		cmdexec.WithLogger(logger),
		cmdexec.WithMetrics(instrumentationProvider.Metrics()),
	)
	kubectlClient := kubectl.New(runner, logger)

	serverContext, err := server.NewServerContext(shutdownCtx,
		server.WithRunner(runner),
		server.WithKubectl(kubectlClient),
		server.WithConfig(cfg),
		server.WithLogger(logger),
		server.WithInstrumentationProvider(instrumentationProvider),
	)
	if err != nil {
		if shutdownErr := instrumentationProvider.Shutdown(context.Background()); shutdownErr != nil {
			logger.Error("error during instrumentation shutdown", logging.Err(shutdownErr))
		}
		return fmt.Errorf("failed to create server context: %w", err)
	}
	// The server context owns the instrumentation provider from here on and
	// flushes it exactly once during Shutdown.
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			logger.Error("error during server context shutdown", logging.Err(err))
		}
	}()

	// Create MCP server
	mcpSrv := mcpserver.NewMCPServer(cfg.ServerName, serverVersion,
		mcpserver.WithToolCapabilities(true),
	)

	// Register all tool categories
	if err := statustools.RegisterStatusTools(mcpSrv, serverContext); err != nil {
		return fmt.Errorf("failed to register status tools: %w", err)
	}

	if err := prereqtools.RegisterPrereqTools(mcpSrv, serverContext); err != nil {
		return fmt.Errorf("failed to register prerequisite tools: %w", err)
	}

	if err := clustertools.RegisterClusterTools(mcpSrv, serverContext); err != nil {
		return fmt.Errorf("failed to register cluster tools: %w", err)
	}

	if err := diagnosticstools.RegisterDiagnosticsTools(mcpSrv, serverContext); err != nil {
		return fmt.Errorf("failed to register diagnostics tools: %w", err)
	}

	if err := installtools.RegisterInstallTools(mcpSrv, serverContext); err != nil {
		return fmt.Errorf("failed to register installation tools: %w", err)
	}

	if err := demoenvtools.RegisterDemoEnvTools(mcpSrv, serverContext); err != nil {
		return fmt.Errorf("failed to register demo environment tools: %w", err)
	}

	// Start the appropriate server based on transport type
	switch serveConfig.Transport {
	case transportStdio:
		// Don't log startup for stdio mode; stdout carries MCP traffic.
		return runStdioServer(mcpSrv)
	case transportSSE:
		logger.Info("starting MCP KubeStellar server", "transport", serveConfig.Transport)
		return runSSEServer(shutdownCtx, mcpSrv, logger, serveConfig.HTTPAddr, serveConfig.SSEEndpoint, serveConfig.MessageEndpoint)
	case transportStreamableHTTP:
		logger.Info("starting MCP KubeStellar server", "transport", serveConfig.Transport)
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, logger, serveConfig.HTTPAddr, serveConfig.HTTPEndpoint, instrumentationProvider, serverContext)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, sse, streamable-http)", serveConfig.Transport)
	}
}
