package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/kubestellar/mcp-kubestellar/internal/cmdexec"
	"github.com/kubestellar/mcp-kubestellar/internal/config"
	"github.com/kubestellar/mcp-kubestellar/internal/instrumentation"
	"github.com/kubestellar/mcp-kubestellar/internal/kubectl"
)

// ServerContext carries every dependency the MCP tool handlers need. It is
// assembled once at startup via functional options and treated as read-only
// afterwards, apart from the shutdown flag.
type ServerContext struct {
	runner  cmdexec.Runner
	kubectl kubectl.Interface
	config  *config.Config
	logger  *slog.Logger

	instrumentationProvider *instrumentation.Provider

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a ServerContext from the given options. Missing
// required dependencies (runner, kubectl facade, config, logger) are an
// error.
func NewServerContext(ctx context.Context, opts ...Option) (*ServerContext, error) {
	serverCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:    serverCtx,
		cancel: cancel,
	}

	for _, opt := range opts {
		if err := opt(sc); err != nil {
			cancel()
			return nil, err
		}
	}

	if err := sc.validate(); err != nil {
		cancel()
		return nil, err
	}

	return sc, nil
}

// Context returns the server lifetime context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Runner returns the process runner.
func (sc *ServerContext) Runner() cmdexec.Runner {
	return sc.runner
}

// Kubectl returns the cluster query facade.
func (sc *ServerContext) Kubectl() kubectl.Interface {
	return sc.kubectl
}

// Config returns the server configuration.
func (sc *ServerContext) Config() *config.Config {
	return sc.config
}

// Logger returns the structured logger.
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// InstrumentationProvider returns the telemetry provider, which may be nil.
func (sc *ServerContext) InstrumentationProvider() *instrumentation.Provider {
	return sc.instrumentationProvider
}

// Metrics returns the metrics recorder. Safe to call on a nil provider; all
// recorder methods are no-ops in that case.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	if sc.instrumentationProvider == nil {
		return nil
	}
	return sc.instrumentationProvider.Metrics()
}

// Shutdown cancels the server context and flushes instrumentation. It is
// idempotent.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.logger.Info("shutting down server context")

	var err error
	if sc.instrumentationProvider != nil {
		err = sc.instrumentationProvider.Shutdown(context.Background())
	}

	if sc.cancel != nil {
		sc.cancel()
	}
	sc.shutdown = true

	return err
}

// IsShutdown reports whether Shutdown has run.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

func (sc *ServerContext) validate() error {
	if sc.runner == nil {
		return ErrMissingRunner
	}
	if sc.kubectl == nil {
		return ErrMissingKubectl
	}
	if sc.config == nil {
		return ErrMissingConfig
	}
	if sc.logger == nil {
		return ErrMissingLogger
	}
	return nil
}
