package server

import (
	"errors"
	"log/slog"

	"github.com/kubestellar/mcp-kubestellar/internal/cmdexec"
	"github.com/kubestellar/mcp-kubestellar/internal/config"
	"github.com/kubestellar/mcp-kubestellar/internal/instrumentation"
	"github.com/kubestellar/mcp-kubestellar/internal/kubectl"
)

// Option is a functional option for configuring ServerContext.
type Option func(*ServerContext) error

// WithRunner sets the process runner.
func WithRunner(runner cmdexec.Runner) Option {
	return func(sc *ServerContext) error {
		if runner == nil {
			return ErrMissingRunner
		}
		sc.runner = runner
		return nil
	}
}

// WithKubectl sets the cluster query facade.
func WithKubectl(kc kubectl.Interface) Option {
	return func(sc *ServerContext) error {
		if kc == nil {
			return ErrMissingKubectl
		}
		sc.kubectl = kc
		return nil
	}
}

// WithConfig sets the server configuration. The config is cloned so later
// mutation by the caller cannot leak into the running server.
func WithConfig(cfg *config.Config) Option {
	return func(sc *ServerContext) error {
		if cfg == nil {
			return ErrMissingConfig
		}
		sc.config = cfg.Clone()
		return nil
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(sc *ServerContext) error {
		if logger == nil {
			return ErrMissingLogger
		}
		sc.logger = logger
		return nil
	}
}

// WithInstrumentationProvider sets the OpenTelemetry provider. Optional; a
// nil provider disables all telemetry.
func WithInstrumentationProvider(provider *instrumentation.Provider) Option {
	return func(sc *ServerContext) error {
		sc.instrumentationProvider = provider
		return nil
	}
}

// Validation errors for required ServerContext dependencies.
var (
	ErrMissingRunner  = errors.New("process runner is required")
	ErrMissingKubectl = errors.New("kubectl facade is required")
	ErrMissingConfig  = errors.New("configuration is required")
	ErrMissingLogger  = errors.New("logger is required")
)
