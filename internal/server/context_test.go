package server

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubestellar/mcp-kubestellar/internal/cmdexec"
	"github.com/kubestellar/mcp-kubestellar/internal/config"
	"github.com/kubestellar/mcp-kubestellar/internal/instrumentation"
	"github.com/kubestellar/mcp-kubestellar/internal/kubectl"
)

func testOptions() []Option {
	runner := cmdexec.NewFakeRunner()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return []Option{
		WithRunner(runner),
		WithKubectl(kubectl.New(runner, logger)),
		WithConfig(&config.Config{ServerName: "mcp-kubestellar", ServerVersion: "0.1.0"}),
		WithLogger(logger),
	}
}

func TestNewServerContext(t *testing.T) {
	sc, err := NewServerContext(context.Background(), testOptions()...)
	require.NoError(t, err)
	defer sc.Shutdown() //nolint:errcheck

	assert.NotNil(t, sc.Runner())
	assert.NotNil(t, sc.Kubectl())
	assert.NotNil(t, sc.Logger())
	assert.Equal(t, "mcp-kubestellar", sc.Config().ServerName)
	assert.Nil(t, sc.InstrumentationProvider())
	assert.Nil(t, sc.Metrics())
	assert.False(t, sc.IsShutdown())
}

func TestNewServerContextMissingDependencies(t *testing.T) {
	runner := cmdexec.NewFakeRunner()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	kc := kubectl.New(runner, logger)
	cfg := &config.Config{}

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{
			name:    "no runner",
			opts:    []Option{WithKubectl(kc), WithConfig(cfg), WithLogger(logger)},
			wantErr: ErrMissingRunner,
		},
		{
			name:    "no kubectl",
			opts:    []Option{WithRunner(runner), WithConfig(cfg), WithLogger(logger)},
			wantErr: ErrMissingKubectl,
		},
		{
			name:    "no config",
			opts:    []Option{WithRunner(runner), WithKubectl(kc), WithLogger(logger)},
			wantErr: ErrMissingConfig,
		},
		{
			name:    "no logger",
			opts:    []Option{WithRunner(runner), WithKubectl(kc), WithConfig(cfg)},
			wantErr: ErrMissingLogger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := NewServerContext(context.Background(), tt.opts...)
			assert.Nil(t, sc)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestOptionRejectsNil(t *testing.T) {
	_, err := NewServerContext(context.Background(), WithRunner(nil))
	assert.ErrorIs(t, err, ErrMissingRunner)

	_, err = NewServerContext(context.Background(), WithLogger(nil))
	assert.ErrorIs(t, err, ErrMissingLogger)
}

func TestWithConfigClones(t *testing.T) {
	cfg := &config.Config{ServerName: "original"}
	opts := append(testOptions(), WithConfig(cfg))

	sc, err := NewServerContext(context.Background(), opts...)
	require.NoError(t, err)
	defer sc.Shutdown() //nolint:errcheck

	cfg.ServerName = "mutated"
	assert.Equal(t, "original", sc.Config().ServerName)
}

func TestShutdownFlushesInstrumentationOnce(t *testing.T) {
	provider, err := instrumentation.NewProvider(context.Background(), instrumentation.Config{
		ServiceName:     "mcp-kubestellar",
		ServiceVersion:  "test",
		Enabled:         true,
		MetricsExporter: "prometheus",
		TracingExporter: "none",
	})
	require.NoError(t, err)

	opts := append(testOptions(), WithInstrumentationProvider(provider))
	sc, err := NewServerContext(context.Background(), opts...)
	require.NoError(t, err)

	// The context is the provider's sole owner: the first Shutdown flushes
	// the meter provider cleanly and the second never touches it again.
	require.NoError(t, sc.Shutdown())
	require.NoError(t, sc.Shutdown())
}

func TestShutdownIsIdempotent(t *testing.T) {
	sc, err := NewServerContext(context.Background(), testOptions()...)
	require.NoError(t, err)

	require.NoError(t, sc.Shutdown())
	assert.True(t, sc.IsShutdown())

	select {
	case <-sc.Context().Done():
	default:
		t.Fatal("server context not canceled after shutdown")
	}

	require.NoError(t, sc.Shutdown())
	assert.True(t, sc.IsShutdown())
}
