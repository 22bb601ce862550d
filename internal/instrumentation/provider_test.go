package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "mcp-kubestellar", cfg.ServiceName)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "prometheus", cfg.MetricsExporter)
	assert.Equal(t, "none", cfg.TracingExporter)
	assert.Equal(t, 0.1, cfg.TraceSamplingRate)
	assert.Equal(t, "/metrics", cfg.PrometheusEndpoint)
}

func TestDefaultConfigEnvOverrides(t *testing.T) {
	t.Setenv("INSTRUMENTATION_ENABLED", "true")
	t.Setenv("METRICS_EXPORTER", "stdout")
	t.Setenv("TRACING_EXPORTER", "stdout")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.5")

	cfg := DefaultConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, "stdout", cfg.MetricsExporter)
	assert.Equal(t, "stdout", cfg.TracingExporter)
	assert.Equal(t, 0.5, cfg.TraceSamplingRate)
}

func TestDefaultConfigIgnoresInvalidEnv(t *testing.T) {
	t.Setenv("INSTRUMENTATION_ENABLED", "not-a-bool")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "not-a-float")

	cfg := DefaultConfig()

	assert.False(t, cfg.Enabled)
	assert.Equal(t, 0.1, cfg.TraceSamplingRate)
}

func TestDisabledProviderIsNoop(t *testing.T) {
	ctx := context.Background()

	provider, err := NewProvider(ctx, Config{Enabled: false})
	require.NoError(t, err)

	assert.False(t, provider.Enabled())
	assert.Nil(t, provider.Metrics())
	assert.Nil(t, provider.PrometheusHandler())
	assert.NotNil(t, provider.Tracer())
	assert.NoError(t, provider.Shutdown(ctx))

	// The nil metrics recorder must be safe to use.
	provider.Metrics().RecordToolCall(ctx, "check_prerequisites", StatusSuccess, time.Second)
	provider.Metrics().RecordCommand(ctx, "kubectl", 0, time.Second)
	provider.Metrics().RecordHTTPRequest(ctx, "POST", "/mcp", 200, time.Millisecond)
}

func TestNilProviderIsSafe(t *testing.T) {
	var provider *Provider

	assert.False(t, provider.Enabled())
	assert.Nil(t, provider.Metrics())
	assert.Nil(t, provider.PrometheusHandler())
	assert.NotNil(t, provider.Tracer())
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestPrometheusProvider(t *testing.T) {
	ctx := context.Background()

	provider, err := NewProvider(ctx, Config{
		ServiceName:     "mcp-kubestellar",
		ServiceVersion:  "test",
		Enabled:         true,
		MetricsExporter: "prometheus",
		TracingExporter: "none",
	})
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(ctx) }()

	assert.True(t, provider.Enabled())
	require.NotNil(t, provider.Metrics())
	assert.NotNil(t, provider.PrometheusHandler())

	provider.Metrics().RecordToolCall(ctx, "diagnose_issues", StatusSuccess, 2*time.Second)
	provider.Metrics().RecordCommand(ctx, "docker", 1, 100*time.Millisecond)
}

func TestUnknownExportersRejected(t *testing.T) {
	ctx := context.Background()

	_, err := NewProvider(ctx, Config{
		Enabled:         true,
		MetricsExporter: "statsd",
	})
	assert.Error(t, err)

	_, err = NewProvider(ctx, Config{
		Enabled:         true,
		MetricsExporter: "prometheus",
		TracingExporter: "jaeger",
	})
	assert.Error(t, err)
}
