package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "0.27.2", cfg.Version)
	assert.Equal(t, "https://docs.kubestellar.io/release-0.27.2", cfg.DocsURL)
	assert.Equal(t, "https://github.com/kubestellar/kubestellar", cfg.RepoURL)
	assert.Equal(t, 300*time.Second, cfg.CommandTimeout)
	assert.Equal(t, "kind", cfg.DemoPlatform)
	assert.Equal(t, "mcp-kubestellar", cfg.ServerName)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("KUBESTELLAR_LOG_LEVEL", "debug")
	t.Setenv("KUBESTELLAR_VERSION", "0.28.0")
	t.Setenv("KUBESTELLAR_DEMO_PLATFORM", "k3d")
	t.Setenv("KUBESTELLAR_COMMAND_TIMEOUT", "90s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "0.28.0", cfg.Version)
	assert.Equal(t, "k3d", cfg.DemoPlatform)
	assert.Equal(t, 90*time.Second, cfg.CommandTimeout)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		value string
	}{
		{"bad log level", "KUBESTELLAR_LOG_LEVEL", "verbose"},
		{"bad platform", "KUBESTELLAR_DEMO_PLATFORM", "minikube"},
		{"bad docs url", "KUBESTELLAR_DOCS_URL", "not-a-url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestScriptURLPinsVersion(t *testing.T) {
	cfg := &Config{Version: "0.27.2"}
	assert.Equal(t,
		"https://raw.githubusercontent.com/kubestellar/kubestellar/refs/tags/v0.27.2/scripts/create-kubestellar-demo-env.sh",
		cfg.ScriptURL())
}

func TestClone(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	clone := cfg.Clone()
	require.NotNil(t, clone)
	clone.Version = "9.9.9"
	assert.Equal(t, "0.27.2", cfg.Version)

	var nilCfg *Config
	assert.Nil(t, nilCfg.Clone())
}
