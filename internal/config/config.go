// Package config loads the process-wide, read-only configuration for the
// KubeStellar MCP server. Configuration is resolved once at startup from
// environment variables (prefix KUBESTELLAR) with sensible defaults, and is
// injected into components through the server context rather than looked up
// globally.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Environment variable prefix. KUBESTELLAR_LOG_LEVEL, KUBESTELLAR_VERSION, etc.
const envPrefix = "KUBESTELLAR"

// Config holds all settings the server reads at startup. It is never mutated
// after Load returns.
type Config struct {
	// LogLevel controls slog verbosity: debug, info, warn or error.
	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`

	// Version is the KubeStellar release the server targets. It pins the
	// documentation URLs and the demo environment setup script.
	Version string `mapstructure:"version" validate:"required"`

	// DocsURL is the base URL for KubeStellar documentation links.
	DocsURL string `mapstructure:"docs_url" validate:"required,url"`

	// RepoURL is the KubeStellar source repository.
	RepoURL string `mapstructure:"repo_url" validate:"required,url"`

	// CommandTimeout bounds every external command invocation unless a caller
	// overrides it (the demo environment script uses its own longer bound).
	CommandTimeout time.Duration `mapstructure:"command_timeout" validate:"gt=0"`

	// DemoPlatform is the default cluster platform for the demo environment.
	DemoPlatform string `mapstructure:"demo_platform" validate:"oneof=kind k3d"`

	// ServerName and ServerVersion identify the MCP server to clients.
	ServerName    string `mapstructure:"server_name" validate:"required"`
	ServerVersion string `mapstructure:"server_version" validate:"required"`
}

// ScriptURL returns the version-pinned URL of the demo environment setup
// script. The exact URL shape is part of the contract with the KubeStellar
// release process.
func (c *Config) ScriptURL() string {
	return fmt.Sprintf(
		"https://raw.githubusercontent.com/kubestellar/kubestellar/refs/tags/v%s/scripts/create-kubestellar-demo-env.sh",
		c.Version,
	)
}

// Load resolves the configuration from the environment and validates it.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	cfg := &Config{}
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(cfg, decodeHook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("version", "0.27.2")
	v.SetDefault("docs_url", "https://docs.kubestellar.io/release-0.27.2")
	v.SetDefault("repo_url", "https://github.com/kubestellar/kubestellar")
	v.SetDefault("command_timeout", 300*time.Second)
	v.SetDefault("demo_platform", "kind")
	v.SetDefault("server_name", "mcp-kubestellar")
	v.SetDefault("server_version", "0.1.0")
}

// Clone returns a copy of the configuration. Handed out so callers cannot
// mutate the startup configuration through a shared pointer.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}
