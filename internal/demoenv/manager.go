// Package demoenv provisions and tears down the KubeStellar demo environment
// by driving the official demo script and the platform cluster tools.
package demoenv

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/kubestellar/mcp-kubestellar/internal/cmdexec"
	"github.com/kubestellar/mcp-kubestellar/internal/config"
	"github.com/kubestellar/mcp-kubestellar/internal/kubectl"
	"github.com/kubestellar/mcp-kubestellar/internal/logging"
)

// provisionTimeout bounds the demo script run. The script builds three
// clusters and installs the control planes, which routinely takes many
// minutes.
const provisionTimeout = 30 * time.Minute

// demoClusters are the cluster names the demo script creates.
var demoClusters = []string{"kubeflex", "cluster1", "cluster2"}

// staleContexts are contexts left behind after the clusters are deleted.
var staleContexts = []string{"cluster1", "cluster2"}

// CreateResult reports one provisioning attempt. The cluster and context
// lists reflect what the script is documented to create; they are not
// verified against the live environment.
type CreateResult struct {
	Success         bool     `json:"success"`
	Platform        string   `json:"platform"`
	Message         string   `json:"message"`
	ClustersCreated []string `json:"clusters_created"`
	ContextsCreated []string `json:"contexts_created"`
	ScriptOutput    string   `json:"script_output"`
	NextSteps       []string `json:"next_steps"`
}

// CleanupResult reports a teardown attempt. Context deletion failures are
// logged but never counted as errors.
type CleanupResult struct {
	Success         bool     `json:"success"`
	Platform        string   `json:"platform"`
	CleanedClusters []string `json:"cleaned_clusters"`
	CleanedContexts []string `json:"cleaned_contexts"`
	Errors          []string `json:"errors"`
}

// Manager provisions demo environments.
type Manager struct {
	runner  cmdexec.Runner
	kubectl kubectl.Interface
	cfg     *config.Config
	logger  *slog.Logger
}

// NewManager creates a demo environment manager.
func NewManager(runner cmdexec.Runner, kc kubectl.Interface, cfg *config.Config, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{runner: runner, kubectl: kc, cfg: cfg, logger: logger}
}

// Create downloads the demo script to a temporary file and runs it for the
// given platform. All failures are reported through the result's Message;
// Create never returns a Go error.
func (m *Manager) Create(ctx context.Context, platform string) *CreateResult {
	result := &CreateResult{
		Platform:        platform,
		ClustersCreated: []string{},
		ContextsCreated: []string{},
		NextSteps:       []string{},
	}

	if platform != "kind" && platform != "k3d" {
		result.Message = fmt.Sprintf("Unsupported platform: %s. Use 'kind' or 'k3d'", platform)
		return result
	}

	m.logger.Info("creating demo environment", logging.Platform(platform))

	download := m.runner.Run(ctx, cmdexec.Command{Argv: []string{"curl", "-s", m.cfg.ScriptURL()}})
	if !download.Success() {
		result.Message = fmt.Sprintf("Failed to download demo script: %s", download.Stderr)
		return result
	}

	scriptPath, err := writeTempScript(download.Stdout)
	if err != nil {
		result.Message = fmt.Sprintf("Error creating demo environment: %v", err)
		return result
	}
	defer func() {
		if err := os.Remove(scriptPath); err != nil {
			m.logger.Warn("failed to remove script file", logging.Err(err))
		}
	}()

	m.runner.Run(ctx, cmdexec.Command{Argv: []string{"chmod", "+x", scriptPath}})

	run := m.runner.Run(ctx, cmdexec.Command{
		Argv:    []string{"bash", scriptPath, "--platform", platform},
		Timeout: provisionTimeout,
	})
	result.ScriptOutput = run.Stdout + run.Stderr

	if !run.Success() {
		result.Message = fmt.Sprintf("Demo environment creation failed with return code %d", run.ExitCode)
		m.logger.Error("demo script failed", logging.ExitCode(run.ExitCode))
		return result
	}

	result.Success = true
	result.Message = "Demo environment created successfully!"
	result.ClustersCreated = append(result.ClustersCreated, demoClusters...)
	result.ContextsCreated = []string{
		platform + "-kubeflex",
		"cluster1",
		"cluster2",
		"wds1",
		"its1",
	}
	result.NextSteps = []string{
		"Set environment variables as shown in script output",
		"Try the example scenarios from KubeStellar documentation",
		"Use 'get_cluster_info' tool to verify cluster status",
	}
	return result
}

// Cleanup deletes the demo clusters and stale kubeconfig contexts. Cleanup
// succeeds as long as at least one cluster deletion went through.
func (m *Manager) Cleanup(ctx context.Context, platform string) *CleanupResult {
	result := &CleanupResult{
		Success:         true,
		Platform:        platform,
		CleanedClusters: []string{},
		CleanedContexts: []string{},
		Errors:          []string{},
	}

	if platform != "kind" && platform != "k3d" {
		result.Success = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("Unsupported platform: %s. Use 'kind' or 'k3d'", platform))
		return result
	}

	for _, clusterName := range demoClusters {
		var argv []string
		switch platform {
		case "kind":
			argv = []string{"kind", "delete", "cluster", "--name", clusterName}
		case "k3d":
			argv = []string{"k3d", "cluster", "delete", clusterName}
		}

		deletion := m.runner.Run(ctx, cmdexec.Command{Argv: argv})
		if deletion.Success() {
			result.CleanedClusters = append(result.CleanedClusters, clusterName)
			m.logger.Info("deleted cluster", logging.Cluster(clusterName))
		} else {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Failed to delete cluster %s: %s", clusterName, deletion.Stderr))
		}
	}

	for _, staleContext := range staleContexts {
		deletion := m.kubectl.DeleteContext(ctx, staleContext)
		if deletion.Success() {
			result.CleanedContexts = append(result.CleanedContexts, staleContext)
			m.logger.Info("deleted context", logging.Context(staleContext))
		} else {
			m.logger.Warn("could not delete context",
				logging.Context(staleContext), slog.String("stderr", deletion.Stderr))
		}
	}

	if len(result.Errors) > 0 {
		result.Success = len(result.Errors) < len(demoClusters)
	}

	return result
}

// writeTempScript persists the downloaded script so bash can execute it.
func writeTempScript(content string) (string, error) {
	file, err := os.CreateTemp("", "create-kubestellar-demo-env-*.sh")
	if err != nil {
		return "", err
	}

	if _, err := file.WriteString(content); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", err
	}
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return "", err
	}

	return file.Name(), nil
}
