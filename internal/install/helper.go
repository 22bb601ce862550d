// Package install answers installation questions: a static guide, demo
// script download, and a pre-flight validation of the local environment.
package install

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kubestellar/mcp-kubestellar/internal/cmdexec"
	"github.com/kubestellar/mcp-kubestellar/internal/config"
	"github.com/kubestellar/mcp-kubestellar/internal/logging"
)

// SupportedPlatforms lists the cluster platforms the demo script supports.
var SupportedPlatforms = []string{"kind", "k3d"}

// conflictClusters are the cluster names the demo script wants to create; a
// pre-existing cluster with one of these names will collide with it.
var conflictClusters = []string{"kubeflex", "cluster1", "cluster2"}

// DemoScriptMethod describes the scripted installation path.
type DemoScriptMethod struct {
	Description string `json:"description"`
	ScriptURL   string `json:"script_url"`
	Usage       string `json:"usage"`
}

// HelmChartMethod describes the manual Helm installation path.
type HelmChartMethod struct {
	Description string `json:"description"`
	Chart       string `json:"chart"`
	Version     string `json:"version"`
}

// Methods groups the available installation methods.
type Methods struct {
	DemoScript DemoScriptMethod `json:"demo_script"`
	HelmChart  HelmChartMethod  `json:"helm_chart"`
}

// Guide is the static installation guide.
type Guide struct {
	Title              string   `json:"title"`
	Version            string   `json:"version"`
	Documentation      string   `json:"documentation"`
	QuickStart         string   `json:"quick_start"`
	Methods            Methods  `json:"installation_methods"`
	SupportedPlatforms []string `json:"supported_platforms"`
	RequiredPorts      []int    `json:"required_ports"`
	NextSteps          []string `json:"next_steps"`
}

// RequirementSet enumerates the minimum tool versions for an installation.
type RequirementSet struct {
	Kubernetes       string   `json:"kubernetes"`
	ContainerRuntime string   `json:"container_runtime"`
	Helm             string   `json:"helm"`
	Go               string   `json:"go"`
	Platforms        []string `json:"platforms"`
	Ports            []int    `json:"ports"`
}

// Requirements is the static requirements summary.
type Requirements struct {
	DocumentationURL   string         `json:"documentation_url"`
	InstallationScript string         `json:"installation_script"`
	Requirements       RequirementSet `json:"requirements"`
	PrerequisitesCheck string         `json:"prerequisites_check"`
}

// Overview bundles the guide with the requirements summary.
type Overview struct {
	Guide        *Guide        `json:"guide"`
	Requirements *Requirements `json:"requirements"`
}

// ScriptDownload is the result of fetching the demo script.
type ScriptDownload struct {
	Success       bool     `json:"success"`
	ScriptContent string   `json:"script_content,omitempty"`
	ScriptURL     string   `json:"script_url"`
	Usage         string   `json:"usage,omitempty"`
	Platforms     []string `json:"platforms,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// Validation is the pre-flight environment verdict. Issues block the
// installation; warnings do not affect Ready.
type Validation struct {
	Platform string   `json:"platform"`
	Ready    bool     `json:"ready"`
	Issues   []string `json:"issues"`
	Warnings []string `json:"warnings"`
}

// Helper implements the installation operations.
type Helper struct {
	runner cmdexec.Runner
	cfg    *config.Config
	logger *slog.Logger
}

// NewHelper creates an installation helper.
func NewHelper(runner cmdexec.Runner, cfg *config.Config, logger *slog.Logger) *Helper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Helper{runner: runner, cfg: cfg, logger: logger}
}

// InstallationGuide returns the static guide for the configured version.
func (h *Helper) InstallationGuide() *Guide {
	return &Guide{
		Title:         "KubeStellar Installation Guide",
		Version:       h.cfg.Version,
		Documentation: h.cfg.DocsURL + "/direct/user-guide-intro/",
		QuickStart:    h.cfg.DocsURL + "/Getting-Started/quickstart/",
		Methods: Methods{
			DemoScript: DemoScriptMethod{
				Description: "Automated demo environment setup",
				ScriptURL:   h.cfg.ScriptURL(),
				Usage:       "curl -s <script_url> | bash -s -- --platform kind",
			},
			HelmChart: HelmChartMethod{
				Description: "Manual installation using Helm",
				Chart:       "oci://ghcr.io/kubestellar/kubestellar/core-chart",
				Version:     h.cfg.Version,
			},
		},
		SupportedPlatforms: SupportedPlatforms,
		RequiredPorts:      []int{9443},
		NextSteps: []string{
			"Run 'check_prerequisites' to verify system requirements",
			"Choose installation method (demo script recommended for beginners)",
			"Follow the installation guide step by step",
		},
	}
}

// InstallationRequirements returns the static requirements summary.
func (h *Helper) InstallationRequirements() *Requirements {
	return &Requirements{
		DocumentationURL:   h.cfg.DocsURL + "/direct/user-guide-intro/",
		InstallationScript: h.cfg.ScriptURL(),
		Requirements: RequirementSet{
			Kubernetes:       "kubectl v1.23-1.25+",
			ContainerRuntime: "Docker or Podman",
			Helm:             "Helm 3.x",
			Go:               "Go 1.19+",
			Platforms:        SupportedPlatforms,
			Ports:            []int{9443},
		},
		PrerequisitesCheck: "Run check_prerequisites tool to verify your system",
	}
}

// InstallationOverview bundles the guide and requirements for the default
// all-in-one answer.
func (h *Helper) InstallationOverview() *Overview {
	return &Overview{
		Guide:        h.InstallationGuide(),
		Requirements: h.InstallationRequirements(),
	}
}

// DownloadScript fetches the demo environment script over curl so the caller
// can inspect or persist it.
func (h *Helper) DownloadScript(ctx context.Context) *ScriptDownload {
	scriptURL := h.cfg.ScriptURL()

	result := h.runner.Run(ctx, cmdexec.Command{Argv: []string{"curl", "-s", scriptURL}})
	if !result.Success() {
		h.logger.Error("demo script download failed", logging.ExitCode(result.ExitCode))
		return &ScriptDownload{
			ScriptURL: scriptURL,
			Error:     fmt.Sprintf("Failed to download script: %s", result.Stderr),
		}
	}

	return &ScriptDownload{
		Success:       true,
		ScriptContent: result.Stdout,
		ScriptURL:     scriptURL,
		Usage:         "Save the script and run with: bash create-kubestellar-demo-env.sh --platform kind",
		Platforms:     SupportedPlatforms,
	}
}

// ValidateEnvironment runs the pre-flight checks for an installation on the
// given platform: platform tool present, docker daemon up, port 9443 free,
// and no leftover clusters with colliding names.
func (h *Helper) ValidateEnvironment(ctx context.Context, platform string) *Validation {
	validation := &Validation{
		Platform: platform,
		Ready:    true,
		Issues:   []string{},
		Warnings: []string{},
	}

	switch platform {
	case "kind", "k3d":
		probe := h.runner.Run(ctx, cmdexec.Command{Argv: []string{platform, "version"}})
		if !probe.Success() {
			validation.Ready = false
			validation.Issues = append(validation.Issues, platform+" is not installed or not accessible")
		}
	}

	docker := h.runner.Run(ctx, cmdexec.Command{Argv: []string{"docker", "ps"}})
	if !docker.Success() {
		validation.Ready = false
		validation.Issues = append(validation.Issues, "Docker is not running or not accessible")
	}

	// lsof exits zero exactly when the port is held.
	port := h.runner.Run(ctx, cmdexec.Command{Argv: []string{"lsof", "-i", "tcp:9443"}})
	if port.Success() {
		validation.Warnings = append(validation.Warnings,
			"Port 9443 is currently in use. KubeStellar installation may fail.")
	}

	if platform == "kind" {
		clusters := h.runner.Run(ctx, cmdexec.Command{Argv: []string{"kind", "get", "clusters"}})
		if clusters.Success() {
			if conflicting := findConflicts(clusters.Stdout); len(conflicting) > 0 {
				validation.Warnings = append(validation.Warnings,
					"Found existing clusters that may conflict: "+strings.Join(conflicting, ", "))
			}
		}
	}

	return validation
}

// findConflicts scans `kind get clusters` output for cluster names the demo
// script will try to create.
func findConflicts(out string) []string {
	conflicting := []string{}
	for _, line := range strings.Split(out, "\n") {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		for _, reserved := range conflictClusters {
			if name == reserved {
				conflicting = append(conflicting, name)
				break
			}
		}
	}
	return conflicting
}
