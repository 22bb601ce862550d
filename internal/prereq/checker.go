// Package prereq verifies that the external tools KubeStellar depends on are
// installed and usable on this machine.
package prereq

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/kubestellar/mcp-kubestellar/internal/cmdexec"
	"github.com/kubestellar/mcp-kubestellar/internal/logging"
)

// ToolCheck is the per-tool verdict. Installed is governed by the version
// command's exit code: a binary that is on the path but cannot report its
// version counts as not installed.
type ToolCheck struct {
	Installed bool   `json:"installed"`
	Version   string `json:"version"`
	Path      string `json:"path"`
	Error     string `json:"error"`
}

// Report aggregates all tool checks into one satisfied/missing verdict.
type Report struct {
	AllSatisfied    bool                  `json:"all_satisfied"`
	Checks          map[string]*ToolCheck `json:"checks"`
	Missing         []string              `json:"missing"`
	Recommendations []string              `json:"recommendations"`
}

// toolBattery is the fixed check order. kubectl, docker and helm are
// required; go, kind and k3d are reported but optional.
var toolBattery = []struct {
	name        string
	versionArgv []string
}{
	{"kubectl", []string{"kubectl", "version", "--client"}},
	{"docker", []string{"docker", "--version"}},
	{"helm", []string{"helm", "version"}},
	{"go", []string{"go", "version"}},
	{"kind", []string{"kind", "version"}},
	{"k3d", []string{"k3d", "version"}},
}

var requiredTools = map[string]bool{
	"kubectl": true,
	"docker":  true,
	"helm":    true,
}

// minGoMinor is the minimum supported go 1.x minor version.
const minGoMinor = 19

// Checker runs the prerequisite battery.
type Checker struct {
	runner cmdexec.Runner
	logger *slog.Logger
}

// NewChecker creates a prerequisite checker.
func NewChecker(runner cmdexec.Runner, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{runner: runner, logger: logger}
}

// CheckAll runs every tool check and aggregates the verdict.
func (c *Checker) CheckAll(ctx context.Context) *Report {
	report := &Report{
		AllSatisfied:    true,
		Checks:          make(map[string]*ToolCheck, len(toolBattery)),
		Missing:         []string{},
		Recommendations: []string{},
	}

	for _, tool := range toolBattery {
		check := c.checkTool(ctx, tool.name, tool.versionArgv)
		report.Checks[tool.name] = check

		if !check.Installed {
			report.AllSatisfied = false
			if requiredTools[tool.name] {
				report.Missing = append(report.Missing, tool.name)
			}
		}
	}

	if report.Checks["go"].Installed {
		c.gateGoVersion(report)
	}

	if report.Checks["docker"].Installed {
		c.checkDockerRunning(ctx, report)
	}

	report.Recommendations = recommendations(report.Missing)

	return report
}

// checkTool looks the binary up on the search path and, when present, runs
// its version command. The two steps are deliberately separate: Path can be
// set while Installed stays false.
func (c *Checker) checkTool(ctx context.Context, name string, versionArgv []string) *ToolCheck {
	check := &ToolCheck{}

	path, err := c.runner.LookPath(name)
	if err != nil {
		check.Error = name + " not found in PATH"
		return check
	}
	check.Path = path

	result := c.runner.Run(ctx, cmdexec.Command{Argv: versionArgv})
	if !result.Success() {
		check.Error = strings.TrimSpace(result.Stderr)
		if check.Error == "" {
			check.Error = strings.TrimSpace(result.Stdout)
		}
		return check
	}

	check.Installed = true
	check.Version = firstLine(result.Stdout)
	return check
}

// gateGoVersion retroactively fails the go check when the installed version
// predates 1.19, even though `go version` itself succeeded. Unparseable
// version strings are logged and ignored.
func (c *Checker) gateGoVersion(report *Report) {
	check := report.Checks["go"]

	version, ok := parseGoVersion(check.Version)
	if !ok {
		c.logger.Warn("could not parse go version", slog.String("version", check.Version))
		return
	}

	if version.major == 1 && version.minor < minGoMinor {
		check.Error = "Go version " + version.raw + " is too old. Requires Go 1.19+"
		report.Missing = append(report.Missing, "go (version 1.19+)")
		report.AllSatisfied = false
	}
}

// checkDockerRunning probes the daemon with `docker ps`. A docker binary
// whose daemon is down gets a distinct missing entry, independent of the
// version check.
func (c *Checker) checkDockerRunning(ctx context.Context, report *Report) {
	result := c.runner.Run(ctx, cmdexec.Command{Argv: []string{"docker", "ps"}})
	if result.Success() {
		return
	}

	c.logger.Warn("docker daemon not reachable", logging.ExitCode(result.ExitCode))
	report.Checks["docker"].Error = "Docker is not running or not accessible"
	report.Checks["docker"].Installed = false
	report.Missing = append(report.Missing, "docker (running)")
	report.AllSatisfied = false
}

type goVersion struct {
	major int
	minor int
	raw   string
}

// parseGoVersion extracts major/minor from output like
// "go version go1.21.0 linux/amd64".
func parseGoVersion(versionLine string) (goVersion, bool) {
	fields := strings.Fields(versionLine)
	if len(fields) < 3 || !strings.HasPrefix(fields[2], "go") {
		return goVersion{}, false
	}

	raw := strings.TrimPrefix(fields[2], "go")
	parts := strings.Split(raw, ".")
	if len(parts) < 2 {
		return goVersion{}, false
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return goVersion{}, false
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return goVersion{}, false
	}

	return goVersion{major: major, minor: minor, raw: raw}, true
}

// recommendations maps each missing entry to a remediation hint, keyed by
// substring so that entries like "docker (running)" and "go (version 1.19+)"
// resolve to their base tool.
func recommendations(missing []string) []string {
	recs := []string{}

	for _, entry := range missing {
		switch {
		case strings.Contains(entry, "kubectl"):
			recs = append(recs, "Install kubectl: https://kubernetes.io/docs/tasks/tools/install-kubectl/")
		case strings.Contains(entry, "docker"):
			recs = append(recs, "Install Docker: https://docs.docker.com/get-docker/ or Podman: https://podman.io/getting-started/installation")
		case strings.Contains(entry, "helm"):
			recs = append(recs, "Install Helm: https://helm.sh/docs/intro/install/")
		case strings.Contains(entry, "go"):
			recs = append(recs, "Install Go 1.19+: https://golang.org/doc/install")
		case strings.Contains(entry, "kind"):
			recs = append(recs, "Install kind: https://kind.sigs.k8s.io/docs/user/quick-start/#installation")
		case strings.Contains(entry, "k3d"):
			recs = append(recs, "Install k3d: https://k3d.io/v5.4.6/#installation")
		}
	}

	if len(missing) == 0 {
		recs = append(recs, "All prerequisites are satisfied! You can proceed with KubeStellar installation.")
	}

	return recs
}

func firstLine(s string) string {
	trimmed := strings.TrimSpace(s)
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		return strings.TrimSpace(trimmed[:idx])
	}
	return trimmed
}
