// Package diagnostics runs a fixed battery of environment checks and
// aggregates every outcome into one report. Unlike the status package it
// never short-circuits: all checks always run, so the report reflects the
// whole environment even when the first check already failed.
package diagnostics

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kubestellar/mcp-kubestellar/internal/cmdexec"
	"github.com/kubestellar/mcp-kubestellar/internal/kubectl"
	"github.com/kubestellar/mcp-kubestellar/internal/logging"
)

// Check status values, ordered by severity.
const (
	StatusPass    = "pass"
	StatusWarning = "warning"
	StatusFail    = "fail"
	StatusError   = "error"
)

// Overall report status values.
const (
	OverallHealthy     = "healthy"
	OverallWarnings    = "warnings"
	OverallIssuesFound = "issues_found"
)

// connectivityTimeout bounds each per-context cluster-info probe so one hung
// cluster cannot stall the whole battery.
const connectivityTimeout = 30 * time.Second

// diskUsageThreshold is the df usage percentage above which disk space is
// flagged.
const diskUsageThreshold = 90

// requiredPorts are probed for conflicts before installation.
var requiredPorts = []int{9443}

// contextMarkers identifies KubeStellar-related contexts for the context and
// namespace checks. The connectivity check additionally matches "cluster".
var contextMarkers = []string{"kubeflex", "kind", "k3d", "wds", "its"}

// CheckOutcome is one check's verdict. Issues and Recommendations are always
// serialized, as empty lists when the check found nothing to report.
type CheckOutcome struct {
	Status          string   `json:"status"`
	Message         string   `json:"message"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

// newOutcome creates an outcome with empty issue and recommendation lists, so
// every serialized check carries both keys.
func newOutcome(status, message string) *CheckOutcome {
	return &CheckOutcome{
		Status:          status,
		Message:         message,
		Issues:          []string{},
		Recommendations: []string{},
	}
}

// Summary counts outcomes by severity. Error outcomes count as failures.
type Summary struct {
	TotalChecks int `json:"total_checks"`
	Passed      int `json:"passed"`
	Warnings    int `json:"warnings"`
	Failures    int `json:"failures"`
}

// Report is the aggregated result of the full battery.
type Report struct {
	Status          string                   `json:"status"`
	Checks          map[string]*CheckOutcome `json:"checks"`
	IssuesFound     []string                 `json:"issues_found"`
	Recommendations []string                 `json:"recommendations"`
	Summary         Summary                  `json:"summary"`
}

// Runner executes the diagnostic battery.
type Runner struct {
	runner  cmdexec.Runner
	kubectl kubectl.Interface
	logger  *slog.Logger
}

// NewRunner creates a diagnostics runner.
func NewRunner(runner cmdexec.Runner, kc kubectl.Interface, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{runner: runner, kubectl: kc, logger: logger}
}

type check struct {
	name string
	fn   func(context.Context) *CheckOutcome
}

// battery returns the checks in their fixed reporting order.
func (r *Runner) battery() []check {
	return []check{
		{"docker_status", r.checkDockerStatus},
		{"kubectl_access", r.checkKubectlAccess},
		{"kubestellar_contexts", r.checkContexts},
		{"kubestellar_namespaces", r.checkNamespaces},
		{"cluster_connectivity", r.checkClusterConnectivity},
		{"port_conflicts", r.checkPortConflicts},
		{"resource_availability", r.checkResourceAvailability},
	}
}

// Diagnose runs every check concurrently and merges outcomes in battery
// order, so issue and recommendation lists stay deterministic regardless of
// completion order. A panicking check is converted into an error outcome and
// counted as a failure.
func (r *Runner) Diagnose(ctx context.Context) *Report {
	battery := r.battery()
	outcomes := make([]*CheckOutcome, len(battery))

	var group errgroup.Group
	for i, chk := range battery {
		group.Go(func() (err error) {
			defer func() {
				if recovered := recover(); recovered != nil {
					r.logger.Error("diagnostic check failed",
						slog.String("check", chk.name),
						slog.Any("panic", recovered))
					outcomes[i] = newOutcome(StatusError, fmt.Sprintf("Check failed: %v", recovered))
				}
			}()

			r.logger.Info("running diagnostic check", slog.String("check", chk.name))
			outcomes[i] = chk.fn(ctx)
			return nil
		})
	}
	_ = group.Wait()

	report := &Report{
		Checks:          make(map[string]*CheckOutcome, len(battery)),
		IssuesFound:     []string{},
		Recommendations: []string{},
		Summary:         Summary{TotalChecks: len(battery)},
	}

	for i, chk := range battery {
		outcome := outcomes[i]
		report.Checks[chk.name] = outcome

		switch outcome.Status {
		case StatusPass:
			report.Summary.Passed++
		case StatusWarning:
			report.Summary.Warnings++
		default:
			report.Summary.Failures++
		}

		report.IssuesFound = append(report.IssuesFound, outcome.Issues...)
		report.Recommendations = append(report.Recommendations, outcome.Recommendations...)
	}

	switch {
	case report.Summary.Failures > 0:
		report.Status = OverallIssuesFound
	case report.Summary.Warnings > 0:
		report.Status = OverallWarnings
	default:
		report.Status = OverallHealthy
	}

	return report
}

func (r *Runner) checkDockerStatus(ctx context.Context) *CheckOutcome {
	result := r.runner.Run(ctx, cmdexec.Command{Argv: []string{"docker", "ps"}})
	if !result.Success() {
		return &CheckOutcome{
			Status:          StatusFail,
			Message:         "Docker is not running or not accessible",
			Issues:          []string{"Docker daemon is not running"},
			Recommendations: []string{"Start Docker daemon: sudo systemctl start docker"},
		}
	}
	return newOutcome(StatusPass, "Docker is running")
}

func (r *Runner) checkKubectlAccess(ctx context.Context) *CheckOutcome {
	result := r.runner.Run(ctx, cmdexec.Command{Argv: []string{"kubectl", "version", "--client"}})
	if !result.Success() {
		return &CheckOutcome{
			Status:          StatusFail,
			Message:         "kubectl is not accessible",
			Issues:          []string{"kubectl is not installed or not in PATH"},
			Recommendations: []string{"Install kubectl: https://kubernetes.io/docs/tasks/tools/install-kubectl/"},
		}
	}
	return newOutcome(StatusPass, "kubectl is accessible")
}

func (r *Runner) checkContexts(ctx context.Context) *CheckOutcome {
	matching := filterContexts(r.kubectl.ListContexts(ctx), contextMarkers)

	if len(matching) == 0 {
		return &CheckOutcome{
			Status:          StatusWarning,
			Message:         "No KubeStellar contexts found",
			Issues:          []string{"No contexts containing 'kubeflex', 'kind', 'k3d', 'wds', or 'its' found"},
			Recommendations: []string{"Run KubeStellar installation or demo environment setup"},
		}
	}

	return newOutcome(StatusPass,
		fmt.Sprintf("Found %d KubeStellar contexts: %s", len(matching), strings.Join(matching, ", ")))
}

func (r *Runner) checkNamespaces(ctx context.Context) *CheckOutcome {
	// Namespace presence is only meaningful on contexts that can host a
	// control plane, hence the narrower marker set.
	hostMarkers := []string{"kubeflex", "kind", "k3d"}
	hosts := filterContexts(r.kubectl.ListContexts(ctx), hostMarkers)

	if len(hosts) == 0 {
		return &CheckOutcome{
			Status:          StatusWarning,
			Message:         "No KubeStellar contexts to check namespaces in",
			Issues:          []string{"No suitable contexts found for namespace checking"},
			Recommendations: []string{},
		}
	}

	required := []string{"wds1-system", "its1-system"}
	missingAny := false
	for _, host := range hosts {
		for _, namespace := range required {
			if !r.kubectl.NamespaceExists(ctx, namespace, host) {
				missingAny = true
			}
		}
	}

	if missingAny {
		return &CheckOutcome{
			Status:          StatusWarning,
			Message:         "Some KubeStellar namespaces are missing",
			Issues:          []string{"Required KubeStellar namespaces not found in some contexts"},
			Recommendations: []string{"Complete KubeStellar installation to create missing namespaces"},
		}
	}

	return newOutcome(StatusPass, "KubeStellar namespaces found")
}

func (r *Runner) checkClusterConnectivity(ctx context.Context) *CheckOutcome {
	markers := append([]string{}, contextMarkers...)
	markers = append(markers, "cluster")
	candidates := filterContexts(r.kubectl.ListContexts(ctx), markers)

	inaccessible := []string{}
	for _, candidate := range candidates {
		result := r.runner.Run(ctx, cmdexec.Command{
			Argv:    []string{"kubectl", "cluster-info", "--context", candidate},
			Timeout: connectivityTimeout,
		})
		if !result.Success() {
			r.logger.Debug("cluster not reachable", logging.Context(candidate))
			inaccessible = append(inaccessible, candidate)
		}
	}

	if len(inaccessible) > 0 {
		joined := strings.Join(inaccessible, ", ")
		return &CheckOutcome{
			Status:          StatusWarning,
			Message:         fmt.Sprintf("Some clusters are not accessible: %s", joined),
			Issues:          []string{fmt.Sprintf("Cannot connect to clusters: %s", joined)},
			Recommendations: []string{"Check if clusters are running and kubeconfig is correct"},
		}
	}

	return newOutcome(StatusPass, "All clusters are accessible")
}

func (r *Runner) checkPortConflicts(ctx context.Context) *CheckOutcome {
	conflicting := []int{}
	for _, port := range requiredPorts {
		// lsof exits zero exactly when something holds the port.
		result := r.runner.Run(ctx, cmdexec.Command{
			Argv: []string{"lsof", "-i", fmt.Sprintf("tcp:%d", port)},
		})
		if result.Success() {
			conflicting = append(conflicting, port)
		}
	}

	if len(conflicting) > 0 {
		return &CheckOutcome{
			Status:          StatusWarning,
			Message:         fmt.Sprintf("Port conflicts detected on: %v", conflicting),
			Issues:          []string{fmt.Sprintf("Ports %v are in use", conflicting)},
			Recommendations: []string{"Stop services using these ports or use different ports"},
		}
	}

	return newOutcome(StatusPass, "No port conflicts detected")
}

func (r *Runner) checkResourceAvailability(ctx context.Context) *CheckOutcome {
	issues := []string{}
	recommendations := []string{}

	disk := r.runner.Run(ctx, cmdexec.Command{Argv: []string{"df", "-h", "/"}})
	if disk.Success() {
		if usage, ok := parseDiskUsage(disk.Stdout); ok && usage > diskUsageThreshold {
			issues = append(issues, fmt.Sprintf("Disk usage is high: %d%%", usage))
			recommendations = append(recommendations, "Free up disk space before installation")
		}
	}

	memory := r.runner.Run(ctx, cmdexec.Command{Argv: []string{"free", "-m"}})
	if memory.Success() && memoryLooksLow(memory.Stdout) {
		issues = append(issues, "Available memory may be low")
		recommendations = append(recommendations, "Consider freeing up memory before installation")
	}

	if len(issues) > 0 {
		return &CheckOutcome{
			Status:          StatusWarning,
			Message:         "Some resource issues detected",
			Issues:          issues,
			Recommendations: recommendations,
		}
	}

	return newOutcome(StatusPass, "System resources look good")
}

// parseDiskUsage extracts the root filesystem usage percentage from standard
// `df -h /` output.
func parseDiskUsage(out string) (int, bool) {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) < 2 {
		return 0, false
	}

	fields := strings.Fields(lines[1])
	if len(fields) < 5 {
		return 0, false
	}

	usage, err := strconv.Atoi(strings.TrimSuffix(fields[4], "%"))
	if err != nil {
		return 0, false
	}
	return usage, true
}

// memoryLooksLow applies a coarse heuristic to `free -m` output: any numeric
// token between 100 and 1000 megabytes is treated as a possibly-low available
// figure. Crude, but it only ever produces a warning.
func memoryLooksLow(out string) bool {
	if !strings.Contains(strings.ToLower(out), "available") {
		return false
	}

	for _, token := range strings.Fields(out) {
		value, err := strconv.Atoi(token)
		if err != nil {
			continue
		}
		if value > 100 && value < 1000 {
			return true
		}
	}
	return false
}

// filterContexts keeps contexts containing any of the markers, preserving
// order.
func filterContexts(contexts, markers []string) []string {
	matching := []string{}
	for _, kubeContext := range contexts {
		for _, marker := range markers {
			if strings.Contains(kubeContext, marker) {
				matching = append(matching, kubeContext)
				break
			}
		}
	}
	return matching
}
