// Package status determines whether a ready KubeStellar installation exists
// in the local kubeconfig.
//
// This is a find-first algorithm: contexts are scanned in kubeconfig order
// and the first one carrying both required control namespaces wins
// immediately. It deliberately differs from the diagnostics package, which
// always sweeps every check; callers rely on both behaviors.
package status

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kubestellar/mcp-kubestellar/internal/kubectl"
	"github.com/kubestellar/mcp-kubestellar/internal/logging"
)

// CompatibleMarkers are the substrings identifying a context that could host
// KubeStellar. Matching is case-sensitive.
var CompatibleMarkers = []string{"kubeflex", "kind", "k3d"}

// Required control-plane namespaces for a ready installation.
const (
	WDSNamespace = "wds1-system"
	ITSNamespace = "its1-system"
)

// Report is the single-context readiness verdict.
type Report struct {
	Context            string                         `json:"context"`
	ContextFound       bool                           `json:"context_found"`
	WDS1Namespace      bool                           `json:"wds1_namespace"`
	ITS1Namespace      bool                           `json:"its1_namespace"`
	AllReady           bool                           `json:"all_ready"`
	Message            string                         `json:"message"`
	CompatibleContexts []string                       `json:"compatible_contexts"`
	ClusterInfo        map[string]kubectl.ClusterInfo `json:"cluster_info"`
}

// Checker resolves KubeStellar readiness across kubeconfig contexts.
type Checker struct {
	kubectl kubectl.Interface
	logger  *slog.Logger
}

// NewChecker creates a status checker.
func NewChecker(kc kubectl.Interface, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{kubectl: kc, logger: logger}
}

// Check scans contexts in order and returns the first fully-ready one, or a
// partial report describing the closest candidate.
func (c *Checker) Check(ctx context.Context) *Report {
	report := &Report{
		Message:            "No compatible KubeStellar context found",
		CompatibleContexts: []string{},
		ClusterInfo:        make(map[string]kubectl.ClusterInfo),
	}

	contexts := c.kubectl.ListContexts(ctx)
	c.logger.Info("scanning contexts", slog.Int("count", len(contexts)))

	for _, kubeContext := range contexts {
		if !IsCompatible(kubeContext) {
			continue
		}

		c.logger.Debug("found compatible context", logging.Context(kubeContext))
		report.CompatibleContexts = append(report.CompatibleContexts, kubeContext)

		info := c.kubectl.ClusterInfo(ctx, kubeContext)
		report.ClusterInfo[kubeContext] = info

		if !info.Accessible {
			continue
		}

		wdsExists := c.kubectl.NamespaceExists(ctx, WDSNamespace, kubeContext)
		itsExists := c.kubectl.NamespaceExists(ctx, ITSNamespace, kubeContext)

		if wdsExists && itsExists {
			report.Context = kubeContext
			report.ContextFound = true
			report.WDS1Namespace = true
			report.ITS1Namespace = true
			report.AllReady = true
			report.Message = fmt.Sprintf("KubeStellar ready on context %s with all required namespaces", kubeContext)
			return report
		}

		// Remember the first partially-ready context; later candidates do
		// not overwrite it.
		if !report.ContextFound {
			missing := []string{}
			if !wdsExists {
				missing = append(missing, WDSNamespace)
			}
			if !itsExists {
				missing = append(missing, ITSNamespace)
			}

			report.Context = kubeContext
			report.ContextFound = true
			report.WDS1Namespace = wdsExists
			report.ITS1Namespace = itsExists
			report.Message = fmt.Sprintf("Compatible context %s found, but missing namespaces: %s",
				kubeContext, strings.Join(missing, ", "))
		}
	}

	if len(report.CompatibleContexts) == 0 {
		report.Message = "No compatible KubeStellar contexts found. Looking for contexts containing 'kubeflex', 'kind', or 'k3d'"
	}

	return report
}

// IsCompatible reports whether a context name matches any compatibility
// marker.
func IsCompatible(kubeContext string) bool {
	for _, marker := range CompatibleMarkers {
		if strings.Contains(kubeContext, marker) {
			return true
		}
	}
	return false
}
