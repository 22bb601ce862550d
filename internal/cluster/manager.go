// Package cluster inspects KubeStellar-related clusters across kubeconfig
// contexts and reports namespaces and custom resources per cluster.
package cluster

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kubestellar/mcp-kubestellar/internal/kubectl"
	"github.com/kubestellar/mcp-kubestellar/internal/logging"
)

// markers identifies KubeStellar-related contexts, including the workload and
// inventory space contexts themselves.
var markers = []string{"kubeflex", "kind", "k3d", "wds", "its"}

// controlNamespaces are the namespaces probed on every accessible cluster.
var controlNamespaces = []string{"wds1-system", "its1-system", "kubeflex-system"}

// Resources lists the KubeStellar custom resources found in one cluster.
// Slices are always non-nil.
type Resources struct {
	WorkloadDefinitionSpaces []string `json:"workload_definition_spaces"`
	ManagedClusters          []string `json:"managed_clusters"`
	BindingPolicies          []string `json:"binding_policies"`
}

// Details extends the basic cluster info with KubeStellar-specific data. The
// namespace and resource fields are only populated for accessible clusters.
type Details struct {
	kubectl.ClusterInfo
	KubeStellarNamespaces map[string]bool `json:"kubestellar_namespaces,omitempty"`
	KubeStellarResources  *Resources      `json:"kubestellar_resources,omitempty"`
}

// Summary counts contexts and reachable clusters.
type Summary struct {
	TotalContexts       int `json:"total_contexts"`
	KubeStellarContexts int `json:"kubestellar_contexts"`
	AccessibleClusters  int `json:"accessible_clusters"`
}

// Report maps each inspected context to its cluster details.
type Report struct {
	Clusters map[string]*Details `json:"clusters"`
	Summary  Summary             `json:"summary"`
	Error    string              `json:"error,omitempty"`
}

// Manager inspects clusters through the kubectl facade.
type Manager struct {
	kubectl kubectl.Interface
	logger  *slog.Logger
}

// NewManager creates a cluster manager.
func NewManager(kc kubectl.Interface, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{kubectl: kc, logger: logger}
}

// Info inspects either the one named context or, when kubeContext is empty,
// every KubeStellar-related context. An unknown context name yields a report
// with the Error field set rather than a Go error.
func (m *Manager) Info(ctx context.Context, kubeContext string) *Report {
	report := &Report{Clusters: make(map[string]*Details)}

	contexts := m.kubectl.ListContexts(ctx)
	report.Summary.TotalContexts = len(contexts)

	if kubeContext != "" {
		if !contains(contexts, kubeContext) {
			report.Error = fmt.Sprintf("Context '%s' not found", kubeContext)
			return report
		}
		report.Clusters[kubeContext] = m.inspect(ctx, kubeContext)
		return report
	}

	for _, candidate := range contexts {
		if !matchesMarker(candidate) {
			continue
		}

		report.Summary.KubeStellarContexts++
		details := m.inspect(ctx, candidate)
		report.Clusters[candidate] = details

		if details.Accessible {
			report.Summary.AccessibleClusters++
		}
	}

	return report
}

// inspect gathers detailed information for one context. Namespace and
// resource probes are skipped for unreachable clusters.
func (m *Manager) inspect(ctx context.Context, kubeContext string) *Details {
	details := &Details{ClusterInfo: m.kubectl.ClusterInfo(ctx, kubeContext)}
	if !details.Accessible {
		m.logger.Debug("cluster not accessible, skipping detail probes", logging.Context(kubeContext))
		return details
	}

	details.KubeStellarNamespaces = make(map[string]bool, len(controlNamespaces))
	for _, namespace := range controlNamespaces {
		details.KubeStellarNamespaces[namespace] = m.kubectl.NamespaceExists(ctx, namespace, kubeContext)
	}

	details.KubeStellarResources = &Resources{
		WorkloadDefinitionSpaces: m.kubectl.ListResources(ctx, "workloaddefinitionspaces", kubeContext),
		ManagedClusters:          m.kubectl.ListResources(ctx, "managedclusters", kubeContext),
		BindingPolicies:          m.kubectl.ListResources(ctx, "bindingpolicies", kubeContext),
	}

	return details
}

func matchesMarker(kubeContext string) bool {
	for _, marker := range markers {
		if strings.Contains(kubeContext, marker) {
			return true
		}
	}
	return false
}

func contains(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}
