// Package kubectl is a thin facade over the kubectl CLI. All cluster
// interaction in this server shells out to kubectl and parses its
// line-oriented output; no Kubernetes API client is involved. Operations are
// best-effort: an unavailable tool or unreachable cluster degrades to empty
// results rather than errors, so callers always receive a usable answer.
package kubectl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/kubestellar/mcp-kubestellar/internal/cmdexec"
	"github.com/kubestellar/mcp-kubestellar/internal/logging"
)

// ClusterInfo is the basic accessibility report for one context. Nodes and
// Namespaces are always non-nil; they stay empty when the cluster is not
// accessible.
type ClusterInfo struct {
	Context    string   `json:"context"`
	Accessible bool     `json:"accessible"`
	Nodes      []string `json:"nodes"`
	Namespaces []string `json:"namespaces"`
}

// Interface is the facade consumed by the status, diagnostics and cluster
// packages. Implemented by Client; tests substitute fakes.
type Interface interface {
	// ListContexts returns all kubeconfig context names in kubectl's own
	// order. A failing kubectl yields an empty list, not an error.
	ListContexts(ctx context.Context) []string

	// NamespaceExists reports whether the namespace exists in the given
	// context.
	NamespaceExists(ctx context.Context, namespace, kubeContext string) bool

	// ClusterInfo probes accessibility of one context and, when reachable,
	// lists its nodes and namespaces.
	ClusterInfo(ctx context.Context, kubeContext string) ClusterInfo

	// ListResources lists resources of the given kind by name, tolerating
	// unknown kinds and unreachable clusters with an empty result.
	ListResources(ctx context.Context, kind, kubeContext string) []string

	// DeleteContext removes a context from the kubeconfig.
	DeleteContext(ctx context.Context, kubeContext string) cmdexec.Result
}

// Client implements Interface by invoking the kubectl binary.
type Client struct {
	runner cmdexec.Runner
	logger *slog.Logger
}

// New creates a kubectl facade on top of the given runner.
func New(runner cmdexec.Runner, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{runner: runner, logger: logger}
}

// ListContexts implements Interface.
func (c *Client) ListContexts(ctx context.Context) []string {
	result := c.runner.Run(ctx, cmdexec.Command{
		Argv: []string{"kubectl", "config", "get-contexts", "-o=name"},
	})

	if !result.Success() {
		c.logger.Error("failed to list contexts", slog.String("stderr", result.Stderr))
		return []string{}
	}

	return splitLines(result.Stdout)
}

// NamespaceExists implements Interface. The --ignore-not-found flag makes
// kubectl exit zero even for a missing namespace, so the namespace name must
// also appear in stdout before we report it present.
func (c *Client) NamespaceExists(ctx context.Context, namespace, kubeContext string) bool {
	result := c.runner.Run(ctx, cmdexec.Command{
		Argv: []string{
			"kubectl", "get", "ns", namespace,
			"--context", kubeContext, "--ignore-not-found",
		},
	})

	return result.Success() && strings.Contains(result.Stdout, namespace)
}

// ClusterInfo implements Interface. The cluster-info probe gates everything:
// when it fails, no further calls are attempted for this context. Node and
// namespace listings each tolerate their own failure independently.
func (c *Client) ClusterInfo(ctx context.Context, kubeContext string) ClusterInfo {
	info := ClusterInfo{
		Context:    kubeContext,
		Nodes:      []string{},
		Namespaces: []string{},
	}

	probe := c.runner.Run(ctx, cmdexec.Command{
		Argv: []string{"kubectl", "cluster-info", "--context", kubeContext},
	})
	if !probe.Success() {
		c.logger.Debug("cluster not accessible", logging.Context(kubeContext))
		return info
	}
	info.Accessible = true

	nodes := c.runner.Run(ctx, cmdexec.Command{
		Argv: []string{"kubectl", "get", "nodes", "--context", kubeContext, "-o=name"},
	})
	if nodes.Success() {
		info.Nodes = splitLines(nodes.Stdout)
	}

	namespaces := c.runner.Run(ctx, cmdexec.Command{
		Argv: []string{"kubectl", "get", "namespaces", "--context", kubeContext, "-o=name"},
	})
	if namespaces.Success() {
		info.Namespaces = splitLines(namespaces.Stdout)
	}

	return info
}

// ListResources implements Interface.
func (c *Client) ListResources(ctx context.Context, kind, kubeContext string) []string {
	result := c.runner.Run(ctx, cmdexec.Command{
		Argv: []string{
			"kubectl", "get", kind,
			"--context", kubeContext, "-o=name", "--ignore-not-found",
		},
	})

	if !result.Success() || strings.TrimSpace(result.Stdout) == "" {
		return []string{}
	}
	return splitLines(result.Stdout)
}

// DeleteContext implements Interface.
func (c *Client) DeleteContext(ctx context.Context, kubeContext string) cmdexec.Result {
	return c.runner.Run(ctx, cmdexec.Command{
		Argv: []string{"kubectl", "config", "delete-context", kubeContext},
	})
}

// splitLines splits command output on newlines, trims whitespace and drops
// empty lines. Always returns a non-nil slice.
func splitLines(out string) []string {
	lines := []string{}
	for _, line := range strings.Split(out, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
