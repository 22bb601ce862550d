package clustertools

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubestellar/mcp-kubestellar/internal/cluster"
	"github.com/kubestellar/mcp-kubestellar/internal/cmdexec"
	"github.com/kubestellar/mcp-kubestellar/internal/config"
	"github.com/kubestellar/mcp-kubestellar/internal/kubectl"
	"github.com/kubestellar/mcp-kubestellar/internal/server"
)

func newTestServerContext(t *testing.T, fake *cmdexec.FakeRunner) *server.ServerContext {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sc, err := server.NewServerContext(context.Background(),
		server.WithRunner(fake),
		server.WithKubectl(kubectl.New(fake, logger)),
		server.WithConfig(&config.Config{Version: "0.27.2"}),
		server.WithLogger(logger),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent in result, got %T", result.Content[0])
	return textContent.Text
}

func TestHandleGetClusterInfoAllContexts(t *testing.T) {
	fake := cmdexec.NewFakeRunner()
	fake.Script([]string{"kubectl", "config", "get-contexts", "-o=name"},
		cmdexec.Result{Stdout: "kind-kubeflex\ndocker-desktop\n"})
	fake.Script([]string{"kubectl", "get", "ns", "wds1-system", "--context", "kind-kubeflex", "--ignore-not-found"},
		cmdexec.Result{Stdout: "wds1-system   Active\n"})

	sc := newTestServerContext(t, fake)
	result, err := handleGetClusterInfo(sc)(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	require.False(t, result.IsError)

	var report cluster.Report
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &report))
	assert.Equal(t, 2, report.Summary.TotalContexts)
	assert.Equal(t, 1, report.Summary.KubeStellarContexts)
	require.Contains(t, report.Clusters, "kind-kubeflex")
	assert.True(t, report.Clusters["kind-kubeflex"].KubeStellarNamespaces["wds1-system"])
	assert.Empty(t, report.Error)
}

func TestHandleGetClusterInfoSpecificContextNotFound(t *testing.T) {
	fake := cmdexec.NewFakeRunner()
	fake.Script([]string{"kubectl", "config", "get-contexts", "-o=name"},
		cmdexec.Result{Stdout: "kind-kubeflex\n"})

	sc := newTestServerContext(t, fake)
	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{"context": "missing"}

	result, err := handleGetClusterInfo(sc)(context.Background(), request)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var report cluster.Report
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &report))
	assert.Equal(t, "Context 'missing' not found", report.Error)
	assert.Empty(t, report.Clusters)
}
