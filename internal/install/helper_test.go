package install

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubestellar/mcp-kubestellar/internal/cmdexec"
	"github.com/kubestellar/mcp-kubestellar/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Version: "0.27.2",
		DocsURL: "https://docs.kubestellar.io/release-0.27.2",
	}
}

func TestInstallationGuide(t *testing.T) {
	helper := NewHelper(cmdexec.NewFakeRunner(), testConfig(), nil)

	guide := helper.InstallationGuide()

	assert.Equal(t, "KubeStellar Installation Guide", guide.Title)
	assert.Equal(t, "0.27.2", guide.Version)
	assert.Equal(t, "https://docs.kubestellar.io/release-0.27.2/direct/user-guide-intro/", guide.Documentation)
	assert.Equal(t, "https://docs.kubestellar.io/release-0.27.2/Getting-Started/quickstart/", guide.QuickStart)
	assert.Contains(t, guide.Methods.DemoScript.ScriptURL, "v0.27.2")
	assert.Equal(t, "oci://ghcr.io/kubestellar/kubestellar/core-chart", guide.Methods.HelmChart.Chart)
	assert.Equal(t, []string{"kind", "k3d"}, guide.SupportedPlatforms)
	assert.Equal(t, []int{9443}, guide.RequiredPorts)
	assert.Len(t, guide.NextSteps, 3)
}

func TestInstallationRequirements(t *testing.T) {
	helper := NewHelper(cmdexec.NewFakeRunner(), testConfig(), nil)

	reqs := helper.InstallationRequirements()

	assert.Equal(t, "https://docs.kubestellar.io/release-0.27.2/direct/user-guide-intro/", reqs.DocumentationURL)
	assert.Contains(t, reqs.InstallationScript, "create-kubestellar-demo-env.sh")
	assert.Equal(t, "Go 1.19+", reqs.Requirements.Go)
	assert.Equal(t, []int{9443}, reqs.Requirements.Ports)
}

func TestDownloadScriptSuccess(t *testing.T) {
	cfg := testConfig()
	fake := cmdexec.NewFakeRunner()
	fake.Script([]string{"curl", "-s", cfg.ScriptURL()},
		cmdexec.Result{Stdout: "#!/bin/bash\necho setting up\n"})

	download := NewHelper(fake, cfg, nil).DownloadScript(context.Background())

	assert.True(t, download.Success)
	assert.Equal(t, "#!/bin/bash\necho setting up\n", download.ScriptContent)
	assert.Equal(t, cfg.ScriptURL(), download.ScriptURL)
	assert.Equal(t, []string{"kind", "k3d"}, download.Platforms)
	assert.Empty(t, download.Error)
}

func TestDownloadScriptFailure(t *testing.T) {
	cfg := testConfig()
	fake := cmdexec.NewFakeRunner()
	fake.Script([]string{"curl", "-s", cfg.ScriptURL()},
		cmdexec.Result{ExitCode: 6, Stderr: "curl: (6) Could not resolve host"})

	download := NewHelper(fake, cfg, nil).DownloadScript(context.Background())

	assert.False(t, download.Success)
	assert.Empty(t, download.ScriptContent)
	assert.Equal(t, "Failed to download script: curl: (6) Could not resolve host", download.Error)
	assert.Equal(t, cfg.ScriptURL(), download.ScriptURL)
}

// readyRunner scripts an environment that passes validation cleanly.
func readyRunner() *cmdexec.FakeRunner {
	fake := cmdexec.NewFakeRunner()
	fake.Script([]string{"lsof", "-i", "tcp:9443"}, cmdexec.Result{ExitCode: 1})
	fake.Script([]string{"kind", "get", "clusters"}, cmdexec.Result{Stdout: "unrelated\n"})
	return fake
}

func TestValidateEnvironmentReady(t *testing.T) {
	validation := NewHelper(readyRunner(), testConfig(), nil).
		ValidateEnvironment(context.Background(), "kind")

	assert.True(t, validation.Ready)
	assert.Equal(t, "kind", validation.Platform)
	assert.Empty(t, validation.Issues)
	assert.Empty(t, validation.Warnings)
	require.NotNil(t, validation.Issues)
	require.NotNil(t, validation.Warnings)
}

func TestValidateEnvironmentPlatformMissing(t *testing.T) {
	fake := readyRunner()
	fake.Script([]string{"k3d", "version"}, cmdexec.Result{ExitCode: 127, Stderr: "not found"})

	validation := NewHelper(fake, testConfig(), nil).
		ValidateEnvironment(context.Background(), "k3d")

	assert.False(t, validation.Ready)
	assert.Contains(t, validation.Issues, "k3d is not installed or not accessible")
}

func TestValidateEnvironmentDockerDown(t *testing.T) {
	fake := readyRunner()
	fake.Script([]string{"docker", "ps"}, cmdexec.Result{ExitCode: 1, Stderr: "daemon down"})

	validation := NewHelper(fake, testConfig(), nil).
		ValidateEnvironment(context.Background(), "kind")

	assert.False(t, validation.Ready)
	assert.Contains(t, validation.Issues, "Docker is not running or not accessible")
}

func TestValidateEnvironmentPortInUseIsWarningOnly(t *testing.T) {
	fake := readyRunner()
	fake.Script([]string{"lsof", "-i", "tcp:9443"}, cmdexec.Result{ExitCode: 0, Stdout: "in use"})

	validation := NewHelper(fake, testConfig(), nil).
		ValidateEnvironment(context.Background(), "kind")

	assert.True(t, validation.Ready)
	assert.Contains(t, validation.Warnings,
		"Port 9443 is currently in use. KubeStellar installation may fail.")
}

func TestValidateEnvironmentClusterConflicts(t *testing.T) {
	fake := readyRunner()
	fake.Script([]string{"kind", "get", "clusters"},
		cmdexec.Result{Stdout: "kubeflex\ncluster1\nother\n"})

	validation := NewHelper(fake, testConfig(), nil).
		ValidateEnvironment(context.Background(), "kind")

	assert.True(t, validation.Ready)
	assert.Contains(t, validation.Warnings,
		"Found existing clusters that may conflict: kubeflex, cluster1")
}

func TestValidateEnvironmentK3dSkipsKindClusterScan(t *testing.T) {
	fake := readyRunner()

	NewHelper(fake, testConfig(), nil).ValidateEnvironment(context.Background(), "k3d")

	assert.False(t, fake.Ran("kind", "get", "clusters"))
	assert.True(t, fake.Ran("k3d", "version"))
}

func TestFindConflicts(t *testing.T) {
	assert.Equal(t, []string{"kubeflex", "cluster2"}, findConflicts("kubeflex\nmine\ncluster2\n"))
	assert.Empty(t, findConflicts("some-other-cluster\n"))
	assert.Empty(t, findConflicts(""))
}
