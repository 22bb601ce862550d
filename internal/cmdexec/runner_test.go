package cmdexec

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCapturesStdout(t *testing.T) {
	r := NewExecRunner()

	result := r.Run(context.Background(), Command{Argv: []string{"echo", "hello"}})

	assert.Equal(t, 0, result.ExitCode)
	assert.True(t, result.Success())
	assert.Equal(t, "hello\n", result.Stdout)
	assert.Empty(t, result.Stderr)
}

func TestRunCapturesStderrAndExitCode(t *testing.T) {
	r := NewExecRunner()

	result := r.Run(context.Background(), Command{
		Argv: []string{"sh", "-c", "echo oops 1>&2; exit 3"},
	})

	assert.Equal(t, 3, result.ExitCode)
	assert.False(t, result.Success())
	assert.Equal(t, "oops\n", result.Stderr)
	assert.Empty(t, result.Stdout)
}

func TestRunTimeoutProducesSyntheticFailure(t *testing.T) {
	r := NewExecRunner()

	start := time.Now()
	result := r.Run(context.Background(), Command{
		Argv:    []string{"sleep", "30"},
		Timeout: 1 * time.Second,
	})
	elapsed := time.Since(start)

	assert.Equal(t, 1, result.ExitCode)
	assert.Empty(t, result.Stdout)
	assert.Contains(t, result.Stderr, "timed out after 1 seconds")
	// The process must actually have been killed, not waited out.
	assert.Less(t, elapsed, 10*time.Second)
}

func TestRunMissingBinaryIsDataNotError(t *testing.T) {
	r := NewExecRunner()

	result := r.Run(context.Background(), Command{
		Argv: []string{"definitely-not-a-real-binary-xyz"},
	})

	assert.Equal(t, 1, result.ExitCode)
	assert.NotEmpty(t, result.Stderr)
}

func TestRunEmptyArgv(t *testing.T) {
	r := NewExecRunner()

	result := r.Run(context.Background(), Command{})

	assert.Equal(t, 1, result.ExitCode)
	assert.Equal(t, "no command specified", result.Stderr)
}

func TestRunAppliesEnvOverrides(t *testing.T) {
	r := NewExecRunner()

	result := r.Run(context.Background(), Command{
		Argv: []string{"sh", "-c", "echo $MCP_TEST_VALUE"},
		Env:  map[string]string{"MCP_TEST_VALUE": "from-override"},
	})

	require.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "from-override\n", result.Stdout)
}

func TestRunHonorsWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	r := NewExecRunner()

	result := r.Run(context.Background(), Command{
		Argv: []string{"pwd"},
		Dir:  dir,
	})

	require.Equal(t, 0, result.ExitCode)
	assert.Contains(t, result.Stdout, dir)
}

func TestRunCanceledParentContext(t *testing.T) {
	r := NewExecRunner()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := r.Run(ctx, Command{Argv: []string{"echo", "never"}})

	assert.Equal(t, 1, result.ExitCode)
	assert.NotEmpty(t, result.Stderr)
}

func TestWithDefaultTimeout(t *testing.T) {
	r := NewExecRunner(WithDefaultTimeout(1 * time.Second))

	result := r.Run(context.Background(), Command{Argv: []string{"sleep", "30"}})

	assert.Equal(t, 1, result.ExitCode)
	assert.Contains(t, result.Stderr, "timed out after 1 seconds")
}

func TestLookPath(t *testing.T) {
	r := NewExecRunner()

	path, err := r.LookPath("sh")
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	_, err = r.LookPath("definitely-not-a-real-binary-xyz")
	assert.Error(t, err)
}
