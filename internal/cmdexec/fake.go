package cmdexec

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// FakeRunner is a scripted Runner for tests. Responses are keyed by the
// space-joined argv; anything unscripted gets the Default result. All calls
// are recorded in order.
type FakeRunner struct {
	mu sync.Mutex

	// Responses maps a space-joined argv to the result to return.
	Responses map[string]Result

	// Default is returned for commands with no scripted response.
	Default Result

	// Paths maps binary names to fake filesystem paths for LookPath.
	// A name not present reports "not found".
	Paths map[string]string

	// Calls records every executed argv in invocation order.
	Calls [][]string
}

// NewFakeRunner creates a FakeRunner whose default result is a clean exit.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Responses: make(map[string]Result),
		Paths:     make(map[string]string),
	}
}

// Script registers a response for the given argv.
func (f *FakeRunner) Script(argv []string, result Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Responses[strings.Join(argv, " ")] = result
}

// Run implements Runner.
func (f *FakeRunner) Run(_ context.Context, cmd Command) Result {
	f.mu.Lock()
	defer f.mu.Unlock()

	argv := make([]string, len(cmd.Argv))
	copy(argv, cmd.Argv)
	f.Calls = append(f.Calls, argv)

	if result, ok := f.Responses[strings.Join(cmd.Argv, " ")]; ok {
		return result
	}
	return f.Default
}

// LookPath implements Runner.
func (f *FakeRunner) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if path, ok := f.Paths[name]; ok {
		return path, nil
	}
	return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
}

// CallCount returns how many commands were executed.
func (f *FakeRunner) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

// Ran reports whether the given argv was executed.
func (f *FakeRunner) Ran(argv ...string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	want := strings.Join(argv, " ")
	for _, call := range f.Calls {
		if strings.Join(call, " ") == want {
			return true
		}
	}
	return false
}
