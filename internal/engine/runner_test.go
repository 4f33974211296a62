package engine

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guestexpect/internal/config"
)

func parseSpec(t *testing.T, content string) *config.Spec {
	t.Helper()
	spec, err := config.Parse([]byte(content))
	require.NoError(t, err)
	return spec
}

func newTestRunner(t *testing.T, spec *config.Spec, launchCommand string) (*Runner, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	runner, err := NewRunner(spec, NewReporter(&out), RunnerOptions{
		LaunchCommand: launchCommand,
		Timeout:       5 * time.Second,
		LogDir:        t.TempDir(),
	})
	require.NoError(t, err)
	return runner, &out
}

func TestNewRunnerRequiresLaunchCommand(t *testing.T) {
	spec := parseSpec(t, "tests: []\n")
	_, err := NewRunner(spec, NewReporter(&bytes.Buffer{}), RunnerOptions{})
	require.Error(t, err)
}

func TestRunNamedTestPasses(t *testing.T) {
	// Scenario: guest prints the login prompt, the runner sends the test
	// name, the guest answers with the expected line.
	spec := parseSpec(t, `
general-expected-lines: ["login:"]
tests:
  - name: echo
    expected-lines: ["echo: ok"]
`)
	runner, out := newTestRunner(t, spec, fakeGuest)

	results := runner.RunNamedTest("echo")
	require.Len(t, results, 1)
	assert.Equal(t, OutcomePass, results[0].Outcome)
	assert.Contains(t, out.String(), "Running test echo:\n")
	assert.Contains(t, out.String(), "Test echo passed.\n")
}

func TestRunNamedTestFailsOnEarlyGuestExit(t *testing.T) {
	spec := parseSpec(t, `
general-expected-lines: ["login:"]
tests:
  - name: echo
    expected-lines: ["echo: ok"]
`)
	runner, out := newTestRunner(t, spec, `echo "login:"; read name`)

	results := runner.RunNamedTest("echo")
	require.Len(t, results, 1)
	assert.Equal(t, OutcomeFail, results[0].Outcome)
	assert.Contains(t, out.String(), "Test echo failed: unexpected EOF")
}

func TestRunNamedTestNotFound(t *testing.T) {
	spec := parseSpec(t, `
tests:
  - name: echo
    expected-lines: ["echo: ok"]
`)
	// A launch command that would fail loudly if a session were started.
	runner, out := newTestRunner(t, spec, "exit 1")

	results := runner.RunNamedTest("nonexistent")
	require.Len(t, results, 1)
	assert.Equal(t, OutcomeNotFound, results[0].Outcome)
	assert.Contains(t, out.String(), "Test nonexistent not found.\n")
	assert.NotContains(t, out.String(), "Running test")
}

func TestRunNamedTestDuplicateNames(t *testing.T) {
	// Two specs under one name run independently: here the first one's
	// expectation holds and the second one's does not.
	spec := parseSpec(t, `
general-expected-lines: ["login:"]
tests:
  - name: flaky
    expected-lines: ["flaky: ok"]
  - name: flaky
    expected-lines: ["flaky: bad"]
`)
	runner, out := newTestRunner(t, spec, fakeGuest)

	results := runner.RunNamedTest("flaky")
	require.Len(t, results, 2)
	assert.Equal(t, OutcomePass, results[0].Outcome)
	assert.Equal(t, OutcomeFail, results[1].Outcome)
	assert.Contains(t, out.String(), "Test flaky passed.\n")
	assert.Contains(t, out.String(), "Test flaky failed:")
}

func TestRunNamedTestDuplicateNamesKeepSeparateLogs(t *testing.T) {
	logDir := t.TempDir()
	spec := parseSpec(t, `
general-expected-lines: ["login:"]
tests:
  - name: flaky
    expected-lines: ["flaky: ok"]
  - name: flaky
    expected-lines: ["flaky: ok"]
`)
	runner, err := NewRunner(spec, NewReporter(&bytes.Buffer{}), RunnerOptions{
		LaunchCommand: fakeGuest,
		Timeout:       5 * time.Second,
		LogDir:        logDir,
	})
	require.NoError(t, err)

	runner.RunNamedTest("flaky")

	assert.FileExists(t, filepath.Join(logDir, "flaky.log"))
	assert.FileExists(t, filepath.Join(logDir, "flaky.2.log"))
}

func TestRunTestsIsolatesLogsPerTest(t *testing.T) {
	logDir := t.TempDir()
	spec := parseSpec(t, `
general-expected-lines: ["login:"]
tests:
  - name: alpha
    expected-lines: ["alpha: ok"]
  - name: beta
    expected-lines: ["beta: ok"]
`)
	runner, err := NewRunner(spec, NewReporter(&bytes.Buffer{}), RunnerOptions{
		LaunchCommand: fakeGuest,
		Timeout:       5 * time.Second,
		LogDir:        logDir,
	})
	require.NoError(t, err)

	results := runner.RunTests([]string{"alpha", "beta"})
	require.Len(t, results, 2)
	assert.Equal(t, OutcomePass, results[0].Outcome)
	assert.Equal(t, OutcomePass, results[1].Outcome)

	alphaLog, err := os.ReadFile(filepath.Join(logDir, "alpha.log"))
	require.NoError(t, err)
	assert.Contains(t, string(alphaLog), "alpha: ok")
	assert.NotContains(t, string(alphaLog), "beta: ok")
}

func TestRunTestsFailureDoesNotStopLaterTests(t *testing.T) {
	spec := parseSpec(t, `
general-expected-lines: ["login:"]
tests:
  - name: broken
    expected-lines: ["never printed"]
  - name: echo
    expected-lines: ["echo: ok"]
`)
	runner, _ := newTestRunner(t, spec, fakeGuest)

	results := runner.RunTests([]string{"broken", "echo"})
	require.Len(t, results, 2)
	assert.Equal(t, OutcomeFail, results[0].Outcome)
	assert.Equal(t, OutcomePass, results[1].Outcome)
}

func TestRunTestsRepeatedNameIsIndependent(t *testing.T) {
	spec := parseSpec(t, `
general-expected-lines: ["login:"]
tests:
  - name: echo
    expected-lines: ["echo: ok"]
`)
	runner, _ := newTestRunner(t, spec, fakeGuest)

	results := runner.RunTests([]string{"echo", "echo"})
	require.Len(t, results, 2)
	assert.Equal(t, OutcomePass, results[0].Outcome)
	assert.Equal(t, OutcomePass, results[1].Outcome)
}

func TestRunTestsRepeatedNameKeepsSeparateLogs(t *testing.T) {
	// Requesting the same name twice runs two sessions; the second run's log
	// must not truncate the first run's.
	logDir := t.TempDir()
	spec := parseSpec(t, `
general-expected-lines: ["login:"]
tests:
  - name: echo
    expected-lines: ["echo: ok"]
`)
	runner, err := NewRunner(spec, NewReporter(&bytes.Buffer{}), RunnerOptions{
		LaunchCommand: fakeGuest,
		Timeout:       5 * time.Second,
		LogDir:        logDir,
	})
	require.NoError(t, err)

	runner.RunTests([]string{"echo", "echo"})

	assert.FileExists(t, filepath.Join(logDir, "echo.log"))
	assert.FileExists(t, filepath.Join(logDir, "echo.2.log"))
}

func TestRunnerDefaultsTimeout(t *testing.T) {
	spec := parseSpec(t, "tests: []\n")
	runner, err := NewRunner(spec, NewReporter(&bytes.Buffer{}), RunnerOptions{LaunchCommand: "true"})
	require.NoError(t, err)
	assert.Equal(t, defaultTimeout, runner.timeout)
	assert.NotEmpty(t, runner.RunID())
}
