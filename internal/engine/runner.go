package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"guestexpect/internal/config"
	"guestexpect/internal/errors"
	"guestexpect/internal/logger"
)

const defaultTimeout = 10 * time.Second

// RunnerOptions configures the test runner.
type RunnerOptions struct {
	// LaunchCommand is the shell command that starts the VM. It is treated
	// opaquely; one fresh VM process is launched per test run.
	LaunchCommand string
	// Timeout bounds the time the matcher may go without matching progress.
	// Defaults to 10 seconds, as in the original console harness.
	Timeout time.Duration
	// LogDir is where per-test log artifacts are written. Defaults to the
	// current directory.
	LogDir string
}

// Runner dispatches requested test names against the loaded specification
// table and runs one VM session per matching spec, strictly sequentially.
type Runner struct {
	spec     *config.Spec
	reporter *Reporter

	launchCommand string
	timeout       time.Duration
	logDir        string
	runID         string

	// runsPerName counts sessions already run under each test name, so log
	// artifacts for repeated names never overwrite one another.
	runsPerName map[string]int
}

// NewRunner creates a runner for one invocation of the harness.
func NewRunner(spec *config.Spec, reporter *Reporter, opts RunnerOptions) (*Runner, error) {
	if opts.LaunchCommand == "" {
		return nil, fmt.Errorf("launch command is required")
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	logDir := opts.LogDir
	if logDir == "" {
		logDir = "."
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("could not create log directory: %w", err)
	}

	runID := GenerateRunID()
	logger.Debug("runner created", "run_id", runID, "timeout", timeout, "log_dir", logDir)

	return &Runner{
		spec:          spec,
		reporter:      reporter,
		launchCommand: opts.LaunchCommand,
		timeout:       timeout,
		logDir:        logDir,
		runID:         runID,
		runsPerName:   make(map[string]int),
	}, nil
}

// RunID returns this invocation's run ID.
func (r *Runner) RunID() string {
	return r.runID
}

// RunTests runs every requested test name in order and returns all outcomes.
// A test's failure never prevents the remaining tests from running.
func (r *Runner) RunTests(names []string) []Result {
	var results []Result
	for _, name := range names {
		results = append(results, r.RunNamedTest(name)...)
	}
	return results
}

// RunNamedTest runs every specification declared under the given name, each
// against a fresh VM session, and reports each outcome as it is known. When
// no specification matches, it reports NotFound without launching a session.
func (r *Runner) RunNamedTest(name string) []Result {
	specs := r.spec.SpecsNamed(name)
	if len(specs) == 0 {
		result := Result{
			Name:    name,
			Outcome: OutcomeNotFound,
			Err:     errors.New(errors.CodeNotFound, fmt.Sprintf("no specification named '%s'", name)),
		}
		r.reporter.Report(result)
		return []Result{result}
	}

	var results []Result
	for _, spec := range specs {
		r.reporter.Running(name)

		logPath := r.logPath(name, r.runsPerName[name])
		r.runsPerName[name]++
		err := RunSession(r.launchCommand, r.spec.GeneralExpectedLines, spec.Name, spec.ExpectedLines, r.timeout, logPath)

		result := Result{Name: name, Outcome: OutcomePass}
		if err != nil {
			result.Outcome = OutcomeFail
			result.Err = err
			logger.Debug("test failed", "name", name, "error", err, "log", logPath)
		}
		r.reporter.Report(result)
		results = append(results, result)
	}
	return results
}

// logPath names the log artifact after the test. Every run beyond the first
// under a name, whether from duplicate specs or a repeated request, gets a
// numbered suffix so no run clobbers another's log.
func (r *Runner) logPath(name string, run int) string {
	if run == 0 {
		return filepath.Join(r.logDir, name+".log")
	}
	return filepath.Join(r.logDir, fmt.Sprintf("%s.%d.log", name, run+1))
}
