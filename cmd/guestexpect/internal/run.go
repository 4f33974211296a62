package internal

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"guestexpect/internal/config"
	"guestexpect/internal/engine"
	"guestexpect/internal/logger"
)

func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <test-name>...",
		Short: "Run named tests against the guest kernel",
		Long: `Runs the named tests, each in a fresh VM session. For every test the guest is
launched with the command given by --qemu, the boot handshake lines from the
spec file are awaited, the test's name is sent over the console, and the
test's expected lines are awaited. Tests run strictly one after another.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			qemuCmd, _ := cmd.Flags().GetString("qemu")
			specPath, _ := cmd.Flags().GetString("spec")
			timeout, _ := cmd.Flags().GetDuration("timeout")
			logDir, _ := cmd.Flags().GetString("log-dir")
			resultsFile, _ := cmd.Flags().GetString("results-file")

			spec, err := config.Load(specPath)
			if err != nil {
				return err
			}

			reporter := engine.NewReporter(cmd.OutOrStdout())
			runner, err := engine.NewRunner(spec, reporter, engine.RunnerOptions{
				LaunchCommand: qemuCmd,
				Timeout:       timeout,
				LogDir:        logDir,
			})
			if err != nil {
				return err
			}

			// Past this point every outcome is reported; failures are exit
			// status, not usage errors.
			cmd.SilenceUsage = true

			logger.Info("starting test run", "run_id", runner.RunID(), "tests", len(args))
			results := runner.RunTests(args)
			reporter.Summary(results)

			if resultsFile != "" {
				if err := engine.WriteResultsFile(resultsFile, runner.RunID(), results); err != nil {
					return err
				}
			}

			notPassed := 0
			for _, result := range results {
				if result.Outcome != engine.OutcomePass {
					notPassed++
				}
			}
			if notPassed > 0 {
				return fmt.Errorf("%d of %d tests did not pass", notPassed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringP("qemu", "q", "", "The console command starting the VM (required)")
	cmd.Flags().String("spec", "test-specs.yaml", "Path to the test specification file")
	cmd.Flags().DurationP("timeout", "t", 10*time.Second, "Allowed time without matching progress per expectation set")
	cmd.Flags().String("log-dir", ".", "Directory for per-test console log artifacts")
	cmd.Flags().String("results-file", "", "Write a machine-readable JSON results file to this path")
	_ = cmd.MarkFlagRequired("qemu")

	return cmd
}
