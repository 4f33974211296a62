package internal

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"guestexpect/internal/logger"
)

func NewRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "guestexpect",
		Short: "Guestexpect runs user programs inside a guest kernel as tests.",
		Long: `Guestexpect drives an externally launched virtual machine through its console.
It waits for the guest kernel's boot handshake, selects a named user program, and
checks the console output against the expected lines declared in a spec file.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Configure(logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "The log level to use (debug, info, warn, error).")
	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewCompletionCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
