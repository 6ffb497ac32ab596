package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/smart-guard/internal/service/guard"
	"github.com/oshokin/smart-guard/internal/version"
)

var (
	// configPath to the configuration YAML file; empty means factory defaults.
	configPath string
	// logLevel overrides the configured log level.
	logLevel string
	// displayOnly limits the simulation transcript to display calls.
	displayOnly bool

	// rootCmd is the base command.
	rootCmd = &cobra.Command{
		Use:   "smart-guard",
		Short: "Intrusion alarm for a Raspberry Pi with a PIR sensor, keypad, LEDs, buzzer and LCD.",
		Long: `smart-guard arms a PIR motion sensor behind a four-key password.

On start it calibrates the sensor and asks for a new password on the keypad.
Motion while armed sounds the siren and asks for the password. Three wrong
entries lock the keypad for a short countdown. The right password plays a
melody and rearms the alarm.`,
		SilenceUsage: true,
	}

	// runCmd drives the real hardware.
	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the alarm on the Raspberry Pi hardware.",
		Long: `Binds the keypad, PIR sensor, LEDs, buzzer and I2C display named in the
configuration and runs the alarm until SIGINT or SIGTERM.

A hardware failure halts the device: outputs are switched off and the process
waits for a stop signal, then exits with a non-zero status.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return guard.Run(ctx, &guard.Options{
				ConfigPath: configPath,
				LogLevel:   logLevel,
			})
		},
	}

	// simulateCmd replays a scenario on the simulated board.
	simulateCmd = &cobra.Command{
		Use:   "simulate <scenario.yaml>",
		Short: "Replay a scripted scenario on a simulated board.",
		Long: `Runs the alarm on a simulated board with a virtual clock. The scenario file
schedules key presses and motion pulses; every output call is printed with its
virtual timestamp, followed by the final state and screen.

Example scenario:

  duration: 60s
  keys:
    - at: 24s
      text: "1234"
    - at: 35s
      text: "1234"
  motion:
    - at: 30s`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return guard.Simulate(ctx, &guard.SimulateOptions{
				ConfigPath:   configPath,
				ScenarioPath: args[0],
				LogLevel:     logLevel,
				Output:       cmd.OutOrStdout(),
				DisplayOnly:  displayOnly,
			})
		},
	}
)

// Execute runs the smart-guard CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file (defaults when empty)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override: debug, info, warn or error")

	simulateCmd.Flags().BoolVar(&displayOnly, "display-only", false, "print display calls only")

	rootCmd.AddCommand(runCmd, simulateCmd, configCmd)
}
