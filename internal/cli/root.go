// Package cli implements the kiosk command-line interface.
//
// The root command is "kiosk" with subcommands for different operations:
// run starts the dashboard, init writes a starter config, trigger and
// surprise poke a running dashboard over its control sockets, and status
// summarizes the configuration.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// configFlag is the persistent --config value.
var configFlag string

var rootCmd = &cobra.Command{
	Use:   "kiosk",
	Short: "Studio dashboard for the station kiosk display",
	Long: `kiosk renders a resilient studio dashboard: now playing, the
message board, weather, stream status, and a clock, each refreshed on its
own cadence and kept on screen even while its upstream is down.

Examples:
  kiosk init
  kiosk run
  kiosk trigger spins
  kiosk surprise bird`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Config returns the --config flag value, empty when unset.
func Config() string {
	return configFlag
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		msg := err.Error()
		if !strings.HasPrefix(msg, "✗") {
			msg = "✗ " + msg
		}
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to kiosk.yaml")
}
