package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wavelength-fm/kiosk/internal/config"
	"github.com/wavelength-fm/kiosk/internal/signals"
	"github.com/wavelength-fm/kiosk/internal/ui"
)

var surpriseStep bool

var surpriseCmd = &cobra.Command{
	Use:   "surprise [variant]",
	Short: "Fire a surprise on a running dashboard",
	Long: `Make a configured surprise appear on a running dashboard.

With a variant name, that surprise fires immediately. With --step, the
selection index advances instead (the same thing SIGUSR1 does); firing via
SIGUSR2 then shows the selected variant.

Examples:
  kiosk surprise bird
  kiosk surprise --step`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadOrDefault(Config())
		if err != nil {
			return err
		}

		if surpriseStep {
			if err := signals.Send(cfg.SocketDir, signals.SurpriseIndexSocket, ""); err != nil {
				return err
			}
			fmt.Printf("%s Surprise index stepped\n", ui.SymbolSuccess)
			return nil
		}

		if len(args) == 0 {
			return cmd.Help()
		}
		if err := signals.Send(cfg.SocketDir, signals.SurpriseSocket, args[0]); err != nil {
			return err
		}
		fmt.Printf("%s Surprise fired: %s\n", ui.SymbolSuccess, args[0])
		return nil
	},
}

func init() {
	surpriseCmd.Flags().BoolVar(&surpriseStep, "step", false, "advance the selection index instead of firing")
	rootCmd.AddCommand(surpriseCmd)
}
