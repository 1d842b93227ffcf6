package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wavelength-fm/kiosk/internal/config"
	"github.com/wavelength-fm/kiosk/internal/signals"
	"github.com/wavelength-fm/kiosk/internal/ui"
)

var triggerCmd = &cobra.Command{
	Use:   "trigger <source>",
	Short: "Request an instant refresh of a source",
	Long: `Ask a running dashboard to refresh a source right now, outside its
normal cadence. The refresh coalesces with any fetch already in flight and
does not disturb the source's schedule.

Examples:
  kiosk trigger spins
  kiosk trigger weather`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadOrDefault(Config())
		if err != nil {
			return err
		}

		if err := signals.Send(cfg.SocketDir, signals.RefreshSocket, args[0]); err != nil {
			return err
		}
		fmt.Printf("%s Refresh requested for %s\n", ui.SymbolSuccess, args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(triggerCmd)
}
