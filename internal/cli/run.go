package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wavelength-fm/kiosk/internal/config"
	"github.com/wavelength-fm/kiosk/internal/dashboard"
	"github.com/wavelength-fm/kiosk/internal/errors"
	"github.com/wavelength-fm/kiosk/internal/logger"
	"github.com/wavelength-fm/kiosk/internal/signals"
	"github.com/wavelength-fm/kiosk/internal/surprise"
)

var runNoSockets bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the dashboard",
	Long: `Start the kiosk dashboard in the terminal.

Startup blocks until every configured source has produced its first
snapshot, retrying unreachable sources on the configured interval. Press q
or ctrl+c to quit.

Examples:
  kiosk run
  kiosk run --config /etc/kiosk/kiosk.yaml
  kiosk run --no-sockets`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadOrDefault(Config())
		if err != nil {
			return err
		}
		if err := config.Validate(cfg); err != nil {
			return err
		}
		return runDashboard(cfg)
	},
}

func runDashboard(cfg *config.Config) error {
	log := logger.Default()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrRender,
			"Standard output is not a terminal",
			"Run kiosk from an interactive terminal or a tty-backed service unit")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	containers, err := dashboard.Bootstrap(ctx, cfg, log)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrFetch,
			"Dashboard startup was interrupted before all sources came up",
			"Check source URLs in the config, or remove the source that cannot be reached")
	}
	// Startup is done; SIGINT now belongs to the Bubble Tea loop.
	stop()

	surprises := surprise.NewManager(cfg.Surprises, nil, nil, log)

	model, err := dashboard.NewModel(cfg, containers, surprises, nil, log)
	if err != nil {
		return err
	}

	if !runNoSockets {
		registry := signals.NewRegistry(cfg.SocketDir, signals.Handler{
			Refresh:      model.Scheduler().RequestRefresh,
			Surprise:     surprises.FireVariant,
			SurpriseStep: surprises.StepIndex,
			SurpriseFire: surprises.Fire,
		}, log)
		if err := registry.Start(); err != nil {
			return err
		}
		defer registry.Stop()
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func init() {
	runCmd.Flags().BoolVar(&runNoSockets, "no-sockets", false, "disable the local control sockets")
	rootCmd.AddCommand(runCmd)
}
