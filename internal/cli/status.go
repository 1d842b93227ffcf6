package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/wavelength-fm/kiosk/internal/config"
	"github.com/wavelength-fm/kiosk/internal/sources"
	"github.com/wavelength-fm/kiosk/internal/ui"
	"github.com/wavelength-fm/kiosk/internal/util"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the configuration and every configured source",
	Long: `Show which config file is in use, then perform a one-shot fetch of
every configured source and report what each returned.

Examples:
  kiosk status
  kiosk status --config /etc/kiosk/kiosk.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Find(Config())
		if err != nil {
			return err
		}

		cfg, err := config.LoadOrDefault(Config())
		if err != nil {
			return err
		}

		label := lipgloss.NewStyle().Foreground(ui.ColorSecondary)
		value := lipgloss.NewStyle().Foreground(ui.ColorPrimary)

		if path == "" {
			fmt.Println(label.Render("config:  ") + value.Render("(built-in defaults)"))
		} else {
			fmt.Println(label.Render("config:  ") + value.Render(path))
		}
		fmt.Println(label.Render("theme:   ") + value.Render(cfg.Theme))
		fmt.Println(label.Render("fps:     ") + value.Render(fmt.Sprint(cfg.FPS)))
		fmt.Println(label.Render("sockets: ") + value.Render(cfg.SocketDir))
		fmt.Println()

		fmt.Println(label.Render("sources:"))
		for _, c := range checkSources(cmd.Context(), cfg) {
			switch {
			case c.Skipped:
				fmt.Printf("  %s %-10s (no URL configured)\n", ui.SymbolPending, c.Name)
			case c.Err != nil:
				fmt.Printf("  %s %-10s %v\n", ui.SymbolFail, c.Name, c.Err)
			default:
				fmt.Printf("  %s %-10s %s\n", ui.SymbolSuccess, c.Name, c.Summary)
			}
		}

		if len(cfg.Surprises) > 0 {
			fmt.Println()
			fmt.Println(label.Render("surprises:"))
			for _, s := range cfg.Surprises {
				fmt.Printf("  %s %s (%d steps, hours %02d-%02d)\n",
					ui.SymbolPending, s.Name, s.Steps, s.HourStart, s.HourEnd)
			}
		}

		if _, err := os.Stat(cfg.SocketDir); err == nil {
			fmt.Println()
			fmt.Println(label.Render("control sockets present; a dashboard may be running"))
		}
		return nil
	},
}

// sourceCheck is the outcome of one status fetch.
type sourceCheck struct {
	Name    string
	Summary string
	Err     error
	Skipped bool
}

// checkSources fetches every configured source once, bounded by the
// configured fetch timeout, and summarizes what came back. Failures are
// reported per source rather than aborting the sweep.
func checkSources(ctx context.Context, cfg *config.Config) []sourceCheck {
	client := &http.Client{Timeout: cfg.FetchTimeout}

	var out []sourceCheck
	for _, name := range cfg.SourceNames() {
		src := cfg.Sources[name]
		if src.URL == "" {
			out = append(out, sourceCheck{Name: name, Skipped: true})
			continue
		}

		fetchCtx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
		summary, err := checkSource(fetchCtx, client, name, cfg)
		cancel()

		out = append(out, sourceCheck{Name: name, Summary: summary, Err: err})
	}
	return out
}

func checkSource(ctx context.Context, client *http.Client, name string, cfg *config.Config) (string, error) {
	src := cfg.Sources[name]

	switch name {
	case config.SourceSpins:
		np, err := sources.SpinsFetcher(client, src)(ctx)
		if err != nil {
			return "", err
		}
		return np.Summary(), nil

	case config.SourceMessages:
		msgs, err := sources.MessagesFetcher(client, src, cfg.Messages)(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d %s", len(msgs),
			util.Pluralize(len(msgs), "message", "messages")), nil

	case config.SourceWeather:
		w, err := sources.WeatherFetcher(client, src)(ctx)
		if err != nil {
			return "", err
		}
		return w.Summary(), nil

	case config.SourceStream:
		st, err := sources.StreamFetcher(client, src)(ctx)
		if err != nil {
			return "", err
		}
		if !st.Online {
			return "stream offline", nil
		}
		return fmt.Sprintf("online, %d %s", st.Listeners,
			util.Pluralize(st.Listeners, "listener", "listeners")), nil
	}

	return "", fmt.Errorf("no checker for source %q", name)
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
