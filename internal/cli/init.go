package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/wavelength-fm/kiosk/internal/config"
	"github.com/wavelength-fm/kiosk/internal/errors"
	"github.com/wavelength-fm/kiosk/internal/ui"
)

var (
	initForce          bool
	initNonInteractive bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a kiosk.yaml configuration file",
	Long: `Create a starter kiosk.yaml in the current directory.

Runs an interactive form for the basics; --yes skips the prompts and
writes the defaults.

Examples:
  kiosk init
  kiosk init --yes
  kiosk init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit("kiosk.yaml")
	},
}

func runInit(path string) error {
	if _, err := os.Stat(path); err == nil && !initForce {
		if initNonInteractive {
			return errors.New(errors.ErrConfig,
				"Config file already exists: "+path,
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", path)).
				Value(&overwrite),
		))
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()

	if !initNonInteractive {
		theme := cfg.Theme
		fps := strconv.Itoa(cfg.FPS)
		var spinsURL, spinsKey string

		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("Standard (borders and colors)", ui.ThemeStandard),
					huh.NewOption("Barebones (plain text)", ui.ThemeBarebones),
				).
				Value(&theme),
			huh.NewInput().
				Title("Target frame rate").
				Value(&fps).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n < 1 || n > 240 {
						return fmt.Errorf("enter a whole number between 1 and 240")
					}
					return nil
				}),
			huh.NewInput().
				Title("Now-playing API base URL (blank to skip)").
				Value(&spinsURL),
			huh.NewInput().
				Title("Now-playing API key").
				EchoMode(huh.EchoModePassword).
				Value(&spinsKey),
		))
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input", "")
		}

		cfg.Theme = theme
		cfg.FPS, _ = strconv.Atoi(fps)
		if spinsURL != "" {
			src := cfg.Sources[config.SourceSpins]
			src.URL = spinsURL
			src.APIKey = spinsKey
			cfg.Sources[config.SourceSpins] = src
		}
	}

	if err := config.Save(cfg, path); err != nil {
		return err
	}

	fmt.Printf("%s Wrote %s\n", ui.SymbolSuccess, path)
	fmt.Println("Edit the sources section to point at your endpoints, then run 'kiosk run'.")
	return nil
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVarP(&initNonInteractive, "yes", "y", false, "skip prompts, write defaults")
	rootCmd.AddCommand(initCmd)
}
