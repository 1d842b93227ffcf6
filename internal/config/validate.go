package config

import (
	"fmt"
	"time"

	"github.com/wavelength-fm/kiosk/internal/errors"
)

// KnownThemes are the layouts the dashboard can build.
var KnownThemes = map[string]bool{
	"standard":  true,
	"barebones": true,
}

// MinCadence guards against cadences faster than a frame at the lowest
// supported FPS; anything below this cannot be expressed as a whole number
// of frames between refreshes.
const MinCadence = time.Second

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but kiosk only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Update kiosk, or regenerate the config with 'kiosk init'")
	}

	if !KnownThemes[cfg.Theme] {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown theme %q", cfg.Theme),
			"Use 'standard' or 'barebones'")
	}

	if cfg.FPS < 1 || cfg.FPS > 240 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("FPS %d is out of range", cfg.FPS),
			"Use a value between 1 and 240")
	}

	if cfg.FetchTimeout <= 0 {
		return errors.New(errors.ErrConfig,
			"fetch_timeout must be positive",
			"Use a Go duration like 10s")
	}

	if cfg.RetryInterval <= 0 {
		return errors.New(errors.ErrConfig,
			"retry_interval must be positive",
			"Use a Go duration like 5s")
	}

	if len(cfg.Sources) == 0 {
		return errors.New(errors.ErrConfig,
			"No sources configured",
			"Add at least one source under 'sources', or run 'kiosk init'")
	}

	for name, src := range cfg.Sources {
		if src.Cadence < MinCadence {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Source %q cadence %s is below the minimum of %s", name, src.Cadence, MinCadence),
				"Slow the cadence down; sub-second polling just hammers the API")
		}
	}

	for i, s := range cfg.Surprises {
		if s.Name == "" {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Surprise %d has no name", i),
				"Give every surprise a name so it can be triggered")
		}
		if s.Chance < 0 || s.Chance > 1 {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Surprise %q chance %v is out of range", s.Name, s.Chance),
				"Chance must be between 0 and 1")
		}
		if s.Steps < 1 {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Surprise %q must appear for at least one step", s.Name),
				"Set steps to 1 or more")
		}
		if s.HourStart < 0 || s.HourStart > 23 || s.HourEnd < 0 || s.HourEnd > 23 {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Surprise %q hour window is out of range", s.Name),
				"Hours are 0-23 local time")
		}
	}

	return nil
}
