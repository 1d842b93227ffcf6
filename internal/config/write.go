package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/wavelength-fm/kiosk/internal/errors"
)

const configHeader = `# kiosk configuration
# Cadences and timeouts use Go duration syntax (10s, 5m, 2h).
`

// Save writes the config to the given path as YAML, creating parent
// directories as needed. Used by 'kiosk init'.
func Save(cfg *Config, path string) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Could not serialize config", "")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("Could not create config directory %s", dir),
				"Check directory permissions")
		}
	}

	out := append([]byte(configHeader), data...)
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Could not write config to %s", path),
			"Check file permissions")
	}

	return nil
}
