package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/wavelength-fm/kiosk/internal/errors"
)

const (
	// ConfigFileName is the config file name searched for.
	ConfigFileName = "kiosk.yaml"
	// GlobalConfigDir is the per-user config directory under $HOME.
	GlobalConfigDir = ".config/kiosk"
)

// Find locates the config file. An explicit path (from --config) must
// exist; otherwise the current directory is tried, then the per-user
// directory. An empty return with nil error means no config was found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot read config file "+explicit,
				"Check the path given to --config")
		}
		return explicit, nil
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, ConfigFileName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, GlobalConfigDir, ConfigFileName))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// Load reads and decodes the config at path. Defaults are merged under
// explicit values; viper parses duration strings into time.Duration
// fields on its own.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'kiosk init' to create one, or point --config at an existing file")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read "+path,
			"Check the file is readable and valid YAML")
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	cfg.SocketDir = ExpandTilde(cfg.SocketDir)
	for i, s := range cfg.Surprises {
		cfg.Surprises[i].Art = ExpandTilde(s.Art)
	}
	return cfg, nil
}

// LoadOrDefault loads the found config, or returns defaults when none
// exists. Lets 'kiosk init' and 'kiosk status' run before a config does.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return DefaultConfig(), nil
	}
	return Load(path)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("theme", "standard")
	v.SetDefault("fps", 30)
	v.SetDefault("fetch_timeout", "10s")
	v.SetDefault("retry_interval", "5s")
	v.SetDefault("socket_dir", "/tmp/kiosk")
	v.SetDefault("messages.history", "2h")
	v.SetDefault("messages.max_shown", 8)
}

// ExpandTilde resolves a leading ~ to the user's home directory. Only
// the current user's home is supported, not ~username.
func ExpandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/"))
}
