package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Source names used throughout the kiosk. Every configured source cadence
// keys off one of these.
const (
	SourceSpins    = "spins"
	SourceMessages = "messages"
	SourceWeather  = "weather"
	SourceStream   = "stream"
)

// Config represents the complete kiosk.yaml configuration file.
type Config struct {
	Version int    `yaml:"version" mapstructure:"version"`
	Theme   string `yaml:"theme" mapstructure:"theme"`

	// FPS is the target rate of the render/update loop.
	FPS int `yaml:"fps" mapstructure:"fps"`

	// FetchTimeout bounds every network fetch. A fetch that exceeds it is
	// an ordinary failure, not a special case.
	FetchTimeout time.Duration `yaml:"fetch_timeout" mapstructure:"fetch_timeout"`

	// RetryInterval is the sleep between startup fetch attempts while a
	// source is unreachable at launch.
	RetryInterval time.Duration `yaml:"retry_interval" mapstructure:"retry_interval"`

	// SocketDir is where the local control sockets live.
	SocketDir string `yaml:"socket_dir" mapstructure:"socket_dir"`

	Sources   map[string]SourceConfig `yaml:"sources" mapstructure:"sources"`
	Messages  MessageConfig           `yaml:"messages" mapstructure:"messages"`
	Surprises []SurpriseConfig        `yaml:"surprises" mapstructure:"surprises"`
}

// SourceConfig defines one external data source and its refresh cadence.
type SourceConfig struct {
	// URL is the endpoint the source adapter fetches from.
	URL string `yaml:"url" mapstructure:"url"`

	// APIKey is sent with the request when the endpoint requires auth.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`

	// Cadence is the interval between scheduled refreshes.
	Cadence time.Duration `yaml:"cadence" mapstructure:"cadence"`
}

// MessageConfig controls the on-screen message board.
type MessageConfig struct {
	// History is how long a message stays on the board before expiring.
	History time.Duration `yaml:"history" mapstructure:"history"`

	// MaxShown caps the number of messages rendered at once.
	MaxShown int `yaml:"max_shown" mapstructure:"max_shown"`

	// RevealSenders shows the sender number alongside each message.
	RevealSenders bool `yaml:"reveal_senders" mapstructure:"reveal_senders"`
}

// SurpriseConfig defines one surprise variant that can appear on screen,
// either by ambient chance or when fired externally.
type SurpriseConfig struct {
	// Name identifies the variant for external triggers.
	Name string `yaml:"name" mapstructure:"name"`

	// Art is the ASCII-art file (or inline text) shown when the surprise fires.
	Art string `yaml:"art" mapstructure:"art"`

	// Chance is the probability of an ambient appearance per update step, 0 to 1.
	Chance float64 `yaml:"chance" mapstructure:"chance"`

	// Steps is how many update steps the surprise stays visible for.
	Steps int `yaml:"steps" mapstructure:"steps"`

	// HourStart and HourEnd bound ambient appearances to local hours, 0-23 inclusive.
	HourStart int `yaml:"hour_start" mapstructure:"hour_start"`
	HourEnd   int `yaml:"hour_end" mapstructure:"hour_end"`

	// Flicker alternates visibility each step instead of showing steadily.
	Flicker bool `yaml:"flicker" mapstructure:"flicker"`

	// Cadence is the interval between ambient appearance rolls.
	Cadence time.Duration `yaml:"cadence" mapstructure:"cadence"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:       CurrentConfigVersion,
		Theme:         "standard",
		FPS:           30,
		FetchTimeout:  10 * time.Second,
		RetryInterval: 5 * time.Second,
		SocketDir:     "/tmp/kiosk",
		Sources: map[string]SourceConfig{
			SourceSpins:    {Cadence: 10 * time.Second},
			SourceMessages: {Cadence: 30 * time.Second},
			SourceWeather:  {Cadence: 5 * time.Minute},
			SourceStream:   {Cadence: 30 * time.Second},
		},
		Messages: MessageConfig{
			History:  2 * time.Hour,
			MaxShown: 8,
		},
	}
}

// Cadence returns the configured cadence for a source, or def when the
// source has no entry or no cadence set.
func (c *Config) Cadence(source string, def time.Duration) time.Duration {
	if s, ok := c.Sources[source]; ok && s.Cadence > 0 {
		return s.Cadence
	}
	return def
}

// SourceNames returns the configured source names in a stable order.
func (c *Config) SourceNames() []string {
	names := make([]string, 0, len(c.Sources))
	for _, name := range []string{SourceSpins, SourceMessages, SourceWeather, SourceStream} {
		if _, ok := c.Sources[name]; ok {
			names = append(names, name)
		}
	}
	return names
}
