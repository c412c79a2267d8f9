package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Theme holds the display knobs used by the TUI and Neovim hosts.
type Theme struct {
	MarkerRight  string `yaml:"marker_right"`
	MarkerLeft   string `yaml:"marker_left"`
	ChangedColor string `yaml:"changed_color"`
	MarkerColor  string `yaml:"marker_color"`
	CursorColor  string `yaml:"cursor_color"`
}

// Config is the optional file configuration. Command-line flags override it.
type Config struct {
	// DefaultLanguage skips content sniffing when set.
	DefaultLanguage string `yaml:"default_language"`
	// NvimAddress overrides $NVIM_LISTEN_ADDRESS for --nvim mode.
	NvimAddress string `yaml:"nvim_address"`
	Theme       Theme  `yaml:"theme"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Theme: Theme{
			MarkerRight:  ">",
			MarkerLeft:   "<",
			ChangedColor: "215",
			MarkerColor:  "205",
			CursorColor:  "63",
		},
	}
}

// Load reads ~/.config/dpane/config.yaml, falling back to defaults when the
// file does not exist. Empty theme fields keep their defaults so a partial
// file stays valid.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(filepath.Join(home, ".config", "dpane", "config.yaml"))
}

// LoadFile reads a specific configuration file.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.Theme.MarkerRight == "" {
		c.Theme.MarkerRight = def.Theme.MarkerRight
	}
	if c.Theme.MarkerLeft == "" {
		c.Theme.MarkerLeft = def.Theme.MarkerLeft
	}
	if c.Theme.ChangedColor == "" {
		c.Theme.ChangedColor = def.Theme.ChangedColor
	}
	if c.Theme.MarkerColor == "" {
		c.Theme.MarkerColor = def.Theme.MarkerColor
	}
	if c.Theme.CursorColor == "" {
		c.Theme.CursorColor = def.Theme.CursorColor
	}
}
