// Package config loads govte-shell's on-disk defaults, mirroring the
// DefaultConfig/LoadConfig/Save/MergeFlags shape used elsewhere in the
// pack for small YAML-backed CLI tools.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config is govte-shell's persisted configuration.
type Config struct {
	Screen Screen `yaml:"screen"`
	Colors Colors `yaml:"colors"`
	Exec   Exec   `yaml:"exec"`
}

// Screen holds the initial grid geometry.
type Screen struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

// Colors holds the default foreground/background palette indices
// (0-7, matching screen.ColorIndex).
type Colors struct {
	Foreground int `yaml:"foreground"`
	Background int `yaml:"background"`
}

// Exec holds the default child process and its mode flags.
type Exec struct {
	Path   string `yaml:"path"`
	Args   []string `yaml:"args"`
	Dump   bool   `yaml:"dump"`
	VT100  bool   `yaml:"vt100"`
}

// DefaultConfig returns govte-shell's built-in defaults: an 80x24 screen,
// white-on-black, and no fixed exec path (the host's $SHELL is used).
func DefaultConfig() *Config {
	return &Config{
		Screen: Screen{Cols: 80, Rows: 24},
		Colors: Colors{Foreground: 7, Background: 0},
	}
}

// DefaultPath returns the config file govte-shell reads by default:
// ~/.govte-shell/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".govte-shell", "config.yaml")
}

// LoadConfig loads configuration from filename, writing out the defaults
// if the file doesn't yet exist. An empty filename returns the defaults
// without touching disk.
func LoadConfig(filename string) *Config {
	cfg := DefaultConfig()

	if filename == "" {
		return cfg
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "govte-shell: failed to create config directory: %v\n", err)
		return cfg
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "govte-shell: failed to read config file: %v\n", err)
			return cfg
		}
		if err := cfg.Save(filename); err != nil {
			fmt.Fprintf(os.Stderr, "govte-shell: failed to save default config: %v\n", err)
		}
		return cfg
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "govte-shell: failed to parse config file: %v\n", err)
		return DefaultConfig()
	}

	return cfg
}

// Save writes c to filename as YAML.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// MergeFlags overlays any explicitly-set pflag values onto c.
func (c *Config) MergeFlags(flags *pflag.FlagSet) {
	if flags.Changed("cols") {
		if v, err := flags.GetInt("cols"); err == nil {
			c.Screen.Cols = v
		}
	}
	if flags.Changed("rows") {
		if v, err := flags.GetInt("rows"); err == nil {
			c.Screen.Rows = v
		}
	}
	if flags.Changed("exec") {
		if v, err := flags.GetString("exec"); err == nil {
			c.Exec.Path = v
		}
	}
	if flags.Changed("dump") {
		if v, err := flags.GetBool("dump"); err == nil {
			c.Exec.Dump = v
		}
	}
	if flags.Changed("vt100") {
		if v, err := flags.GetBool("vt100"); err == nil {
			c.Exec.VT100 = v
		}
	}
}
