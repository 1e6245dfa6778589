package finboard

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable settings of the board. The zero value is unusable;
// start from DefaultConfig.
type Config struct {
	// DataFile is the path of the JSON state file.
	DataFile string `json:"data_file" yaml:"data_file"`

	// InterestPerMinute is the flat cash interest credited per minute while
	// the cash balance is positive.
	InterestPerMinute float64 `json:"interest_per_min" yaml:"interest_per_min"`

	// TickInterval is how often the background accrual runs, e.g. "1m".
	TickInterval string `json:"tick_interval,omitempty" yaml:"tick_interval,omitempty"`

	// HTTPTimeout bounds price and rate fetches, e.g. "10s".
	HTTPTimeout string `json:"http_timeout,omitempty" yaml:"http_timeout,omitempty"`
}

// DefaultConfig returns the settings used when no config file exists: state
// in the user home directory, interest per the book default, one tick per
// minute.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DataFile:          filepath.Join(home, ".finboard", "state.json"),
		InterestPerMinute: 10,
		TickInterval:      "1m",
		HTTPTimeout:       "10s",
	}
}

// LoadConfig reads a config file, YAML or JSON. A missing file returns the
// defaults; a present but unparsable file is an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("could not read config file %q: %w", path, err)
	}

	// Try YAML first, fall back to JSON.
	if yerr := yaml.Unmarshal(data, &cfg); yerr != nil {
		if jerr := json.Unmarshal(data, &cfg); jerr != nil {
			return cfg, fmt.Errorf("could not parse config file %q (tried YAML and JSON): %w", path, yerr)
		}
	}
	return cfg, nil
}

// InterestMoney returns the configured interest as a base currency amount,
// falling back to the book default for non-positive values.
func (c Config) InterestMoney() Money {
	if c.InterestPerMinute <= 0 {
		return DefaultInterestPerMinute
	}
	return USD(c.InterestPerMinute)
}

// TickDuration returns the parsed tick interval, one minute by default.
func (c Config) TickDuration() time.Duration {
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil || d <= 0 {
		return time.Minute
	}
	return d
}

// Timeout returns the parsed HTTP timeout, ten seconds by default.
func (c Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.HTTPTimeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}
