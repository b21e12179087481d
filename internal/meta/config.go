package meta

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"scopedtimer/pkg/timer"
)

// ApplicationConfig is a top-level block for application-level meta configuration.
type ApplicationConfig struct {
	SentryDSN string `yaml:"sentry_dsn"`
}

// MetricsConfig is a top-level block for metrics configuration.
type MetricsConfig struct {
	Statsd *struct {
		Address    string  `yaml:"addr"`
		SampleRate float64 `yaml:"sample_rate"`
	} `yaml:"statsd"`
}

// Config describes all application configuration options.
type Config struct {
	Application *ApplicationConfig `yaml:"application"`
	Metrics     *MetricsConfig     `yaml:"metrics"`
	Timer       *timer.Config      `yaml:"timer"`
}

// DefaultConfig is used when no configuration file is supplied: a millisecond timer reporting to
// standard output, with no metrics or error reporting.
func DefaultConfig() *Config {
	return &Config{Timer: &timer.Config{}}
}

// ParseConfig parses a Config struct instance from a file specified as a path on disk.
func ParseConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: error reading config: err=%v", err)
	}

	var cfg *Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: error parsing config: err=%v", err)
	}

	// An empty document leaves cfg nil.
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate the contents of the configuration. Returns an error if validation failed; nil otherwise.
func (c *Config) validate() error {
	/* Metrics */

	// Users can omit the metrics block entirely to disable metrics reporting.
	if c.Metrics != nil && c.Metrics.Statsd != nil {
		if c.Metrics.Statsd.Address == "" {
			return fmt.Errorf("config: missing metrics statsd address")
		}

		if c.Metrics.Statsd.SampleRate < 0 || c.Metrics.Statsd.SampleRate > 1 {
			return fmt.Errorf("config: statsd sample rate must be in range [0.0, 1.0]")
		}
	}

	/* Timer */

	// The timer block is optional; every field has a default.
	if c.Timer == nil {
		c.Timer = &timer.Config{}
	}

	if err := c.Timer.Validate(); err != nil {
		return fmt.Errorf("config: invalid timer block: err=%v", err)
	}

	return nil
}
