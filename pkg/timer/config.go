package timer

import (
	"fmt"
)

// Config declares a timer in configuration files.
type Config struct {
	// Granularity is a symbol or long name accepted by ParseGranularity; empty means Milliseconds.
	Granularity string `yaml:"granularity"`
	// Sink is one of console (the default), file or discard.
	Sink string `yaml:"sink"`
	// Path is the report file for the file sink. An empty path discards the report.
	Path string `yaml:"path"`
	// Truncate overwrites the report file instead of appending to it.
	Truncate bool `yaml:"truncate"`
	Name     string `yaml:"name"`
}

// Validate checks the granularity and sink names.
func (c Config) Validate() error {
	if c.Granularity != "" {
		if _, ok := ParseGranularity(c.Granularity); !ok {
			return fmt.Errorf("timer: unknown granularity: granularity=%s", c.Granularity)
		}
	}

	switch c.Sink {
	case "", "console", "file", "discard":
	default:
		return fmt.Errorf("timer: unknown sink: sink=%s", c.Sink)
	}

	if c.Sink != "file" && (c.Path != "" || c.Truncate) {
		return fmt.Errorf("timer: path and truncate require the file sink: sink=%s", c.Sink)
	}

	return nil
}

// Options translates the configuration into timer options.
func (c Config) Options() ([]Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var opts []Option

	if c.Granularity != "" {
		g, _ := ParseGranularity(c.Granularity)
		opts = append(opts, WithGranularity(g))
	}

	switch c.Sink {
	case "file":
		mode := Append
		if c.Truncate {
			mode = Truncate
		}
		opts = append(opts, WithPath(c.Path, mode))
	case "discard":
		opts = append(opts, WithSink(DiscardSink{}))
	default:
		opts = append(opts, WithConsole())
	}

	if c.Name != "" {
		opts = append(opts, WithName(c.Name))
	}

	return opts, nil
}

// NewFromConfig creates and starts a timer from configuration. Additional options are applied
// after the configured ones and take precedence.
func NewFromConfig(cfg Config, opts ...Option) (*Timer, error) {
	base, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	return New(append(base, opts...)...), nil
}
