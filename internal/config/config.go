// Package config loads the optional host-level run configuration that sits
// alongside a bytecode file: knobs that tune the VM's resource footprint
// and diagnostics without changing its observable semantics.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// minStdinBuffer is the contractual STDIN line buffer size; config may
// raise it but never lower it below this.
const minStdinBuffer = 1024

// minStackCapacity is the contractual operand-stack floor; config may
// raise it but never lower it below this.
const minStackCapacity = 256

// Config is the parsed contents of a carbn.yaml run-configuration file.
type Config struct {
	// StackCapacity overrides the operand stack's pre-reserved capacity.
	StackCapacity int `yaml:"stack_capacity"`

	// StdinBufferSize overrides the STDIN line buffer size.
	StdinBufferSize int `yaml:"stdin_buffer_size"`

	// Trace enables execution trace diagnostics by default, equivalent to
	// always passing --trace.
	Trace bool `yaml:"trace"`
}

// Default returns the configuration that applies when no file is present.
func Default() Config {
	return Config{
		StackCapacity:   minStackCapacity,
		StdinBufferSize: minStdinBuffer,
		Trace:           false,
	}
}

// Load reads and parses the YAML file at path. A missing file is not an
// error: Default is returned unchanged. A present-but-malformed file is an
// error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	cfg.clamp()
	return cfg, nil
}

// clamp enforces the contractual floors the VM's wire semantics fix: a
// config file can widen these but never narrow them.
func (c *Config) clamp() {
	if c.StackCapacity < minStackCapacity {
		c.StackCapacity = minStackCapacity
	}
	if c.StdinBufferSize < minStdinBuffer {
		c.StdinBufferSize = minStdinBuffer
	}
}
