// Package config holds the run configuration: name filters, emitted-text
// naming and the target platform list.
package config

import (
	"os"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Config is the YAML run configuration. Every field has a default, so an
// absent file or a partial one is fine.
type Config struct {
	// Whitelist holds the name fragments that qualify a class-less symbol
	// for the shared free-standing bucket. Everything else class-less is
	// discarded.
	Whitelist []string `yaml:"whitelist"`

	// Blacklist holds name fragments of dump noise dropped before model
	// building (compiler thunks, CRT internals).
	Blacklist []string `yaml:"blacklist"`

	// Namespace and GuardPrefix are injected verbatim into emitted text.
	Namespace   string `yaml:"namespace"`
	GuardPrefix string `yaml:"guard_prefix"`

	// Platforms names the targets the free-standing address files are
	// emitted for, one file pair each.
	Platforms []string `yaml:"platforms"`
}

func Default() Config {
	return Config{
		Whitelist: []string{
			"Create", "Init", "Startup", "Shutdown", "Main", "Alloc", "Free",
		},
		Blacklist: []string{
			"__scalar_deleting_destructor",
			"__vecDelDtor",
			"_vftable",
			"`",
		},
		Namespace:   "Binding",
		GuardPrefix: "BINDING",
		Platforms:   []string{"Win32"},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
