package observer

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tailored-agentic-units/observers/identity"
	"github.com/tailored-agentic-units/observers/observability"
)

const defaultObserver = "noop"

// Config holds registry construction parameters.
type Config struct {
	Observer string `json:"observer,omitempty"` // name resolved via observability.GetObserver
}

// DefaultConfig returns a Config that discards registry events.
func DefaultConfig() Config {
	return Config{
		Observer: defaultObserver,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Observer != "" {
		c.Observer = source.Observer
	}
}

// LoadConfig reads a JSON config file and merges it over the defaults.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}

// FromConfig creates an empty Registry whose observer is looked up by name.
// A nil cfg uses DefaultConfig.
func FromConfig[T any, H comparable](cfg *Config, alloc identity.Allocator[T]) (*Registry[T, H], error) {
	resolved := DefaultConfig()
	if cfg != nil {
		resolved.Merge(cfg)
	}

	obs, err := observability.GetObserver(resolved.Observer)
	if err != nil {
		return nil, fmt.Errorf("registry observer: %w (available: %s)", err, strings.Join(observability.ObserverNames(), ", "))
	}
	return New[T, H](alloc, obs), nil
}
