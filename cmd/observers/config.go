package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/tailored-agentic-units/observers/format"
	"github.com/tailored-agentic-units/observers/observability"
	"github.com/tailored-agentic-units/observers/observer"
)

// Config composes the registry and formatter sections.
type Config struct {
	Registry observer.Config `json:"registry"`
	Format   format.Config   `json:"format"`
}

const verboseObserver = "verbose"

// enableVerbose routes registry events to logger in addition to the
// configured observer, and points cfg at the combined observer.
func enableVerbose(cfg *Config, logger *slog.Logger) error {
	if cfg.Registry.Observer == "slog" {
		return nil
	}

	configured, err := observability.GetObserver(cfg.Registry.Observer)
	if err != nil {
		return fmt.Errorf("%w (available: %s)", err, strings.Join(observability.ObserverNames(), ", "))
	}

	observability.RegisterObserver(verboseObserver, observability.NewMultiObserver(
		configured,
		observability.NewSlogObserver(logger),
	))
	cfg.Registry.Observer = verboseObserver
	return nil
}

func DefaultConfig() Config {
	return Config{
		Registry: observer.DefaultConfig(),
		Format:   format.DefaultConfig(),
	}
}

func (c *Config) Merge(source *Config) {
	c.Registry.Merge(&source.Registry)
	c.Format.Merge(&source.Format)
}

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
