package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/tailored-agentic-units/observers/observability"
)

func main() {
	var (
		configFile = flag.String("config", "", "Path to config JSON file")
		scriptFile = flag.String("script", "", "Path to scenario JSON file (required)")
		locale     = flag.String("locale", "", "Output locale (overrides config)")
		verbose    = flag.Bool("verbose", false, "Log registry events to stderr")
	)
	flag.Parse()

	if *scriptFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: observers -script <file> [-config <file>]")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "Registry observers: %s\n", strings.Join(observability.ObserverNames(), ", "))
		os.Exit(1)
	}

	cfg := DefaultConfig()
	if *configFile != "" {
		loaded, err := LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = *loaded
	}
	if *locale != "" {
		cfg.Format.Locale = *locale
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	observability.RegisterObserver("slog", observability.NewSlogObserver(logger))

	if *verbose {
		if err := enableVerbose(&cfg, logger); err != nil {
			log.Fatalf("Failed to enable verbose logging: %v", err)
		}
	}

	script, err := LoadScript(*scriptFile)
	if err != nil {
		log.Fatalf("Failed to load script: %v", err)
	}

	r, err := newRunner(&cfg, os.Stdout)
	if err != nil {
		log.Fatalf("Failed to create registry: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := r.run(ctx, script); err != nil {
		log.Fatalf("Scenario failed: %v", err)
	}
}
