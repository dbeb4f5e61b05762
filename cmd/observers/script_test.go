package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tailored-agentic-units/observers/observability"
)

func runScript(t *testing.T, script *Script) (string, error) {
	t.Helper()
	cfg := DefaultConfig()
	var out bytes.Buffer
	r, err := newRunner(&cfg, &out)
	if err != nil {
		t.Fatalf("newRunner() error = %v", err)
	}
	err = r.run(context.Background(), script)
	return out.String(), err
}

func TestRunner_CloneScenario(t *testing.T) {
	out, err := runScript(t, &Script{Steps: []Step{
		{Op: "add", Owner: "X", Handler: "f"},
		{Op: "add", Owner: "Y", Handler: "h"},
		{Op: "clone", As: "c"},
		{Op: "remove", Owner: "X", Handler: "f"},
		{Op: "members"},
		{Op: "members", Registry: "c"},
	}})
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	want := strings.Join([]string{
		"add main X:f owners=1",
		"add main Y:h owners=2",
		"clone main -> c",
		"remove main X:f removed=true owners=1",
		"members main [Y:h]",
		"members c [X:f Y:h]",
		"",
	}, "\n")
	if out != want {
		t.Errorf("output:\n%s\nwant:\n%s", out, want)
	}
}

func TestRunner_NoOwnerAndNotify(t *testing.T) {
	out, err := runScript(t, &Script{Steps: []Step{
		{Op: "add", Handler: "f"},
		{Op: "add", Owner: "X", Handler: "g"},
		{Op: "notify"},
		{Op: "remove", Owner: "X", Handler: "missing"},
	}})
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	for _, line := range []string{
		"add main -:f owners=1",
		"notify main -:f",
		"notify main X:g",
		"remove main X:missing removed=false owners=2",
	} {
		if !strings.Contains(out, line+"\n") {
			t.Errorf("output missing %q:\n%s", line, out)
		}
	}
}

func TestRunner_Errors(t *testing.T) {
	tests := []struct {
		name string
		step Step
		want error
	}{
		{name: "unknown op", step: Step{Op: "explode"}, want: ErrUnknownOp},
		{name: "unknown registry", step: Step{Op: "members", Registry: "nope"}, want: ErrUnknownRegistry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runScript(t, &Script{Steps: []Step{tt.step}})
			if !errors.Is(err, tt.want) {
				t.Errorf("run() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := runScript(t, &Script{Steps: []Step{{Op: "clone"}}}); err == nil {
		t.Error("clone without target name should fail")
	}
}

func TestLoadScriptAndConfig(t *testing.T) {
	dir := t.TempDir()

	scriptPath := filepath.Join(dir, "script.json")
	if err := os.WriteFile(scriptPath, []byte(`{"steps":[{"op":"add","owner":"X","handler":"f"}]}`), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	script, err := LoadScript(scriptPath)
	if err != nil {
		t.Fatalf("LoadScript() error = %v", err)
	}
	if len(script.Steps) != 1 || script.Steps[0].Owner != "X" {
		t.Errorf("LoadScript() = %+v", script)
	}

	configPath := filepath.Join(dir, "config.json")
	if err := os.WriteFile(configPath, []byte(`{"format":{"locale":"fr"}}`), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Format.Locale != "fr" {
		t.Errorf("Format.Locale = %q, want fr", cfg.Format.Locale)
	}
	if cfg.Registry.Observer != "noop" {
		t.Errorf("Registry.Observer = %q, want noop default", cfg.Registry.Observer)
	}
}

type captureObserver struct {
	events []observability.Event
}

func (c *captureObserver) OnEvent(ctx context.Context, event observability.Event) {
	c.events = append(c.events, event)
}

func TestEnableVerbose_KeepsConfiguredObserver(t *testing.T) {
	capture := &captureObserver{}
	observability.RegisterObserver("test-configured", capture)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := DefaultConfig()
	cfg.Registry.Observer = "test-configured"
	if err := enableVerbose(&cfg, logger); err != nil {
		t.Fatalf("enableVerbose() error = %v", err)
	}

	var out bytes.Buffer
	r, err := newRunner(&cfg, &out)
	if err != nil {
		t.Fatalf("newRunner() error = %v", err)
	}
	if err := r.run(context.Background(), &Script{Steps: []Step{{Op: "add", Owner: "X", Handler: "f"}}}); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if len(capture.events) == 0 {
		t.Error("configured observer received no events")
	}
	if !strings.Contains(buf.String(), "observer.add") {
		t.Errorf("verbose log missing observer.add: %q", buf.String())
	}
}

func TestEnableVerbose_UnknownObserver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Registry.Observer = "missing"

	err := enableVerbose(&cfg, slog.Default())
	if !errors.Is(err, observability.ErrUnknownObserver) {
		t.Fatalf("enableVerbose() error = %v, want ErrUnknownObserver", err)
	}
	if !strings.Contains(err.Error(), "noop") {
		t.Errorf("error %q does not list available observers", err)
	}
}
