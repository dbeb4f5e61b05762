package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/tailored-agentic-units/observers/format"
	"github.com/tailored-agentic-units/observers/identity"
	"github.com/tailored-agentic-units/observers/observer"
)

const defaultRegistry = "main"

var (
	ErrUnknownOp       = errors.New("unknown step op")
	ErrUnknownRegistry = errors.New("unknown registry")
)

// Script is a replayable sequence of registry operations.
type Script struct {
	Steps []Step `json:"steps"`
}

// Step is one operation. Owner "" means no owner.
type Step struct {
	Op       string `json:"op"`
	Registry string `json:"registry,omitempty"`
	Owner    string `json:"owner,omitempty"`
	Handler  string `json:"handler,omitempty"`
	As       string `json:"as,omitempty"`
}

func LoadScript(filename string) (*Script, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	var script Script
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	return &script, nil
}

type owner struct {
	Name string
}

type handler struct {
	Name string
}

type registry = observer.Registry[owner, *handler]

// runner replays steps against named registries. Owners and handlers are
// interned by name so repeated names refer to the same reference.
type runner struct {
	registries map[string]*registry
	owners     map[string]*owner
	handlers   map[string]*handler
	format     *format.Formatter
	out        io.Writer
}

func newRunner(cfg *Config, out io.Writer) (*runner, error) {
	reg, err := observer.FromConfig[owner, *handler](&cfg.Registry, identity.NewTable[owner]())
	if err != nil {
		return nil, err
	}
	return &runner{
		registries: map[string]*registry{defaultRegistry: reg},
		owners:     make(map[string]*owner),
		handlers:   make(map[string]*handler),
		format:     format.FromConfig(&cfg.Format),
		out:        out,
	}, nil
}

func (r *runner) run(ctx context.Context, script *Script) error {
	for i, step := range script.Steps {
		if err := r.apply(ctx, step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
	}
	return nil
}

func (r *runner) apply(ctx context.Context, step Step) error {
	name := step.Registry
	if name == "" {
		name = defaultRegistry
	}
	reg, ok := r.registries[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRegistry, name)
	}

	switch step.Op {
	case "add":
		reg.Add(r.owner(step.Owner), r.handler(step.Handler))
		r.printf("add %@ %@:%@ owners=%@", name, ownerName(step.Owner), step.Handler, reg.OwnerCount())
	case "remove":
		removed := reg.Remove(r.owner(step.Owner), r.handler(step.Handler))
		r.printf("remove %@ %@:%@ removed=%@ owners=%@", name, ownerName(step.Owner), step.Handler, removed, reg.OwnerCount())
	case "members":
		r.printf("members %@ [%@]", name, describe(reg.All()))
	case "clone":
		if step.As == "" {
			return errors.New("clone requires \"as\"")
		}
		r.registries[step.As] = reg.Clone()
		r.printf("clone %@ -> %@", name, step.As)
	case "prune":
		r.printf("prune %@ pruned=%@", name, reg.Prune())
	case "notify":
		return observer.Notify(ctx, reg, func(ctx context.Context, m observer.Member[owner, *handler]) error {
			r.printf("notify %@ %@", name, describeMember(m))
			return nil
		})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, step.Op)
	}
	return nil
}

func (r *runner) owner(name string) *owner {
	if name == "" {
		return nil
	}
	o, ok := r.owners[name]
	if !ok {
		o = &owner{Name: name}
		r.owners[name] = o
	}
	return o
}

func (r *runner) handler(name string) *handler {
	h, ok := r.handlers[name]
	if !ok {
		h = &handler{Name: name}
		r.handlers[name] = h
	}
	return h
}

func (r *runner) printf(template string, args ...any) {
	fmt.Fprintln(r.out, r.format.Format(template, args...))
}

func ownerName(name string) string {
	if name == "" {
		return "-"
	}
	return name
}

func describeMember(m observer.Member[owner, *handler]) string {
	o := "-"
	if ref := m.Owner(); ref != nil {
		o = ref.Name
	}
	return o + ":" + m.Handler.Name
}

func describe(members iter.Seq[observer.Member[owner, *handler]]) string {
	var parts []string
	for m := range members {
		parts = append(parts, describeMember(m))
	}
	return strings.Join(parts, " ")
}
