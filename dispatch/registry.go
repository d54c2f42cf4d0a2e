// Package dispatch routes command names to handlers through a closed
// registry table, validating per-command parameter schemas at the boundary
// before any handler side effect.
package dispatch

import (
	"context"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/designfabric/canvasbridge-go/progress"
)

// Request carries one command invocation into a handler.
type Request struct {
	// CommandID is the caller-chosen correlation id, passed through for
	// progress tagging. The registry does not enforce uniqueness.
	CommandID string
	// Command is the registered command name.
	Command string
	// Params is the decoded parameter object; never nil when the handler
	// runs (a nil inbound params decodes as empty).
	Params map[string]interface{}
	// Progress reports status for long-running handlers. May emit zero or
	// more events before the handler settles.
	Progress *progress.Reporter
}

// HandlerFunc executes one command against the document host. The returned
// value passes through dispatch unmodified; a returned error propagates as
// the dispatch failure.
type HandlerFunc func(ctx context.Context, req *Request) (interface{}, error)

type entry struct {
	schema  *gojsonschema.Schema // nil when the command takes no parameters
	handler HandlerFunc
}

// Registry is the closed command table. It is populated once at build time;
// there is no dynamic registration after construction.
type Registry struct {
	entries map[string]*entry
}

// NewRegistry creates an empty table.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Register adds a command with an optional parameter schema (JSON Schema
// document; empty string means the command takes no parameters). Fails on
// duplicate names and on schemas that do not compile.
func (r *Registry) Register(command, paramSchema string, handler HandlerFunc) error {
	if _, exists := r.entries[command]; exists {
		return fmt.Errorf("command already registered: %s", command)
	}
	if handler == nil {
		return fmt.Errorf("command %s has nil handler", command)
	}

	e := &entry{handler: handler}
	if paramSchema != "" {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(paramSchema))
		if err != nil {
			return fmt.Errorf("command %s has invalid parameter schema: %w", command, err)
		}
		e.schema = schema
	}

	r.entries[command] = e
	return nil
}

// MustRegister is Register for build-time tables, where a bad entry is a
// programming error.
func (r *Registry) MustRegister(command, paramSchema string, handler HandlerFunc) {
	if err := r.Register(command, paramSchema, handler); err != nil {
		panic(err)
	}
}

// Commands returns the registered command names, for capability listings and
// completeness checks.
func (r *Registry) Commands() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	return names
}

// Has reports whether a command is in the table.
func (r *Registry) Has(command string) bool {
	_, ok := r.entries[command]
	return ok
}

func (r *Registry) lookup(command string) (*entry, bool) {
	e, ok := r.entries[command]
	return e, ok
}
