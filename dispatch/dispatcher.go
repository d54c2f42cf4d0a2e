package dispatch

import (
	"context"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/designfabric/canvasbridge-go/progress"
)

// Dispatcher validates and executes commands against a registry. One
// dispatcher serves all in-flight commands; per-command state lives in the
// Request.
type Dispatcher struct {
	registry *Registry
	progress *progress.Reporter
}

// NewDispatcher binds a registry to a progress reporter.
func NewDispatcher(registry *Registry, reporter *progress.Reporter) *Dispatcher {
	return &Dispatcher{registry: registry, progress: reporter}
}

// Dispatch routes one command: table lookup, parameter validation, handler
// invocation. The handler's result passes through unmodified; its error
// propagates untouched. Once the handler starts it runs to settlement;
// there is no cancellation or timeout at this layer.
func (d *Dispatcher) Dispatch(ctx context.Context, commandID, command string, params map[string]interface{}) (interface{}, error) {
	e, ok := d.registry.lookup(command)
	if !ok {
		return nil, NewUnknownCommand(command)
	}

	if params == nil {
		params = map[string]interface{}{}
	}

	if e.schema != nil {
		if err := validateParams(e.schema, command, params); err != nil {
			return nil, err
		}
	}

	req := &Request{
		CommandID: commandID,
		Command:   command,
		Params:    params,
		Progress:  d.progress,
	}
	return e.handler(ctx, req)
}

// validateParams runs the compiled schema over the parameter object.
// Violations of "required" become MissingParameter naming the property; any
// other violation is an operation failure carrying the validator's message.
func validateParams(schema *gojsonschema.Schema, command string, params map[string]interface{}) error {
	result, err := schema.Validate(gojsonschema.NewGoLoader(params))
	if err != nil {
		return NewOperationFailed("parameter validation failed for %s: %v", command, err)
	}
	if result.Valid() {
		return nil
	}

	var details []string
	for _, desc := range result.Errors() {
		if desc.Type() == "required" {
			if prop, ok := desc.Details()["property"].(string); ok {
				return NewMissingParameter(command, prop)
			}
		}
		details = append(details, desc.String())
	}
	return NewOperationFailed("invalid parameters for %s: %s", command, strings.Join(details, "; "))
}
