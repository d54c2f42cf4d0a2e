package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"type": "object",
	"properties": {
		"nodeId": { "type": "string" },
		"count": { "type": "number" }
	},
	"required": ["nodeId"]
}`

func echoHandler(ctx context.Context, req *Request) (interface{}, error) {
	return req.Params, nil
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("ping", "", echoHandler))
	err := r.Register("ping", "", echoHandler)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegisterRejectsBadSchema(t *testing.T) {
	r := NewRegistry()
	err := r.Register("bad", `{"type": nope}`, echoHandler)
	assert.Error(t, err)
}

func TestRegisterRejectsNilHandler(t *testing.T) {
	r := NewRegistry()
	assert.Error(t, r.Register("nilh", "", nil))
}

func TestDispatchUnknownCommand(t *testing.T) {
	d := NewDispatcher(NewRegistry(), nil)
	_, err := d.Dispatch(context.Background(), "req-1", "vanish", nil)
	require.Error(t, err)

	var derr *Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, ErrUnknownCommand, derr.Kind)
	assert.Equal(t, "unknown command: vanish", derr.Error())
}

func TestDispatchMissingParameter(t *testing.T) {
	r := NewRegistry()
	r.MustRegister("lookup", testSchema, echoHandler)
	d := NewDispatcher(r, nil)

	_, err := d.Dispatch(context.Background(), "req-1", "lookup", map[string]interface{}{})
	require.Error(t, err)

	var derr *Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, ErrMissingParameter, derr.Kind)
	assert.Equal(t, "nodeId", derr.Parameter)
	assert.Equal(t, "missing required parameter: nodeId", derr.Error())
}

func TestDispatchNilParamsValidateAsEmpty(t *testing.T) {
	r := NewRegistry()
	r.MustRegister("lookup", testSchema, echoHandler)
	d := NewDispatcher(r, nil)

	_, err := d.Dispatch(context.Background(), "req-1", "lookup", nil)
	var derr *Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, ErrMissingParameter, derr.Kind)
}

func TestDispatchTypeViolation(t *testing.T) {
	r := NewRegistry()
	r.MustRegister("lookup", testSchema, echoHandler)
	d := NewDispatcher(r, nil)

	_, err := d.Dispatch(context.Background(), "req-1", "lookup", map[string]interface{}{
		"nodeId": "1:2",
		"count":  "three",
	})
	require.Error(t, err)

	var derr *Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, ErrOperationFailed, derr.Kind)
}

func TestDispatchValidationRunsBeforeHandler(t *testing.T) {
	ran := false
	r := NewRegistry()
	r.MustRegister("mutate", testSchema, func(ctx context.Context, req *Request) (interface{}, error) {
		ran = true
		return nil, nil
	})
	d := NewDispatcher(r, nil)

	_, err := d.Dispatch(context.Background(), "req-1", "mutate", map[string]interface{}{})
	require.Error(t, err)
	assert.False(t, ran)
}

func TestDispatchPassesResultThrough(t *testing.T) {
	r := NewRegistry()
	r.MustRegister("lookup", testSchema, func(ctx context.Context, req *Request) (interface{}, error) {
		return map[string]interface{}{"id": req.Params["nodeId"], "commandId": req.CommandID}, nil
	})
	d := NewDispatcher(r, nil)

	result, err := d.Dispatch(context.Background(), "req-7", "lookup", map[string]interface{}{"nodeId": "1:2"})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"id": "1:2", "commandId": "req-7"}, result)
}

func TestDispatchPropagatesHandlerError(t *testing.T) {
	r := NewRegistry()
	r.MustRegister("lookup", testSchema, func(ctx context.Context, req *Request) (interface{}, error) {
		return nil, NewNotFound("node not found: %s", req.Params["nodeId"])
	})
	d := NewDispatcher(r, nil)

	_, err := d.Dispatch(context.Background(), "req-1", "lookup", map[string]interface{}{"nodeId": "9:9"})
	var derr *Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, ErrNotFound, derr.Kind)
	assert.Equal(t, "node not found: 9:9", derr.Error())
}

func TestNoParameterCommandSkipsValidation(t *testing.T) {
	r := NewRegistry()
	r.MustRegister("ping", "", echoHandler)
	d := NewDispatcher(r, nil)

	result, err := d.Dispatch(context.Background(), "req-1", "ping", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{}, result)
}

func TestCommandsListing(t *testing.T) {
	r := NewRegistry()
	r.MustRegister("a", "", echoHandler)
	r.MustRegister("b", "", echoHandler)
	assert.ElementsMatch(t, []string{"a", "b"}, r.Commands())
	assert.True(t, r.Has("a"))
	assert.False(t, r.Has("c"))
}
