package dispatch

import "fmt"

// ErrorKind discriminates dispatch failures.
type ErrorKind int

const (
	ErrUnknownCommand ErrorKind = iota
	ErrMissingParameter
	ErrNotFound
	ErrOperationFailed
)

// Error is the dispatch failure type. The wire format carries only the
// message string, so Error() must stay human-readable and self-contained.
type Error struct {
	Kind      ErrorKind
	Command   string
	Parameter string
	Message   string
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrUnknownCommand:
		return fmt.Sprintf("unknown command: %s", e.Command)
	case ErrMissingParameter:
		return fmt.Sprintf("missing required parameter: %s", e.Parameter)
	case ErrNotFound:
		return e.Message
	case ErrOperationFailed:
		return e.Message
	default:
		return e.Message
	}
}

// NewUnknownCommand reports a command absent from the registry table.
func NewUnknownCommand(command string) *Error {
	return &Error{Kind: ErrUnknownCommand, Command: command}
}

// NewMissingParameter reports a required parameter absent from the request,
// detected before the handler runs.
func NewMissingParameter(command, parameter string) *Error {
	return &Error{Kind: ErrMissingParameter, Command: command, Parameter: parameter}
}

// NewNotFound reports an entity lookup that matched nothing. Handlers must
// fail this way rather than resolving with an empty result: the caller
// cannot tell "found nothing" from "found an empty thing".
func NewNotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewOperationFailed reports a host-side rejection of the operation.
func NewOperationFailed(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrOperationFailed, Message: fmt.Sprintf(format, args...)}
}
