// Package wire defines every message shape that crosses the bridge channel.
// Inbound messages are decoded strictly (unknown types and missing required
// fields are errors); outbound messages are plain tagged structs built
// through constructors.
package wire

// Inbound message types (client → bridge)
const (
	TypeUpdateSettings = "update-settings"
	TypeNotify         = "notify"
	TypeClosePlugin    = "close-plugin"
	TypeExecuteCommand = "execute-command"
)

// Outbound message types (bridge → client)
const (
	TypeInitSettings    = "init-settings"
	TypeAutoConnect     = "auto-connect"
	TypeCommandResult   = "command-result"
	TypeCommandError    = "command-error"
	TypeCommandProgress = "command_progress"
)

// Inbound is the decoded form of a client → bridge message. Type selects
// which of the remaining fields are meaningful.
type Inbound struct {
	Type string

	// update-settings
	ServerPort int

	// notify
	Message string

	// execute-command
	ID      string
	Command string
	Params  map[string]interface{}
}

// Settings is the wire shape of the persisted settings record.
type Settings struct {
	ServerPort int `json:"serverPort"`
}

// InitSettings is the unsolicited announcement emitted once at startup,
// after the settings load has resolved.
type InitSettings struct {
	Type     string   `json:"type"`
	Settings Settings `json:"settings"`
}

// NewInitSettings creates an init-settings announcement.
func NewInitSettings(serverPort int) *InitSettings {
	return &InitSettings{
		Type:     TypeInitSettings,
		Settings: Settings{ServerPort: serverPort},
	}
}

// AutoConnect is the unsolicited announcement emitted on a host run signal,
// so a connected client can re-establish correlation without polling.
type AutoConnect struct {
	Type string `json:"type"`
}

// NewAutoConnect creates an auto-connect announcement.
func NewAutoConnect() *AutoConnect {
	return &AutoConnect{Type: TypeAutoConnect}
}

// CommandResult is the success envelope for one execute-command request.
type CommandResult struct {
	Type   string      `json:"type"`
	ID     string      `json:"id"`
	Result interface{} `json:"result"`
}

// NewCommandResult creates a command-result envelope correlated by id.
func NewCommandResult(id string, result interface{}) *CommandResult {
	return &CommandResult{Type: TypeCommandResult, ID: id, Result: result}
}

// CommandError is the failure envelope for one execute-command request.
// The message string is the wire's only error discriminator.
type CommandError struct {
	Type  string `json:"type"`
	ID    string `json:"id"`
	Error string `json:"error"`
}

// NewCommandError creates a command-error envelope correlated by id.
func NewCommandError(id string, message string) *CommandError {
	return &CommandError{Type: TypeCommandError, ID: id, Error: message}
}

// ProgressEvent is a non-terminal status message for a long-running command.
// Zero or more precede the terminal envelope carrying the same command id.
// The chunk fields are lifted from the payload when present so simple
// consumers can read chunk position without inspecting the nested payload.
type ProgressEvent struct {
	Type           string      `json:"type"`
	CommandID      string      `json:"commandId"`
	CommandType    string      `json:"commandType"`
	Status         string      `json:"status"`
	Progress       int         `json:"progress"`
	TotalItems     int         `json:"totalItems"`
	ProcessedItems int         `json:"processedItems"`
	Message        string      `json:"message"`
	Timestamp      int64       `json:"timestamp"`
	CurrentChunk   *int        `json:"currentChunk,omitempty"`
	TotalChunks    *int        `json:"totalChunks,omitempty"`
	ChunkSize      *int        `json:"chunkSize,omitempty"`
	Payload        interface{} `json:"payload,omitempty"`
}

// Sender delivers one outbound message to the channel. Implementations
// serialize concurrent sends; delivery is not acknowledged.
type Sender interface {
	Send(msg interface{}) error
}
