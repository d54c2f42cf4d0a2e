// Package client is the caller side of the bridge channel. It generates
// request ids, correlates terminal envelopes back to waiting callers, and
// surfaces progress events and unsolicited announcements through callbacks.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/designfabric/canvasbridge-go/wire"
)

// ErrConnectionClosed settles every pending request when the bridge closes
// its outbound channel.
var ErrConnectionClosed = errors.New("client: connection closed")

// CommandError is a command failure reported by the bridge. The message text
// is all the wire carries.
type CommandError struct {
	Command string
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %s", e.Command, e.Message)
}

// Announcement is an unsolicited bridge → client message.
type Announcement struct {
	// Type is init-settings or auto-connect.
	Type string
	// Settings is set for init-settings announcements.
	Settings *wire.Settings
}

// Config assembles a client.
type Config struct {
	// To carries encoded client → bridge messages.
	To chan<- []byte
	// From carries encoded bridge → client messages.
	From <-chan []byte
	// Log receives demux diagnostics.
	Log zerolog.Logger
	// OnProgress, when set, receives every decoded progress event. Optional.
	OnProgress func(wire.ProgressEvent)
	// OnAnnouncement, when set, receives init-settings and auto-connect.
	// Optional.
	OnAnnouncement func(Announcement)
}

type settlement struct {
	result json.RawMessage
	err    error
}

// Client correlates requests with their terminal envelopes. Safe for
// concurrent use; each Execute call waits on its own pending entry.
type Client struct {
	to             chan<- []byte
	log            zerolog.Logger
	onProgress     func(wire.ProgressEvent)
	onAnnouncement func(Announcement)

	mu      sync.Mutex
	pending map[string]chan settlement
	closed  bool

	done chan struct{}
}

// New creates a client and starts its demux loop. The loop runs until the
// bridge closes the From channel; Done reports that.
func New(cfg Config) *Client {
	c := &Client{
		to:             cfg.To,
		log:            cfg.Log,
		onProgress:     cfg.OnProgress,
		onAnnouncement: cfg.OnAnnouncement,
		pending:        make(map[string]chan settlement),
		done:           make(chan struct{}),
	}
	go c.demux(cfg.From)
	return c
}

// Done closes when the bridge has closed its side of the channel.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

func (c *Client) demux(from <-chan []byte) {
	defer close(c.done)
	for data := range from {
		msgType, err := wire.OutboundType(data)
		if err != nil {
			c.log.Warn().Err(err).Msg("skipping malformed bridge message")
			continue
		}
		switch msgType {
		case wire.TypeCommandResult:
			var env struct {
				ID     string          `json:"id"`
				Result json.RawMessage `json:"result"`
			}
			if err := json.Unmarshal(data, &env); err != nil {
				c.log.Warn().Err(err).Msg("skipping malformed result envelope")
				continue
			}
			c.settle(env.ID, settlement{result: env.Result})

		case wire.TypeCommandError:
			var env struct {
				ID    string `json:"id"`
				Error string `json:"error"`
			}
			if err := json.Unmarshal(data, &env); err != nil {
				c.log.Warn().Err(err).Msg("skipping malformed error envelope")
				continue
			}
			c.settle(env.ID, settlement{err: errors.New(env.Error)})

		case wire.TypeCommandProgress:
			if c.onProgress == nil {
				continue
			}
			var event wire.ProgressEvent
			if err := json.Unmarshal(data, &event); err != nil {
				c.log.Warn().Err(err).Msg("skipping malformed progress event")
				continue
			}
			c.onProgress(event)

		case wire.TypeInitSettings:
			if c.onAnnouncement == nil {
				continue
			}
			var env wire.InitSettings
			if err := json.Unmarshal(data, &env); err != nil {
				c.log.Warn().Err(err).Msg("skipping malformed init-settings")
				continue
			}
			settings := env.Settings
			c.onAnnouncement(Announcement{Type: wire.TypeInitSettings, Settings: &settings})

		case wire.TypeAutoConnect:
			if c.onAnnouncement != nil {
				c.onAnnouncement(Announcement{Type: wire.TypeAutoConnect})
			}

		default:
			c.log.Warn().Str("type", msgType).Msg("skipping unexpected bridge message")
		}
	}
	c.failAll()
}

// settle delivers a terminal envelope to its waiter. A second terminal for
// the same id has no waiter left and is logged, never redelivered.
func (c *Client) settle(id string, s settlement) {
	c.mu.Lock()
	ch, ok := c.pending[id]
	delete(c.pending, id)
	c.mu.Unlock()
	if !ok {
		c.log.Warn().Str("id", id).Msg("terminal envelope with no pending request")
		return
	}
	ch <- s
}

// failAll settles every pending request after the channel closes.
func (c *Client) failAll() {
	c.mu.Lock()
	pending := c.pending
	c.pending = make(map[string]chan settlement)
	c.closed = true
	c.mu.Unlock()
	for _, ch := range pending {
		ch <- settlement{err: ErrConnectionClosed}
	}
}

type executeCommand struct {
	Type    string                 `json:"type"`
	ID      string                 `json:"id"`
	Command string                 `json:"command"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

// Execute sends one command and blocks until its terminal envelope arrives.
// Context cancellation abandons the wait; the bridge still runs the command
// to settlement, it just has no listener left.
func (c *Client) Execute(ctx context.Context, command string, params map[string]interface{}) (json.RawMessage, error) {
	id := uuid.NewString()
	ch := make(chan settlement, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrConnectionClosed
	}
	c.pending[id] = ch
	c.mu.Unlock()

	if err := c.send(executeCommand{Type: wire.TypeExecuteCommand, ID: id, Command: command, Params: params}); err != nil {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return nil, err
	}

	select {
	case <-ctx.Done():
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return nil, ctx.Err()
	case s := <-ch:
		if s.err != nil {
			if errors.Is(s.err, ErrConnectionClosed) {
				return nil, s.err
			}
			return nil, &CommandError{Command: command, Message: s.err.Error()}
		}
		return s.result, nil
	}
}

// UpdateSettings asks the bridge to persist a new server port. Fire and
// forget, no acknowledgment exists on the wire.
func (c *Client) UpdateSettings(serverPort int) error {
	return c.send(map[string]interface{}{
		"type":       wire.TypeUpdateSettings,
		"serverPort": serverPort,
	})
}

// Notify asks the host to surface a message to the user. Fire and forget.
func (c *Client) Notify(message string) error {
	return c.send(map[string]interface{}{
		"type":    wire.TypeNotify,
		"message": message,
	})
}

// ClosePlugin asks the bridge to shut down. The bridge finishes in-flight
// commands, then closes its side; Done reports completion.
func (c *Client) ClosePlugin() error {
	return c.send(map[string]interface{}{"type": wire.TypeClosePlugin})
}

func (c *Client) send(msg interface{}) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("client: encode failed: %w", err)
	}
	c.to <- data
	return nil
}
