// Package progress emits structured status events for long-running
// commands. Events are informational: the terminal result never depends on
// them, and the reporter neither validates status strings nor clamps the
// progress percentage.
package progress

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/designfabric/canvasbridge-go/wire"
)

// Well-known status values. The enum is open: callers may send anything and
// the reporter forwards it untouched.
const (
	StatusStarted    = "started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

// Reporter constructs and emits progress events on the outbound channel.
type Reporter struct {
	send wire.Sender
	log  zerolog.Logger
	now  func() int64 // millisecond wall clock, swappable in tests
}

// NewReporter creates a reporter bound to an outbound sender.
func NewReporter(send wire.Sender, log zerolog.Logger) *Reporter {
	return &Reporter{
		send: send,
		log:  log,
		now:  func() int64 { return time.Now().UnixMilli() },
	}
}

// Report builds a progress event, stamps the emission timestamp, emits it on
// the channel and writes one diagnostic log line. When the payload is a map
// carrying both currentChunk and totalChunks, these (plus chunkSize) are
// lifted to top-level fields in addition to the nested payload. The
// constructed event is returned for local inspection.
func (r *Reporter) Report(commandID, commandType, status string, progress, totalItems, processedItems int, message string, payload interface{}) wire.ProgressEvent {
	event := wire.ProgressEvent{
		Type:           wire.TypeCommandProgress,
		CommandID:      commandID,
		CommandType:    commandType,
		Status:         status,
		Progress:       progress,
		TotalItems:     totalItems,
		ProcessedItems: processedItems,
		Message:        message,
		Timestamp:      r.now(),
		Payload:        payload,
	}

	if m, ok := payload.(map[string]interface{}); ok {
		current, hasCurrent := intFromPayload(m, "currentChunk")
		total, hasTotal := intFromPayload(m, "totalChunks")
		if hasCurrent && hasTotal {
			event.CurrentChunk = &current
			event.TotalChunks = &total
			if size, hasSize := intFromPayload(m, "chunkSize"); hasSize {
				event.ChunkSize = &size
			}
		}
	}

	if err := r.send.Send(event); err != nil {
		r.log.Error().Err(err).Str("commandId", commandID).Msg("failed to emit progress event")
	}

	r.log.Debug().
		Str("commandId", commandID).
		Str("commandType", commandType).
		Str("status", status).
		Int("progress", progress).
		Int("processed", processedItems).
		Int("total", totalItems).
		Msg(message)

	return event
}

// intFromPayload extracts an integer, handling the numeric type variance of
// decoded JSON and caller-built maps alike.
func intFromPayload(m map[string]interface{}, key string) (int, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
