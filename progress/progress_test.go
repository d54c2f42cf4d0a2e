package progress

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/designfabric/canvasbridge-go/wire"
)

type captureSender struct {
	events []wire.ProgressEvent
}

func (c *captureSender) Send(msg interface{}) error {
	c.events = append(c.events, msg.(wire.ProgressEvent))
	return nil
}

func newTestReporter(sink *captureSender) *Reporter {
	r := NewReporter(sink, zerolog.Nop())
	r.now = func() int64 { return 1700000000000 }
	return r
}

func TestReportEmitsEvent(t *testing.T) {
	sink := &captureSender{}
	r := newTestReporter(sink)

	event := r.Report("req-1", "scan_text_nodes", StatusStarted, 0, 20, 0, "starting", nil)

	require.Len(t, sink.events, 1)
	assert.Equal(t, event, sink.events[0])
	assert.Equal(t, wire.TypeCommandProgress, event.Type)
	assert.Equal(t, "req-1", event.CommandID)
	assert.Equal(t, "scan_text_nodes", event.CommandType)
	assert.Equal(t, StatusStarted, event.Status)
	assert.Equal(t, int64(1700000000000), event.Timestamp)
	assert.Nil(t, event.CurrentChunk)
}

func TestReportLiftsChunkMetadata(t *testing.T) {
	sink := &captureSender{}
	r := newTestReporter(sink)

	payload := map[string]interface{}{
		"currentChunk": 2,
		"totalChunks":  4,
		"chunkSize":    10,
		"textNodes":    []string{"1:2"},
	}
	event := r.Report("req-1", "scan_text_nodes", StatusInProgress, 50, 40, 20, "chunk", payload)

	require.NotNil(t, event.CurrentChunk)
	require.NotNil(t, event.TotalChunks)
	require.NotNil(t, event.ChunkSize)
	assert.Equal(t, 2, *event.CurrentChunk)
	assert.Equal(t, 4, *event.TotalChunks)
	assert.Equal(t, 10, *event.ChunkSize)
	assert.Equal(t, payload, event.Payload)
}

func TestReportLiftsFloatChunkMetadata(t *testing.T) {
	// Payloads decoded from JSON carry float64 numbers.
	sink := &captureSender{}
	r := newTestReporter(sink)

	event := r.Report("req-1", "scan_text_nodes", StatusInProgress, 25, 0, 0, "chunk", map[string]interface{}{
		"currentChunk": float64(1),
		"totalChunks":  float64(3),
	})

	require.NotNil(t, event.CurrentChunk)
	assert.Equal(t, 1, *event.CurrentChunk)
	assert.Equal(t, 3, *event.TotalChunks)
	assert.Nil(t, event.ChunkSize)
}

func TestReportNoLiftWithPartialMetadata(t *testing.T) {
	sink := &captureSender{}
	r := newTestReporter(sink)

	event := r.Report("req-1", "scan_text_nodes", StatusInProgress, 25, 0, 0, "chunk", map[string]interface{}{
		"currentChunk": 1,
	})

	assert.Nil(t, event.CurrentChunk)
	assert.Nil(t, event.TotalChunks)
	assert.Nil(t, event.ChunkSize)
}

func TestReportForwardsStatusUnvalidated(t *testing.T) {
	sink := &captureSender{}
	r := newTestReporter(sink)

	event := r.Report("req-1", "custom_op", "paused", 150, 0, 0, "odd", nil)
	assert.Equal(t, "paused", event.Status)
	assert.Equal(t, 150, event.Progress)
}
