package wire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeExecuteCommand(t *testing.T) {
	msg, err := DecodeInbound([]byte(`{
		"type": "execute-command",
		"id": "req-1",
		"command": "get_node_info",
		"params": {"nodeId": "1:2"}
	}`))
	require.NoError(t, err)
	assert.Equal(t, TypeExecuteCommand, msg.Type)
	assert.Equal(t, "req-1", msg.ID)
	assert.Equal(t, "get_node_info", msg.Command)
	assert.Equal(t, "1:2", msg.Params["nodeId"])
}

func TestDecodeExecuteCommandNilParams(t *testing.T) {
	msg, err := DecodeInbound([]byte(`{"type":"execute-command","id":"req-1","command":"get_selection"}`))
	require.NoError(t, err)
	assert.Nil(t, msg.Params)
}

func TestDecodeExecuteCommandMissingFields(t *testing.T) {
	_, err := DecodeInbound([]byte(`{"type":"execute-command","command":"get_selection"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing id")

	_, err = DecodeInbound([]byte(`{"type":"execute-command","id":"req-1"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing command")
}

func TestDecodeUpdateSettings(t *testing.T) {
	msg, err := DecodeInbound([]byte(`{"type":"update-settings","serverPort":4000}`))
	require.NoError(t, err)
	assert.Equal(t, 4000, msg.ServerPort)

	_, err = DecodeInbound([]byte(`{"type":"update-settings"}`))
	assert.Error(t, err)

	_, err = DecodeInbound([]byte(`{"type":"update-settings","serverPort":0}`))
	assert.Error(t, err)

	_, err = DecodeInbound([]byte(`{"type":"update-settings","serverPort":-1}`))
	assert.Error(t, err)
}

func TestDecodeNotify(t *testing.T) {
	msg, err := DecodeInbound([]byte(`{"type":"notify","message":"saved"}`))
	require.NoError(t, err)
	assert.Equal(t, "saved", msg.Message)

	_, err = DecodeInbound([]byte(`{"type":"notify"}`))
	assert.Error(t, err)

	_, err = DecodeInbound([]byte(`{"type":"notify","message":""}`))
	assert.Error(t, err)
}

func TestDecodeClosePlugin(t *testing.T) {
	msg, err := DecodeInbound([]byte(`{"type":"close-plugin"}`))
	require.NoError(t, err)
	assert.Equal(t, TypeClosePlugin, msg.Type)
}

func TestDecodeUnknownType(t *testing.T) {
	_, err := DecodeInbound([]byte(`{"type":"reboot"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown message type: reboot")
}

func TestDecodeInvalidJSON(t *testing.T) {
	_, err := DecodeInbound([]byte(`{nope`))
	assert.Error(t, err)

	_, err = DecodeInbound([]byte(`{}`))
	assert.Error(t, err)
}

func TestProgressEventChunkFieldsOmitted(t *testing.T) {
	data, err := EncodeOutbound(ProgressEvent{
		Type:      TypeCommandProgress,
		CommandID: "req-1",
		Status:    "started",
	})
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.NotContains(t, raw, "currentChunk")
	assert.NotContains(t, raw, "totalChunks")
	assert.NotContains(t, raw, "chunkSize")
	assert.NotContains(t, raw, "payload")
}

func TestProgressEventChunkFieldsPresent(t *testing.T) {
	current, total, size := 2, 4, 10
	data, err := EncodeOutbound(ProgressEvent{
		Type:         TypeCommandProgress,
		CommandID:    "req-1",
		Status:       "in_progress",
		CurrentChunk: &current,
		TotalChunks:  &total,
		ChunkSize:    &size,
	})
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.EqualValues(t, 2, raw["currentChunk"])
	assert.EqualValues(t, 4, raw["totalChunks"])
	assert.EqualValues(t, 10, raw["chunkSize"])
}

func TestOutboundType(t *testing.T) {
	data, err := EncodeOutbound(NewCommandResult("req-1", map[string]string{"ok": "yes"}))
	require.NoError(t, err)

	msgType, err := OutboundType(data)
	require.NoError(t, err)
	assert.Equal(t, TypeCommandResult, msgType)

	_, err = OutboundType([]byte(`{}`))
	assert.Error(t, err)
}

func TestOutboundConstructors(t *testing.T) {
	init := NewInitSettings(3055)
	assert.Equal(t, TypeInitSettings, init.Type)
	assert.Equal(t, 3055, init.Settings.ServerPort)

	assert.Equal(t, TypeAutoConnect, NewAutoConnect().Type)

	errEnv := NewCommandError("req-9", "node not found: 9:9")
	assert.Equal(t, TypeCommandError, errEnv.Type)
	assert.Equal(t, "req-9", errEnv.ID)
	assert.Equal(t, "node not found: 9:9", errEnv.Error)
}
