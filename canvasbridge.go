// Package canvasbridge binds a design-tool document model to a command
// channel: an automation client sends JSON command messages, the bridge
// dispatches them against the document and answers with correlated result or
// error envelopes plus progress events for long-running commands.
//
// The root package holds the command table. Subpackages carry the moving
// parts: wire (message shapes), settings (persisted configuration), progress
// (status events), dispatch (routing and validation), document (the
// in-memory host stand-in), bridge (the channel adapter) and client (the
// caller side).
package canvasbridge

import (
	"github.com/rs/zerolog"

	"github.com/designfabric/canvasbridge-go/bridge"
	"github.com/designfabric/canvasbridge-go/document"
	"github.com/designfabric/canvasbridge-go/settings"
)

// NewBridge assembles the standard runtime: the full command table over one
// document, settings persisted in kv, messages flowing over in and out.
func NewBridge(doc *document.Document, kv settings.KV, in <-chan []byte, out chan<- []byte, log zerolog.Logger) *bridge.Adapter {
	return bridge.New(bridge.Config{
		In:       in,
		Out:      out,
		Registry: NewStandardRegistry(doc),
		Store:    settings.NewStore(kv, log),
		Log:      log,
	})
}
