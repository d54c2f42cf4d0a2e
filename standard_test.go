package canvasbridge

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/designfabric/canvasbridge-go/dispatch"
	"github.com/designfabric/canvasbridge-go/document"
	"github.com/designfabric/canvasbridge-go/progress"
	"github.com/designfabric/canvasbridge-go/wire"
)

type captureSender struct {
	events []wire.ProgressEvent
}

func (c *captureSender) Send(msg interface{}) error {
	c.events = append(c.events, msg.(wire.ProgressEvent))
	return nil
}

func newTestDispatcher(doc *document.Document, sink *captureSender) *dispatch.Dispatcher {
	var reporter *progress.Reporter
	if sink != nil {
		reporter = progress.NewReporter(sink, zerolog.Nop())
	}
	return dispatch.NewDispatcher(NewStandardRegistry(doc), reporter)
}

func requireKind(t *testing.T, err error, kind dispatch.ErrorKind) {
	t.Helper()
	var derr *dispatch.Error
	require.True(t, errors.As(err, &derr), "expected dispatch error, got %v", err)
	assert.Equal(t, kind, derr.Kind)
}

func TestStandardRegistryCoversCommandSet(t *testing.T) {
	r := NewStandardRegistry(document.New("Test"))

	commands := []string{
		CmdGetDocumentInfo, CmdGetSelection, CmdGetNodeInfo, CmdGetNodesInfo,
		CmdGetNodeChildren, CmdReadMyDesign, CmdGetStyles, CmdGetLocalComponents,
		CmdGetInstanceOverrides, CmdGetAnnotations, CmdGetReactions,
		CmdScanTextNodes, CmdScanNodesByTypes,
		CmdCreateRectangle, CmdCreateFrame, CmdCreateText, CmdCloneNode,
		CmdDeleteNode, CmdDeleteMultipleNodes, CmdMoveNode, CmdResizeNode,
		CmdSetFillColor, CmdSetStrokeColor, CmdSetCornerRadius,
		CmdSetTextContent, CmdSetMultipleTextContents,
		CmdSetLayoutMode, CmdSetPadding, CmdSetAxisAlign, CmdSetLayoutSizing,
		CmdSetItemSpacing,
		CmdSetAnnotation, CmdSetMultipleAnnotations,
		CmdSetDefaultConnector, CmdCreateConnections,
		CmdSetInstanceOverrides,
		CmdExportNodeAsImage,
	}
	for _, cmd := range commands {
		assert.True(t, r.Has(cmd), "command %s not registered", cmd)
	}
	assert.Len(t, r.Commands(), len(commands))
}

func TestMissingRequiredParameter(t *testing.T) {
	d := newTestDispatcher(document.New("Test"), nil)

	_, err := d.Dispatch(context.Background(), "req-1", CmdCreateRectangle, map[string]interface{}{
		"x": 0, "y": 0, "height": 100,
	})
	requireKind(t, err, dispatch.ErrMissingParameter)
	assert.Equal(t, "missing required parameter: width", err.Error())
}

func TestUnknownNodeFailsNotFound(t *testing.T) {
	d := newTestDispatcher(document.New("Test"), nil)

	_, err := d.Dispatch(context.Background(), "req-1", CmdGetNodeInfo, map[string]interface{}{
		"nodeId": "9:9",
	})
	requireKind(t, err, dispatch.ErrNotFound)
}

func TestCreateAndQueryFlow(t *testing.T) {
	doc := document.New("Test")
	d := newTestDispatcher(doc, nil)
	ctx := context.Background()

	result, err := d.Dispatch(ctx, "req-1", CmdCreateFrame, map[string]interface{}{
		"x": 0.0, "y": 0.0, "width": 400.0, "height": 300.0, "name": "Card",
		"fillColor": map[string]interface{}{"r": 1.0, "g": 1.0, "b": 1.0},
	})
	require.NoError(t, err)
	frame := result.(document.NodeDetail)
	assert.Equal(t, "Card", frame.Name)
	require.Len(t, frame.Fills, 1)
	assert.Equal(t, float64(1), frame.Fills[0].Color.A)

	_, err = d.Dispatch(ctx, "req-2", CmdCreateText, map[string]interface{}{
		"x": 10.0, "y": 10.0, "text": "Title", "parentId": frame.ID,
	})
	require.NoError(t, err)

	result, err = d.Dispatch(ctx, "req-3", CmdGetNodeChildren, map[string]interface{}{"nodeId": frame.ID})
	require.NoError(t, err)
	children := result.([]document.NodeSummary)
	require.Len(t, children, 1)
	assert.Equal(t, "Title", children[0].Name)

	result, err = d.Dispatch(ctx, "req-4", CmdGetDocumentInfo, nil)
	require.NoError(t, err)
	info := result.(document.DocumentInfo)
	require.Len(t, info.Children, 1)
}

func TestLayoutFlow(t *testing.T) {
	doc := document.New("Test")
	d := newTestDispatcher(doc, nil)
	ctx := context.Background()

	result, err := d.Dispatch(ctx, "req-1", CmdCreateFrame, map[string]interface{}{
		"x": 0.0, "y": 0.0, "width": 200.0, "height": 200.0,
	})
	require.NoError(t, err)
	frameID := result.(document.NodeDetail).ID

	_, err = d.Dispatch(ctx, "req-2", CmdSetLayoutMode, map[string]interface{}{
		"nodeId": frameID, "layoutMode": "VERTICAL",
	})
	require.NoError(t, err)

	_, err = d.Dispatch(ctx, "req-3", CmdSetLayoutMode, map[string]interface{}{
		"nodeId": frameID, "layoutMode": "DIAGONAL",
	})
	requireKind(t, err, dispatch.ErrOperationFailed)

	_, err = d.Dispatch(ctx, "req-4", CmdSetPadding, map[string]interface{}{
		"nodeId": frameID, "paddingTop": 8.0, "paddingLeft": 16.0,
	})
	require.NoError(t, err)

	result, err = d.Dispatch(ctx, "req-5", CmdSetItemSpacing, map[string]interface{}{
		"nodeId": frameID, "itemSpacing": 12.0,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(12), result.(document.NodeDetail).ItemSpacing)
}

func TestScanTextNodesChunkedProgress(t *testing.T) {
	doc := document.New("Test")
	sink := &captureSender{}
	d := newTestDispatcher(doc, sink)
	ctx := context.Background()

	result, err := d.Dispatch(ctx, "req-f", CmdCreateFrame, map[string]interface{}{
		"x": 0.0, "y": 0.0, "width": 400.0, "height": 400.0,
	})
	require.NoError(t, err)
	frameID := result.(document.NodeDetail).ID

	for i := 0; i < 12; i++ {
		_, err := d.Dispatch(ctx, "req-t", CmdCreateText, map[string]interface{}{
			"x": 0.0, "y": float64(i) * 20, "text": "line", "parentId": frameID,
		})
		require.NoError(t, err)
	}

	result, err = d.Dispatch(ctx, "req-scan", CmdScanTextNodes, map[string]interface{}{
		"nodeId": frameID, "useChunking": true, "chunkSize": 5.0,
	})
	require.NoError(t, err)
	out := result.(map[string]interface{})
	assert.Equal(t, true, out["success"])
	assert.Equal(t, 12, out["totalNodes"])
	assert.Equal(t, 3, out["chunks"])

	// started + 3 chunk events + completed
	require.Len(t, sink.events, 5)
	assert.Equal(t, progress.StatusStarted, sink.events[0].Status)
	for i := 1; i <= 3; i++ {
		event := sink.events[i]
		assert.Equal(t, progress.StatusInProgress, event.Status)
		require.NotNil(t, event.CurrentChunk)
		assert.Equal(t, i, *event.CurrentChunk)
		assert.Equal(t, 3, *event.TotalChunks)
		assert.Equal(t, 5, *event.ChunkSize)
		assert.Equal(t, "req-scan", event.CommandID)
		assert.Equal(t, CmdScanTextNodes, event.CommandType)
	}
	last := sink.events[4]
	assert.Equal(t, progress.StatusCompleted, last.Status)
	assert.Equal(t, 100, last.Progress)
	assert.Equal(t, 12, last.ProcessedItems)
}

func TestScanTextNodesUnchunked(t *testing.T) {
	doc := document.New("Test")
	sink := &captureSender{}
	d := newTestDispatcher(doc, sink)
	ctx := context.Background()

	result, err := d.Dispatch(ctx, "req-f", CmdCreateFrame, map[string]interface{}{
		"x": 0.0, "y": 0.0, "width": 100.0, "height": 100.0,
	})
	require.NoError(t, err)
	frameID := result.(document.NodeDetail).ID

	result, err = d.Dispatch(ctx, "req-scan", CmdScanTextNodes, map[string]interface{}{
		"nodeId": frameID,
	})
	require.NoError(t, err)
	out := result.(map[string]interface{})
	assert.Equal(t, true, out["success"])
	assert.Equal(t, 0, out["count"])
	assert.Empty(t, sink.events)
}

func TestSetMultipleTextContents(t *testing.T) {
	doc := document.New("Test")
	sink := &captureSender{}
	d := newTestDispatcher(doc, sink)
	ctx := context.Background()

	frame, err := doc.CreateFrame(document.FrameOptions{
		CreateOptions: document.CreateOptions{Width: 100, Height: 100},
	})
	require.NoError(t, err)

	var items []interface{}
	for i := 0; i < 3; i++ {
		text, err := doc.CreateText(document.TextOptions{
			CreateOptions: document.CreateOptions{ParentID: frame.ID},
			Text:          "old",
		})
		require.NoError(t, err)
		items = append(items, map[string]interface{}{"nodeId": text.ID, "text": "new"})
	}
	items = append(items, map[string]interface{}{"nodeId": "9:9", "text": "orphan"})

	result, err := d.Dispatch(ctx, "req-1", CmdSetMultipleTextContents, map[string]interface{}{
		"nodeId": frame.ID, "text": items,
	})
	require.NoError(t, err)
	out := result.(map[string]interface{})
	assert.Equal(t, false, out["success"])
	assert.Equal(t, 3, out["replacementsApplied"])
	assert.Equal(t, 1, out["replacementsFailed"])
	assert.Equal(t, 4, out["totalReplacements"])

	// One chunk of five: started, in_progress, completed.
	require.Len(t, sink.events, 3)
	assert.Equal(t, progress.StatusStarted, sink.events[0].Status)
	assert.Equal(t, progress.StatusInProgress, sink.events[1].Status)
	assert.Equal(t, progress.StatusCompleted, sink.events[2].Status)
}

func TestSetMultipleAnnotations(t *testing.T) {
	doc := document.New("Test")
	sink := &captureSender{}
	d := newTestDispatcher(doc, sink)
	ctx := context.Background()

	rect, err := doc.CreateRectangle(document.CreateOptions{Width: 10, Height: 10})
	require.NoError(t, err)

	result, err := d.Dispatch(ctx, "req-1", CmdSetMultipleAnnotations, map[string]interface{}{
		"nodeId": "0:1",
		"annotations": []interface{}{
			map[string]interface{}{"nodeId": rect.ID, "labelMarkdown": "check contrast", "categoryId": "cat:accessibility"},
			map[string]interface{}{"nodeId": "9:9", "labelMarkdown": "orphan"},
		},
	})
	require.NoError(t, err)
	out := result.(map[string]interface{})
	assert.Equal(t, false, out["success"])
	assert.Equal(t, 1, out["annotationsApplied"])
	assert.Equal(t, 1, out["annotationsFailed"])

	info, err := doc.Annotations(rect.ID, false)
	require.NoError(t, err)
	require.Len(t, info.Annotations, 1)
}

func TestDeleteMultipleNodes(t *testing.T) {
	doc := document.New("Test")
	d := newTestDispatcher(doc, nil)

	rect, err := doc.CreateRectangle(document.CreateOptions{Width: 10, Height: 10})
	require.NoError(t, err)

	result, err := d.Dispatch(context.Background(), "req-1", CmdDeleteMultipleNodes, map[string]interface{}{
		"nodeIds": []interface{}{rect.ID, "9:9"},
	})
	require.NoError(t, err)
	out := result.(document.DeleteManyResult)
	assert.False(t, out.Success)
	assert.Equal(t, 1, out.DeletedCount)
	assert.Equal(t, 1, out.FailedCount)
}

func TestConnectorCommands(t *testing.T) {
	doc := document.New("Test")
	d := newTestDispatcher(doc, nil)
	ctx := context.Background()

	a, err := doc.CreateRectangle(document.CreateOptions{Width: 10, Height: 10})
	require.NoError(t, err)
	b, err := doc.CreateRectangle(document.CreateOptions{Width: 10, Height: 10})
	require.NoError(t, err)
	connectorID := doc.CreateConnector("Template")

	result, err := d.Dispatch(ctx, "req-1", CmdSetDefaultConnector, map[string]interface{}{
		"connectorId": connectorID,
	})
	require.NoError(t, err)
	assert.Equal(t, true, result.(map[string]interface{})["success"])

	result, err = d.Dispatch(ctx, "req-2", CmdCreateConnections, map[string]interface{}{
		"connections": []interface{}{
			map[string]interface{}{"startNodeId": a.ID, "endNodeId": b.ID, "text": "next"},
		},
	})
	require.NoError(t, err)
	out := result.(map[string]interface{})
	assert.Equal(t, 1, out["count"])
}

func TestExportCommand(t *testing.T) {
	doc := document.New("Test")
	d := newTestDispatcher(doc, nil)

	rect, err := doc.CreateRectangle(document.CreateOptions{Width: 10, Height: 10})
	require.NoError(t, err)

	result, err := d.Dispatch(context.Background(), "req-1", CmdExportNodeAsImage, map[string]interface{}{
		"nodeId": rect.ID, "format": "SVG", "scale": 2.0,
	})
	require.NoError(t, err)
	export := result.(document.ExportInfo)
	assert.Equal(t, "SVG", export.Format)
	assert.Equal(t, "image/svg+xml", export.MimeType)
	assert.Equal(t, float64(2), export.Scale)

	_, err = d.Dispatch(context.Background(), "req-2", CmdExportNodeAsImage, map[string]interface{}{
		"nodeId": rect.ID, "format": "BMP",
	})
	requireKind(t, err, dispatch.ErrOperationFailed)
}
