package canvasbridge

import (
	"context"

	"github.com/designfabric/canvasbridge-go/dispatch"
	"github.com/designfabric/canvasbridge-go/document"
)

// NewStandardRegistry builds the full command table against one document.
// The table is closed; duplicate or malformed entries are programming errors
// and panic at construction.
func NewStandardRegistry(doc *document.Document) *dispatch.Registry {
	r := dispatch.NewRegistry()

	// Queries
	r.MustRegister(CmdGetDocumentInfo, "", func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		return doc.Info(), nil
	})
	r.MustRegister(CmdGetSelection, "", func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		return doc.Selection(), nil
	})
	r.MustRegister(CmdGetNodeInfo, schemaNodeID, func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		return doc.NodeInfo(strParam(req.Params, "nodeId"))
	})
	r.MustRegister(CmdGetNodesInfo, schemaNodeIDs, func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		return doc.NodesInfo(strSlice(req.Params, "nodeIds"))
	})
	r.MustRegister(CmdGetNodeChildren, schemaNodeID, func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		return doc.NodeChildren(strParam(req.Params, "nodeId"))
	})
	r.MustRegister(CmdReadMyDesign, "", func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		return doc.ReadMyDesign(), nil
	})
	r.MustRegister(CmdGetStyles, "", func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		return doc.Styles(), nil
	})
	r.MustRegister(CmdGetLocalComponents, "", func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		return doc.LocalComponents(), nil
	})
	r.MustRegister(CmdGetInstanceOverrides, schemaGetInstanceOverrides, func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		return doc.InstanceOverrides(strParam(req.Params, "instanceNodeId"))
	})
	r.MustRegister(CmdGetAnnotations, schemaGetAnnotations, func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		return doc.Annotations(strParam(req.Params, "nodeId"), boolParam(req.Params, "includeCategories"))
	})
	r.MustRegister(CmdGetReactions, schemaNodeIDs, func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		return doc.NodeReactionsFor(strSlice(req.Params, "nodeIds"))
	})
	r.MustRegister(CmdScanTextNodes, schemaScanTextNodes, handleScanTextNodes(doc))
	r.MustRegister(CmdScanNodesByTypes, schemaScanNodesByTypes, func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		hits, err := doc.ScanNodesByTypes(strParam(req.Params, "nodeId"), strSlice(req.Params, "types"))
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"success":       true,
			"count":         len(hits),
			"matchingNodes": hits,
			"searchedTypes": strSlice(req.Params, "types"),
		}, nil
	})

	// Creation and structure
	r.MustRegister(CmdCreateRectangle, schemaCreateRectangle, func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		return doc.CreateRectangle(createOptions(req.Params))
	})
	r.MustRegister(CmdCreateFrame, schemaCreateFrame, func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		opts := document.FrameOptions{CreateOptions: createOptions(req.Params)}
		if c, ok := colorParam(req.Params, "fillColor"); ok {
			opts.FillColor = &c
		}
		if c, ok := colorParam(req.Params, "strokeColor"); ok {
			opts.StrokeColor = &c
			opts.StrokeWeight = floatOrDefault(req.Params, "strokeWeight", 1)
		}
		return doc.CreateFrame(opts)
	})
	r.MustRegister(CmdCreateText, schemaCreateText, func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		opts := document.TextOptions{
			CreateOptions: createOptions(req.Params),
			Text:          strParam(req.Params, "text"),
			FontSize:      floatOrDefault(req.Params, "fontSize", 14),
			FontWeight:    floatOrDefault(req.Params, "fontWeight", 400),
		}
		if c, ok := colorParam(req.Params, "fontColor"); ok {
			opts.FontColor = &c
		}
		return doc.CreateText(opts)
	})
	r.MustRegister(CmdCloneNode, schemaCloneNode, func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		return doc.CloneNode(strParam(req.Params, "nodeId"), optFloat(req.Params, "x"), optFloat(req.Params, "y"))
	})
	r.MustRegister(CmdDeleteNode, schemaNodeID, func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		return doc.DeleteNode(strParam(req.Params, "nodeId"))
	})
	r.MustRegister(CmdDeleteMultipleNodes, schemaNodeIDs, func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		return doc.DeleteNodes(strSlice(req.Params, "nodeIds")), nil
	})
	r.MustRegister(CmdMoveNode, schemaMoveNode, func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		x, _ := floatParam(req.Params, "x")
		y, _ := floatParam(req.Params, "y")
		return doc.MoveNode(strParam(req.Params, "nodeId"), x, y)
	})
	r.MustRegister(CmdResizeNode, schemaResizeNode, func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		w, _ := floatParam(req.Params, "width")
		h, _ := floatParam(req.Params, "height")
		return doc.ResizeNode(strParam(req.Params, "nodeId"), w, h)
	})

	// Styling
	r.MustRegister(CmdSetFillColor, schemaSetFillColor, func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		c, _ := colorParam(req.Params, "color")
		return doc.SetFillColor(strParam(req.Params, "nodeId"), c)
	})
	r.MustRegister(CmdSetStrokeColor, schemaSetStrokeColor, func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		c, _ := colorParam(req.Params, "color")
		return doc.SetStrokeColor(strParam(req.Params, "nodeId"), c, optFloat(req.Params, "weight"))
	})
	r.MustRegister(CmdSetCornerRadius, schemaSetCornerRadius, func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		radius, _ := floatParam(req.Params, "radius")
		var corners *[4]bool
		if raw, ok := req.Params["corners"].([]interface{}); ok && len(raw) == 4 {
			var flags [4]bool
			for i, item := range raw {
				b, _ := item.(bool)
				flags[i] = b
			}
			corners = &flags
		}
		return doc.SetCornerRadius(strParam(req.Params, "nodeId"), radius, corners)
	})

	// Text
	r.MustRegister(CmdSetTextContent, schemaSetTextContent, func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		return doc.SetTextContent(strParam(req.Params, "nodeId"), strParam(req.Params, "text"))
	})
	r.MustRegister(CmdSetMultipleTextContents, schemaSetMultipleTextContents, handleSetMultipleTextContents(doc))

	// Auto-layout
	r.MustRegister(CmdSetLayoutMode, schemaSetLayoutMode, func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		return doc.SetLayoutMode(strParam(req.Params, "nodeId"), strParam(req.Params, "layoutMode"), boolParam(req.Params, "layoutWrap"))
	})
	r.MustRegister(CmdSetPadding, schemaSetPadding, func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		return doc.SetPadding(strParam(req.Params, "nodeId"), document.Padding{
			Top:    optFloat(req.Params, "paddingTop"),
			Right:  optFloat(req.Params, "paddingRight"),
			Bottom: optFloat(req.Params, "paddingBottom"),
			Left:   optFloat(req.Params, "paddingLeft"),
		})
	})
	r.MustRegister(CmdSetAxisAlign, schemaSetAxisAlign, func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		return doc.SetAxisAlign(strParam(req.Params, "nodeId"),
			strParam(req.Params, "primaryAxisAlignItems"),
			strParam(req.Params, "counterAxisAlignItems"))
	})
	r.MustRegister(CmdSetLayoutSizing, schemaSetLayoutSizing, func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		return doc.SetLayoutSizing(strParam(req.Params, "nodeId"),
			strParam(req.Params, "layoutSizingHorizontal"),
			strParam(req.Params, "layoutSizingVertical"))
	})
	r.MustRegister(CmdSetItemSpacing, schemaSetItemSpacing, func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		spacing, _ := floatParam(req.Params, "itemSpacing")
		return doc.SetItemSpacing(strParam(req.Params, "nodeId"), spacing)
	})

	// Annotations
	r.MustRegister(CmdSetAnnotation, schemaSetAnnotation, func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		return doc.SetAnnotation(
			strParam(req.Params, "nodeId"),
			strParam(req.Params, "labelMarkdown"),
			strParam(req.Params, "categoryId"),
			annotationProperties(req.Params))
	})
	r.MustRegister(CmdSetMultipleAnnotations, schemaSetMultipleAnnotations, handleSetMultipleAnnotations(doc))

	// Prototyping and connectors
	r.MustRegister(CmdSetDefaultConnector, schemaSetDefaultConnector, func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		id, err := doc.SetDefaultConnector(strParam(req.Params, "connectorId"))
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"success": true, "connectorId": id}, nil
	})
	r.MustRegister(CmdCreateConnections, schemaCreateConnections, func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		var specs []document.ConnectionSpec
		for _, item := range mapSlice(req.Params, "connections") {
			specs = append(specs, document.ConnectionSpec{
				StartNodeID: strParam(item, "startNodeId"),
				EndNodeID:   strParam(item, "endNodeId"),
				Text:        strParam(item, "text"),
			})
		}
		results, err := doc.CreateConnections(specs)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"success": true, "count": len(results), "connections": results}, nil
	})

	// Components
	r.MustRegister(CmdSetInstanceOverrides, schemaSetInstanceOverrides, func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		return doc.SetInstanceOverrides(
			strParam(req.Params, "sourceInstanceId"),
			strSlice(req.Params, "targetNodeIds"))
	})

	// Export
	r.MustRegister(CmdExportNodeAsImage, schemaExportNodeAsImage, func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		return doc.ExportNodeAsImage(
			strParam(req.Params, "nodeId"),
			strParam(req.Params, "format"),
			floatOrDefault(req.Params, "scale", 1))
	})

	return r
}

func createOptions(params map[string]interface{}) document.CreateOptions {
	return document.CreateOptions{
		X:        floatOrDefault(params, "x", 0),
		Y:        floatOrDefault(params, "y", 0),
		Width:    floatOrDefault(params, "width", 100),
		Height:   floatOrDefault(params, "height", 100),
		Name:     strParam(params, "name"),
		ParentID: strParam(params, "parentId"),
	}
}

func annotationProperties(params map[string]interface{}) []document.AnnotationProperty {
	var props []document.AnnotationProperty
	for _, item := range mapSlice(params, "properties") {
		if t := strParam(item, "type"); t != "" {
			props = append(props, document.AnnotationProperty{Type: t})
		}
	}
	return props
}
