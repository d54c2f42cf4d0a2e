package canvasbridge

// Parameter schemas, one JSON Schema document per parameterized command.
// "required" violations surface as missing-parameter errors before the
// handler runs; type violations fail the command outright.

const schemaNodeID = `{
	"type": "object",
	"properties": { "nodeId": { "type": "string" } },
	"required": ["nodeId"]
}`

const schemaNodeIDs = `{
	"type": "object",
	"properties": {
		"nodeIds": { "type": "array", "items": { "type": "string" } }
	},
	"required": ["nodeIds"]
}`

const schemaCreateRectangle = `{
	"type": "object",
	"properties": {
		"x": { "type": "number" },
		"y": { "type": "number" },
		"width": { "type": "number", "exclusiveMinimum": 0 },
		"height": { "type": "number", "exclusiveMinimum": 0 },
		"name": { "type": "string" },
		"parentId": { "type": "string" }
	},
	"required": ["x", "y", "width", "height"]
}`

const schemaCreateFrame = `{
	"type": "object",
	"properties": {
		"x": { "type": "number" },
		"y": { "type": "number" },
		"width": { "type": "number", "exclusiveMinimum": 0 },
		"height": { "type": "number", "exclusiveMinimum": 0 },
		"name": { "type": "string" },
		"parentId": { "type": "string" },
		"fillColor": { "type": "object" },
		"strokeColor": { "type": "object" },
		"strokeWeight": { "type": "number" }
	},
	"required": ["x", "y", "width", "height"]
}`

const schemaCreateText = `{
	"type": "object",
	"properties": {
		"x": { "type": "number" },
		"y": { "type": "number" },
		"text": { "type": "string" },
		"fontSize": { "type": "number" },
		"fontWeight": { "type": "number" },
		"fontColor": { "type": "object" },
		"name": { "type": "string" },
		"parentId": { "type": "string" }
	},
	"required": ["x", "y", "text"]
}`

const schemaCloneNode = `{
	"type": "object",
	"properties": {
		"nodeId": { "type": "string" },
		"x": { "type": "number" },
		"y": { "type": "number" }
	},
	"required": ["nodeId"]
}`

const schemaMoveNode = `{
	"type": "object",
	"properties": {
		"nodeId": { "type": "string" },
		"x": { "type": "number" },
		"y": { "type": "number" }
	},
	"required": ["nodeId", "x", "y"]
}`

const schemaResizeNode = `{
	"type": "object",
	"properties": {
		"nodeId": { "type": "string" },
		"width": { "type": "number" },
		"height": { "type": "number" }
	},
	"required": ["nodeId", "width", "height"]
}`

const schemaSetFillColor = `{
	"type": "object",
	"properties": {
		"nodeId": { "type": "string" },
		"color": {
			"type": "object",
			"properties": {
				"r": { "type": "number" },
				"g": { "type": "number" },
				"b": { "type": "number" },
				"a": { "type": "number" }
			},
			"required": ["r", "g", "b"]
		}
	},
	"required": ["nodeId", "color"]
}`

const schemaSetStrokeColor = `{
	"type": "object",
	"properties": {
		"nodeId": { "type": "string" },
		"color": {
			"type": "object",
			"properties": {
				"r": { "type": "number" },
				"g": { "type": "number" },
				"b": { "type": "number" },
				"a": { "type": "number" }
			},
			"required": ["r", "g", "b"]
		},
		"weight": { "type": "number" }
	},
	"required": ["nodeId", "color"]
}`

const schemaSetCornerRadius = `{
	"type": "object",
	"properties": {
		"nodeId": { "type": "string" },
		"radius": { "type": "number" },
		"corners": {
			"type": "array",
			"items": { "type": "boolean" },
			"minItems": 4,
			"maxItems": 4
		}
	},
	"required": ["nodeId", "radius"]
}`

const schemaSetTextContent = `{
	"type": "object",
	"properties": {
		"nodeId": { "type": "string" },
		"text": { "type": "string" }
	},
	"required": ["nodeId", "text"]
}`

const schemaSetMultipleTextContents = `{
	"type": "object",
	"properties": {
		"nodeId": { "type": "string" },
		"text": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"nodeId": { "type": "string" },
					"text": { "type": "string" }
				},
				"required": ["nodeId", "text"]
			}
		}
	},
	"required": ["nodeId", "text"]
}`

const schemaSetLayoutMode = `{
	"type": "object",
	"properties": {
		"nodeId": { "type": "string" },
		"layoutMode": { "type": "string", "enum": ["NONE", "HORIZONTAL", "VERTICAL"] },
		"layoutWrap": { "type": "boolean" }
	},
	"required": ["nodeId", "layoutMode"]
}`

const schemaSetPadding = `{
	"type": "object",
	"properties": {
		"nodeId": { "type": "string" },
		"paddingTop": { "type": "number" },
		"paddingRight": { "type": "number" },
		"paddingBottom": { "type": "number" },
		"paddingLeft": { "type": "number" }
	},
	"required": ["nodeId"]
}`

const schemaSetAxisAlign = `{
	"type": "object",
	"properties": {
		"nodeId": { "type": "string" },
		"primaryAxisAlignItems": { "type": "string" },
		"counterAxisAlignItems": { "type": "string" }
	},
	"required": ["nodeId"]
}`

const schemaSetLayoutSizing = `{
	"type": "object",
	"properties": {
		"nodeId": { "type": "string" },
		"layoutSizingHorizontal": { "type": "string" },
		"layoutSizingVertical": { "type": "string" }
	},
	"required": ["nodeId"]
}`

const schemaSetItemSpacing = `{
	"type": "object",
	"properties": {
		"nodeId": { "type": "string" },
		"itemSpacing": { "type": "number" }
	},
	"required": ["nodeId", "itemSpacing"]
}`

const schemaSetAnnotation = `{
	"type": "object",
	"properties": {
		"nodeId": { "type": "string" },
		"labelMarkdown": { "type": "string" },
		"categoryId": { "type": "string" },
		"properties": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": { "type": { "type": "string" } },
				"required": ["type"]
			}
		}
	},
	"required": ["nodeId", "labelMarkdown"]
}`

const schemaSetMultipleAnnotations = `{
	"type": "object",
	"properties": {
		"nodeId": { "type": "string" },
		"annotations": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"nodeId": { "type": "string" },
					"labelMarkdown": { "type": "string" },
					"categoryId": { "type": "string" }
				},
				"required": ["nodeId", "labelMarkdown"]
			}
		}
	},
	"required": ["nodeId", "annotations"]
}`

const schemaGetAnnotations = `{
	"type": "object",
	"properties": {
		"nodeId": { "type": "string" },
		"includeCategories": { "type": "boolean" }
	}
}`

const schemaScanTextNodes = `{
	"type": "object",
	"properties": {
		"nodeId": { "type": "string" },
		"useChunking": { "type": "boolean" },
		"chunkSize": { "type": "number" }
	},
	"required": ["nodeId"]
}`

const schemaScanNodesByTypes = `{
	"type": "object",
	"properties": {
		"nodeId": { "type": "string" },
		"types": {
			"type": "array",
			"items": { "type": "string" },
			"minItems": 1
		}
	},
	"required": ["nodeId", "types"]
}`

const schemaGetInstanceOverrides = `{
	"type": "object",
	"properties": { "instanceNodeId": { "type": "string" } }
}`

const schemaSetInstanceOverrides = `{
	"type": "object",
	"properties": {
		"sourceInstanceId": { "type": "string" },
		"targetNodeIds": {
			"type": "array",
			"items": { "type": "string" },
			"minItems": 1
		}
	},
	"required": ["sourceInstanceId", "targetNodeIds"]
}`

const schemaSetDefaultConnector = `{
	"type": "object",
	"properties": { "connectorId": { "type": "string" } },
	"required": ["connectorId"]
}`

const schemaCreateConnections = `{
	"type": "object",
	"properties": {
		"connections": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"startNodeId": { "type": "string" },
					"endNodeId": { "type": "string" },
					"text": { "type": "string" }
				},
				"required": ["startNodeId", "endNodeId"]
			},
			"minItems": 1
		}
	},
	"required": ["connections"]
}`

const schemaExportNodeAsImage = `{
	"type": "object",
	"properties": {
		"nodeId": { "type": "string" },
		"format": { "type": "string", "enum": ["PNG", "JPG", "SVG", "PDF"] },
		"scale": { "type": "number", "exclusiveMinimum": 0 }
	},
	"required": ["nodeId"]
}`
