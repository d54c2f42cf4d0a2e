package canvasbridge

// Command names accepted by the standard registry. The set is closed; the
// adapter rejects anything else as an unknown command.
const (
	// Queries
	CmdGetDocumentInfo      = "get_document_info"
	CmdGetSelection         = "get_selection"
	CmdGetNodeInfo          = "get_node_info"
	CmdGetNodesInfo         = "get_nodes_info"
	CmdGetNodeChildren      = "get_node_children"
	CmdReadMyDesign         = "read_my_design"
	CmdGetStyles            = "get_styles"
	CmdGetLocalComponents   = "get_local_components"
	CmdGetInstanceOverrides = "get_instance_overrides"
	CmdGetAnnotations       = "get_annotations"
	CmdGetReactions         = "get_reactions"
	CmdScanTextNodes        = "scan_text_nodes"
	CmdScanNodesByTypes     = "scan_nodes_by_types"

	// Creation and structure
	CmdCreateRectangle     = "create_rectangle"
	CmdCreateFrame         = "create_frame"
	CmdCreateText          = "create_text"
	CmdCloneNode           = "clone_node"
	CmdDeleteNode          = "delete_node"
	CmdDeleteMultipleNodes = "delete_multiple_nodes"
	CmdMoveNode            = "move_node"
	CmdResizeNode          = "resize_node"

	// Styling
	CmdSetFillColor    = "set_fill_color"
	CmdSetStrokeColor  = "set_stroke_color"
	CmdSetCornerRadius = "set_corner_radius"

	// Text
	CmdSetTextContent          = "set_text_content"
	CmdSetMultipleTextContents = "set_multiple_text_contents"

	// Auto-layout
	CmdSetLayoutMode   = "set_layout_mode"
	CmdSetPadding      = "set_padding"
	CmdSetAxisAlign    = "set_axis_align"
	CmdSetLayoutSizing = "set_layout_sizing"
	CmdSetItemSpacing  = "set_item_spacing"

	// Annotations
	CmdSetAnnotation          = "set_annotation"
	CmdSetMultipleAnnotations = "set_multiple_annotations"

	// Prototyping and connectors
	CmdSetDefaultConnector = "set_default_connector"
	CmdCreateConnections   = "create_connections"

	// Components
	CmdSetInstanceOverrides = "set_instance_overrides"

	// Export
	CmdExportNodeAsImage = "export_node_as_image"
)
