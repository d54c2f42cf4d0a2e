package document

import "fmt"

// Color is an RGBA color with components in the 0..1 range.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Hex renders the color as a #rrggbb string; alpha is dropped.
func (c Color) Hex() string {
	clamp := func(v float64) int {
		scaled := int(v * 255)
		if scaled < 0 {
			return 0
		}
		if scaled > 255 {
			return 255
		}
		return scaled
	}
	return fmt.Sprintf("#%02x%02x%02x", clamp(c.R), clamp(c.G), clamp(c.B))
}

// Paint is a solid fill or stroke.
type Paint struct {
	Type  string `json:"type"`
	Color Color  `json:"color"`
}

// SolidPaint builds the only paint kind the model supports.
func SolidPaint(c Color) Paint {
	return Paint{Type: "SOLID", Color: c}
}

// Annotation is a markdown note attached to a node.
type Annotation struct {
	AnnotationID  string               `json:"annotationId"`
	LabelMarkdown string               `json:"labelMarkdown"`
	CategoryID    string               `json:"categoryId,omitempty"`
	Properties    []AnnotationProperty `json:"properties,omitempty"`
}

// AnnotationProperty is one property pin shown with an annotation.
type AnnotationProperty struct {
	Type string `json:"type"`
}

// AnnotationCategory is a selectable annotation grouping.
type AnnotationCategory struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Reaction is one prototyping interaction on a node.
type Reaction struct {
	Trigger        string `json:"trigger"`
	Action         string `json:"action"`
	DestinationID  string `json:"destinationId,omitempty"`
	NavigationType string `json:"navigationType,omitempty"`
}

// PaintStyle is a local color style.
type PaintStyle struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color Color  `json:"color"`
}

// TextStyle is a local text style.
type TextStyle struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	FontSize float64 `json:"fontSize"`
}

// NodeSummary is the shallow node shape returned by listings.
type NodeSummary struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Visible bool    `json:"visible"`
}

// NodeDetail is the full node shape returned by node queries.
type NodeDetail struct {
	NodeSummary
	ParentID         string        `json:"parentId,omitempty"`
	Children         []NodeSummary `json:"children,omitempty"`
	Fills            []Paint       `json:"fills,omitempty"`
	Strokes          []Paint       `json:"strokes,omitempty"`
	StrokeWeight     float64       `json:"strokeWeight,omitempty"`
	CornerRadius     float64       `json:"cornerRadius,omitempty"`
	Characters       string        `json:"characters,omitempty"`
	FontSize         float64       `json:"fontSize,omitempty"`
	LayoutMode       string        `json:"layoutMode,omitempty"`
	ItemSpacing      float64       `json:"itemSpacing,omitempty"`
	Annotations      []Annotation  `json:"annotations,omitempty"`
	MainComponentID  string        `json:"mainComponentId,omitempty"`
	OverriddenFields []string      `json:"overriddenFields,omitempty"`
}

// DocumentInfo describes the current page.
type DocumentInfo struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Type     string        `json:"type"`
	Children []NodeSummary `json:"children"`
}

// SelectionInfo describes the current selection.
type SelectionInfo struct {
	SelectionCount int           `json:"selectionCount"`
	Nodes          []NodeSummary `json:"nodes"`
}

// StylesInfo lists the document's local styles.
type StylesInfo struct {
	Colors []PaintStyle `json:"colors"`
	Texts  []TextStyle  `json:"texts"`
}

// ComponentInfo describes one local component.
type ComponentInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Key  string `json:"key"`
}

// ComponentsInfo lists local components.
type ComponentsInfo struct {
	Count      int             `json:"count"`
	Components []ComponentInfo `json:"components"`
}

// TextNodeHit is one text node found by a subtree scan.
type TextNodeHit struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Characters string  `json:"characters"`
	FontSize   float64 `json:"fontSize"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Depth      int     `json:"depth"`
}

// TypedNodeHit is one node found by a typed subtree scan.
type TypedNodeHit struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Depth int    `json:"depth"`
}

// AnnotationsInfo is the result of an annotation query.
type AnnotationsInfo struct {
	NodeID      string               `json:"nodeId,omitempty"`
	Annotations []NodeAnnotations    `json:"annotations"`
	Categories  []AnnotationCategory `json:"categories,omitempty"`
}

// NodeAnnotations groups a node's annotations.
type NodeAnnotations struct {
	NodeID      string       `json:"nodeId"`
	Annotations []Annotation `json:"annotations"`
}

// AnnotationResult reports one annotation mutation.
type AnnotationResult struct {
	Success      bool   `json:"success"`
	NodeID       string `json:"nodeId"`
	AnnotationID string `json:"annotationId,omitempty"`
	Error        string `json:"error,omitempty"`
}

// NodeReactions groups a node's reactions.
type NodeReactions struct {
	NodeID    string     `json:"nodeId"`
	Name      string     `json:"name"`
	Reactions []Reaction `json:"reactions"`
}

// DeletedNode reports a single-node deletion.
type DeletedNode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// DeleteResult reports one entry of a multi-node deletion.
type DeleteResult struct {
	NodeID  string `json:"nodeId"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// DeleteManyResult reports a multi-node deletion.
type DeleteManyResult struct {
	Success      bool           `json:"success"`
	DeletedCount int            `json:"deletedCount"`
	FailedCount  int            `json:"failedCount"`
	Results      []DeleteResult `json:"results"`
}

// TextReplaceResult reports one entry of a multi-text replacement.
type TextReplaceResult struct {
	NodeID       string `json:"nodeId"`
	Success      bool   `json:"success"`
	OriginalText string `json:"originalText,omitempty"`
	NewText      string `json:"newText,omitempty"`
	Error        string `json:"error,omitempty"`
}

// InstanceOverrideResult reports one target of an override copy.
type InstanceOverrideResult struct {
	Success      bool   `json:"success"`
	InstanceID   string `json:"instanceId"`
	InstanceName string `json:"instanceName,omitempty"`
	AppliedCount int    `json:"appliedCount,omitempty"`
	Error        string `json:"error,omitempty"`
}

// OverridesInfo describes the overrides present on a source instance.
type OverridesInfo struct {
	Success          bool     `json:"success"`
	Message          string   `json:"message"`
	SourceInstanceID string   `json:"sourceInstanceId"`
	MainComponentID  string   `json:"mainComponentId"`
	OverridesCount   int      `json:"overridesCount"`
	OverriddenFields []string `json:"overriddenFields"`
}

// SetOverridesInfo reports an override copy across targets.
type SetOverridesInfo struct {
	Success    bool                     `json:"success"`
	Message    string                   `json:"message"`
	TotalCount int                      `json:"totalCount"`
	Results    []InstanceOverrideResult `json:"results"`
}

// ExportInfo is the result of an image export.
type ExportInfo struct {
	NodeID    string  `json:"nodeId"`
	Format    string  `json:"format"`
	Scale     float64 `json:"scale"`
	MimeType  string  `json:"mimeType"`
	ImageData string  `json:"imageData"`
}

// ConnectionSpec describes one connector to create.
type ConnectionSpec struct {
	StartNodeID string
	EndNodeID   string
	Text        string
}

// ConnectionResult reports one created connector.
type ConnectionResult struct {
	ID          string `json:"id"`
	StartNodeID string `json:"startNodeId"`
	EndNodeID   string `json:"endNodeId"`
	Text        string `json:"text,omitempty"`
}
