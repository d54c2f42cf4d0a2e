package document

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/designfabric/canvasbridge-go/dispatch"
)

// CreateOptions carries the shared creation parameters.
type CreateOptions struct {
	X, Y          float64
	Width, Height float64
	Name          string
	ParentID      string
}

// CreateRectangle adds a rectangle node and returns its detail.
func (d *Document) CreateRectangle(opts CreateOptions) (NodeDetail, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	name := opts.Name
	if name == "" {
		name = "Rectangle"
	}
	n := &Node{
		ID:      d.allocateID(),
		Type:    TypeRectangle,
		Name:    name,
		X:       opts.X,
		Y:       opts.Y,
		Width:   opts.Width,
		Height:  opts.Height,
		Visible: true,
		Fills:   []Paint{SolidPaint(Color{R: 0.85, G: 0.85, B: 0.85, A: 1})},
	}
	if err := d.attach(n, opts.ParentID); err != nil {
		return NodeDetail{}, err
	}
	return d.detail(n), nil
}

// FrameOptions extends CreateOptions with frame styling.
type FrameOptions struct {
	CreateOptions
	FillColor   *Color
	StrokeColor *Color
	// StrokeWeight applies only when StrokeColor is set.
	StrokeWeight float64
}

// CreateFrame adds a frame node and returns its detail.
func (d *Document) CreateFrame(opts FrameOptions) (NodeDetail, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	name := opts.Name
	if name == "" {
		name = "Frame"
	}
	n := &Node{
		ID:         d.allocateID(),
		Type:       TypeFrame,
		Name:       name,
		X:          opts.X,
		Y:          opts.Y,
		Width:      opts.Width,
		Height:     opts.Height,
		Visible:    true,
		LayoutMode: LayoutNone,
	}
	if opts.FillColor != nil {
		n.Fills = []Paint{SolidPaint(*opts.FillColor)}
	}
	if opts.StrokeColor != nil {
		n.Strokes = []Paint{SolidPaint(*opts.StrokeColor)}
		n.StrokeWeight = opts.StrokeWeight
		if n.StrokeWeight == 0 {
			n.StrokeWeight = 1
		}
	}
	if err := d.attach(n, opts.ParentID); err != nil {
		return NodeDetail{}, err
	}
	return d.detail(n), nil
}

// TextOptions extends CreateOptions with text styling.
type TextOptions struct {
	CreateOptions
	Text       string
	FontSize   float64
	FontWeight float64
	FontColor  *Color
}

// CreateText adds a text node and returns its detail. The node name defaults
// to the text content.
func (d *Document) CreateText(opts TextOptions) (NodeDetail, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	name := opts.Name
	if name == "" {
		name = opts.Text
	}
	fontSize := opts.FontSize
	if fontSize == 0 {
		fontSize = 14
	}
	n := &Node{
		ID:         d.allocateID(),
		Type:       TypeText,
		Name:       name,
		X:          opts.X,
		Y:          opts.Y,
		Width:      opts.Width,
		Height:     opts.Height,
		Visible:    true,
		Characters: opts.Text,
		FontSize:   fontSize,
	}
	if opts.FontColor != nil {
		n.Fills = []Paint{SolidPaint(*opts.FontColor)}
	}
	if err := d.attach(n, opts.ParentID); err != nil {
		return NodeDetail{}, err
	}
	return d.detail(n), nil
}

// DeleteNode removes a node and its subtree.
func (d *Document) DeleteNode(id string) (DeletedNode, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.node(id)
	if err != nil {
		return DeletedNode{}, err
	}
	if n.ID == d.rootID {
		return DeletedNode{}, dispatch.NewOperationFailed("cannot delete the page root")
	}
	deleted := DeletedNode{ID: n.ID, Name: n.Name, Type: n.Type}
	d.detach(n)
	d.removeSubtree(n)
	d.pruneSelection()
	return deleted, nil
}

// DeleteNodes removes several nodes, reporting per-node outcomes. Missing
// nodes fail their own entry without aborting the rest.
func (d *Document) DeleteNodes(ids []string) DeleteManyResult {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := DeleteManyResult{Results: make([]DeleteResult, 0, len(ids))}
	for _, id := range ids {
		n, err := d.node(id)
		if err != nil {
			out.FailedCount++
			out.Results = append(out.Results, DeleteResult{NodeID: id, Error: err.Error()})
			continue
		}
		if n.ID == d.rootID {
			out.FailedCount++
			out.Results = append(out.Results, DeleteResult{NodeID: id, Error: "cannot delete the page root"})
			continue
		}
		d.detach(n)
		d.removeSubtree(n)
		out.DeletedCount++
		out.Results = append(out.Results, DeleteResult{NodeID: id, Success: true})
	}
	d.pruneSelection()
	out.Success = out.FailedCount == 0
	return out
}

// pruneSelection drops selected ids that no longer resolve. Caller must hold
// d.mu.
func (d *Document) pruneSelection() {
	kept := d.selection[:0]
	for _, id := range d.selection {
		if _, ok := d.nodes[id]; ok {
			kept = append(kept, id)
		}
	}
	d.selection = kept
}

// MoveNode repositions a node.
func (d *Document) MoveNode(id string, x, y float64) (NodeDetail, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.node(id)
	if err != nil {
		return NodeDetail{}, err
	}
	n.X = x
	n.Y = y
	return d.detail(n), nil
}

// ResizeNode changes a node's dimensions. Dimensions must be positive.
func (d *Document) ResizeNode(id string, width, height float64) (NodeDetail, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.node(id)
	if err != nil {
		return NodeDetail{}, err
	}
	if width <= 0 || height <= 0 {
		return NodeDetail{}, dispatch.NewOperationFailed("resize requires positive dimensions, got %gx%g", width, height)
	}
	n.Width = width
	n.Height = height
	return d.detail(n), nil
}

// CloneNode deep-copies a node's subtree as a sibling. Optional coordinates
// reposition the clone root.
func (d *Document) CloneNode(id string, x, y *float64) (NodeDetail, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.node(id)
	if err != nil {
		return NodeDetail{}, err
	}
	if n.ID == d.rootID {
		return NodeDetail{}, dispatch.NewOperationFailed("cannot clone the page root")
	}

	clone := d.cloneSubtree(n)
	clone.Name = n.Name + " Copy"
	if x != nil {
		clone.X = *x
	}
	if y != nil {
		clone.Y = *y
	}
	if err := d.attach(clone, n.ParentID); err != nil {
		return NodeDetail{}, err
	}
	return d.detail(clone), nil
}

// cloneSubtree copies a node and all descendants with fresh ids. Children are
// indexed immediately; the returned root is not attached. Caller must hold
// d.mu.
func (d *Document) cloneSubtree(n *Node) *Node {
	clone := *n
	clone.ID = d.allocateID()
	clone.Children = nil
	clone.Fills = append([]Paint(nil), n.Fills...)
	clone.Strokes = append([]Paint(nil), n.Strokes...)
	clone.Annotations = append([]Annotation(nil), n.Annotations...)
	clone.Reactions = append([]Reaction(nil), n.Reactions...)
	clone.OverriddenFields = append([]string(nil), n.OverriddenFields...)
	if n.CornerRadii != nil {
		radii := *n.CornerRadii
		clone.CornerRadii = &radii
	}
	for _, childID := range n.Children {
		child, ok := d.nodes[childID]
		if !ok {
			continue
		}
		childClone := d.cloneSubtree(child)
		childClone.ParentID = clone.ID
		clone.Children = append(clone.Children, childClone.ID)
		d.nodes[childClone.ID] = childClone
	}
	return &clone
}

// SetFillColor replaces a node's fills with one solid paint.
func (d *Document) SetFillColor(id string, color Color) (NodeDetail, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.node(id)
	if err != nil {
		return NodeDetail{}, err
	}
	n.Fills = []Paint{SolidPaint(color)}
	return d.detail(n), nil
}

// SetStrokeColor replaces a node's strokes with one solid paint. A nil weight
// keeps the current stroke weight (1 when unset).
func (d *Document) SetStrokeColor(id string, color Color, weight *float64) (NodeDetail, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.node(id)
	if err != nil {
		return NodeDetail{}, err
	}
	n.Strokes = []Paint{SolidPaint(color)}
	if weight != nil {
		n.StrokeWeight = *weight
	} else if n.StrokeWeight == 0 {
		n.StrokeWeight = 1
	}
	return d.detail(n), nil
}

// SetCornerRadius sets a node's corner radius. With corners given, only the
// flagged corners (TL, TR, BR, BL) take the new radius.
func (d *Document) SetCornerRadius(id string, radius float64, corners *[4]bool) (NodeDetail, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.node(id)
	if err != nil {
		return NodeDetail{}, err
	}
	if radius < 0 {
		return NodeDetail{}, dispatch.NewOperationFailed("corner radius must not be negative, got %g", radius)
	}
	if corners == nil {
		n.CornerRadius = radius
		n.CornerRadii = nil
		return d.detail(n), nil
	}

	radii := [4]float64{n.CornerRadius, n.CornerRadius, n.CornerRadius, n.CornerRadius}
	if n.CornerRadii != nil {
		radii = *n.CornerRadii
	}
	for i, set := range corners {
		if set {
			radii[i] = radius
		}
	}
	n.CornerRadii = &radii
	return d.detail(n), nil
}

// SetTextContent replaces the characters of a TEXT node.
func (d *Document) SetTextContent(id, text string) (TextReplaceResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.node(id)
	if err != nil {
		return TextReplaceResult{}, err
	}
	if n.Type != TypeText {
		return TextReplaceResult{}, dispatch.NewOperationFailed("node %s is not a text node", id)
	}
	original := n.Characters
	n.Characters = text
	if n.Name == original {
		n.Name = text
	}
	return TextReplaceResult{
		NodeID:       n.ID,
		Success:      true,
		OriginalText: original,
		NewText:      text,
	}, nil
}

// SetLayoutMode configures auto-layout on a frame. Wrap applies only to
// HORIZONTAL and VERTICAL modes.
func (d *Document) SetLayoutMode(id, mode string, wrap bool) (NodeDetail, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.node(id)
	if err != nil {
		return NodeDetail{}, err
	}
	if err := d.requireLayoutContainer(n); err != nil {
		return NodeDetail{}, err
	}
	switch mode {
	case LayoutNone, LayoutHorizontal, LayoutVertical:
	default:
		return NodeDetail{}, dispatch.NewOperationFailed("unknown layout mode: %s", mode)
	}
	n.LayoutMode = mode
	n.LayoutWrap = wrap && mode != LayoutNone
	return d.detail(n), nil
}

// requireLayoutContainer rejects auto-layout settings on node kinds that
// cannot carry them. Caller must hold d.mu.
func (d *Document) requireLayoutContainer(n *Node) error {
	switch n.Type {
	case TypeFrame, TypeComponent, TypeInstance:
		return nil
	}
	return dispatch.NewOperationFailed("node %s (%s) does not support auto-layout", n.ID, n.Type)
}

// requireAutoLayout rejects layout child settings on containers that are not
// in an auto-layout mode. Caller must hold d.mu.
func (d *Document) requireAutoLayout(n *Node) error {
	if err := d.requireLayoutContainer(n); err != nil {
		return err
	}
	if n.LayoutMode == "" || n.LayoutMode == LayoutNone {
		return dispatch.NewOperationFailed("node %s has no auto-layout enabled", n.ID)
	}
	return nil
}

// Padding carries optional per-side padding updates.
type Padding struct {
	Top    *float64
	Right  *float64
	Bottom *float64
	Left   *float64
}

// SetPadding updates the set sides of an auto-layout frame's padding.
func (d *Document) SetPadding(id string, p Padding) (NodeDetail, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.node(id)
	if err != nil {
		return NodeDetail{}, err
	}
	if err := d.requireAutoLayout(n); err != nil {
		return NodeDetail{}, err
	}
	if p.Top != nil {
		n.PaddingTop = *p.Top
	}
	if p.Right != nil {
		n.PaddingRight = *p.Right
	}
	if p.Bottom != nil {
		n.PaddingBottom = *p.Bottom
	}
	if p.Left != nil {
		n.PaddingLeft = *p.Left
	}
	return d.detail(n), nil
}

var primaryAlignValues = map[string]bool{
	"MIN": true, "MAX": true, "CENTER": true, "SPACE_BETWEEN": true,
}

var counterAlignValues = map[string]bool{
	"MIN": true, "MAX": true, "CENTER": true, "BASELINE": true,
}

// SetAxisAlign updates the axis alignment of an auto-layout frame. Either
// value may be empty to leave that axis unchanged.
func (d *Document) SetAxisAlign(id, primary, counter string) (NodeDetail, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.node(id)
	if err != nil {
		return NodeDetail{}, err
	}
	if err := d.requireAutoLayout(n); err != nil {
		return NodeDetail{}, err
	}
	if primary != "" {
		if !primaryAlignValues[primary] {
			return NodeDetail{}, dispatch.NewOperationFailed("invalid primary axis alignment: %s", primary)
		}
		n.PrimaryAxisAlignItems = primary
	}
	if counter != "" {
		if !counterAlignValues[counter] {
			return NodeDetail{}, dispatch.NewOperationFailed("invalid counter axis alignment: %s", counter)
		}
		n.CounterAxisAlignItems = counter
	}
	return d.detail(n), nil
}

var layoutSizingValues = map[string]bool{
	"FIXED": true, "HUG": true, "FILL": true,
}

// SetLayoutSizing updates the sizing behavior of an auto-layout frame. Either
// value may be empty to leave that axis unchanged.
func (d *Document) SetLayoutSizing(id, horizontal, vertical string) (NodeDetail, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.node(id)
	if err != nil {
		return NodeDetail{}, err
	}
	if err := d.requireAutoLayout(n); err != nil {
		return NodeDetail{}, err
	}
	if horizontal != "" {
		if !layoutSizingValues[horizontal] {
			return NodeDetail{}, dispatch.NewOperationFailed("invalid horizontal sizing: %s", horizontal)
		}
		n.LayoutSizingHorizontal = horizontal
	}
	if vertical != "" {
		if !layoutSizingValues[vertical] {
			return NodeDetail{}, dispatch.NewOperationFailed("invalid vertical sizing: %s", vertical)
		}
		n.LayoutSizingVertical = vertical
	}
	return d.detail(n), nil
}

// SetItemSpacing updates the child gap of an auto-layout frame.
func (d *Document) SetItemSpacing(id string, spacing float64) (NodeDetail, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.node(id)
	if err != nil {
		return NodeDetail{}, err
	}
	if err := d.requireAutoLayout(n); err != nil {
		return NodeDetail{}, err
	}
	if spacing < 0 {
		return NodeDetail{}, dispatch.NewOperationFailed("item spacing must not be negative, got %g", spacing)
	}
	n.ItemSpacing = spacing
	return d.detail(n), nil
}

// SetAnnotation attaches a markdown annotation to a node, replacing any
// previous annotation with the same category (or the uncategorized slot).
func (d *Document) SetAnnotation(nodeID, labelMarkdown, categoryID string, properties []AnnotationProperty) (AnnotationResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.node(nodeID)
	if err != nil {
		return AnnotationResult{}, err
	}
	if strings.TrimSpace(labelMarkdown) == "" {
		return AnnotationResult{}, dispatch.NewOperationFailed("annotation label must not be empty")
	}

	annotation := Annotation{
		AnnotationID:  fmt.Sprintf("A:%s:%d", n.ID, len(n.Annotations)+1),
		LabelMarkdown: labelMarkdown,
		CategoryID:    categoryID,
		Properties:    properties,
	}
	kept := n.Annotations[:0]
	for _, existing := range n.Annotations {
		if existing.CategoryID != categoryID {
			kept = append(kept, existing)
		}
	}
	n.Annotations = append(kept, annotation)
	return AnnotationResult{
		Success:      true,
		NodeID:       n.ID,
		AnnotationID: annotation.AnnotationID,
	}, nil
}

// SetDefaultConnector records which connector node seeds future connections.
func (d *Document) SetDefaultConnector(connectorID string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.node(connectorID)
	if err != nil {
		return "", err
	}
	if n.Type != TypeConnector {
		return "", dispatch.NewOperationFailed("node %s is not a connector", connectorID)
	}
	d.defaultConnectorID = n.ID
	return n.ID, nil
}

// CreateConnections builds connector nodes between node pairs. A default
// connector must be set first. Every endpoint must resolve.
func (d *Document) CreateConnections(specs []ConnectionSpec) ([]ConnectionResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.defaultConnectorID == "" {
		return nil, dispatch.NewOperationFailed("no default connector set")
	}
	for _, spec := range specs {
		if _, err := d.node(spec.StartNodeID); err != nil {
			return nil, err
		}
		if _, err := d.node(spec.EndNodeID); err != nil {
			return nil, err
		}
	}

	results := make([]ConnectionResult, 0, len(specs))
	for _, spec := range specs {
		n := &Node{
			ID:          d.allocateID(),
			Type:        TypeConnector,
			Name:        "Connector",
			Visible:     true,
			StartNodeID: spec.StartNodeID,
			EndNodeID:   spec.EndNodeID,
			Text:        spec.Text,
		}
		if err := d.attach(n, ""); err != nil {
			return nil, err
		}
		results = append(results, ConnectionResult{
			ID:          n.ID,
			StartNodeID: n.StartNodeID,
			EndNodeID:   n.EndNodeID,
			Text:        n.Text,
		})
	}
	return results, nil
}

var exportMimeTypes = map[string]string{
	"PNG": "image/png",
	"JPG": "image/jpeg",
	"SVG": "image/svg+xml",
	"PDF": "application/pdf",
}

// ExportNodeAsImage renders a node as a placeholder image and returns it
// base64-encoded. Format defaults to PNG, scale to 1.
func (d *Document) ExportNodeAsImage(id, format string, scale float64) (ExportInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.node(id)
	if err != nil {
		return ExportInfo{}, err
	}
	if format == "" {
		format = "PNG"
	}
	mime, ok := exportMimeTypes[format]
	if !ok {
		return ExportInfo{}, dispatch.NewOperationFailed("unsupported export format: %s", format)
	}
	if scale <= 0 {
		scale = 1
	}

	rendered := fmt.Sprintf("%s %s %gx%g @%gx", format, n.ID, n.Width, n.Height, scale)
	return ExportInfo{
		NodeID:    n.ID,
		Format:    format,
		Scale:     scale,
		MimeType:  mime,
		ImageData: base64.StdEncoding.EncodeToString([]byte(rendered)),
	}, nil
}

// SetInstanceOverrides copies the overrides of a source instance onto target
// instances. Targets that are not instances fail their own entry.
func (d *Document) SetInstanceOverrides(sourceID string, targetIDs []string) (SetOverridesInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	source, err := d.node(sourceID)
	if err != nil {
		return SetOverridesInfo{}, err
	}
	if source.Type != TypeInstance {
		return SetOverridesInfo{}, dispatch.NewOperationFailed("node %s is not an instance", sourceID)
	}

	out := SetOverridesInfo{Results: make([]InstanceOverrideResult, 0, len(targetIDs))}
	applied := 0
	for _, id := range targetIDs {
		target, err := d.node(id)
		if err != nil {
			out.Results = append(out.Results, InstanceOverrideResult{InstanceID: id, Error: err.Error()})
			continue
		}
		if target.Type != TypeInstance {
			out.Results = append(out.Results, InstanceOverrideResult{
				InstanceID:   id,
				InstanceName: target.Name,
				Error:        fmt.Sprintf("node %s is not an instance", id),
			})
			continue
		}
		target.MainComponentID = source.MainComponentID
		target.OverriddenFields = append([]string(nil), source.OverriddenFields...)
		out.Results = append(out.Results, InstanceOverrideResult{
			Success:      true,
			InstanceID:   target.ID,
			InstanceName: target.Name,
			AppliedCount: len(target.OverriddenFields),
		})
		applied++
	}
	out.TotalCount = len(targetIDs)
	out.Success = applied == len(targetIDs)
	if out.Success {
		out.Message = fmt.Sprintf("applied overrides to %d instances", applied)
	} else {
		out.Message = fmt.Sprintf("applied overrides to %d of %d instances", applied, len(targetIDs))
	}
	return out, nil
}
