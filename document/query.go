package document

import "github.com/designfabric/canvasbridge-go/dispatch"

// annotationCategories is the fixed category set the host exposes.
var annotationCategories = []AnnotationCategory{
	{ID: "cat:accessibility", Label: "Accessibility"},
	{ID: "cat:content", Label: "Content"},
	{ID: "cat:development", Label: "Development"},
	{ID: "cat:design", Label: "Design"},
}

func (d *Document) summary(n *Node) NodeSummary {
	return NodeSummary{
		ID:      n.ID,
		Name:    n.Name,
		Type:    n.Type,
		X:       n.X,
		Y:       n.Y,
		Width:   n.Width,
		Height:  n.Height,
		Visible: n.Visible,
	}
}

func (d *Document) detail(n *Node) NodeDetail {
	info := NodeDetail{
		NodeSummary:      d.summary(n),
		ParentID:         n.ParentID,
		Fills:            n.Fills,
		Strokes:          n.Strokes,
		StrokeWeight:     n.StrokeWeight,
		CornerRadius:     n.CornerRadius,
		Characters:       n.Characters,
		FontSize:         n.FontSize,
		ItemSpacing:      n.ItemSpacing,
		Annotations:      n.Annotations,
		MainComponentID:  n.MainComponentID,
		OverriddenFields: n.OverriddenFields,
	}
	if n.LayoutMode != "" && n.LayoutMode != LayoutNone {
		info.LayoutMode = n.LayoutMode
	}
	for _, childID := range n.Children {
		if child, ok := d.nodes[childID]; ok {
			info.Children = append(info.Children, d.summary(child))
		}
	}
	return info
}

// Info describes the current page and its direct children.
func (d *Document) Info() DocumentInfo {
	d.mu.Lock()
	defer d.mu.Unlock()

	root := d.nodes[d.rootID]
	info := DocumentInfo{ID: root.ID, Name: root.Name, Type: root.Type}
	for _, childID := range root.Children {
		if child, ok := d.nodes[childID]; ok {
			info.Children = append(info.Children, d.summary(child))
		}
	}
	if info.Children == nil {
		info.Children = []NodeSummary{}
	}
	return info
}

// Selection returns the current selection as summaries.
func (d *Document) Selection() SelectionInfo {
	d.mu.Lock()
	defer d.mu.Unlock()

	info := SelectionInfo{SelectionCount: len(d.selection), Nodes: []NodeSummary{}}
	for _, id := range d.selection {
		if n, ok := d.nodes[id]; ok {
			info.Nodes = append(info.Nodes, d.summary(n))
		}
	}
	return info
}

// NodeInfo returns the full detail of one node.
func (d *Document) NodeInfo(id string) (NodeDetail, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.node(id)
	if err != nil {
		return NodeDetail{}, err
	}
	return d.detail(n), nil
}

// NodesInfo returns details for every id. Any missing id fails the whole
// lookup; callers cannot tell a partial success from a full one otherwise.
func (d *Document) NodesInfo(ids []string) ([]NodeDetail, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	details := make([]NodeDetail, 0, len(ids))
	for _, id := range ids {
		n, err := d.node(id)
		if err != nil {
			return nil, err
		}
		details = append(details, d.detail(n))
	}
	return details, nil
}

// NodeChildren returns the direct children of a node.
func (d *Document) NodeChildren(id string) ([]NodeSummary, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.node(id)
	if err != nil {
		return nil, err
	}
	children := []NodeSummary{}
	for _, childID := range n.Children {
		if child, ok := d.nodes[childID]; ok {
			children = append(children, d.summary(child))
		}
	}
	return children, nil
}

// ReadMyDesign returns full details for the current selection.
func (d *Document) ReadMyDesign() []NodeDetail {
	d.mu.Lock()
	defer d.mu.Unlock()

	details := []NodeDetail{}
	for _, id := range d.selection {
		if n, ok := d.nodes[id]; ok {
			details = append(details, d.detail(n))
		}
	}
	return details
}

// Styles lists the document's local styles.
func (d *Document) Styles() StylesInfo {
	d.mu.Lock()
	defer d.mu.Unlock()

	info := StylesInfo{Colors: []PaintStyle{}, Texts: []TextStyle{}}
	info.Colors = append(info.Colors, d.paintStyles...)
	info.Texts = append(info.Texts, d.textStyles...)
	return info
}

// LocalComponents lists every COMPONENT node in the document.
func (d *Document) LocalComponents() ComponentsInfo {
	d.mu.Lock()
	defer d.mu.Unlock()

	info := ComponentsInfo{Components: []ComponentInfo{}}
	root := d.nodes[d.rootID]
	d.walk(root, 0, func(n *Node, _ int) {
		if n.Type == TypeComponent {
			info.Components = append(info.Components, ComponentInfo{
				ID:   n.ID,
				Name: n.Name,
				Key:  "key-" + n.ID,
			})
		}
	})
	info.Count = len(info.Components)
	return info
}

// Annotations returns annotations for one node's subtree, or for the whole
// page when nodeID is empty.
func (d *Document) Annotations(nodeID string, includeCategories bool) (AnnotationsInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	start := d.nodes[d.rootID]
	if nodeID != "" {
		n, err := d.node(nodeID)
		if err != nil {
			return AnnotationsInfo{}, err
		}
		start = n
	}

	info := AnnotationsInfo{NodeID: nodeID, Annotations: []NodeAnnotations{}}
	d.walk(start, 0, func(n *Node, _ int) {
		if len(n.Annotations) > 0 {
			info.Annotations = append(info.Annotations, NodeAnnotations{
				NodeID:      n.ID,
				Annotations: n.Annotations,
			})
		}
	})
	if includeCategories {
		info.Categories = annotationCategories
	}
	return info, nil
}

// NodeReactionsFor returns the reactions of each requested node.
func (d *Document) NodeReactionsFor(ids []string) ([]NodeReactions, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]NodeReactions, 0, len(ids))
	for _, id := range ids {
		n, err := d.node(id)
		if err != nil {
			return nil, err
		}
		reactions := n.Reactions
		if reactions == nil {
			reactions = []Reaction{}
		}
		out = append(out, NodeReactions{NodeID: n.ID, Name: n.Name, Reactions: reactions})
	}
	return out, nil
}

// ScanTextNodes collects every TEXT node in a subtree.
func (d *Document) ScanTextNodes(rootID string) ([]TextNodeHit, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	start, err := d.node(rootID)
	if err != nil {
		return nil, err
	}
	hits := []TextNodeHit{}
	d.walk(start, 0, func(n *Node, depth int) {
		if n.Type == TypeText {
			hits = append(hits, TextNodeHit{
				ID:         n.ID,
				Name:       n.Name,
				Characters: n.Characters,
				FontSize:   n.FontSize,
				X:          n.X,
				Y:          n.Y,
				Depth:      depth,
			})
		}
	})
	return hits, nil
}

// ScanNodesByTypes collects every node in a subtree whose type is in types.
func (d *Document) ScanNodesByTypes(rootID string, types []string) ([]TypedNodeHit, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	start, err := d.node(rootID)
	if err != nil {
		return nil, err
	}
	wanted := make(map[string]bool, len(types))
	for _, t := range types {
		wanted[t] = true
	}
	hits := []TypedNodeHit{}
	d.walk(start, 0, func(n *Node, depth int) {
		if wanted[n.Type] {
			hits = append(hits, TypedNodeHit{ID: n.ID, Name: n.Name, Type: n.Type, Depth: depth})
		}
	})
	return hits, nil
}

// InstanceOverrides inspects the overrides of a source instance. With an
// empty id the first selected INSTANCE node is used.
func (d *Document) InstanceOverrides(instanceID string) (OverridesInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var source *Node
	if instanceID != "" {
		n, err := d.node(instanceID)
		if err != nil {
			return OverridesInfo{}, err
		}
		source = n
	} else {
		for _, id := range d.selection {
			if n, ok := d.nodes[id]; ok && n.Type == TypeInstance {
				source = n
				break
			}
		}
		if source == nil {
			return OverridesInfo{}, dispatch.NewNotFound("no instance node in selection")
		}
	}

	if source.Type != TypeInstance {
		return OverridesInfo{}, dispatch.NewOperationFailed("node %s is not an instance", source.ID)
	}

	fields := source.OverriddenFields
	if fields == nil {
		fields = []string{}
	}
	return OverridesInfo{
		Success:          true,
		Message:          "overrides read",
		SourceInstanceID: source.ID,
		MainComponentID:  source.MainComponentID,
		OverridesCount:   len(fields),
		OverriddenFields: fields,
	}, nil
}
