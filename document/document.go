// Package document is an in-memory design document standing in for the
// host's document API. Every command operation is a method on Document; a
// real host binding would satisfy the same surface. Lookups that match
// nothing fail with NotFound rather than resolving empty.
package document

import (
	"fmt"
	"sync"

	"github.com/designfabric/canvasbridge-go/dispatch"
)

// Node types used by the model.
const (
	TypePage      = "PAGE"
	TypeFrame     = "FRAME"
	TypeRectangle = "RECTANGLE"
	TypeText      = "TEXT"
	TypeComponent = "COMPONENT"
	TypeInstance  = "INSTANCE"
	TypeConnector = "CONNECTOR"
)

// Layout modes for auto-layout frames.
const (
	LayoutNone       = "NONE"
	LayoutHorizontal = "HORIZONTAL"
	LayoutVertical   = "VERTICAL"
)

// Node is one element of the document tree.
type Node struct {
	ID       string
	Type     string
	Name     string
	ParentID string
	Children []string

	X, Y          float64
	Width, Height float64
	Visible       bool

	Fills        []Paint
	Strokes      []Paint
	StrokeWeight float64
	CornerRadius float64
	// CornerRadii overrides CornerRadius per corner (TL, TR, BR, BL) when set.
	CornerRadii *[4]float64

	// TEXT nodes
	Characters string
	FontSize   float64

	// Auto-layout (FRAME and COMPONENT nodes)
	LayoutMode             string
	LayoutWrap             bool
	PaddingTop             float64
	PaddingRight           float64
	PaddingBottom          float64
	PaddingLeft            float64
	PrimaryAxisAlignItems  string
	CounterAxisAlignItems  string
	LayoutSizingHorizontal string
	LayoutSizingVertical   string
	ItemSpacing            float64

	Annotations []Annotation
	Reactions   []Reaction

	// INSTANCE nodes
	MainComponentID  string
	OverriddenFields []string

	// CONNECTOR nodes
	StartNodeID string
	EndNodeID   string
	Text        string
}

// Document owns the node tree, the selection and the document-level
// registries (styles, connector default). All access is mutex-guarded: the
// bridge runs handlers on separate goroutines.
type Document struct {
	mu sync.Mutex

	name      string
	rootID    string
	nodes     map[string]*Node
	selection []string

	paintStyles []PaintStyle
	textStyles  []TextStyle

	defaultConnectorID string

	nextID int
}

// New creates a document with a single empty page as the root.
func New(name string) *Document {
	d := &Document{
		name:   name,
		nodes:  make(map[string]*Node),
		nextID: 2,
	}
	root := &Node{
		ID:         "0:1",
		Type:       TypePage,
		Name:       "Page 1",
		Visible:    true,
		LayoutMode: LayoutNone,
	}
	d.rootID = root.ID
	d.nodes[root.ID] = root
	return d
}

// allocateID returns the next node id. Caller must hold d.mu.
func (d *Document) allocateID() string {
	id := fmt.Sprintf("1:%d", d.nextID)
	d.nextID++
	return id
}

// node looks up a node by id. Caller must hold d.mu.
func (d *Document) node(id string) (*Node, error) {
	n, ok := d.nodes[id]
	if !ok {
		return nil, dispatch.NewNotFound("node not found: %s", id)
	}
	return n, nil
}

// attach places a node under a parent (the root page when parentID is
// empty). Caller must hold d.mu.
func (d *Document) attach(n *Node, parentID string) error {
	if parentID == "" {
		parentID = d.rootID
	}
	parent, err := d.node(parentID)
	if err != nil {
		return err
	}
	n.ParentID = parent.ID
	parent.Children = append(parent.Children, n.ID)
	d.nodes[n.ID] = n
	return nil
}

// detach removes a node from its parent's child list. Caller must hold d.mu.
func (d *Document) detach(n *Node) {
	parent, ok := d.nodes[n.ParentID]
	if !ok {
		return
	}
	children := parent.Children[:0]
	for _, childID := range parent.Children {
		if childID != n.ID {
			children = append(children, childID)
		}
	}
	parent.Children = children
}

// removeSubtree deletes a node and all descendants from the index. Caller
// must hold d.mu.
func (d *Document) removeSubtree(n *Node) {
	for _, childID := range n.Children {
		if child, ok := d.nodes[childID]; ok {
			d.removeSubtree(child)
		}
	}
	delete(d.nodes, n.ID)
}

// walk visits n and all descendants depth-first. Caller must hold d.mu.
func (d *Document) walk(n *Node, depth int, visit func(node *Node, depth int)) {
	visit(n, depth)
	for _, childID := range n.Children {
		if child, ok := d.nodes[childID]; ok {
			d.walk(child, depth+1, visit)
		}
	}
}

// SetSelection replaces the current selection. Unknown ids fail the call.
func (d *Document) SetSelection(ids []string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, id := range ids {
		if _, err := d.node(id); err != nil {
			return err
		}
	}
	d.selection = append([]string(nil), ids...)
	return nil
}

// AddPaintStyle registers a local color style.
func (d *Document) AddPaintStyle(name string, color Color) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.paintStyles = append(d.paintStyles, PaintStyle{
		ID:    fmt.Sprintf("S:paint:%d", len(d.paintStyles)+1),
		Name:  name,
		Color: color,
	})
}

// AddTextStyle registers a local text style.
func (d *Document) AddTextStyle(name string, fontSize float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.textStyles = append(d.textStyles, TextStyle{
		ID:       fmt.Sprintf("S:text:%d", len(d.textStyles)+1),
		Name:     name,
		FontSize: fontSize,
	})
}
