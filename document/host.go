package document

import "github.com/designfabric/canvasbridge-go/dispatch"

// Constructors for node kinds the command set cannot create. On a real host
// the canvas supplies these; the in-memory stand-in seeds them directly for
// tests and demos.

// CreateComponent adds a component node under the root and returns its id.
func (d *Document) CreateComponent(name string, width, height float64) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := &Node{
		ID:         d.allocateID(),
		Type:       TypeComponent,
		Name:       name,
		Width:      width,
		Height:     height,
		Visible:    true,
		LayoutMode: LayoutNone,
	}
	// attach to the root cannot fail
	_ = d.attach(n, "")
	return n.ID
}

// CreateInstance adds an instance of a component under the root and returns
// its id. The main component must exist and be a COMPONENT.
func (d *Document) CreateInstance(name, mainComponentID string, overriddenFields []string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	main, err := d.node(mainComponentID)
	if err != nil {
		return "", err
	}
	if main.Type != TypeComponent {
		return "", dispatch.NewOperationFailed("node %s is not a component", mainComponentID)
	}

	n := &Node{
		ID:               d.allocateID(),
		Type:             TypeInstance,
		Name:             name,
		Width:            main.Width,
		Height:           main.Height,
		Visible:          true,
		MainComponentID:  main.ID,
		OverriddenFields: append([]string(nil), overriddenFields...),
	}
	_ = d.attach(n, "")
	return n.ID, nil
}

// CreateConnector adds a bare connector node usable as the default connector
// template and returns its id.
func (d *Document) CreateConnector(name string) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := &Node{
		ID:      d.allocateID(),
		Type:    TypeConnector,
		Name:    name,
		Visible: true,
	}
	_ = d.attach(n, "")
	return n.ID
}

// AddReaction attaches a prototyping reaction to a node.
func (d *Document) AddReaction(nodeID string, r Reaction) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.node(nodeID)
	if err != nil {
		return err
	}
	n.Reactions = append(n.Reactions, r)
	return nil
}
