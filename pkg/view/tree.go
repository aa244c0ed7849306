package view

import "errors"

// Layout is the split direction of a Tree container.
type Layout int

const (
	LayoutHorizontal Layout = iota // children arranged left-to-right
	LayoutVertical                  // children arranged top-to-bottom
)

// Direction is a focus-movement or swap direction between sibling views.
type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionLeft
	DirectionRight
)

// ErrNotFound is returned when a ViewID isn't present in the tree.
var ErrNotFound = errors.New("view not found in tree")

// node is either a Leaf (a single View) or a Container (a split holding
// child nodes), per spec.md §2 "View & Tree (C3a): windowing tree of
// views".
type node struct {
	leaf *View

	layout   Layout
	children []*node
	area     Rect
}

// Tree arranges Views on screen as a binary split tree and tracks which
// leaf has focus.
type Tree struct {
	root  *node
	focus ID
}

// NewTree creates a Tree with a single focused view filling area.
func NewTree(v *View, area Rect) *Tree {
	v.Area = area
	return &Tree{root: &node{leaf: v, area: area}, focus: v.ID}
}

// Focus returns the currently focused view's id.
func (t *Tree) Focus() ID { return t.focus }

// FocusedView returns the currently focused View.
func (t *Tree) FocusedView() *View {
	n := find(t.root, t.focus)
	if n == nil {
		return nil
	}
	return n.leaf
}

// View returns the View with the given id, or ok=false.
func (t *Tree) View(id ID) (*View, bool) {
	n := find(t.root, id)
	if n == nil {
		return nil, false
	}
	return n.leaf, true
}

// Views returns every leaf View in the tree, left-to-right / top-to-bottom.
func (t *Tree) Views() []*View {
	var out []*View
	collect(t.root, &out)
	return out
}

func collect(n *node, out *[]*View) {
	if n == nil {
		return
	}
	if n.leaf != nil {
		*out = append(*out, n.leaf)
		return
	}
	for _, c := range n.children {
		collect(c, out)
	}
}

func find(n *node, id ID) *node {
	if n == nil {
		return nil
	}
	if n.leaf != nil {
		if n.leaf.ID == id {
			return n
		}
		return nil
	}
	for _, c := range n.children {
		if found := find(c, id); found != nil {
			return found
		}
	}
	return nil
}

func findParent(n, target *node) *node {
	if n == nil || n.leaf != nil {
		return nil
	}
	for _, c := range n.children {
		if c == target {
			return n
		}
		if p := findParent(c, target); p != nil {
			return p
		}
	}
	return nil
}

// Split replaces the focused leaf with a container holding the old view
// and a new view split along layout, giving each half the old area.
func (t *Tree) Split(newView *View, layout Layout) error {
	leafNode := find(t.root, t.focus)
	if leafNode == nil {
		return ErrNotFound
	}

	oldArea := leafNode.area
	var firstArea, secondArea Rect
	if layout == LayoutHorizontal {
		firstArea = Rect{X: oldArea.X, Y: oldArea.Y, Width: oldArea.Width / 2, Height: oldArea.Height}
		secondArea = Rect{X: oldArea.X + oldArea.Width/2, Y: oldArea.Y, Width: oldArea.Width - oldArea.Width/2, Height: oldArea.Height}
	} else {
		firstArea = Rect{X: oldArea.X, Y: oldArea.Y, Width: oldArea.Width, Height: oldArea.Height / 2}
		secondArea = Rect{X: oldArea.X, Y: oldArea.Y + oldArea.Height/2, Width: oldArea.Width, Height: oldArea.Height - oldArea.Height/2}
	}

	oldLeaf := leafNode.leaf
	oldLeaf.Area = firstArea
	newView.Area = secondArea

	leafNode.leaf = nil
	leafNode.layout = layout
	leafNode.children = []*node{
		{leaf: oldLeaf, area: firstArea},
		{leaf: newView, area: secondArea},
	}
	leafNode.area = oldArea

	t.focus = newView.ID
	return nil
}

// Close removes the view with the given id from the tree. If doing so
// leaves its parent container with a single child, that child replaces
// the parent (collapsing the split). Returns ErrNotFound if id isn't
// present, or an error if it's the tree's only remaining view (the tree
// must always show at least one view).
func (t *Tree) Close(id ID) error {
	leafNode := find(t.root, id)
	if leafNode == nil {
		return ErrNotFound
	}
	if leafNode == t.root {
		return errors.New("cannot close the last view")
	}

	parent := findParent(t.root, leafNode)
	siblings := make([]*node, 0, len(parent.children)-1)
	for _, c := range parent.children {
		if c != leafNode {
			siblings = append(siblings, c)
		}
	}

	if len(siblings) == 1 {
		survivor := siblings[0]
		survivor.area = parent.area
		if survivor.leaf != nil {
			survivor.leaf.Area = parent.area
		}
		*parent = *survivor
	} else {
		parent.children = siblings
	}

	if t.focus == id {
		views := t.Views()
		t.focus = views[0].ID
	}
	return nil
}

// Resize re-lays the whole tree out within area, halving recursively at
// each split exactly as Split does.
func (t *Tree) Resize(area Rect) {
	resize(t.root, area)
}

func resize(n *node, area Rect) {
	n.area = area
	if n.leaf != nil {
		n.leaf.Area = area
		return
	}
	if len(n.children) != 2 {
		return
	}
	if n.layout == LayoutHorizontal {
		left := Rect{X: area.X, Y: area.Y, Width: area.Width / 2, Height: area.Height}
		right := Rect{X: area.X + area.Width/2, Y: area.Y, Width: area.Width - area.Width/2, Height: area.Height}
		resize(n.children[0], left)
		resize(n.children[1], right)
	} else {
		top := Rect{X: area.X, Y: area.Y, Width: area.Width, Height: area.Height / 2}
		bottom := Rect{X: area.X, Y: area.Y + area.Height/2, Width: area.Width, Height: area.Height - area.Height/2}
		resize(n.children[0], top)
		resize(n.children[1], bottom)
	}
}

// FocusNext moves focus to the next leaf in traversal order, wrapping
// around.
func (t *Tree) FocusNext() {
	views := t.Views()
	for i, v := range views {
		if v.ID == t.focus {
			t.focus = views[(i+1)%len(views)].ID
			return
		}
	}
}
