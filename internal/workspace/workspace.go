// Package workspace models the editor's ownership tree: a Manager owns
// workspaces, each workspace owns a tree of panes, and each pane owns an
// ordered list of tabs. The drain loop is the tree's sole owner and sole
// mutator; nothing else holds a reference across a mutation.
package workspace

import "github.com/kungfusheep/glyphcore/internal/bufview"

// PaneID identifies a leaf pane within one workspace's tree.
type PaneID int

// SplitDirection discriminates how a Split pane's two children are
// arranged.
type SplitDirection uint8

const (
	Horizontal SplitDirection = iota
	Vertical
)

// Tab is one open document or terminal within a pane. FilePath is empty
// for tabs with nothing to persist (terminal panes, unsaved scratch
// buffers); Content is nil until the tab is actually loaded.
type Tab struct {
	FilePath string
	Label    string
	Content  bufview.BufferView
	Dirty    bool
}

// PaneKind discriminates a PaneNode's variant.
type PaneKind uint8

const (
	PaneLeaf PaneKind = iota
	PaneSplit
)

// PaneNode is either a Leaf (an actual pane holding tabs) or a Split
// (dividing space between two child trees). Exactly one of the
// Leaf-only or Split-only fields is meaningful, selected by Kind.
type PaneNode struct {
	Kind PaneKind

	// Leaf fields.
	ID        PaneID
	Tabs      []*Tab
	ActiveTab int

	// Split fields.
	Direction     SplitDirection
	Ratio         float64
	First, Second *PaneNode
}

// NewLeaf creates a single-pane leaf with no tabs.
func NewLeaf(id PaneID) *PaneNode {
	return &PaneNode{Kind: PaneLeaf, ID: id, Tabs: nil, ActiveTab: 0}
}

// NewSplit divides the space ratio/(1-ratio) between first and second.
// Ratio is clamped to (0, 1) exclusive of its endpoints.
func NewSplit(dir SplitDirection, ratio float64, first, second *PaneNode) *PaneNode {
	if ratio <= 0 {
		ratio = 0.01
	}
	if ratio >= 1 {
		ratio = 0.99
	}
	return &PaneNode{Kind: PaneSplit, Direction: dir, Ratio: ratio, First: first, Second: second}
}

// ActiveTabPtr returns the leaf's active tab, or nil if it has none.
func (n *PaneNode) ActiveTabPtr() *Tab {
	if n.Kind != PaneLeaf || len(n.Tabs) == 0 {
		return nil
	}
	if n.ActiveTab < 0 || n.ActiveTab >= len(n.Tabs) {
		return nil
	}
	return n.Tabs[n.ActiveTab]
}

// FindPane returns the leaf with the given id, searching the tree rooted
// at n depth-first.
func (n *PaneNode) FindPane(id PaneID) *PaneNode {
	if n == nil {
		return nil
	}
	if n.Kind == PaneLeaf {
		if n.ID == id {
			return n
		}
		return nil
	}
	if found := n.First.FindPane(id); found != nil {
		return found
	}
	return n.Second.FindPane(id)
}

// Leaves collects every leaf pane in the tree, in left-to-right order.
func (n *PaneNode) Leaves() []*PaneNode {
	if n == nil {
		return nil
	}
	if n.Kind == PaneLeaf {
		return []*PaneNode{n}
	}
	return append(n.First.Leaves(), n.Second.Leaves()...)
}

// MaxPaneID returns the largest pane id present in the tree, or -1 if the
// tree is nil or has no leaves.
func (n *PaneNode) MaxPaneID() PaneID {
	max := PaneID(-1)
	for _, leaf := range n.Leaves() {
		if leaf.ID > max {
			max = leaf.ID
		}
	}
	return max
}

// Workspace is one root directory opened in the editor, with its own
// pane tree and its own pane-id generator.
type Workspace struct {
	RootPath     string
	Label        string
	ActivePaneID PaneID
	Root         *PaneNode

	nextPaneID PaneID
}

// NewWorkspace creates a workspace rooted at rootPath with a single empty
// pane.
func NewWorkspace(rootPath, label string) *Workspace {
	root := NewLeaf(0)
	return &Workspace{
		RootPath:     rootPath,
		Label:        label,
		ActivePaneID: 0,
		Root:         root,
		nextPaneID:   1,
	}
}

// NextPaneID allocates and returns the next unused pane id for this
// workspace.
func (w *Workspace) NextPaneID() PaneID {
	id := w.nextPaneID
	w.nextPaneID++
	return id
}

// SyncPaneIDGenerator sets the next allocated id to one past the largest
// id currently present in the tree, so restored workspaces never collide
// with a pane id that already exists.
func (w *Workspace) SyncPaneIDGenerator() {
	w.nextPaneID = w.Root.MaxPaneID() + 1
}

// SplitPane replaces the leaf identified by id with a Split whose First
// child is the original leaf and whose Second child is a brand-new empty
// leaf, returning the new leaf's id. Reports false if id does not name a
// leaf in this workspace.
func (w *Workspace) SplitPane(id PaneID, dir SplitDirection, ratio float64) (PaneID, bool) {
	target := w.Root.FindPane(id)
	if target == nil {
		return 0, false
	}
	newID := w.NextPaneID()
	original := *target
	originalCopy := &original
	*target = *NewSplit(dir, ratio, originalCopy, NewLeaf(newID))
	w.ActivePaneID = newID
	return newID, true
}

// ClosePane removes the leaf identified by id, collapsing its parent
// split into the sibling subtree. Reports false if id names the
// workspace's only pane (which cannot be closed) or is not found.
func (w *Workspace) ClosePane(id PaneID) bool {
	if w.Root.Kind == PaneLeaf {
		return false
	}
	return collapseInto(w.Root, nil, id)
}

// collapseInto walks the tree looking for a split whose child is the leaf
// to remove, replacing that split (in its parent, or at the root) with
// the surviving sibling.
func collapseInto(node, parent *PaneNode, id PaneID) bool {
	if node == nil || node.Kind != PaneSplit {
		return false
	}
	if node.First.Kind == PaneLeaf && node.First.ID == id {
		*node = *node.Second
		return true
	}
	if node.Second.Kind == PaneLeaf && node.Second.ID == id {
		*node = *node.First
		return true
	}
	if collapseInto(node.First, node, id) {
		return true
	}
	return collapseInto(node.Second, node, id)
}

// Manager owns every open workspace and tracks which one is active.
type Manager struct {
	ActiveWorkspace int
	Workspaces      []*Workspace
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{ActiveWorkspace: 0}
}

// AddWorkspace appends a workspace and makes it active.
func (m *Manager) AddWorkspace(w *Workspace) {
	m.Workspaces = append(m.Workspaces, w)
	m.ActiveWorkspace = len(m.Workspaces) - 1
}

// Active returns the active workspace, or nil if none exist.
func (m *Manager) Active() *Workspace {
	if m.ActiveWorkspace < 0 || m.ActiveWorkspace >= len(m.Workspaces) {
		return nil
	}
	return m.Workspaces[m.ActiveWorkspace]
}
