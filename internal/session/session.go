// Package session persists and restores the workspace tree as JSON.
// Terminal panes and unsaved scratch tabs are never persisted: only tabs
// backed by a real file on disk survive a save/restore round trip.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kungfusheep/glyphcore/internal/bufcore"
	"github.com/kungfusheep/glyphcore/internal/bufview"
	"github.com/kungfusheep/glyphcore/internal/workspace"
)

const schemaVersion = 1

// doc is the on-disk shape of a session file.
type doc struct {
	SchemaVersion   int            `json:"schema_version"`
	ActiveWorkspace int            `json:"active_workspace"`
	Workspaces      []workspaceDoc `json:"workspaces"`
}

type workspaceDoc struct {
	RootPath     string  `json:"root_path"`
	Label        string  `json:"label"`
	ActivePaneID int     `json:"active_pane_id"`
	PaneRoot     paneDoc `json:"pane_root"`
}

// paneDoc is the tagged-union on-disk shape of a PaneNode: exactly one of
// the leaf fields (ID/Tabs/ActiveTab) or the split fields
// (Direction/Ratio/First/Second) is populated, selected by Kind.
type paneDoc struct {
	Kind      string   `json:"kind"`
	ID        int      `json:"id,omitempty"`
	Tabs      []tabDoc `json:"tabs,omitempty"`
	ActiveTab int      `json:"active_tab,omitempty"`

	Direction string   `json:"direction,omitempty"`
	Ratio     float64  `json:"ratio,omitempty"`
	First     *paneDoc `json:"first,omitempty"`
	Second    *paneDoc `json:"second,omitempty"`
}

type tabDoc struct {
	FilePath string `json:"file_path"`
}

// Save serializes m to JSON. Tabs with an empty FilePath (terminal panes,
// unsaved scratch tabs) are dropped from the output.
func Save(m *workspace.Manager) ([]byte, error) {
	d := doc{
		SchemaVersion:   schemaVersion,
		ActiveWorkspace: m.ActiveWorkspace,
	}
	for _, w := range m.Workspaces {
		d.Workspaces = append(d.Workspaces, workspaceDoc{
			RootPath:     w.RootPath,
			Label:        w.Label,
			ActivePaneID: int(w.ActivePaneID),
			PaneRoot:     encodePane(w.Root),
		})
	}
	return json.MarshalIndent(d, "", "  ")
}

func encodePane(n *workspace.PaneNode) paneDoc {
	if n.Kind == workspace.PaneSplit {
		dir := "horizontal"
		if n.Direction == workspace.Vertical {
			dir = "vertical"
		}
		first := encodePane(n.First)
		second := encodePane(n.Second)
		return paneDoc{Kind: "split", Direction: dir, Ratio: n.Ratio, First: &first, Second: &second}
	}

	var tabs []tabDoc
	for _, tab := range n.Tabs {
		if tab.FilePath == "" {
			continue
		}
		tabs = append(tabs, tabDoc{FilePath: tab.FilePath})
	}
	return paneDoc{Kind: "leaf", ID: int(n.ID), Tabs: tabs, ActiveTab: clampActiveTab(n.ActiveTab, len(tabs))}
}

func clampActiveTab(active, count int) int {
	if count == 0 {
		return 0
	}
	if active < 0 || active >= count {
		return 0
	}
	return active
}

// FileLoader loads the content of a persisted tab's file into something
// the restored Tab can render. Restore calls it once per persisted tab
// path; a failing load (including a missing file) causes that tab alone
// to be skipped, not the whole workspace.
type FileLoader func(path string) (*bufcore.TextBuffer, error)

// DefaultFileLoader reads path from disk with os.ReadFile.
func DefaultFileLoader(path string) (*bufcore.TextBuffer, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return bufcore.NewTextBufferFromString(string(content)), nil
}

// Restore parses data and rebuilds a Manager, loading each persisted
// tab's file via load. A workspace whose root no longer exists is
// skipped entirely; within a surviving workspace, missing tab files are
// skipped individually and an empty leaf gets a placeholder "Untitled"
// tab. Restore fails only if every workspace failed to restore.
func Restore(data []byte, load FileLoader) (*workspace.Manager, error) {
	var d doc
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("session: parse: %w", err)
	}
	if load == nil {
		load = DefaultFileLoader
	}

	m := workspace.NewManager()
	for _, wd := range d.Workspaces {
		root, err := filepath.EvalSymlinks(wd.RootPath)
		if err != nil {
			continue
		}
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			continue
		}

		w := workspace.NewWorkspace(root, wd.Label)
		w.Root = decodePane(wd.PaneRoot, load)
		w.ActivePaneID = workspace.PaneID(wd.ActivePaneID)
		w.SyncPaneIDGenerator()
		m.AddWorkspace(w)
	}

	if len(m.Workspaces) == 0 {
		return nil, fmt.Errorf("session: no workspace could be restored")
	}
	if d.ActiveWorkspace >= 0 && d.ActiveWorkspace < len(m.Workspaces) {
		m.ActiveWorkspace = d.ActiveWorkspace
	}
	return m, nil
}

func decodePane(pd paneDoc, load FileLoader) *workspace.PaneNode {
	if pd.Kind == "split" {
		dir := workspace.Horizontal
		if pd.Direction == "vertical" {
			dir = workspace.Vertical
		}
		var first, second *workspace.PaneNode
		if pd.First != nil {
			first = decodePane(*pd.First, load)
		} else {
			first = workspace.NewLeaf(0)
		}
		if pd.Second != nil {
			second = decodePane(*pd.Second, load)
		} else {
			second = workspace.NewLeaf(0)
		}
		return workspace.NewSplit(dir, pd.Ratio, first, second)
	}

	leaf := workspace.NewLeaf(workspace.PaneID(pd.ID))
	for _, td := range pd.Tabs {
		buf, err := load(td.FilePath)
		if err != nil {
			continue
		}
		leaf.Tabs = append(leaf.Tabs, &workspace.Tab{
			FilePath: td.FilePath,
			Label:    filepath.Base(td.FilePath),
			Content:  bufview.NewTextBufferView(buf, nil),
		})
	}
	if len(leaf.Tabs) == 0 {
		leaf.Tabs = append(leaf.Tabs, &workspace.Tab{Label: "Untitled"})
	}
	leaf.ActiveTab = clampActiveTab(pd.ActiveTab, len(leaf.Tabs))
	return leaf
}
