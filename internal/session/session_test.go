package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kungfusheep/glyphcore/internal/bufcore"
	"github.com/kungfusheep/glyphcore/internal/bufview"
	"github.com/kungfusheep/glyphcore/internal/workspace"
)

func TestSaveDropsTabsWithoutAFilePath(t *testing.T) {
	dir := t.TempDir()
	mainPath := filepath.Join(dir, "main.go")
	w := workspace.NewWorkspace(dir, "repo")
	w.Root.Tabs = []*workspace.Tab{
		{FilePath: mainPath},
		{FilePath: ""}, // terminal/scratch tab, must be dropped
	}
	m := workspace.NewManager()
	m.AddWorkspace(w)

	data, err := Save(m)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	restored, err := Restore(data, func(path string) (*bufcore.TextBuffer, error) {
		return bufcore.NewTextBufferFromString("package main\n"), nil
	})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}

	tabs := restored.Active().Root.Tabs
	if len(tabs) != 1 {
		t.Fatalf("tabs = %d, want 1", len(tabs))
	}
	if tabs[0].FilePath != mainPath {
		t.Fatalf("tabs[0].FilePath = %q, want %q", tabs[0].FilePath, mainPath)
	}
}

func TestRestoreSkipsMissingWorkspaceRoot(t *testing.T) {
	w := workspace.NewWorkspace("/does/not/exist/at/all", "ghost")
	m := workspace.NewManager()
	m.AddWorkspace(w)

	data, err := Save(m)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := Restore(data, nil); err == nil {
		t.Fatalf("expected restore to fail when the only workspace's root is missing")
	}
}

func TestRestoreInsertsUntitledPlaceholderForEmptyLeaf(t *testing.T) {
	dir := t.TempDir()
	w := workspace.NewWorkspace(dir, "scratch")
	// no tabs at all
	m := workspace.NewManager()
	m.AddWorkspace(w)

	data, err := Save(m)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	restored, err := Restore(data, nil)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}

	tabs := restored.Active().Root.Tabs
	if len(tabs) != 1 {
		t.Fatalf("tabs = %d, want 1", len(tabs))
	}
	if tabs[0].Label != "Untitled" {
		t.Fatalf("tabs[0].Label = %q, want %q", tabs[0].Label, "Untitled")
	}
}

func TestRestoreSkipsMissingTabFileButKeepsWorkspace(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "keep.go")
	if err := os.WriteFile(existing, []byte("package main\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	w := workspace.NewWorkspace(dir, "proj")
	w.Root.Tabs = []*workspace.Tab{
		{FilePath: existing},
		{FilePath: filepath.Join(dir, "missing.go")},
	}
	m := workspace.NewManager()
	m.AddWorkspace(w)

	data, err := Save(m)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	restored, err := Restore(data, nil)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}

	tabs := restored.Active().Root.Tabs
	if len(tabs) != 1 {
		t.Fatalf("expected the missing file's tab to be skipped, got %d tabs", len(tabs))
	}
	if tabs[0].FilePath != existing {
		t.Fatalf("tabs[0].FilePath = %q, want %q", tabs[0].FilePath, existing)
	}
	if _, ok := tabs[0].Content.(*bufview.TextBufferView); !ok {
		t.Fatalf("tabs[0].Content = %T, want *bufview.TextBufferView", tabs[0].Content)
	}
}

func TestRestoreSyncsPaneIDGeneratorPastMaxExistingID(t *testing.T) {
	dir := t.TempDir()
	w := workspace.NewWorkspace(dir, "proj")
	rightID, _ := w.SplitPane(0, workspace.Horizontal, 0.5)
	m := workspace.NewManager()
	m.AddWorkspace(w)

	data, err := Save(m)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	restored, err := Restore(data, nil)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}

	rw := restored.Active()
	if int(rw.NextPaneID()) <= int(rightID) {
		t.Fatalf("NextPaneID() = %d, want > %d", rw.NextPaneID(), rightID)
	}
}

func TestRestoreSucceedsIfAnyWorkspaceSurvives(t *testing.T) {
	good := t.TempDir()
	m := workspace.NewManager()
	m.AddWorkspace(workspace.NewWorkspace("/definitely/missing/xyz", "ghost"))
	m.AddWorkspace(workspace.NewWorkspace(good, "real"))

	data, err := Save(m)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	restored, err := Restore(data, nil)
	if err != nil {
		t.Fatalf("expected restore to succeed with one valid workspace: %v", err)
	}
	if len(restored.Workspaces) != 1 {
		t.Fatalf("Workspaces = %d, want 1", len(restored.Workspaces))
	}
}
