package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func statModTime(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func TestRegisterInsideRootIsNoop(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, 10*time.Millisecond, nil)
	file := filepath.Join(dir, "inside.txt")
	os.WriteFile(file, []byte("x"), 0o644)

	if err := w.Register(file); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if w.FileCount() != 0 {
		t.Fatalf("FileCount = %d, want 0 for a file inside the workspace root", w.FileCount())
	}
}

func TestRegisterOutsideRootTracksFile(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	file := filepath.Join(outside, "external.txt")
	os.WriteFile(file, []byte("x"), 0o644)

	w := New(root, 10*time.Millisecond, nil)
	if err := w.Register(file); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if w.FileCount() != 1 {
		t.Fatalf("FileCount = %d, want 1", w.FileCount())
	}
	if w.WatcherCount() != 1 {
		t.Fatalf("WatcherCount = %d, want 1", w.WatcherCount())
	}
}

func TestRegisterSharesWatcherAcrossSiblingFiles(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	a := filepath.Join(outside, "a.txt")
	b := filepath.Join(outside, "b.txt")
	os.WriteFile(a, []byte("x"), 0o644)
	os.WriteFile(b, []byte("y"), 0o644)

	w := New(root, 10*time.Millisecond, nil)
	w.Register(a)
	w.Register(b)

	if w.FileCount() != 2 {
		t.Fatalf("FileCount = %d, want 2", w.FileCount())
	}
	if w.WatcherCount() != 1 {
		t.Fatalf("WatcherCount = %d, want 1 (shared parent-dir watcher)", w.WatcherCount())
	}
}

func TestUnregisterDropsWatcherAtZeroRefcount(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	file := filepath.Join(outside, "f.txt")
	os.WriteFile(file, []byte("x"), 0o644)

	w := New(root, 10*time.Millisecond, nil)
	w.Register(file)
	w.Register(file)
	if w.FileCount() != 1 {
		t.Fatalf("re-registering the same file should not add a second entry")
	}

	w.Unregister(file)
	if w.WatcherCount() != 1 {
		t.Fatalf("watcher should survive first unregister (refcount 2 -> 1)")
	}
	w.Unregister(file)
	if w.WatcherCount() != 0 {
		t.Fatalf("watcher should be dropped once refcount reaches 0")
	}
}

func TestFileCountAtLeastWatcherCountInvariant(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	a := filepath.Join(outside, "a.txt")
	b := filepath.Join(outside, "b.txt")
	os.WriteFile(a, []byte("x"), 0o644)
	os.WriteFile(b, []byte("y"), 0o644)

	w := New(root, 10*time.Millisecond, nil)
	w.Register(a)
	w.Register(b)
	if w.FileCount() < w.WatcherCount() {
		t.Fatalf("file_count (%d) must be >= watcher_count (%d)", w.FileCount(), w.WatcherCount())
	}
}

func TestPauseThenResumeDetectsChangeAndReportsNotPaused(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	file := filepath.Join(outside, "f.txt")
	os.WriteFile(file, []byte("x"), 0o644)

	var changed []string
	w := New(root, 10*time.Millisecond, func(p string) { changed = append(changed, p) })
	w.Register(file)

	state := w.Pause(statModTime)
	if !w.IsPaused() {
		t.Fatalf("expected IsPaused after Pause with tracked files and no watchers")
	}

	time.Sleep(10 * time.Millisecond) // ensure a distinguishable mtime
	os.WriteFile(file, []byte("changed"), 0o644)

	if err := w.Resume(state, statModTime); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if w.IsPaused() {
		t.Fatalf("expected not paused after Resume re-registers watchers")
	}

	canon, _ := filepath.EvalSymlinks(file)
	found := false
	for _, c := range changed {
		if c == canon {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Resume to report the change made while paused, got %v", changed)
	}
}
