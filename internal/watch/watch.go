// Package watch tracks files opened from outside the workspace root, using
// one non-recursive fsnotify watcher per parent directory shared across
// every tracked file beneath it.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeFunc is invoked, on the reader goroutine, once per ready path after
// debouncing coalesces a burst of writes.
type ChangeFunc func(path string)

// dirWatch is one fsnotify watcher on a parent directory, shared by every
// tracked file inside it.
type dirWatch struct {
	watcher *fsnotify.Watcher
	targets map[string]int // canonical file path -> refcount
	stop    chan struct{}
}

// Watcher registers individual files for change notification, reusing one
// watcher per parent directory and reference-counting across files.
type Watcher struct {
	mu          sync.Mutex
	root        string
	debounce    time.Duration
	onChange    ChangeFunc
	dirs        map[string]*dirWatch // parent dir -> watch
	fileToDir   map[string]string    // canonical file -> parent dir
	fileRefs    map[string]int       // canonical file -> refcount (aggregated, may span dir churn)
}

// New creates a Watcher. root is the workspace root: paths inside it are
// already covered by directory-level indexing and register is a no-op for
// them. debounce coalesces bursts of "data modified" events no closer
// together than debounce.
func New(root string, debounce time.Duration, onChange ChangeFunc) *Watcher {
	return &Watcher{
		root:      root,
		debounce:  debounce,
		onChange:  onChange,
		dirs:      make(map[string]*dirWatch),
		fileToDir: make(map[string]string),
		fileRefs:  make(map[string]int),
	}
}

// insideRoot reports whether path is inside the workspace root.
func (w *Watcher) insideRoot(path string) bool {
	if w.root == "" {
		return false
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !hasDotDotPrefix(rel)
}

func hasDotDotPrefix(rel string) bool {
	return len(rel) >= 2 && rel[0] == '.' && rel[1] == '.' &&
		(len(rel) == 2 || rel[2] == filepath.Separator)
}

// Register starts tracking path. Paths inside the workspace root are
// ignored. A path already tracked has its reference count incremented
// instead of creating a second watcher.
func (w *Watcher) Register(path string) error {
	canon, err := filepath.EvalSymlinks(path)
	if err != nil {
		canon = filepath.Clean(path)
	}
	if w.insideRoot(canon) {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fileRefs[canon] > 0 {
		w.fileRefs[canon]++
		return nil
	}

	parent := filepath.Dir(canon)
	dw, ok := w.dirs[parent]
	if !ok {
		fw, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		if err := fw.Add(parent); err != nil {
			fw.Close()
			return err
		}
		dw = &dirWatch{watcher: fw, targets: make(map[string]int), stop: make(chan struct{})}
		w.dirs[parent] = dw
		go w.readLoop(parent, dw)
	}

	dw.targets[canon]++
	w.fileToDir[canon] = parent
	w.fileRefs[canon] = 1
	return nil
}

// Unregister decrements path's reference count, tearing down its directory
// watcher once no tracked file inside that directory remains.
func (w *Watcher) Unregister(path string) {
	canon, err := filepath.EvalSymlinks(path)
	if err != nil {
		canon = filepath.Clean(path)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.unregisterLocked(canon)
}

func (w *Watcher) unregisterLocked(canon string) {
	if w.fileRefs[canon] == 0 {
		return
	}
	w.fileRefs[canon]--
	if w.fileRefs[canon] > 0 {
		return
	}
	delete(w.fileRefs, canon)

	parent, ok := w.fileToDir[canon]
	if !ok {
		return
	}
	delete(w.fileToDir, canon)

	dw, ok := w.dirs[parent]
	if !ok {
		return
	}
	dw.targets[canon]--
	if dw.targets[canon] <= 0 {
		delete(dw.targets, canon)
	}
	if len(dw.targets) == 0 {
		close(dw.stop)
		dw.watcher.Close()
		delete(w.dirs, parent)
	}
}

// FileCount returns the number of distinct tracked files.
func (w *Watcher) FileCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.fileRefs)
}

// WatcherCount returns the number of live directory watchers.
func (w *Watcher) WatcherCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.dirs)
}

// IsPaused reports whether there are tracked files but no active watchers,
// the state Pause leaves the watcher in.
func (w *Watcher) IsPaused() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.fileRefs) > 0 && len(w.dirs) == 0
}

// PausedState is what Pause returns and Resume consumes: the tracked file
// set and each file's modification time at the moment of pausing.
type PausedState struct {
	files   []string
	refs    map[string]int
	modTime map[string]time.Time
}

// Pause records every tracked file's current modification time and tears
// down all directory watchers, stopping their reader goroutines. The set
// of tracked files itself is preserved so Resume can re-register them.
func (w *Watcher) Pause(statFn func(string) (time.Time, bool)) PausedState {
	w.mu.Lock()
	defer w.mu.Unlock()

	state := PausedState{
		refs:    make(map[string]int, len(w.fileRefs)),
		modTime: make(map[string]time.Time, len(w.fileRefs)),
	}
	for f, refs := range w.fileRefs {
		state.files = append(state.files, f)
		state.refs[f] = refs
		if mt, ok := statFn(f); ok {
			state.modTime[f] = mt
		}
	}

	for parent, dw := range w.dirs {
		close(dw.stop)
		dw.watcher.Close()
		delete(w.dirs, parent)
	}
	w.fileToDir = make(map[string]string)
	return state
}

// Resume re-registers every file from a prior Pause, then invokes onChange
// for any file whose modification time differs from what was recorded
// (including create/delete transitions), catching up on changes that
// happened while suspended.
func (w *Watcher) Resume(state PausedState, statFn func(string) (time.Time, bool)) error {
	for _, f := range state.files {
		refs := state.refs[f]
		// Pause keeps the refcounts; clear this file's so Register builds
		// a watcher again instead of only bumping the count.
		w.mu.Lock()
		delete(w.fileRefs, f)
		w.mu.Unlock()
		for i := 0; i < refs; i++ {
			if err := w.Register(f); err != nil {
				return err
			}
		}
		before, hadBefore := state.modTime[f]
		after, hasAfter := statFn(f)
		if hadBefore != hasAfter || (hadBefore && hasAfter && !before.Equal(after)) {
			if w.onChange != nil {
				w.onChange(f)
			}
		}
	}
	return nil
}

// readLoop filters fsnotify events for this directory's tracked files,
// debounces bursts, and invokes onChange. It exits when dw.stop is closed.
func (w *Watcher) readLoop(parent string, dw *dirWatch) {
	pending := make(map[string]*time.Timer)
	var pendingMu sync.Mutex

	fire := func(path string) {
		pendingMu.Lock()
		delete(pending, path)
		pendingMu.Unlock()
		if w.onChange != nil {
			w.onChange(path)
		}
	}

	for {
		select {
		case <-dw.stop:
			pendingMu.Lock()
			for _, t := range pending {
				t.Stop()
			}
			pendingMu.Unlock()
			return
		case ev, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			canon := filepath.Clean(ev.Name)
			w.mu.Lock()
			_, tracked := dw.targets[canon]
			w.mu.Unlock()
			if !tracked {
				continue
			}

			pendingMu.Lock()
			if t, ok := pending[canon]; ok {
				t.Stop()
			}
			path := canon
			pending[path] = time.AfterFunc(w.debounce, func() { fire(path) })
			pendingMu.Unlock()
		case _, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}
