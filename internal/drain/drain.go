// Package drain implements the single-threaded event-drain loop: the main
// thread's only way of observing state change from the reader threads that
// feed PTYs, file watches, and platform input. Background threads never
// touch editor state directly; they only enqueue events and, for the PTY
// wakeup case, ping a debounced sender.
package drain

import (
	"sync/atomic"

	"github.com/kungfusheep/glyphcore/internal/focus"
	"github.com/kungfusheep/glyphcore/internal/termio"
)

// Kind discriminates the events the drain loop dispatches.
type Kind uint8

const (
	KeyEvent Kind = iota
	MouseEvent
	ScrollEvent
	PtyWakeup
	CursorBlink
	Resize
	FileDrop
)

// Event is one entry in the MPSC channel background threads feed and the
// drain loop pops in batches.
type Event struct {
	Kind Kind

	Key termio.KeyEvent

	MouseCol, MouseRow int
	MouseKind          focus.MouseKind

	ScrollDeltaPx int

	ResizeWidthPx, ResizeHeightPx int

	FileDropPaths []string
}

// Terminal is the subset of termbuf.TerminalBuffer the drain loop needs to
// poll on every PtyWakeup and CursorBlink cycle, without importing termbuf
// (which would pull in ptyproc and the terminal emulator for a loop that
// only needs to know whether output arrived).
type Terminal interface {
	// PollEvents drains queued PTY output into the emulator and reports
	// whether anything was processed, without clearing accumulated dirty
	// lines (a separate, later TakeDirtyLines call does that).
	PollEvents() bool
	// NeedsFollowUpWakeup reports whether the last PollEvents call stopped
	// short of fully draining the PTY because of its byte budget.
	NeedsFollowUpWakeup() bool
}

// Loop owns the event channel, the active focus target, and the set of
// live terminals, and runs entirely on the main thread. No lock protects
// any of this state: nothing else ever touches it.
type Loop struct {
	events chan Event

	wakeupPending atomic.Bool
	runLoopWaker  func()

	active focus.Target
	ctx    *focus.Context

	terminals []Terminal

	blinkVisible bool

	render     func()
	onResize   func(widthPx, heightPx int)
	onFileDrop func(paths []string)

	cursorRegions []CursorRegion
}

// New creates a drain loop. render is called at most once per DrainOnce
// call, when the cycle produced at least one visible change. runLoopWaker
// is the platform hook that unblocks the OS run loop after an event is
// enqueued from a background thread; it may be nil in tests.
func New(ctx *focus.Context, render func(), runLoopWaker func()) *Loop {
	if runLoopWaker == nil {
		runLoopWaker = func() {}
	}
	return &Loop{
		events:       make(chan Event, 256),
		runLoopWaker: runLoopWaker,
		ctx:          ctx,
		render:       render,
	}
}

// SetActiveTarget switches which focus target receives Key/Mouse/Scroll
// events. A nil target makes those events no-ops.
func (l *Loop) SetActiveTarget(t focus.Target) { l.active = t }

// OnResize installs the callback invoked on a Resize event, before the
// context's view dimensions are updated.
func (l *Loop) OnResize(f func(widthPx, heightPx int)) { l.onResize = f }

// OnFileDrop installs the callback invoked on a FileDrop event.
func (l *Loop) OnFileDrop(f func(paths []string)) { l.onFileDrop = f }

// RegisterTerminal adds a terminal to the set polled on PtyWakeup and
// CursorBlink cycles.
func (l *Loop) RegisterTerminal(t Terminal) {
	l.terminals = append(l.terminals, t)
}

// UnregisterTerminal removes a terminal previously passed to
// RegisterTerminal.
func (l *Loop) UnregisterTerminal(t Terminal) {
	for i, existing := range l.terminals {
		if existing == t {
			l.terminals = append(l.terminals[:i], l.terminals[i+1:]...)
			return
		}
	}
}

// Push enqueues an event from any thread. It never blocks the caller
// indefinitely: the channel is large enough to absorb normal input bursts,
// but a full channel drops the event rather than stalling a reader thread.
func (l *Loop) Push(e Event) {
	select {
	case l.events <- e:
	default:
	}
	l.runLoopWaker()
}

// SendPtyWakeup is the debounced PTY-output sender: it sets wakeup_pending
// and enqueues a PtyWakeup event only on a 0->1 transition, coalescing a
// flood of output notifications from one PTY reader thread into a single
// pending wakeup.
func (l *Loop) SendPtyWakeup() {
	if l.wakeupPending.CompareAndSwap(false, true) {
		select {
		case l.events <- Event{Kind: PtyWakeup}:
		default:
		}
	}
	l.runLoopWaker()
}

// SendPtyWakeupFollowup bypasses the debounce flag and always sends,
// guaranteeing re-entry when a terminal buffer's byte budget was exhausted
// mid-stream and more output remains queued.
func (l *Loop) SendPtyWakeupFollowup() {
	select {
	case l.events <- Event{Kind: PtyWakeup}:
	default:
	}
	l.runLoopWaker()
}

// DrainOnce pops every event currently queued and processes it in order,
// rendering at most once if the cycle produced a visible change. It
// returns whether a render happened. Call this from the main thread only.
func (l *Loop) DrainOnce() bool {
	batch := l.drainChannel()
	if len(batch) == 0 {
		return false
	}

	dirty := false
	wakeupProcessed := false

	for _, e := range batch {
		switch e.Kind {
		case KeyEvent:
			if l.active != nil && l.active.HandleKey(e.Key, l.ctx) == focus.Yes {
				dirty = true
			}
			if l.pollTerminals() {
				dirty = true
			}
		case MouseEvent:
			if l.active != nil && l.active.HandleMouse(e.MouseCol, e.MouseRow, e.MouseKind, l.ctx) == focus.Yes {
				dirty = true
			}
			if l.pollTerminals() {
				dirty = true
			}
		case ScrollEvent:
			if l.active != nil && e.ScrollDeltaPx != 0 {
				l.active.HandleScroll(e.ScrollDeltaPx, l.ctx)
				dirty = true
			}
			if l.pollTerminals() {
				dirty = true
			}
		case PtyWakeup:
			if l.pollTerminals() {
				dirty = true
			}
			wakeupProcessed = true
		case CursorBlink:
			l.blinkVisible = !l.blinkVisible
			if l.pollTerminals() {
				dirty = true
			}
			dirty = true
		case Resize:
			if l.onResize != nil {
				l.onResize(e.ResizeWidthPx, e.ResizeHeightPx)
			}
			l.ctx.ViewWidthPx = e.ResizeWidthPx
			l.ctx.ViewHeightPx = e.ResizeHeightPx
			dirty = true
		case FileDrop:
			if l.onFileDrop != nil {
				l.onFileDrop(e.FileDropPaths)
			}
		}
	}

	if wakeupProcessed {
		l.wakeupPending.Store(false)
	}

	if dirty && l.render != nil {
		l.render()
		return true
	}
	return false
}

// drainChannel pops every event currently queued without blocking,
// separating the receiver borrow from the state mutation that follows.
func (l *Loop) drainChannel() []Event {
	var batch []Event
	for {
		select {
		case e := <-l.events:
			batch = append(batch, e)
		default:
			return batch
		}
	}
}

func (l *Loop) pollTerminals() bool {
	any := false
	for _, t := range l.terminals {
		if t.PollEvents() {
			any = true
		}
		if t.NeedsFollowUpWakeup() {
			l.SendPtyWakeupFollowup()
		}
	}
	return any
}

// BlinkVisible reports the cursor's current blink phase.
func (l *Loop) BlinkVisible() bool { return l.blinkVisible }

// CursorRegionKind names which screen area a CursorRegion describes.
type CursorRegionKind uint8

const (
	RegionContent CursorRegionKind = iota
	RegionRail
	RegionTabBar
	RegionSelectorOverlay
)

// CursorRegion is one area the renderer should place a hardware or
// software cursor/highlight in for the current frame, in pixel space.
type CursorRegion struct {
	Kind       CursorRegionKind
	X, Y, W, H int
}

// SetCursorRegions replaces the set of regions the renderer should draw a
// cursor indicator for this frame. Called by the layer that knows pixel
// geometry (rail width, tab bar height, …); the drain loop only carries
// the value between frames.
func (l *Loop) SetCursorRegions(regions []CursorRegion) { l.cursorRegions = regions }

// CursorRegions returns the regions set by the most recent
// SetCursorRegions call.
func (l *Loop) CursorRegions() []CursorRegion { return l.cursorRegions }
