// Package ptyproc owns a child process attached to a pseudo-terminal,
// following the github.com/creack/pty lifecycle pattern:
// spawn, read in a background goroutine, route output through a channel,
// and release OS resources deterministically on Close.
package ptyproc

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/creack/pty"
)

// EventKind discriminates the two events a Handle can emit.
type EventKind uint8

const (
	EventOutput EventKind = iota
	EventError
)

// Event is one item from a Handle's event channel.
type Event struct {
	Kind  EventKind
	Bytes []byte
	Err   error
}

// Wakeup is signaled after every event send so a drain loop blocked on an
// OS event source can be woken without polling.
type Wakeup interface {
	Signal()
}

// Handle is a running child process attached to a PTY.
type Handle struct {
	ptmx   *os.File
	cmd    *exec.Cmd
	events chan Event
	wakeup Wakeup

	writeMu  sync.Mutex
	exited   atomic.Bool
	exitCode atomic.Int32
}

// Spawn starts cmd/args in cwd attached to a rows x cols PTY. When
// loginShell is true, argv[0] is prefixed with "-" so the command starts
// as a login shell; command and args are still what runs, and no default
// shell is looked up. The child's
// environment always carries TERM=xterm-256color and COLORTERM=truecolor.
func Spawn(command string, args []string, cwd string, rows, cols int, loginShell bool) (*Handle, error) {
	return SpawnWithWakeup(command, args, cwd, rows, cols, loginShell, nil)
}

// SpawnWithWakeup is Spawn but signals wakeup after every PTY read.
func SpawnWithWakeup(command string, args []string, cwd string, rows, cols int, loginShell bool, wakeup Wakeup) (*Handle, error) {
	cmd := exec.Command(command, args...)
	cmd.Dir = cwd
	cmd.Env = append(os.Environ(), "TERM=xterm-256color", "COLORTERM=truecolor")
	if loginShell && len(cmd.Args) > 0 {
		cmd.Args[0] = "-" + command
	}

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return nil, fmt.Errorf("ptyproc: start: %w", err)
	}

	h := &Handle{
		ptmx:   ptmx,
		cmd:    cmd,
		events: make(chan Event, 64),
		wakeup: wakeup,
	}
	go h.readLoop()
	go h.waitLoop()
	return h, nil
}

// waitLoop blocks until the child exits and records its exit code, so
// TryWait can report it without itself blocking.
func (h *Handle) waitLoop() {
	err := h.cmd.Wait()
	code := 0
	if h.cmd.ProcessState != nil {
		code = h.cmd.ProcessState.ExitCode()
	} else if err != nil {
		code = -1
	}
	h.exitCode.Store(int32(code))
	h.exited.Store(true)
}

// readLoop reads 4096-byte chunks until EOF or error, sending each as an
// EventOutput event (or an EventError on failure) and signaling the wakeup
// after every send. The goroutine is never joined: on some platforms a
// blocked read does not unblock when the PTY is closed, so Close kills the
// child instead and lets the goroutine exit on its own when the read
// eventually fails.
func (h *Handle) readLoop() {
	buf := make([]byte, 4096)
	for {
		n, err := h.ptmx.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			h.events <- Event{Kind: EventOutput, Bytes: chunk}
			if h.wakeup != nil {
				h.wakeup.Signal()
			}
		}
		if err != nil {
			if err != io.EOF {
				h.events <- Event{Kind: EventError, Err: err}
				if h.wakeup != nil {
					h.wakeup.Signal()
				}
			}
			close(h.events)
			return
		}
	}
}

// TryRecv returns the next available event without blocking, or ok=false
// if none is queued.
func (h *Handle) TryRecv() (Event, bool) {
	select {
	case e, ok := <-h.events:
		return e, ok
	default:
		return Event{}, false
	}
}

// Write routes bytes to the child's stdin. The writer is not guarded
// against concurrent reads (reads happen only in the background
// goroutine) but writes from multiple callers are serialized.
func (h *Handle) Write(p []byte) (int, error) {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	return h.ptmx.Write(p)
}

// Resize changes the PTY window size.
func (h *Handle) Resize(rows, cols int) error {
	return pty.Setsize(h.ptmx, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
}

// TryWait returns the child's exit code if it has already exited, or
// ok=false if it is still running.
func (h *Handle) TryWait() (code int, ok bool) {
	if !h.exited.Load() {
		return 0, false
	}
	return int(h.exitCode.Load()), true
}

// Close kills the child process (guaranteeing the reader goroutine
// unblocks and exits) and releases the PTY file descriptor.
func (h *Handle) Close() error {
	if h.cmd.Process != nil {
		_ = h.cmd.Process.Kill()
	}
	return h.ptmx.Close()
}
