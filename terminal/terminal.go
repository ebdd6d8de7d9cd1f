//! Terminal lifecycle: wires a Transport, a govte.Processor and a
//! screen.Screen into the construct/init/read-pipe/write-pipe/resize state
//! machine vshell.c drives through vterm_create/vterm_alloc/vterm_set_exec/
//! vterm_init/vterm_read_pipe/vterm_write_pipe/vterm_resize/vterm_set_colors/
//! vterm_get_title.

package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/cliofy/govte"
	"github.com/cliofy/govte/screen"
	"github.com/google/uuid"
)

// defaultShell picks the child to spawn when New is called without an
// explicit exec spec, mirroring a plain `create(cols, rows, flags)` with no
// path argument (spec.md §6).
func defaultShell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}

// lifecycleState is the Init/Running/Closed state machine.
type lifecycleState int

const (
	stateInit lifecycleState = iota
	stateRunning
	stateClosed
)

// readChunkSize is the buffer size ReadPipe drains the transport into.
const readChunkSize = 4096

// Terminal couples a Transport to a parser/screen pair and tracks its own
// lifecycle state. It is not safe for concurrent use: spec.md §5 keeps the
// core single-threaded and cooperatively driven by the host, leaving any
// cross-goroutine serialisation to a mutex the host owns externally (see
// cmd/govte-shell's runMutex).
type Terminal struct {
	ID uuid.UUID

	state     lifecycleState
	flags     Flags
	transport Transport
	processor *govte.Processor
	screen    *screen.Screen

	execPath string
	execArgv []string

	// DumpSink, when non-nil and DumpMode is set, receives a copy of every
	// byte read from the transport before parsing (spec.md §6 "echo raw
	// stream to a diagnostic sink").
	DumpSink io.Writer

	readBuf [readChunkSize]byte
}

// New immediately spawns the host's default shell under a PTY sized
// cols x rows and returns a Terminal in the Running state, matching
// spec.md §6's `create(cols, rows, flags)` (no exec spec: the child
// defaults to $SHELL, falling back to /bin/sh).
func New(cols, rows int, flags Flags) (*Terminal, error) {
	return NewWithExec(cols, rows, flags, defaultShell(), nil)
}

// NewWithExec immediately spawns path/argv under a PTY sized cols x rows,
// the combined form of NewDeferred+SetExec+Init for callers who already
// know what to run.
func NewWithExec(cols, rows int, flags Flags, path string, argv []string) (*Terminal, error) {
	t := NewDeferred(cols, rows, flags)
	t.SetExec(path, argv)
	if err := t.Init(cols, rows); err != nil {
		return nil, err
	}
	return t, nil
}

// NewDeferred builds a Terminal in the Init state without spawning
// anything, mirroring vterm_alloc. SetExec and Init must follow before any
// other operation (spec.md §4.G, supplemented from
// original_source/demo/vshell.c's deferred-construction path).
func NewDeferred(cols, rows int, flags Flags) *Terminal {
	scr := screen.New(rows, cols)
	scr.SetVT100Mode(flags.Has(VT100Mode))

	processor := govte.NewProcessor(scr)

	return &Terminal{
		ID:        uuid.New(),
		state:     stateInit,
		flags:     flags,
		processor: processor,
		screen:    scr,
	}
}

// SetExec records the child command to spawn on Init, mirroring
// vterm_set_exec. Only valid before Init.
func (t *Terminal) SetExec(path string, argv []string) {
	t.execPath = path
	t.execArgv = argv
}

// Init spawns the configured child under a PTY of the given size and
// transitions Init -> Running, mirroring vterm_init. Returns
// ErrInvalidParam if called with no exec path configured or outside the
// Init state.
func (t *Terminal) Init(cols, rows int) error {
	if t.state != stateInit {
		return ErrInvalidParam
	}
	if t.execPath == "" {
		return ErrInvalidParam
	}
	if cols < 1 || rows < 1 {
		return ErrInvalidGeometry
	}

	transport, err := StartPTY(t.execPath, t.execArgv, cols, rows)
	if err != nil {
		return err
	}

	t.transport = transport
	t.state = stateRunning
	return nil
}

// SetTransport swaps in an arbitrary Transport (e.g. a replayed capture or
// a test double) in place of a live PTY, transitioning Init -> Running.
// Not part of the original vterm API; useful for hosting the screen over
// something other than a spawned child.
func (t *Terminal) SetTransport(tr Transport) error {
	if t.state != stateInit {
		return ErrInvalidParam
	}
	t.transport = tr
	t.state = stateRunning
	return nil
}

// ReadPipe drains whatever bytes are currently available from the
// transport through the parser/screen pair, returning the number of bytes
// consumed. Returns an error wrapping ErrClosedTransport once the peer has
// gone away, mirroring vterm_read_pipe's `bytes_consumed | -1` contract
// expressed idiomatically as (int, error).
func (t *Terminal) ReadPipe() (int, error) {
	if t.state != stateRunning {
		return 0, ErrClosedTransport
	}

	n, err := t.transport.ReadAvailable(t.readBuf[:])
	if n > 0 {
		chunk := t.readBuf[:n]
		if t.flags.Has(DumpMode) && t.DumpSink != nil {
			_, _ = t.DumpSink.Write(chunk)
		}
		t.processor.Advance(t.screen, chunk)
	}
	if err != nil {
		t.state = stateClosed
		return n, err
	}
	return n, nil
}

// WritePipe forwards a single byte of terminal input (e.g. a keypress) to
// the transport, mirroring vterm_write_pipe.
func (t *Terminal) WritePipe(b byte) error {
	return t.WriteInput([]byte{b})
}

// WriteInput forwards a run of input bytes to the transport, retrying
// short writes to completion (spec.md §4.G).
func (t *Terminal) WriteInput(p []byte) error {
	if t.state != stateRunning {
		return ErrClosedTransport
	}
	_, err := t.transport.Write(p)
	return err
}

// Resize notifies the screen and the transport of a new window size,
// rejecting non-positive geometry with ErrInvalidGeometry (spec.md §7
// kind 3).
func (t *Terminal) Resize(cols, rows int) error {
	if cols < 1 || rows < 1 {
		return ErrInvalidGeometry
	}
	t.screen.Resize(rows, cols)
	if t.state == stateRunning {
		return t.transport.Resize(cols, rows)
	}
	return nil
}

// SetColors redefines the screen's default attribute colors, mirroring
// vterm_set_colors.
func (t *Terminal) SetColors(fg, bg screen.ColorIndex) {
	// The default attribute lives inside screen.Screen; exposed here as a
	// thin pass-through so callers never need to import screen's
	// unexported fields.
	t.screen.SetDefaultColors(fg, bg)
}

// Title returns the current window title, mirroring vterm_get_title's
// idiomatic form.
func (t *Terminal) Title() string {
	return t.screen.Title()
}

// TitleInto copies the current title into buf, truncating if it doesn't
// fit, and returns the number of bytes written — parity with
// vterm_get_title(vterm, buf, sizeof(buf))'s C signature
// (original_source/demo/vshell.c).
func (t *Terminal) TitleInto(buf []byte) int {
	title := t.screen.Title()
	return copy(buf, title)
}

// Cell returns the screen cell at (row, col).
func (t *Terminal) Cell(row, col int) (screen.Cell, bool) {
	return t.screen.Cell(row, col)
}

// CursorPosition returns the screen's 0-based cursor position.
func (t *Terminal) CursorPosition() (row, col int) {
	return t.screen.CursorPosition()
}

// Dimensions returns the screen's current row/column count.
func (t *Terminal) Dimensions() (rows, cols int) {
	return t.screen.Dimensions()
}

// Closed reports whether the terminal has left the Running state.
func (t *Terminal) Closed() bool {
	return t.state == stateClosed
}

// Close releases the transport, transitioning to Closed. Idempotent.
func (t *Terminal) Close() error {
	if t.state == stateClosed {
		return nil
	}
	t.state = stateClosed
	if t.transport == nil {
		return nil
	}
	return t.transport.Close()
}

func (t *Terminal) String() string {
	return fmt.Sprintf("Terminal{id=%s, state=%d}", t.ID, t.state)
}
