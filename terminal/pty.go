package terminal

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/creack/pty"
)

// readPollInterval bounds how long a single ReadAvailable blocks before
// returning (0, nil), matching examples/capture_tui/main.go's
// ptmx.SetReadDeadline(time.Now().Add(100*time.Millisecond)) poll loop.
const readPollInterval = 100 * time.Millisecond

// PTY is a Transport backed by a real pseudo-terminal and a spawned child
// process, grounded on the PTY-start/Setsize/Read loop
// examples/capture_tui used directly against a govte.Parser.
type PTY struct {
	cmd  *exec.Cmd
	file *os.File
}

var _ Transport = (*PTY)(nil)

// StartPTY spawns path with argv under a new PTY sized cols x rows. The
// child inherits the host's environment, including TERM (spec.md §6).
func StartPTY(path string, argv []string, cols, rows int) (*PTY, error) {
	if path == "" {
		return nil, ErrInvalidParam
	}
	if cols < 1 || rows < 1 {
		return nil, ErrInvalidGeometry
	}

	cmd := exec.Command(path, argv...)
	cmd.Env = os.Environ()

	f, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
	if err != nil {
		return nil, err
	}

	return &PTY{cmd: cmd, file: f}, nil
}

// ReadAvailable implements Transport: it never blocks longer than
// readPollInterval, returning (0, nil) on timeout so the caller's read loop
// stays responsive to resize/shutdown instead of sleeping on I/O.
func (p *PTY) ReadAvailable(buf []byte) (int, error) {
	if err := p.file.SetReadDeadline(time.Now().Add(readPollInterval)); err != nil {
		return 0, err
	}

	n, err := p.file.Read(buf)
	if err != nil {
		if errors.Is(err, os.ErrDeadlineExceeded) {
			return 0, nil
		}
		if errors.Is(err, io.EOF) {
			return n, ErrClosedTransport
		}
		return n, err
	}
	return n, nil
}

// Write implements Transport, retrying until p is fully written or an
// error occurs.
func (p *PTY) Write(b []byte) (int, error) {
	total := 0
	for total < len(b) {
		n, err := p.file.Write(b[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Resize implements Transport.
func (p *PTY) Resize(cols, rows int) error {
	if cols < 1 || rows < 1 {
		return ErrInvalidGeometry
	}
	return pty.Setsize(p.file, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
}

// Close implements Transport: closes the PTY file and reaps the child.
func (p *PTY) Close() error {
	closeErr := p.file.Close()
	if p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
		_ = p.cmd.Wait()
	}
	return closeErr
}
