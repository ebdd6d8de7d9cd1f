package terminal

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransport is an in-memory Transport double so these tests never spawn
// a real PTY/child process.
type fakeTransport struct {
	toRead  []byte
	written bytes.Buffer
	closed  bool
	cols    int
	rows    int
}

func (f *fakeTransport) ReadAvailable(buf []byte) (int, error) {
	if len(f.toRead) == 0 {
		return 0, errors.New("fakeTransport: nothing queued")
	}
	n := copy(buf, f.toRead)
	f.toRead = f.toRead[n:]
	return n, nil
}

func (f *fakeTransport) Write(p []byte) (int, error) {
	return f.written.Write(p)
}

func (f *fakeTransport) Resize(cols, rows int) error {
	f.cols, f.rows = cols, rows
	return nil
}

func (f *fakeTransport) Close() error {
	f.closed = true
	return nil
}

func newTestTerminal(t *testing.T) (*Terminal, *fakeTransport) {
	t.Helper()
	term := NewDeferred(80, 24, 0)
	tr := &fakeTransport{}
	require.NoError(t, term.SetTransport(tr))
	return term, tr
}

func TestNewDeferredStartsInInitAndSetTransportRuns(t *testing.T) {
	term := NewDeferred(80, 24, 0)
	assert.Equal(t, stateInit, term.state)

	tr := &fakeTransport{}
	require.NoError(t, term.SetTransport(tr))
	assert.Equal(t, stateRunning, term.state)
	assert.False(t, term.Closed())
}

func TestSetTransportTwiceFails(t *testing.T) {
	term, _ := newTestTerminal(t)
	err := term.SetTransport(&fakeTransport{})
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestInitWithoutExecFails(t *testing.T) {
	term := NewDeferred(10, 10, 0)
	err := term.Init(10, 10)
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestReadPipeDrivesScreen(t *testing.T) {
	term, tr := newTestTerminal(t)
	tr.toRead = []byte("hi")

	n, err := term.ReadPipe()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	cell, ok := term.Cell(0, 0)
	require.True(t, ok)
	assert.Equal(t, 'h', cell.Glyph)
}

func TestReadPipeClosesOnTransportError(t *testing.T) {
	term, tr := newTestTerminal(t)
	tr.toRead = nil

	_, err := term.ReadPipe()
	assert.Error(t, err)
	assert.True(t, term.Closed())

	_, err = term.ReadPipe()
	assert.ErrorIs(t, err, ErrClosedTransport)
}

func TestDumpModeCopiesRawBytesToSink(t *testing.T) {
	term := NewDeferred(80, 24, DumpMode)
	tr := &fakeTransport{toRead: []byte("abc")}
	require.NoError(t, term.SetTransport(tr))

	var sink bytes.Buffer
	term.DumpSink = &sink

	_, err := term.ReadPipe()
	require.NoError(t, err)
	assert.Equal(t, "abc", sink.String())
}

func TestWriteInputForwardsToTransport(t *testing.T) {
	term, tr := newTestTerminal(t)

	require.NoError(t, term.WriteInput([]byte("ls\n")))
	assert.Equal(t, "ls\n", tr.written.String())
}

func TestWriteInputFailsWhenNotRunning(t *testing.T) {
	term := NewDeferred(80, 24, 0)
	err := term.WriteInput([]byte("x"))
	assert.ErrorIs(t, err, ErrClosedTransport)
}

func TestResizeRejectsNonPositiveGeometry(t *testing.T) {
	term, _ := newTestTerminal(t)
	assert.ErrorIs(t, term.Resize(0, 10), ErrInvalidGeometry)
	assert.ErrorIs(t, term.Resize(10, -1), ErrInvalidGeometry)
}

func TestResizePropagatesToScreenAndTransport(t *testing.T) {
	term, tr := newTestTerminal(t)

	require.NoError(t, term.Resize(40, 12))
	rows, cols := term.Dimensions()
	assert.Equal(t, 12, rows)
	assert.Equal(t, 40, cols)
	assert.Equal(t, 40, tr.cols)
	assert.Equal(t, 12, tr.rows)
}

func TestSetColorsAndTitle(t *testing.T) {
	term, tr := newTestTerminal(t)
	term.SetColors(1, 4)

	tr.toRead = []byte("\x1b]0;hello\x07")
	_, err := term.ReadPipe()
	require.NoError(t, err)
	assert.Equal(t, "hello", term.Title())

	buf := make([]byte, 2)
	n := term.TitleInto(buf)
	assert.Equal(t, 2, n)
	assert.Equal(t, "he", string(buf))
}

func TestCloseIsIdempotentAndReleasesTransport(t *testing.T) {
	term, tr := newTestTerminal(t)

	require.NoError(t, term.Close())
	assert.True(t, tr.closed)
	assert.True(t, term.Closed())
	require.NoError(t, term.Close())
}

func TestStringDoesNotPanic(t *testing.T) {
	term, _ := newTestTerminal(t)
	assert.NotEmpty(t, term.String())
}
