package terminal

import "errors"

// Sentinel errors for the Terminal lifecycle and transport.
var (
	// ErrClosedTransport is returned by ReadPipe/WritePipe once the
	// transport has been closed (process exited, Close called).
	ErrClosedTransport = errors.New("terminal: transport closed")

	// ErrEscapeOverflow names the escape-overflow error kind. Nothing in
	// the module returns or reports it: the parser truncates or ignores an
	// oversized escape/CSI/OSC sequence without signalling an error.
	ErrEscapeOverflow = errors.New("terminal: escape sequence overflow")

	// ErrInvalidGeometry is returned by Resize/Init when rows or cols is
	// non-positive.
	ErrInvalidGeometry = errors.New("terminal: invalid geometry")

	// ErrInvalidParam is returned by Init when no exec path is set or the
	// terminal is not in the Init state, by SetTransport outside the Init
	// state, and by StartPTY when the path is empty.
	ErrInvalidParam = errors.New("terminal: invalid parameter or state")
)
