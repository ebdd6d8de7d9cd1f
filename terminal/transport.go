package terminal

// Transport is the byte pipe between a Terminal and whatever produces the
// wire stream: a PTY-backed child process, a replayed capture file, a
// network multiplexer. Terminal only ever talks to this interface, so any
// of those can stand in for the real PTY.
type Transport interface {
	// ReadAvailable reads whatever bytes are currently available into buf,
	// returning the count read. Returns an error wrapping
	// ErrClosedTransport once the peer has gone away.
	ReadAvailable(buf []byte) (int, error)

	// Write writes p in full, retrying short writes.
	Write(p []byte) (int, error)

	// Resize notifies the transport of a window-size change (e.g. a PTY
	// ioctl); transports with no such concept may no-op.
	Resize(cols, rows int) error

	// Close releases the transport's resources. Idempotent.
	Close() error
}
