package terminal

// Flags mirrors vterm.h's VTERM_FLAG_* bitmask (original_source/vterm.h),
// passed to New/Init to select optional behavior.
type Flags uint8

const (
	// DumpMode copies every byte read from the transport to the dump sink
	// (original_source VTERM_FLAG_DUMP); the bytes are still interpreted
	// into the screen as usual.
	DumpMode Flags = 1 << iota

	// VT100Mode restricts the screen to strict VT100 semantics, disabling
	// xterm-only recognizers (alternate screen, extended SGR colors, REP).
	VT100Mode
)

// Has reports whether f includes the given flag.
func (f Flags) Has(flag Flags) bool {
	return f&flag != 0
}
