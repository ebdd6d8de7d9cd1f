//! Saved-cursor snapshot, grounded on terminal/cursor.go's SavedCursor/Cursor
//! split but trimmed to what the Screen struct needs directly (position,
//! attribute and the alternate-charset flag per spec.md's DATA MODEL).

package screen

import "github.com/cliofy/govte"

// savedCursor is the ESC 7 / DECSC snapshot: (row, col, attribute,
// charset-flag) or "none" (represented by a nil *savedCursor on Screen).
type savedCursor struct {
	row, col    int
	attr        Attribute
	altCharset  bool
	cursorStyle govte.CursorStyle
}
