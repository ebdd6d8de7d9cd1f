//! The Screen Buffer: a rows x cols grid of Cells plus cursor, scroll
//! region, tab stops, saved-cursor snapshot, alternate charset and title.
//! Generalized from terminal/buffer.go's TerminalBuffer, which this
//! supersedes: an 8-indexed attribute model replaces the *AnsiCode
//! pointer-per-field styling, scroll-region clamping now gates cursor
//! motion (not just LF/scrollUp/scrollDown), and the full govte.Handler
//! contract is implemented rather than a standalone Performer.

package screen

import (
	"fmt"
	"io"

	"github.com/cliofy/govte"
)

// MaxTitleLen bounds the title string, per spec.md §3 invariant 5.
const MaxTitleLen = 256

// tabStep is the default tab-stop interval (spec.md §3: "every 8 columns
// starting at 8").
const tabStep = 8

// Screen implements govte.Handler over a 2-D grid of Cells.
type Screen struct {
	rows, cols int
	cells      [][]Cell

	cursorRow, cursorCol int
	pendingWrap          bool

	curAttr     Attribute
	defaultAttr Attribute

	top, bottom int // inclusive scroll region, 0-based

	tabStops map[int]bool

	saved *savedCursor

	g0, g1        govte.StandardCharset
	activeCharset govte.CharsetIndex
	altCharset    bool

	title string

	autowrap      bool
	originMode    bool
	insertMode    bool
	cursorVisible bool
	cursorStyle   govte.CursorStyle

	lastGlyph   rune
	hasLastGlyph bool

	vt100 bool // strict mode: xterm-only recognizers disabled

	alt *alternateBuffer // non-nil while the ?1049 alternate screen is active

	// DebugSink, when non-nil, receives a line of diagnostic text each time
	// VT100 mode makes the screen ignore an xterm-only construct (?1049,
	// REP, extended SGR colours). Unknown sequences are dropped before they
	// reach the screen and are not reported here.
	DebugSink io.Writer
}

// alternateBuffer holds the primary screen's state while the ?1049
// alternate screen is in use, per spec.md §4.E's mode table.
type alternateBuffer struct {
	cells       [][]Cell
	cursorRow   int
	cursorCol   int
	pendingWrap bool
	curAttr     Attribute
}

var _ govte.Handler = (*Screen)(nil)

// New builds a Screen sized rows x cols (minimum 1x1), with default tab
// stops every 8 columns and the default attribute as its initial drawing
// attribute.
func New(rows, cols int) *Screen {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	s := &Screen{
		defaultAttr:   DefaultAttribute(),
		autowrap:      true,
		cursorVisible: true,
	}
	s.resetGrid(rows, cols)
	return s
}

// SetVT100Mode toggles strict-VT100 behaviour: xterm-only recognisers
// (?1049 alternate screen, extended 38/48 SGR colours, REP) are disabled.
func (s *Screen) SetVT100Mode(enabled bool) {
	s.vt100 = enabled
}

func (s *Screen) resetGrid(rows, cols int) {
	s.rows, s.cols = rows, cols
	s.cells = make([][]Cell, rows)
	for r := range s.cells {
		s.cells[r] = newBlankRow(cols, s.defaultAttr)
	}
	s.cursorRow, s.cursorCol = 0, 0
	s.pendingWrap = false
	s.curAttr = s.defaultAttr
	s.top, s.bottom = 0, rows-1
	s.tabStops = defaultTabStops(cols)
	s.saved = nil
	s.g0, s.g1 = govte.StandardCharsetAscii, govte.StandardCharsetAscii
	s.activeCharset = govte.G0
	s.altCharset = false
	s.title = ""
	s.originMode = false
	s.insertMode = false
	s.hasLastGlyph = false
	s.alt = nil
}

func newBlankRow(cols int, def Attribute) []Cell {
	row := make([]Cell, cols)
	blank := BlankCell(def)
	for i := range row {
		row[i] = blank
	}
	return row
}

func defaultTabStops(cols int) map[int]bool {
	stops := make(map[int]bool)
	for c := tabStep; c < cols; c += tabStep {
		stops[c] = true
	}
	return stops
}

func (s *Screen) debugf(format string, args ...any) {
	if s.DebugSink == nil {
		return
	}
	fmt.Fprintf(s.DebugSink, format, args...)
}

// Dimensions returns the current grid size.
func (s *Screen) Dimensions() (rows, cols int) {
	return s.rows, s.cols
}

// CursorPosition returns the 0-based cursor position. Col may equal
// s.cols when the cursor is in the "pending wrap" state.
func (s *Screen) CursorPosition() (row, col int) {
	col = s.cursorCol
	if s.pendingWrap {
		col = s.cols
	}
	return s.cursorRow, col
}

// Cell returns the cell at (row, col), or false if out of bounds.
func (s *Screen) Cell(row, col int) (Cell, bool) {
	if row < 0 || row >= s.rows || col < 0 || col >= s.cols {
		return Cell{}, false
	}
	return s.cells[row][col], true
}

// SetDefaultColors redefines the attribute colors new blanks and
// ResetColors (SGR 0) fall back to (vterm_set_colors).
func (s *Screen) SetDefaultColors(fg, bg ColorIndex) {
	s.defaultAttr.FG = fg
	s.defaultAttr.BG = bg
}

// Title returns the current window title.
func (s *Screen) Title() string {
	return s.title
}

// === govte.Handler: text and display ===

// Input implements govte.Handler (PutGlyph, spec.md §4.A).
func (s *Screen) Input(c rune) {
	g := translateGlyph(s.altCharset, c)

	if s.pendingWrap {
		s.wrapToNextLine()
	}

	if s.insertMode {
		s.shiftRowRight(s.cursorRow, s.cursorCol, 1)
	}

	s.cells[s.cursorRow][s.cursorCol] = Cell{Glyph: g, Attr: s.curAttr}
	s.lastGlyph = g
	s.hasLastGlyph = true

	if s.cursorCol == s.cols-1 {
		if s.autowrap {
			s.pendingWrap = true
		}
		// autowrap off: spec.md §9 mandates overwrite-in-place, no advance.
		return
	}
	s.cursorCol++
}

// wrapToNextLine executes the pending-wrap transition: move to column 0 of
// the next row, scrolling the region if at bottom.
func (s *Screen) wrapToNextLine() {
	s.pendingWrap = false
	s.cursorCol = 0
	if s.cursorRow == s.bottom {
		s.scrollUp(1)
		return
	}
	if s.cursorRow < s.rows-1 {
		s.cursorRow++
	}
}

// Bell implements govte.Handler.
func (s *Screen) Bell() {
	// No host notification hook at this layer; spec.md §4.C allows ignoring.
}

// LineFeed implements govte.Handler: spec.md §4.C LF/VT/FF.
func (s *Screen) LineFeed() {
	s.pendingWrap = false
	if s.cursorRow == s.bottom {
		s.scrollUp(1)
		return
	}
	if s.cursorRow < s.rows-1 {
		s.cursorRow++
	}
}

// Index implements govte.Handler (IND): move down one line, scrolling the
// region up if already at its bottom row.
func (s *Screen) Index() {
	s.LineFeed()
}

// CarriageReturn implements govte.Handler.
func (s *Screen) CarriageReturn() {
	s.cursorCol = 0
	s.pendingWrap = false
}

// Backspace implements govte.Handler.
func (s *Screen) Backspace() {
	if s.cursorCol > 0 {
		s.cursorCol--
	}
	s.pendingWrap = false
}

// Tab implements govte.Handler: advance to the next tab stop, or the last
// column if there is none.
func (s *Screen) Tab() {
	for c := s.cursorCol + 1; c < s.cols; c++ {
		if s.tabStops[c] {
			s.cursorCol = c
			return
		}
	}
	s.cursorCol = s.cols - 1
}

// SetTabStop implements govte.Handler.
func (s *Screen) SetTabStop() {
	s.tabStops[s.cursorCol] = true
}

// ClearTabStop implements govte.Handler.
func (s *Screen) ClearTabStop(mode govte.TabulationClearMode) {
	switch mode {
	case govte.TabClearCurrent:
		delete(s.tabStops, s.cursorCol)
	case govte.TabClearAll:
		s.tabStops = make(map[int]bool)
	}
}

// TabForward implements govte.Handler (CHT).
func (s *Screen) TabForward(count int) {
	for i := 0; i < count; i++ {
		s.Tab()
	}
}

// TabBackward implements govte.Handler (CBT).
func (s *Screen) TabBackward(count int) {
	for i := 0; i < count; i++ {
		moved := false
		for c := s.cursorCol - 1; c >= 0; c-- {
			if s.tabStops[c] {
				s.cursorCol = c
				moved = true
				break
			}
		}
		if !moved {
			s.cursorCol = 0
		}
	}
}

// SetTitle implements govte.Handler, truncating to MaxTitleLen runes.
func (s *Screen) SetTitle(title string) {
	runes := []rune(title)
	if len(runes) > MaxTitleLen {
		runes = runes[:MaxTitleLen]
	}
	s.title = string(runes)
}

// === govte.Handler: cursor movement ===

// Goto implements govte.Handler (CUP/HVP). line/col are 1-based; origin
// mode offsets into the scroll region per spec.md §4.E.
func (s *Screen) Goto(line, col int) {
	s.pendingWrap = false
	if s.originMode {
		row := s.top + line - 1
		if row > s.bottom {
			row = s.bottom
		}
		if row < s.top {
			row = s.top
		}
		s.cursorRow = row
	} else {
		row := line - 1
		s.cursorRow = clamp(row, 0, s.rows-1)
	}
	s.cursorCol = clamp(col-1, 0, s.cols-1)
}

// GotoLine implements govte.Handler (VPA). Absolute, not region-relative.
func (s *Screen) GotoLine(line int) {
	s.cursorRow = clamp(line-1, 0, s.rows-1)
	s.pendingWrap = false
}

// GotoCol implements govte.Handler (CHA). Absolute, not region-relative.
func (s *Screen) GotoCol(col int) {
	s.cursorCol = clamp(col-1, 0, s.cols-1)
	s.pendingWrap = false
}

// MoveUp implements govte.Handler (CUU), clamped to the scroll region top.
func (s *Screen) MoveUp(lines int) {
	s.cursorRow = clamp(s.cursorRow-lines, s.top, s.rows-1)
	s.pendingWrap = false
}

// MoveDown implements govte.Handler (CUD), clamped to the scroll region
// bottom.
func (s *Screen) MoveDown(lines int) {
	s.cursorRow = clamp(s.cursorRow+lines, 0, s.bottom)
	s.pendingWrap = false
}

// MoveForward implements govte.Handler (CUF), clamped to cols-1.
func (s *Screen) MoveForward(cols int) {
	s.cursorCol = clamp(s.cursorCol+cols, 0, s.cols-1)
	s.pendingWrap = false
}

// MoveBackward implements govte.Handler (CUB), not below 0.
func (s *Screen) MoveBackward(cols int) {
	s.cursorCol = clamp(s.cursorCol-cols, 0, s.cols-1)
	s.pendingWrap = false
}

// MoveDownAndCR implements govte.Handler (CNL).
func (s *Screen) MoveDownAndCR(lines int) {
	s.MoveDown(lines)
	s.cursorCol = 0
}

// MoveUpAndCR implements govte.Handler (CPL).
func (s *Screen) MoveUpAndCR(lines int) {
	s.MoveUp(lines)
	s.cursorCol = 0
}

// SaveCursorPosition implements govte.Handler (DECSC/SCOSC).
func (s *Screen) SaveCursorPosition() {
	s.saved = &savedCursor{
		row:         s.cursorRow,
		col:         s.cursorCol,
		attr:        s.curAttr,
		altCharset:  s.altCharset,
		cursorStyle: s.cursorStyle,
	}
}

// RestoreCursorPosition implements govte.Handler (DECRC/SCORC). Restores
// from the default state if nothing was saved.
func (s *Screen) RestoreCursorPosition() {
	s.pendingWrap = false
	if s.saved == nil {
		s.cursorRow, s.cursorCol = 0, 0
		s.curAttr = s.defaultAttr
		s.altCharset = false
		return
	}
	s.cursorRow = clamp(s.saved.row, 0, s.rows-1)
	s.cursorCol = clamp(s.saved.col, 0, s.cols-1)
	s.curAttr = s.saved.attr
	s.altCharset = s.saved.altCharset
	s.cursorStyle = s.saved.cursorStyle
}

// === govte.Handler: text modification ===

// InsertBlank implements govte.Handler (ICH): insert n blanks at the
// cursor, right-shifting the tail of the row, truncating at cols-1.
func (s *Screen) InsertBlank(count int) {
	if count < 1 {
		count = 1
	}
	s.shiftRowRight(s.cursorRow, s.cursorCol, count)
}

// shiftRowRight shifts cells [from, cols) right by n within row, filling the
// opened gap with blanks of the current default attribute.
func (s *Screen) shiftRowRight(row, from, n int) {
	line := s.cells[row]
	if n > s.cols-from {
		n = s.cols - from
	}
	for c := s.cols - 1; c >= from+n; c-- {
		line[c] = line[c-n]
	}
	blank := BlankCell(s.defaultAttr)
	for c := from; c < from+n && c < s.cols; c++ {
		line[c] = blank
	}
}

// DeleteChars implements govte.Handler (DCH): delete n chars at the
// cursor, left-shifting the tail, padding the end with blanks.
func (s *Screen) DeleteChars(count int) {
	if count < 1 {
		count = 1
	}
	line := s.cells[s.cursorRow]
	if count > s.cols-s.cursorCol {
		count = s.cols - s.cursorCol
	}
	for c := s.cursorCol; c < s.cols-count; c++ {
		line[c] = line[c+count]
	}
	blank := BlankCell(s.defaultAttr)
	for c := s.cols - count; c < s.cols; c++ {
		line[c] = blank
	}
}

// EraseChars implements govte.Handler (ECH): erase n chars at the cursor
// without moving it.
func (s *Screen) EraseChars(count int) {
	if count < 1 {
		count = 1
	}
	end := s.cursorCol + count
	if end > s.cols {
		end = s.cols
	}
	blank := BlankCell(s.defaultAttr)
	line := s.cells[s.cursorRow]
	for c := s.cursorCol; c < end; c++ {
		line[c] = blank
	}
}

// InsertLines implements govte.Handler (IL): insert n blank lines at the
// cursor row, within the scroll region. No-op if the cursor is outside it.
func (s *Screen) InsertLines(count int) {
	if s.cursorRow < s.top || s.cursorRow > s.bottom {
		return
	}
	if count < 1 {
		count = 1
	}
	if count > s.bottom-s.cursorRow+1 {
		count = s.bottom - s.cursorRow + 1
	}
	for r := s.bottom; r >= s.cursorRow+count; r-- {
		s.cells[r] = s.cells[r-count]
	}
	for r := s.cursorRow; r < s.cursorRow+count; r++ {
		s.cells[r] = newBlankRow(s.cols, s.defaultAttr)
	}
}

// DeleteLines implements govte.Handler (DL): delete n lines at the cursor
// row, within the scroll region.
func (s *Screen) DeleteLines(count int) {
	if s.cursorRow < s.top || s.cursorRow > s.bottom {
		return
	}
	if count < 1 {
		count = 1
	}
	if count > s.bottom-s.cursorRow+1 {
		count = s.bottom - s.cursorRow + 1
	}
	for r := s.cursorRow; r <= s.bottom-count; r++ {
		s.cells[r] = s.cells[r+count]
	}
	for r := s.bottom - count + 1; r <= s.bottom; r++ {
		s.cells[r] = newBlankRow(s.cols, s.defaultAttr)
	}
}

// Repeat implements govte.Handler (REP): repeat the last printed glyph.
func (s *Screen) Repeat(count int) {
	if s.vt100 {
		s.debugf("vt100 mode: ignoring REP\n")
		return
	}
	if !s.hasLastGlyph {
		return
	}
	for i := 0; i < count; i++ {
		s.Input(s.lastGlyph)
	}
}

// === govte.Handler: screen operations ===

// ClearLine implements govte.Handler (EL).
func (s *Screen) ClearLine(mode govte.LineClearMode) {
	line := s.cells[s.cursorRow]
	blank := BlankCell(s.defaultAttr)
	switch mode {
	case govte.LineClearRight:
		for c := s.cursorCol; c < s.cols; c++ {
			line[c] = blank
		}
	case govte.LineClearLeft:
		for c := 0; c <= s.cursorCol && c < s.cols; c++ {
			line[c] = blank
		}
	case govte.LineClearAll:
		for c := range line {
			line[c] = blank
		}
	}
}

// ClearScreen implements govte.Handler (ED).
func (s *Screen) ClearScreen(mode govte.ClearMode) {
	blank := BlankCell(s.defaultAttr)
	switch mode {
	case govte.ClearBelow:
		s.eraseLineRange(s.cursorCol, s.cols, s.cursorRow)
		for r := s.cursorRow + 1; r < s.rows; r++ {
			s.fillRow(r, blank)
		}
	case govte.ClearAbove:
		for r := 0; r < s.cursorRow; r++ {
			s.fillRow(r, blank)
		}
		s.eraseLineRange(0, s.cursorCol+1, s.cursorRow)
	case govte.ClearAll, govte.ClearSaved:
		for r := range s.cells {
			s.fillRow(r, blank)
		}
	}
}

func (s *Screen) fillRow(row int, blank Cell) {
	line := s.cells[row]
	for c := range line {
		line[c] = blank
	}
}

func (s *Screen) eraseLineRange(from, to, row int) {
	blank := BlankCell(s.defaultAttr)
	line := s.cells[row]
	if to > s.cols {
		to = s.cols
	}
	for c := from; c < to; c++ {
		line[c] = blank
	}
}

// ScrollUp implements govte.Handler (SU): scroll the region up n lines.
func (s *Screen) ScrollUp(lines int) {
	s.scrollUp(lines)
}

// ScrollDown implements govte.Handler (SD): scroll the region down n lines.
func (s *Screen) ScrollDown(lines int) {
	s.scrollDown(lines)
}

// scrollUp is the Rendering Primitive shared by LF-at-bottom and SU.
func (s *Screen) scrollUp(n int) {
	if n < 1 {
		return
	}
	regionSize := s.bottom - s.top + 1
	if n > regionSize {
		n = regionSize
	}
	for r := s.top; r <= s.bottom-n; r++ {
		s.cells[r] = s.cells[r+n]
	}
	for r := s.bottom - n + 1; r <= s.bottom; r++ {
		s.cells[r] = newBlankRow(s.cols, s.defaultAttr)
	}
}

// scrollDown is the Rendering Primitive shared by reverse-index-at-top and
// SD.
func (s *Screen) scrollDown(n int) {
	if n < 1 {
		return
	}
	regionSize := s.bottom - s.top + 1
	if n > regionSize {
		n = regionSize
	}
	for r := s.bottom; r >= s.top+n; r-- {
		s.cells[r] = s.cells[r-n]
	}
	for r := s.top; r < s.top+n; r++ {
		s.cells[r] = newBlankRow(s.cols, s.defaultAttr)
	}
}

// ReverseIndex moves the cursor up one line, scrolling the region down if
// at top (ESC M, spec.md §4.D).
func (s *Screen) ReverseIndex() {
	s.pendingWrap = false
	if s.cursorRow == s.top {
		s.scrollDown(1)
		return
	}
	if s.cursorRow > 0 {
		s.cursorRow--
	}
}

// SetScrollingRegion implements govte.Handler (DECSTBM). top/bottom are
// 1-based; bottom == 0 (or beyond the grid) means "default to the last
// row". Homes the cursor per spec.md.
func (s *Screen) SetScrollingRegion(top, bottom int) {
	if top < 1 {
		top = 1
	}
	if bottom < 1 || bottom > s.rows {
		bottom = s.rows
	}
	top0 := top - 1
	bottom0 := bottom - 1
	if top0 >= bottom0 || bottom0 >= s.rows {
		return // invalid region: ignored
	}
	s.top, s.bottom = top0, bottom0
	if s.originMode {
		s.cursorRow, s.cursorCol = s.top, 0
	} else {
		s.cursorRow, s.cursorCol = 0, 0
	}
	s.pendingWrap = false
}

// === govte.Handler: text attributes ===

// SetAttribute implements govte.Handler.
func (s *Screen) SetAttribute(attr govte.Attr) {
	switch attr {
	case govte.AttrBold:
		s.curAttr.Bold = true
	case govte.AttrDim:
		s.curAttr.Dim = true
	case govte.AttrUnderline, govte.AttrDoubleUnderline:
		s.curAttr.Underline = true
	case govte.AttrBlinking:
		s.curAttr.Blink = true
	case govte.AttrReverse:
		s.curAttr.Reverse = true
	case govte.AttrHidden:
		s.curAttr.Invisible = true
	}
	// Italic/strikethrough and other extensions aren't part of the screen's
	// attribute model (spec.md §3); unknown codes are ignored there too.
}

// UnsetAttribute implements govte.Handler.
func (s *Screen) UnsetAttribute(attr govte.Attr) {
	if attr.Has(govte.AttrBold) {
		s.curAttr.Bold = false
	}
	if attr.Has(govte.AttrDim) {
		s.curAttr.Dim = false
	}
	if attr.Has(govte.AttrUnderline) {
		s.curAttr.Underline = false
	}
	if attr.Has(govte.AttrBlinking) {
		s.curAttr.Blink = false
	}
	if attr.Has(govte.AttrReverse) {
		s.curAttr.Reverse = false
	}
	if attr.Has(govte.AttrHidden) {
		s.curAttr.Invisible = false
	}
}

// ResetAttributes implements govte.Handler (SGR 0's non-colour half).
func (s *Screen) ResetAttributes() {
	fg, bg := s.curAttr.FG, s.curAttr.BG
	fgTrue, bgTrue := s.curAttr.FGTrue, s.curAttr.BGTrue
	s.curAttr = DefaultAttribute()
	s.curAttr.FG, s.curAttr.BG = fg, bg
	s.curAttr.FGTrue, s.curAttr.BGTrue = fgTrue, bgTrue
}

// SetForeground implements govte.Handler.
func (s *Screen) SetForeground(color govte.Color) {
	s.curAttr.FG, s.curAttr.FGTrue = s.resolveColor(color)
}

// SetBackground implements govte.Handler.
func (s *Screen) SetBackground(color govte.Color) {
	s.curAttr.BG, s.curAttr.BGTrue = s.resolveColor(color)
}

// resolveColor maps a govte.Color onto the 8-indexed model plus an optional
// true-color override. Bright named colours and the Foreground/Background
// sentinels (used for SGR 39/49 "default") fold to their 8-indexed nearest
// equivalent; full RGB/256-color forms are kept as an override so a capable
// renderer can reproduce them exactly, unless VT100Mode disables them.
func (s *Screen) resolveColor(color govte.Color) (ColorIndex, TrueColor) {
	switch color.Type {
	case govte.ColorTypeNamed:
		switch {
		case color.Named == govte.Foreground || color.Named == govte.Background:
			return DefaultColor, TrueColor{}
		case color.Named >= govte.BrightBlack:
			return ColorIndex(int(color.Named) - int(govte.BrightBlack)), TrueColor{}
		default:
			return ColorIndex(color.Named), TrueColor{}
		}
	case govte.ColorTypeRgb:
		if s.vt100 {
			s.debugf("vt100 mode: ignoring truecolor SGR\n")
			return DefaultColor, TrueColor{}
		}
		rgb := color.ToRgb()
		return DefaultColor, TrueColor{Set: true, R: rgb.R, G: rgb.G, B: rgb.B, Index256: -1}
	case govte.ColorTypeIndexed:
		if s.vt100 {
			s.debugf("vt100 mode: ignoring 256-color SGR\n")
			return DefaultColor, TrueColor{}
		}
		if color.Index < 8 {
			return ColorIndex(color.Index), TrueColor{}
		}
		return DefaultColor, TrueColor{Set: true, Index256: int16(color.Index)}
	default:
		return DefaultColor, TrueColor{}
	}
}

// ResetColors implements govte.Handler.
func (s *Screen) ResetColors() {
	s.curAttr.FG, s.curAttr.BG = s.defaultAttr.FG, s.defaultAttr.BG
	s.curAttr.FGTrue, s.curAttr.BGTrue = TrueColor{}, TrueColor{}
}

// === govte.Handler: cursor appearance ===

// SetCursorStyle implements govte.Handler.
func (s *Screen) SetCursorStyle(style govte.CursorStyle) {
	s.cursorStyle = style
}

// SetCursorVisible implements govte.Handler.
func (s *Screen) SetCursorVisible(visible bool) {
	s.cursorVisible = visible
}

// CursorVisible reports the current cursor visibility.
func (s *Screen) CursorVisible() bool {
	return s.cursorVisible
}

// === govte.Handler: terminal modes ===

// SetMode implements govte.Handler (SM/DECSET).
func (s *Screen) SetMode(mode govte.Mode) {
	switch mode {
	case govte.ModeOriginMode:
		s.originMode = true
		s.Goto(1, 1)
	case govte.ModeAutoWrap:
		s.autowrap = true
	case govte.ModeShowCursor:
		s.cursorVisible = true
	case govte.ModeAlternateScreenBuffer:
		s.enterAlternateScreen()
	case govte.ModeInsert:
		s.insertMode = true
	}
}

// ResetMode implements govte.Handler (RM/DECRST).
func (s *Screen) ResetMode(mode govte.Mode) {
	switch mode {
	case govte.ModeOriginMode:
		s.originMode = false
		s.Goto(1, 1)
	case govte.ModeAutoWrap:
		s.autowrap = false
	case govte.ModeShowCursor:
		s.cursorVisible = false
	case govte.ModeAlternateScreenBuffer:
		s.exitAlternateScreen()
	case govte.ModeInsert:
		s.insertMode = false
	}
}

func (s *Screen) enterAlternateScreen() {
	if s.alt != nil {
		return
	}
	if s.vt100 {
		s.debugf("vt100 mode: ignoring ?1049 alternate screen\n")
		return
	}
	s.alt = &alternateBuffer{
		cells:       s.cells,
		cursorRow:   s.cursorRow,
		cursorCol:   s.cursorCol,
		pendingWrap: s.pendingWrap,
		curAttr:     s.curAttr,
	}
	s.cells = make([][]Cell, s.rows)
	for r := range s.cells {
		s.cells[r] = newBlankRow(s.cols, s.defaultAttr)
	}
	s.cursorRow, s.cursorCol = 0, 0
	s.pendingWrap = false
}

func (s *Screen) exitAlternateScreen() {
	if s.alt == nil {
		return
	}
	s.cells = s.alt.cells
	s.cursorRow = s.alt.cursorRow
	s.cursorCol = s.alt.cursorCol
	s.pendingWrap = s.alt.pendingWrap
	s.curAttr = s.alt.curAttr
	s.alt = nil
}

// === govte.Handler: device operations ===

// DeviceStatus implements govte.Handler. The core has no transport handle
// at this layer to write a reply through; spec.md §6 only requires the
// grid accessor. No reply is sent: the terminal package does not answer
// device-status requests either.
func (s *Screen) DeviceStatus(kind int) {}

// IdentifyTerminal implements govte.Handler; see DeviceStatus.
func (s *Screen) IdentifyTerminal() {}

// Reset implements govte.Handler (RIS soft variant used by spec.md's ESC c
// handling): defaults, clear grid, home cursor, default tabs, clear saved
// state, clear title.
func (s *Screen) Reset() {
	s.resetGrid(s.rows, s.cols)
}

// HardReset implements govte.Handler; same as Reset at this layer (no
// persisted state beyond the grid to additionally clear).
func (s *Screen) HardReset() {
	s.Reset()
}

// === govte.Handler: DCS (consumed and discarded, spec.md §4.F) ===

// Hook implements govte.Handler.
func (s *Screen) Hook(params [][]uint16, intermediates []byte, ignore bool, action rune) {
}

// Put implements govte.Handler.
func (s *Screen) Put(data []byte) {}

// Unhook implements govte.Handler.
func (s *Screen) Unhook() {}

// === govte.Handler: charset support ===

// ConfigureCharset implements govte.Handler (SCS). Only G0 toggles the
// alternate-charset flag; G1 is accepted but has no observable effect
// (spec.md §4.F).
func (s *Screen) ConfigureCharset(index govte.CharsetIndex, charset govte.StandardCharset) {
	switch index {
	case govte.G0:
		s.g0 = charset
		s.altCharset = charset == govte.StandardCharsetSpecialLineDrawing
	case govte.G1:
		s.g1 = charset
	}
}

// SetActiveCharset implements govte.Handler (SO/SI). Per spec.md §4.C this
// is a sink: the active-charset flag that affects rendering is driven
// solely by ConfigureCharset(G0, ...), not by shift-in/shift-out.
func (s *Screen) SetActiveCharset(index govte.CharsetIndex) {
	s.activeCharset = index
}

// === Resize ===

// Resize implements spec.md §4.A resize: preserve content anchored at
// top-left, truncate or pad with default blanks, clamp the cursor, reset
// the scroll region to full extent, and recompute default tab stops only
// if cols changed.
func (s *Screen) Resize(newRows, newCols int) {
	if newRows < 1 {
		newRows = 1
	}
	if newCols < 1 {
		newCols = 1
	}
	colsChanged := newCols != s.cols

	newCells := make([][]Cell, newRows)
	for r := range newCells {
		newCells[r] = newBlankRow(newCols, s.defaultAttr)
		if r < len(s.cells) {
			copy(newCells[r], s.cells[r])
		}
	}
	s.cells = newCells
	s.rows, s.cols = newRows, newCols

	s.cursorRow = clamp(s.cursorRow, 0, s.rows-1)
	s.cursorCol = clamp(s.cursorCol, 0, s.cols-1)
	s.pendingWrap = false

	s.top, s.bottom = 0, s.rows-1

	if colsChanged {
		s.tabStops = defaultTabStops(s.cols)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
