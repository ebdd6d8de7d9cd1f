package screen

import (
	"testing"

	"github.com/cliofy/govte"
	"github.com/stretchr/testify/assert"
)

func TestNewDimensionsAndDefaults(t *testing.T) {
	s := New(24, 80)
	rows, cols := s.Dimensions()
	assert.Equal(t, 24, rows)
	assert.Equal(t, 80, cols)

	row, col := s.CursorPosition()
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)
	assert.True(t, s.CursorVisible())
}

func TestNewClampsDegenerateSize(t *testing.T) {
	s := New(0, -5)
	rows, cols := s.Dimensions()
	assert.Equal(t, 1, rows)
	assert.Equal(t, 1, cols)
}

func advance(s *Screen, input string) {
	p := govte.NewProcessor(s)
	p.Advance(s, []byte(input))
}

func TestInputPrintsAndAdvancesCursor(t *testing.T) {
	s := New(5, 10)
	advance(s, "Hi")

	c0, _ := s.Cell(0, 0)
	c1, _ := s.Cell(0, 1)
	assert.Equal(t, 'H', c0.Glyph)
	assert.Equal(t, 'i', c1.Glyph)

	_, col := s.CursorPosition()
	assert.Equal(t, 2, col)
}

func TestAutowrapPendingThenWraps(t *testing.T) {
	s := New(3, 3)
	advance(s, "abcd")

	row, col := s.CursorPosition()
	assert.Equal(t, 1, row)
	assert.Equal(t, 1, col)

	c := mustCell(t, s, 1, 0)
	assert.Equal(t, 'd', c.Glyph)
}

func TestAutowrapOffOverwritesInPlace(t *testing.T) {
	s := New(3, 3)
	s.ResetMode(govte.ModeAutoWrap)
	advance(s, "abcd")

	row, col := s.CursorPosition()
	assert.Equal(t, 0, row)
	assert.Equal(t, 2, col)
	assert.Equal(t, 'd', mustCell(t, s, 0, 2).Glyph)
}

func TestLineFeedScrollsAtBottomOfRegion(t *testing.T) {
	s := New(3, 5)
	advance(s, "one\r\ntwo\r\nthree\r\nfour")

	assert.Equal(t, 't', mustCell(t, s, 0, 0).Glyph)
	row, _ := s.CursorPosition()
	assert.Equal(t, 2, row)
}

func TestIndexScrollsButCUDClamps(t *testing.T) {
	s := New(3, 5)
	s.SetScrollingRegion(1, 3)
	s.Goto(3, 1)

	s.MoveDown(1)
	row, _ := s.CursorPosition()
	assert.Equal(t, 2, row, "CUD must clamp at the region bottom, not scroll")

	advance(s, "X")
	s.Goto(3, 1)
	s.Index()
	row, _ = s.CursorPosition()
	assert.Equal(t, 2, row, "IND stays on the bottom row but scrolls its contents")
	assert.NotEqual(t, 'X', mustCell(t, s, 2, 0).Glyph, "IND must have scrolled the X off screen")
}

func TestReverseIndexScrollsButCUUClamps(t *testing.T) {
	s := New(3, 5)
	s.SetScrollingRegion(1, 3)
	advance(s, "X")
	s.Goto(1, 1)

	s.MoveUp(1)
	row, _ := s.CursorPosition()
	assert.Equal(t, 0, row)
	assert.Equal(t, 'X', mustCell(t, s, 0, 0).Glyph, "CUU must not scroll")

	s.ReverseIndex()
	assert.NotEqual(t, 'X', mustCell(t, s, 0, 0).Glyph, "RI at the region top must scroll down")
}

func TestOriginModeOffsetsGoto(t *testing.T) {
	s := New(10, 10)
	s.SetScrollingRegion(3, 7)
	s.SetMode(govte.ModeOriginMode)

	s.Goto(1, 1)
	row, col := s.CursorPosition()
	assert.Equal(t, 2, row) // region top (0-based row 2) + line 1
	assert.Equal(t, 0, col)
}

func TestGotoColAndGotoLineAreAbsolute(t *testing.T) {
	s := New(10, 10)
	s.SetScrollingRegion(3, 7)
	s.SetMode(govte.ModeOriginMode)

	s.GotoLine(1)
	row, _ := s.CursorPosition()
	assert.Equal(t, 0, row, "VPA ignores origin mode")

	s.GotoCol(5)
	_, col := s.CursorPosition()
	assert.Equal(t, 4, col, "CHA ignores origin mode")
}

func TestSavedCursorRoundTrip(t *testing.T) {
	s := New(10, 10)
	s.Goto(3, 4)
	s.SetAttribute(govte.AttrBold)
	s.SaveCursorPosition()

	s.Goto(1, 1)
	s.ResetAttributes()

	s.RestoreCursorPosition()
	row, col := s.CursorPosition()
	assert.Equal(t, 2, row)
	assert.Equal(t, 3, col)
}

func TestInsertAndDeleteChars(t *testing.T) {
	s := New(1, 5)
	advance(s, "abcde")
	s.Goto(1, 2)
	s.InsertBlank(2)

	assert.Equal(t, 'a', mustCell(t, s, 0, 0).Glyph)
	assert.Equal(t, ' ', mustCell(t, s, 0, 1).Glyph)
	assert.Equal(t, ' ', mustCell(t, s, 0, 2).Glyph)
	assert.Equal(t, 'b', mustCell(t, s, 0, 3).Glyph)

	s.Goto(1, 1)
	s.DeleteChars(1)
	assert.Equal(t, ' ', mustCell(t, s, 0, 0).Glyph)
}

func TestInsertAndDeleteLinesRespectRegion(t *testing.T) {
	s := New(4, 3)
	advance(s, "1\r\n2\r\n3\r\n4")
	s.SetScrollingRegion(2, 3)
	s.Goto(2, 1)

	s.InsertLines(1)
	assert.Equal(t, '1', mustCell(t, s, 0, 0).Glyph, "row outside the region is untouched")
	assert.Equal(t, ' ', mustCell(t, s, 1, 0).Glyph)
	assert.Equal(t, '2', mustCell(t, s, 2, 0).Glyph)
	assert.Equal(t, '4', mustCell(t, s, 3, 0).Glyph, "row outside the region is untouched")
}

func TestRepeatReplaysLastGlyph(t *testing.T) {
	s := New(1, 10)
	advance(s, "a")
	s.Repeat(3)

	for col := 0; col < 4; col++ {
		assert.Equal(t, 'a', mustCell(t, s, 0, col).Glyph)
	}
}

func TestRepeatDisabledInVT100Mode(t *testing.T) {
	s := New(1, 10)
	s.SetVT100Mode(true)
	advance(s, "a")
	s.Repeat(3)

	assert.Equal(t, 'a', mustCell(t, s, 0, 0).Glyph)
	assert.Equal(t, ' ', mustCell(t, s, 0, 1).Glyph, "vt100 mode ignores REP")
}

func TestClearScreenModes(t *testing.T) {
	s := New(2, 3)
	advance(s, "abc")
	s.Goto(2, 1)
	advance(s, "def")
	s.Goto(1, 2)

	s.ClearScreen(govte.ClearBelow)
	assert.Equal(t, 'a', mustCell(t, s, 0, 0).Glyph)
	assert.Equal(t, ' ', mustCell(t, s, 0, 1).Glyph)
	assert.Equal(t, ' ', mustCell(t, s, 1, 0).Glyph)
}

func TestAlternateScreenRoundTrip(t *testing.T) {
	s := New(2, 3)
	advance(s, "abc")

	s.SetMode(govte.ModeAlternateScreenBuffer)
	assert.Equal(t, ' ', mustCell(t, s, 0, 0).Glyph, "alternate screen starts blank")
	advance(s, "xyz")

	s.ResetMode(govte.ModeAlternateScreenBuffer)
	assert.Equal(t, 'a', mustCell(t, s, 0, 0).Glyph, "primary screen content restored")
}

func TestAlternateScreenDisabledInVT100Mode(t *testing.T) {
	s := New(2, 3)
	s.SetVT100Mode(true)
	advance(s, "abc")

	s.SetMode(govte.ModeAlternateScreenBuffer)
	assert.Equal(t, 'a', mustCell(t, s, 0, 0).Glyph, "vt100 mode ignores ?1049")
}

func TestResetForegroundBackgroundSurviveAttributeReset(t *testing.T) {
	s := New(1, 1)
	s.SetForeground(govte.Color{Type: govte.ColorTypeNamed, Named: govte.Red})
	s.SetAttribute(govte.AttrBold)
	s.ResetAttributes()

	advance(s, "x")
	c := mustCell(t, s, 0, 0)
	assert.False(t, c.Attr.Bold)
	assert.Equal(t, ColorIndex(govte.Red), c.Attr.FG)
}

func TestConfigureCharsetOnlyG0TogglesAltCharset(t *testing.T) {
	s := New(1, 2)
	advance(s, "\x1b(0")
	advance(s, "\x6a") // 'j' maps to a line-drawing glyph when G0 is special

	c := mustCell(t, s, 0, 0)
	assert.NotEqual(t, 'j', c.Glyph)

	s2 := New(1, 2)
	s2.SetActiveCharset(govte.G1)
	advance(s2, "j")
	assert.Equal(t, 'j', mustCell(t, s2, 0, 0).Glyph, "SO/SI alone never toggles the charset")
}

func TestResizePreservesTopLeftContent(t *testing.T) {
	s := New(3, 3)
	advance(s, "abc")
	s.Resize(2, 5)

	rows, cols := s.Dimensions()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 5, cols)
	assert.Equal(t, 'a', mustCell(t, s, 0, 0).Glyph)
	assert.Equal(t, ' ', mustCell(t, s, 0, 3).Glyph)
}

func TestSetTitleTruncates(t *testing.T) {
	s := New(1, 1)
	long := make([]rune, MaxTitleLen+10)
	for i := range long {
		long[i] = 'x'
	}
	s.SetTitle(string(long))
	assert.Len(t, []rune(s.Title()), MaxTitleLen)
}

func mustCell(t *testing.T, s *Screen, row, col int) Cell {
	t.Helper()
	c, ok := s.Cell(row, col)
	if !ok {
		t.Fatalf("cell (%d,%d) out of bounds", row, col)
	}
	return c
}
