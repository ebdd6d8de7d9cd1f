//! Screen cell: an (attribute, glyph) pair.
//! Grounded on terminal/character.go's TerminalCharacter, dropping its
//! *AnsiCode tri-state pointer fields for the flat Attribute model.

package screen

// Cell is the unit of the screen grid: a single code point plus the
// attribute it was drawn with.
type Cell struct {
	Glyph rune
	Attr  Attribute
}

// BlankCell returns a space cell carrying the given default attribute.
func BlankCell(def Attribute) Cell {
	return Cell{Glyph: ' ', Attr: def}
}

// IsBlank reports whether the cell is a space drawn with the given default
// attribute (spec's definition of "blank").
func (c Cell) IsBlank(def Attribute) bool {
	return c.Glyph == ' ' && c.Attr == def
}
