//! Charset translation: a function from (raw glyph, alternate-charset flag)
//! to displayed glyph, as spec.md's DESIGN NOTES recommend — no shared
//! mutable translation table. Grounded on govte.StandardCharset.Map (the
//! line-drawing lookup already lives in the root package) and
//! original_source/vterm_escape.c's vterm_interpret_esc_scs, which only ever
//! inspects the G0 form: G1 is accepted but has no observable effect here.

package screen

import "github.com/cliofy/govte"

func translateGlyph(altCharset bool, c rune) rune {
	if !altCharset {
		return c
	}
	return govte.StandardCharsetSpecialLineDrawing.Map(c)
}
