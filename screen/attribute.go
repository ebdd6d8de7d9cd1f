//! Screen cell attributes
//! Generalized from the Go port's CharacterStyles/AnsiCode pair into the
//! 8-indexed attribute model plus an optional true-color override.

package screen

import "fmt"

// ColorIndex is one of the 8 standard palette slots, or DefaultColor.
type ColorIndex int8

// DefaultColor means "use the screen's default attribute colour".
const DefaultColor ColorIndex = -1

// TrueColor is an optional full-fidelity override for a palette colour.
// Kept alongside ColorIndex so a host renderer that understands RGB/256-color
// SGR sequences can still reproduce them exactly; Set reports whether either
// form is present.
type TrueColor struct {
	Set      bool
	R, G, B  uint8
	Index256 int16 // -1 when not a 256-color index
}

func (tc TrueColor) ansiFg() string {
	switch {
	case !tc.Set:
		return ""
	case tc.Index256 >= 0:
		return fmt.Sprintf("\x1b[38;5;%dm", tc.Index256)
	default:
		return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", tc.R, tc.G, tc.B)
	}
}

func (tc TrueColor) ansiBg() string {
	switch {
	case !tc.Set:
		return ""
	case tc.Index256 >= 0:
		return fmt.Sprintf("\x1b[48;5;%dm", tc.Index256)
	default:
		return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", tc.R, tc.G, tc.B)
	}
}

// Attribute describes how a Cell's glyph is rendered.
type Attribute struct {
	FG, BG ColorIndex

	Bold      bool
	Dim       bool
	Underline bool
	Blink     bool
	Reverse   bool
	Invisible bool

	FGTrue TrueColor
	BGTrue TrueColor
}

// DefaultAttribute is the attribute a freshly constructed Screen draws with.
func DefaultAttribute() Attribute {
	return Attribute{FG: DefaultColor, BG: DefaultColor}
}

// ANSISequence renders the attribute as an SGR sequence a real terminal can
// replay, truecolor overrides taking precedence over the 8-indexed slots.
func (a Attribute) ANSISequence() string {
	seq := "\x1b[0m"
	if a.Bold {
		seq += "\x1b[1m"
	}
	if a.Dim {
		seq += "\x1b[2m"
	}
	if a.Underline {
		seq += "\x1b[4m"
	}
	if a.Blink {
		seq += "\x1b[5m"
	}
	if a.Reverse {
		seq += "\x1b[7m"
	}
	if a.Invisible {
		seq += "\x1b[8m"
	}

	if a.FGTrue.Set {
		seq += a.FGTrue.ansiFg()
	} else if a.FG != DefaultColor {
		seq += fmt.Sprintf("\x1b[%dm", 30+int(a.FG))
	}

	if a.BGTrue.Set {
		seq += a.BGTrue.ansiBg()
	} else if a.BG != DefaultColor {
		seq += fmt.Sprintf("\x1b[%dm", 40+int(a.BG))
	}

	return seq
}

// CursesPair reproduces vshell.c's curses colour-pair convention (bg*8+7-fg)
// for hosts that address colour through a fixed pair table instead of direct
// SGR sequences. Only meaningful for 8-indexed colours; DefaultColor maps to
// white-on-black (7, 0).
func (a Attribute) CursesPair() int {
	fg, bg := a.FG, a.BG
	if fg == DefaultColor {
		fg = 7
	}
	if bg == DefaultColor {
		bg = 0
	}
	return int(bg)*8 + 7 - int(fg)
}
