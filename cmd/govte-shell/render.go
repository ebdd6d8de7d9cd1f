// Renders a terminal.Terminal's screen grid to the real controlling
// terminal using raw ANSI SGR sequences, grounded on examples/capture_tui's
// term.GetSize/term.MakeRaw host-terminal handling and vshell.c's curses
// colour-pair convention (kept available via screen.Attribute.CursesPair
// for hosts that address colour through a pair table instead of direct
// SGR).

package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/cliofy/govte/screen"
)

// Grid is the read surface a Renderer needs; terminal.Terminal implements
// it directly so the renderer never has to reach past it into the
// unexported screen.Screen it wraps.
type Grid interface {
	Dimensions() (rows, cols int)
	Cell(row, col int) (screen.Cell, bool)
	CursorPosition() (row, col int)
}

// Renderer redraws a Grid's full contents to an io.Writer (normally the
// host's stdout in raw mode), tracking the attribute of the previously
// written cell so it only emits an SGR sequence on change.
type Renderer struct {
	out *bufio.Writer
}

// NewRenderer wraps w for buffered full-frame redraws.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{out: bufio.NewWriter(w)}
}

// Draw repaints the entire visible grid: home the cursor, clear the
// screen, emit each row with minimal SGR churn, then park the real cursor
// at the screen's logical cursor position.
func (r *Renderer) Draw(scr Grid) error {
	rows, cols := scr.Dimensions()

	fmt.Fprint(r.out, "\x1b[H\x1b[2J")

	last := screen.DefaultAttribute()
	fmt.Fprint(r.out, last.ANSISequence())

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cell, _ := scr.Cell(row, col)
			if cell.Attr != last {
				fmt.Fprint(r.out, cell.Attr.ANSISequence())
				last = cell.Attr
			}
			fmt.Fprintf(r.out, "%c", cell.Glyph)
		}
		if row != rows-1 {
			fmt.Fprint(r.out, "\r\n")
		}
	}

	curRow, curCol := scr.CursorPosition()
	fmt.Fprintf(r.out, "\x1b[%d;%dH", curRow+1, curCol+1)

	return r.out.Flush()
}
