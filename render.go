package img2ascii

import (
	"bufio"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
)

// ESC is the escape character introducing terminal control sequences.
const ESC = "\u001b"

// ResizeSequence returns the xterm window-manipulation sequence asking the
// terminal to resize its text area to rows x cols cells.
func ResizeSequence(rows, cols int) string {
	return fmt.Sprintf("%s[8;%d;%dt", ESC, rows, cols)
}

// Columns returns the display width of one row of the grid in terminal
// cells.
func (a *AsciiArtGrid) Columns() int {
	if a == nil || len(a.Rows) == 0 {
		return 0
	}
	cols := 0
	for _, cluster := range a.Rows[0] {
		cols += runewidth.StringWidth(cluster)
	}
	return cols
}

// PrintOptions controls how Fprint emits a grid.
type PrintOptions struct {
	// ResizeTerminal prefixes the text with ResizeSequence sized to the
	// grid, height rows by width x CharFactor columns.
	ResizeTerminal bool
}

// Fprint writes art to w followed by a newline, optionally preceded by a
// terminal resize request.
func Fprint(w io.Writer, art *AsciiArtGrid, opts PrintOptions) error {
	if art == nil {
		return &InvalidInputTypeError{Op: "print", Want: "*AsciiArtGrid", Got: "nil"}
	}
	bw := bufio.NewWriter(w)
	if opts.ResizeTerminal {
		if _, err := bw.WriteString(ResizeSequence(art.Height, art.Columns())); err != nil {
			return err
		}
	}
	for _, row := range art.Rows {
		for _, cluster := range row {
			if _, err := bw.WriteString(cluster); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
