package img2ascii

import (
	"fmt"
	"math"
	"strings"
)

// AsciiArtGrid is the quantized picture: one cluster per brightness cell,
// each cluster being a ramp glyph repeated CharFactor times.
type AsciiArtGrid struct {
	Width      int // cells per row
	Height     int // rows
	CharFactor int
	Rows       [][]string
	// Indices holds the ramp index chosen for every cell, row-major.
	Indices []int
}

// QuantizeIndex maps a brightness v on the range [lo, hi] to an index into
// a ramp of n glyphs. A flat range maps everything to index 0.
func QuantizeIndex(v, lo, hi uint8, n int) int {
	if hi <= lo || n <= 1 {
		return 0
	}
	t := (float64(v) - float64(lo)) / (float64(hi) - float64(lo))
	idx := int(math.Round(t * float64(n-1)))
	return min(max(idx, 0), n-1)
}

// Quantize maps every cell of grid onto ramp, normalizing against the
// grid's global minimum and maximum. The min/max reduction completes
// before any cell is mapped; rows are then mapped concurrently.
func Quantize(grid *BrightnessGrid, ramp CharacterRamp, charFactor int) (*AsciiArtGrid, error) {
	if grid == nil {
		return nil, &InvalidInputTypeError{Op: "quantize", Want: "*BrightnessGrid", Got: "nil"}
	}
	if len(grid.Values) != grid.Width*grid.Height || grid.Width <= 0 || grid.Height <= 0 {
		return nil, &InvalidImageError{
			Width:    grid.Width,
			Height:   grid.Height,
			Channels: 1,
			Reason:   fmt.Sprintf("brightness grid holds %d values", len(grid.Values)),
		}
	}
	if err := ramp.Validate(); err != nil {
		return nil, err
	}
	if charFactor < 1 {
		return nil, fmt.Errorf("%w: char factor %d must be at least 1",
			ErrInvalidOption, charFactor)
	}

	// Every cluster is one of len(ramp) strings; build them once.
	clusters := make([]string, len(ramp))
	for i, c := range ramp {
		clusters[i] = strings.Repeat(string(c), charFactor)
	}

	lo, hi := grid.Bounds()
	art := &AsciiArtGrid{
		Width:      grid.Width,
		Height:     grid.Height,
		CharFactor: charFactor,
		Rows:       make([][]string, grid.Height),
		Indices:    make([]int, len(grid.Values)),
	}
	err := forEachBand(grid.Height, func(y0, y1 int) error {
		for y := y0; y < y1; y++ {
			row := make([]string, grid.Width)
			idx := art.Indices[y*grid.Width : (y+1)*grid.Width]
			for x, v := range grid.Row(y) {
				idx[x] = QuantizeIndex(v, lo, hi, len(ramp))
				row[x] = clusters[idx[x]]
			}
			art.Rows[y] = row
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return art, nil
}

// String joins the grid into text: clusters within a row are concatenated
// and rows are separated by '\n', without a trailing newline.
func (a *AsciiArtGrid) String() string {
	if a == nil || len(a.Rows) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(a.Height * (a.Width*a.CharFactor + 1))
	for y, row := range a.Rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, cluster := range row {
			sb.WriteString(cluster)
		}
	}
	return sb.String()
}

// Lines returns the rows of the grid as joined strings.
func (a *AsciiArtGrid) Lines() []string {
	lines := make([]string, len(a.Rows))
	for y, row := range a.Rows {
		lines[y] = strings.Join(row, "")
	}
	return lines
}

// Len returns the number of glyphs in the rendered text, ignoring row
// terminators.
func (a *AsciiArtGrid) Len() int {
	return a.Height * a.Width * a.CharFactor
}
