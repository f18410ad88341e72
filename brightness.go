package img2ascii

import (
	"math"
	"runtime"

	"github.com/wbrown/img2ascii/imageutil"
	"golang.org/x/sync/errgroup"
)

// BrightnessGrid holds one integer brightness in [0, 255] per pixel,
// row-major, with the shape of the PixelBuffer it was derived from.
type BrightnessGrid struct {
	Width  int
	Height int
	Model  Model
	Values []uint8
}

// At returns the brightness of the pixel at (x, y).
func (g *BrightnessGrid) At(x, y int) uint8 {
	return g.Values[y*g.Width+x]
}

// Row returns the brightness values of row y. The slice aliases the grid.
func (g *BrightnessGrid) Row(y int) []uint8 {
	return g.Values[y*g.Width : (y+1)*g.Width]
}

// Bounds returns the smallest and largest brightness in the grid.
func (g *BrightnessGrid) Bounds() (lo, hi uint8) {
	lo, hi = 255, 0
	for _, v := range g.Values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

// Reduce computes the BrightnessGrid of buf under model. Rows are split
// into bands that are reduced concurrently; every cell depends only on
// its own pixel.
func Reduce(buf *imageutil.PixelBuffer, model Model) (*BrightnessGrid, error) {
	if !model.Valid() {
		return nil, &InvalidModelError{Name: model.String()}
	}
	if buf == nil {
		return nil, &InvalidInputTypeError{Op: "reduce", Want: "*PixelBuffer", Got: "nil"}
	}
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	grid := &BrightnessGrid{
		Width:  buf.Width,
		Height: buf.Height,
		Model:  model,
		Values: make([]uint8, buf.Width*buf.Height),
	}
	fn := model.pixelFunc()
	c := buf.Channels

	err := forEachBand(buf.Height, func(y0, y1 int) error {
		for y := y0; y < y1; y++ {
			src, dst := buf.Row(y), grid.Row(y)
			for x := range dst {
				dst[x] = roundToByte(fn(src[x*c : x*c+c]))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return grid, nil
}

// roundToByte rounds half away from zero and clamps to [0, 255].
func roundToByte(v float64) uint8 {
	r := math.Round(v)
	switch {
	case r < 0:
		return 0
	case r > 255:
		return 255
	}
	return uint8(r)
}

// forEachBand splits [0, rows) into contiguous bands, one per available
// CPU, and runs fn on each band concurrently. It returns once every band
// has finished, with the first error any band reported.
func forEachBand(rows int, fn func(y0, y1 int) error) error {
	workers := min(runtime.GOMAXPROCS(0), rows)
	if workers <= 1 {
		return fn(0, rows)
	}
	band := (rows + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for y0 := 0; y0 < rows; y0 += band {
		y0, y1 := y0, min(y0+band, rows)
		g.Go(func() error {
			return fn(y0, y1)
		})
	}
	return g.Wait()
}
