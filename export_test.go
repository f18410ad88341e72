package img2ascii

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/golang/freetype/truetype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/img2ascii/imageutil"
)

func TestRenderImage(t *testing.T) {
	t.Parallel()

	grid := &BrightnessGrid{Width: 2, Height: 1, Values: []uint8{0, 255}}
	art, err := Quantize(grid, NewRamp(" @"), 1)
	require.NoError(t, err)

	img, err := RenderImage(art, ExportOptions{FontSize: 16})
	require.NoError(t, err)

	atlas := newGlyphAtlas(mustFont(t), 16)
	require.Equal(t, 2*atlas.cellW, img.Bounds().Dx())
	require.Equal(t, atlas.cellH, img.Bounds().Dy())

	lit := func(x0, x1 int) int {
		n := 0
		for y := 0; y < atlas.cellH; y++ {
			for x := x0; x < x1; x++ {
				if img.RGBAAt(x, y).R > 0 {
					n++
				}
			}
		}
		return n
	}
	assert.Zero(t, lit(0, atlas.cellW), "space cell should stay background")
	assert.Positive(t, lit(atlas.cellW, 2*atlas.cellW), "@ cell should have ink")
}

func TestRenderImageColors(t *testing.T) {
	t.Parallel()

	grid := &BrightnessGrid{Width: 1, Height: 1, Values: []uint8{0}}
	art, err := Quantize(grid, NewRamp(" "), 1)
	require.NoError(t, err)

	bg := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	img, err := RenderImage(art, ExportOptions{Background: bg})
	require.NoError(t, err)
	assert.Equal(t, bg, img.RGBAAt(0, 0))
}

func TestSavePNG(t *testing.T) {
	t.Parallel()

	c := NewConverter(WithHeight(8), WithCharFactor(2))
	require.NoError(t, c.LoadImage(imageutil.CreateCheckerboardImage(16, 8, 4).RGBA))
	_, err := c.Render(Average)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "art.png")
	require.NoError(t, SavePNG(c.Art(), path, ExportOptions{}))

	buf, meta, err := imageutil.LoadBuffer(path)
	require.NoError(t, err)
	assert.Equal(t, "png", meta.Format)
	assert.Positive(t, buf.Width)

	_, err = RenderImage(nil, ExportOptions{})
	var typeErr *InvalidInputTypeError
	assert.ErrorAs(t, err, &typeErr)

	_, err = RenderImage(c.Art(), ExportOptions{FontPath: "fonts/missing.ttf"})
	assert.Error(t, err)
}

func mustFont(t *testing.T) *truetype.Font {
	t.Helper()
	f, err := loadFont("")
	require.NoError(t, err)
	return f
}

func TestGlyphAtlasReportsRasterizerErrors(t *testing.T) {
	t.Parallel()

	// no font: the rasterizer refuses to draw
	atlas := &glyphAtlas{size: 8, cellW: 4, cellH: 8, masks: make(map[rune]*image.Alpha)}
	_, err := atlas.mask('@')
	require.Error(t, err)
	assert.Empty(t, atlas.masks)

	atlas = newGlyphAtlas(mustFont(t), 8)
	m, err := atlas.mask('@')
	require.NoError(t, err)
	again, err := atlas.mask('@')
	require.NoError(t, err)
	assert.Same(t, m, again)
}
