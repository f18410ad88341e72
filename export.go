package img2ascii

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/wbrown/img2ascii/imageutil"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// ExportOptions controls rasterizing an AsciiArtGrid to an image.
type ExportOptions struct {
	// FontPath names a TrueType font; empty selects the embedded Go Mono.
	FontPath string
	// FontSize in points at 72 DPI; zero selects 8.
	FontSize   float64
	Foreground color.Color
	Background color.Color
}

func (o ExportOptions) withDefaults() ExportOptions {
	if o.FontSize <= 0 {
		o.FontSize = 8
	}
	if o.Foreground == nil {
		o.Foreground = color.White
	}
	if o.Background == nil {
		o.Background = color.Black
	}
	return o
}

// glyphAtlas caches one pre-rendered coverage mask per ramp glyph, all
// sharing a fixed monospaced cell.
type glyphAtlas struct {
	ttf      *truetype.Font
	size     float64
	cellW    int
	cellH    int
	baseline int
	masks    map[rune]*image.Alpha
}

// loadFont loads a TrueType font from file, or the embedded Go Mono when
// path is empty.
func loadFont(path string) (*truetype.Font, error) {
	fontBytes := gomono.TTF
	if path != "" {
		var err error
		fontBytes, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font: %w", err)
		}
	}
	ttf, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return ttf, nil
}

func newGlyphAtlas(ttf *truetype.Font, size float64) *glyphAtlas {
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	metrics := face.Metrics()
	adv, ok := face.GlyphAdvance('M')
	if !ok {
		adv = metrics.Height / 2
	}
	return &glyphAtlas{
		ttf:      ttf,
		size:     size,
		cellW:    max(adv.Ceil(), 1),
		cellH:    max(metrics.Height.Ceil(), 1),
		baseline: metrics.Ascent.Ceil(),
		masks:    make(map[rune]*image.Alpha),
	}
}

// mask returns the coverage mask of r, rendering it on first use.
// Glyphs the font lacks render as an empty cell.
func (a *glyphAtlas) mask(r rune) (*image.Alpha, error) {
	if m, ok := a.masks[r]; ok {
		return m, nil
	}
	m := image.NewAlpha(image.Rect(0, 0, a.cellW, a.cellH))

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(a.ttf)
	ctx.SetFontSize(a.size)
	ctx.SetClip(m.Bounds())
	ctx.SetDst(m)
	ctx.SetSrc(image.Opaque)
	ctx.SetHinting(font.HintingFull)
	if _, err := ctx.DrawString(string(r), freetype.Pt(0, a.baseline)); err != nil {
		return nil, fmt.Errorf("failed to render glyph %q: %w", r, err)
	}

	a.masks[r] = m
	return m, nil
}

// RenderImage rasterizes art with a monospaced font, one font cell per
// glyph, foreground text over a solid background.
func RenderImage(art *AsciiArtGrid, opts ExportOptions) (*image.RGBA, error) {
	if art == nil {
		return nil, &InvalidInputTypeError{Op: "export", Want: "*AsciiArtGrid", Got: "nil"}
	}
	opts = opts.withDefaults()
	ttf, err := loadFont(opts.FontPath)
	if err != nil {
		return nil, err
	}
	atlas := newGlyphAtlas(ttf, opts.FontSize)

	cols := art.Width * art.CharFactor
	img := image.NewRGBA(image.Rect(0, 0, cols*atlas.cellW, art.Height*atlas.cellH))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	fg := image.NewUniform(opts.Foreground)
	for y, row := range art.Rows {
		x := 0
		for _, cluster := range row {
			for _, r := range cluster {
				mask, err := atlas.mask(r)
				if err != nil {
					return nil, err
				}
				cell := image.Rect(x*atlas.cellW, y*atlas.cellH,
					(x+1)*atlas.cellW, (y+1)*atlas.cellH)
				draw.DrawMask(img, cell, fg, image.Point{}, mask, image.Point{}, draw.Over)
				x++
			}
		}
	}
	return img, nil
}

// SavePNG rasterizes art and writes it to path as PNG.
func SavePNG(art *AsciiArtGrid, path string, opts ExportOptions) error {
	img, err := RenderImage(art, opts)
	if err != nil {
		return err
	}
	return imageutil.SavePNG(img, path)
}
