package img2ascii

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"time"

	"github.com/wbrown/img2ascii/imageutil"
)

const (
	// StdHeight is the working height, in rows, every image is resized to.
	StdHeight = 300
	// CharFactor is how many times each glyph is repeated horizontally to
	// make up for terminal cells being about twice as tall as they are wide.
	CharFactor = 3
)

// Converter holds the state of one image conversion: the resized pixels
// of the loaded image and the grids produced by the most recent Render.
// A Converter is not safe for concurrent use; create one per image.
type Converter struct {
	// Configuration options
	Height        int
	CharFactor    int
	Ramp          CharacterRamp
	Interpolation imageutil.Interpolation

	logger *slog.Logger

	// Pipeline state (private)
	meta       imageutil.Metadata
	pixels     *imageutil.PixelBuffer
	brightness *BrightnessGrid
	art        *AsciiArtGrid
}

// ConverterOption is a functional option for configuring a Converter.
type ConverterOption func(*Converter)

// NewConverter creates a new Converter with the given options.
// Default values: Height=StdHeight, CharFactor=CharFactor, Ramp=DefaultRamp,
// Interpolation=InterpolationArea, and a logger that discards everything.
func NewConverter(opts ...ConverterOption) *Converter {
	c := &Converter{
		Height:        StdHeight,
		CharFactor:    CharFactor,
		Ramp:          DefaultRamp,
		Interpolation: imageutil.InterpolationArea,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithHeight sets the working height every image is resized to.
func WithHeight(rows int) ConverterOption {
	return func(c *Converter) {
		c.Height = rows
	}
}

// WithCharFactor sets the horizontal glyph repeat factor.
func WithCharFactor(n int) ConverterOption {
	return func(c *Converter) {
		c.CharFactor = n
	}
}

// WithRamp sets the character ramp, lightest glyph first.
func WithRamp(ramp CharacterRamp) ConverterOption {
	return func(c *Converter) {
		c.Ramp = ramp
	}
}

// WithInterpolation sets the resampling filter used by the resize step.
func WithInterpolation(interp imageutil.Interpolation) ConverterOption {
	return func(c *Converter) {
		c.Interpolation = interp
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) ConverterOption {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

func (c *Converter) validate() error {
	if c.Height < 1 {
		return fmt.Errorf("%w: height %d must be at least 1", ErrInvalidOption, c.Height)
	}
	if c.CharFactor < 1 {
		return fmt.Errorf("%w: char factor %d must be at least 1", ErrInvalidOption, c.CharFactor)
	}
	return c.Ramp.Validate()
}

// Load validates path, decodes the image, resizes it to the working
// height and makes it the current image. Earlier state is kept if any
// step fails.
func (c *Converter) Load(path string) error {
	if err := c.validate(); err != nil {
		return err
	}
	buf, meta, err := imageutil.LoadBuffer(path)
	if err != nil {
		return err
	}
	c.logger.Info("image loaded",
		"name", meta.Name,
		"size", fmt.Sprintf("(%d, %d)", meta.Width, meta.Height),
		"format", meta.Format,
		"mode", meta.Mode)
	return c.setPixels(buf, meta)
}

// LoadImage makes an already decoded image the current image.
func (c *Converter) LoadImage(img image.Image) error {
	if err := c.validate(); err != nil {
		return err
	}
	buf, err := imageutil.FromImage(img)
	if err != nil {
		return err
	}
	meta := imageutil.Metadata{
		Name:   "<memory>",
		Width:  buf.Width,
		Height: buf.Height,
		Format: "raw",
		Mode:   buf.Mode(),
	}
	return c.setPixels(buf, meta)
}

func (c *Converter) setPixels(buf *imageutil.PixelBuffer, meta imageutil.Metadata) error {
	begin := time.Now()
	resized, err := imageutil.ResizeToHeight(buf, c.Height, c.Interpolation)
	if err != nil {
		return fmt.Errorf("failed to resize image: %w", err)
	}
	c.logger.Debug("image resized",
		"from", fmt.Sprintf("%dx%d", buf.Width, buf.Height),
		"to", fmt.Sprintf("%dx%d", resized.Width, resized.Height),
		"elapsed", time.Since(begin))

	c.meta = meta
	c.pixels = resized
	c.brightness = nil
	c.art = nil
	return nil
}

// Render reduces the current image under model, quantizes the result
// onto the ramp and returns the joined text. Both grids replace the ones
// kept from the previous Render; on failure nothing is replaced.
func (c *Converter) Render(model Model) (string, error) {
	if c.pixels == nil {
		return "", ErrNoImage
	}
	if err := c.validate(); err != nil {
		return "", err
	}

	begin := time.Now()
	grid, err := Reduce(c.pixels, model)
	if err != nil {
		return "", err
	}
	reduced := time.Now()
	art, err := Quantize(grid, c.Ramp, c.CharFactor)
	if err != nil {
		return "", err
	}
	c.logger.Debug("image rendered",
		"model", model.String(),
		"rows", art.Height,
		"cols", art.Width,
		"reduce", reduced.Sub(begin),
		"quantize", time.Since(reduced))

	c.brightness = grid
	c.art = art
	return art.String(), nil
}

// Metadata describes the loaded image as it was before resizing.
func (c *Converter) Metadata() imageutil.Metadata { return c.meta }

// Pixels returns the resized image, or nil before a successful Load.
func (c *Converter) Pixels() *imageutil.PixelBuffer { return c.pixels }

// Brightness returns the grid of the last Render, or nil.
func (c *Converter) Brightness() *BrightnessGrid { return c.brightness }

// Art returns the grid of the last Render, or nil.
func (c *Converter) Art() *AsciiArtGrid { return c.art }
