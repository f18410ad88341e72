package imageutil

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// PixelBuffer is a row-major [row][col][channel] array of 8-bit samples.
// Pix holds Height*Width*Channels bytes; the sample for channel c of the
// pixel at (x, y) lives at Pix[(y*Width+x)*Channels+c].
//
// Channel layouts follow the usual image modes:
//
//	1  L     grayscale
//	2  LA    grayscale + alpha
//	3  RGB   opaque color
//	4  RGBA  color + straight (non-premultiplied) alpha
type PixelBuffer struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// NewPixelBuffer allocates a zeroed buffer of the given shape.
func NewPixelBuffer(width, height, channels int) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, &InvalidImageError{width, height, channels,
			"width and height must be positive"}
	}
	if channels < 1 || channels > 4 {
		return nil, &InvalidImageError{width, height, channels,
			"channel count must be between 1 and 4"}
	}
	return &PixelBuffer{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}, nil
}

// At returns the channel samples of the pixel at (x, y). The returned
// slice aliases the buffer.
func (b *PixelBuffer) At(x, y int) []uint8 {
	i := (y*b.Width + x) * b.Channels
	return b.Pix[i : i+b.Channels : i+b.Channels]
}

// Row returns the samples of row y. The returned slice aliases the buffer.
func (b *PixelBuffer) Row(y int) []uint8 {
	stride := b.Width * b.Channels
	return b.Pix[y*stride : (y+1)*stride]
}

// Mode returns the conventional name of the channel layout.
func (b *PixelBuffer) Mode() string {
	return ModeName(b.Channels)
}

// Validate checks the shape invariants of the buffer.
func (b *PixelBuffer) Validate() error {
	if b == nil {
		return &InvalidInputTypeError{Op: "validate", Want: "*PixelBuffer", Got: "nil"}
	}
	if b.Width <= 0 || b.Height <= 0 {
		return &InvalidImageError{b.Width, b.Height, b.Channels,
			"width and height must be positive"}
	}
	if b.Channels < 1 || b.Channels > 4 {
		return &InvalidImageError{b.Width, b.Height, b.Channels,
			"channel count must be between 1 and 4"}
	}
	if len(b.Pix) != b.Width*b.Height*b.Channels {
		return &InvalidImageError{b.Width, b.Height, b.Channels,
			fmt.Sprintf("pixel data holds %d samples", len(b.Pix))}
	}
	return nil
}

// ModeName maps a channel count to its mode name.
func ModeName(channels int) string {
	switch channels {
	case 1:
		return "L"
	case 2:
		return "LA"
	case 3:
		return "RGB"
	case 4:
		return "RGBA"
	default:
		return fmt.Sprintf("%d-channel", channels)
	}
}

// ChannelsFor picks the channel count that represents img without loss of
// the information the brightness models care about: grayscale sources keep
// one channel, opaque color sources three, and anything that may carry
// transparency four.
func ChannelsFor(img image.Image) int {
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		return 1
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return 3
	}
	return 4
}

// FromImage converts a decoded image into a PixelBuffer whose channel
// count is chosen by ChannelsFor.
func FromImage(img image.Image) (*PixelBuffer, error) {
	if img == nil {
		return nil, &InvalidInputTypeError{Op: "image to array", Want: "image.Image", Got: "nil"}
	}
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	channels := ChannelsFor(img)
	buf, err := NewPixelBuffer(width, height, channels)
	if err != nil {
		return nil, err
	}

	if m, ok := img.(*image.NRGBA); ok && channels == 4 {
		// straight alpha copies through without a premultiply round trip
		for y := 0; y < height; y++ {
			i := m.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(buf.Row(y), m.Pix[i:i+width*4])
		}
		return buf, nil
	}

	switch channels {
	case 1:
		gray := image.NewGray(image.Rect(0, 0, width, height))
		draw.Draw(gray, gray.Bounds(), img, bounds.Min, draw.Src)
		for y := 0; y < height; y++ {
			copy(buf.Row(y), gray.Pix[y*gray.Stride:y*gray.Stride+width])
		}
	default:
		nrgba := image.NewNRGBA(image.Rect(0, 0, width, height))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
		for y := 0; y < height; y++ {
			src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+width*4]
			dst := buf.Row(y)
			if channels == 4 {
				copy(dst, src)
				continue
			}
			for x := 0; x < width; x++ {
				copy(dst[x*3:x*3+3], src[x*4:x*4+3])
			}
		}
	}
	return buf, nil
}

// ToImage converts a PixelBuffer back into an image.Image: *image.Gray for
// one channel, *image.RGBA for three and *image.NRGBA for two or four.
func ToImage(buf *PixelBuffer) (image.Image, error) {
	if buf == nil {
		return nil, &InvalidInputTypeError{Op: "array to image", Want: "*PixelBuffer", Got: "nil"}
	}
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	rect := image.Rect(0, 0, buf.Width, buf.Height)

	switch buf.Channels {
	case 1:
		gray := image.NewGray(rect)
		for y := 0; y < buf.Height; y++ {
			copy(gray.Pix[y*gray.Stride:], buf.Row(y))
		}
		return gray, nil
	case 3:
		rgba := image.NewRGBA(rect)
		for y := 0; y < buf.Height; y++ {
			row := buf.Row(y)
			dst := rgba.Pix[y*rgba.Stride:]
			for x := 0; x < buf.Width; x++ {
				copy(dst[x*4:x*4+3], row[x*3:x*3+3])
				dst[x*4+3] = 0xff
			}
		}
		return rgba, nil
	default:
		nrgba := image.NewNRGBA(rect)
		for y := 0; y < buf.Height; y++ {
			row := buf.Row(y)
			dst := nrgba.Pix[y*nrgba.Stride:]
			if buf.Channels == 4 {
				copy(dst, row)
				continue
			}
			for x := 0; x < buf.Width; x++ {
				v, a := row[x*2], row[x*2+1]
				dst[x*4], dst[x*4+1], dst[x*4+2], dst[x*4+3] = v, v, v, a
			}
		}
		return nrgba, nil
	}
}
