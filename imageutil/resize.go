package imageutil

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationArea uses Catmull-Rom for high-quality downscaling.
	// This is the closest equivalent to OpenCV's INTER_AREA and to the
	// antialiasing filters of most image libraries.
	InterpolationArea Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	// Fastest but lowest quality.
	InterpolationNearest
)

func (interp Interpolation) scaler() draw.Scaler {
	switch interp {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationNearest:
		return draw.NearestNeighbor
	default:
		// CatmullRom provides high quality for both up and down scaling
		return draw.CatmullRom
	}
}

// Resize rescales buf to width x height, keeping its channel count.
func Resize(buf *PixelBuffer, width, height int, interp Interpolation) (*PixelBuffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, &InvalidImageError{width, height, buf.Channels,
			"target width and height must be positive"}
	}

	src, err := ToImage(buf)
	if err != nil {
		return nil, err
	}

	dstRect := image.Rect(0, 0, width, height)
	var dst draw.Image
	switch src.(type) {
	case *image.Gray:
		dst = image.NewGray(dstRect)
	case *image.RGBA:
		dst = image.NewRGBA(dstRect)
	default:
		dst = image.NewNRGBA(dstRect)
	}
	interp.scaler().Scale(dst, dstRect, src, src.Bounds(), draw.Src, nil)

	out, err := NewPixelBuffer(width, height, buf.Channels)
	if err != nil {
		return nil, err
	}
	fillBuffer(out, dst)
	return out, nil
}

// fillBuffer copies the samples of a scaled image back into out, dropping
// or folding channels to match out.Channels.
func fillBuffer(out *PixelBuffer, img image.Image) {
	switch m := img.(type) {
	case *image.Gray:
		for y := 0; y < out.Height; y++ {
			copy(out.Row(y), m.Pix[y*m.Stride:y*m.Stride+out.Width])
		}
	case *image.RGBA:
		for y := 0; y < out.Height; y++ {
			src, dst := m.Pix[y*m.Stride:], out.Row(y)
			for x := 0; x < out.Width; x++ {
				copy(dst[x*3:x*3+3], src[x*4:x*4+3])
			}
		}
	case *image.NRGBA:
		for y := 0; y < out.Height; y++ {
			src, dst := m.Pix[y*m.Stride:], out.Row(y)
			if out.Channels == 4 {
				copy(dst, src[:out.Width*4])
				continue
			}
			for x := 0; x < out.Width; x++ {
				dst[x*2], dst[x*2+1] = src[x*4], src[x*4+3]
			}
		}
	}
}

// TargetWidth returns round(height * srcWidth / srcHeight), never less
// than one.
func TargetWidth(srcWidth, srcHeight, height int) int {
	w := int(math.Round(float64(height) * float64(srcWidth) / float64(srcHeight)))
	if w < 1 {
		w = 1
	}
	return w
}

// ResizeToHeight resizes buf to exactly height rows while maintaining
// aspect ratio.
func ResizeToHeight(buf *PixelBuffer, height int, interp Interpolation) (*PixelBuffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if height <= 0 {
		return nil, &InvalidImageError{buf.Width, height, buf.Channels,
			"target height must be positive"}
	}
	return Resize(buf, TargetWidth(buf.Width, buf.Height, height), height, interp)
}
