package imageutil

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"io/fs"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Metadata describes a decoded image as it was found on disk.
type Metadata struct {
	Name   string // base name of the file
	Width  int
	Height int
	Format string // decoder name: "png", "jpeg", "gif", "bmp", "tiff", "webp"
	Mode   string // channel layout, see ModeName
}

// ValidatePath checks that path names an existing regular file.
// Any failure is reported as a *PathError.
func ValidatePath(path string) error {
	if path == "" {
		return &PathError{Reason: "no path given"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &PathError{Path: path, Reason: "does not exist", Err: err}
		}
		return &PathError{Path: path, Reason: "cannot be accessed", Err: err}
	}
	if !info.Mode().IsRegular() {
		return &PathError{Path: path, Reason: "is not a regular file"}
	}
	return nil
}

// LoadImage validates path and decodes the image stored there.
// Supports PNG, JPEG, GIF, BMP, TIFF and WebP.
func LoadImage(path string) (image.Image, Metadata, error) {
	if err := ValidatePath(path); err != nil {
		return nil, Metadata{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, Metadata{}, &PathError{Path: path, Reason: "cannot be opened", Err: err}
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, Metadata{}, &DecodeError{Path: path, Err: err}
	}

	bounds := img.Bounds()
	meta := Metadata{
		Name:   filepath.Base(path),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Format: format,
		Mode:   ModeName(ChannelsFor(img)),
	}
	return img, meta, nil
}

// LoadBuffer loads the image at path straight into a PixelBuffer.
func LoadBuffer(path string) (*PixelBuffer, Metadata, error) {
	img, meta, err := LoadImage(path)
	if err != nil {
		return nil, meta, err
	}
	buf, err := FromImage(img)
	if err != nil {
		return nil, meta, err
	}
	return buf, meta, nil
}

// SavePNG saves an image as PNG to the specified path.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return f.Close()
}

// SaveBuffer writes a PixelBuffer to path as PNG.
func SaveBuffer(buf *PixelBuffer, path string) error {
	img, err := ToImage(buf)
	if err != nil {
		return err
	}
	return SavePNG(img, path)
}
