// Package imageio loads screenshots from disk.
package imageio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the content is not a
	// supported image type.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("imageio: empty data")
)

// IsSupported reports whether path has an image extension the host
// accepts from launch arguments: png, jpg, jpeg, webp, gif, tif or tiff,
// in any letter case.
func IsSupported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif", ".tif", ".tiff":
		return true
	}
	return false
}

// Load reads and decodes the image at path. The format is detected from
// the file content, not the extension. ctx is checked before reading and
// after decoding so that a superseded load can be abandoned.
func Load(ctx context.Context, path string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("imageio: read file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, filepath.Base(path))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return img, nil
}

// Decode decodes data after sniffing its media type.
// Supported formats: PNG, JPEG, GIF, WebP, TIFF, BMP.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	mt := mimetype.Detect(data)
	decode, ok := decoderFor(mt)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mt.String())
	}

	img, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imageio: decode %s: %w", mt.String(), err)
	}
	return img, nil
}

// MediaType returns the sniffed media type of data, such as "image/png".
func MediaType(data []byte) string {
	return mimetype.Detect(data).String()
}

type decodeFunc func(r *bytes.Reader) (image.Image, error)

func decoderFor(mt *mimetype.MIME) (decodeFunc, bool) {
	switch {
	case mt.Is("image/png"):
		return func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) }, true
	case mt.Is("image/jpeg"):
		return func(r *bytes.Reader) (image.Image, error) { return jpeg.Decode(r) }, true
	case mt.Is("image/gif"):
		return func(r *bytes.Reader) (image.Image, error) { return gif.Decode(r) }, true
	case mt.Is("image/webp"):
		return func(r *bytes.Reader) (image.Image, error) { return webp.Decode(r) }, true
	case mt.Is("image/tiff"):
		return func(r *bytes.Reader) (image.Image, error) { return tiff.Decode(r) }, true
	case mt.Is("image/bmp"):
		return func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) }, true
	}
	return nil, false
}
