package presenter

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrUnsupportedFormat is returned for export formats other than PNG and
// JPEG.
var ErrUnsupportedFormat = errors.New("presenter: unsupported format")

// JPEGQuality is the quality used for JPEG export.
const JPEGQuality = 92

// Format is an export image format.
type Format uint8

const (
	// FormatPNG is lossless PNG.
	FormatPNG Format = iota

	// FormatJPEG is JPEG at JPEGQuality.
	FormatJPEG
)

// String returns "png" or "jpeg".
func (f Format) String() string {
	if f == FormatJPEG {
		return "jpeg"
	}
	return "png"
}

// Extension returns the file extension without a dot.
func (f Format) Extension() string {
	return f.String()
}

// MIMEType returns the media type of the format.
func (f Format) MIMEType() string {
	return "image/" + f.String()
}

// ParseFormat accepts "png", "jpeg" and "jpg", case-insensitive.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	}
	return FormatPNG, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("presenter: encode PNG: %w", err)
		}
	case FormatJPEG:
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return fmt.Errorf("presenter: encode JPEG: %w", err)
		}
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedFormat, f)
	}
	return nil
}

// SaveFile encodes img into the file at path, creating parent directories.
func SaveFile(path string, img image.Image, f Format) error {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("presenter: create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("presenter: create file: %w", err)
	}
	if err := Encode(file, img, f); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// ExportFileName returns the download name for an export made at t:
// "screenshot-presenter-" followed by the UTC ISO 8601 timestamp with
// millisecond precision, ':' and '.' replaced by '-'.
func ExportFileName(t time.Time, f Format) string {
	ts := t.UTC().Format("2006-01-02T15:04:05.000Z")
	ts = strings.NewReplacer(":", "-", ".", "-").Replace(ts)
	return "screenshot-presenter-" + ts + "." + f.Extension()
}
