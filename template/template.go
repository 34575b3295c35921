// Package template stores named composition styles.
//
// A Template pairs a StyleSettings snapshot with a 600×450 PNG preview.
// Templates live in a single JSON file holding an array ordered most
// recently saved first.
package template

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/presenter"
	"github.com/gogpu/presenter/surface"
)

// DefaultName is used when a template is saved without a name.
const DefaultName = "Untitled"

const dataURLPrefix = "data:image/png;base64,"

// ErrBadThumbnail is returned when a stored thumbnail is not a PNG data
// URL.
var ErrBadThumbnail = errors.New("template: thumbnail is not a PNG data URL")

// Template is a saved style.
type Template struct {
	ID       string                  `json:"id"`
	Name     string                  `json:"name"`
	Settings presenter.StyleSettings `json:"settings"`

	// Thumb is a data:image/png;base64 URL.
	Thumb string `json:"thumb"`
}

// New creates a template with a fresh id and a thumbnail of img rendered
// with s. A nil img gets the placeholder panel instead.
func New(name string, s presenter.StyleSettings, img image.Image) (Template, error) {
	s = s.Normalize()

	dst := surface.NewImageSurface(presenter.ThumbnailWidth, presenter.ThumbnailHeight)
	presenter.Render(dst, s, img, presenter.WithPlaceholder(true))

	var buf bytes.Buffer
	if err := presenter.Encode(&buf, dst.Image(), presenter.FormatPNG); err != nil {
		return Template{}, fmt.Errorf("template: thumbnail: %w", err)
	}

	return Template{
		ID:       uuid.NewString(),
		Name:     CleanName(name),
		Settings: s,
		Thumb:    DataURL(buf.Bytes()),
	}, nil
}

// CleanName trims and NFC-normalizes name, defaulting to DefaultName.
func CleanName(name string) string {
	name = strings.TrimSpace(norm.NFC.String(name))
	if name == "" {
		return DefaultName
	}
	return name
}

// DataURL wraps PNG bytes in a data URL.
func DataURL(pngData []byte) string {
	return dataURLPrefix + base64.StdEncoding.EncodeToString(pngData)
}

// ThumbPNG returns the thumbnail's PNG bytes.
func (t Template) ThumbPNG() ([]byte, error) {
	rest, ok := strings.CutPrefix(t.Thumb, dataURLPrefix)
	if !ok {
		return nil, ErrBadThumbnail
	}
	data, err := base64.StdEncoding.DecodeString(rest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadThumbnail, err)
	}
	return data, nil
}

// ThumbImage decodes the thumbnail.
func (t Template) ThumbImage() (image.Image, error) {
	data, err := t.ThumbPNG()
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadThumbnail, err)
	}
	return img, nil
}
