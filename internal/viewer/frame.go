package viewer

import (
	"errors"
	"io/fs"

	"github.com/gogpu/presenter"
	"github.com/gogpu/presenter/internal/imageio"
	"github.com/gogpu/presenter/session"
	"github.com/gogpu/presenter/surface"
)

var errNoDroppedImage = errors.New("viewer: drop a png, jpeg, webp, gif or tiff file")

// frame renders session states into a CPU surface and skips versions it
// has already drawn.
type frame struct {
	surf     *surface.ImageSurface
	version  uint64
	rendered bool
}

// update draws st unless its version is the one on the surface. It reports
// whether the pixels changed and whether the surface was reallocated.
// Without an image the placeholder panel previews the style.
func (f *frame) update(st session.State) (changed, resized bool) {
	if f.rendered && st.Version == f.version {
		return false, false
	}

	w, h := presenter.CanvasSize(st.Settings, st.Image, 1)
	if f.surf == nil || f.surf.Width() != w || f.surf.Height() != h {
		f.surf = surface.NewImageSurface(w, h)
		resized = true
	}
	presenter.Render(f.surf, st.Settings, st.Image, presenter.WithPlaceholder(true))

	f.version = st.Version
	f.rendered = true
	return true, resized
}

// pickDropped returns the name and bytes of the first supported image at
// the root of fsys.
func pickDropped(fsys fs.FS) (string, []byte, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return "", nil, err
	}
	for _, e := range entries {
		if e.IsDir() || !imageio.IsSupported(e.Name()) {
			continue
		}
		data, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return "", nil, err
		}
		return e.Name(), data, nil
	}
	return "", nil, errNoDroppedImage
}
