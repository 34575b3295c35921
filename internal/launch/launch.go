// Package launch extracts the image to open from host launch parameters.
package launch

import (
	"net/url"
	"strings"

	"github.com/gogpu/presenter/internal/imageio"
)

// openKey is the query parameter carrying a path to open.
const openKey = "open"

// ParseOpenParam extracts the path from a query string of the form
// "?open=<url-encoded path>". The leading "?" is optional and anything
// before it is ignored, so a full URL works as well. The path must have a
// supported image extension.
func ParseOpenParam(s string) (string, bool) {
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s = s[i+1:]
	}
	if !strings.Contains(s, openKey+"=") {
		return "", false
	}

	values, err := url.ParseQuery(s)
	if err != nil {
		return "", false
	}
	raw := values.Get(openKey)
	if raw == "" {
		return "", false
	}

	// Some launchers encode the value twice.
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	if !imageio.IsSupported(raw) {
		return "", false
	}
	return raw, true
}

// FindImageArg returns the first argument naming a supported image, either
// directly or through an open query parameter.
func FindImageArg(args []string) (string, bool) {
	for _, arg := range args {
		if p, ok := ParseOpenParam(arg); ok {
			return p, true
		}
		if strings.HasPrefix(arg, "-") {
			continue
		}
		if imageio.IsSupported(arg) {
			return arg, true
		}
	}
	return "", false
}
