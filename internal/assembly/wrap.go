package assembly

import (
	"errors"
	"regexp"
)

// ErrMissingBodyMarker is returned in strict mode when a layout has no
// {% body %} marker.
var ErrMissingBodyMarker = errors.New("layout has no body marker")

var bodyMarker = regexp.MustCompile(`\{%\s?body\s?%\}`)

// Wrap replaces the first body marker in layout with body. Without a marker
// the layout is returned unchanged and body is dropped.
func Wrap(body, layout string) string {
	loc := bodyMarker.FindStringIndex(layout)
	if loc == nil {
		return layout
	}
	return layout[:loc[0]] + body + layout[loc[1]:]
}

// HasBodyMarker reports whether layout contains a body marker.
func HasBodyMarker(layout string) bool {
	return bodyMarker.MatchString(layout)
}
