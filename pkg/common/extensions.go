package common

import (
	"net/url"
	"path"
	"slices"
	"strings"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// IsImageFormat reports whether the path (or the path part of a URL) ends with a known image extension.
// Query strings and fragments are ignored.
func IsImageFormat(rawURL string) bool {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		p = u.Path
	}
	return slices.Contains(imageExtensions, strings.ToLower(path.Ext(p)))
}
