// Package artwork builds catalog image URLs from relative image paths.
package artwork

import "strings"

// Image bases for the sizes the UI uses.
const (
	PosterSmallBase = "https://image.tmdb.org/t/p/w342"
	ProfileBase     = "https://image.tmdb.org/t/p/w185"
	OriginalBase    = "https://image.tmdb.org/t/p/original"
)

// URL joins base and path. An empty path yields "" so callers can filter
// records that have no image.
func URL(base, path string) string {
	if path == "" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(base, "/") + path
}

// PosterSmall returns the small poster URL for path.
func PosterSmall(path string) string { return URL(PosterSmallBase, path) }

// Profile returns the profile image URL for path.
func Profile(path string) string { return URL(ProfileBase, path) }

// Original returns the full size image URL for path.
func Original(path string) string { return URL(OriginalBase, path) }
