package artwork

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		path string
		want string
	}{
		{name: "empty path", base: PosterSmallBase, path: "", want: ""},
		{name: "leading slash", base: PosterSmallBase, path: "/a.jpg", want: "https://image.tmdb.org/t/p/w342/a.jpg"},
		{name: "missing slash", base: OriginalBase, path: "b.jpg", want: "https://image.tmdb.org/t/p/original/b.jpg"},
		{name: "trailing base slash", base: "https://img.example/", path: "/c.jpg", want: "https://img.example/c.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, URL(tt.base, tt.path))
		})
	}
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "https://image.tmdb.org/t/p/w342/p.jpg", PosterSmall("/p.jpg"))
	assert.Equal(t, "https://image.tmdb.org/t/p/w185/p.jpg", Profile("/p.jpg"))
	assert.Equal(t, "https://image.tmdb.org/t/p/original/p.jpg", Original("/p.jpg"))
	assert.Empty(t, Profile(""))
}
