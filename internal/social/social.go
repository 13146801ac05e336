// Package social turns a person's external identifiers into profile links.
package social

import (
	"strconv"
)

// Site is a recognized profile site. The declaration order of the external
// sites is the order their links are emitted in.
type Site int

// Recognized sites.
const (
	SiteTMDB Site = iota
	SiteFacebook
	SiteIMDb
	SiteTwitter
	SiteYouTube
	SiteInstagram
	SiteTikTok
)

// String returns the icon tag of the site.
func (s Site) String() string {
	switch s {
	case SiteTMDB:
		return "tmdb"
	case SiteFacebook:
		return "facebook"
	case SiteIMDb:
		return "imdb"
	case SiteTwitter:
		return "twitter"
	case SiteYouTube:
		return "youtube"
	case SiteInstagram:
		return "instagram"
	case SiteTikTok:
		return "tiktok"
	default:
		return "unknown"
	}
}

// MarshalText encodes the site as its icon tag.
func (s Site) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Link is one profile link.
type Link struct {
	URL  string `json:"url"`
	Icon Site   `json:"icon"`
}

type external struct {
	site   Site
	key    string
	prefix string
}

// externals lists the external sites in priority order with the catalog key
// that carries the identifier and the URL prefix the identifier is appended to.
var externals = []external{
	{SiteFacebook, "facebook_id", "https://facebook.com/"},
	{SiteIMDb, "imdb_id", "https://imdb.com/name/"},
	{SiteTwitter, "twitter_id", "https://x.com/"},
	{SiteYouTube, "youtube_id", "https://youtube.com/@"},
	{SiteInstagram, "instagram_id", "https://instagram.com/"},
	{SiteTikTok, "tiktok_id", "https://www.tiktok.com/@"},
}

// CatalogProfileURL returns the catalog's own profile page for a person.
func CatalogProfileURL(catalogID int) string {
	return "https://themoviedb.org/person/" + strconv.Itoa(catalogID)
}

// Resolve returns the catalog profile link followed by one link per
// recognized external identifier that is present and non-empty, in
// priority order. Unrecognized keys are ignored.
func Resolve(catalogID int, externalIDs map[string]*string) []Link {
	links := make([]Link, 0, len(externals)+1)
	links = append(links, Link{URL: CatalogProfileURL(catalogID), Icon: SiteTMDB})

	for _, ext := range externals {
		id := externalIDs[ext.key]
		if id == nil || *id == "" {
			continue
		}
		links = append(links, Link{URL: ext.prefix + *id, Icon: ext.site})
	}
	return links
}
