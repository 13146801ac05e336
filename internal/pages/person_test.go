package pages

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reiverr/reiverr-server/internal/credits"
	"github.com/reiverr/reiverr-server/internal/geometry"
	"github.com/reiverr/reiverr-server/internal/layout"
	"github.com/reiverr/reiverr-server/internal/service"
	"github.com/reiverr/reiverr-server/internal/social"
)

func render(t *testing.T, v *service.PersonView, pres layout.Presentation) *goquery.Document {
	t.Helper()
	r, err := layout.NewRenderer()
	require.NoError(t, err)

	page, err := Person(r, v, pres, geometry.Input{ViewportHeight: 900})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, page))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(buf.String()))
	require.NoError(t, err)
	return doc
}

func personView() *service.PersonView {
	return &service.PersonView{
		ID:                 525,
		Name:               "Christopher Nolan",
		Title:              "Christopher Nolan",
		Tagline:            "Directing",
		Overview:           "British-American filmmaker.",
		Biography:          "<p>British-American filmmaker.</p>",
		ProfilePath:        "/nolan.jpg",
		KnownForDepartment: "Directing",
		Gender:             "Male",
		Birthday:           "Jul 30, 1970",
		PlaceOfBirth:       "London",
		Homepage:           "https://example.com",
		Socials: []social.Link{
			{URL: "https://themoviedb.org/person/525", Icon: social.SiteTMDB},
			{URL: "https://imdb.com/name/nm0634240", Icon: social.SiteIMDb},
		},
		KnownFor: []credits.KnownForEntry{
			{ID: 872585, Title: "Oppenheimer", Subtitle: "Director", ArtworkURL: "https://image.tmdb.org/t/p/w342/opp.jpg"},
		},
		MovieCount:   1,
		CrewCount:    3,
		TotalCredits: 4,
	}
}

func TestPerson_FullPage(t *testing.T) {
	doc := render(t, personView(), layout.Presentation{})

	assert.Equal(t, "Christopher Nolan", doc.Find("h1.title").Text())
	assert.Equal(t, "4 Credits", doc.Find(".title-info .credit-count").Text())
	assert.Equal(t, 1, doc.Find(".title-info a.homepage").Length())

	assert.Equal(t, "Directing", doc.Find(".info-description .tagline").Text())
	assert.Equal(t, "British-American filmmaker.", doc.Find(".info-description .overview p").Text())

	links := doc.Find(".external-links a")
	require.Equal(t, 2, links.Length())
	href, _ := links.First().Attr("href")
	assert.Equal(t, "https://themoviedb.org/person/525", href)

	assert.Equal(t, "Male", doc.Find(".gender h2").Text())
	assert.Equal(t, "Jul 30, 1970", doc.Find(".birthday h2").Text())
	assert.Equal(t, "London", doc.Find(".place-of-birth h2").Text())

	// Explicit empty override: no placeholder buttons.
	assert.Equal(t, 0, doc.Find(".servarr-components").Length())

	cards := doc.Find(".known-for .poster-card")
	require.Equal(t, 1, cards.Length())
	assert.Equal(t, "Oppenheimer", cards.Find(".poster-title").Text())

	src, _ := doc.Find(".backdrop--desktop img").Attr("src")
	assert.Equal(t, "https://image.tmdb.org/t/p/original/nolan.jpg", src)

	style, _ := doc.Find(".backdrop--desktop").Attr("style")
	assert.Contains(t, style, "900px")
	assert.Equal(t, 0, doc.Find(".close-modal").Length())
}

func TestPerson_NoCreditsNoHomepage(t *testing.T) {
	v := personView()
	v.Homepage = ""
	v.KnownFor = []credits.KnownForEntry{}
	v.MovieCount, v.CrewCount, v.TotalCredits = 0, 0, 0

	doc := render(t, v, layout.Presentation{})

	assert.Equal(t, 0, doc.Find(".credit-count").Length())
	assert.Equal(t, 0, doc.Find(".homepage").Length())
	assert.Equal(t, 0, doc.Find(".known-for").Length())
}

func TestPerson_Modal(t *testing.T) {
	doc := render(t, personView(), layout.Presentation{Modal: true, CloseURL: "/discover"})

	assert.Equal(t, "modal", doc.Find(".title-page").AttrOr("data-mode", ""))
	assert.Equal(t, "/person/525", doc.Find("a.open-external").AttrOr("href", ""))
	assert.Equal(t, "/discover", doc.Find("a.close-modal").AttrOr("href", ""))

	// Modal height follows the top region, which is unknown at render time.
	_, hasStyle := doc.Find(".backdrop--desktop").Attr("style")
	assert.False(t, hasStyle)
}

func TestPerson_Placeholder(t *testing.T) {
	doc := render(t, nil, layout.Presentation{})

	assert.Equal(t, "Placeholder", doc.Find("h1.title").Text())
	assert.Equal(t, "Placeholder Long", doc.Find(".title-info .placeholder-text").Text())
	assert.Equal(t, 2, doc.Find(".servarr-components .button-placeholder").Length())
	assert.Equal(t, 1, doc.Find(".info-description .overview.placeholder-text").Length())
	assert.Equal(t, 0, doc.Find(".backdrop img").Length())
}
