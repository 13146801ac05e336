// Package layout renders title pages (movies, series, people) out of named
// slots around a shared shell: backdrop, poster, title and info grid.
package layout

import (
	"html/template"
	"strconv"

	"github.com/reiverr/reiverr-server/internal/geometry"
	"github.com/reiverr/reiverr-server/internal/slot"
)

// Slot names of the title page, in page order.
const (
	SlotTitleInfo         slot.Name = "titleInfo"
	SlotTitleRight        slot.Name = "titleRight"
	SlotEpisodesCarousel  slot.Name = "episodesCarousel"
	SlotInfoDescription   slot.Name = "infoDescription"
	SlotInfoComponents    slot.Name = "infoComponents"
	SlotServarrComponents slot.Name = "servarrComponents"
	SlotCarousels         slot.Name = "carousels"
)

// TitleType is the kind of entity a page shows.
type TitleType string

// Title types. The value doubles as the first path segment of the page URL.
const (
	TitleMovie  TitleType = "movie"
	TitleSeries TitleType = "series"
	TitlePerson TitleType = "person"
)

// TitleInfo is the loaded entity. A nil *TitleInfo renders the placeholder page.
type TitleInfo struct {
	CatalogID          int
	Type               TitleType
	Title              string
	Tagline            string
	Overview           string
	// OverviewHTML, when set, is shown instead of Overview. It must be sanitized.
	OverviewHTML       template.HTML
	BackdropCandidates []string
	PosterPath         string
}

// Path returns the full page URL of the entity.
func (t *TitleInfo) Path() string {
	return "/" + string(t.Type) + "/" + strconv.Itoa(t.CatalogID)
}

// Presentation is how the page is shown.
type Presentation struct {
	Modal bool
	// CloseURL is where the close control of a modal leads.
	CloseURL string
}

// Mode returns the geometry mode of the presentation.
func (p Presentation) Mode() geometry.Mode {
	if p.Modal {
		return geometry.ModeModal
	}
	return geometry.ModeFull
}

// Page is everything needed to render one title page.
type Page struct {
	Info         *TitleInfo
	Presentation Presentation
	Slots        slot.Map[template.HTML]
	// Viewport carries whatever sizes are known at render time. The mode is
	// taken from Presentation.
	Viewport geometry.Input
}

// ImageHeight returns the backdrop height in pixels for the known sizes.
func (p Page) ImageHeight() float64 {
	in := p.Viewport
	in.Mode = p.Presentation.Mode()
	return in.Resolve()
}

// BackdropURI picks a backdrop from the candidates: the one at index
// max(2, len/8) when present, else the last one, else "".
func BackdropURI(candidates []string) string {
	if i := max(2, len(candidates)/8); i < len(candidates) && candidates[i] != "" {
		return candidates[i]
	}
	if len(candidates) > 0 {
		return candidates[len(candidates)-1]
	}
	return ""
}
