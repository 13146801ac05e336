// Package pages assembles concrete title pages by filling layout slots from
// normalized views.
package pages

import (
	"html/template"

	"github.com/reiverr/reiverr-server/internal/geometry"
	"github.com/reiverr/reiverr-server/internal/layout"
	"github.com/reiverr/reiverr-server/internal/service"
	"github.com/reiverr/reiverr-server/internal/slot"
)

// Person builds the person page for v. A nil view yields the placeholder page.
func Person(r *layout.Renderer, v *service.PersonView, pres layout.Presentation, viewport geometry.Input) (layout.Page, error) {
	page := layout.Page{
		Presentation: pres,
		Viewport:     viewport,
	}
	if v == nil {
		return page, nil
	}

	page.Info = &layout.TitleInfo{
		CatalogID:          v.ID,
		Type:               layout.TitlePerson,
		Title:              v.Title,
		Tagline:            v.Tagline,
		Overview:           v.Overview,
		OverviewHTML:       v.Biography,
		BackdropCandidates: []string{v.ProfilePath},
		PosterPath:         v.ProfilePath,
	}

	titleInfo, err := r.Fragment("person-title-info", v)
	if err != nil {
		return page, err
	}
	infoComponents, err := r.Fragment("person-info-components", v)
	if err != nil {
		return page, err
	}

	// The carousel slot is overridden with empty content when nothing is
	// known for, so no default is shown either.
	var carousels template.HTML
	if len(v.KnownFor) > 0 {
		if carousels, err = r.Fragment("person-known-for", v); err != nil {
			return page, err
		}
	}

	page.Slots = slot.Map[template.HTML]{
		layout.SlotTitleInfo:         titleInfo,
		layout.SlotInfoComponents:    infoComponents,
		layout.SlotServarrComponents: "",
		layout.SlotCarousels:         carousels,
	}
	return page, nil
}
