package api

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	domainerrors "github.com/reiverr/reiverr-server/internal/errors"
	"github.com/reiverr/reiverr-server/internal/geometry"
	"github.com/reiverr/reiverr-server/internal/layout"
	"github.com/reiverr/reiverr-server/internal/pages"
	"github.com/reiverr/reiverr-server/internal/service"
)

// handlePersonPage serves the server-rendered person page.
// GET /person/{id}?modal=1&vh=900&close=/discover
//
// When the person cannot be loaded the placeholder layout is rendered with
// the matching error status.
func (s *Server) handlePersonPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pres := presentationFromQuery(r)
	viewport := viewportFromQuery(r)

	status := http.StatusOK
	var view *service.PersonView

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		status = http.StatusNotFound
	} else {
		view, err = s.services.Person.GetPersonPage(ctx, id)
		if err != nil {
			status = pageStatus(err)
			s.logger.Warn("Failed to load person page", "person_id", id, "status", status, "error", err)
		}
	}

	page, err := pages.Person(s.renderer, view, pres, viewport)
	if err != nil {
		s.logger.Error("Failed to build person page", "person_id", id, "error", err)
		// Fall back to the bare shell so the client still gets a page.
		page = layout.Page{Presentation: pres, Viewport: viewport}
		status = http.StatusInternalServerError
	}

	s.writePage(w, status, page)
}

// writePage renders p fully before writing so a template failure can still
// change the status.
func (s *Server) writePage(w http.ResponseWriter, status int, p layout.Page) {
	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, p); err != nil {
		s.logger.Error("Failed to render page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Debug("Failed to write page", "error", err)
	}
}

// pageStatus picks the HTTP status for a page whose data failed to load.
func pageStatus(err error) int {
	switch {
	case domainerrors.Is(err, domainerrors.ErrNotFound), domainerrors.Is(err, domainerrors.ErrValidation):
		return http.StatusNotFound
	case domainerrors.Is(err, domainerrors.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}

// presentationFromQuery reads ?modal and ?close.
func presentationFromQuery(r *http.Request) layout.Presentation {
	q := r.URL.Query()

	pres := layout.Presentation{}
	switch strings.ToLower(q.Get("modal")) {
	case "1", "true", "yes":
		pres.Modal = true
	}

	// Only same-site paths, never another host.
	if closeURL := q.Get("close"); strings.HasPrefix(closeURL, "/") && !strings.HasPrefix(closeURL, "//") {
		pres.CloseURL = closeURL
	}
	return pres
}

// maxViewportHint bounds the ?vh hint in pixels.
const maxViewportHint = 100000

// viewportFromQuery reads the ?vh viewport height hint.
func viewportFromQuery(r *http.Request) geometry.Input {
	var in geometry.Input
	if vh, err := strconv.ParseFloat(r.URL.Query().Get("vh"), 64); err == nil && vh > 0 && vh <= maxViewportHint {
		in.ViewportHeight = vh
	}
	return in
}
