package layout

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/reiverr/reiverr-server/internal/artwork"
	"github.com/reiverr/reiverr-server/internal/slot"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer renders title pages from the embedded templates.
type Renderer struct {
	tpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tpl, err := template.New("layout").Funcs(template.FuncMap{
		"px": func(v float64) string {
			return strconv.FormatFloat(v, 'f', -1, 64) + "px"
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout templates: %w", err)
	}
	return &Renderer{tpl: tpl}, nil
}

// Fragment executes a named template into an HTML fragment. Pages use it to
// build their slot content.
func (r *Renderer) Fragment(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil //#nosec G203 -- output of html/template
}

// Slots returns the slot vocabulary of a title page with defaults bound to info.
func (r *Renderer) Slots(info *TitleInfo) *slot.Template[template.HTML] {
	def := func(name string) func() template.HTML {
		return func() template.HTML {
			html, err := r.Fragment(name, info)
			if err != nil {
				panic(err)
			}
			return html
		}
	}

	return slot.NewTemplate(
		slot.Def[template.HTML]{Name: SlotTitleInfo, Default: def("default-title-info")},
		slot.Def[template.HTML]{Name: SlotTitleRight},
		slot.Def[template.HTML]{Name: SlotEpisodesCarousel},
		slot.Def[template.HTML]{Name: SlotInfoDescription, Default: def("default-info-description")},
		slot.Def[template.HTML]{Name: SlotInfoComponents},
		slot.Def[template.HTML]{Name: SlotServarrComponents, Default: def("default-servarr-components")},
		slot.Def[template.HTML]{Name: SlotCarousels},
	)
}

type pageData struct {
	Info        *TitleInfo
	Modal       bool
	CloseURL    string
	DocTitle    string
	BackdropURL string
	PosterURL   string
	PosterSmall string
	ImageHeight float64
	Slots       map[string]template.HTML
}

// Render writes the full HTML document for p.
func (r *Renderer) Render(w io.Writer, p Page) error {
	slots := r.Slots(p.Info)

	data := pageData{
		Info:        p.Info,
		Modal:       p.Presentation.Modal,
		CloseURL:    p.Presentation.CloseURL,
		DocTitle:    "Reiverr",
		ImageHeight: p.ImageHeight(),
		Slots:       make(map[string]template.HTML, len(slots.Names())),
	}
	if data.CloseURL == "" {
		data.CloseURL = "/"
	}
	if p.Info != nil {
		data.DocTitle = p.Info.Title + " - Reiverr"
		data.BackdropURL = artwork.Original(BackdropURI(p.Info.BackdropCandidates))
		data.PosterURL = artwork.Original(p.Info.PosterPath)
		data.PosterSmall = artwork.PosterSmall(p.Info.PosterPath)
	}
	for _, name := range slots.Names() {
		data.Slots[string(name)] = slots.Render(p.Slots, name)
	}

	// Render to a buffer so a template error never leaves a half-written page.
	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, "page", data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}
