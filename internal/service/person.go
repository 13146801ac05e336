package service

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/reiverr/reiverr-server/internal/artwork"
	"github.com/reiverr/reiverr-server/internal/catalog/tmdb"
	"github.com/reiverr/reiverr-server/internal/credits"
	domainerrors "github.com/reiverr/reiverr-server/internal/errors"
	"github.com/reiverr/reiverr-server/internal/markup"
	"github.com/reiverr/reiverr-server/internal/social"
	"github.com/reiverr/reiverr-server/internal/store"
)

// genderLabels is indexed by the catalog's gender code.
var genderLabels = [...]string{"Not set", "Female", "Male", "Non-binary"}

const birthdayLayout = "Jan 2, 2006"

// sharedFetchTimeout bounds a person fetch that outlives its first caller.
const sharedFetchTimeout = 30 * time.Second

// PersonView is a display-ready person page.
type PersonView struct {
	ID                 int                     `json:"id"`
	Name               string                  `json:"name"`
	Title              string                  `json:"title"`
	Tagline            string                  `json:"tagline"`
	Overview           string                  `json:"overview"`
	Biography          template.HTML           `json:"biography_html"`
	ProfilePath        string                  `json:"profile_path"`
	ProfileURL         string                  `json:"profile_url"`
	KnownForDepartment string                  `json:"known_for_department"`
	Gender             string                  `json:"gender"`
	Birthday           string                  `json:"birthday"`
	PlaceOfBirth       string                  `json:"place_of_birth"`
	Homepage           string                  `json:"homepage"`
	Socials            []social.Link           `json:"socials"`
	KnownFor           []credits.KnownForEntry `json:"known_for"`
	MovieCount         int                     `json:"movie_count"`
	SeriesCount        int                     `json:"series_count"`
	CrewCount          int                     `json:"crew_count"`
	TotalCredits       int                     `json:"total_credits"`
}

// PersonConfig configures a PersonService.
type PersonConfig struct {
	// Language keys cached records, since the catalog localizes responses.
	Language  string
	RecordTTL time.Duration
	ViewTTL   time.Duration
}

// PersonService builds person pages from catalog records with caching.
type PersonService struct {
	catalog PersonCatalog
	store   *store.Store
	views   *cache.Cache
	flight  singleflight.Group
	cfg     PersonConfig
	logger  *slog.Logger
}

// NewPersonService creates a new person service.
func NewPersonService(
	catalog PersonCatalog,
	store *store.Store,
	cfg PersonConfig,
	logger *slog.Logger,
) *PersonService {
	if cfg.ViewTTL <= 0 {
		cfg.ViewTTL = 10 * time.Minute
	}
	if cfg.RecordTTL <= 0 {
		cfg.RecordTTL = 6 * time.Hour
	}
	return &PersonService{
		catalog: catalog,
		store:   store,
		views:   cache.New(cfg.ViewTTL, 2*cfg.ViewTTL),
		cfg:     cfg,
		logger:  logger,
	}
}

// GetPersonPage returns the normalized view of a person.
func (s *PersonService) GetPersonPage(ctx context.Context, id int) (*PersonView, error) {
	if id <= 0 {
		return nil, domainerrors.Validationf("invalid person id %d", id)
	}

	key := s.cfg.Language + ":" + strconv.Itoa(id)
	if v, ok := s.views.Get(key); ok {
		return v.(*PersonView).clone(), nil
	}

	// Concurrent requests for the same person share one fetch. It runs
	// detached from the first caller so a disconnect does not fail the rest.
	ch := s.flight.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedFetchTimeout)
		defer cancel()

		person, err := s.fetchPerson(fetchCtx, id)
		if err != nil {
			return nil, err
		}
		view := BuildPersonView(person)
		s.views.SetDefault(key, view)
		return view, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			s.logger.Debug("shared in-flight person fetch", "person_id", id)
		}
		return res.Val.(*PersonView).clone(), nil
	}
}

// clone copies the view and its slices so callers never alias the cached copy.
func (v *PersonView) clone() *PersonView {
	out := *v
	out.Socials = slices.Clone(v.Socials)
	out.KnownFor = slices.Clone(v.KnownFor)
	return &out
}

// Invalidate drops every cached copy of a person.
func (s *PersonService) Invalidate(ctx context.Context, id int) error {
	key := s.cfg.Language + ":" + strconv.Itoa(id)
	s.views.Delete(key)
	return s.store.DeleteCached(ctx, store.PersonKey(s.cfg.Language, id))
}

// fetchPerson returns the record from the store, or from the catalog on a miss.
func (s *PersonService) fetchPerson(ctx context.Context, id int) (*tmdb.Person, error) {
	cached, err := s.store.GetCachedPerson(ctx, s.cfg.Language, id)
	if err != nil {
		s.logger.Warn("cache lookup failed",
			"error", err,
			"person_id", id,
		)
	}

	if cached != nil {
		s.logger.Debug("cache hit for person",
			"person_id", id,
			"age", time.Since(cached.FetchedAt),
		)
		return cached.Person, nil
	}

	s.logger.Debug("fetching person from catalog", "person_id", id)

	person, err := s.catalog.GetPerson(ctx, id)
	if err != nil {
		return nil, catalogError(err, fmt.Sprintf("person %d", id))
	}

	if err := s.store.SetCachedPerson(ctx, s.cfg.Language, person, s.cfg.RecordTTL); err != nil {
		s.logger.Warn("failed to cache person",
			"error", err,
			"person_id", id,
		)
	}

	return person, nil
}

// BuildPersonView normalizes a fetched person record.
func BuildPersonView(p *tmdb.Person) *PersonView {
	result := credits.Normalize(
		credits.FromInput(p),
		credits.IsDirector(p.KnownForDepartment),
		artwork.PosterSmall,
	)

	return &PersonView{
		ID:                 p.ID,
		Name:               p.Name,
		Title:              fallback(p.Name, "Person"),
		Tagline:            fallback(p.KnownForDepartment, p.Name),
		Overview:           p.Biography,
		Biography:          markup.Biography(p.Biography),
		ProfilePath:        p.ProfilePath,
		ProfileURL:         artwork.Profile(p.ProfilePath),
		KnownForDepartment: p.KnownForDepartment,
		Gender:             GenderLabel(p.Gender),
		Birthday:           FormatBirthday(p.Birthday),
		PlaceOfBirth:       p.PlaceOfBirth,
		Homepage:           p.Homepage,
		Socials:            social.Resolve(p.ID, p.ExternalIDs),
		KnownFor:           result.KnownFor,
		MovieCount:         result.MovieCount,
		SeriesCount:        result.SeriesCount,
		CrewCount:          result.CrewCount,
		TotalCredits:       result.TotalCredits(),
	}
}

// GenderLabel returns the display label for a catalog gender code.
// Unknown codes read as "Not set".
func GenderLabel(code int) string {
	if code < 0 || code >= len(genderLabels) {
		return genderLabels[0]
	}
	return genderLabels[code]
}

// FormatBirthday formats a YYYY-MM-DD date as "Jan 2, 2006".
// Missing or malformed dates yield "".
func FormatBirthday(date string) string {
	if date == "" {
		return ""
	}
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return ""
	}
	return t.Format(birthdayLayout)
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
