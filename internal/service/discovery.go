package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/reiverr/reiverr-server/internal/artwork"
	"github.com/reiverr/reiverr-server/internal/catalog/tmdb"
	"github.com/reiverr/reiverr-server/internal/normalize"
	"github.com/reiverr/reiverr-server/internal/store"
)

// SectionStatus reports whether a discovery section loaded.
type SectionStatus string

// Section statuses.
const (
	SectionSuccess SectionStatus = "success"
	SectionError   SectionStatus = "error"
)

// Card kinds.
const (
	CardMovie  = "movie"
	CardSeries = "series"
	CardPerson = "person"
)

// Section keys in display order.
const (
	SectionPopularPeople   = "popular_people"
	SectionUpcomingMovies  = "upcoming_movies"
	SectionUpcomingSeries  = "upcoming_series"
	SectionDigitalReleases = "digital_releases"
	SectionStreamingNow    = "streaming_now"
)

// digitalReleaseType is the catalog release type for digital releases.
const digitalReleaseType = 4

// Card is one carousel item.
type Card struct {
	ID         int    `json:"id"`
	Kind       string `json:"kind"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	ArtworkURL string `json:"artwork_url"`
}

// Section is one carousel of the discovery page.
type Section struct {
	Key    string        `json:"key"`
	Title  string        `json:"title"`
	Status SectionStatus `json:"status"`
	Error  string        `json:"error,omitempty"`
	Items  []Card        `json:"items"`
}

// DiscoveryView is the discovery page.
type DiscoveryView struct {
	Date     string    `json:"date"`
	Sections []Section `json:"sections"`
}

// DiscoveryConfig configures a DiscoveryService.
type DiscoveryConfig struct {
	Region string
	// IncludedLanguages is a comma separated list, e.g. "en, fi".
	IncludedLanguages string
	TTL               time.Duration
}

// DiscoveryService loads the discovery carousels.
type DiscoveryService struct {
	catalog DiscoveryCatalog
	store   *store.Store
	cfg     DiscoveryConfig
	now     func() time.Time
	logger  *slog.Logger
}

// NewDiscoveryService creates a new discovery service.
func NewDiscoveryService(
	catalog DiscoveryCatalog,
	store *store.Store,
	cfg DiscoveryConfig,
	logger *slog.Logger,
) *DiscoveryService {
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	return &DiscoveryService{
		catalog: catalog,
		store:   store,
		cfg:     cfg,
		now:     time.Now,
		logger:  logger,
	}
}

// SetClock overrides the time source used for date filters.
func (s *DiscoveryService) SetClock(now func() time.Time) {
	s.now = now
}

type sectionDef struct {
	key   string
	title string
	load  func(ctx context.Context) (store.CachedSection, error)
}

// GetDiscovery loads every section concurrently. A failing section is
// reported in its status and never fails the page.
func (s *DiscoveryService) GetDiscovery(ctx context.Context) (*DiscoveryView, error) {
	today := s.now().Format(time.DateOnly)
	defs := s.sections(today)

	view := &DiscoveryView{
		Date:     today,
		Sections: make([]Section, len(defs)),
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, def := range defs {
		g.Go(func() error {
			view.Sections[i] = s.loadSection(gctx, def, today)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return view, nil
}

func (s *DiscoveryService) loadSection(ctx context.Context, def sectionDef, today string) Section {
	section := Section{Key: def.key, Title: def.title, Items: []Card{}}
	key := store.SectionKey(def.key, today)

	cached, err := s.store.GetCachedSection(ctx, key)
	if err != nil {
		s.logger.Warn("cache lookup failed", "error", err, "section", def.key)
	}

	if cached == nil {
		raw, err := def.load(ctx)
		if err != nil {
			s.logger.Warn("discovery section failed", "error", err, "section", def.key)
			section.Status = SectionError
			section.Error = catalogError(err, def.title).Error()
			return section
		}
		if err := s.store.SetCachedSection(ctx, key, raw, s.cfg.TTL); err != nil {
			s.logger.Warn("failed to cache section", "error", err, "section", def.key)
		}
		cached = &raw
	}

	section.Status = SectionSuccess
	section.Items = append(section.Items, personCards(cached.People)...)
	section.Items = append(section.Items, mediaCards(cached.Media, def.key)...)
	return section
}

func (s *DiscoveryService) sections(today string) []sectionDef {
	langs := IncludedLanguages(s.cfg.IncludedLanguages)

	movies := func(p tmdb.DiscoverParams) func(context.Context) (store.CachedSection, error) {
		return func(ctx context.Context) (store.CachedSection, error) {
			items, err := s.catalog.DiscoverMovies(ctx, p)
			return store.CachedSection{Media: items}, err
		}
	}
	series := func(p tmdb.DiscoverParams) func(context.Context) (store.CachedSection, error) {
		return func(ctx context.Context) (store.CachedSection, error) {
			items, err := s.catalog.DiscoverSeries(ctx, p)
			return store.CachedSection{Media: items}, err
		}
	}

	return []sectionDef{
		{
			key:   SectionPopularPeople,
			title: "Popular People",
			load: func(ctx context.Context) (store.CachedSection, error) {
				people, err := s.catalog.TrendingPeople(ctx, tmdb.TimeWindowWeek)
				return store.CachedSection{People: people}, err
			},
		},
		{
			key:   SectionUpcomingMovies,
			title: "Upcoming Movies",
			load: movies(tmdb.DiscoverParams{
				PrimaryReleaseDateGTE: today,
				SortBy:                "popularity.desc",
				Region:                s.cfg.Region,
				WithOriginalLanguage:  langs,
			}),
		},
		{
			key:   SectionUpcomingSeries,
			title: "Upcoming Series",
			load: series(tmdb.DiscoverParams{
				FirstAirDateGTE:      today,
				SortBy:               "popularity.desc",
				WithOriginalLanguage: langs,
			}),
		},
		{
			key:   SectionDigitalReleases,
			title: "New Digital Releases",
			load: movies(tmdb.DiscoverParams{
				WithReleaseType:      digitalReleaseType,
				SortBy:               "popularity.desc",
				ReleaseDateLTE:       today,
				WithOriginalLanguage: langs,
			}),
		},
		{
			key:   SectionStreamingNow,
			title: "Streaming Now",
			load: series(tmdb.DiscoverParams{
				AirDateGTE:           today,
				FirstAirDateLTE:      today,
				SortBy:               "popularity.desc",
				WithOriginalLanguage: langs,
			}),
		},
	}
}

// IncludedLanguages turns "en, fi" into the catalog's "en|fi" filter.
// Names and locale tags are folded to two-letter codes and repeats dropped.
func IncludedLanguages(list string) string {
	return strings.Join(normalize.LanguageCodes(list), "|")
}

func personCards(people []tmdb.PersonSummary) []Card {
	cards := make([]Card, 0, len(people))
	for _, p := range people {
		if p.ProfilePath == "" {
			continue
		}
		cards = append(cards, Card{
			ID:         p.ID,
			Kind:       CardPerson,
			Title:      p.Name,
			Subtitle:   p.KnownForDepartment,
			ArtworkURL: artwork.Profile(p.ProfilePath),
		})
	}
	return cards
}

func mediaCards(items []tmdb.MediaItem, section string) []Card {
	kind := CardMovie
	if section == SectionUpcomingSeries || section == SectionStreamingNow {
		kind = CardSeries
	}

	cards := make([]Card, 0, len(items))
	for _, m := range items {
		url := artwork.PosterSmall(m.PosterPath)
		if url == "" {
			continue
		}
		cards = append(cards, Card{
			ID:         m.ID,
			Kind:       kind,
			Title:      fallback(m.Title, m.Name),
			Subtitle:   releaseYear(fallback(m.ReleaseDate, m.FirstAirDate)),
			ArtworkURL: url,
		})
	}
	return cards
}

func releaseYear(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}
