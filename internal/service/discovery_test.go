package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reiverr/reiverr-server/internal/catalog/tmdb"
)

type fakeDiscoveryCatalog struct {
	mu           sync.Mutex
	movieParams  []tmdb.DiscoverParams
	seriesParams []tmdb.DiscoverParams
	trendingErr  error
	trendingHits int
}

func (f *fakeDiscoveryCatalog) TrendingPeople(_ context.Context, window tmdb.TimeWindow) ([]tmdb.PersonSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trendingHits++
	if f.trendingErr != nil {
		return nil, f.trendingErr
	}
	if window != tmdb.TimeWindowWeek {
		return nil, errors.New("unexpected window")
	}
	return []tmdb.PersonSummary{
		{ID: 1, Name: "With Photo", ProfilePath: "/p.jpg", KnownForDepartment: "Acting"},
		{ID: 2, Name: "No Photo"},
	}, nil
}

func (f *fakeDiscoveryCatalog) DiscoverMovies(_ context.Context, p tmdb.DiscoverParams) ([]tmdb.MediaItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.movieParams = append(f.movieParams, p)
	return []tmdb.MediaItem{
		{ID: 10, Title: "Movie", PosterPath: "/m.jpg", ReleaseDate: "2024-06-01"},
		{ID: 11, Title: "Posterless"},
	}, nil
}

func (f *fakeDiscoveryCatalog) DiscoverSeries(_ context.Context, p tmdb.DiscoverParams) ([]tmdb.MediaItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seriesParams = append(f.seriesParams, p)
	return []tmdb.MediaItem{{ID: 20, Name: "Series", PosterPath: "/s.jpg", FirstAirDate: "2024-07-01"}}, nil
}

func newTestDiscoveryService(t *testing.T, catalog DiscoveryCatalog) *DiscoveryService {
	t.Helper()
	svc := NewDiscoveryService(catalog, setupTestStore(t), DiscoveryConfig{
		Region:            "FI",
		IncludedLanguages: "en, fi",
	}, testLogger())
	svc.SetClock(func() time.Time { return time.Date(2024, 5, 1, 18, 30, 0, 0, time.UTC) })
	return svc
}

func TestDiscoveryService_AllSections(t *testing.T) {
	catalog := &fakeDiscoveryCatalog{}
	svc := newTestDiscoveryService(t, catalog)

	view, err := svc.GetDiscovery(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2024-05-01", view.Date)
	require.Len(t, view.Sections, 5)

	keys := make([]string, 0, len(view.Sections))
	for _, s := range view.Sections {
		keys = append(keys, s.Key)
		assert.Equal(t, SectionSuccess, s.Status, s.Key)
	}
	assert.Equal(t, []string{
		SectionPopularPeople, SectionUpcomingMovies, SectionUpcomingSeries,
		SectionDigitalReleases, SectionStreamingNow,
	}, keys)

	people := view.Sections[0]
	require.Len(t, people.Items, 1)
	assert.Equal(t, Card{ID: 1, Kind: CardPerson, Title: "With Photo", Subtitle: "Acting", ArtworkURL: "https://image.tmdb.org/t/p/w185/p.jpg"}, people.Items[0])

	movies := view.Sections[1]
	require.Len(t, movies.Items, 1)
	assert.Equal(t, Card{ID: 10, Kind: CardMovie, Title: "Movie", Subtitle: "2024", ArtworkURL: "https://image.tmdb.org/t/p/w342/m.jpg"}, movies.Items[0])

	series := view.Sections[2]
	require.Len(t, series.Items, 1)
	assert.Equal(t, CardSeries, series.Items[0].Kind)
	assert.Equal(t, "Series", series.Items[0].Title)
}

func TestDiscoveryService_QueryParams(t *testing.T) {
	catalog := &fakeDiscoveryCatalog{}
	svc := newTestDiscoveryService(t, catalog)

	_, err := svc.GetDiscovery(context.Background())
	require.NoError(t, err)

	require.Len(t, catalog.movieParams, 2)
	require.Len(t, catalog.seriesParams, 2)

	var upcoming, digital tmdb.DiscoverParams
	for _, p := range catalog.movieParams {
		if p.WithReleaseType == digitalReleaseType {
			digital = p
		} else {
			upcoming = p
		}
	}
	assert.Equal(t, "2024-05-01", upcoming.PrimaryReleaseDateGTE)
	assert.Equal(t, "FI", upcoming.Region)
	assert.Equal(t, "en|fi", upcoming.WithOriginalLanguage)
	assert.Equal(t, "popularity.desc", upcoming.SortBy)
	assert.Equal(t, "2024-05-01", digital.ReleaseDateLTE)

	var streaming tmdb.DiscoverParams
	for _, p := range catalog.seriesParams {
		if p.AirDateGTE != "" {
			streaming = p
		}
	}
	assert.Equal(t, "2024-05-01", streaming.FirstAirDateLTE)
}

func TestDiscoveryService_FailingSectionDoesNotFailPage(t *testing.T) {
	catalog := &fakeDiscoveryCatalog{trendingErr: &tmdb.Error{Op: "trendingPeople", Err: tmdb.ErrServer}}
	svc := newTestDiscoveryService(t, catalog)

	view, err := svc.GetDiscovery(context.Background())
	require.NoError(t, err)

	people := view.Sections[0]
	assert.Equal(t, SectionError, people.Status)
	assert.NotEmpty(t, people.Error)
	assert.NotNil(t, people.Items)
	assert.Empty(t, people.Items)

	assert.Equal(t, SectionSuccess, view.Sections[1].Status)
}

func TestDiscoveryService_CachesSuccessfulSections(t *testing.T) {
	catalog := &fakeDiscoveryCatalog{trendingErr: tmdb.ErrServer}
	svc := newTestDiscoveryService(t, catalog)
	ctx := context.Background()

	_, err := svc.GetDiscovery(ctx)
	require.NoError(t, err)
	_, err = svc.GetDiscovery(ctx)
	require.NoError(t, err)

	assert.Len(t, catalog.movieParams, 2)
	assert.Equal(t, 2, catalog.trendingHits)
}

func TestIncludedLanguages(t *testing.T) {
	assert.Equal(t, "en|fi|de", IncludedLanguages("en, fi ,de"))
	assert.Equal(t, "en", IncludedLanguages("en"))
	assert.Equal(t, "", IncludedLanguages(" , "))
	assert.Equal(t, "en|de", IncludedLanguages("English, deu, en-US"))
}
