package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/reiverr/reiverr-server/internal/catalog/tmdb"
	"github.com/reiverr/reiverr-server/internal/layout"
	"github.com/reiverr/reiverr-server/internal/service"
	"github.com/reiverr/reiverr-server/internal/store"
)

// fakeCatalog serves both person and discovery lookups from memory.
type fakeCatalog struct {
	mu          sync.Mutex
	people      map[int]*tmdb.Person
	personErr   error
	trendingErr error
	personCalls atomic.Int32
}

func (f *fakeCatalog) GetPerson(_ context.Context, id int) (*tmdb.Person, error) {
	f.personCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.personErr != nil {
		return nil, f.personErr
	}
	p, ok := f.people[id]
	if !ok {
		return nil, &tmdb.Error{Op: "getPerson", ID: id, Err: tmdb.ErrNotFound}
	}
	return p, nil
}

func (f *fakeCatalog) TrendingPeople(_ context.Context, _ tmdb.TimeWindow) ([]tmdb.PersonSummary, error) {
	if f.trendingErr != nil {
		return nil, f.trendingErr
	}
	return []tmdb.PersonSummary{{ID: 525, Name: "Christopher Nolan", ProfilePath: "/nolan.jpg", KnownForDepartment: "Directing"}}, nil
}

func (f *fakeCatalog) DiscoverMovies(_ context.Context, _ tmdb.DiscoverParams) ([]tmdb.MediaItem, error) {
	return []tmdb.MediaItem{{ID: 872585, Title: "Oppenheimer", PosterPath: "/opp.jpg", ReleaseDate: "2023-07-19"}}, nil
}

func (f *fakeCatalog) DiscoverSeries(_ context.Context, _ tmdb.DiscoverParams) ([]tmdb.MediaItem, error) {
	return []tmdb.MediaItem{{ID: 1396, Name: "Breaking Bad", PosterPath: "/bb.jpg", FirstAirDate: "2008-01-20"}}, nil
}

func strPtr(s string) *string { return &s }

func nolan() *tmdb.Person {
	return &tmdb.Person{
		ID:                 525,
		Name:               "Christopher Nolan",
		Biography:          "British-American filmmaker. See https://example.com",
		Birthday:           "1970-07-30",
		Gender:             2,
		KnownForDepartment: "Directing",
		PlaceOfBirth:       "London, England, UK",
		Homepage:           "https://nolan.example",
		ProfilePath:        "/nolan.jpg",
		MovieCredits: tmdb.Credits{
			Cast: []tmdb.CreditRecord{
				{ID: 11660, Title: "Following", Character: "Landlord", ReleaseDate: "1998-09-12", PosterPath: "/following.jpg"},
			},
			Crew: []tmdb.CreditRecord{
				{ID: 27205, Title: "Inception", Job: "Director", ReleaseDate: "2010-07-15", PosterPath: "/inception.jpg"},
				{ID: 27205, Title: "Inception", Job: "Writer", ReleaseDate: "2010-07-15", PosterPath: "/inception.jpg"},
				{ID: 872585, Title: "Oppenheimer", Job: "Director", ReleaseDate: "2023-07-19", PosterPath: "/opp.jpg"},
			},
		},
		ExternalIDs: tmdb.ExternalIDs{
			"wikidata_id": strPtr("Q25191"),
			"imdb_id":     strPtr("nm0634240"),
			"twitter_id":  nil,
		},
	}
}

type testServer struct {
	*Server
	api     humatest.TestAPI
	catalog *fakeCatalog
}

// setupTestServer creates a test server backed by an in-memory store and a
// fake catalog.
func setupTestServer(t *testing.T, opts ...func(*Options)) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := store.New(logger)
	require.NoError(t, err)

	catalog := &fakeCatalog{people: map[int]*tmdb.Person{525: nolan()}}

	personService := service.NewPersonService(catalog, st, service.PersonConfig{Language: "en-US"}, logger)
	discoveryService := service.NewDiscoveryService(catalog, st, service.DiscoveryConfig{
		Region:            "US",
		IncludedLanguages: "en",
	}, logger)
	discoveryService.SetClock(func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) })

	renderer, err := layout.NewRenderer()
	require.NoError(t, err)

	options := Options{Version: "test", RateLimitRPS: 100, RateLimitBurst: 100}
	for _, opt := range opts {
		opt(&options)
	}

	s := NewServer(st, &Services{Person: personService, Discovery: discoveryService}, renderer, options, logger)

	t.Cleanup(func() {
		s.Close()
		_ = st.Close() //nolint:errcheck // Test cleanup
	})

	return &testServer{
		Server:  s,
		api:     humatest.Wrap(t, s.API()),
		catalog: catalog,
	}
}

// get performs a plain request against the chi router.
func (ts *testServer) get(target string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	ts.ServeHTTP(w, req)
	return w
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{name: "remote addr", remoteAddr: "192.0.2.1:1234", want: "192.0.2.1"},
		{name: "remote addr without port", remoteAddr: "192.0.2.1", want: "192.0.2.1"},
		{name: "ipv6 remote addr", remoteAddr: "[2001:db8::1]:443", want: "2001:db8::1"},
		{name: "forwarded chain", remoteAddr: "10.0.0.1:1", headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"}, want: "203.0.113.7"},
		{name: "real ip", remoteAddr: "10.0.0.1:1", headers: map[string]string{"X-Real-IP": "198.51.100.4"}, want: "198.51.100.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			require.Equal(t, tt.want, getClientIP(req))
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	ts := setupTestServer(t, func(o *Options) {
		o.RateLimitRPS = 0.001
		o.RateLimitBurst = 1
	})

	first := ts.get("/api/v1/people/525", "X-Real-IP", "203.0.113.9")
	require.Equal(t, http.StatusOK, first.Code)

	second := ts.get("/api/v1/people/525", "X-Real-IP", "203.0.113.9")
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	require.Contains(t, second.Body.String(), "RATE_LIMITED")

	// Other clients and health checks are unaffected.
	require.Equal(t, http.StatusOK, ts.get("/api/v1/people/525", "X-Real-IP", "198.51.100.1").Code)
	require.Equal(t, http.StatusOK, ts.get("/health", "X-Real-IP", "203.0.113.9").Code)
}

func TestCORSPreflight(t *testing.T) {
	ts := setupTestServer(t, func(o *Options) {
		o.CORSOrigins = []string{"https://app.example"}
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/layout/geometry", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	ts.ServeHTTP(w, req)

	require.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRoute(t *testing.T) {
	ts := setupTestServer(t)

	require.Equal(t, http.StatusNotFound, ts.get("/api/v1/nothing").Code)
}

var errBoom = errors.New("connection reset")
