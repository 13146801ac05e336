package service

import (
	"context"
	"errors"

	"github.com/reiverr/reiverr-server/internal/catalog/tmdb"
	domainerrors "github.com/reiverr/reiverr-server/internal/errors"
)

// PersonCatalog fetches person records.
type PersonCatalog interface {
	GetPerson(ctx context.Context, id int) (*tmdb.Person, error)
}

// DiscoveryCatalog fetches the lists shown on the discovery page.
type DiscoveryCatalog interface {
	TrendingPeople(ctx context.Context, window tmdb.TimeWindow) ([]tmdb.PersonSummary, error)
	DiscoverMovies(ctx context.Context, params tmdb.DiscoverParams) ([]tmdb.MediaItem, error)
	DiscoverSeries(ctx context.Context, params tmdb.DiscoverParams) ([]tmdb.MediaItem, error)
}

// catalogError maps a catalog failure to a domain error.
func catalogError(err error, what string) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, tmdb.ErrNotFound):
		return domainerrors.NotFoundf("%s not found", what).WithCause(err)
	case errors.Is(err, tmdb.ErrRateLimited):
		return domainerrors.RateLimited("catalog rate limit reached").WithCause(err)
	default:
		return domainerrors.Wrapf(err, domainerrors.CodeUpstream, "fetch %s", what)
	}
}
