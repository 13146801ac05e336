package tmdb

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog operations.
var (
	ErrNotFound     = errors.New("tmdb: not found")
	ErrRateLimited  = errors.New("tmdb: rate limited by server")
	ErrUnauthorized = errors.New("tmdb: unauthorized")
	ErrBadRequest   = errors.New("tmdb: bad request")
	ErrServer       = errors.New("tmdb: server error")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op  string // Operation: "getPerson", "trendingPeople", "discoverMovies", "discoverSeries"
	ID  int    // Catalog id, if applicable
	Err error
}

func (e *Error) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("tmdb %s [%d]: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("tmdb %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapError(op string, id int, err error) error {
	return &Error{Op: op, ID: id, Err: err}
}
