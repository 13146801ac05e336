package store

import (
	"context"
	"strconv"
	"time"

	"github.com/reiverr/reiverr-server/internal/catalog/tmdb"
)

const (
	personPrefix    = "catalog:person:"
	discoveryPrefix = "catalog:discovery:"
)

// CachedPerson wraps a fetched person record with cache info.
type CachedPerson struct {
	Person    *tmdb.Person `json:"person"`
	FetchedAt time.Time    `json:"fetched_at"`
	Language  string       `json:"language"`
}

// CachedSection wraps the raw result of one discovery section.
type CachedSection struct {
	Media     []tmdb.MediaItem     `json:"media,omitempty"`
	People    []tmdb.PersonSummary `json:"people,omitempty"`
	FetchedAt time.Time            `json:"fetched_at"`
}

// PersonKey is the cache key of a person record in a language.
func PersonKey(language string, id int) string {
	return personPrefix + language + ":" + strconv.Itoa(id)
}

// SectionKey is the cache key of a discovery section for a given day.
func SectionKey(section, day string) string {
	return discoveryPrefix + section + ":" + day
}

// GetCachedPerson retrieves a cached person record.
// Returns nil, nil if not found or expired.
func (s *Store) GetCachedPerson(ctx context.Context, language string, id int) (*CachedPerson, error) {
	var cached CachedPerson
	ok, err := s.GetCached(ctx, PersonKey(language, id), &cached)
	if err != nil || !ok {
		return nil, err
	}
	return &cached, nil
}

// SetCachedPerson stores a person record.
func (s *Store) SetCachedPerson(ctx context.Context, language string, person *tmdb.Person, ttl time.Duration) error {
	return s.SetCached(ctx, PersonKey(language, person.ID), CachedPerson{
		Person:    person,
		FetchedAt: s.now(),
		Language:  language,
	}, ttl)
}

// GetCachedSection retrieves a cached discovery section.
// Returns nil, nil if not found or expired.
func (s *Store) GetCachedSection(ctx context.Context, key string) (*CachedSection, error) {
	var cached CachedSection
	ok, err := s.GetCached(ctx, key, &cached)
	if err != nil || !ok {
		return nil, err
	}
	return &cached, nil
}

// SetCachedSection stores a discovery section.
func (s *Store) SetCachedSection(ctx context.Context, key string, section CachedSection, ttl time.Duration) error {
	if section.FetchedAt.IsZero() {
		section.FetchedAt = s.now()
	}
	return s.SetCached(ctx, key, section, ttl)
}
