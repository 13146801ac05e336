// Package credits normalizes the raw credits of a person into a
// deduplicated, recency-sorted "known for" list with credit counts.
package credits

import (
	"slices"
	"time"

	"github.com/reiverr/reiverr-server/internal/catalog/tmdb"
)

// DirectingDepartment is the department that switches the known-for list
// from acting credits to crew credits.
const DirectingDepartment = "Directing"

const dateLayout = "2006-01-02"

// Credit is one normalized credit. A zero Date means the credit is undated.
type Credit struct {
	ID          int
	Title       string
	Role        string
	Date        time.Time
	ArtworkPath string
}

// KnownForEntry is one display-ready item of the known-for list.
type KnownForEntry struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	ArtworkURL string `json:"artwork_url"`
}

// Input groups a person's credits by media kind and role.
type Input struct {
	MovieCast  []Credit
	MovieCrew  []Credit
	SeriesCast []Credit
	SeriesCrew []Credit
}

// Result is the normalized output.
type Result struct {
	KnownFor    []KnownForEntry `json:"known_for"`
	MovieCount  int             `json:"movie_count"`
	SeriesCount int             `json:"series_count"`
	CrewCount   int             `json:"crew_count"`
}

// TotalCredits is the sum of the three counts.
func (r Result) TotalCredits() int {
	return r.MovieCount + r.SeriesCount + r.CrewCount
}

// ArtworkFunc turns an artwork path into a URL, returning "" for no artwork.
type ArtworkFunc func(path string) string

// IsDirector reports whether a known-for department selects crew credits.
func IsDirector(department string) bool {
	return department == DirectingDepartment
}

// FromInput converts a catalog person into pipeline input.
func FromInput(p *tmdb.Person) Input {
	return Input{
		MovieCast:  FromMovieCast(p.MovieCredits.Cast),
		MovieCrew:  FromMovieCrew(p.MovieCredits.Crew),
		SeriesCast: FromSeriesCast(p.TVCredits.Cast),
		SeriesCrew: FromSeriesCrew(p.TVCredits.Crew),
	}
}

// FromMovieCast converts movie cast credits.
func FromMovieCast(raw []tmdb.CreditRecord) []Credit {
	return convert(raw, movieTitle, castRole, movieDate)
}

// FromMovieCrew converts movie crew credits.
func FromMovieCrew(raw []tmdb.CreditRecord) []Credit {
	return convert(raw, movieTitle, crewRole, movieDate)
}

// FromSeriesCast converts series cast credits.
func FromSeriesCast(raw []tmdb.CreditRecord) []Credit {
	return convert(raw, seriesTitle, castRole, seriesDate)
}

// FromSeriesCrew converts series crew credits.
func FromSeriesCrew(raw []tmdb.CreditRecord) []Credit {
	return convert(raw, seriesTitle, crewRole, seriesDate)
}

type field func(tmdb.CreditRecord) string

func convert(raw []tmdb.CreditRecord, title, role, date field) []Credit {
	out := make([]Credit, 0, len(raw))
	for _, r := range raw {
		out = append(out, Credit{
			ID:          r.ID,
			Title:       title(r),
			Role:        role(r),
			Date:        parseDate(date(r)),
			ArtworkPath: r.PosterPath,
		})
	}
	return out
}

func movieTitle(r tmdb.CreditRecord) string  { return firstNonEmpty(r.Title, r.Name) }
func seriesTitle(r tmdb.CreditRecord) string { return firstNonEmpty(r.Name, r.Title) }
func castRole(r tmdb.CreditRecord) string    { return firstNonEmpty(r.Character, r.Job) }
func crewRole(r tmdb.CreditRecord) string    { return firstNonEmpty(r.Job, r.Character) }
func movieDate(r tmdb.CreditRecord) string   { return firstNonEmpty(r.ReleaseDate, r.FirstAirDate) }
func seriesDate(r tmdb.CreditRecord) string  { return firstNonEmpty(r.FirstAirDate, r.ReleaseDate) }

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// parseDate returns the zero time for missing or malformed dates.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Dedup keeps the first occurrence of every ID, preserving source order.
func Dedup(in []Credit) []Credit {
	seen := make(map[int]struct{}, len(in))
	out := make([]Credit, 0, len(in))
	for _, c := range in {
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}

// SortByRecency sorts in place, newest first. Undated credits go last and
// equal dates keep their relative order.
func SortByRecency(in []Credit) {
	slices.SortStableFunc(in, func(a, b Credit) int {
		return b.Date.Compare(a.Date)
	})
}

// Normalize runs the full pipeline. Directors get their crew credits in the
// known-for list, everyone else their cast credits. Entries without artwork
// are dropped from the list but still counted.
func Normalize(in Input, isDirector bool, artwork ArtworkFunc) Result {
	movies, series := in.MovieCast, in.SeriesCast
	if isDirector {
		movies, series = in.MovieCrew, in.SeriesCrew
	}

	// Movie and series ids come from separate catalog namespaces and can
	// collide. Known-for ids must stay unique, so on a collision the series
	// entry is dropped.
	merged := Dedup(append(Dedup(movies), Dedup(series)...))
	SortByRecency(merged)

	knownFor := make([]KnownForEntry, 0, len(merged))
	for _, c := range merged {
		url := artwork(c.ArtworkPath)
		if url == "" {
			continue
		}
		knownFor = append(knownFor, KnownForEntry{
			ID:         c.ID,
			Title:      c.Title,
			Subtitle:   c.Role,
			ArtworkURL: url,
		})
	}

	return Result{
		KnownFor:    knownFor,
		MovieCount:  len(Dedup(in.MovieCast)),
		SeriesCount: len(Dedup(in.SeriesCast)),
		CrewCount:   len(Dedup(in.MovieCrew)),
	}
}
