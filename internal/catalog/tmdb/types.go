package tmdb

import (
	"encoding/json"
	"net/url"
	"strconv"
)

// Person is a person record with credits and external ids appended.
type Person struct {
	ID                 int         `json:"id"`
	Name               string      `json:"name"`
	Biography          string      `json:"biography"`
	Birthday           string      `json:"birthday"`
	Deathday           string      `json:"deathday"`
	Gender             int         `json:"gender"`
	Homepage           string      `json:"homepage"`
	KnownForDepartment string      `json:"known_for_department"`
	PlaceOfBirth       string      `json:"place_of_birth"`
	ProfilePath        string      `json:"profile_path"`
	Popularity         float64     `json:"popularity"`
	MovieCredits       Credits     `json:"movie_credits"`
	TVCredits          Credits     `json:"tv_credits"`
	ExternalIDs        ExternalIDs `json:"external_ids"`
}

// Credits holds the cast and crew lists of one media kind.
type Credits struct {
	Cast []CreditRecord `json:"cast"`
	Crew []CreditRecord `json:"crew"`
}

// CreditRecord is one raw credit. Movie credits carry Title and ReleaseDate,
// series credits carry Name and FirstAirDate. Cast entries carry Character,
// crew entries carry Job. The same title may appear many times.
type CreditRecord struct {
	ID           int    `json:"id"`
	Title        string `json:"title,omitempty"`
	Name         string `json:"name,omitempty"`
	Job          string `json:"job,omitempty"`
	Character    string `json:"character,omitempty"`
	Department   string `json:"department,omitempty"`
	ReleaseDate  string `json:"release_date,omitempty"`
	FirstAirDate string `json:"first_air_date,omitempty"`
	PosterPath   string `json:"poster_path,omitempty"`
}

// ExternalIDs maps social identifier keys (e.g. "imdb_id") to their values.
// Nil values mean the person has no account on that site.
type ExternalIDs map[string]*string

// UnmarshalJSON keeps string and null members and ignores the rest, such as
// the numeric "id" the catalog includes in the object.
func (e *ExternalIDs) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(ExternalIDs, len(raw))
	for key, value := range raw {
		if string(value) == "null" {
			out[key] = nil
			continue
		}
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			continue
		}
		out[key] = &s
	}
	*e = out
	return nil
}

// MediaItem is a movie or series entry from a list endpoint.
type MediaItem struct {
	ID               int     `json:"id"`
	Title            string  `json:"title,omitempty"`
	Name             string  `json:"name,omitempty"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	VoteAverage      float64 `json:"vote_average"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	FirstAirDate     string  `json:"first_air_date,omitempty"`
	OriginalLanguage string  `json:"original_language"`
}

// PersonSummary is a person entry from the trending endpoint.
type PersonSummary struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	ProfilePath        string  `json:"profile_path"`
	KnownForDepartment string  `json:"known_for_department"`
	Popularity         float64 `json:"popularity"`
}

// Page is one page of list results.
type Page[T any] struct {
	Page         int `json:"page"`
	Results      []T `json:"results"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

// TimeWindow selects the trending period.
type TimeWindow string

// Trending windows.
const (
	TimeWindowDay  TimeWindow = "day"
	TimeWindowWeek TimeWindow = "week"
)

// DiscoverParams are the discover filters the application uses. Dates are
// formatted YYYY-MM-DD. Empty fields are omitted from the query.
type DiscoverParams struct {
	SortBy                string
	PrimaryReleaseDateGTE string
	ReleaseDateLTE        string
	FirstAirDateGTE       string
	FirstAirDateLTE       string
	AirDateGTE            string
	WithReleaseType       int
	WithOriginalLanguage  string
	Region                string
}

func (p DiscoverParams) values() url.Values {
	q := url.Values{}
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set("sort_by", p.SortBy)
	set("primary_release_date.gte", p.PrimaryReleaseDateGTE)
	set("release_date.lte", p.ReleaseDateLTE)
	set("first_air_date.gte", p.FirstAirDateGTE)
	set("first_air_date.lte", p.FirstAirDateLTE)
	set("air_date.gte", p.AirDateGTE)
	set("with_original_language", p.WithOriginalLanguage)
	set("region", p.Region)
	if p.WithReleaseType > 0 {
		q.Set("with_release_type", strconv.Itoa(p.WithReleaseType))
	}
	return q
}
