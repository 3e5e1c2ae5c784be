// Package tmdb is a client for The Movie Database v3 API that turns provider
// payloads into catalog-ready film records.
package tmdb

import (
	"strings"
	"time"
)

const (
	// PlatformLabel marks films that came from the provider.
	PlatformLabel = "TMDB"

	unknown        = "Unknown"
	posterSize     = "w500"
	youtubeWatch   = "https://www.youtube.com/watch?v="
	leadActorCount = 3
)

// Film is a provider movie normalized to the catalog shape.
type Film struct {
	ExternalID    int64   `json:"tmdb_id"`
	Name          string  `json:"name"`
	Rating        float64 `json:"imdb_rating"`
	Description   string  `json:"description"`
	Genre         string  `json:"genre"`
	Director      string  `json:"director"`
	LeadActors    string  `json:"lead_actors"`
	ReleaseYear   int     `json:"release_year"`
	Duration      int     `json:"duration"`
	Platform      string  `json:"platform"`
	CoverImageURL string  `json:"cover_image_url"`
	TrailerURL    *string `json:"trailer_url"`
}

type pageResponse struct {
	Page         int            `json:"page"`
	Results      []movieSummary `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

type movieSummary struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	PosterPath string `json:"poster_path"`
}

type movieDetails struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	VoteAverage float64 `json:"vote_average"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	Runtime     int     `json:"runtime"`
	Genres      []genre `json:"genres"`
	Videos      *struct {
		Results []video `json:"results"`
	} `json:"videos"`
	Credits *struct {
		Cast []castMember `json:"cast"`
		Crew []crewMember `json:"crew"`
	} `json:"credits"`
}

type genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type video struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
}

type castMember struct {
	Name string `json:"name"`
}

type crewMember struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

type errorBody struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

func (m *movieDetails) toFilm(imageBaseURL string) Film {
	f := Film{
		ExternalID:  m.ID,
		Name:        orUnknown(m.Title),
		Rating:      m.VoteAverage,
		Description: m.Overview,
		Director:    unknown,
		ReleaseYear: releaseYear(m.ReleaseDate),
		Platform:    PlatformLabel,
	}

	if m.Runtime > 0 {
		f.Duration = m.Runtime
	}

	names := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		names = append(names, g.Name)
	}
	f.Genre = orUnknown(strings.Join(names, ", "))

	var actors []string
	if m.Credits != nil {
		for _, c := range m.Credits.Crew {
			if c.Job == "Director" {
				f.Director = orUnknown(c.Name)
				break
			}
		}
		for _, c := range m.Credits.Cast {
			if len(actors) == leadActorCount {
				break
			}
			actors = append(actors, c.Name)
		}
	}
	f.LeadActors = orUnknown(strings.Join(actors, ", "))

	if m.PosterPath != "" {
		f.CoverImageURL = strings.TrimRight(imageBaseURL, "/") + "/" + posterSize + m.PosterPath
	}

	if m.Videos != nil {
		for _, v := range m.Videos.Results {
			if v.Type == "Trailer" && v.Site == "YouTube" {
				trailer := youtubeWatch + v.Key
				f.TrailerURL = &trailer
				break
			}
		}
	}

	return f
}

// releaseYear reads the year from a "YYYY-MM-DD" date, 0 when unparsable.
func releaseYear(date string) int {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(date))
	if err != nil {
		return 0
	}
	return t.Year()
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return unknown
	}
	return s
}
