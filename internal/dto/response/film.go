package response

import (
	"watchhub/internal/data/entity"
	"watchhub/pkg/tmdb"
)

type FilmResponse struct {
	ID            int64             `json:"id"`
	TmdbID        *int64            `json:"tmdb_id"`
	Name          string            `json:"name"`
	ImdbRating    float64           `json:"imdb_rating"`
	Description   string            `json:"description"`
	Genre         string            `json:"genre"`
	Director      string            `json:"director"`
	LeadActors    string            `json:"lead_actors"`
	ReleaseYear   int               `json:"release_year"`
	Duration      int               `json:"duration"`
	Platform      string            `json:"platform"`
	CoverImageURL string            `json:"cover_image_url"`
	TrailerURL    *string           `json:"trailer_url"`
	Comments      []CommentResponse `json:"comments"`
}

// ProviderFilmsResponse is the body of the preview and provider search
// endpoints.
type ProviderFilmsResponse struct {
	Message string      `json:"message"`
	Query   string      `json:"query,omitempty"`
	Count   int         `json:"count"`
	Films   []tmdb.Film `json:"films"`
	Cached  bool        `json:"cached"`
}

// ImportSummary reports what an import committed. Error is set when the
// import stopped early; films merged before the failure stay stored.
type ImportSummary struct {
	Message      string         `json:"message"`
	NewFilms     int            `json:"new_films"`
	UpdatedFilms int            `json:"updated_films"`
	FailedFilms  int            `json:"failed_films"`
	SkippedFilms int            `json:"skipped_films"`
	Films        []FilmResponse `json:"films"`
	Error        string         `json:"error,omitempty"`
}

func FilmToResponse(film *entity.Film) FilmResponse {
	comments := make([]CommentResponse, 0, len(film.Comments))
	for _, c := range film.Comments {
		comments = append(comments, CommentToResponse(c))
	}

	return FilmResponse{
		ID:            film.ID,
		TmdbID:        film.TmdbID,
		Name:          film.Name,
		ImdbRating:    film.Rating,
		Description:   film.Description,
		Genre:         film.Genre,
		Director:      film.Director,
		LeadActors:    film.LeadActors,
		ReleaseYear:   film.ReleaseYear,
		Duration:      film.Duration,
		Platform:      film.Platform,
		CoverImageURL: film.CoverImageURL,
		TrailerURL:    film.TrailerURL,
		Comments:      comments,
	}
}

func FilmsToResponse(films []*entity.Film) []FilmResponse {
	out := make([]FilmResponse, 0, len(films))
	for _, f := range films {
		out = append(out, FilmToResponse(f))
	}
	return out
}
