package usecase

import (
	"context"

	"watchhub/internal/data/entity"
	"watchhub/internal/dto/request"
	"watchhub/pkg/tmdb"
)

// FilmProvider is the external movie database as seen by the services.
type FilmProvider interface {
	FetchPopular(ctx context.Context, page, limit int, genreID *int) ([]tmdb.Film, error)
	FetchDetails(ctx context.Context, id int64) (*tmdb.Film, error)
	Search(ctx context.Context, query string, page, limit int) ([]tmdb.Film, error)
}

func providerFilmToEntity(f *tmdb.Film) *entity.Film {
	tmdbID := f.ExternalID
	return &entity.Film{
		TmdbID:        &tmdbID,
		Name:          f.Name,
		Rating:        f.Rating,
		Description:   f.Description,
		Genre:         f.Genre,
		Director:      f.Director,
		LeadActors:    f.LeadActors,
		ReleaseYear:   f.ReleaseYear,
		Duration:      f.Duration,
		Platform:      f.Platform,
		CoverImageURL: f.CoverImageURL,
		TrailerURL:    f.TrailerURL,
	}
}

func seedToEntity(tmdbID *int64, seed *request.FilmSeed) *entity.Film {
	film := &entity.Film{
		TmdbID:        tmdbID,
		Name:          seed.Name,
		Description:   seed.Description,
		Genre:         seed.Genre,
		Director:      seed.Director,
		LeadActors:    seed.LeadActors,
		Platform:      seed.Platform,
		CoverImageURL: seed.CoverImageURL,
		TrailerURL:    seed.TrailerURL,
	}
	if seed.ImdbRating != nil {
		film.Rating = *seed.ImdbRating
	}
	if seed.ReleaseYear != nil {
		film.ReleaseYear = *seed.ReleaseYear
	}
	if seed.Duration != nil {
		film.Duration = *seed.Duration
	}
	return film
}

func requestToEntity(req *request.FilmRequest) *entity.Film {
	return &entity.Film{
		TmdbID:        req.TmdbID,
		Name:          req.Name,
		Rating:        req.ImdbRating,
		Description:   req.Description,
		Genre:         req.Genre,
		Director:      req.Director,
		LeadActors:    req.LeadActors,
		ReleaseYear:   req.ReleaseYear,
		Duration:      req.Duration,
		Platform:      req.Platform,
		CoverImageURL: req.CoverImageURL,
		TrailerURL:    req.TrailerURL,
	}
}
