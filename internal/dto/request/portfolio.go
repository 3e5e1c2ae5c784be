package request

// AddToPortfolioRequest names a film by tmdb id (created when missing) or
// by its exact name.
type AddToPortfolioRequest struct {
	TmdbID *int64 `json:"tmdb_id,omitempty" validate:"omitempty,gte=1"`
	FilmSeed
}
