package request

type CreateCommentRequest struct {
	StarRating      int    `json:"star_rating" validate:"required,min=1,max=5"`
	Content         string `json:"content" validate:"required,min=10,max=250"`
	ContainsSpoiler bool   `json:"contains_spoiler"`
}

// CreateCommentWithFilmRequest targets an existing film by id, or a
// provider film by tmdb id that is created on first use.
type CreateCommentWithFilmRequest struct {
	FilmID *int64 `json:"film_id,omitempty" validate:"required_without=TmdbID"`
	TmdbID *int64 `json:"tmdb_id,omitempty" validate:"omitempty,gte=1"`
	FilmSeed

	StarRating      int    `json:"star_rating" validate:"required,min=1,max=5"`
	Content         string `json:"content" validate:"required,min=10,max=250"`
	ContainsSpoiler bool   `json:"contains_spoiler"`
}

type UpdateCommentRequest struct {
	StarRating int    `json:"star_rating" validate:"required,min=1,max=5"`
	Content    string `json:"content" validate:"required,min=10,max=250"`
}
