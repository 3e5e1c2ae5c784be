package request

// FilmListQuery is bound from the query string of GET /api/films.
type FilmListQuery struct {
	Name         string `json:"name" validate:"omitempty,max=200"`
	Genre        string `json:"genre" validate:"omitempty,max=100"`
	MinYear      *int   `json:"min_year" validate:"omitempty,gte=0"`
	MaxYear      *int   `json:"max_year" validate:"omitempty,gte=0"`
	SortBy       string `json:"sort_by" validate:"omitempty,oneof=name genre release_year"`
	IsDescending bool   `json:"is_descending"`
	Page         int    `json:"page" validate:"min=1"`
	PageSize     int    `json:"page_size" validate:"min=1,max=100"`
}

// FilmSeed carries the attributes used to create a film that does not
// exist yet.
type FilmSeed struct {
	Name          string   `json:"name" validate:"omitempty,max=200"`
	ImdbRating    *float64 `json:"imdb_rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	Description   string   `json:"description" validate:"omitempty,max=1000"`
	Genre         string   `json:"genre" validate:"omitempty,max=100"`
	Director      string   `json:"director" validate:"omitempty,max=100"`
	LeadActors    string   `json:"lead_actors" validate:"omitempty,max=200"`
	ReleaseYear   *int     `json:"release_year,omitempty" validate:"omitempty,gte=1900,lte=2100"`
	Duration      *int     `json:"duration,omitempty" validate:"omitempty,gte=1,lte=1000"`
	Platform      string   `json:"platform" validate:"omitempty,max=100"`
	CoverImageURL string   `json:"cover_image_url" validate:"omitempty,url,max=500"`
	TrailerURL    *string  `json:"trailer_url,omitempty" validate:"omitempty,url,max=500"`
}

type FilmRequest struct {
	TmdbID        *int64  `json:"tmdb_id,omitempty" validate:"omitempty,gte=1"`
	Name          string  `json:"name" validate:"required,max=200"`
	ImdbRating    float64 `json:"imdb_rating" validate:"gte=0,lte=10"`
	Description   string  `json:"description" validate:"required,max=1000"`
	Genre         string  `json:"genre" validate:"required,max=100"`
	Director      string  `json:"director" validate:"required,max=100"`
	LeadActors    string  `json:"lead_actors" validate:"required,max=200"`
	ReleaseYear   int     `json:"release_year" validate:"required,gte=1900,lte=2100"`
	Duration      int     `json:"duration" validate:"required,gte=1,lte=1000"`
	Platform      string  `json:"platform" validate:"required,max=100"`
	CoverImageURL string  `json:"cover_image_url" validate:"omitempty,url,max=500"`
	TrailerURL    *string `json:"trailer_url,omitempty" validate:"omitempty,url,max=500"`
}

// ImportRequest selects a provider page. Page < 1 and Limit < 1 fall back
// to 1 and 5.
type ImportRequest struct {
	Page    int  `json:"page" validate:"omitempty,max=500"`
	Limit   int  `json:"limit" validate:"omitempty,max=20"`
	GenreID *int `json:"genre_id,omitempty" validate:"omitempty,gte=1"`
}

func (r *ImportRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = 5
	}
}

type SearchProviderRequest struct {
	Query string `json:"query" validate:"required,min=1,max=200"`
	Page  int    `json:"page" validate:"omitempty,min=1,max=1000"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=50"`
}

func (r *SearchProviderRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = 20
	}
}
