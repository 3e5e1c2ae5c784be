package entity

type Film struct {
	Base
	// TmdbID is the provider id used to dedupe imports. Unique when set.
	TmdbID        *int64  `db:"tmdb_id"`
	Name          string  `db:"name"`
	Rating        float64 `db:"imdb_rating"`
	Description   string  `db:"description"`
	Genre         string  `db:"genre"`
	Director      string  `db:"director"`
	LeadActors    string  `db:"lead_actors"`
	ReleaseYear   int     `db:"release_year"`
	Duration      int     `db:"duration"`
	Platform      string  `db:"platform"`
	CoverImageURL string  `db:"cover_image_url"`
	TrailerURL    *string `db:"trailer_url"`

	Comments []*Comment `db:"-"`
}
