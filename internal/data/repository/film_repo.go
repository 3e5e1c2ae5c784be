package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"watchhub/internal/data/entity"
	"watchhub/pkg/database"
	"watchhub/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrDuplicateExternalID is returned by Create when another film already
// holds the tmdb id.
var ErrDuplicateExternalID = errors.New("tmdb id already stored")

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

type FilmSortKey string

const (
	SortByName        FilmSortKey = "name"
	SortByGenre       FilmSortKey = "genre"
	SortByReleaseYear FilmSortKey = "release_year"
)

// FilmQuery filters, sorts and pages a film listing. Zero values mean "no
// constraint"; PageSize <= 0 returns every matching row.
type FilmQuery struct {
	Name       string
	Genre      string
	MinYear    *int
	MaxYear    *int
	SortBy     FilmSortKey
	Descending bool
	Page       int
	PageSize   int
}

type FilmRepository interface {
	List(ctx context.Context, q FilmQuery) ([]*entity.Film, error)
	Count(ctx context.Context, q FilmQuery) (int64, error)
	FindByID(ctx context.Context, id int64) (*entity.Film, error)
	FindByExternalID(ctx context.Context, tmdbID int64) (*entity.Film, error)
	FindByExactName(ctx context.Context, name string) (*entity.Film, error)
	FindByNameContains(ctx context.Context, name string) ([]*entity.Film, error)
	Create(ctx context.Context, film *entity.Film) error
	// CreateIfAbsent inserts a film with a TmdbID unless that id is already
	// stored, in which case the stored row is left alone and false returned.
	CreateIfAbsent(ctx context.Context, film *entity.Film) (bool, error)
	// MergeOrCreate upserts by TmdbID and reports whether a new row was made.
	// The film is refreshed from the stored row.
	MergeOrCreate(ctx context.Context, film *entity.Film) (bool, error)
	Update(ctx context.Context, id int64, film *entity.Film) (*entity.Film, error)
	Delete(ctx context.Context, id int64) (*entity.Film, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ExistsByExternalID(ctx context.Context, tmdbID int64) (bool, error)
}

const filmColumns = `id, tmdb_id, name, imdb_rating, description, genre, director,
		       lead_actors, release_year, duration, platform, cover_image_url,
		       trailer_url, created_at, updated_at`

type filmRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFilmRepository(db database.PgxIface, log *zap.Logger) FilmRepository {
	return &filmRepository{
		db:  db,
		log: log.With(zap.String("repository", "film")),
	}
}

func filmScanTargets(f *entity.Film) []any {
	return []any{
		&f.ID,
		&f.TmdbID,
		&f.Name,
		&f.Rating,
		&f.Description,
		&f.Genre,
		&f.Director,
		&f.LeadActors,
		&f.ReleaseYear,
		&f.Duration,
		&f.Platform,
		&f.CoverImageURL,
		&f.TrailerURL,
		&f.CreatedAt,
		&f.UpdatedAt,
	}
}

// buildFilmWhere renders the filter part of a listing, numbering
// placeholders from 1.
func buildFilmWhere(q FilmQuery) (string, []any) {
	var sb strings.Builder
	sb.WriteString(" WHERE 1=1")
	args := []any{}

	if q.Name != "" {
		args = append(args, "%"+escapeLike(q.Name)+"%")
		fmt.Fprintf(&sb, " AND name ILIKE $%d", len(args))
	}
	if q.Genre != "" {
		args = append(args, "%"+escapeLike(q.Genre)+"%")
		fmt.Fprintf(&sb, " AND genre ILIKE $%d", len(args))
	}
	if q.MinYear != nil {
		args = append(args, *q.MinYear)
		fmt.Fprintf(&sb, " AND release_year >= $%d", len(args))
	}
	if q.MaxYear != nil {
		args = append(args, *q.MaxYear)
		fmt.Fprintf(&sb, " AND release_year <= $%d", len(args))
	}

	return sb.String(), args
}

func buildFilmListQuery(q FilmQuery) (string, []any) {
	where, args := buildFilmWhere(q)

	var sb strings.Builder
	sb.WriteString("SELECT " + filmColumns + " FROM films")
	sb.WriteString(where)

	switch q.SortBy {
	case SortByName, SortByGenre, SortByReleaseYear:
		dir := "ASC"
		if q.Descending {
			dir = "DESC"
		}
		fmt.Fprintf(&sb, " ORDER BY %s %s, id ASC", q.SortBy, dir)
	default:
		sb.WriteString(" ORDER BY id ASC")
	}

	if q.PageSize > 0 {
		args = append(args, q.PageSize, utils.CalculateOffset(q.Page, q.PageSize))
		fmt.Fprintf(&sb, " LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	return sb.String(), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *filmRepository) List(ctx context.Context, q FilmQuery) ([]*entity.Film, error) {
	query, args := buildFilmListQuery(q)

	films, err := r.queryFilms(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list films",
			zap.Error(err),
			zap.String("name", q.Name),
			zap.String("genre", q.Genre),
			zap.String("sort_by", string(q.SortBy)),
			zap.Int("page", q.Page),
			zap.Int("page_size", q.PageSize),
		)
		return nil, fmt.Errorf("failed to list films: %w", err)
	}

	r.log.Debug("Films listed",
		zap.Int("count", len(films)),
		zap.Int("page", q.Page),
		zap.Int("page_size", q.PageSize),
	)

	return films, nil
}

func (r *filmRepository) Count(ctx context.Context, q FilmQuery) (int64, error) {
	where, args := buildFilmWhere(q)

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM films"+where, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count films", zap.Error(err))
		return 0, fmt.Errorf("failed to count films: %w", err)
	}

	return total, nil
}

func (r *filmRepository) FindByID(ctx context.Context, id int64) (*entity.Film, error) {
	query := `SELECT ` + filmColumns + ` FROM films WHERE id = $1`

	film, err := r.findOne(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to find film by ID", zap.Error(err), zap.Int64("film_id", id))
		return nil, fmt.Errorf("failed to find film %d: %w", id, err)
	}
	if film == nil {
		return nil, nil
	}

	if film.Comments, err = r.findComments(ctx, film.ID); err != nil {
		return nil, err
	}
	return film, nil
}

func (r *filmRepository) FindByExternalID(ctx context.Context, tmdbID int64) (*entity.Film, error) {
	query := `SELECT ` + filmColumns + ` FROM films WHERE tmdb_id = $1`

	film, err := r.findOne(ctx, query, tmdbID)
	if err != nil {
		r.log.Error("Failed to find film by tmdb ID", zap.Error(err), zap.Int64("tmdb_id", tmdbID))
		return nil, fmt.Errorf("failed to find film by tmdb id %d: %w", tmdbID, err)
	}
	if film == nil {
		return nil, nil
	}

	if film.Comments, err = r.findComments(ctx, film.ID); err != nil {
		return nil, err
	}
	return film, nil
}

func (r *filmRepository) FindByExactName(ctx context.Context, name string) (*entity.Film, error) {
	query := `SELECT ` + filmColumns + ` FROM films WHERE name = $1 ORDER BY id ASC LIMIT 1`

	film, err := r.findOne(ctx, query, name)
	if err != nil {
		r.log.Error("Failed to find film by name", zap.Error(err), zap.String("name", name))
		return nil, fmt.Errorf("failed to find film by name: %w", err)
	}
	return film, nil
}

func (r *filmRepository) FindByNameContains(ctx context.Context, name string) ([]*entity.Film, error) {
	query := `SELECT ` + filmColumns + ` FROM films WHERE name ILIKE $1 ORDER BY id ASC`

	films, err := r.queryFilms(ctx, query, "%"+escapeLike(name)+"%")
	if err != nil {
		r.log.Error("Failed to search films by name", zap.Error(err), zap.String("name", name))
		return nil, fmt.Errorf("failed to search films: %w", err)
	}
	return films, nil
}

func (r *filmRepository) Create(ctx context.Context, film *entity.Film) error {
	query := `
		INSERT INTO films (tmdb_id, name, imdb_rating, description, genre, director,
		                   lead_actors, release_year, duration, platform,
		                   cover_image_url, trailer_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), now())
		RETURNING ` + filmColumns

	err := r.db.QueryRow(ctx, query, filmWriteArgs(film)...).Scan(filmScanTargets(film)...)
	if isUniqueViolation(err) {
		r.log.Warn("Film tmdb id already stored", zap.String("name", film.Name))
		return fmt.Errorf("failed to create film: %w", ErrDuplicateExternalID)
	}
	if err != nil {
		r.log.Error("Failed to create film",
			zap.Error(err),
			zap.String("name", film.Name),
		)
		return fmt.Errorf("failed to create film: %w", err)
	}

	r.log.Info("Film created", zap.Int64("film_id", film.ID), zap.String("name", film.Name))
	return nil
}

func (r *filmRepository) CreateIfAbsent(ctx context.Context, film *entity.Film) (bool, error) {
	if film.TmdbID == nil {
		return false, errors.New("create if absent: film has no tmdb id")
	}

	query := `
		INSERT INTO films (tmdb_id, name, imdb_rating, description, genre, director,
		                   lead_actors, release_year, duration, platform,
		                   cover_image_url, trailer_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), now())
		ON CONFLICT (tmdb_id) DO NOTHING
		RETURNING ` + filmColumns

	err := r.db.QueryRow(ctx, query, filmWriteArgs(film)...).Scan(filmScanTargets(film)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		r.log.Error("Failed to create film",
			zap.Error(err),
			zap.Int64("tmdb_id", *film.TmdbID),
		)
		return false, fmt.Errorf("failed to create film with tmdb id %d: %w", *film.TmdbID, err)
	}

	r.log.Info("Film created", zap.Int64("film_id", film.ID), zap.Int64("tmdb_id", *film.TmdbID))
	return true, nil
}

func (r *filmRepository) MergeOrCreate(ctx context.Context, film *entity.Film) (bool, error) {
	if film.TmdbID == nil {
		if err := r.Create(ctx, film); err != nil {
			return false, err
		}
		return true, nil
	}

	// xmax is 0 only for a freshly inserted tuple.
	query := `
		INSERT INTO films (tmdb_id, name, imdb_rating, description, genre, director,
		                   lead_actors, release_year, duration, platform,
		                   cover_image_url, trailer_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), now())
		ON CONFLICT (tmdb_id) DO UPDATE
		SET name = EXCLUDED.name,
		    imdb_rating = EXCLUDED.imdb_rating,
		    description = EXCLUDED.description,
		    genre = EXCLUDED.genre,
		    director = EXCLUDED.director,
		    lead_actors = EXCLUDED.lead_actors,
		    release_year = EXCLUDED.release_year,
		    duration = EXCLUDED.duration,
		    platform = EXCLUDED.platform,
		    cover_image_url = EXCLUDED.cover_image_url,
		    trailer_url = EXCLUDED.trailer_url,
		    updated_at = now()
		RETURNING ` + filmColumns + `, (xmax = 0) AS created`

	var created bool
	targets := append(filmScanTargets(film), &created)

	if err := r.db.QueryRow(ctx, query, filmWriteArgs(film)...).Scan(targets...); err != nil {
		r.log.Error("Failed to merge film",
			zap.Error(err),
			zap.Int64("tmdb_id", *film.TmdbID),
		)
		return false, fmt.Errorf("failed to merge film with tmdb id %d: %w", *film.TmdbID, err)
	}

	r.log.Debug("Film merged",
		zap.Int64("film_id", film.ID),
		zap.Int64("tmdb_id", *film.TmdbID),
		zap.Bool("created", created),
	)

	return created, nil
}

func (r *filmRepository) Update(ctx context.Context, id int64, film *entity.Film) (*entity.Film, error) {
	query := `
		UPDATE films
		SET name = $2, imdb_rating = $3, description = $4, genre = $5, director = $6,
		    lead_actors = $7, release_year = $8, duration = $9, platform = $10,
		    cover_image_url = $11, trailer_url = $12, updated_at = now()
		WHERE id = $1
		RETURNING ` + filmColumns

	var updated entity.Film
	err := r.db.QueryRow(ctx, query,
		id,
		film.Name,
		film.Rating,
		film.Description,
		film.Genre,
		film.Director,
		film.LeadActors,
		film.ReleaseYear,
		film.Duration,
		film.Platform,
		film.CoverImageURL,
		film.TrailerURL,
	).Scan(filmScanTargets(&updated)...)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to update film", zap.Error(err), zap.Int64("film_id", id))
		return nil, fmt.Errorf("failed to update film %d: %w", id, err)
	}

	return &updated, nil
}

func (r *filmRepository) Delete(ctx context.Context, id int64) (*entity.Film, error) {
	query := `DELETE FROM films WHERE id = $1 RETURNING ` + filmColumns

	film, err := r.findOne(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete film", zap.Error(err), zap.Int64("film_id", id))
		return nil, fmt.Errorf("failed to delete film %d: %w", id, err)
	}
	if film != nil {
		r.log.Info("Film deleted", zap.Int64("film_id", id))
	}
	return film, nil
}

func (r *filmRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM films WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check film %d: %w", id, err)
	}
	return exists, nil
}

func (r *filmRepository) ExistsByExternalID(ctx context.Context, tmdbID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM films WHERE tmdb_id = $1)`, tmdbID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check film by tmdb id %d: %w", tmdbID, err)
	}
	return exists, nil
}

func (r *filmRepository) findOne(ctx context.Context, query string, args ...any) (*entity.Film, error) {
	var film entity.Film
	err := r.db.QueryRow(ctx, query, args...).Scan(filmScanTargets(&film)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &film, nil
}

func (r *filmRepository) queryFilms(ctx context.Context, query string, args ...any) ([]*entity.Film, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	films := []*entity.Film{}
	for rows.Next() {
		var film entity.Film
		if err := rows.Scan(filmScanTargets(&film)...); err != nil {
			return nil, fmt.Errorf("scan film: %w", err)
		}
		films = append(films, &film)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate films: %w", err)
	}
	return films, nil
}

func (r *filmRepository) findComments(ctx context.Context, filmID int64) ([]*entity.Comment, error) {
	query := `SELECT ` + commentColumns + commentFrom + ` WHERE c.film_id = $1 ORDER BY c.created_at DESC, c.id DESC`

	comments, err := queryComments(ctx, r.db, query, filmID)
	if err != nil {
		r.log.Error("Failed to load film comments", zap.Error(err), zap.Int64("film_id", filmID))
		return nil, fmt.Errorf("failed to load comments of film %d: %w", filmID, err)
	}
	return comments, nil
}

func filmWriteArgs(f *entity.Film) []any {
	return []any{
		f.TmdbID,
		f.Name,
		f.Rating,
		f.Description,
		f.Genre,
		f.Director,
		f.LeadActors,
		f.ReleaseYear,
		f.Duration,
		f.Platform,
		f.CoverImageURL,
		f.TrailerURL,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
