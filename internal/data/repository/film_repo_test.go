package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"watchhub/internal/data/entity"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func intPtr(v int) *int { return &v }

func TestBuildFilmListQuery_NoFilters(t *testing.T) {
	query, args := buildFilmListQuery(FilmQuery{})

	assert.Contains(t, query, "FROM films WHERE 1=1 ORDER BY id ASC")
	assert.NotContains(t, query, "LIMIT")
	assert.Empty(t, args)
}

func TestBuildFilmListQuery_GenreSortedByYearDescPage2(t *testing.T) {
	query, args := buildFilmListQuery(FilmQuery{
		Genre:      "Drama",
		SortBy:     SortByReleaseYear,
		Descending: true,
		Page:       2,
		PageSize:   5,
	})

	assert.True(t, strings.HasSuffix(query,
		" WHERE 1=1 AND genre ILIKE $1 ORDER BY release_year DESC, id ASC LIMIT $2 OFFSET $3"), query)
	assert.Equal(t, []any{"%Drama%", 5, 5}, args)
}

func TestBuildFilmListQuery_AllFilters(t *testing.T) {
	query, args := buildFilmListQuery(FilmQuery{
		Name:     "star",
		Genre:    "sci",
		MinYear:  intPtr(1977),
		MaxYear:  intPtr(1983),
		SortBy:   SortByName,
		Page:     1,
		PageSize: 10,
	})

	assert.True(t, strings.HasSuffix(query,
		" WHERE 1=1 AND name ILIKE $1 AND genre ILIKE $2 AND release_year >= $3 AND release_year <= $4"+
			" ORDER BY name ASC, id ASC LIMIT $5 OFFSET $6"), query)
	assert.Equal(t, []any{"%star%", "%sci%", 1977, 1983, 10, 0}, args)
}

func TestBuildFilmListQuery_UnknownSortFallsBackToID(t *testing.T) {
	query, _ := buildFilmListQuery(FilmQuery{SortBy: "imdb_rating; DROP TABLE films", Descending: true})

	assert.Contains(t, query, "ORDER BY id ASC")
	assert.NotContains(t, query, "DROP")
}

func TestBuildFilmWhere_EscapesLikeWildcards(t *testing.T) {
	_, args := buildFilmWhere(FilmQuery{Name: `100%_off\`})

	assert.Equal(t, []any{`%100\%\_off\\%`}, args)
}

var filmColumnNames = []string{
	"id", "tmdb_id", "name", "imdb_rating", "description", "genre", "director",
	"lead_actors", "release_year", "duration", "platform", "cover_image_url",
	"trailer_url", "created_at", "updated_at",
}

func int64Ptr(v int64) *int64 { return &v }

func newMockFilmRepo(t *testing.T) (pgxmock.PgxPoolIface, FilmRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewFilmRepository(mock, zap.NewNop())
}

// storedFilmRow is the row Postgres hands back after a write.
func storedFilmRow(id int64, f *entity.Film, at time.Time) []any {
	return []any{
		id, f.TmdbID, f.Name, f.Rating, f.Description, f.Genre, f.Director,
		f.LeadActors, f.ReleaseYear, f.Duration, f.Platform, f.CoverImageURL,
		nil, at, at,
	}
}

func matrix() *entity.Film {
	return &entity.Film{
		TmdbID:      int64Ptr(603),
		Name:        "The Matrix",
		Rating:      8.7,
		Genre:       "Action, Science Fiction",
		ReleaseYear: 1999,
		Duration:    136,
		Platform:    "TMDB",
	}
}

func TestMergeOrCreate_ClassifiesByXmax(t *testing.T) {
	tests := []struct {
		name    string
		created bool
	}{
		{"fresh insert", true},
		{"conflict update", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, repo := newMockFilmRepo(t)
			film := matrix()
			at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

			mock.ExpectQuery(`ON CONFLICT \(tmdb_id\) DO UPDATE[\s\S]*\(xmax = 0\) AS created`).
				WithArgs(filmWriteArgs(film)...).
				WillReturnRows(pgxmock.NewRows(append(filmColumnNames, "created")).
					AddRow(append(storedFilmRow(42, film, at), tt.created)...))

			created, err := repo.MergeOrCreate(context.Background(), film)
			require.NoError(t, err)
			assert.Equal(t, tt.created, created)
			assert.Equal(t, int64(42), film.ID)
			assert.Equal(t, at, film.UpdatedAt)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMergeOrCreate_WithoutExternalIDInserts(t *testing.T) {
	mock, repo := newMockFilmRepo(t)
	film := matrix()
	film.TmdbID = nil
	at := time.Now().UTC()

	mock.ExpectQuery(`INSERT INTO films[\s\S]*now\(\), now\(\)\)\s+RETURNING`).
		WithArgs(filmWriteArgs(film)...).
		WillReturnRows(pgxmock.NewRows(filmColumnNames).AddRow(storedFilmRow(5, film, at)...))

	created, err := repo.MergeOrCreate(context.Background(), film)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(5), film.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMergeOrCreate_QueryError(t *testing.T) {
	mock, repo := newMockFilmRepo(t)

	mock.ExpectQuery(`ON CONFLICT \(tmdb_id\) DO UPDATE`).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.MergeOrCreate(context.Background(), matrix())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tmdb id 603")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UniqueViolationIsDuplicate(t *testing.T) {
	mock, repo := newMockFilmRepo(t)

	mock.ExpectQuery(`INSERT INTO films`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "films_tmdb_id_key"})

	err := repo.Create(context.Background(), matrix())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateExternalID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIfAbsent(t *testing.T) {
	t.Run("inserted", func(t *testing.T) {
		mock, repo := newMockFilmRepo(t)
		film := matrix()

		mock.ExpectQuery(`ON CONFLICT \(tmdb_id\) DO NOTHING`).
			WithArgs(filmWriteArgs(film)...).
			WillReturnRows(pgxmock.NewRows(filmColumnNames).AddRow(storedFilmRow(9, film, time.Now())...))

		created, err := repo.CreateIfAbsent(context.Background(), film)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, int64(9), film.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already stored", func(t *testing.T) {
		mock, repo := newMockFilmRepo(t)
		film := matrix()

		mock.ExpectQuery(`ON CONFLICT \(tmdb_id\) DO NOTHING`).
			WillReturnRows(pgxmock.NewRows(filmColumnNames))

		created, err := repo.CreateIfAbsent(context.Background(), film)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Zero(t, film.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no external id", func(t *testing.T) {
		_, repo := newMockFilmRepo(t)
		film := matrix()
		film.TmdbID = nil

		_, err := repo.CreateIfAbsent(context.Background(), film)
		assert.Error(t, err)
	})
}
