package repository

import (
	"context"
	"fmt"

	"watchhub/internal/data/entity"
	"watchhub/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PortfolioRepository interface {
	FindFilmsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Film, error)
	// Add reports false when the film is already in the portfolio.
	Add(ctx context.Context, userID uuid.UUID, filmID int64) (bool, error)
	Remove(ctx context.Context, userID uuid.UUID, filmID int64) (bool, error)
}

type portfolioRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPortfolioRepository(db database.PgxIface, log *zap.Logger) PortfolioRepository {
	return &portfolioRepository{
		db:  db,
		log: log.With(zap.String("repository", "portfolio")),
	}
}

func (r *portfolioRepository) FindFilmsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Film, error) {
	query := `
		SELECT f.id, f.tmdb_id, f.name, f.imdb_rating, f.description, f.genre, f.director,
		       f.lead_actors, f.release_year, f.duration, f.platform, f.cover_image_url,
		       f.trailer_url, f.created_at, f.updated_at
		FROM portfolios p
		JOIN films f ON f.id = p.film_id
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC, f.id ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to load portfolio", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}
	defer rows.Close()

	films := []*entity.Film{}
	for rows.Next() {
		var film entity.Film
		if err := rows.Scan(filmScanTargets(&film)...); err != nil {
			r.log.Error("Failed to scan portfolio film", zap.Error(err))
			return nil, fmt.Errorf("failed to scan portfolio film: %w", err)
		}
		films = append(films, &film)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate portfolio: %w", err)
	}
	return films, nil
}

func (r *portfolioRepository) Add(ctx context.Context, userID uuid.UUID, filmID int64) (bool, error) {
	query := `
		INSERT INTO portfolios (user_id, film_id, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id, film_id) DO NOTHING
	`

	tag, err := r.db.Exec(ctx, query, userID, filmID)
	if err != nil {
		r.log.Error("Failed to add film to portfolio",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int64("film_id", filmID),
		)
		return false, fmt.Errorf("failed to add film %d to portfolio: %w", filmID, err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *portfolioRepository) Remove(ctx context.Context, userID uuid.UUID, filmID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM portfolios WHERE user_id = $1 AND film_id = $2`, userID, filmID)
	if err != nil {
		r.log.Error("Failed to remove film from portfolio",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int64("film_id", filmID),
		)
		return false, fmt.Errorf("failed to remove film %d from portfolio: %w", filmID, err)
	}

	return tag.RowsAffected() == 1, nil
}
