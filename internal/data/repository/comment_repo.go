package repository

import (
	"context"
	"errors"
	"fmt"

	"watchhub/internal/data/entity"
	"watchhub/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CommentRepository interface {
	FindAll(ctx context.Context) ([]*entity.Comment, error)
	FindByID(ctx context.Context, id int64) (*entity.Comment, error)
	Create(ctx context.Context, comment *entity.Comment) error
	// Update rewrites content and star rating; nil when the comment is gone.
	Update(ctx context.Context, id int64, starRating int, content string) (*entity.Comment, error)
	Delete(ctx context.Context, id int64) (*entity.Comment, error)
}

const (
	commentColumns = `c.id, c.star_rating, c.content, c.contains_spoiler, c.number_of_likes,
		       c.film_id, c.user_id, c.created_at, u.username`
	commentFrom = ` FROM comments c LEFT JOIN users u ON u.id = c.user_id`
)

type commentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCommentRepository(db database.PgxIface, log *zap.Logger) CommentRepository {
	return &commentRepository{
		db:  db,
		log: log.With(zap.String("repository", "comment")),
	}
}

func commentScanTargets(c *entity.Comment) []any {
	return []any{
		&c.ID,
		&c.StarRating,
		&c.Content,
		&c.ContainsSpoiler,
		&c.NumberOfLikes,
		&c.FilmID,
		&c.UserID,
		&c.CreatedAt,
		&c.CreatedBy,
	}
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func queryComments(ctx context.Context, db querier, query string, args ...any) ([]*entity.Comment, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []*entity.Comment{}
	for rows.Next() {
		var c entity.Comment
		if err := rows.Scan(commentScanTargets(&c)...); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return comments, nil
}

func (r *commentRepository) FindAll(ctx context.Context) ([]*entity.Comment, error) {
	query := `SELECT ` + commentColumns + commentFrom + ` ORDER BY c.created_at DESC, c.id DESC`

	comments, err := queryComments(ctx, r.db, query)
	if err != nil {
		r.log.Error("Failed to list comments", zap.Error(err))
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

func (r *commentRepository) FindByID(ctx context.Context, id int64) (*entity.Comment, error) {
	query := `SELECT ` + commentColumns + commentFrom + ` WHERE c.id = $1`

	var comment entity.Comment
	err := r.db.QueryRow(ctx, query, id).Scan(commentScanTargets(&comment)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find comment by ID", zap.Error(err), zap.Int64("comment_id", id))
		return nil, fmt.Errorf("failed to find comment %d: %w", id, err)
	}

	return &comment, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	query := `
		INSERT INTO comments (star_rating, content, contains_spoiler, number_of_likes,
		                      film_id, user_id, created_at)
		VALUES ($1, $2, $3, 0, $4, $5, now())
		RETURNING id, number_of_likes, created_at
	`

	err := r.db.QueryRow(ctx, query,
		comment.StarRating,
		comment.Content,
		comment.ContainsSpoiler,
		comment.FilmID,
		comment.UserID,
	).Scan(&comment.ID, &comment.NumberOfLikes, &comment.CreatedAt)

	if err != nil {
		r.log.Error("Failed to create comment",
			zap.Error(err),
			zap.Int64p("film_id", comment.FilmID),
		)
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

func (r *commentRepository) Update(ctx context.Context, id int64, starRating int, content string) (*entity.Comment, error) {
	query := `
		WITH c AS (
			UPDATE comments SET star_rating = $2, content = $3
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + commentColumns + ` FROM c LEFT JOIN users u ON u.id = c.user_id`

	var comment entity.Comment
	err := r.db.QueryRow(ctx, query, id, starRating, content).Scan(commentScanTargets(&comment)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to update comment", zap.Error(err), zap.Int64("comment_id", id))
		return nil, fmt.Errorf("failed to update comment %d: %w", id, err)
	}

	return &comment, nil
}

func (r *commentRepository) Delete(ctx context.Context, id int64) (*entity.Comment, error) {
	query := `
		WITH c AS (
			DELETE FROM comments WHERE id = $1
			RETURNING *
		)
		SELECT ` + commentColumns + ` FROM c LEFT JOIN users u ON u.id = c.user_id`

	var comment entity.Comment
	err := r.db.QueryRow(ctx, query, id).Scan(commentScanTargets(&comment)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to delete comment", zap.Error(err), zap.Int64("comment_id", id))
		return nil, fmt.Errorf("failed to delete comment %d: %w", id, err)
	}

	return &comment, nil
}
