package repository

import (
	"context"
	"errors"
	"fmt"

	"watchhub/internal/data/entity"
	"watchhub/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CommentLikeRepository interface {
	// Like and Unlike report false when there was nothing to change. Both
	// recompute the comment's like counter in the same transaction.
	Like(ctx context.Context, userID uuid.UUID, commentID int64) (bool, error)
	Unlike(ctx context.Context, userID uuid.UUID, commentID int64) (bool, error)
	FindCommentsLikedBy(ctx context.Context, userID uuid.UUID) ([]*entity.Comment, error)
}

// lockComment serialises like toggles on one comment, so the recount below
// sees every like committed before it.
const lockComment = `SELECT id FROM comments WHERE id = $1 FOR UPDATE`

const recountLikes = `
	UPDATE comments
	SET number_of_likes = (SELECT COUNT(*) FROM comment_likes WHERE comment_id = $1)
	WHERE id = $1
`

type commentLikeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCommentLikeRepository(db database.PgxIface, log *zap.Logger) CommentLikeRepository {
	return &commentLikeRepository{
		db:  db,
		log: log.With(zap.String("repository", "comment_like")),
	}
}

func (r *commentLikeRepository) Like(ctx context.Context, userID uuid.UUID, commentID int64) (bool, error) {
	return r.toggle(ctx, userID, commentID,
		`INSERT INTO comment_likes (user_id, comment_id, created_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (user_id, comment_id) DO NOTHING`,
		"like",
	)
}

func (r *commentLikeRepository) Unlike(ctx context.Context, userID uuid.UUID, commentID int64) (bool, error) {
	return r.toggle(ctx, userID, commentID,
		`DELETE FROM comment_likes WHERE user_id = $1 AND comment_id = $2`,
		"unlike",
	)
}

func (r *commentLikeRepository) toggle(ctx context.Context, userID uuid.UUID, commentID int64, stmt, action string) (bool, error) {
	var changed bool

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var locked int64
		if err := tx.QueryRow(ctx, lockComment, commentID).Scan(&locked); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return err
		}

		tag, err := tx.Exec(ctx, stmt, userID, commentID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		changed = true

		_, err = tx.Exec(ctx, recountLikes, commentID)
		return err
	})
	if err != nil {
		r.log.Error("Failed to "+action+" comment",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int64("comment_id", commentID),
		)
		return false, fmt.Errorf("failed to %s comment %d: %w", action, commentID, err)
	}

	return changed, nil
}

func (r *commentLikeRepository) FindCommentsLikedBy(ctx context.Context, userID uuid.UUID) ([]*entity.Comment, error) {
	query := `SELECT ` + commentColumns + commentFrom + `
		JOIN comment_likes cl ON cl.comment_id = c.id
		WHERE cl.user_id = $1
		ORDER BY cl.created_at DESC, c.id DESC`

	comments, err := queryComments(ctx, r.db, query, userID)
	if err != nil {
		r.log.Error("Failed to list liked comments", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to list liked comments: %w", err)
	}
	return comments, nil
}
