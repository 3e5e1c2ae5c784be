package usecase

import (
	"context"
	"fmt"

	"watchhub/internal/data/repository"
	"watchhub/internal/dto/response"
	"watchhub/pkg/cache"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LikeService interface {
	GetUserLikedComments(ctx context.Context, userID uuid.UUID) ([]response.CommentResponse, error)
	LikeComment(ctx context.Context, userID uuid.UUID, commentID int64) (*response.CommentResponse, error)
	UnlikeComment(ctx context.Context, userID uuid.UUID, commentID int64) (*response.CommentResponse, error)
}

type likeService struct {
	repo  *repository.Repository
	cache *cache.Cache
	log   *zap.Logger
}

func NewLikeService(repo *repository.Repository, cache *cache.Cache, log *zap.Logger) LikeService {
	return &likeService{
		repo:  repo,
		cache: cache,
		log:   log.With(zap.String("service", "like")),
	}
}

func (s *likeService) GetUserLikedComments(ctx context.Context, userID uuid.UUID) ([]response.CommentResponse, error) {
	comments, err := s.repo.CommentLike.FindCommentsLikedBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get liked comments: %w", err)
	}
	return response.CommentsToResponse(comments), nil
}

func (s *likeService) LikeComment(ctx context.Context, userID uuid.UUID, commentID int64) (*response.CommentResponse, error) {
	if err := s.requireComment(ctx, commentID); err != nil {
		return nil, err
	}

	liked, err := s.repo.CommentLike.Like(ctx, userID, commentID)
	if err != nil {
		return nil, fmt.Errorf("like comment: %w", err)
	}
	if !liked {
		return nil, conflict("you already liked this comment")
	}

	return s.reload(ctx, commentID)
}

func (s *likeService) UnlikeComment(ctx context.Context, userID uuid.UUID, commentID int64) (*response.CommentResponse, error) {
	if err := s.requireComment(ctx, commentID); err != nil {
		return nil, err
	}

	unliked, err := s.repo.CommentLike.Unlike(ctx, userID, commentID)
	if err != nil {
		return nil, fmt.Errorf("unlike comment: %w", err)
	}
	if !unliked {
		return nil, invalid("first you should like the comment")
	}

	return s.reload(ctx, commentID)
}

func (s *likeService) requireComment(ctx context.Context, commentID int64) error {
	comment, err := s.repo.Comment.FindByID(ctx, commentID)
	if err != nil {
		return fmt.Errorf("get comment by id: %w", err)
	}
	if comment == nil {
		return notFound("comment not found")
	}
	return nil
}

// reload returns the comment with its recomputed like count and drops the
// cached details of its film.
func (s *likeService) reload(ctx context.Context, commentID int64) (*response.CommentResponse, error) {
	comment, err := s.repo.Comment.FindByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("get comment by id: %w", err)
	}
	if comment == nil {
		return nil, notFound("comment not found")
	}

	if comment.FilmID != nil {
		s.cache.Remove(ctx, filmDetailKey(*comment.FilmID))
	}

	resp := response.CommentToResponse(comment)
	return &resp, nil
}
