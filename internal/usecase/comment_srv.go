package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"watchhub/internal/data/entity"
	"watchhub/internal/data/repository"
	"watchhub/internal/dto/request"
	"watchhub/internal/dto/response"
	"watchhub/pkg/cache"
	"watchhub/pkg/profanity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	commentMinLength = 10
	commentMaxLength = 250
)

type CommentService interface {
	GetComments(ctx context.Context) ([]response.CommentResponse, error)
	GetCommentByID(ctx context.Context, id int64) (*response.CommentResponse, error)
	CreateComment(ctx context.Context, userID uuid.UUID, filmID int64, req *request.CreateCommentRequest) (*response.CommentResponse, error)
	CreateCommentWithFilm(ctx context.Context, userID uuid.UUID, req *request.CreateCommentWithFilmRequest) (*response.CommentResponse, error)
	UpdateComment(ctx context.Context, userID uuid.UUID, id int64, req *request.UpdateCommentRequest) (*response.CommentResponse, error)
	DeleteComment(ctx context.Context, userID uuid.UUID, id int64) (*response.CommentResponse, error)
}

type commentService struct {
	repo   *repository.Repository
	films  FilmService
	cache  *cache.Cache
	filter *profanity.Filter
	log    *zap.Logger
}

func NewCommentService(
	repo *repository.Repository,
	films FilmService,
	cache *cache.Cache,
	filter *profanity.Filter,
	log *zap.Logger,
) CommentService {
	return &commentService{
		repo:   repo,
		films:  films,
		cache:  cache,
		filter: filter,
		log:    log.With(zap.String("service", "comment")),
	}
}

func (s *commentService) GetComments(ctx context.Context) ([]response.CommentResponse, error) {
	comments, err := s.repo.Comment.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get comments: %w", err)
	}
	return response.CommentsToResponse(comments), nil
}

func (s *commentService) GetCommentByID(ctx context.Context, id int64) (*response.CommentResponse, error) {
	comment, err := s.repo.Comment.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get comment by id: %w", err)
	}
	if comment == nil {
		return nil, notFound("comment not found")
	}

	resp := response.CommentToResponse(comment)
	return &resp, nil
}

func (s *commentService) CreateComment(ctx context.Context, userID uuid.UUID, filmID int64, req *request.CreateCommentRequest) (*response.CommentResponse, error) {
	content, err := commentContent(req.Content)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.Film.Exists(ctx, filmID)
	if err != nil {
		return nil, fmt.Errorf("check film: %w", err)
	}
	if !exists {
		return nil, invalid("film does not exist")
	}

	return s.create(ctx, userID, filmID, req.StarRating, content, req.ContainsSpoiler)
}

func (s *commentService) CreateCommentWithFilm(ctx context.Context, userID uuid.UUID, req *request.CreateCommentWithFilmRequest) (*response.CommentResponse, error) {
	content, err := commentContent(req.Content)
	if err != nil {
		return nil, err
	}

	var filmID int64

	switch {
	case req.FilmID != nil:
		exists, err := s.repo.Film.Exists(ctx, *req.FilmID)
		if err != nil {
			return nil, fmt.Errorf("check film: %w", err)
		}
		if !exists {
			return nil, invalid("film does not exist")
		}
		filmID = *req.FilmID
	case req.TmdbID != nil:
		film, err := s.films.ResolveFilm(ctx, ByExternalID(*req.TmdbID, &req.FilmSeed))
		if err != nil {
			return nil, err
		}
		filmID = film.ID
	default:
		return nil, invalid("either film_id or tmdb_id is required")
	}

	return s.create(ctx, userID, filmID, req.StarRating, content, req.ContainsSpoiler)
}

func (s *commentService) create(ctx context.Context, userID uuid.UUID, filmID int64, rating int, content string, spoiler bool) (*response.CommentResponse, error) {
	comment := &entity.Comment{
		StarRating:      rating,
		Content:         s.filter.Mask(content),
		ContainsSpoiler: spoiler,
		FilmID:          &filmID,
		UserID:          &userID,
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.cache.Remove(ctx, filmDetailKey(filmID))

	// Reload for the author's username.
	stored, err := s.repo.Comment.FindByID(ctx, comment.ID)
	if err != nil {
		s.log.Warn("Failed to reload created comment", zap.Error(err), zap.Int64("comment_id", comment.ID))
	}
	if stored != nil {
		comment = stored
	}

	s.log.Info("Comment created",
		zap.Int64("comment_id", comment.ID),
		zap.Int64("film_id", filmID),
		zap.String("user_id", userID.String()),
	)

	resp := response.CommentToResponse(comment)
	return &resp, nil
}

func (s *commentService) UpdateComment(ctx context.Context, userID uuid.UUID, id int64, req *request.UpdateCommentRequest) (*response.CommentResponse, error) {
	content, err := commentContent(req.Content)
	if err != nil {
		return nil, err
	}

	if _, err := s.ownedComment(ctx, userID, id, "edit"); err != nil {
		return nil, err
	}

	comment, err := s.repo.Comment.Update(ctx, id, req.StarRating, s.filter.Mask(content))
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	if comment == nil {
		return nil, notFound("comment not found")
	}

	s.invalidateFilm(ctx, comment.FilmID)

	resp := response.CommentToResponse(comment)
	return &resp, nil
}

func (s *commentService) DeleteComment(ctx context.Context, userID uuid.UUID, id int64) (*response.CommentResponse, error) {
	if _, err := s.ownedComment(ctx, userID, id, "delete"); err != nil {
		return nil, err
	}

	comment, err := s.repo.Comment.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete comment: %w", err)
	}
	if comment == nil {
		return nil, notFound("comment not found")
	}

	s.invalidateFilm(ctx, comment.FilmID)

	s.log.Info("Comment deleted", zap.Int64("comment_id", id), zap.String("user_id", userID.String()))

	resp := response.CommentToResponse(comment)
	return &resp, nil
}

func (s *commentService) ownedComment(ctx context.Context, userID uuid.UUID, id int64, action string) (*entity.Comment, error) {
	comment, err := s.repo.Comment.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get comment by id: %w", err)
	}
	if comment == nil {
		return nil, notFound("comment not found")
	}
	if comment.UserID == nil || *comment.UserID != userID {
		s.log.Warn("Comment ownership check failed",
			zap.Int64("comment_id", id),
			zap.String("user_id", userID.String()),
			zap.String("action", action),
		)
		return nil, forbidden("you can only %s your own comments", action)
	}
	return comment, nil
}

func (s *commentService) invalidateFilm(ctx context.Context, filmID *int64) {
	if filmID != nil {
		s.cache.Remove(ctx, filmDetailKey(*filmID))
	}
}

// commentContent trims the text and checks its length again, since the
// request validator sees the untrimmed value.
func commentContent(raw string) (string, error) {
	content := strings.TrimSpace(raw)
	if n := utf8.RuneCountInString(content); n < commentMinLength || n > commentMaxLength {
		return "", invalid("content must be between %d and %d characters", commentMinLength, commentMaxLength)
	}
	return content, nil
}
