package adaptor

import (
	"watchhub/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Film      *FilmHandler
	Comment   *CommentHandler
	Portfolio *PortfolioHandler
	Like      *LikeHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Film:      NewFilmHandler(service.Film, service.Import, log),
		Comment:   NewCommentHandler(service.Comment, log),
		Portfolio: NewPortfolioHandler(service.Portfolio, log),
		Like:      NewLikeHandler(service.Like, log),
	}
}
