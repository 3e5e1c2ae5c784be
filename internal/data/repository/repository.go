package repository

import (
	"watchhub/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User        UserRepository
	Film        FilmRepository
	Comment     CommentRepository
	CommentLike CommentLikeRepository
	Portfolio   PortfolioRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(db, log),
		Film:        NewFilmRepository(db, log),
		Comment:     NewCommentRepository(db, log),
		CommentLike: NewCommentLikeRepository(db, log),
		Portfolio:   NewPortfolioRepository(db, log),
	}
}
