package usecase

import (
	"watchhub/internal/data/repository"
	"watchhub/pkg/cache"
	"watchhub/pkg/profanity"
	"watchhub/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Film      FilmService
	Import    ImportService
	Comment   CommentService
	Portfolio PortfolioService
	Like      LikeService
}

func NewService(
	repo *repository.Repository,
	cache *cache.Cache,
	provider FilmProvider,
	filter *profanity.Filter,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	films := NewFilmService(repo, cache, provider, config.Cache, log)

	return &Service{
		Film:      films,
		Import:    NewImportService(repo, cache, provider, config.Cache, log),
		Comment:   NewCommentService(repo, films, cache, filter, log),
		Portfolio: NewPortfolioService(repo, films, log),
		Like:      NewLikeService(repo, cache, log),
	}
}
