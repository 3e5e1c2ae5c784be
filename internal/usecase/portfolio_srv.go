package usecase

import (
	"context"
	"fmt"

	"watchhub/internal/data/repository"
	"watchhub/internal/dto/request"
	"watchhub/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PortfolioService interface {
	GetUserPortfolio(ctx context.Context, userID uuid.UUID) ([]response.FilmResponse, error)
	AddToPortfolio(ctx context.Context, userID uuid.UUID, req *request.AddToPortfolioRequest) (*response.FilmResponse, error)
	RemoveFromPortfolio(ctx context.Context, userID uuid.UUID, filmID int64) error
}

type portfolioService struct {
	repo  *repository.Repository
	films FilmService
	log   *zap.Logger
}

func NewPortfolioService(repo *repository.Repository, films FilmService, log *zap.Logger) PortfolioService {
	return &portfolioService{
		repo:  repo,
		films: films,
		log:   log.With(zap.String("service", "portfolio")),
	}
}

func (s *portfolioService) GetUserPortfolio(ctx context.Context, userID uuid.UUID) ([]response.FilmResponse, error) {
	films, err := s.repo.Portfolio.FindFilmsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get portfolio: %w", err)
	}
	return response.FilmsToResponse(films), nil
}

func (s *portfolioService) AddToPortfolio(ctx context.Context, userID uuid.UUID, req *request.AddToPortfolioRequest) (*response.FilmResponse, error) {
	ref, err := filmRefFromRequest(req.TmdbID, &req.FilmSeed)
	if err != nil {
		return nil, err
	}

	film, err := s.films.ResolveFilm(ctx, ref)
	if err != nil {
		return nil, err
	}

	added, err := s.repo.Portfolio.Add(ctx, userID, film.ID)
	if err != nil {
		return nil, fmt.Errorf("add to portfolio: %w", err)
	}
	if !added {
		return nil, conflict("film already in portfolio")
	}

	s.log.Info("Film added to portfolio",
		zap.String("user_id", userID.String()),
		zap.Int64("film_id", film.ID),
	)

	resp := response.FilmToResponse(film)
	return &resp, nil
}

func (s *portfolioService) RemoveFromPortfolio(ctx context.Context, userID uuid.UUID, filmID int64) error {
	removed, err := s.repo.Portfolio.Remove(ctx, userID, filmID)
	if err != nil {
		return fmt.Errorf("remove from portfolio: %w", err)
	}
	if !removed {
		return notFound("film not in portfolio")
	}

	s.log.Info("Film removed from portfolio",
		zap.String("user_id", userID.String()),
		zap.Int64("film_id", filmID),
	)
	return nil
}
