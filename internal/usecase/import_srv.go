package usecase

import (
	"context"
	"fmt"
	"strings"

	"watchhub/internal/data/repository"
	"watchhub/internal/dto/request"
	"watchhub/internal/dto/response"
	"watchhub/pkg/cache"
	"watchhub/pkg/tmdb"
	"watchhub/pkg/utils"

	"go.uber.org/zap"
)

type ImportService interface {
	PreviewImport(ctx context.Context, req *request.ImportRequest) (*response.ProviderFilmsResponse, error)
	// Import merges a provider page into the catalog one film at a time.
	// It stops at the first failed merge; the summary is returned together
	// with the error and lists what was committed before it.
	Import(ctx context.Context, req *request.ImportRequest) (*response.ImportSummary, error)
	SearchProvider(ctx context.Context, req *request.SearchProviderRequest) (*response.ProviderFilmsResponse, error)
}

type importService struct {
	repo     *repository.Repository
	cache    *cache.Cache
	provider FilmProvider
	ttl      utils.CacheConfig
	log      *zap.Logger
}

func NewImportService(
	repo *repository.Repository,
	cache *cache.Cache,
	provider FilmProvider,
	ttl utils.CacheConfig,
	log *zap.Logger,
) ImportService {
	return &importService{
		repo:     repo,
		cache:    cache,
		provider: provider,
		ttl:      ttl,
		log:      log.With(zap.String("service", "import")),
	}
}

func (s *importService) PreviewImport(ctx context.Context, req *request.ImportRequest) (*response.ProviderFilmsResponse, error) {
	req.Normalize()
	key := providerListKey(req.GenreID, req.Page, req.Limit)

	var cached []tmdb.Film
	if s.cache.Get(ctx, key, &cached) {
		return &response.ProviderFilmsResponse{
			Message: "Preview from cache",
			Count:   len(cached),
			Films:   cached,
			Cached:  true,
		}, nil
	}

	films, err := s.provider.FetchPopular(ctx, req.Page, req.Limit, req.GenreID)
	if err != nil {
		s.log.Error("Failed to fetch preview from provider",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("limit", req.Limit),
			zap.Intp("genre_id", req.GenreID),
		)
		return nil, providerError("fetch films from tmdb", err)
	}

	s.cache.Set(ctx, key, films, s.ttl.ProviderTTL)

	return &response.ProviderFilmsResponse{
		Message: "Preview from TMDB",
		Count:   len(films),
		Films:   films,
		Cached:  false,
	}, nil
}

func (s *importService) Import(ctx context.Context, req *request.ImportRequest) (*response.ImportSummary, error) {
	req.Normalize()

	films, err := s.provider.FetchPopular(ctx, req.Page, req.Limit, req.GenreID)
	if err != nil {
		s.log.Error("Failed to fetch import page from provider",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("limit", req.Limit),
			zap.Intp("genre_id", req.GenreID),
		)
		return nil, providerError("fetch films from tmdb", err)
	}

	summary := &response.ImportSummary{Films: []response.FilmResponse{}}
	var touched []string
	var importErr error

	for i := range films {
		film := providerFilmToEntity(&films[i])

		created, err := s.repo.Film.MergeOrCreate(ctx, film)
		if err != nil {
			summary.FailedFilms = 1
			summary.SkippedFilms = len(films) - i - 1
			summary.Error = err.Error()
			importErr = fmt.Errorf("import film with tmdb id %d: %w", films[i].ExternalID, err)
			break
		}

		if created {
			summary.NewFilms++
		} else {
			summary.UpdatedFilms++
			touched = append(touched, filmDetailKey(film.ID))
		}
		summary.Films = append(summary.Films, response.FilmToResponse(film))
	}

	// Committed merges are visible even when the import stopped early.
	s.cache.Remove(ctx, touched...)
	s.cache.RemoveByPattern(ctx, filmListPattern)

	if importErr != nil {
		summary.Message = fmt.Sprintf("Import stopped: %d new, %d updated, %d failed, %d skipped",
			summary.NewFilms, summary.UpdatedFilms, summary.FailedFilms, summary.SkippedFilms)
		s.log.Error("Import stopped early",
			zap.Error(importErr),
			zap.Int("new", summary.NewFilms),
			zap.Int("updated", summary.UpdatedFilms),
			zap.Int("skipped", summary.SkippedFilms),
		)
		return summary, importErr
	}

	summary.Message = fmt.Sprintf("Import completed: %d new, %d updated", summary.NewFilms, summary.UpdatedFilms)
	s.log.Info("Import completed",
		zap.Int("new", summary.NewFilms),
		zap.Int("updated", summary.UpdatedFilms),
		zap.Int("page", req.Page),
		zap.Intp("genre_id", req.GenreID),
	)

	return summary, nil
}

func (s *importService) SearchProvider(ctx context.Context, req *request.SearchProviderRequest) (*response.ProviderFilmsResponse, error) {
	req.Normalize()
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, invalid("search query cannot be empty")
	}

	key := providerSearchKey(query, req.Page, req.Limit)

	var cached []tmdb.Film
	if s.cache.Get(ctx, key, &cached) {
		return &response.ProviderFilmsResponse{
			Message: "Search results from cache",
			Query:   query,
			Count:   len(cached),
			Films:   cached,
			Cached:  true,
		}, nil
	}

	films, err := s.provider.Search(ctx, query, req.Page, req.Limit)
	if err != nil {
		s.log.Error("Failed to search provider", zap.Error(err), zap.String("query", query))
		return nil, providerError("search tmdb", err)
	}

	s.cache.Set(ctx, key, films, s.ttl.SearchTTL)

	return &response.ProviderFilmsResponse{
		Message: "Search results from TMDB",
		Query:   query,
		Count:   len(films),
		Films:   films,
		Cached:  false,
	}, nil
}
