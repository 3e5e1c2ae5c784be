package usecase

import (
	"context"
	"errors"
	"fmt"

	"watchhub/internal/data/entity"
	"watchhub/internal/data/repository"
	"watchhub/internal/dto/request"
	"watchhub/internal/dto/response"
	"watchhub/pkg/cache"
	"watchhub/pkg/tmdb"
	"watchhub/pkg/utils"

	"go.uber.org/zap"
)

type FilmService interface {
	GetFilms(ctx context.Context, req *request.FilmListQuery) (*response.PaginatedResponse[response.FilmResponse], error)
	GetFilmByID(ctx context.Context, id int64) (*response.FilmResponse, error)
	SearchFilmsByName(ctx context.Context, name string) ([]response.FilmResponse, error)
	CreateFilm(ctx context.Context, req *request.FilmRequest) (*response.FilmResponse, error)
	UpdateFilm(ctx context.Context, id int64, req *request.FilmRequest) (*response.FilmResponse, error)
	DeleteFilm(ctx context.Context, id int64) error
	// ResolveFilm turns a reference into a stored film, creating it when
	// the reference is by external id and nothing is stored yet.
	ResolveFilm(ctx context.Context, ref FilmRef) (*entity.Film, error)
}

type filmService struct {
	repo     *repository.Repository
	cache    *cache.Cache
	provider FilmProvider
	ttl      utils.CacheConfig
	log      *zap.Logger
}

func NewFilmService(
	repo *repository.Repository,
	cache *cache.Cache,
	provider FilmProvider,
	ttl utils.CacheConfig,
	log *zap.Logger,
) FilmService {
	return &filmService{
		repo:     repo,
		cache:    cache,
		provider: provider,
		ttl:      ttl,
		log:      log.With(zap.String("service", "film")),
	}
}

func toFilmQuery(req *request.FilmListQuery) repository.FilmQuery {
	return repository.FilmQuery{
		Name:       req.Name,
		Genre:      req.Genre,
		MinYear:    req.MinYear,
		MaxYear:    req.MaxYear,
		SortBy:     repository.FilmSortKey(req.SortBy),
		Descending: req.IsDescending,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}
}

func (s *filmService) GetFilms(ctx context.Context, req *request.FilmListQuery) (*response.PaginatedResponse[response.FilmResponse], error) {
	if req.MinYear != nil && req.MaxYear != nil && *req.MinYear > *req.MaxYear {
		return nil, invalid("min_year cannot be greater than max_year")
	}

	q := toFilmQuery(req)
	key := filmListKey(q)

	var cached response.PaginatedResponse[response.FilmResponse]
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	films, err := s.repo.Film.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list films: %w", err)
	}

	total, err := s.repo.Film.Count(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("count films: %w", err)
	}

	resp := response.NewPaginatedResponse(response.FilmsToResponse(films), q.Page, q.PageSize, total)
	s.cache.Set(ctx, key, resp, s.ttl.ListTTL)

	s.log.Info("Films retrieved",
		zap.Int("count", len(films)),
		zap.Int64("total", total),
		zap.Int("page", q.Page),
		zap.Int("page_size", q.PageSize),
	)

	return resp, nil
}

func (s *filmService) GetFilmByID(ctx context.Context, id int64) (*response.FilmResponse, error) {
	key := filmDetailKey(id)

	var cached response.FilmResponse
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	film, err := s.repo.Film.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get film by id: %w", err)
	}
	if film == nil {
		return nil, notFound("film not found")
	}

	resp := response.FilmToResponse(film)
	s.cache.Set(ctx, key, resp, s.ttl.DetailTTL)

	return &resp, nil
}

func (s *filmService) SearchFilmsByName(ctx context.Context, name string) ([]response.FilmResponse, error) {
	films, err := s.repo.Film.FindByNameContains(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("search films: %w", err)
	}
	if len(films) == 0 {
		return nil, notFound("no films found matching %q", name)
	}

	return response.FilmsToResponse(films), nil
}

func (s *filmService) CreateFilm(ctx context.Context, req *request.FilmRequest) (*response.FilmResponse, error) {
	if req.TmdbID != nil {
		exists, err := s.repo.Film.ExistsByExternalID(ctx, *req.TmdbID)
		if err != nil {
			return nil, fmt.Errorf("check tmdb id: %w", err)
		}
		if exists {
			return nil, conflict("film with tmdb id %d already exists", *req.TmdbID)
		}
	}

	film := requestToEntity(req)
	if err := s.repo.Film.Create(ctx, film); err != nil {
		if errors.Is(err, repository.ErrDuplicateExternalID) && req.TmdbID != nil {
			return nil, conflict("film with tmdb id %d already exists", *req.TmdbID)
		}
		return nil, fmt.Errorf("create film: %w", err)
	}

	s.invalidateFilms(ctx)

	s.log.Info("Film created", zap.Int64("film_id", film.ID), zap.String("name", film.Name))

	resp := response.FilmToResponse(film)
	return &resp, nil
}

func (s *filmService) UpdateFilm(ctx context.Context, id int64, req *request.FilmRequest) (*response.FilmResponse, error) {
	film, err := s.repo.Film.Update(ctx, id, requestToEntity(req))
	if err != nil {
		return nil, fmt.Errorf("update film: %w", err)
	}
	if film == nil {
		return nil, notFound("film not found")
	}

	s.invalidateFilms(ctx, id)

	resp := response.FilmToResponse(film)
	return &resp, nil
}

func (s *filmService) DeleteFilm(ctx context.Context, id int64) error {
	film, err := s.repo.Film.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete film: %w", err)
	}
	if film == nil {
		return notFound("film not found")
	}

	s.invalidateFilms(ctx, id)

	s.log.Info("Film deleted", zap.Int64("film_id", id), zap.String("name", film.Name))
	return nil
}

func (s *filmService) ResolveFilm(ctx context.Context, ref FilmRef) (*entity.Film, error) {
	switch ref.kind {
	case refByExternalID:
		return s.resolveByExternalID(ctx, ref)
	case refByExactName:
		film, err := s.repo.Film.FindByExactName(ctx, ref.name)
		if err != nil {
			return nil, fmt.Errorf("find film by name: %w", err)
		}
		if film == nil {
			return nil, invalid("film not found and no external id provided")
		}
		return film, nil
	default:
		return nil, invalid("either tmdb_id or name is required")
	}
}

func (s *filmService) resolveByExternalID(ctx context.Context, ref FilmRef) (*entity.Film, error) {
	film, err := s.repo.Film.FindByExternalID(ctx, ref.externalID)
	if err != nil {
		return nil, fmt.Errorf("find film by tmdb id: %w", err)
	}
	if film != nil {
		return film, nil
	}

	if ref.seed != nil && ref.seed.Name != "" {
		film = seedToEntity(&ref.externalID, ref.seed)
	} else {
		details, err := s.provider.FetchDetails(ctx, ref.externalID)
		if errors.Is(err, tmdb.ErrNotFound) {
			return nil, notFound("film with tmdb id %d not found", ref.externalID)
		}
		if err != nil {
			s.log.Error("Failed to fetch film from provider", zap.Error(err), zap.Int64("tmdb_id", ref.externalID))
			return nil, providerError("fetch film details", err)
		}
		film = providerFilmToEntity(details)
	}

	created, err := s.repo.Film.CreateIfAbsent(ctx, film)
	if err != nil {
		return nil, fmt.Errorf("create film from tmdb id: %w", err)
	}
	if !created {
		// Stored by a concurrent request; that row wins.
		stored, err := s.repo.Film.FindByExternalID(ctx, ref.externalID)
		if err != nil {
			return nil, fmt.Errorf("find film by tmdb id: %w", err)
		}
		if stored == nil {
			return nil, fmt.Errorf("film with tmdb id %d vanished after insert conflict", ref.externalID)
		}
		return stored, nil
	}

	s.invalidateFilms(ctx)

	s.log.Info("Film created from reference",
		zap.Int64("film_id", film.ID),
		zap.Int64("tmdb_id", ref.externalID),
	)
	return film, nil
}

// invalidateFilms drops the detail entries of ids and every listing.
func (s *filmService) invalidateFilms(ctx context.Context, ids ...int64) {
	if len(ids) > 0 {
		keys := make([]string, 0, len(ids))
		for _, id := range ids {
			keys = append(keys, filmDetailKey(id))
		}
		s.cache.Remove(ctx, keys...)
	}
	s.cache.RemoveByPattern(ctx, filmListPattern)
}
