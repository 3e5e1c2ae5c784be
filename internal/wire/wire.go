package wire

import (
	"net/http"

	"watchhub/internal/adaptor"
	"watchhub/internal/data/repository"
	"watchhub/internal/usecase"
	"watchhub/pkg/cache"
	"watchhub/pkg/middleware"
	"watchhub/pkg/profanity"
	"watchhub/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired router.
type App struct {
	Router *chi.Mux
}

// Wiring builds services and handlers and registers every route.
func Wiring(
	repo *repository.Repository,
	cache *cache.Cache,
	provider usecase.FilmProvider,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, cache, provider, profanity.Default(), config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins))
	r.Use(middleware.SanitizeJSON())

	auth := middleware.AuthJWT(config.JWT, repo.User, logger)

	wireFilm(r, handler.Film, auth)
	wireComment(r, handler.Comment, auth)
	wirePortfolio(r, handler.Portfolio, auth)
	wireLike(r, handler.Like, auth)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", nil)
	})

	return r
}
