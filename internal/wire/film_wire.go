package wire

import (
	"net/http"

	"watchhub/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireFilm(r chi.Router, filmHandler *adaptor.FilmHandler, auth func(http.Handler) http.Handler) {
	r.Route("/api/films", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", filmHandler.GetFilms)
		r.Get("/{id}", filmHandler.GetFilmByID)
		r.Get("/search/{name}", filmHandler.SearchFilms)
		r.Post("/import-from-tmdb/preview", filmHandler.PreviewImport)
		r.Post("/search-tmdb", filmHandler.SearchProvider)

		// ==================== PROTECTED ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(auth)

			r.Post("/", filmHandler.CreateFilm)
			r.Put("/{id}", filmHandler.UpdateFilm)
			r.Delete("/{id}", filmHandler.DeleteFilm)
			r.Post("/import-from-tmdb", filmHandler.ImportFilms)
		})
	})
}
