package wire

import (
	"net/http"

	"watchhub/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePortfolio(r chi.Router, portfolioHandler *adaptor.PortfolioHandler, auth func(http.Handler) http.Handler) {
	// Every portfolio route belongs to the caller.
	r.Route("/api/portfolio", func(r chi.Router) {
		r.Use(auth)

		r.Get("/", portfolioHandler.GetPortfolio)
		r.Post("/", portfolioHandler.AddToPortfolio)
		r.Delete("/{filmId}", portfolioHandler.RemoveFromPortfolio)
	})
}
