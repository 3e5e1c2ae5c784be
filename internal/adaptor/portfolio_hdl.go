package adaptor

import (
	"net/http"

	"watchhub/internal/dto/request"
	"watchhub/internal/usecase"
	"watchhub/pkg/utils"

	"go.uber.org/zap"
)

type PortfolioHandler struct {
	responder
	service usecase.PortfolioService
}

func NewPortfolioHandler(service usecase.PortfolioService, log *zap.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		responder: responder{log: log.With(zap.String("handler", "portfolio"))},
		service:   service,
	}
}

// GetPortfolio handles GET /api/portfolio (protected)
func (h *PortfolioHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	films, err := h.service.GetUserPortfolio(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get portfolio")
		return
	}

	utils.ResponseSuccess(w, "success", films)
}

// AddToPortfolio handles POST /api/portfolio (protected)
func (h *PortfolioHandler) AddToPortfolio(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.AddToPortfolioRequest
	if err := decodeBody(r, &req, false); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	film, err := h.service.AddToPortfolio(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "add to portfolio")
		return
	}

	utils.ResponseCreated(w, "Film added to portfolio", film)
}

// RemoveFromPortfolio handles DELETE /api/portfolio/{filmId} (protected)
func (h *PortfolioHandler) RemoveFromPortfolio(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	filmID, ok := pathID(r, "filmId")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid film ID", nil)
		return
	}

	if err := h.service.RemoveFromPortfolio(r.Context(), userID, filmID); err != nil {
		h.handleServiceError(w, err, "remove from portfolio")
		return
	}

	utils.ResponseSuccess(w, "Film removed from portfolio", nil)
}
