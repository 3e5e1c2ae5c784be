package adaptor

import (
	"errors"
	"net/http"

	"watchhub/internal/dto/request"
	"watchhub/internal/usecase"
	"watchhub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type FilmHandler struct {
	responder
	service usecase.FilmService
	imports usecase.ImportService
}

func NewFilmHandler(service usecase.FilmService, imports usecase.ImportService, log *zap.Logger) *FilmHandler {
	return &FilmHandler{
		responder: responder{log: log.With(zap.String("handler", "film"))},
		service:   service,
		imports:   imports,
	}
}

// GetFilms handles GET /api/films (public)
func (h *FilmHandler) GetFilms(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := queryInts{}
	req := request.FilmListQuery{
		Name:         query.Get("name"),
		Genre:        query.Get("genre"),
		MinYear:      params.optional(query, "min_year"),
		MaxYear:      params.optional(query, "max_year"),
		SortBy:       query.Get("sort_by"),
		IsDescending: utils.ParseBool(query.Get("is_descending")),
		Page:         params.withDefault(query, "page", request.DefaultPage),
		PageSize:     params.withDefault(query, "page_size", request.DefaultPageSize),
	}

	if len(params) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", map[string]string(params))
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	films, err := h.service.GetFilms(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "get films")
		return
	}

	utils.ResponseSuccess(w, "success", films)
}

// GetFilmByID handles GET /api/films/{id} (public)
func (h *FilmHandler) GetFilmByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid film ID", nil)
		return
	}

	film, err := h.service.GetFilmByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "get film")
		return
	}

	utils.ResponseSuccess(w, "success", film)
}

// SearchFilms handles GET /api/films/search/{name} (public)
func (h *FilmHandler) SearchFilms(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		utils.ResponseBadRequest(w, "Film name is required", nil)
		return
	}

	films, err := h.service.SearchFilmsByName(r.Context(), name)
	if err != nil {
		h.handleServiceError(w, err, "search films")
		return
	}

	utils.ResponseSuccess(w, "success", films)
}

// CreateFilm handles POST /api/films (protected)
func (h *FilmHandler) CreateFilm(w http.ResponseWriter, r *http.Request) {
	var req request.FilmRequest
	if err := decodeBody(r, &req, false); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	film, err := h.service.CreateFilm(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create film")
		return
	}

	utils.ResponseCreated(w, "Film created successfully", film)
}

// UpdateFilm handles PUT /api/films/{id} (protected)
func (h *FilmHandler) UpdateFilm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid film ID", nil)
		return
	}

	var req request.FilmRequest
	if err := decodeBody(r, &req, false); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	film, err := h.service.UpdateFilm(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err, "update film")
		return
	}

	utils.ResponseSuccess(w, "Film updated successfully", film)
}

// DeleteFilm handles DELETE /api/films/{id} (protected)
func (h *FilmHandler) DeleteFilm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid film ID", nil)
		return
	}

	if err := h.service.DeleteFilm(r.Context(), id); err != nil {
		h.handleServiceError(w, err, "delete film")
		return
	}

	utils.ResponseNoContent(w)
}

// PreviewImport handles POST /api/films/import-from-tmdb/preview (public)
func (h *FilmHandler) PreviewImport(w http.ResponseWriter, r *http.Request) {
	var req request.ImportRequest
	if err := decodeBody(r, &req, true); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	preview, err := h.imports.PreviewImport(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "preview import")
		return
	}

	utils.ResponseSuccess(w, preview.Message, preview)
}

// ImportFilms handles POST /api/films/import-from-tmdb (protected)
func (h *FilmHandler) ImportFilms(w http.ResponseWriter, r *http.Request) {
	var req request.ImportRequest
	if err := decodeBody(r, &req, true); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	summary, err := h.imports.Import(r.Context(), &req)
	if err != nil {
		// A summary means some films were committed before the failure.
		if summary != nil && !errors.Is(err, usecase.ErrProvider) {
			h.log.Error("Import stopped early", zap.Error(err))
			utils.ResponseInternalErrorWithData(w, summary.Message, summary)
			return
		}
		h.handleServiceError(w, err, "import films")
		return
	}

	utils.ResponseSuccess(w, summary.Message, summary)
}

// SearchProvider handles POST /api/films/search-tmdb (public)
func (h *FilmHandler) SearchProvider(w http.ResponseWriter, r *http.Request) {
	var req request.SearchProviderRequest
	if err := decodeBody(r, &req, false); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	results, err := h.imports.SearchProvider(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "search tmdb")
		return
	}

	utils.ResponseSuccess(w, results.Message, results)
}
