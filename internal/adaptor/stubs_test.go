package adaptor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"watchhub/internal/data/entity"
	"watchhub/internal/dto/request"
	"watchhub/internal/dto/response"
	"watchhub/internal/usecase"
	"watchhub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubFilmService struct {
	usecase.FilmService
	lastQuery *request.FilmListQuery
	getFilms  func(*request.FilmListQuery) (*response.PaginatedResponse[response.FilmResponse], error)
	getByID   func(int64) (*response.FilmResponse, error)
	search    func(string) ([]response.FilmResponse, error)
	create    func(*request.FilmRequest) (*response.FilmResponse, error)
	delete    func(int64) error
}

func (s *stubFilmService) GetFilms(_ context.Context, q *request.FilmListQuery) (*response.PaginatedResponse[response.FilmResponse], error) {
	s.lastQuery = q
	return s.getFilms(q)
}

func (s *stubFilmService) GetFilmByID(_ context.Context, id int64) (*response.FilmResponse, error) {
	return s.getByID(id)
}

func (s *stubFilmService) SearchFilmsByName(_ context.Context, name string) ([]response.FilmResponse, error) {
	return s.search(name)
}

func (s *stubFilmService) CreateFilm(_ context.Context, req *request.FilmRequest) (*response.FilmResponse, error) {
	return s.create(req)
}

func (s *stubFilmService) DeleteFilm(_ context.Context, id int64) error {
	return s.delete(id)
}

func (s *stubFilmService) ResolveFilm(context.Context, usecase.FilmRef) (*entity.Film, error) {
	return nil, nil
}

type stubImportService struct {
	preview    func(*request.ImportRequest) (*response.ProviderFilmsResponse, error)
	importFn   func(*request.ImportRequest) (*response.ImportSummary, error)
	searchFunc func(*request.SearchProviderRequest) (*response.ProviderFilmsResponse, error)
}

func (s *stubImportService) PreviewImport(_ context.Context, req *request.ImportRequest) (*response.ProviderFilmsResponse, error) {
	return s.preview(req)
}

func (s *stubImportService) Import(_ context.Context, req *request.ImportRequest) (*response.ImportSummary, error) {
	return s.importFn(req)
}

func (s *stubImportService) SearchProvider(_ context.Context, req *request.SearchProviderRequest) (*response.ProviderFilmsResponse, error) {
	return s.searchFunc(req)
}

type stubCommentService struct {
	usecase.CommentService
	createWithFilm func(uuid.UUID, *request.CreateCommentWithFilmRequest) (*response.CommentResponse, error)
	update         func(uuid.UUID, int64, *request.UpdateCommentRequest) (*response.CommentResponse, error)
}

func (s *stubCommentService) CreateCommentWithFilm(_ context.Context, userID uuid.UUID, req *request.CreateCommentWithFilmRequest) (*response.CommentResponse, error) {
	return s.createWithFilm(userID, req)
}

func (s *stubCommentService) UpdateComment(_ context.Context, userID uuid.UUID, id int64, req *request.UpdateCommentRequest) (*response.CommentResponse, error) {
	return s.update(userID, id, req)
}

type stubLikeService struct {
	usecase.LikeService
	like   func(uuid.UUID, int64) (*response.CommentResponse, error)
	unlike func(uuid.UUID, int64) (*response.CommentResponse, error)
}

func (s *stubLikeService) LikeComment(_ context.Context, userID uuid.UUID, id int64) (*response.CommentResponse, error) {
	return s.like(userID, id)
}

func (s *stubLikeService) UnlikeComment(_ context.Context, userID uuid.UUID, id int64) (*response.CommentResponse, error) {
	return s.unlike(userID, id)
}

type envelope struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

// serve routes a single request through a chi router so path params
// resolve the same way as in production.
func serve(t *testing.T, method, pattern, target, body string, h http.HandlerFunc, user *uuid.UUID) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	r := chi.NewRouter()
	r.MethodFunc(method, pattern, h)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if user != nil {
		req = req.WithContext(utils.SetUserContext(req.Context(), *user, "ada"))
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}
