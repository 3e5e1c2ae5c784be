package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"watchhub/internal/data/entity"
	"watchhub/internal/data/repository"
	"watchhub/pkg/cache"
	"watchhub/pkg/profanity"
	"watchhub/pkg/tmdb"
	"watchhub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var testTTL = utils.CacheConfig{
	DefaultTTL:  time.Hour,
	DetailTTL:   24 * time.Hour,
	ListTTL:     6 * time.Hour,
	ProviderTTL: 6 * time.Hour,
	SearchTTL:   time.Hour,
}

// fakeFilmRepo keeps films in memory with the same merge semantics as the
// SQL upsert.
type fakeFilmRepo struct {
	mu        sync.Mutex
	films     map[int64]*entity.Film
	nextID    int64
	listCalls int
	// failMerge, when set, is consulted before every merge.
	failMerge func(f *entity.Film) error
	// staleLookups makes the next n tmdb id lookups miss, as if another
	// request inserted the film right after the check.
	staleLookups int
	comments     *fakeCommentRepo
}

// mergeFilm copies every mutable attribute of src onto dst.
func mergeFilm(dst, src *entity.Film) {
	id, tmdbID, created := dst.ID, dst.TmdbID, dst.CreatedAt
	*dst = *src
	dst.ID, dst.TmdbID, dst.CreatedAt = id, tmdbID, created
	dst.UpdatedAt = time.Now()
	dst.Comments = nil
}

func (r *fakeFilmRepo) byExternalID(tmdbID int64) *entity.Film {
	for _, f := range r.films {
		if f.TmdbID != nil && *f.TmdbID == tmdbID {
			return f
		}
	}
	return nil
}

func newFakeFilmRepo() *fakeFilmRepo {
	return &fakeFilmRepo{films: map[int64]*entity.Film{}}
}

func (r *fakeFilmRepo) clone(f *entity.Film) *entity.Film {
	c := *f
	if r.comments != nil {
		c.Comments = r.comments.byFilm(f.ID)
	}
	return &c
}

func (r *fakeFilmRepo) add(f *entity.Film) *entity.Film {
	r.nextID++
	f.ID = r.nextID
	f.CreatedAt = time.Now()
	f.UpdatedAt = f.CreatedAt
	stored := *f
	r.films[f.ID] = &stored
	return f
}

func (r *fakeFilmRepo) filter(q repository.FilmQuery) []*entity.Film {
	var out []*entity.Film
	for _, f := range r.films {
		if q.Name != "" && !strings.Contains(strings.ToLower(f.Name), strings.ToLower(q.Name)) {
			continue
		}
		if q.Genre != "" && !strings.Contains(strings.ToLower(f.Genre), strings.ToLower(q.Genre)) {
			continue
		}
		if q.MinYear != nil && f.ReleaseYear < *q.MinYear {
			continue
		}
		if q.MaxYear != nil && f.ReleaseYear > *q.MaxYear {
			continue
		}
		out = append(out, f)
	}
	return out
}

func (r *fakeFilmRepo) List(_ context.Context, q repository.FilmQuery) ([]*entity.Film, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++

	films := r.filter(q)
	sort.Slice(films, func(i, j int) bool {
		a, b := films[i], films[j]
		var less, equal bool
		switch q.SortBy {
		case repository.SortByName:
			less, equal = a.Name < b.Name, a.Name == b.Name
		case repository.SortByGenre:
			less, equal = a.Genre < b.Genre, a.Genre == b.Genre
		case repository.SortByReleaseYear:
			less, equal = a.ReleaseYear < b.ReleaseYear, a.ReleaseYear == b.ReleaseYear
		default:
			return a.ID < b.ID
		}
		if equal {
			return a.ID < b.ID
		}
		if q.Descending {
			return !less
		}
		return less
	})

	if q.PageSize > 0 {
		start := utils.CalculateOffset(q.Page, q.PageSize)
		if start > len(films) {
			start = len(films)
		}
		end := min(start+q.PageSize, len(films))
		films = films[start:end]
	}

	out := make([]*entity.Film, 0, len(films))
	for _, f := range films {
		c := *f
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakeFilmRepo) Count(_ context.Context, q repository.FilmQuery) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.filter(q))), nil
}

func (r *fakeFilmRepo) FindByID(_ context.Context, id int64) (*entity.Film, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.films[id]; ok {
		return r.clone(f), nil
	}
	return nil, nil
}

func (r *fakeFilmRepo) FindByExternalID(_ context.Context, tmdbID int64) (*entity.Film, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.staleLookups > 0 {
		r.staleLookups--
		return nil, nil
	}
	if f := r.byExternalID(tmdbID); f != nil {
		return r.clone(f), nil
	}
	return nil, nil
}

func (r *fakeFilmRepo) FindByExactName(_ context.Context, name string) (*entity.Film, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.films {
		if f.Name == name {
			c := *f
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeFilmRepo) FindByNameContains(ctx context.Context, name string) ([]*entity.Film, error) {
	return r.List(ctx, repository.FilmQuery{Name: name})
}

func (r *fakeFilmRepo) Create(_ context.Context, film *entity.Film) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if film.TmdbID != nil && r.byExternalID(*film.TmdbID) != nil {
		return fmt.Errorf("failed to create film: %w", repository.ErrDuplicateExternalID)
	}
	r.add(film)
	return nil
}

func (r *fakeFilmRepo) CreateIfAbsent(_ context.Context, film *entity.Film) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byExternalID(*film.TmdbID) != nil {
		return false, nil
	}
	r.add(film)
	return true, nil
}

func (r *fakeFilmRepo) MergeOrCreate(_ context.Context, film *entity.Film) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failMerge != nil {
		if err := r.failMerge(film); err != nil {
			return false, err
		}
	}

	if film.TmdbID != nil {
		if existing := r.byExternalID(*film.TmdbID); existing != nil {
			mergeFilm(existing, film)
			*film = *existing
			return false, nil
		}
	}

	r.add(film)
	return true, nil
}

func (r *fakeFilmRepo) Update(_ context.Context, id int64, film *entity.Film) (*entity.Film, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.films[id]
	if !ok {
		return nil, nil
	}
	mergeFilm(existing, film)
	c := *existing
	return &c, nil
}

func (r *fakeFilmRepo) Delete(_ context.Context, id int64) (*entity.Film, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.films[id]
	if !ok {
		return nil, nil
	}
	delete(r.films, id)
	return existing, nil
}

func (r *fakeFilmRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.films[id]
	return ok, nil
}

func (r *fakeFilmRepo) ExistsByExternalID(ctx context.Context, tmdbID int64) (bool, error) {
	f, err := r.FindByExternalID(ctx, tmdbID)
	return f != nil, err
}

func (r *fakeFilmRepo) countByExternalID(tmdbID int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, f := range r.films {
		if f.TmdbID != nil && *f.TmdbID == tmdbID {
			n++
		}
	}
	return n
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[int64]*entity.Comment
	nextID   int64
	users    map[uuid.UUID]string
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[int64]*entity.Comment{}, users: map[uuid.UUID]string{}}
}

func (r *fakeCommentRepo) withAuthor(c *entity.Comment) *entity.Comment {
	out := *c
	if c.UserID != nil {
		if name, ok := r.users[*c.UserID]; ok {
			out.CreatedBy = &name
		}
	}
	return &out
}

func (r *fakeCommentRepo) byFilm(filmID int64) []*entity.Comment {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Comment
	for _, c := range r.comments {
		if c.FilmID != nil && *c.FilmID == filmID {
			out = append(out, r.withAuthor(c))
		}
	}
	return out
}

func (r *fakeCommentRepo) FindAll(_ context.Context) ([]*entity.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Comment{}
	for _, c := range r.comments {
		out = append(out, r.withAuthor(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeCommentRepo) FindByID(_ context.Context, id int64) (*entity.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.comments[id]; ok {
		return r.withAuthor(c), nil
	}
	return nil, nil
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	comment.ID = r.nextID
	comment.CreatedAt = time.Now()
	stored := *comment
	r.comments[comment.ID] = &stored
	return nil
}

func (r *fakeCommentRepo) Update(_ context.Context, id int64, starRating int, content string) (*entity.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, nil
	}
	c.StarRating = starRating
	c.Content = content
	return r.withAuthor(c), nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id int64) (*entity.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, nil
	}
	delete(r.comments, id)
	return r.withAuthor(c), nil
}

type likeKey struct {
	user    uuid.UUID
	comment int64
}

type fakeLikeRepo struct {
	mu       sync.Mutex
	likes    map[likeKey]time.Time
	comments *fakeCommentRepo
}

func (r *fakeLikeRepo) recount(commentID int64) {
	n := 0
	for k := range r.likes {
		if k.comment == commentID {
			n++
		}
	}
	r.comments.mu.Lock()
	if c, ok := r.comments.comments[commentID]; ok {
		c.NumberOfLikes = n
	}
	r.comments.mu.Unlock()
}

func (r *fakeLikeRepo) Like(_ context.Context, userID uuid.UUID, commentID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := likeKey{userID, commentID}
	if _, ok := r.likes[k]; ok {
		return false, nil
	}
	r.likes[k] = time.Now()
	r.recount(commentID)
	return true, nil
}

func (r *fakeLikeRepo) Unlike(_ context.Context, userID uuid.UUID, commentID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := likeKey{userID, commentID}
	if _, ok := r.likes[k]; !ok {
		return false, nil
	}
	delete(r.likes, k)
	r.recount(commentID)
	return true, nil
}

func (r *fakeLikeRepo) FindCommentsLikedBy(ctx context.Context, userID uuid.UUID) ([]*entity.Comment, error) {
	r.mu.Lock()
	var ids []int64
	for k := range r.likes {
		if k.user == userID {
			ids = append(ids, k.comment)
		}
	}
	r.mu.Unlock()

	out := []*entity.Comment{}
	for _, id := range ids {
		c, _ := r.comments.FindByID(ctx, id)
		if c != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakePortfolioRepo struct {
	mu      sync.Mutex
	entries map[uuid.UUID][]int64
	films   *fakeFilmRepo
}

func (r *fakePortfolioRepo) FindFilmsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Film, error) {
	r.mu.Lock()
	ids := append([]int64(nil), r.entries[userID]...)
	r.mu.Unlock()

	out := []*entity.Film{}
	for _, id := range ids {
		f, _ := r.films.FindByID(ctx, id)
		if f != nil {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakePortfolioRepo) has(userID uuid.UUID, filmID int64) bool {
	for _, id := range r.entries[userID] {
		if id == filmID {
			return true
		}
	}
	return false
}

func (r *fakePortfolioRepo) Add(_ context.Context, userID uuid.UUID, filmID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.has(userID, filmID) {
		return false, nil
	}
	r.entries[userID] = append(r.entries[userID], filmID)
	return true, nil
}

func (r *fakePortfolioRepo) Remove(_ context.Context, userID uuid.UUID, filmID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := r.entries[userID]
	for i, id := range ids {
		if id == filmID {
			r.entries[userID] = append(ids[:i], ids[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// fakeProvider serves canned pages. pages[n] is what page n returns.
type fakeProvider struct {
	mu           sync.Mutex
	pages        map[int][]tmdb.Film
	details      map[int64]tmdb.Film
	err          error
	popularCalls int
	searchCalls  int
	detailCalls  int
}

func (p *fakeProvider) FetchPopular(_ context.Context, page, limit int, _ *int) ([]tmdb.Film, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.popularCalls++
	if p.err != nil {
		return nil, p.err
	}
	films := p.pages[page]
	if len(films) > limit {
		films = films[:limit]
	}
	return append([]tmdb.Film(nil), films...), nil
}

func (p *fakeProvider) FetchDetails(_ context.Context, id int64) (*tmdb.Film, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.detailCalls++
	if p.err != nil {
		return nil, p.err
	}
	f, ok := p.details[id]
	if !ok {
		return nil, tmdb.ErrNotFound
	}
	return &f, nil
}

func (p *fakeProvider) Search(_ context.Context, query string, page, limit int) ([]tmdb.Film, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.searchCalls++
	if p.err != nil {
		return nil, p.err
	}
	var out []tmdb.Film
	for _, f := range p.details {
		if strings.Contains(strings.ToLower(f.Name), strings.ToLower(query)) {
			out = append(out, f)
		}
	}
	return out, nil
}

type testEnv struct {
	films     *fakeFilmRepo
	comments  *fakeCommentRepo
	likes     *fakeLikeRepo
	portfolio *fakePortfolioRepo
	provider  *fakeProvider
	store     *cache.MemoryStore
	cache     *cache.Cache
	repo      *repository.Repository
	svc       *Service
}

func newTestEnv() *testEnv {
	films := newFakeFilmRepo()
	comments := newFakeCommentRepo()
	films.comments = comments

	env := &testEnv{
		films:     films,
		comments:  comments,
		likes:     &fakeLikeRepo{likes: map[likeKey]time.Time{}, comments: comments},
		portfolio: &fakePortfolioRepo{entries: map[uuid.UUID][]int64{}, films: films},
		provider:  &fakeProvider{pages: map[int][]tmdb.Film{}, details: map[int64]tmdb.Film{}},
		store:     cache.NewMemoryStore(),
	}
	env.cache = cache.New(env.store, "test:", time.Hour, zap.NewNop())
	env.repo = &repository.Repository{
		Film:        films,
		Comment:     comments,
		CommentLike: env.likes,
		Portfolio:   env.portfolio,
	}
	env.svc = NewService(env.repo, env.cache, env.provider, profanity.Default(),
		&utils.Config{Cache: testTTL}, zap.NewNop())
	return env
}

func (e *testEnv) cached(key string) bool {
	_, err := e.store.Get(context.Background(), "test:"+key)
	return err == nil
}

func providerFilm(id int64, name string) tmdb.Film {
	trailer := "https://www.youtube.com/watch?v=" + name
	return tmdb.Film{
		ExternalID:  id,
		Name:        name,
		Rating:      7.1,
		Description: name + " description",
		Genre:       "Drama",
		Director:    "Someone",
		LeadActors:  "A, B, C",
		ReleaseYear: 2001,
		Duration:    120,
		Platform:    tmdb.PlatformLabel,
		TrailerURL:  &trailer,
	}
}

var errDatabaseDown = errors.New("database down")
