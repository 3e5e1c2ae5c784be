package usecase

import (
	"strconv"

	"watchhub/internal/data/repository"
	"watchhub/pkg/cache"
)

const (
	nsFilms    = "films"
	nsProvider = "tmdb"
)

// filmListPattern matches every cached film listing.
var filmListPattern = cache.Key(nsFilms, "list", "*")

// filmListKey encodes every parameter that changes a listing.
func filmListKey(q repository.FilmQuery) string {
	return cache.Key(nsFilms, "list",
		"name="+cache.NormalizeText(q.Name),
		"genre="+cache.NormalizeText(q.Genre),
		"min="+optInt(q.MinYear),
		"max="+optInt(q.MaxYear),
		"sort="+string(q.SortBy),
		"desc="+strconv.FormatBool(q.Descending),
		"page="+strconv.Itoa(q.Page),
		"size="+strconv.Itoa(q.PageSize),
	)
}

func filmDetailKey(id int64) string {
	return cache.Key(nsFilms, "detail", strconv.FormatInt(id, 10))
}

func providerListKey(genreID *int, page, limit int) string {
	feed := "popular"
	if genreID != nil {
		feed = "genre=" + strconv.Itoa(*genreID)
	}
	return cache.Key(nsProvider, feed, "p="+strconv.Itoa(page), "l="+strconv.Itoa(limit))
}

func providerSearchKey(query string, page, limit int) string {
	return cache.Key(nsProvider, "search",
		"q="+cache.NormalizeText(query),
		"p="+strconv.Itoa(page),
		"l="+strconv.Itoa(limit),
	)
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
