package usecase

import (
	"strings"

	"watchhub/internal/dto/request"
)

type filmRefKind int

const (
	refByExternalID filmRefKind = iota + 1
	refByExactName
)

// FilmRef names a film either by provider id, with optional attributes to
// create it from, or by its exact stored name.
type FilmRef struct {
	kind       filmRefKind
	externalID int64
	name       string
	seed       *request.FilmSeed
}

// ByExternalID refers to the film with the given tmdb id. When no such film
// is stored it is created from seed, or from the provider when seed has no
// name.
func ByExternalID(id int64, seed *request.FilmSeed) FilmRef {
	return FilmRef{kind: refByExternalID, externalID: id, seed: seed}
}

// ByExactName refers to an already stored film.
func ByExactName(name string) FilmRef {
	return FilmRef{kind: refByExactName, name: strings.TrimSpace(name)}
}

// filmRefFromRequest picks the reference once at the entry point.
func filmRefFromRequest(tmdbID *int64, seed *request.FilmSeed) (FilmRef, error) {
	if tmdbID != nil {
		return ByExternalID(*tmdbID, seed), nil
	}
	if seed != nil && strings.TrimSpace(seed.Name) != "" {
		return ByExactName(seed.Name), nil
	}
	return FilmRef{}, invalid("either tmdb_id or name is required")
}
