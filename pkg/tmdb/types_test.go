package tmdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovieDetails_ToFilm_Fallbacks(t *testing.T) {
	m := movieDetails{ID: 3, Runtime: -5}

	f := m.toFilm("https://img.example/t/p")

	assert.Equal(t, "Unknown", f.Name)
	assert.Equal(t, "Unknown", f.Genre)
	assert.Equal(t, "Unknown", f.Director)
	assert.Equal(t, "Unknown", f.LeadActors)
	assert.Equal(t, 0, f.ReleaseYear)
	assert.Equal(t, 0, f.Duration)
	assert.Empty(t, f.CoverImageURL)
	assert.Nil(t, f.TrailerURL)
	assert.Equal(t, "TMDB", f.Platform)
}

func TestReleaseYear(t *testing.T) {
	assert.Equal(t, 2024, releaseYear("2024-03-01"))
	assert.Equal(t, 0, releaseYear(""))
	assert.Equal(t, 0, releaseYear("2024"))
	assert.Equal(t, 0, releaseYear("not-a-date"))
}
