package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "The Matrix", "the_matrix"},
		{"collapses whitespace", "  star   wars\tIV ", "star_wars_iv"},
		{"unicode fold", "AMÉLIE", "am%C3%A9lie"},
		{"escapes separators", "a:b", "a%3Ab"},
		{"escapes glob", "x*", "x%2A"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.in))
		})
	}
}

func TestNormalizeText_SameQuerySameKey(t *testing.T) {
	assert.Equal(t, NormalizeText("Blade Runner"), NormalizeText("blade  RUNNER"))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "films:detail:12", Key("films", "detail", "12"))
	assert.Equal(t, "tmdb:", Key("tmdb"))
}
