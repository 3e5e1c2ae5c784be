package profanity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_Mask(t *testing.T) {
	f := Default()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean text untouched", "A slow but rewarding film.", "A slow but rewarding film."},
		{"lexicon word", "What a damn ending", "What a **** ending"},
		{"case insensitive", "DAMN good", "**** good"},
		{"pattern inside word", "fuuuckin great", "******in great"},
		{"leet spelling", "pure $h1t plot", "pure **** plot"},
		{"non ascii word", "tam bir piç", "tam bir ***"},
		{"punctuation kept", "crap!", "****!"},
		{"transliterated word", "bok gibi film", "*** gibi film"},
		{"english got untouched", "I got the ending", "I got the ending"},
		{"blank", "   ", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Mask(tt.in))
		})
	}
}

func TestFilter_Contains(t *testing.T) {
	f := Default()

	assert.True(t, f.Contains("this is shit"))
	assert.True(t, f.Contains("Siktir git"))
	assert.False(t, f.Contains("a perfectly fine review"))
	assert.False(t, f.Contains(""))
}

func TestNew_BadPattern(t *testing.T) {
	_, err := New(nil, []string{"("})
	require.Error(t, err)
}
