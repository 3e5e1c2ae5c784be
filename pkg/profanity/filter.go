// Package profanity masks offensive words in user text using a word lexicon
// and a set of spelling-variant patterns.
package profanity

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var defaultWords = []string{
	// Turkish
	"amk", "aq", "mk", "oç", "og", "siktir", "sikerim", "amına", "amina", "götünü", "gotunu",
	"piç", "pic", "yarak", "taşak", "tasak", "göt", "bok", "pezevenk",
	// English
	"fuck", "shit", "bitch", "asshole", "bastard", "damn", "crap", "dick",
	// digit spellings
	"s1kt1r", "s1kerim", "4mk", "0c", "p1c",
}

var defaultPatterns = []string{
	`[a@4]m+[k1!]+`,
	`[a@4]q+`,
	`[s$5][i1!]k+t+[i1!]r+`,
	`[o0]ç+`,
	`p+[i1!]ç+`,
	`f+u+c+k+`,
	`[s$5]h+[i1!]+t+`,
}

var tokenRe = regexp.MustCompile(`[\p{L}\p{N}@$!]+`)

// Filter holds the compiled lexicon. It is safe for concurrent use.
type Filter struct {
	words    map[string]struct{}
	patterns []*regexp.Regexp
}

// New compiles a filter. Patterns are matched case-insensitively against
// single tokens so they cannot span words.
func New(words, patterns []string) (*Filter, error) {
	f := &Filter{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		f.words[strings.ToLower(w)] = struct{}{}
	}
	for _, p := range patterns {
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			return nil, err
		}
		f.patterns = append(f.patterns, re)
	}
	return f, nil
}

// Default returns the built-in Turkish and English lexicon.
func Default() *Filter {
	f, err := New(defaultWords, defaultPatterns)
	if err != nil {
		panic(err)
	}
	return f
}

// Contains reports whether any token of text is profane.
func (f *Filter) Contains(text string) bool {
	for _, tok := range tokenRe.FindAllString(text, -1) {
		if f.isWord(strings.TrimRight(tok, "!")) || f.matchesPattern(tok) {
			return true
		}
	}
	return false
}

// Mask replaces profane words and pattern matches with '*', one per rune.
func (f *Filter) Mask(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	return tokenRe.ReplaceAllStringFunc(text, func(tok string) string {
		if word := strings.TrimRight(tok, "!"); f.isWord(word) {
			return stars(word) + tok[len(word):]
		}
		for _, re := range f.patterns {
			tok = re.ReplaceAllStringFunc(tok, stars)
		}
		return tok
	})
}

func (f *Filter) isWord(tok string) bool {
	_, ok := f.words[strings.ToLower(tok)]
	return ok
}

func (f *Filter) matchesPattern(tok string) bool {
	for _, re := range f.patterns {
		if re.MatchString(tok) {
			return true
		}
	}
	return false
}

func stars(s string) string {
	return strings.Repeat("*", utf8.RuneCountInString(s))
}
