package cache

import (
	"net/url"
	"strings"

	"golang.org/x/text/cases"
)

const keySep = ":"

// Key joins a namespace and its parts into a cache key.
func Key(namespace string, parts ...string) string {
	return namespace + keySep + strings.Join(parts, keySep)
}

// NormalizeText case-folds free text and replaces whitespace runs with "_".
// The result is escaped so it cannot introduce separators or glob characters.
func NormalizeText(s string) string {
	folded := cases.Fold().String(strings.TrimSpace(s))
	return url.QueryEscape(strings.Join(strings.Fields(folded), "_"))
}
