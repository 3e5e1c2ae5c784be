package middleware

import (
	"bytes"
	"encoding/json"
	"html"
	"io"
	"net/http"
	"strconv"

	"watchhub/pkg/utils"

	"github.com/microcosm-cc/bluemonday"
)

// SanitizeJSON strips HTML from every string in a JSON request body on
// POST, PUT and PATCH. Nested objects and arrays are walked too.
func SanitizeJSON() func(http.Handler) http.Handler {
	policy := bluemonday.StrictPolicy()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost &&
				r.Method != http.MethodPut &&
				r.Method != http.MethodPatch {
				next.ServeHTTP(w, r)
				return
			}

			buf, err := io.ReadAll(r.Body)
			if err != nil {
				utils.ResponseBadRequest(w, "Invalid request body", nil)
				return
			}
			_ = r.Body.Close()

			// Bodiless writes such as like toggles pass through untouched.
			if len(bytes.TrimSpace(buf)) == 0 {
				r.Body = io.NopCloser(bytes.NewReader(buf))
				next.ServeHTTP(w, r)
				return
			}

			var body any
			dec := json.NewDecoder(bytes.NewReader(buf))
			dec.UseNumber()
			if err := dec.Decode(&body); err != nil {
				utils.ResponseBadRequest(w, "Malformed JSON", nil)
				return
			}

			cleaned, err := json.Marshal(sanitizeValue(policy, body))
			if err != nil {
				utils.ResponseBadRequest(w, "Malformed JSON", nil)
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(cleaned))
			r.ContentLength = int64(len(cleaned))
			r.Header.Set("Content-Length", strconv.Itoa(len(cleaned)))

			next.ServeHTTP(w, r)
		})
	}
}

func sanitizeValue(policy *bluemonday.Policy, v any) any {
	switch val := v.(type) {
	case string:
		return plainText(policy, val)
	case map[string]any:
		for k, item := range val {
			val[k] = sanitizeValue(policy, item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = sanitizeValue(policy, item)
		}
		return val
	default:
		return v
	}
}

// maxSanitizeRounds bounds the unescape/strip loop for deeply encoded input.
const maxSanitizeRounds = 8

// plainText unescapes and strips markup until the text stops changing, so
// entity-encoded tags are removed as well instead of being decoded into
// live markup. Input that never settles keeps the policy's escaped form.
func plainText(policy *bluemonday.Policy, s string) string {
	for range maxSanitizeRounds {
		next := html.UnescapeString(policy.Sanitize(html.UnescapeString(s)))
		if next == s {
			return s
		}
		s = next
	}
	return policy.Sanitize(s)
}
