package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSanitize(t *testing.T, method, body string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		seen = string(b)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(method, "/api/comments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	SanitizeJSON()(next).ServeHTTP(rec, req)
	return rec, seen
}

func TestSanitizeJSON_StripsNestedHTML(t *testing.T) {
	rec, seen := runSanitize(t, http.MethodPost,
		`{"content":"<script>alert(1)</script>Great <b>film</b> & more","star_rating":5,"tags":["<i>a</i>"],"seed":{"name":"<a href='x'>Heat</a>"}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"content":"Great film & more","star_rating":5,"tags":["a"],"seed":{"name":"Heat"}}`,
		seen)
}

func TestSanitizeJSON_StripsEntityEncodedHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"encoded tag", `&lt;img src=x onerror=alert(1)&gt;nice`, "nice"},
		{"encoded script", `&lt;script&gt;alert(1)&lt;/script&gt;ok`, "ok"},
		{"double encoded", `&amp;lt;b&amp;gt;bold&amp;lt;/b&amp;gt;`, "bold"},
		{"plain ampersand", `Fast &amp; Furious`, "Fast & Furious"},
		{"less than in text", `a < b`, "a < b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := json.Marshal(map[string]string{"content": tt.in})
			require.NoError(t, err)

			rec, seen := runSanitize(t, http.MethodPost, string(body))
			require.Equal(t, http.StatusOK, rec.Code)

			var got map[string]string
			require.NoError(t, json.Unmarshal([]byte(seen), &got))
			assert.Equal(t, tt.want, got["content"])
			assert.NotContains(t, got["content"], "<img")
			assert.NotContains(t, got["content"], "<script")
		})
	}
}

func TestSanitizeJSON_KeepsLargeIntegers(t *testing.T) {
	_, seen := runSanitize(t, http.MethodPut, `{"tmdb_id":9007199254740993}`)
	assert.JSONEq(t, `{"tmdb_id":9007199254740993}`, seen)
}

func TestSanitizeJSON_SkipsReads(t *testing.T) {
	_, seen := runSanitize(t, http.MethodGet, `<b>untouched</b>`)
	assert.Equal(t, `<b>untouched</b>`, seen)
}

func TestSanitizeJSON_EmptyBody(t *testing.T) {
	rec, seen := runSanitize(t, http.MethodPost, ``)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, seen)
}

func TestSanitizeJSON_MalformedBody(t *testing.T) {
	rec, _ := runSanitize(t, http.MethodPost, `{"content":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Malformed JSON")
}
