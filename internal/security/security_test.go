package security

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestDefaultPolicyDirectives(t *testing.T) {
	p := DefaultPolicy()

	testCases := []struct {
		directive string
		want      []string
	}{
		{"frame-src", []string{"'self'"}},
		{"worker-src", []string{"'self'", "blob:"}},
		{"connect-src", []string{"'self'", "https:"}},
		{"media-src", []string{"'self'", "https:", "blob:"}},
		{"img-src", []string{"'self'", "data:", "https:", "blob:"}},
		{"font-src", []string{"'self'", "https://fonts.gstatic.com", "https://cdnjs.cloudflare.com"}},
		{"object-src", []string{"'none'"}},
		{"frame-ancestors", []string{"'self'"}},
	}

	for _, tc := range testCases {
		t.Run(tc.directive, func(t *testing.T) {
			got, ok := p.Get(tc.directive)
			assert.Assert(t, ok)
			assert.Check(t, is.DeepEqual(got, tc.want))
		})
	}
}

func TestPolicyWithDefaultsKeepsExplicitDirectives(t *testing.T) {
	p := Policy{{"script-src", []string{Self, "https://example.com"}}}.WithDefaults()

	got, _ := p.Get("script-src")
	assert.Check(t, is.DeepEqual(got, []string{Self, "https://example.com"}))

	count := 0
	for _, d := range p {
		if d.Name == "script-src" {
			count++
		}
	}
	assert.Check(t, is.Equal(count, 1))
}

func TestPolicyString(t *testing.T) {
	p := Policy{
		{"default-src", []string{Self}},
		{"img-src", []string{Self, SchemeData}},
		{"upgrade-insecure-requests", nil},
	}
	assert.Check(t, is.Equal(p.String(), "default-src 'self'; img-src 'self' data:; upgrade-insecure-requests"))
}

func TestMiddlewareSetsHeaders(t *testing.T) {
	h := Middleware(DefaultPolicy())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/anything", nil))

	assert.Check(t, is.Equal(rec.Code, http.StatusTeapot))
	csp := rec.Header().Get(HeaderCSP)
	assert.Check(t, strings.Contains(csp, "frame-src 'self'"), csp)
	assert.Check(t, strings.Contains(csp, "https://cdn.plyr.io"), csp)

	want := map[string]string{
		"X-Content-Type-Options":       "nosniff",
		"X-Frame-Options":              "SAMEORIGIN",
		"X-XSS-Protection":             "0",
		"Referrer-Policy":              "no-referrer",
		"Strict-Transport-Security":    "max-age=31536000; includeSubDomains",
		"Cross-Origin-Opener-Policy":   "same-origin",
		"Cross-Origin-Resource-Policy": "same-origin",
		"Origin-Agent-Cluster":         "?1",
		"X-DNS-Prefetch-Control":       "off",
	}
	for k, v := range want {
		assert.Check(t, is.Equal(rec.Header().Get(k), v), k)
	}
}
