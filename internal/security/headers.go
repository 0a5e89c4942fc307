package security

import (
	"net/http"

	"github.com/unrolled/secure"
)

// Header はレスポンスヘッダーのキーと値
type Header struct {
	Key   string
	Value string
}

// extraHeaders は secure.Options で表現できないハードニング既定値
var extraHeaders = []Header{
	{"Cross-Origin-Opener-Policy", "same-origin"},
	{"Cross-Origin-Resource-Policy", "same-origin"},
	{"Origin-Agent-Cluster", "?1"},
	{"X-DNS-Prefetch-Control", "off"},
	{"X-Download-Options", "noopen"},
	{"X-Permitted-Cross-Domain-Policies", "none"},
}

// Options はポリシーから secure.Options を組み立てる
func Options(policy Policy) secure.Options {
	return secure.Options{
		ContentSecurityPolicy:   policy.String(),
		ReferrerPolicy:          "no-referrer",
		STSSeconds:              31536000,
		STSIncludeSubdomains:    true,
		ForceSTSHeader:          true,
		CustomFrameOptionsValue: "SAMEORIGIN",
		ContentTypeNosniff:      true,
		BrowserXssFilter:        true,
		CustomBrowserXssValue:   "0",
	}
}

// Middleware はすべてのレスポンスにセキュリティヘッダーを付与するミドルウェアを返す
func Middleware(policy Policy) func(http.Handler) http.HandlerFunc {
	sec := secure.New(Options(policy))
	return func(next http.Handler) http.HandlerFunc {
		h := sec.Handler(next)
		return func(w http.ResponseWriter, r *http.Request) {
			for _, hdr := range extraHeaders {
				w.Header().Set(hdr.Key, hdr.Value)
			}
			h.ServeHTTP(w, r)
		}
	}
}
