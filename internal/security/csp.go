package security

import (
	"strings"
)

// CSPのソース指定子
const (
	Self         = "'self'"
	None         = "'none'"
	UnsafeInline = "'unsafe-inline'"
	UnsafeEval   = "'unsafe-eval'"
	SchemeData   = "data:"
	SchemeHTTPS  = "https:"
	SchemeBlob   = "blob:"
)

// HeaderCSP はポリシーを載せるヘッダー名
const HeaderCSP = "Content-Security-Policy"

const (
	directiveSep = "; "
	sourceSep    = " "
)

// Directive はCSPの1ディレクティブ
type Directive struct {
	Name    string
	Sources []string
}

// Policy はディレクティブの順序付きリスト
type Policy []Directive

// DefaultPolicy はサイトで使うCDNとフォントを許可したポリシーを返す
func DefaultPolicy() Policy {
	return Policy{
		{"default-src", []string{Self}},
		{"script-src", []string{
			Self,
			UnsafeInline,
			UnsafeEval,
			"https://unpkg.com",
			"https://ajax.googleapis.com",
			"https://cdn.jsdelivr.net",
			"https://cdn.plyr.io",
		}},
		{"style-src", []string{
			Self,
			UnsafeInline,
			"https://cdn.jsdelivr.net",
			"https://cdnjs.cloudflare.com",
			"https://fonts.googleapis.com",
			"https://cdn.plyr.io",
		}},
		{"font-src", []string{Self, "https://fonts.gstatic.com", "https://cdnjs.cloudflare.com"}},
		{"img-src", []string{Self, SchemeData, SchemeHTTPS, SchemeBlob}},
		{"media-src", []string{Self, SchemeHTTPS, SchemeBlob}},
		{"connect-src", []string{Self, SchemeHTTPS}},
		{"worker-src", []string{Self, SchemeBlob}},
		{"frame-src", []string{Self}},
	}.WithDefaults()
}

// hardeningDefaults は明示されていない場合に補うディレクティブ
var hardeningDefaults = Policy{
	{"base-uri", []string{Self}},
	{"font-src", []string{Self, SchemeHTTPS, SchemeData}},
	{"form-action", []string{Self}},
	{"frame-ancestors", []string{Self}},
	{"img-src", []string{Self, SchemeData}},
	{"object-src", []string{None}},
	{"script-src", []string{Self}},
	{"script-src-attr", []string{None}},
	{"style-src", []string{Self, SchemeHTTPS, UnsafeInline}},
	{"upgrade-insecure-requests", nil},
}

// WithDefaults は未指定のディレクティブをハードニング既定値で補ったポリシーを返す
func (p Policy) WithDefaults() Policy {
	merged := make(Policy, 0, len(p)+len(hardeningDefaults))
	merged = append(merged, p...)
	for _, d := range hardeningDefaults {
		if _, ok := p.Get(d.Name); !ok {
			merged = append(merged, d)
		}
	}
	return merged
}

// Get はディレクティブ名に対応するソースを返す
func (p Policy) Get(name string) ([]string, bool) {
	for _, d := range p {
		if strings.EqualFold(d.Name, name) {
			return d.Sources, true
		}
	}
	return nil, false
}

// String はヘッダー値の形式に整形する
func (p Policy) String() string {
	parts := make([]string, 0, len(p))
	for _, d := range p {
		if len(d.Sources) == 0 {
			parts = append(parts, d.Name)
			continue
		}
		parts = append(parts, d.Name+sourceSep+strings.Join(d.Sources, sourceSep))
	}
	return strings.Join(parts, directiveSep)
}
