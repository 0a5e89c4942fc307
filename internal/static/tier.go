// Package static はディスク上のファイル配信とSPAのフォールバックを提供します。
package static

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// DefaultIndex はディレクトリへのリクエストで返すファイル名
const DefaultIndex = "index.html"

// Tier はURLプレフィックスにマウントされたドキュメントルート
type Tier struct {
	Prefix string        // マウント先 ("/" または "/static" など)
	Dir    string        // ファイルを探すディレクトリ
	MaxAge time.Duration // Cache-Control の max-age
	Index  string        // ディレクトリのインデックス (空なら DefaultIndex)

	exclude []string
}

// Excluding はより具体的な階層が受け持つプレフィックスを除外した Tier を返す
func (t Tier) Excluding(prefixes ...string) Tier {
	t.exclude = append(append([]string(nil), t.exclude...), prefixes...)
	return t
}

// Handler は Tier を gin のミドルウェアとして返す。
// 該当するファイルがなければ何もせず次のハンドラへ進む。
func (t Tier) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		r := c.Request
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			return
		}

		rel, ok := t.relative(r.URL.Path)
		if !ok || hasHiddenSegment(rel) {
			return
		}

		full := filepath.Join(t.Dir, filepath.FromSlash(rel))
		info, err := os.Stat(full)
		if err != nil {
			if isNotFound(err) {
				return
			}
			abortWithError(c, fmt.Errorf("ファイル情報の取得に失敗: %w", err))
			return
		}

		if info.IsDir() {
			if !strings.HasSuffix(r.URL.Path, "/") {
				redirectToDir(c, path.Join("/", t.Prefix, rel)+"/")
				return
			}
			full = filepath.Join(full, t.index())
			info, err = os.Stat(full)
			if err != nil {
				if isNotFound(err) {
					return
				}
				abortWithError(c, fmt.Errorf("インデックスの取得に失敗: %w", err))
				return
			}
			if info.IsDir() {
				return
			}
		}

		if err := ServeFile(c, full, t.MaxAge); err != nil {
			if isNotFound(err) {
				return
			}
			abortWithError(c, err)
			return
		}
		c.Abort()
	}
}

// relative はリクエストパスを Tier 内の相対パスに変換する
func (t Tier) relative(urlPath string) (string, bool) {
	if strings.ContainsRune(urlPath, 0) {
		return "", false
	}
	for _, ex := range t.exclude {
		if hasPrefix(urlPath, ex) {
			return "", false
		}
	}

	prefix := strings.TrimSuffix(t.Prefix, "/")
	if !hasPrefix(urlPath, prefix) {
		return "", false
	}
	return path.Clean("/" + strings.TrimPrefix(urlPath, prefix)), true
}

func (t Tier) index() string {
	if t.Index == "" {
		return DefaultIndex
	}
	return t.Index
}

// hasPrefix はパス区切り単位でプレフィックスが一致するか判定する
func hasPrefix(urlPath, prefix string) bool {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return true
	}
	return urlPath == prefix || strings.HasPrefix(urlPath, prefix+"/")
}

// hasHiddenSegment はドットで始まる要素を含むか判定する
func hasHiddenSegment(rel string) bool {
	for _, seg := range strings.Split(rel, "/") {
		if len(seg) > 1 && seg[0] == '.' {
			return true
		}
	}
	return false
}

func isNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, syscall.ENOTDIR) ||
		errors.Is(err, syscall.ENAMETOOLONG)
}

// redirectToDir は正規化したパスへリダイレクトする。
// 先頭の "//" は別ホストを指すため元のパスは使わない
func redirectToDir(c *gin.Context, target string) {
	u := url.URL{Path: target, RawQuery: c.Request.URL.RawQuery}
	http.Redirect(c.Writer, c.Request, u.RequestURI(), http.StatusMovedPermanently)
	c.Abort()
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
