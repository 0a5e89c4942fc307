package server

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
)

// MiddlewareFunc はhttp.Handlerを包むミドルウェア
type MiddlewareFunc func(http.Handler) http.HandlerFunc

// MiddlewareStack はミドルウェアの並び。先頭が最も外側になる
type MiddlewareStack []MiddlewareFunc

// Then はスタックをハンドラに適用する
func (s MiddlewareStack) Then(h http.Handler) http.Handler {
	// 先頭のミドルウェアが最初に実行されるよう逆順に包む
	for i := len(s) - 1; i >= 0; i-- {
		h = s[i](h)
	}
	return h
}

// compressMinSize 未満のレスポンスは圧縮しない
const compressMinSize = 1024

// CompressionMiddleware はAccept-Encodingに応じてレスポンスをgzip圧縮する
func CompressionMiddleware() (MiddlewareFunc, error) {
	wrap, err := gzhttp.NewWrapper(gzhttp.MinSize(compressMinSize))
	if err != nil {
		return nil, fmt.Errorf("圧縮ミドルウェアの作成に失敗: %w", err)
	}
	return wrap, nil
}

// corsMiddleware はすべてのオリジンからのリクエストを許可する。
// Origin のないリクエストにも Access-Control-Allow-Origin を付ける
func corsMiddleware() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	handler := cors.New(cfg)
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		handler(c)
	}
}
