package static

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// Fallback は未解決のリクエストすべてにSPAの入口文書を返すハンドラ。
// メソッドやパスは問わない。文書が読めない場合はエラーとして扱う。
func Fallback(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ServeFile(c, name, 0); err != nil {
			abortWithError(c, fmt.Errorf("フォールバック文書を返せません: %w", err))
			return
		}
		c.Abort()
	}
}
