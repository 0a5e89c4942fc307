package static

import (
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// ETag はファイルのサイズと更新時刻から弱いエンティティタグを作る
func ETag(info fs.FileInfo) string {
	return fmt.Sprintf(`W/"%x-%x"`, info.Size(), info.ModTime().UnixMilli())
}

// CacheControl は max-age 付きの Cache-Control 値を返す
func CacheControl(maxAge time.Duration) string {
	return "public, max-age=" + strconv.FormatInt(int64(maxAge/time.Second), 10)
}

// ServeFile はキャッシュ用ヘッダーを付けてファイルを返す。
// 条件付きリクエストとRangeは http.ServeContent に任せる。
func ServeFile(c *gin.Context, name string, maxAge time.Duration) error {
	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("ファイルを開けません: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("ファイル情報の取得に失敗: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s はディレクトリです: %w", name, fs.ErrNotExist)
	}

	h := c.Writer.Header()
	h.Set("Cache-Control", CacheControl(maxAge))
	h.Set("ETag", ETag(info))

	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
	return nil
}
