package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// requestIDKey はginコンテキストに保存するリクエストIDのキー
const requestIDKey = "request_id"

// errorBody は500応答の本文。原因は含めない
var errorBody = gin.H{"error": "Internal Server Error"}

// errorHandler は未処理のエラーとpanicを500のJSON応答に変換する
func errorHandler(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			// クライアント切断による中断はそのまま伝える
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}
			requestLog(log, c).WithField("panic", rec).Error("Error:")
			respondInternalError(c)
		}()

		c.Next()

		if err := c.Errors.Last(); err != nil {
			requestLog(log, c).WithError(err.Err).Error("Error:")
			respondInternalError(c)
		}
	}
}

// respondInternalError は書き込み前であれば汎用の500応答を返す
func respondInternalError(c *gin.Context) {
	if c.Writer.Written() {
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody)
}

// requestLogger はリクエストごとの結果をデバッグレベルで記録する
func requestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Set(requestIDKey, uuid.NewString())
		c.Next()
		requestLog(log, c).WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"status":   c.Writer.Status(),
			"size":     c.Writer.Size(),
			"duration": time.Since(start),
			"from":     c.ClientIP(),
		}).Debug("リクエスト完了")
	}
}

// requestLog はリクエストIDとパスを付けたロガーを返す
func requestLog(log logrus.FieldLogger, c *gin.Context) logrus.FieldLogger {
	return log.WithFields(logrus.Fields{
		"request_id": c.GetString(requestIDKey),
		"path":       c.Request.URL.Path,
	})
}
