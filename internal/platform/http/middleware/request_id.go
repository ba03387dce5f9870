// Package middleware はすべてのルートに適用するgin共通ミドルウェアを提供します。
package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderXRequestID はリクエストIDを運ぶHTTPヘッダー名です。
const HeaderXRequestID = "X-Request-Id"

type ctxKey struct{}

// RequestID はリクエストIDをヘッダーから取得（なければ生成）し、
// レスポンスヘッダーとリクエストのcontextに設定します。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(HeaderXRequestID, id)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), ctxKey{}, id))
		c.Next()
	}
}

// RequestIDFromContext はRequestIDが設定したIDを返します。未設定の場合は空文字です。
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// AccessLog はリクエストごとに1行のアクセスログを出力します。
// ステータスコードに応じてログレベルを切り替えます。
func AccessLog(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		logger.LogAttrs(c.Request.Context(), level, "HTTP Request",
			slog.String("request_id", RequestIDFromContext(c.Request.Context())),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("remote_addr", c.ClientIP()),
		)
	}
}
