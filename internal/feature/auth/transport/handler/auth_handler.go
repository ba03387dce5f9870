// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"task_backend/internal/api"
	"task_backend/internal/feature/auth/usecase"
	"task_backend/internal/platform/validation"
)

// クライアントに返す固定メッセージです。
const (
	msgUsernameExists     = "Username already exists."
	msgInvalidCredentials = "Invalid credentials"
	msgTooManyAttempts    = "too many sign-in attempts, try again later"
	msgInternal           = "internal server error"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// SignUp は指定されたユーザー名とパスワードで新規ユーザーを登録します。
	SignUp(ctx context.Context, username, password string) error
	// SignIn はユーザーを認証し、成功時にアクセストークンを返します。
	SignIn(ctx context.Context, username, password, clientIP string) (string, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// SignUp はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - ユーザー名重複時は409を返却
// - 成功時は201を返却
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req api.SignUpJSONRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: validation.Message(err)})
		return
	}

	if err := h.auth.SignUp(c.Request.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, usecase.ErrUsernameExists) {
			slog.Warn("signup rejected", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: msgUsernameExists})
			return
		}
		slog.Error("signup failed", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: msgInternal})
		return
	}

	slog.Info("user signup successful", "username", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.MessageResponse{Message: "ok"})
}

// SignIn はサインインAPIエンドポイントを処理します。
// ユーザー不在とパスワード不一致は区別せず、どちらも401を返却します。
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req api.SignInJSONRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signin validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: validation.Message(err)})
		return
	}

	token, err := h.auth.SignIn(c.Request.Context(), req.Username, req.Password, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			slog.Warn("signin failed", "username", req.Username, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: msgInvalidCredentials})
		case errors.Is(err, usecase.ErrTooManyAttempts):
			slog.Warn("signin throttled", "username", req.Username, "remote_addr", c.ClientIP())
			c.JSON(http.StatusTooManyRequests, api.ErrorResponse{Error: msgTooManyAttempts})
		default:
			slog.Error("signin error", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: msgInternal})
		}
		return
	}

	slog.Info("user signin successful", "username", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{AccessToken: token})
}
