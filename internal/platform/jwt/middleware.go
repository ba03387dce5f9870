package jwtmw

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"task_backend/internal/api"
	"task_backend/internal/feature/auth/domain/entity"
	authusecase "task_backend/internal/feature/auth/usecase"
)

// ContextUser is the gin context key holding the authenticated *entity.User.
const ContextUser = "user"

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(tokenStr string) (*Claims, error)
}

// UserResolver maps the username claim back to a stored user.
type UserResolver interface {
	ResolveUser(ctx context.Context, username string) (*entity.User, error)
}

const bearerPrefix = "Bearer "

// AuthRequired returns a Gin middleware function that validates bearer tokens
// and restricts access to authenticated users only.
func AuthRequired(verifier TokenVerifier, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		// スキーム名は大文字小文字を区別しない
		if len(auth) <= len(bearerPrefix) || !strings.EqualFold(auth[:len(bearerPrefix)], bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
			return
		}
		tokenStr := auth[len(bearerPrefix):]

		claims, err := verifier.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid token"})
			return
		}

		user, err := users.ResolveUser(c.Request.Context(), claims.Username)
		if err != nil {
			if errors.Is(err, authusecase.ErrUserNotFound) {
				// the token outlived its user
				c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid token"})
				return
			}
			slog.Error("failed to resolve token user", "error", err, "username", claims.Username)
			c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by AuthRequired.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok && user != nil
}
