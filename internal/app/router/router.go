package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "task_backend/internal/feature/auth/transport/handler"
	taskhandler "task_backend/internal/feature/tasks/transport/handler"
	platformhandler "task_backend/internal/platform/http/handler"
	"task_backend/internal/platform/http/middleware"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/platform/validation"
)

// Deps はルーターが必要とするハンドラーと認証部品です。
type Deps struct {
	Auth     *authhandler.AuthHandler
	Tasks    *taskhandler.TaskHandler
	Health   *platformhandler.HealthHandler
	Verifier jwtmw.TokenVerifier
	Users    jwtmw.UserResolver
	Logger   *slog.Logger

	// CORSOrigins が空の場合、CORSミドルウェアは登録しません。
	CORSOrigins []string
}

func NewRouter(d Deps) (*gin.Engine, error) {
	// バインド前にカスタムバリデーションを登録しておく必要がある
	if err := validation.Register(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(d.Logger))

	if len(d.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  d.CORSOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders:  []string{"Authorization", "Content-Type", middleware.HeaderXRequestID},
			ExposeHeaders: []string{middleware.HeaderXRequestID},
			MaxAge:        12 * time.Hour,
		}))
	}

	// 認証不要
	// 導通確認用
	r.GET("/healthz", d.Health.Health)
	r.HEAD("/healthz", d.Health.Health)
	r.OPTIONS("/healthz", d.Health.Health)

	authGroup := r.Group("/auth")
	{
		// 新規ユーザー登録
		authGroup.POST("/signup", d.Auth.SignUp)
		// サインイン（アクセストークン発行）
		authGroup.POST("/signin", d.Auth.SignIn)
	}

	// 認証必須のルート
	tasks := r.Group("/tasks")
	tasks.Use(jwtmw.AuthRequired(d.Verifier, d.Users))
	{
		tasks.GET("", d.Tasks.List)
		tasks.POST("", d.Tasks.Create)
		tasks.GET("/:id", d.Tasks.Get)
		tasks.DELETE("/:id", d.Tasks.Delete)
		tasks.PATCH("/:id/status", d.Tasks.UpdateStatus)
	}

	return r, nil
}
