// Package di provides dependency injection factories for creating application components.
package di

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"task_backend/internal/app/router"
	authadapters "task_backend/internal/feature/auth/adapters"
	authhandler "task_backend/internal/feature/auth/transport/handler"
	authusecase "task_backend/internal/feature/auth/usecase"
	taskadapters "task_backend/internal/feature/tasks/adapters"
	taskhandler "task_backend/internal/feature/tasks/transport/handler"
	taskusecase "task_backend/internal/feature/tasks/usecase"
	"task_backend/internal/platform/config"
	platformhandler "task_backend/internal/platform/http/handler"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/platform/password"
	"task_backend/internal/shared/ratelimiter"
)

// NewLoginLimiter creates the sign-in attempt limiter.
// If rdb is nil the limiter allows every attempt.
func NewLoginLimiter(rdb *redis.Client, cfg config.LoginConfig) *ratelimiter.RateLimiter {
	if rdb == nil {
		slog.Warn("Redis unavailable. Sign-in attempts are not limited.")
	}
	return ratelimiter.NewRateLimiter(rdb, cfg.MaxAttempts, cfg.Window, "login_attempts")
}

// NewRouterDeps wires repositories, usecases and handlers for the router.
// rdb may be nil.
func NewRouterDeps(db *gorm.DB, rdb *redis.Client, cfg config.Config, logger *slog.Logger) (router.Deps, error) {
	// Repository
	userRepo := authadapters.NewUserPostgres(db)
	taskRepo := taskadapters.NewTaskRepository(db)

	// Usecase
	store := authusecase.NewUserStore(userRepo, password.NewHasher(cfg.Password))
	tokens := jwtmw.NewGenerator(cfg.JWT.Secret, cfg.JWT.TTL)
	authUC := authusecase.NewAuthUsecase(store, tokens, NewLoginLimiter(rdb, cfg.Login))
	taskUC := taskusecase.NewTaskUsecase(taskRepo)

	sqlDB, err := db.DB()
	if err != nil {
		return router.Deps{}, err
	}

	// Handler
	return router.Deps{
		Auth:        authhandler.NewAuthHandler(authUC),
		Tasks:       taskhandler.NewTaskHandler(taskUC),
		Health:      platformhandler.NewHealthHandler(sqlDB),
		Verifier:    jwtmw.NewVerifier(cfg.JWT.Secret),
		Users:       authUC,
		Logger:      logger,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	}, nil
}
