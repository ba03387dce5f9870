// Package db はPostgreSQLへの接続とマイグレーションを提供します。
package db

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "task_backend/internal/feature/auth/domain/entity"
	taskadapters "task_backend/internal/feature/tasks/adapters"
	"task_backend/internal/platform/config"
)

// retryInterval は接続リトライの間隔です。
var retryInterval = 3 * time.Second

// Opener はDSNからgorm.DBを開く関数です。テストで差し替えられます。
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN はpgx用の接続URLを組み立てます。
func BuildDSN(cfg config.DBConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Path:   "/" + cfg.Name,
	}
	q := url.Values{}
	if cfg.SSLMode != "" {
		q.Set("sslmode", cfg.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// ConnectWithRetry はtimeoutに達するまでretryInterval間隔で接続を試みます。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, errors.Wrapf(err, "DB connect failed after %s", timeout)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Open はPostgreSQLに接続し、設定に応じてマイグレーションを実行します。
// 一意制約違反などのドライバエラーはgormのエラーに変換されます。
func Open(cfg config.Config, logger *slog.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         newGormSlogLogger(logger, cfg.Log.Level == "debug"),
	}
	opener := func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.Open(dsn), gormCfg)
	}

	db, err := ConnectWithRetry(BuildDSN(cfg.DB), cfg.DB.ConnectTimeout, opener)
	if err != nil {
		return nil, err
	}

	if cfg.DB.RunMigrations {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Migrate はusersテーブルとtasksテーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&authentity.User{},
		&taskadapters.TaskModel{},
	); err != nil {
		return errors.Wrap(err, "failed to migrate")
	}
	return nil
}
