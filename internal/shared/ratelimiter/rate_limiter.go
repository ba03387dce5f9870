// Package ratelimiter は、サインイン試行などの操作の頻度をRedisで制限します。
package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultLimit     = 5
	defaultWindow    = 15 * time.Minute
	defaultNamespace = "login_attempts"
)

// RateLimiter は固定ウィンドウ方式でキーごとの試行回数を数えます。
// rdbがnilの場合は常に許可します。
type RateLimiter struct {
	rdb       *redis.Client
	limit     int           // ウィンドウあたりの上限
	window    time.Duration // カウンタが失効するまでの時間
	namespace string
}

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
// limitやwindowが0以下の場合はデフォルト値（5回/15分）を使用します。
func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration, namespace string) *RateLimiter {
	if limit <= 0 {
		limit = defaultLimit
	}
	if window <= 0 {
		window = defaultWindow
	}
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &RateLimiter{
		rdb:       rdb,
		limit:     limit,
		window:    window,
		namespace: namespace,
	}
}

func (rl *RateLimiter) counterKey(key string) string {
	return fmt.Sprintf("%s:%s", rl.namespace, key)
}

// Allow は試行を1回記録し、上限以内であればtrueを返します。
// 最初の試行でカウンタにTTLを設定します。
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if rl.rdb == nil {
		return true, nil
	}

	k := rl.counterKey(key)
	n, err := rl.rdb.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("incr %s: %w", k, err)
	}
	if n == 1 {
		if err := rl.rdb.Expire(ctx, k, rl.window).Err(); err != nil {
			return false, fmt.Errorf("expire %s: %w", k, err)
		}
	}
	return n <= int64(rl.limit), nil
}

// Reset はキーのカウンタを削除します。
func (rl *RateLimiter) Reset(ctx context.Context, key string) error {
	if rl.rdb == nil {
		return nil
	}
	return rl.rdb.Del(ctx, rl.counterKey(key)).Err()
}
