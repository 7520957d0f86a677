// Package cache はダッシュボード取得結果のRedisキャッシュを提供します。
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"market_dashboard/internal/feature/dashboard/domain/entity"
	"market_dashboard/internal/feature/dashboard/usecase"
)

const (
	// DefaultTTL はキャッシュの既定の有効期間です。定期取得の間隔より短くします。
	DefaultTTL = 30 * time.Second
	// DefaultNamespace はキャッシュキーの既定の接頭辞です。
	DefaultNamespace = "dashboard"
)

// CachingBriefFetcher はBriefFetcherをRedisキャッシュでラップします。
// 成功した結果のみをキャッシュし、内側のエラーはそのまま返します。
type CachingBriefFetcher struct {
	inner     usecase.BriefFetcher
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.BriefFetcher = (*CachingBriefFetcher)(nil)

// NewCachingBriefFetcher はBriefFetcherをRedisキャッシュでラップします。
// ttlが0以下なら30秒、namespaceが空なら "dashboard" を使用します。rdbがnilならキャッシュしません。
func NewCachingBriefFetcher(rdb *redis.Client, ttl time.Duration, inner usecase.BriefFetcher, namespace string) *CachingBriefFetcher {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &CachingBriefFetcher{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FetchBrief はキャッシュを確認し、無ければ内側のFetcherから取得してキャッシュします。
func (c *CachingBriefFetcher) FetchBrief(ctx context.Context) (entity.Brief, error) {
	if c.rdb == nil {
		return c.inner.FetchBrief(ctx)
	}

	key := c.cacheKey()

	// 1) キャッシュを確認
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Brief
		if err := json.Unmarshal(b, &out); err == nil {
			slog.Debug("キャッシュから取得しました", "key", key)
			return out, nil
		}
		// 破損したキャッシュを削除
		_ = c.rdb.Del(ctx, key).Err()
	} else if err != nil && err != redis.Nil {
		slog.Warn("キャッシュの読み取りに失敗", "key", key, "error", err)
	}

	// 2) 内側のFetcherで取得
	out, err := c.inner.FetchBrief(ctx)
	if err != nil {
		return entity.Brief{}, err
	}

	// 3) キャッシュに保存（ベストエフォート）
	if b, err := json.Marshal(out); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
			slog.Warn("キャッシュの保存に失敗", "key", key, "error", err)
		}
	}

	return out, nil
}

func (c *CachingBriefFetcher) cacheKey() string {
	return c.namespace + ":brief"
}
