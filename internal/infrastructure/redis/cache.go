package redis

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-referral-service/internal/config"
	redis "github.com/redis/go-redis/v9"
)

const codeCacheTTL = 5 * time.Minute

// ReferralCodeCache maps referral codes to account ids. Lookups by code
// happen on every registration and every distribution, so the hot path
// avoids hitting postgres twice.
type ReferralCodeCache struct {
	client *redis.Client
}

func NewReferralCodeCache(cfg *config.ReferralConfig) (*ReferralCodeCache, error) {
	db := redis.NewClient(&redis.Options{
		Addr:        cfg.CacheService.Addr,
		Username:    cfg.CacheService.Username,
		Password:    cfg.CacheService.Password,
		DB:          0,
		MaxRetries:  5,
		DialTimeout: 10 * time.Second,
	})
	if err := db.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &ReferralCodeCache{client: db}, nil
}

func (c *ReferralCodeCache) GetAccountID(ctx context.Context, code string) (string, bool) {
	val, err := c.client.Get(ctx, cacheKey(code)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *ReferralCodeCache) SetAccountID(ctx context.Context, code, accountID string) error {
	return c.client.Set(ctx, cacheKey(code), accountID, codeCacheTTL).Err()
}

func (c *ReferralCodeCache) Invalidate(ctx context.Context, code string) error {
	return c.client.Del(ctx, cacheKey(code)).Err()
}

func cacheKey(code string) string {
	return "refcode:" + code
}
