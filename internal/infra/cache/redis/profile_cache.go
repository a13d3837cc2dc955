// Package rediscache 用 Redis 实现用户资料缓存 (repository.UserCache)。
package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"blog-account/internal/domain"
	"blog-account/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

const profileKeyPrefix = "user:profile:"

// ProfileCache 把去除密码后的用户资料以 JSON 形式缓存在 Redis 中。
// 所有 Redis 调用经过熔断器，Redis 故障时快速失败，由调用方回源数据库。
type ProfileCache struct {
	rdb       *redis.Client
	keyPrefix string
	ttl       time.Duration
	cb        *gobreaker.CircuitBreaker
}

// NewProfileCache 创建 ProfileCache。ttl <= 0 时默认 10 分钟。
func NewProfileCache(rdb *redis.Client, keyPrefix string, ttl time.Duration) *ProfileCache {
	if rdb == nil {
		panic("Redis client cannot be nil for ProfileCache")
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	st := gobreaker.Settings{
		Name:        "ProfileCache",
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logrus.WithField("breaker", name).Warnf("CircuitBreaker state changed from %s to %s", from, to)
		},
	}
	return &ProfileCache{
		rdb:       rdb,
		keyPrefix: keyPrefix,
		ttl:       ttl,
		cb:        gobreaker.NewCircuitBreaker(st),
	}
}

var _ repository.UserCache = (*ProfileCache)(nil)

func (c *ProfileCache) key(id uint) string {
	return c.keyPrefix + profileKeyPrefix + strconv.FormatUint(uint64(id), 10)
}

// Get 读取缓存，未命中返回 repository.ErrCacheMiss。
func (c *ProfileCache) Get(ctx context.Context, id uint) (*domain.User, error) {
	val, err := c.cb.Execute(func() (interface{}, error) {
		res, err := c.rdb.Get(ctx, c.key(id)).Bytes()
		if err == redis.Nil {
			return nil, nil // 未命中不算熔断失败
		}
		if err != nil {
			return nil, err
		}
		return res, nil
	})
	if err != nil {
		return nil, fmt.Errorf("redis: get profile %d: %w", id, err)
	}
	if val == nil {
		return nil, repository.ErrCacheMiss
	}

	var user domain.User
	if err := json.Unmarshal(val.([]byte), &user); err != nil {
		// 脏数据直接删掉，下次回源重建
		_ = c.rdb.Del(ctx, c.key(id)).Err()
		return nil, fmt.Errorf("redis: decode profile %d: %w", id, err)
	}
	return &user, nil
}

// Set 写入缓存。密码哈希不会被写入 Redis。
func (c *ProfileCache) Set(ctx context.Context, user *domain.User) error {
	if user == nil || user.ID == 0 {
		return fmt.Errorf("redis: cannot cache user without id")
	}
	data, err := json.Marshal(user.Sanitized())
	if err != nil {
		return fmt.Errorf("redis: encode profile %d: %w", user.ID, err)
	}
	// TTL 加随机抖动，避免同一时间大量过期
	ttl := c.ttl + time.Duration(rand.Intn(60))*time.Second
	_, err = c.cb.Execute(func() (interface{}, error) {
		return nil, c.rdb.Set(ctx, c.key(user.ID), data, ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("redis: set profile %d: %w", user.ID, err)
	}
	return nil
}

// Evict 删除缓存，key 不存在时不报错。
func (c *ProfileCache) Evict(ctx context.Context, id uint) error {
	_, err := c.cb.Execute(func() (interface{}, error) {
		return nil, c.rdb.Del(ctx, c.key(id)).Err()
	})
	if err != nil {
		return fmt.Errorf("redis: evict profile %d: %w", id, err)
	}
	return nil
}
