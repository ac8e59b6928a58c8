package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"montage/internal/config"
)

// ErrCacheMiss key 不存在
var ErrCacheMiss = errors.New("cache: miss")

// RedisCache Redis 缓存封装
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache 创建 Redis 缓存客户端
func NewRedisCache(cfg *config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewRedisCacheWithClient(client), nil
}

// NewRedisCacheWithClient 使用已有客户端创建缓存
func NewRedisCacheWithClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Set 设置缓存（JSON 编码）
func (c *RedisCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, expiration).Err()
}

// Get 获取缓存，key 不存在时返回 ErrCacheMiss
func (c *RedisCache) Get(ctx context.Context, key string, dest any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

// Delete 删除缓存
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Exists 检查 key 是否存在
func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, key).Result()
	return n > 0, err
}

// Ping 检查连接
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close 关闭连接
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// 常用 key 模式
const (
	TimelineCacheKeyPrefix = "timeline:"
	TimelineCacheTTL       = 30 * time.Minute
)

// TimelineCacheKey 生成合成结果缓存 key
// 同一文档在不同帧率、淡变参数下的合成结果不同，参数也是 key 的一部分
func TimelineCacheKey(contentHash string, fps float64, bgmFadeMs, overlayFadeMs int64) string {
	return TimelineCacheKeyPrefix + contentHash +
		":" + strconv.FormatFloat(fps, 'f', -1, 64) +
		":" + strconv.FormatInt(bgmFadeMs, 10) +
		":" + strconv.FormatInt(overlayFadeMs, 10)
}

// TimelineCachePattern 某个文档全部缓存 key 的匹配模式
func TimelineCachePattern(contentHash string) string {
	return TimelineCacheKeyPrefix + contentHash + ":*"
}

// DeletePattern 按模式删除缓存
func (c *RedisCache) DeletePattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return c.Delete(ctx, keys...)
}
