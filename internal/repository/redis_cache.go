package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"nesttask/backend/internal/model"
	pkgerrors "nesttask/backend/pkg/errors"
)

const cacheKeyPrefix = "nesttask:cache:"

// cacheEnvelope 单键存储的集合信封：整组记录与元数据一次 SET 写入，
// 天然满足按 kind 的原子替换与 last-writer-wins
type cacheEnvelope struct {
	Records  []json.RawMessage `json:"records"`
	SyncedAt time.Time         `json:"synced_at"`
	Valid    bool              `json:"valid"`
}

type redisCache struct {
	rdb *goredis.Client
}

// NewRedisCache 创建基于 Redis 的缓存存储（无本地 PostgreSQL 的部署形态）
func NewRedisCache(rdb *goredis.Client) CacheStore {
	return &redisCache{rdb: rdb}
}

func cacheKey(kind model.Kind) string {
	return cacheKeyPrefix + kind.Collection()
}

func (r *redisCache) Get(ctx context.Context, kind model.Kind) (*model.RecordSet, error) {
	data, err := r.rdb.Get(ctx, cacheKey(kind)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, pkgerrors.ErrCacheEmpty
		}
		return nil, fmt.Errorf("读取缓存失败: %w", err)
	}

	var env cacheEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("解析缓存信封失败: %w", err)
	}

	return &model.RecordSet{
		Kind:     kind,
		Records:  env.Records,
		SyncedAt: env.SyncedAt,
		Valid:    env.Valid,
	}, nil
}

func (r *redisCache) Put(ctx context.Context, kind model.Kind, records []json.RawMessage, syncedAt time.Time) error {
	// 写入前校验每条记录都有标识符，保持与 postgres 后端一致的约束
	for i, raw := range records {
		if _, err := model.RecordID(raw); err != nil {
			return fmt.Errorf("kind %s 第 %d 条记录: %w", kind, i, err)
		}
	}

	env := cacheEnvelope{Records: records, SyncedAt: syncedAt, Valid: true}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("序列化缓存信封失败: %w", err)
	}

	// 缓存不设 TTL：过期判断由同步协调器基于 synced_at 决定
	if err := r.rdb.Set(ctx, cacheKey(kind), data, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", pkgerrors.ErrCacheWrite, err)
	}
	return nil
}

func (r *redisCache) Clear(ctx context.Context, kind model.Kind) error {
	return r.rdb.Del(ctx, cacheKey(kind)).Err()
}
