package repository

import (
	"context"
	"encoding/json"
	"time"

	"nesttask/backend/internal/model"
)

// CacheStore 本地持久缓存的统一契约。
//
// 语义约定：
//   - Put 按 kind 原子替换：要么整组记录成为新集合，要么存储保持原状
//   - 同一 kind 的并发 Put 串行化，last-writer-wins（协调层的替换是幂等的）
//   - 不同 kind 之间读写互不阻塞
//   - Get 在该 kind 从未成功同步过时返回 pkgerrors.ErrCacheEmpty
type CacheStore interface {
	// Get 读取某 kind 的完整记录集合及同步元数据
	Get(ctx context.Context, kind model.Kind) (*model.RecordSet, error)
	// Put 原子替换某 kind 的记录集合，并更新同步时间与有效标记
	Put(ctx context.Context, kind model.Kind, records []json.RawMessage, syncedAt time.Time) error
	// Clear 清空某 kind 的集合（供管理存储配额的外部协作方调用）
	Clear(ctx context.Context, kind model.Kind) error
}
