package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nesttask/backend/internal/model"
	pkgerrors "nesttask/backend/pkg/errors"
)

type postgresCache struct {
	db *gorm.DB
}

// NewPostgresCache 创建基于 PostgreSQL 的缓存存储。
// 替换在单个事务中执行"删除旧集合 → 批量插入新集合 → 更新同步元数据"，
// 事务隔离保证读取方在替换期间看到的是上一份完整集合。
func NewPostgresCache(db *gorm.DB) CacheStore {
	return &postgresCache{db: db}
}

func (r *postgresCache) Get(ctx context.Context, kind model.Kind) (*model.RecordSet, error) {
	var state model.CacheState
	err := r.db.WithContext(ctx).
		Where("kind = ?", string(kind)).
		First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrCacheEmpty
		}
		return nil, fmt.Errorf("读取缓存元数据失败: %w", err)
	}

	var rows []model.CacheRecord
	if err := r.db.WithContext(ctx).
		Where("kind = ?", string(kind)).
		Order("position ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("读取缓存记录失败: %w", err)
	}

	set := &model.RecordSet{
		Kind:     kind,
		Records:  make([]json.RawMessage, 0, len(rows)),
		SyncedAt: state.SyncedAt,
		Valid:    state.Valid,
	}
	for _, row := range rows {
		set.Records = append(set.Records, json.RawMessage(row.Payload))
	}
	return set, nil
}

func (r *postgresCache) Put(ctx context.Context, kind model.Kind, records []json.RawMessage, syncedAt time.Time) error {
	rows := make([]model.CacheRecord, 0, len(records))
	for i, raw := range records {
		id, err := model.RecordID(raw)
		if err != nil {
			return fmt.Errorf("kind %s 第 %d 条记录: %w", kind, i, err)
		}
		rows = append(rows, model.CacheRecord{
			Kind:     string(kind),
			RecordID: id,
			Position: i,
			Payload:  []byte(raw),
		})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 硬删除旧集合（全量替换场景）
		if err := tx.Where("kind = ?", string(kind)).
			Delete(&model.CacheRecord{}).Error; err != nil {
			return err
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		state := model.CacheState{Kind: string(kind), SyncedAt: syncedAt, Valid: true}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "kind"}},
			DoUpdates: clause.AssignmentColumns([]string{"synced_at", "valid"}),
		}).Create(&state).Error
	})
	if err != nil {
		return fmt.Errorf("%w: %v", pkgerrors.ErrCacheWrite, err)
	}
	return nil
}

func (r *postgresCache) Clear(ctx context.Context, kind model.Kind) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("kind = ?", string(kind)).
			Delete(&model.CacheRecord{}).Error; err != nil {
			return err
		}
		return tx.Where("kind = ?", string(kind)).
			Delete(&model.CacheState{}).Error
	})
}
