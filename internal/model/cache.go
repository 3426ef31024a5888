package model

import "time"

// CacheRecord 缓存记录表 — 对应 cache_records（postgres 后端）
type CacheRecord struct {
	Kind     string `gorm:"column:kind;type:varchar(20);primaryKey"      json:"kind"`
	RecordID string `gorm:"column:record_id;type:varchar(64);primaryKey" json:"record_id"`
	Position int    `gorm:"column:position;not null"                     json:"position"`
	Payload  []byte `gorm:"column:payload;type:jsonb;not null"           json:"payload"`
}

// TableName 指定表名
func (CacheRecord) TableName() string { return "cache_records" }

// CacheState 每个 kind 的同步元数据 — 对应 cache_states
type CacheState struct {
	Kind     string    `gorm:"column:kind;type:varchar(20);primaryKey"  json:"kind"`
	SyncedAt time.Time `gorm:"column:synced_at;type:timestamptz;not null" json:"synced_at"`
	Valid    bool      `gorm:"column:valid;not null;default:true"       json:"valid"`
}

// TableName 指定表名
func (CacheState) TableName() string { return "cache_states" }
