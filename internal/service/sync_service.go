package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"nesttask/backend/internal/connectivity"
	"nesttask/backend/internal/model"
	"nesttask/backend/internal/remote"
	"nesttask/backend/internal/repository"
	pkgerrors "nesttask/backend/pkg/errors"
)

// ── 同步模块业务错误 ──

var (
	ErrSyncOfflineNoCache = errors.New("当前离线且本地无可用缓存")
)

// ── SyncService 接口 ──────────────────────────────────────
//
// 设计说明：
//   - 每个 kind 同一时刻至多一次在途拉取（single-flight）；并发触发方
//     共享同一个 pending 结果句柄，而不是用布尔标记手动轮询。
//   - 离线时跳过拉取，直接服务本地缓存（stale-but-available），不报错。
//   - 拉取失败保留现有缓存；错误只上抛给显式阻塞调用方，被动预取静默。
//   - 面向展示层的错误字符串仅在"无可用缓存兜底"时才设置。
// ─────────────────────────────────────────────────────────────

// KindState 单个 kind 的同步元数据快照
type KindState struct {
	SyncedAt time.Time `json:"synced_at"`
	Valid    bool      `json:"valid"`
	Count    int       `json:"count"`
}

// SyncState 协调器对展示层暴露的加载/错误状态
type SyncState struct {
	Loading bool                      `json:"loading"`
	Error   *string                   `json:"error"`
	Kinds   map[model.Kind]*KindState `json:"kinds"`
}

// SyncService 同步协调器业务接口
type SyncService interface {
	// Prefetch 被动预取：非阻塞、失败静默，等下一次触发重试
	Prefetch(kinds ...model.Kind)
	// Load 缓存优先读取；缓存为空时阻塞拉取（与在途拉取共享结果）
	Load(ctx context.Context, kind model.Kind) (*model.RecordSet, error)
	// Refresh 阻塞刷新指定 kind；拉取失败上抛给调用方
	Refresh(ctx context.Context, kinds ...model.Kind) error
	// State 当前加载/错误状态及各 kind 的同步元数据
	State(ctx context.Context) *SyncState
	// ClearCache 清空某 kind 的本地缓存（存储配额管理方使用）
	ClearCache(ctx context.Context, kind model.Kind) error
}

type syncService struct {
	store  repository.CacheStore
	source remote.Source
	signal *connectivity.Signal
	logger *zap.Logger

	group singleflight.Group

	mu       sync.Mutex
	inFlight map[model.Kind]bool
	lastErr  map[model.Kind]string
}

// NewSyncService 创建 SyncService 实例
func NewSyncService(
	store repository.CacheStore,
	source remote.Source,
	signal *connectivity.Signal,
	logger *zap.Logger,
) SyncService {
	return &syncService{
		store:    store,
		source:   source,
		signal:   signal,
		logger:   logger,
		inFlight: make(map[model.Kind]bool),
		lastErr:  make(map[model.Kind]string),
	}
}

// ════════════════════════════════════════════════════════════
// Prefetch — 被动预取
// ════════════════════════════════════════════════════════════

func (s *syncService) Prefetch(kinds ...model.Kind) {
	// 连通性只在拉取决策时采样一次，在途拉取不因状态翻转被取消
	if s.signal.Offline() {
		s.logger.Debug("离线状态，跳过预取")
		return
	}

	for _, kind := range kinds {
		kind := kind
		go func() {
			// 预取不依附调用方生命周期，拉取超时由远端客户端负责
			if _, err := s.fetch(context.Background(), kind); err != nil {
				s.logger.Debug("预取失败（静默）",
					zap.String("kind", string(kind)),
					zap.Error(err),
				)
			}
		}()
	}
}

// ════════════════════════════════════════════════════════════
// Load — 缓存优先读取
// ════════════════════════════════════════════════════════════

func (s *syncService) Load(ctx context.Context, kind model.Kind) (*model.RecordSet, error) {
	set, err := s.store.Get(ctx, kind)
	if err == nil {
		return set, nil
	}
	if !errors.Is(err, pkgerrors.ErrCacheEmpty) {
		return nil, err
	}

	// 缓存为空：离线则无兜底可用，在线则阻塞拉取
	if s.signal.Offline() {
		return nil, ErrSyncOfflineNoCache
	}
	return s.fetch(ctx, kind)
}

// ════════════════════════════════════════════════════════════
// Refresh — 阻塞刷新
// ════════════════════════════════════════════════════════════

func (s *syncService) Refresh(ctx context.Context, kinds ...model.Kind) error {
	// 离线即降级：服务现有缓存，不视为错误
	if s.signal.Offline() {
		s.logger.Info("离线状态，刷新降级为使用本地缓存")
		return nil
	}

	// 单个 kind 失败不阻断其余 kind 的刷新
	var firstErr error
	for _, kind := range kinds {
		if _, err := s.fetch(ctx, kind); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ════════════════════════════════════════════════════════════
// State — 加载/错误状态
// ════════════════════════════════════════════════════════════

func (s *syncService) State(ctx context.Context) *SyncState {
	state := &SyncState{Kinds: make(map[model.Kind]*KindState)}

	s.mu.Lock()
	state.Loading = len(s.inFlight) > 0
	for _, kind := range model.AllKinds() {
		if msg, ok := s.lastErr[kind]; ok && state.Error == nil {
			m := msg
			state.Error = &m
		}
	}
	s.mu.Unlock()

	for _, kind := range model.AllKinds() {
		set, err := s.store.Get(ctx, kind)
		if err != nil {
			continue
		}
		state.Kinds[kind] = &KindState{
			SyncedAt: set.SyncedAt,
			Valid:    set.Valid,
			Count:    len(set.Records),
		}
	}
	return state
}

func (s *syncService) ClearCache(ctx context.Context, kind model.Kind) error {
	return s.store.Clear(ctx, kind)
}

// ── 私有辅助方法 ──

// fetch 单飞拉取：同一 kind 的并发调用共享同一次拉取的结果。
// 成功时原子替换缓存；失败时保留现有缓存（陈旧数据优于无数据）。
func (s *syncService) fetch(ctx context.Context, kind model.Kind) (*model.RecordSet, error) {
	v, err, _ := s.group.Do(string(kind), func() (interface{}, error) {
		s.setInFlight(kind, true)
		defer s.setInFlight(kind, false)

		records, err := s.source.FetchAll(ctx, kind)
		if err != nil {
			s.noteFetchFailure(ctx, kind, err)
			return nil, fmt.Errorf("同步 %s 失败: %w", kind, err)
		}

		now := time.Now().UTC()
		set := &model.RecordSet{Kind: kind, Records: records, SyncedAt: now, Valid: true}

		// 缓存写入失败不致命：本次拉取数据仍服务于当前会话，磁盘保留旧缓存
		if err := s.store.Put(ctx, kind, records, now); err != nil {
			s.logger.Warn("缓存写入失败，继续使用内存数据",
				zap.String("kind", string(kind)),
				zap.Error(err),
			)
		}

		s.clearFetchFailure(kind)
		s.logger.Info("同步完成",
			zap.String("kind", string(kind)),
			zap.Int("count", len(records)),
		)
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.RecordSet), nil
}

func (s *syncService) setInFlight(kind model.Kind, v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v {
		s.inFlight[kind] = true
	} else {
		delete(s.inFlight, kind)
	}
}

// noteFetchFailure 记录拉取失败；仅当该 kind 无缓存兜底时才生成
// 面向展示层的错误字符串
func (s *syncService) noteFetchFailure(ctx context.Context, kind model.Kind, fetchErr error) {
	if _, err := s.store.Get(ctx, kind); err == nil {
		// 有缓存兜底：陈旧但可用，不向展示层报错
		s.mu.Lock()
		delete(s.lastErr, kind)
		s.mu.Unlock()
		return
	}
	s.mu.Lock()
	s.lastErr[kind] = fmt.Sprintf("无法获取%s数据，请检查网络后重试", kindLabel(kind))
	s.mu.Unlock()
	s.logger.Warn("拉取失败且无缓存兜底",
		zap.String("kind", string(kind)),
		zap.Error(fetchErr),
	)
}

func (s *syncService) clearFetchFailure(kind model.Kind) {
	s.mu.Lock()
	delete(s.lastErr, kind)
	s.mu.Unlock()
}

func kindLabel(kind model.Kind) string {
	switch kind {
	case model.KindRoutine:
		return "课程表"
	case model.KindCourse:
		return "课程"
	case model.KindTeacher:
		return "教师"
	}
	return string(kind)
}
