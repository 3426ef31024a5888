package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"nesttask/backend/internal/model"
	pkgerrors "nesttask/backend/pkg/errors"
)

// ── Mock CacheStore ──

type mockStore struct {
	mu     sync.Mutex
	sets   map[model.Kind]*model.RecordSet
	putErr error
}

func newMockStore() *mockStore {
	return &mockStore{sets: make(map[model.Kind]*model.RecordSet)}
}

func (m *mockStore) Get(_ context.Context, kind model.Kind) (*model.RecordSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.sets[kind]
	if !ok {
		return nil, pkgerrors.ErrCacheEmpty
	}
	cp := *set
	return &cp, nil
}

func (m *mockStore) Put(_ context.Context, kind model.Kind, records []json.RawMessage, syncedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.sets[kind] = &model.RecordSet{Kind: kind, Records: records, SyncedAt: syncedAt, Valid: true}
	return nil
}

func (m *mockStore) Clear(_ context.Context, kind model.Kind) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sets, kind)
	return nil
}

// seed 直接写入一份缓存集合，绕过 Put 的 putErr
func (m *mockStore) seed(kind model.Kind, records []json.RawMessage, syncedAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets[kind] = &model.RecordSet{Kind: kind, Records: records, SyncedAt: syncedAt, Valid: true}
}

// ── Mock remote.Source ──

type mockSource struct {
	mu      sync.Mutex
	calls   map[model.Kind]int
	records map[model.Kind][]json.RawMessage
	errs    map[model.Kind]error
	gate    chan struct{} // 非 nil 时 FetchAll 阻塞直至 gate 关闭
}

func newMockSource() *mockSource {
	return &mockSource{
		calls:   make(map[model.Kind]int),
		records: make(map[model.Kind][]json.RawMessage),
		errs:    make(map[model.Kind]error),
	}
}

func (m *mockSource) FetchAll(_ context.Context, kind model.Kind) ([]json.RawMessage, error) {
	m.mu.Lock()
	m.calls[kind]++
	gate := m.gate
	m.mu.Unlock()

	if gate != nil {
		<-gate
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errs[kind]; err != nil {
		return nil, err
	}
	return m.records[kind], nil
}

func (m *mockSource) callCount(kind model.Kind) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[kind]
}

// ── 测试数据构造 ──

func rawRecord(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("序列化测试数据失败: %v", err)
	}
	return data
}

func rawRoutine(t *testing.T, r model.Routine) json.RawMessage {
	t.Helper()
	return rawRecord(t, r)
}

// waitUntil 轮询等待条件成立（预取是异步的）
func waitUntil(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("等待条件超时")
}
