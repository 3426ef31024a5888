package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"nesttask/backend/internal/connectivity"
	"nesttask/backend/internal/model"
	"nesttask/backend/internal/service"
)

// ── Mock SyncService ──

type mockSyncService struct {
	refreshErr   error
	refreshKinds []model.Kind
	cleared      []model.Kind
}

func (m *mockSyncService) Prefetch(_ ...model.Kind) {}

func (m *mockSyncService) Load(_ context.Context, _ model.Kind) (*model.RecordSet, error) {
	return nil, nil
}

func (m *mockSyncService) Refresh(_ context.Context, kinds ...model.Kind) error {
	m.refreshKinds = kinds
	return m.refreshErr
}

func (m *mockSyncService) State(_ context.Context) *service.SyncState {
	return &service.SyncState{Kinds: map[model.Kind]*service.KindState{}}
}

func (m *mockSyncService) ClearCache(_ context.Context, kind model.Kind) error {
	m.cleared = append(m.cleared, kind)
	return nil
}

func newSyncRouter(svc service.SyncService, signal *connectivity.Signal) *gin.Engine {
	r := gin.New()
	h := NewSyncHandler(svc, signal)
	r.POST("/api/v1/sync", h.Refresh)
	r.GET("/api/v1/sync/state", h.GetState)
	r.PUT("/api/v1/connectivity", h.UpdateConnectivity)
	r.DELETE("/api/v1/cache/:kind", h.ClearCache)
	return r
}

func TestRefresh_DefaultsToAllKinds(t *testing.T) {
	svc := &mockSyncService{}
	r := newSyncRouter(svc, connectivity.NewSignal())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200, 实际 %d", w.Code)
	}
	if len(svc.refreshKinds) != len(model.AllKinds()) {
		t.Errorf("空请求体应刷新全部 kind, 实际 %v", svc.refreshKinds)
	}
}

func TestRefresh_UnknownKind(t *testing.T) {
	r := newSyncRouter(&mockSyncService{}, connectivity.NewSignal())

	w := httptest.NewRecorder()
	body := strings.NewReader(`{"kinds":["banana"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("未知 kind 期望 400, 实际 %d", w.Code)
	}
}

func TestRefresh_FailureReturns503(t *testing.T) {
	svc := &mockSyncService{refreshErr: service.ErrSyncOfflineNoCache}
	r := newSyncRouter(svc, connectivity.NewSignal())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("刷新失败期望 503, 实际 %d", w.Code)
	}
}

func TestUpdateConnectivity(t *testing.T) {
	signal := connectivity.NewSignal()
	r := newSyncRouter(&mockSyncService{}, signal)

	w := httptest.NewRecorder()
	body := strings.NewReader(`{"offline":true}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/connectivity", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200, 实际 %d", w.Code)
	}
	if !signal.Offline() {
		t.Error("上报离线后 signal 应为离线")
	}
}

func TestUpdateConnectivity_MissingField(t *testing.T) {
	r := newSyncRouter(&mockSyncService{}, connectivity.NewSignal())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/connectivity", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("缺少 offline 字段期望 400, 实际 %d", w.Code)
	}
}

func TestClearCache(t *testing.T) {
	svc := &mockSyncService{}
	r := newSyncRouter(svc, connectivity.NewSignal())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cache/routine", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200, 实际 %d", w.Code)
	}
	if len(svc.cleared) != 1 || svc.cleared[0] != model.KindRoutine {
		t.Errorf("期望清空 routine 缓存, 实际 %v", svc.cleared)
	}
}

func TestClearCache_UnknownKind(t *testing.T) {
	r := newSyncRouter(&mockSyncService{}, connectivity.NewSignal())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cache/banana", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("未知 kind 期望 400, 实际 %d", w.Code)
	}
}
