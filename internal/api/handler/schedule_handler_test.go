package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"nesttask/backend/internal/model"
	"nesttask/backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── Mock ScheduleService ──

type mockScheduleService struct {
	routines    []model.Routine
	routinesErr error
	daySlots    []model.EnrichedSlot
	dayErr      error
	gotDate     time.Time
	gotQuery    string
}

func (m *mockScheduleService) Routines(_ context.Context) ([]model.Routine, error) {
	return m.routines, m.routinesErr
}

func (m *mockScheduleService) DefaultRoutine(_ context.Context) (*model.Routine, error) {
	if m.routinesErr != nil {
		return nil, m.routinesErr
	}
	if len(m.routines) == 0 {
		return nil, service.ErrNoRoutines
	}
	return &m.routines[0], nil
}

func (m *mockScheduleService) EnrichRoutine(_ context.Context, _ string) (*model.Routine, []model.EnrichedSlot, error) {
	if len(m.routines) == 0 {
		return nil, nil, service.ErrNoRoutines
	}
	return &m.routines[0], m.daySlots, nil
}

func (m *mockScheduleService) DaySchedule(_ context.Context, _ string, date time.Time, query string) ([]model.EnrichedSlot, error) {
	m.gotDate = date
	m.gotQuery = query
	return m.daySlots, m.dayErr
}

func newScheduleRouter(svc service.ScheduleService) *gin.Engine {
	r := gin.New()
	h := NewScheduleHandler(svc)
	r.GET("/api/v1/routines", h.ListRoutines)
	r.GET("/api/v1/routines/default", h.GetDefaultRoutine)
	r.GET("/api/v1/schedule", h.GetDaySchedule)
	return r
}

func TestListRoutines(t *testing.T) {
	svc := &mockScheduleService{routines: []model.Routine{
		{RoutineID: "r1", Name: "Section A", IsActive: true},
	}}
	r := newScheduleRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/routines", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200, 实际 %d", w.Code)
	}
	var body struct {
		Code int `json:"code"`
		Data struct {
			List []struct {
				ID string `json:"id"`
			} `json:"list"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("响应解析失败: %v", err)
	}
	if len(body.Data.List) != 1 || body.Data.List[0].ID != "r1" {
		t.Errorf("响应内容不正确: %s", w.Body.String())
	}
}

func TestGetDefaultRoutine_EmptySet(t *testing.T) {
	r := newScheduleRouter(&mockScheduleService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/routines/default", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("空集合期望 404, 实际 %d", w.Code)
	}
}

func TestGetDaySchedule_ParsesDateAndQuery(t *testing.T) {
	svc := &mockScheduleService{}
	r := newScheduleRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedule?date=2025-03-03&q=cs201", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200, 实际 %d", w.Code)
	}
	if !svc.gotDate.Equal(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("日期解析不正确: %v", svc.gotDate)
	}
	if svc.gotQuery != "cs201" {
		t.Errorf("查询参数不正确: %q", svc.gotQuery)
	}
}

func TestGetDaySchedule_BadDate(t *testing.T) {
	r := newScheduleRouter(&mockScheduleService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedule?date=03-03-2025", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("非法日期期望 400, 实际 %d", w.Code)
	}
}

func TestGetDaySchedule_OfflineNoCache(t *testing.T) {
	r := newScheduleRouter(&mockScheduleService{dayErr: service.ErrSyncOfflineNoCache})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedule", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("离线且无缓存期望 503, 实际 %d", w.Code)
	}
}
