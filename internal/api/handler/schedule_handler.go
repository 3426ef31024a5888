package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"nesttask/backend/internal/dto"
	"nesttask/backend/internal/model"
	"nesttask/backend/internal/service"
	"nesttask/backend/pkg/response"
)

// ScheduleHandler 课表模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// ListRoutines 获取可选课程表列表
// GET /api/v1/routines
func (h *ScheduleHandler) ListRoutines(c *gin.Context) {
	routines, err := h.scheduleSvc.Routines(c.Request.Context())
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": dto.ToRoutineResponses(routines)})
}

// GetDefaultRoutine 获取默认课程表
// GET /api/v1/routines/default
func (h *ScheduleHandler) GetDefaultRoutine(c *gin.Context) {
	routine, err := h.scheduleSvc.DefaultRoutine(c.Request.Context())
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	resp := dto.ToRoutineResponse(routine)
	response.OK(c, resp)
}

// GetDaySchedule 获取指定日期的富化课表
// GET /api/v1/schedule?date=YYYY-MM-DD&q=&routine_id=
func (h *ScheduleHandler) GetDaySchedule(c *gin.Context) {
	var req dto.ScheduleRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			response.BadRequest(c, 10001, "日期格式应为 YYYY-MM-DD")
			return
		}
		date = parsed
	}

	slots, err := h.scheduleSvc.DaySchedule(c.Request.Context(), req.RoutineID, date, req.Query)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, dto.DayScheduleResponse{
		RoutineID: req.RoutineID,
		Date:      date.Format("2006-01-02"),
		Day:       string(model.WeekdayOf(date)),
		Slots:     dto.ToSlotResponses(slots),
	})
}

// handleScheduleError 课表模块错误 → HTTP 响应
func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoRoutines):
		response.NotFound(c, 20001, service.ErrNoRoutines.Error())
	case errors.Is(err, service.ErrRoutineNotFound):
		response.NotFound(c, 20002, service.ErrRoutineNotFound.Error())
	case errors.Is(err, service.ErrSyncOfflineNoCache):
		response.ServiceUnavailable(c, 20003, service.ErrSyncOfflineNoCache.Error())
	default:
		response.InternalError(c)
	}
}
